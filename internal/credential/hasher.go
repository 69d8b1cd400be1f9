// Package credential 凭据生命周期：注册、认证、遗留明文懒迁移、令牌签发
package credential

import "golang.org/x/crypto/bcrypt"

// Hasher 密码哈希能力
//
// 通过构造函数显式注入，不做包级单例，测试可替换为快速实现。
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// BcryptHasher 生产环境使用的 bcrypt 实现
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher 创建 bcrypt 哈希器，cost 不合法时回落到 12
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = 12
	}
	return &BcryptHasher{cost: cost}
}

// Hash 生成带版本前缀的 bcrypt 哈希
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	return string(bytes), err
}

// Verify 常数时间校验密码
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

var _ Hasher = (*BcryptHasher)(nil)
