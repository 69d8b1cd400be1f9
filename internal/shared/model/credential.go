package model

import "strings"

// CredentialKind 凭据类型判别标签
type CredentialKind string

const (
	// CredentialHashed bcrypt 哈希凭据
	CredentialHashed CredentialKind = "hashed"
	// CredentialLegacy 早于哈希化上线的明文凭据，首次登录成功后迁移
	CredentialLegacy CredentialKind = "legacy"
)

// bcrypt 哈希的版本前缀
var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// Credential 用户凭据的带标签表示
//
// 存储层仍保存单一字符串（兼容历史文档），前缀判别只发生在
// ParseCredential 一处，业务逻辑只面对 Kind 判别标签。
type Credential struct {
	kind  CredentialKind
	value string
}

// ParseCredential 将存储的密码字符串判别为哈希或遗留明文凭据
func ParseCredential(stored string) Credential {
	for _, p := range bcryptPrefixes {
		if strings.HasPrefix(stored, p) {
			return Credential{kind: CredentialHashed, value: stored}
		}
	}
	return Credential{kind: CredentialLegacy, value: stored}
}

// NewHashedCredential 由已生成的哈希构造凭据
func NewHashedCredential(hash string) Credential {
	return Credential{kind: CredentialHashed, value: hash}
}

// Kind 凭据类型
func (c Credential) Kind() CredentialKind {
	return c.kind
}

// Stored 返回写入存储的字符串形式
func (c Credential) Stored() string {
	return c.value
}

// IsHashed 是否为哈希凭据
func (c Credential) IsHashed() bool {
	return c.kind == CredentialHashed
}

// String 脱敏输出，避免凭据进入日志
func (c Credential) String() string {
	return "credential(" + string(c.kind) + ")"
}
