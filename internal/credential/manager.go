package credential

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"nassnews/internal/shared/model"
	"nassnews/internal/shared/storage"
	"nassnews/pkg/logging"
)

var (
	// ErrPasswordMismatch 注册时两次输入的密码不一致
	ErrPasswordMismatch = errors.New("passwords don't match")

	// ErrEmailTaken 邮箱已被注册
	ErrEmailTaken = errors.New("email already exists")

	// ErrInvalidCredentials 密码错误
	// 与 storage.ErrNotFound 区分，除非开启 ObscureNotFound 策略
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Config 凭据管理配置
type Config struct {
	// ObscureNotFound 登录时将"邮箱不存在"伪装为"密码错误"，
	// 防止邮箱枚举。默认关闭。
	ObscureNotFound bool
}

// Manager 凭据管理器
type Manager struct {
	store  storage.UserStore
	hasher Hasher
	cfg    Config
	log    *logging.Logger
}

// NewManager 创建凭据管理器
func NewManager(store storage.UserStore, hasher Hasher, cfg Config, log *logging.Logger) *Manager {
	if log == nil {
		log = logging.Default("credential")
	}
	return &Manager{store: store, hasher: hasher, cfg: cfg, log: log}
}

// Register 注册新用户
//
// 密码确认不一致返回 ErrPasswordMismatch；邮箱已存在返回 ErrEmailTaken
// （先查后插，唯一索引兜底并发窗口）；成功时存哈希、赋默认角色。
func (m *Manager) Register(ctx context.Context, name, email, password, confirm string) (*model.User, error) {
	if password != confirm {
		return nil, ErrPasswordMismatch
	}

	existing, err := m.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := m.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		Name:           name,
		Email:          email,
		Password:       hash,
		Role:           model.UserRoleUser,
		FavoriteCities: []string{},
		FavoriteNews:   []string{},
		FavoriteEvents: []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := m.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	m.log.Info("User registered", "user_id", user.ID, "email", email)
	return user, nil
}

// Authenticate 认证用户
//
// 哈希凭据走 bcrypt 校验；遗留明文凭据直接比对（常数时间），
// 比对成功后重新哈希并写回 —— 懒迁移。迁移写入是尽力而为：
// 失败只记警告，认证照常成功，下次登录重试。
func (m *Manager) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := m.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if user == nil {
		loginsTotal.WithLabelValues("none", "not_found").Inc()
		if m.cfg.ObscureNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, storage.ErrNotFound
	}

	cred := model.ParseCredential(user.Password)
	switch cred.Kind() {
	case model.CredentialHashed:
		if !m.hasher.Verify(password, cred.Stored()) {
			loginsTotal.WithLabelValues("hashed", "mismatch").Inc()
			return nil, ErrInvalidCredentials
		}
		loginsTotal.WithLabelValues("hashed", "ok").Inc()

	case model.CredentialLegacy:
		m.log.Warn("User has legacy plaintext credential", "email", email)
		if subtle.ConstantTimeCompare([]byte(password), []byte(cred.Stored())) != 1 {
			loginsTotal.WithLabelValues("legacy", "mismatch").Inc()
			return nil, ErrInvalidCredentials
		}
		loginsTotal.WithLabelValues("legacy", "ok").Inc()
		m.migrate(ctx, user, password)
	}

	return user, nil
}

// migrate 把遗留明文凭据替换为哈希（认证成功后调用）
func (m *Manager) migrate(ctx context.Context, user *model.User, password string) {
	hash, err := m.hasher.Hash(password)
	if err != nil {
		m.log.WithError(err).Warn("Credential migration: hash failed", "user_id", user.ID)
		return
	}
	cred := model.NewHashedCredential(hash)
	if err := m.store.UpdateUserCredential(ctx, user.ID, cred); err != nil {
		migrationsTotal.WithLabelValues("failed").Inc()
		m.log.WithError(err).Warn("Credential migration: persist failed, will retry on next login", "user_id", user.ID)
		return
	}
	user.Password = hash
	migrationsTotal.WithLabelValues("ok").Inc()
	m.log.Info("Upgraded legacy credential to hash", "user_id", user.ID)
}

// HashIfPlaintext 若给定密码尚未哈希则哈希之
//
// 管理侧创建/更新用户时使用：调用方可能传入明文，也可能
// 原样回传已哈希的凭据。
func (m *Manager) HashIfPlaintext(password string) (string, error) {
	if password == "" {
		return "", nil
	}
	if model.ParseCredential(password).IsHashed() {
		return password, nil
	}
	return m.hasher.Hash(password)
}
