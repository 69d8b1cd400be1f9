// Package profile 用户档案服务：注册登录、用户管理、收藏入口
package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nassnews/internal/credential"
	"nassnews/internal/favorites"
	"nassnews/internal/shared/model"
	"nassnews/internal/shared/storage"
	"nassnews/pkg/logging"
)

// ErrUserNotFound 用户不存在
var ErrUserNotFound = errors.New("user not found")

// CityValidator 城市引用校验（由 geo.Resolver 实现）
type CityValidator interface {
	Validate(ctx context.Context, cityID string) (*model.City, error)
}

// Service 用户档案服务
//
// 凭据相关操作委托 credential.Manager，收藏操作委托
// favorites.Ledger，所有城市引用写入前经 CityValidator 校验。
type Service struct {
	store  storage.UserStore
	creds  *credential.Manager
	ledger *favorites.Ledger
	cities CityValidator
	tokens credential.TokenConfig
	log    *logging.Logger
}

// NewService 创建用户档案服务
func NewService(store storage.UserStore, creds *credential.Manager, ledger *favorites.Ledger, cities CityValidator, tokens credential.TokenConfig, log *logging.Logger) *Service {
	if log == nil {
		log = logging.Default("profile")
	}
	return &Service{
		store:  store,
		creds:  creds,
		ledger: ledger,
		cities: cities,
		tokens: tokens,
		log:    log,
	}
}

// Register 自助注册，成功时按配置签发令牌对（未配置密钥则为 nil）
func (s *Service) Register(ctx context.Context, name, email, password, confirm string) (*model.User, *credential.TokenPair, error) {
	user, err := s.creds.Register(ctx, name, email, password, confirm)
	if err != nil {
		return nil, nil, err
	}
	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login 登录认证，成功时按配置签发令牌对
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, *credential.TokenPair, error) {
	user, err := s.creds.Authenticate(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}
	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *Service) issueTokens(user *model.User) (*credential.TokenPair, error) {
	if !s.tokens.Enabled() {
		return nil, nil
	}
	pair, err := credential.IssueTokens(s.tokens, user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}
	return pair, nil
}

// GetUser 按 ID 取用户，不存在返回 ErrUserNotFound
func (s *Service) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", id, ErrUserNotFound)
	}
	return user, nil
}

// GetUserByEmail 按邮箱取用户，不存在返回 ErrUserNotFound
func (s *Service) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", email, ErrUserNotFound)
	}
	return user, nil
}

// ListUsers 列出所有用户
func (s *Service) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.store.ListUsers(ctx)
}

// CreateUser 管理侧创建用户
//
// 密码可传明文也可传已哈希的凭据，入库前统一保证为哈希；
// 关联城市和收藏城市均先校验存在性；角色缺省为普通用户。
func (s *Service) CreateUser(ctx context.Context, user *model.User) error {
	hash, err := s.creds.HashIfPlaintext(user.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = hash

	if user.Role == "" {
		user.Role = model.UserRoleUser
	}
	if user.CityID != "" {
		if _, err := s.cities.Validate(ctx, user.CityID); err != nil {
			return fmt.Errorf("city reference: %w", err)
		}
	}
	user.FavoriteCities = model.FilterFavoriteIDs(user.FavoriteCities)
	if err := s.validateFavoriteCities(ctx, user.FavoriteCities); err != nil {
		return err
	}
	user.FavoriteNews = model.FilterFavoriteIDs(user.FavoriteNews)
	user.FavoriteEvents = model.FilterFavoriteIDs(user.FavoriteEvents)

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return credential.ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	s.log.Info("User created", "user_id", user.ID, "role", string(user.Role))
	return nil
}

// UpdateUser 部分更新用户
//
// 更新密码时同样保证入库为哈希；更新关联城市时校验存在性；
// 收藏城市整体替换前过滤脏条目。
func (s *Service) UpdateUser(ctx context.Context, id string, upd *model.UserUpdate) error {
	if upd.Password != nil {
		hash, err := s.creds.HashIfPlaintext(*upd.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		upd.Password = &hash
	}
	if upd.CityID != nil && *upd.CityID != "" {
		if _, err := s.cities.Validate(ctx, *upd.CityID); err != nil {
			return fmt.Errorf("city reference: %w", err)
		}
	}
	if upd.FavoriteCities != nil {
		upd.FavoriteCities = model.FilterFavoriteIDs(upd.FavoriteCities)
		if err := s.validateFavoriteCities(ctx, upd.FavoriteCities); err != nil {
			return err
		}
	}

	if err := s.store.UpdateUser(ctx, id, upd); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("user %s: %w", id, ErrUserNotFound)
		}
		if errors.Is(err, storage.ErrDuplicate) {
			return credential.ErrEmailTaken
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// DeleteUser 删除用户
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("user %s: %w", id, ErrUserNotFound)
		}
		return err
	}
	s.log.Info("User deleted", "user_id", id)
	return nil
}

// validateFavoriteCities 逐一校验收藏城市引用，悬空即拒绝写入
func (s *Service) validateFavoriteCities(ctx context.Context, cityIDs []string) error {
	for _, cityID := range cityIDs {
		if _, err := s.cities.Validate(ctx, cityID); err != nil {
			return fmt.Errorf("favorite city reference: %w", err)
		}
	}
	return nil
}

// CreateCityAdmin 创建市级管理员并绑定城市
//
// 城市已有管理员时仅记警告，不拒绝创建。
func (s *Service) CreateCityAdmin(ctx context.Context, user *model.User, cityID string) error {
	existing, err := s.store.ListCityAdmins(ctx, cityID)
	if err != nil {
		return fmt.Errorf("list city admins: %w", err)
	}
	if len(existing) > 0 {
		s.log.WithCityID(cityID).Warn("City already has an admin", "existing_count", len(existing))
	}
	user.Role = model.UserRoleCityAdmin
	user.CityID = cityID
	return s.CreateUser(ctx, user)
}

// ListCityAdmins 列出市级管理员，cityID 非空时限定关联城市
func (s *Service) ListCityAdmins(ctx context.Context, cityID string) ([]*model.User, error) {
	return s.store.ListCityAdmins(ctx, cityID)
}

// AddFavorite 加收藏；收藏城市前先校验城市存在
//
// 返回 false 表示用户不存在。
func (s *Service) AddFavorite(ctx context.Context, userID string, cat model.FavoriteCategory, itemID string) (bool, error) {
	if cat == model.FavoriteCity {
		if _, err := s.cities.Validate(ctx, itemID); err != nil {
			return false, fmt.Errorf("city reference: %w", err)
		}
	}
	return s.ledger.Add(ctx, userID, cat, itemID)
}

// RemoveFavorite 删收藏；返回 false 表示用户不存在
func (s *Service) RemoveFavorite(ctx context.Context, userID string, cat model.FavoriteCategory, itemID string) (bool, error) {
	return s.ledger.Remove(ctx, userID, cat, itemID)
}

// ListFavorites 列出收藏，脏条目已过滤
func (s *Service) ListFavorites(ctx context.Context, userID string, cat model.FavoriteCategory) ([]string, error) {
	return s.ledger.List(ctx, userID, cat)
}
