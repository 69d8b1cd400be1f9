// Package favorites 用户收藏集合的变更与查询
package favorites

import (
	"context"
	"errors"
	"fmt"

	"nassnews/internal/shared/model"
	"nassnews/internal/shared/storage"
	"nassnews/pkg/logging"
)

// ErrInvalidItemID 收藏项 ID 非法（空串或字面量 "null"）
var ErrInvalidItemID = errors.New("invalid favorite item id")

// ErrInvalidCategory 收藏类别非法
var ErrInvalidCategory = errors.New("invalid favorite category")

// Ledger 收藏台账
//
// 变更走存储层的原子集合原语（$addToSet / $pull），
// 并发的加删操作不会互相覆盖。语义为集合：加是幂等的，
// 删不存在的项静默成功。
type Ledger struct {
	store storage.UserStore
	log   *logging.Logger
}

// NewLedger 创建收藏台账
func NewLedger(store storage.UserStore, log *logging.Logger) *Ledger {
	if log == nil {
		log = logging.Default("favorites")
	}
	return &Ledger{store: store, log: log}
}

// Add 将条目加入用户的收藏集合
//
// 返回 false 表示用户不存在；重复添加返回 true（幂等）。
func (l *Ledger) Add(ctx context.Context, userID string, cat model.FavoriteCategory, itemID string) (bool, error) {
	if !cat.Valid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidCategory, cat)
	}
	if !model.ValidFavoriteID(itemID) {
		return false, fmt.Errorf("%w: %q", ErrInvalidItemID, itemID)
	}

	err := l.store.AddUserFavorite(ctx, userID, cat, itemID)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("add favorite: %w", err)
	}

	l.log.WithUserID(userID).Debug("Added favorite", "category", string(cat), "item_id", itemID)
	return true, nil
}

// Remove 将条目移出用户的收藏集合
//
// 返回 false 表示用户不存在；条目本就不在集合中时返回 true。
func (l *Ledger) Remove(ctx context.Context, userID string, cat model.FavoriteCategory, itemID string) (bool, error) {
	if !cat.Valid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidCategory, cat)
	}
	if !model.ValidFavoriteID(itemID) {
		return false, fmt.Errorf("%w: %q", ErrInvalidItemID, itemID)
	}

	err := l.store.RemoveUserFavorite(ctx, userID, cat, itemID)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("remove favorite: %w", err)
	}

	l.log.WithUserID(userID).Debug("Removed favorite", "category", string(cat), "item_id", itemID)
	return true, nil
}

// List 返回用户指定类别的收藏集合，脏条目已过滤
//
// 用户不存在时返回空集合而非错误，读路径对脏数据和
// 悬空用户都保持宽容。
func (l *Ledger) List(ctx context.Context, userID string, cat model.FavoriteCategory) ([]string, error) {
	if !cat.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, cat)
	}

	user, err := l.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return []string{}, nil
	}
	return model.FilterFavoriteIDs(user.Favorites(cat)), nil
}
