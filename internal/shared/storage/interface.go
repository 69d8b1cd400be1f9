// Package storage 定义持久化存储层抽象接口
//
// 设计原则：依赖倒置 (DIP)
//   - 调用方只依赖接口，不知道具体实现
//   - 具体实现在子包中：mongostore/
//   - 初始化时通过依赖注入传入实现
//
// 查找类方法约定：单实体 Get* 在实体不存在时返回 (nil, nil)，
// 由业务层决定是否升级为 ErrNotFound；写操作未命中返回 ErrNotFound。
package storage

import (
	"context"

	"nassnews/internal/shared/model"
)

// UserStore 用户存储接口
type UserStore interface {
	// CreateUser 插入用户；ID 为空时由存储层分配
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	// ListCityAdmins 列出市级管理员；cityID 非空时限定关联城市
	ListCityAdmins(ctx context.Context, cityID string) ([]*model.User, error)
	// UpdateUser 按字段部分更新，保留未知字段
	UpdateUser(ctx context.Context, id string, upd *model.UserUpdate) error
	// UpdateUserCredential 单字段原子替换凭据（懒迁移写入点）
	UpdateUserCredential(ctx context.Context, id string, cred model.Credential) error
	// AddUserFavorite 原子地将 itemID 加入集合（$addToSet 语义，幂等）
	AddUserFavorite(ctx context.Context, id string, cat model.FavoriteCategory, itemID string) error
	// RemoveUserFavorite 原子地将 itemID 移出集合（$pull 语义，幂等）
	RemoveUserFavorite(ctx context.Context, id string, cat model.FavoriteCategory, itemID string) error
	DeleteUser(ctx context.Context, id string) error
}

// CityStore 城市存储接口
type CityStore interface {
	// CreateCity 插入城市；名称撞唯一索引时返回 ErrDuplicate
	CreateCity(ctx context.Context, city *model.City) error
	GetCity(ctx context.Context, id string) (*model.City, error)
	GetCityByName(ctx context.Context, name string) (*model.City, error)
	ListCities(ctx context.Context) ([]*model.City, error)
	DeleteCity(ctx context.Context, id string) error
}

// ArticleStore 新闻存储接口
type ArticleStore interface {
	CreateArticle(ctx context.Context, article *model.Article) error
	GetArticle(ctx context.Context, id string) (*model.Article, error)
	ListArticles(ctx context.Context) ([]*model.Article, error)
	ListArticlesByCity(ctx context.Context, cityID string) ([]*model.Article, error)
	ListArticlesByCategory(ctx context.Context, category string) ([]*model.Article, error)
	CountArticles(ctx context.Context) (int64, error)
}

// EventStore 活动存储接口
type EventStore interface {
	CreateEvent(ctx context.Context, event *model.Event) error
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	ListEvents(ctx context.Context) ([]*model.Event, error)
	ListEventsByCity(ctx context.Context, cityID string) ([]*model.Event, error)
	ListEventsByCategory(ctx context.Context, category string) ([]*model.Event, error)
	UpdateEvent(ctx context.Context, event *model.Event) error
	DeleteEvent(ctx context.Context, id string) error
}

// Store 持久化存储组合接口（由 mongostore.Store 实现）
type Store interface {
	UserStore
	CityStore
	ArticleStore
	EventStore
	Close() error
}
