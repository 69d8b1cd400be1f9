package model

import (
	"strings"
	"time"
)

// UserRole 用户角色
type UserRole string

const (
	UserRoleUser        UserRole = "user"
	UserRoleCityAdmin   UserRole = "city_admin"
	UserRoleSystemAdmin UserRole = "system_admin"
)

// FavoriteCategory 收藏类别，对应用户文档上三个互相独立的数组字段
type FavoriteCategory string

const (
	FavoriteCity  FavoriteCategory = "city"
	FavoriteNews  FavoriteCategory = "news"
	FavoriteEvent FavoriteCategory = "event"
)

// Field 返回该类别在用户文档上的字段名
func (c FavoriteCategory) Field() string {
	switch c {
	case FavoriteCity:
		return "favorite_cities"
	case FavoriteNews:
		return "favorite_news"
	case FavoriteEvent:
		return "favorite_events"
	}
	return ""
}

// Valid 类别是否合法
func (c FavoriteCategory) Valid() bool {
	return c.Field() != ""
}

// User 用户聚合
//
// Password 存储的是密文（bcrypt 哈希）或历史遗留的明文，
// 通过 ParseCredential 判别，绝不出现在 JSON 输出中。
type User struct {
	ID             string    `json:"id" bson:"_id"`
	Name           string    `json:"name" bson:"name"`
	Email          string    `json:"email" bson:"email"`
	Password       string    `json:"-" bson:"password"` // never expose in JSON
	Role           UserRole  `json:"role" bson:"role"`
	FavoriteCities []string  `json:"favorite_cities" bson:"favorite_cities"`
	FavoriteNews   []string  `json:"favorite_news" bson:"favorite_news"`
	FavoriteEvents []string  `json:"favorite_events" bson:"favorite_events"`
	CityID         string    `json:"city_id,omitempty" bson:"city_id,omitempty"` // 市级管理员关联的城市
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

// Favorites 返回指定类别的收藏集合（未过滤）
func (u *User) Favorites(cat FavoriteCategory) []string {
	switch cat {
	case FavoriteCity:
		return u.FavoriteCities
	case FavoriteNews:
		return u.FavoriteNews
	case FavoriteEvent:
		return u.FavoriteEvents
	}
	return nil
}

// UserUpdate 用户部分更新，nil 字段表示不修改
type UserUpdate struct {
	Name           *string
	Email          *string
	Password       *string // 明文或已哈希，由调用方判别处理
	Role           *UserRole
	FavoriteCities []string
	CityID         *string
}

// ValidFavoriteID 收藏项 ID 是否合法
// 历史数据中存在 null、空串和字面量 "null" 的脏条目，统一在此过滤
func ValidFavoriteID(id string) bool {
	trimmed := strings.TrimSpace(id)
	return trimmed != "" && trimmed != "null"
}

// FilterFavoriteIDs 过滤收藏集合中的脏条目，始终返回非 nil 切片
func FilterFavoriteIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if ValidFavoriteID(id) {
			out = append(out, id)
		}
	}
	return out
}
