package mongostore

import (
	"context"
	"fmt"
	"time"

	"nassnews/internal/shared/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ============================================================================
// UserStore
// ============================================================================

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = newID()
	}
	return insertOne(ctx, s.col(ColUsers), user)
}

func (s *Store) GetUser(ctx context.Context, id string) (*model.User, error) {
	return findOne[model.User](ctx, s.col(ColUsers), bson.D{{Key: "_id", Value: id}})
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return findOne[model.User](ctx, s.col(ColUsers), bson.D{{Key: "email", Value: email}})
}

func (s *Store) ListUsers(ctx context.Context) ([]*model.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findMany[model.User](ctx, s.col(ColUsers), bson.D{}, opts)
}

func (s *Store) ListCityAdmins(ctx context.Context, cityID string) ([]*model.User, error) {
	filter := bson.D{{Key: "role", Value: model.UserRoleCityAdmin}}
	if cityID != "" {
		filter = append(filter, bson.E{Key: "city_id", Value: cityID})
	}
	return findMany[model.User](ctx, s.col(ColUsers), filter)
}

// UpdateUser 字段级部分更新，未提供的字段保持不变
func (s *Store) UpdateUser(ctx context.Context, id string, upd *model.UserUpdate) error {
	set := bson.D{{Key: "updated_at", Value: time.Now()}}
	if upd.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *upd.Name})
	}
	if upd.Email != nil {
		set = append(set, bson.E{Key: "email", Value: *upd.Email})
	}
	if upd.Password != nil {
		set = append(set, bson.E{Key: "password", Value: *upd.Password})
	}
	if upd.Role != nil {
		set = append(set, bson.E{Key: "role", Value: *upd.Role})
	}
	if upd.FavoriteCities != nil {
		set = append(set, bson.E{Key: "favorite_cities", Value: upd.FavoriteCities})
	}
	if upd.CityID != nil {
		set = append(set, bson.E{Key: "city_id", Value: *upd.CityID})
	}
	return updateFields(ctx, s.col(ColUsers), id, set)
}

// UpdateUserCredential 单字段原子替换凭据
func (s *Store) UpdateUserCredential(ctx context.Context, id string, cred model.Credential) error {
	return updateFields(ctx, s.col(ColUsers), id, bson.D{
		{Key: "password", Value: cred.Stored()},
		{Key: "updated_at", Value: time.Now()},
	})
}

// favoriteJunk 收藏集合中需要清理的脏条目（null、空串、字面量 "null"）
var favoriteJunk = bson.A{nil, "", "null"}

// AddUserFavorite 原子地把 itemID 加入收藏集合
//
// $pull 与 $addToSet 不能作用于同一字段的同一次更新，
// 因此先清理脏条目再入集。两步各自原子，均可与并发写安全交错。
func (s *Store) AddUserFavorite(ctx context.Context, id string, cat model.FavoriteCategory, itemID string) error {
	field := cat.Field()
	if field == "" {
		return fmt.Errorf("mongostore: unknown favorite category %q", cat)
	}

	cleanup := bson.D{
		{Key: "$pull", Value: bson.D{{Key: field, Value: bson.D{{Key: "$in", Value: favoriteJunk}}}}},
	}
	if err := updateByID(ctx, s.col(ColUsers), id, cleanup); err != nil {
		return err
	}

	update := bson.D{
		{Key: "$addToSet", Value: bson.D{{Key: field, Value: itemID}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: time.Now()}}},
	}
	return updateByID(ctx, s.col(ColUsers), id, update)
}

// RemoveUserFavorite 原子地把 itemID 移出收藏集合（顺带清理脏条目）
func (s *Store) RemoveUserFavorite(ctx context.Context, id string, cat model.FavoriteCategory, itemID string) error {
	field := cat.Field()
	if field == "" {
		return fmt.Errorf("mongostore: unknown favorite category %q", cat)
	}

	pulled := append(bson.A{itemID}, favoriteJunk...)
	update := bson.D{
		{Key: "$pull", Value: bson.D{{Key: field, Value: bson.D{{Key: "$in", Value: pulled}}}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: time.Now()}}},
	}
	return updateByID(ctx, s.col(ColUsers), id, update)
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return deleteByID(ctx, s.col(ColUsers), id)
}
