package mongostore

import (
	"context"

	"nassnews/internal/shared/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ============================================================================
// CityStore
// ============================================================================

// CreateCity 插入城市
// cities.name 有唯一索引，并发创建同名城市时后写者得到 ErrDuplicate
func (s *Store) CreateCity(ctx context.Context, city *model.City) error {
	if city.ID == "" {
		city.ID = newID()
	}
	return insertOne(ctx, s.col(ColCities), city)
}

func (s *Store) GetCity(ctx context.Context, id string) (*model.City, error) {
	return findOne[model.City](ctx, s.col(ColCities), bson.D{{Key: "_id", Value: id}})
}

func (s *Store) GetCityByName(ctx context.Context, name string) (*model.City, error) {
	return findOne[model.City](ctx, s.col(ColCities), bson.D{{Key: "name", Value: name}})
}

func (s *Store) ListCities(ctx context.Context) ([]*model.City, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return findMany[model.City](ctx, s.col(ColCities), bson.D{}, opts)
}

// DeleteCity 删除城市；引用它的用户/新闻/活动不做级联清理
func (s *Store) DeleteCity(ctx context.Context, id string) error {
	return deleteByID(ctx, s.col(ColCities), id)
}
