package mongostore

import (
	"context"

	"nassnews/internal/shared/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ============================================================================
// EventStore
// ============================================================================

func (s *Store) CreateEvent(ctx context.Context, event *model.Event) error {
	if event.ID == "" {
		event.ID = newID()
	}
	return insertOne(ctx, s.col(ColEvents), event)
}

func (s *Store) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	return findOne[model.Event](ctx, s.col(ColEvents), bson.D{{Key: "_id", Value: id}})
}

func (s *Store) ListEvents(ctx context.Context) ([]*model.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	return findMany[model.Event](ctx, s.col(ColEvents), bson.D{}, opts)
}

func (s *Store) ListEventsByCity(ctx context.Context, cityID string) ([]*model.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	return findMany[model.Event](ctx, s.col(ColEvents), bson.D{{Key: "city_id", Value: cityID}}, opts)
}

func (s *Store) ListEventsByCategory(ctx context.Context, category string) ([]*model.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	return findMany[model.Event](ctx, s.col(ColEvents), bson.D{{Key: "category", Value: category}}, opts)
}

// UpdateEvent 整体替换可变字段（_id 不变）
func (s *Store) UpdateEvent(ctx context.Context, event *model.Event) error {
	return updateFields(ctx, s.col(ColEvents), event.ID, bson.D{
		{Key: "title", Value: event.Title},
		{Key: "description", Value: event.Description},
		{Key: "venue", Value: event.Venue},
		{Key: "date", Value: event.Date},
		{Key: "category", Value: event.Category},
		{Key: "city_id", Value: event.CityID},
	})
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	return deleteByID(ctx, s.col(ColEvents), id)
}
