// Package events 城市活动服务
package events

import (
	"context"
	"errors"
	"fmt"

	"nassnews/internal/shared/model"
	"nassnews/internal/shared/storage"
	"nassnews/pkg/logging"
)

// ErrEventNotFound 活动不存在
var ErrEventNotFound = errors.New("event not found")

// CityValidator 城市引用校验（由 geo.Resolver 实现）
type CityValidator interface {
	Validate(ctx context.Context, cityID string) (*model.City, error)
}

// Service 城市活动服务
type Service struct {
	store  storage.EventStore
	cities CityValidator
	log    *logging.Logger
}

// NewService 创建活动服务
func NewService(store storage.EventStore, cities CityValidator, log *logging.Logger) *Service {
	if log == nil {
		log = logging.Default("events")
	}
	return &Service{store: store, cities: cities, log: log}
}

// Create 创建活动，关联城市先校验存在性
func (s *Service) Create(ctx context.Context, event *model.Event) error {
	if event.CityID != "" {
		if _, err := s.cities.Validate(ctx, event.CityID); err != nil {
			return fmt.Errorf("city reference: %w", err)
		}
	}
	if err := s.store.CreateEvent(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	s.log.Info("Event created", "event_id", event.ID, "city_id", event.CityID)
	return nil
}

// Get 按 ID 取活动，不存在返回 ErrEventNotFound
func (s *Service) Get(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.store.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("event %s: %w", id, ErrEventNotFound)
	}
	return event, nil
}

// List 列出全部活动，按日期升序
func (s *Service) List(ctx context.Context) ([]*model.Event, error) {
	return s.store.ListEvents(ctx)
}

// ListByCity 列出指定城市的活动
func (s *Service) ListByCity(ctx context.Context, cityID string) ([]*model.Event, error) {
	return s.store.ListEventsByCity(ctx, cityID)
}

// ListByCategory 列出指定分类的活动
func (s *Service) ListByCategory(ctx context.Context, category string) ([]*model.Event, error) {
	return s.store.ListEventsByCategory(ctx, category)
}

// Update 整体更新活动，更换关联城市时重新校验
func (s *Service) Update(ctx context.Context, event *model.Event) error {
	if event.CityID != "" {
		if _, err := s.cities.Validate(ctx, event.CityID); err != nil {
			return fmt.Errorf("city reference: %w", err)
		}
	}
	if err := s.store.UpdateEvent(ctx, event); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("event %s: %w", event.ID, ErrEventNotFound)
		}
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// Delete 删除活动
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteEvent(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("event %s: %w", id, ErrEventNotFound)
		}
		return err
	}
	return nil
}
