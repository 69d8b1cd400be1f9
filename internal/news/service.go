// Package news 新闻文章服务
package news

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nassnews/internal/shared/model"
	"nassnews/internal/shared/storage"
	"nassnews/pkg/logging"
)

// ErrArticleNotFound 文章不存在
var ErrArticleNotFound = errors.New("article not found")

// CityValidator 城市引用校验（由 geo.Resolver 实现）
type CityValidator interface {
	Validate(ctx context.Context, cityID string) (*model.City, error)
}

// Service 新闻文章服务
type Service struct {
	store  storage.ArticleStore
	cities CityValidator
	log    *logging.Logger
}

// NewService 创建新闻服务
func NewService(store storage.ArticleStore, cities CityValidator, log *logging.Logger) *Service {
	if log == nil {
		log = logging.Default("news")
	}
	return &Service{store: store, cities: cities, log: log}
}

// Create 创建文章，关联城市先校验存在性，发布时间缺省为当前时间
func (s *Service) Create(ctx context.Context, article *model.Article) error {
	if article.CityID != "" {
		if _, err := s.cities.Validate(ctx, article.CityID); err != nil {
			return fmt.Errorf("city reference: %w", err)
		}
	}
	if article.PublishedAt.IsZero() {
		article.PublishedAt = time.Now()
	}
	if err := s.store.CreateArticle(ctx, article); err != nil {
		return fmt.Errorf("create article: %w", err)
	}
	s.log.Info("Article created", "article_id", article.ID, "city_id", article.CityID)
	return nil
}

// Get 按 ID 取文章，不存在返回 ErrArticleNotFound
func (s *Service) Get(ctx context.Context, id string) (*model.Article, error) {
	article, err := s.store.GetArticle(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, fmt.Errorf("article %s: %w", id, ErrArticleNotFound)
	}
	return article, nil
}

// List 列出全部文章，按发布时间倒序
func (s *Service) List(ctx context.Context) ([]*model.Article, error) {
	return s.store.ListArticles(ctx)
}

// ListByCity 列出指定城市的文章
func (s *Service) ListByCity(ctx context.Context, cityID string) ([]*model.Article, error) {
	return s.store.ListArticlesByCity(ctx, cityID)
}

// ListByCategory 列出指定分类的文章
func (s *Service) ListByCategory(ctx context.Context, category string) ([]*model.Article, error) {
	return s.store.ListArticlesByCategory(ctx, category)
}
