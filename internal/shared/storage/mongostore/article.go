package mongostore

import (
	"context"

	"nassnews/internal/shared/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ============================================================================
// ArticleStore
// ============================================================================

func (s *Store) CreateArticle(ctx context.Context, article *model.Article) error {
	if article.ID == "" {
		article.ID = newID()
	}
	return insertOne(ctx, s.col(ColArticles), article)
}

func (s *Store) GetArticle(ctx context.Context, id string) (*model.Article, error) {
	return findOne[model.Article](ctx, s.col(ColArticles), bson.D{{Key: "_id", Value: id}})
}

func (s *Store) ListArticles(ctx context.Context) ([]*model.Article, error) {
	opts := options.Find().SetSort(bson.D{{Key: "published_at", Value: -1}})
	return findMany[model.Article](ctx, s.col(ColArticles), bson.D{}, opts)
}

func (s *Store) ListArticlesByCity(ctx context.Context, cityID string) ([]*model.Article, error) {
	opts := options.Find().SetSort(bson.D{{Key: "published_at", Value: -1}})
	return findMany[model.Article](ctx, s.col(ColArticles), bson.D{{Key: "city_id", Value: cityID}}, opts)
}

func (s *Store) ListArticlesByCategory(ctx context.Context, category string) ([]*model.Article, error) {
	opts := options.Find().SetSort(bson.D{{Key: "published_at", Value: -1}})
	return findMany[model.Article](ctx, s.col(ColArticles), bson.D{{Key: "category", Value: category}}, opts)
}

func (s *Store) CountArticles(ctx context.Context) (int64, error) {
	n, err := s.col(ColArticles).CountDocuments(ctx, bson.D{})
	return n, wrapError(err)
}
