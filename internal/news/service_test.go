package news

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nassnews/internal/shared/model"
	"nassnews/internal/shared/storage"
)

type stubCityValidator struct {
	known map[string]bool
}

func (v *stubCityValidator) Validate(ctx context.Context, cityID string) (*model.City, error) {
	if v.known[cityID] {
		return &model.City{ID: cityID}, nil
	}
	return nil, storage.ErrNotFound
}

func newTestService() (*Service, *storage.MockStore) {
	store := storage.NewMockStore()
	cities := &stubCityValidator{known: map[string]bool{"agadir-id": true}}
	return NewService(store, cities, nil), store
}

func TestCreateAndGet(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	article := &model.Article{
		Title:    "Festival Timitar revient cet été",
		Content:  "La 19e édition du festival aura lieu en juillet.",
		Source:   "Le Matin",
		Category: "culture",
		CityID:   "agadir-id",
	}
	require.NoError(t, svc.Create(ctx, article))
	assert.NotEmpty(t, article.ID)
	assert.False(t, article.PublishedAt.IsZero(), "publish time defaults to now")

	got, err := svc.Get(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, article.Title, got.Title)
}

func TestCreate_DanglingCityRejected(t *testing.T) {
	svc, store := newTestService()

	err := svc.Create(context.Background(), &model.Article{Title: "x", CityID: "no-such-city"})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	count, _ := store.CountArticles(context.Background())
	assert.Zero(t, count)
}

func TestCreate_NoCityAllowed(t *testing.T) {
	svc, _ := newTestService()

	// National news without a city association
	err := svc.Create(context.Background(), &model.Article{Title: "Budget national adopté"})
	require.NoError(t, err)
}

func TestGet_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Get(context.Background(), "no-such-article")
	assert.ErrorIs(t, err, ErrArticleNotFound)
}

func TestListQueries(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	older := &model.Article{Title: "old", CityID: "agadir-id", Category: "sport", PublishedAt: time.Now().Add(-time.Hour)}
	newer := &model.Article{Title: "new", CityID: "agadir-id", Category: "culture", PublishedAt: time.Now()}
	other := &model.Article{Title: "elsewhere", Category: "culture", PublishedAt: time.Now().Add(-2 * time.Hour)}
	for _, a := range []*model.Article{older, newer, other} {
		require.NoError(t, svc.Create(ctx, a))
	}

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "new", all[0].Title, "newest first")

	byCity, err := svc.ListByCity(ctx, "agadir-id")
	require.NoError(t, err)
	assert.Len(t, byCity, 2)

	byCategory, err := svc.ListByCategory(ctx, "culture")
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)
}
