// Package seed 首次启动时填充演示数据
package seed

import (
	"context"
	"fmt"
	"time"

	"nassnews/internal/shared/model"
	"nassnews/internal/shared/storage"
	"nassnews/pkg/logging"
)

// CityProvider 城市按名称去重入库（由 geo.Resolver 实现）
type CityProvider interface {
	GetOrCreateByName(ctx context.Context, name string) (*model.City, error)
}

// Seeder 演示数据填充器
//
// 仅在文章集合为空时执行，重复启动不会产生重复数据。
type Seeder struct {
	store  storage.ArticleStore
	cities CityProvider
	log    *logging.Logger
}

// NewSeeder 创建填充器
func NewSeeder(store storage.ArticleStore, cities CityProvider, log *logging.Logger) *Seeder {
	if log == nil {
		log = logging.Default("seed")
	}
	return &Seeder{store: store, cities: cities, log: log}
}

// Run 按需填充演示数据
//
// 返回实际写入的文章数；集合非空时返回 0 且不做任何写入。
func (s *Seeder) Run(ctx context.Context) (int, error) {
	count, err := s.store.CountArticles(ctx)
	if err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	if count > 0 {
		s.log.Debug("Articles already present, skipping seed", "count", count)
		return 0, nil
	}

	agadir, err := s.cities.GetOrCreateByName(ctx, "Agadir")
	if err != nil {
		return 0, fmt.Errorf("seed city: %w", err)
	}

	now := time.Now()
	samples := []*model.Article{
		{
			Title:       "Le festival Timitar revient cet été à Agadir",
			Content:     "La nouvelle édition du festival des musiques amazighes et du monde réunira des dizaines d'artistes sur la place Al Amal.",
			PublishedAt: now.Add(-24 * time.Hour),
			Source:      "NassNews",
			Category:    "culture",
			CityID:      agadir.ID,
		},
		{
			Title:       "Travaux sur le pont de l'oued Souss : circulation déviée",
			Content:     "Les travaux de renforcement du pont entraînent une déviation de la circulation pendant trois semaines.",
			PublishedAt: now.Add(-12 * time.Hour),
			Source:      "NassNews",
			Category:    "infrastructure",
			CityID:      agadir.ID,
		},
		{
			Title:       "Le marathon international ouvre ses inscriptions",
			Content:     "Les coureurs peuvent s'inscrire dès aujourd'hui pour l'édition de cette année, départ prévu sur la corniche.",
			PublishedAt: now.Add(-6 * time.Hour),
			Source:      "NassNews",
			Category:    "sport",
			CityID:      agadir.ID,
		},
	}

	seeded := 0
	for _, article := range samples {
		if err := s.store.CreateArticle(ctx, article); err != nil {
			return seeded, fmt.Errorf("seed article %q: %w", article.Title, err)
		}
		seeded++
	}

	s.log.Info("Seeded demo articles", "count", seeded, "city_id", agadir.ID)
	return seeded, nil
}
