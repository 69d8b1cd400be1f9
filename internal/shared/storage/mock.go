// mock.go 提供用于测试的内存 Store 实现
//
// 行为与 mongostore 对齐：唯一索引（用户邮箱、城市名称）返回
// ErrDuplicate，收藏集合的增删是持锁的单步原子操作。
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"nassnews/internal/shared/model"
)

// MockStore 内存存储，仅用于测试
type MockStore struct {
	mu       sync.RWMutex
	users    map[string]*model.User
	cities   map[string]*model.City
	articles map[string]*model.Article
	events   map[string]*model.Event
	seq      int
}

// NewMockStore 创建内存存储实例
func NewMockStore() *MockStore {
	return &MockStore{
		users:    make(map[string]*model.User),
		cities:   make(map[string]*model.City),
		articles: make(map[string]*model.Article),
		events:   make(map[string]*model.Event),
	}
}

// 确保 MockStore 实现了 Store 接口
var _ Store = (*MockStore)(nil)

func (s *MockStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%04d", prefix, s.seq)
}

// Close 关闭存储
func (s *MockStore) Close() error { return nil }

// ============================================================================
// UserStore
// ============================================================================

func (s *MockStore) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrDuplicate
		}
	}
	if user.ID == "" {
		user.ID = s.nextID("usr")
	} else if _, ok := s.users[user.ID]; ok {
		return ErrDuplicate
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *MockStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	cp.FavoriteCities = append([]string(nil), u.FavoriteCities...)
	cp.FavoriteNews = append([]string(nil), u.FavoriteNews...)
	cp.FavoriteEvents = append([]string(nil), u.FavoriteEvents...)
	return &cp, nil
}

func (s *MockStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			cp.FavoriteCities = append([]string(nil), u.FavoriteCities...)
			cp.FavoriteNews = append([]string(nil), u.FavoriteNews...)
			cp.FavoriteEvents = append([]string(nil), u.FavoriteEvents...)
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *MockStore) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		cp := *u
		users = append(users, &cp)
	}
	return users, nil
}

func (s *MockStore) ListCityAdmins(ctx context.Context, cityID string) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	admins := []*model.User{}
	for _, u := range s.users {
		if u.Role != model.UserRoleCityAdmin {
			continue
		}
		if cityID != "" && u.CityID != cityID {
			continue
		}
		cp := *u
		admins = append(admins, &cp)
	}
	return admins, nil
}

func (s *MockStore) UpdateUser(ctx context.Context, id string, upd *model.UserUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Password != nil {
		u.Password = *upd.Password
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if upd.FavoriteCities != nil {
		u.FavoriteCities = append([]string(nil), upd.FavoriteCities...)
	}
	if upd.CityID != nil {
		u.CityID = *upd.CityID
	}
	u.UpdatedAt = time.Now()
	return nil
}

func (s *MockStore) UpdateUserCredential(ctx context.Context, id string, cred model.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Password = cred.Stored()
	u.UpdatedAt = time.Now()
	return nil
}

func (s *MockStore) AddUserFavorite(ctx context.Context, id string, cat model.FavoriteCategory, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	set := model.FilterFavoriteIDs(u.Favorites(cat))
	for _, existing := range set {
		if existing == itemID {
			s.setFavorites(u, cat, set)
			return nil
		}
	}
	s.setFavorites(u, cat, append(set, itemID))
	return nil
}

func (s *MockStore) RemoveUserFavorite(ctx context.Context, id string, cat model.FavoriteCategory, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	set := model.FilterFavoriteIDs(u.Favorites(cat))
	out := set[:0]
	for _, existing := range set {
		if existing != itemID {
			out = append(out, existing)
		}
	}
	s.setFavorites(u, cat, out)
	return nil
}

func (s *MockStore) setFavorites(u *model.User, cat model.FavoriteCategory, ids []string) {
	switch cat {
	case model.FavoriteCity:
		u.FavoriteCities = ids
	case model.FavoriteNews:
		u.FavoriteNews = ids
	case model.FavoriteEvent:
		u.FavoriteEvents = ids
	}
	u.UpdatedAt = time.Now()
}

func (s *MockStore) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// ============================================================================
// CityStore
// ============================================================================

func (s *MockStore) CreateCity(ctx context.Context, city *model.City) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.cities {
		if c.Name == city.Name {
			return ErrDuplicate
		}
	}
	if city.ID == "" {
		city.ID = s.nextID("city")
	}
	cp := *city
	s.cities[city.ID] = &cp
	return nil
}

func (s *MockStore) GetCity(ctx context.Context, id string) (*model.City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cities[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *MockStore) GetCityByName(ctx context.Context, name string) (*model.City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cities {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *MockStore) ListCities(ctx context.Context) ([]*model.City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cities := make([]*model.City, 0, len(s.cities))
	for _, c := range s.cities {
		cp := *c
		cities = append(cities, &cp)
	}
	sort.Slice(cities, func(i, j int) bool { return cities[i].Name < cities[j].Name })
	return cities, nil
}

func (s *MockStore) DeleteCity(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cities[id]; !ok {
		return ErrNotFound
	}
	delete(s.cities, id)
	return nil
}

// ============================================================================
// ArticleStore
// ============================================================================

func (s *MockStore) CreateArticle(ctx context.Context, article *model.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if article.ID == "" {
		article.ID = s.nextID("art")
	}
	cp := *article
	s.articles[article.ID] = &cp
	return nil
}

func (s *MockStore) GetArticle(ctx context.Context, id string) (*model.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.articles[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (s *MockStore) ListArticles(ctx context.Context) ([]*model.Article, error) {
	return s.filterArticles(func(*model.Article) bool { return true })
}

func (s *MockStore) ListArticlesByCity(ctx context.Context, cityID string) ([]*model.Article, error) {
	return s.filterArticles(func(a *model.Article) bool { return a.CityID == cityID })
}

func (s *MockStore) ListArticlesByCategory(ctx context.Context, category string) ([]*model.Article, error) {
	return s.filterArticles(func(a *model.Article) bool { return a.Category == category })
}

func (s *MockStore) filterArticles(keep func(*model.Article) bool) ([]*model.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	articles := []*model.Article{}
	for _, a := range s.articles {
		if keep(a) {
			cp := *a
			articles = append(articles, &cp)
		}
	}
	// 与 mongostore 一致：发布时间倒序
	sort.Slice(articles, func(i, j int) bool { return articles[i].PublishedAt.After(articles[j].PublishedAt) })
	return articles, nil
}

func (s *MockStore) CountArticles(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.articles)), nil
}

// ============================================================================
// EventStore
// ============================================================================

func (s *MockStore) CreateEvent(ctx context.Context, event *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if event.ID == "" {
		event.ID = s.nextID("evt")
	}
	cp := *event
	s.events[event.ID] = &cp
	return nil
}

func (s *MockStore) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (s *MockStore) ListEvents(ctx context.Context) ([]*model.Event, error) {
	return s.filterEvents(func(*model.Event) bool { return true })
}

func (s *MockStore) ListEventsByCity(ctx context.Context, cityID string) ([]*model.Event, error) {
	return s.filterEvents(func(e *model.Event) bool { return e.CityID == cityID })
}

func (s *MockStore) ListEventsByCategory(ctx context.Context, category string) ([]*model.Event, error) {
	return s.filterEvents(func(e *model.Event) bool { return e.Category == category })
}

func (s *MockStore) filterEvents(keep func(*model.Event) bool) ([]*model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := []*model.Event{}
	for _, e := range s.events {
		if keep(e) {
			cp := *e
			events = append(events, &cp)
		}
	}
	// 与 mongostore 一致：日期升序
	sort.Slice(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	return events, nil
}

func (s *MockStore) UpdateEvent(ctx context.Context, event *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[event.ID]; !ok {
		return ErrNotFound
	}
	cp := *event
	s.events[event.ID] = &cp
	return nil
}

func (s *MockStore) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return ErrNotFound
	}
	delete(s.events, id)
	return nil
}
