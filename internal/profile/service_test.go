package profile

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nassnews/internal/credential"
	"nassnews/internal/favorites"
	"nassnews/internal/shared/model"
	"nassnews/internal/shared/storage"
)

// fakeHasher 可预测的测试哈希器，避免 bcrypt 拖慢单测
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "$2y$10$" + password, nil
}

func (fakeHasher) Verify(password, hash string) bool {
	return strings.TrimPrefix(hash, "$2y$10$") == password
}

// stubCityValidator 仅认识注入的城市 ID
type stubCityValidator struct {
	known map[string]*model.City
}

func (v *stubCityValidator) Validate(ctx context.Context, cityID string) (*model.City, error) {
	if city, ok := v.known[cityID]; ok {
		return city, nil
	}
	return nil, storage.ErrNotFound
}

type fixture struct {
	svc    *Service
	store  *storage.MockStore
	cities *stubCityValidator
}

func newFixture(t *testing.T, tokens credential.TokenConfig) *fixture {
	t.Helper()
	store := storage.NewMockStore()
	cities := &stubCityValidator{known: map[string]*model.City{
		"agadir-id": {ID: "agadir-id", Name: "Agadir"},
	}}
	creds := credential.NewManager(store, fakeHasher{}, credential.Config{}, nil)
	ledger := favorites.NewLedger(store, nil)
	return &fixture{
		svc:    NewService(store, creds, ledger, cities, tokens, nil),
		store:  store,
		cities: cities,
	}
}

func TestRegisterLoginFavoritesLifecycle(t *testing.T) {
	f := newFixture(t, credential.DefaultTokenConfig())
	ctx := context.Background()

	user, pair, err := f.svc.Register(ctx, "Karim", "karim@example.com", "s3cret", "s3cret")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Nil(t, pair, "no tokens without a configured secret")

	loggedIn, _, err := f.svc.Login(ctx, "karim@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	ok, err := f.svc.AddFavorite(ctx, user.ID, model.FavoriteCity, "agadir-id")
	require.NoError(t, err)
	assert.True(t, ok)

	ids, err := f.svc.ListFavorites(ctx, user.ID, model.FavoriteCity)
	require.NoError(t, err)
	assert.Equal(t, []string{"agadir-id"}, ids)

	ok, err = f.svc.RemoveFavorite(ctx, user.ID, model.FavoriteCity, "agadir-id")
	require.NoError(t, err)
	assert.True(t, ok)

	ids, err = f.svc.ListFavorites(ctx, user.ID, model.FavoriteCity)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestLogin_IssuesTokensWhenConfigured(t *testing.T) {
	tokens := credential.DefaultTokenConfig()
	tokens.JWTSecret = "test-secret"
	f := newFixture(t, tokens)
	ctx := context.Background()

	_, pair, err := f.svc.Register(ctx, "Karim", "karim@example.com", "s3cret", "s3cret")
	require.NoError(t, err)
	require.NotNil(t, pair)

	claims, err := credential.ParseToken(tokens, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "karim@example.com", claims.Email)
	assert.Equal(t, "access", claims.Type)
}

func TestAddFavoriteCity_RejectsDanglingReference(t *testing.T) {
	f := newFixture(t, credential.DefaultTokenConfig())
	ctx := context.Background()

	user, _, err := f.svc.Register(ctx, "Karim", "karim@example.com", "s3cret", "s3cret")
	require.NoError(t, err)

	_, err = f.svc.AddFavorite(ctx, user.ID, model.FavoriteCity, "no-such-city")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	ids, err := f.svc.ListFavorites(ctx, user.ID, model.FavoriteCity)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestAddFavorite_NonCityNotValidated(t *testing.T) {
	f := newFixture(t, credential.DefaultTokenConfig())
	ctx := context.Background()

	user, _, err := f.svc.Register(ctx, "Karim", "karim@example.com", "s3cret", "s3cret")
	require.NoError(t, err)

	ok, err := f.svc.AddFavorite(ctx, user.ID, model.FavoriteNews, "article-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateUser_HashesPlaintext(t *testing.T) {
	f := newFixture(t, credential.DefaultTokenConfig())
	ctx := context.Background()

	user := &model.User{Name: "Admin", Email: "admin@example.com", Password: "plaintext"}
	require.NoError(t, f.svc.CreateUser(ctx, user))

	stored, err := f.store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, model.ParseCredential(stored.Password).IsHashed())
	assert.Equal(t, model.UserRoleUser, stored.Role)
}

func TestCreateUser_PreservesHashedPassword(t *testing.T) {
	f := newFixture(t, credential.DefaultTokenConfig())
	ctx := context.Background()

	hashed := "$2y$10$already-hashed"
	user := &model.User{Name: "Admin", Email: "admin@example.com", Password: hashed}
	require.NoError(t, f.svc.CreateUser(ctx, user))

	stored, err := f.store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, hashed, stored.Password, "already hashed credentials pass through unchanged")
}

func TestCreateUser_DanglingCityRejected(t *testing.T) {
	f := newFixture(t, credential.DefaultTokenConfig())

	user := &model.User{Name: "Admin", Email: "admin@example.com", Password: "x", CityID: "no-such-city"}
	err := f.svc.CreateUser(context.Background(), user)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCreateUser_DanglingFavoriteCityRejected(t *testing.T) {
	f := newFixture(t, credential.DefaultTokenConfig())
	ctx := context.Background()

	user := &model.User{
		Name:           "Karim",
		Email:          "karim@example.com",
		Password:       "x",
		FavoriteCities: []string{"agadir-id", "no-such-city"},
	}
	err := f.svc.CreateUser(ctx, user)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	stored, err := f.store.GetUserByEmail(ctx, "karim@example.com")
	require.NoError(t, err)
	assert.Nil(t, stored, "user with a dangling favorite city must not be persisted")
}

func TestUpdateUser_DanglingFavoriteCityRejected(t *testing.T) {
	f := newFixture(t, credential.DefaultTokenConfig())
	ctx := context.Background()

	user, _, err := f.svc.Register(ctx, "Karim", "karim@example.com", "s3cret", "s3cret")
	require.NoError(t, err)

	err = f.svc.UpdateUser(ctx, user.ID, &model.UserUpdate{
		FavoriteCities: []string{"no-such-city"},
	})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	stored, err := f.store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.FavoriteCities)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	f := newFixture(t, credential.DefaultTokenConfig())
	ctx := context.Background()

	require.NoError(t, f.svc.CreateUser(ctx, &model.User{Name: "A", Email: "dup@example.com", Password: "x"}))
	err := f.svc.CreateUser(ctx, &model.User{Name: "B", Email: "dup@example.com", Password: "y"})
	assert.ErrorIs(t, err, credential.ErrEmailTaken)
}

func TestCreateUser_SanitizesFavorites(t *testing.T) {
	f := newFixture(t, credential.DefaultTokenConfig())
	ctx := context.Background()

	user := &model.User{
		Name:           "Karim",
		Email:          "karim@example.com",
		Password:       "x",
		FavoriteCities: []string{"agadir-id", "null", ""},
	}
	require.NoError(t, f.svc.CreateUser(ctx, user))

	stored, err := f.store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"agadir-id"}, stored.FavoriteCities)
	assert.Empty(t, stored.FavoriteNews)
	assert.Empty(t, stored.FavoriteEvents)
}

func TestUpdateUser(t *testing.T) {
	f := newFixture(t, credential.DefaultTokenConfig())
	ctx := context.Background()

	user, _, err := f.svc.Register(ctx, "Karim", "karim@example.com", "s3cret", "s3cret")
	require.NoError(t, err)

	newName := "Karim B."
	newPassword := "newpass"
	require.NoError(t, f.svc.UpdateUser(ctx, user.ID, &model.UserUpdate{
		Name:     &newName,
		Password: &newPassword,
	}))

	stored, err := f.store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Karim B.", stored.Name)
	assert.True(t, model.ParseCredential(stored.Password).IsHashed())

	// Login must work with the new password
	_, _, err = f.svc.Login(ctx, "karim@example.com", "newpass")
	require.NoError(t, err)
}

func TestUpdateUser_NotFound(t *testing.T) {
	f := newFixture(t, credential.DefaultTokenConfig())

	name := "x"
	err := f.svc.UpdateUser(context.Background(), "no-such-user", &model.UserUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCityAdmins(t *testing.T) {
	f := newFixture(t, credential.DefaultTokenConfig())
	ctx := context.Background()

	admin := &model.User{Name: "Admin", Email: "admin@agadir.ma", Password: "x"}
	require.NoError(t, f.svc.CreateCityAdmin(ctx, admin, "agadir-id"))

	stored, err := f.svc.GetUser(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, model.UserRoleCityAdmin, stored.Role)
	assert.Equal(t, "agadir-id", stored.CityID)

	admins, err := f.svc.ListCityAdmins(ctx, "agadir-id")
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, admin.ID, admins[0].ID)

	admins, err = f.svc.ListCityAdmins(ctx, "other-city")
	require.NoError(t, err)
	assert.Empty(t, admins)
}

func TestCreateCityAdmin_SecondAdminWarnsNotFails(t *testing.T) {
	f := newFixture(t, credential.DefaultTokenConfig())
	ctx := context.Background()

	first := &model.User{Name: "First", Email: "first@agadir.ma", Password: "x"}
	require.NoError(t, f.svc.CreateCityAdmin(ctx, first, "agadir-id"))

	// A second admin for the same city is allowed, only logged
	second := &model.User{Name: "Second", Email: "second@agadir.ma", Password: "x"}
	require.NoError(t, f.svc.CreateCityAdmin(ctx, second, "agadir-id"))

	admins, err := f.svc.ListCityAdmins(ctx, "agadir-id")
	require.NoError(t, err)
	assert.Len(t, admins, 2)
}

func TestGetUser_NotFound(t *testing.T) {
	f := newFixture(t, credential.DefaultTokenConfig())

	_, err := f.svc.GetUser(context.Background(), "no-such-user")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.svc.GetUserByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	f := newFixture(t, credential.DefaultTokenConfig())
	ctx := context.Background()

	user, _, err := f.svc.Register(ctx, "Karim", "karim@example.com", "s3cret", "s3cret")
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteUser(ctx, user.ID))
	assert.ErrorIs(t, f.svc.DeleteUser(ctx, user.ID), ErrUserNotFound)
}
