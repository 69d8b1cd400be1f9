package credential

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nassnews/internal/shared/model"
	"nassnews/internal/shared/storage"
)

// fakeHasher 测试用快速哈希器，输出带 bcrypt 版本前缀
type fakeHasher struct{}

func (fakeHasher) Hash(plaintext string) (string, error) {
	return "$2y$10$" + plaintext, nil
}

func (fakeHasher) Verify(plaintext, hash string) bool {
	return hash == "$2y$10$"+plaintext
}

func newTestManager(cfg Config) (*Manager, *storage.MockStore) {
	store := storage.NewMockStore()
	return NewManager(store, fakeHasher{}, cfg, nil), store
}

func seedLegacyUser(t *testing.T, store *storage.MockStore, email, plaintext string) *model.User {
	t.Helper()
	now := time.Now()
	user := &model.User{
		Name:      "Legacy",
		Email:     email,
		Password:  plaintext,
		Role:      model.UserRoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func TestRegisterThenAuthenticate(t *testing.T) {
	m, _ := newTestManager(Config{})
	ctx := context.Background()

	user, err := m.Register(ctx, "Karim", "karim@test.com", "pass123", "pass123")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, model.UserRoleUser, user.Role)
	assert.NotEqual(t, "pass123", user.Password)
	assert.True(t, model.ParseCredential(user.Password).IsHashed())

	got, err := m.Authenticate(ctx, "karim@test.com", "pass123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	m, store := newTestManager(Config{})

	_, err := m.Register(context.Background(), "Karim", "karim@test.com", "pass123", "pass124")
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	users, _ := store.ListUsers(context.Background())
	assert.Empty(t, users)
}

func TestRegister_EmailTaken(t *testing.T) {
	m, _ := newTestManager(Config{})
	ctx := context.Background()

	_, err := m.Register(ctx, "Karim", "karim@test.com", "pass123", "pass123")
	require.NoError(t, err)

	_, err = m.Register(ctx, "Autre", "karim@test.com", "other", "other")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	m, _ := newTestManager(Config{})

	_, err := m.Authenticate(context.Background(), "nobody@test.com", "pass123")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAuthenticate_UnknownEmail_Obscured(t *testing.T) {
	m, _ := newTestManager(Config{ObscureNotFound: true})

	_, err := m.Authenticate(context.Background(), "nobody@test.com", "pass123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	m, _ := newTestManager(Config{})
	ctx := context.Background()

	_, err := m.Register(ctx, "Karim", "karim@test.com", "pass123", "pass123")
	require.NoError(t, err)

	_, err = m.Authenticate(ctx, "karim@test.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_LegacyMigration(t *testing.T) {
	m, store := newTestManager(Config{})
	ctx := context.Background()

	user := seedLegacyUser(t, store, "legacy@test.com", "pass123")

	// First login matches the plaintext and migrates
	got, err := m.Authenticate(ctx, "legacy@test.com", "pass123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	stored, err := store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, model.ParseCredential(stored.Password).IsHashed(), "credential not migrated: %q", stored.Password)
	assert.NotEqual(t, "pass123", stored.Password)

	// Second login succeeds through the hash path
	_, err = m.Authenticate(ctx, "legacy@test.com", "pass123")
	require.NoError(t, err)
}

func TestAuthenticate_LegacyWrongPassword_NoMigration(t *testing.T) {
	m, store := newTestManager(Config{})
	ctx := context.Background()

	user := seedLegacyUser(t, store, "legacy@test.com", "pass123")

	_, err := m.Authenticate(ctx, "legacy@test.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	stored, _ := store.GetUser(ctx, user.ID)
	assert.Equal(t, "pass123", stored.Password, "failed login must not touch the credential")
}

// failingCredentialStore 模拟迁移写入失败的存储
type failingCredentialStore struct {
	*storage.MockStore
}

func (s *failingCredentialStore) UpdateUserCredential(ctx context.Context, id string, cred model.Credential) error {
	return errors.New("write failed")
}

func TestAuthenticate_MigrationWriteFailure_StillSucceeds(t *testing.T) {
	inner := storage.NewMockStore()
	store := &failingCredentialStore{MockStore: inner}
	m := NewManager(store, fakeHasher{}, Config{}, nil)
	ctx := context.Background()

	user := seedLegacyUser(t, inner, "legacy@test.com", "pass123")

	// Auth succeeds even though the migration write fails
	got, err := m.Authenticate(ctx, "legacy@test.com", "pass123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	// Credential unchanged, migration retried on next login
	stored, _ := inner.GetUser(ctx, user.ID)
	assert.Equal(t, "pass123", stored.Password)

	_, err = m.Authenticate(ctx, "legacy@test.com", "pass123")
	require.NoError(t, err)
}

func TestHashIfPlaintext(t *testing.T) {
	m, _ := newTestManager(Config{})

	hashed, err := m.HashIfPlaintext("pass123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hashed, "$2y$"))

	// Already hashed values pass through untouched
	same, err := m.HashIfPlaintext(hashed)
	require.NoError(t, err)
	assert.Equal(t, hashed, same)

	empty, err := m.HashIfPlaintext("")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestBcryptHasher_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("bcrypt is slow")
	}
	h := NewBcryptHasher(4) // MinCost for test speed

	hash, err := h.Hash("pass123")
	require.NoError(t, err)
	assert.True(t, model.ParseCredential(hash).IsHashed())
	assert.True(t, h.Verify("pass123", hash))
	assert.False(t, h.Verify("wrong", hash))
}
