package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nassnews/internal/shared/model"
)

func TestMockStore_ReadsDoNotAliasFavorites(t *testing.T) {
	store := NewMockStore()
	ctx := context.Background()

	user := &model.User{
		Name:           "Karim",
		Email:          "karim@example.com",
		Password:       "x",
		FavoriteCities: []string{"agadir-id"},
	}
	require.NoError(t, store.CreateUser(ctx, user))

	byID, err := store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	byEmail, err := store.GetUserByEmail(ctx, "karim@example.com")
	require.NoError(t, err)

	// Mutating a returned copy must not leak into the stored document
	byID.FavoriteCities[0] = "mutated"
	byEmail.FavoriteCities[0] = "mutated"

	stored, err := store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"agadir-id"}, stored.FavoriteCities)
}
