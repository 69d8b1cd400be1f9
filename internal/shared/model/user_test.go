package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFavoriteCategory_Field(t *testing.T) {
	assert.Equal(t, "favorite_cities", FavoriteCity.Field())
	assert.Equal(t, "favorite_news", FavoriteNews.Field())
	assert.Equal(t, "favorite_events", FavoriteEvent.Field())
	assert.False(t, FavoriteCategory("bogus").Valid())
}

func TestFilterFavoriteIDs(t *testing.T) {
	in := []string{"agadir-id", "", "null", "  ", "n1", " null "}
	assert.Equal(t, []string{"agadir-id", "n1"}, FilterFavoriteIDs(in))
}

func TestFilterFavoriteIDs_NilInput(t *testing.T) {
	out := FilterFavoriteIDs(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestUser_Favorites(t *testing.T) {
	u := User{
		FavoriteCities: []string{"c1"},
		FavoriteNews:   []string{"n1", "n2"},
		FavoriteEvents: []string{"e1"},
	}
	assert.Equal(t, []string{"c1"}, u.Favorites(FavoriteCity))
	assert.Equal(t, []string{"n1", "n2"}, u.Favorites(FavoriteNews))
	assert.Equal(t, []string{"e1"}, u.Favorites(FavoriteEvent))
	assert.Nil(t, u.Favorites(FavoriteCategory("bogus")))
}

func TestFormatCoordinates(t *testing.T) {
	assert.Equal(t, "30.4278,-9.5981", FormatCoordinates(30.4278, -9.5981))
}
