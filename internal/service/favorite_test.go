package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonskv/shop_backend/internal/apperr"
)

func TestFavoriteToggleFlipsMembership(t *testing.T) {
	r := newTestRepo(t)
	svc := &FavoriteService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "fav@test.ru")
	product := seedProduct(t, r, "Ботинки", 7990)

	isFav, _, err := svc.Toggle(ctx, user.ID, int(product.ID))
	require.NoError(t, err)
	assert.True(t, isFav)

	isFav, _, err = svc.Toggle(ctx, user.ID, int(product.ID))
	require.NoError(t, err)
	assert.False(t, isFav)

	list, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFavoriteAddDuplicate(t *testing.T) {
	r := newTestRepo(t)
	svc := &FavoriteService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "fav@test.ru")
	product := seedProduct(t, r, "Ботинки", 7990)

	_, err := svc.Add(ctx, user.ID, int(product.ID))
	require.NoError(t, err)

	_, err = svc.Add(ctx, user.ID, int(product.ID))
	assert.Equal(t, "FAVORITE_ALREADY_EXISTS", apperr.Code(err))
}

func TestFavoriteRemoveMiss(t *testing.T) {
	r := newTestRepo(t)
	svc := &FavoriteService{Repo: r}

	user := seedUser(t, r, "fav@test.ru")
	err := svc.Remove(context.Background(), user.ID, 42)
	assert.Equal(t, "FAVORITE_NOT_FOUND", apperr.Code(err))
}
