package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonskv/shop_backend/internal/apperr"
)

func TestRatingSubmitUpsertsInPlace(t *testing.T) {
	r := newTestRepo(t)
	svc := &RatingService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "rate@test.ru")
	product := seedProduct(t, r, "Кеды", 2990)

	id, updated, err := svc.Submit(ctx, int(product.ID), int(user.ID), 4)
	require.NoError(t, err)
	assert.False(t, updated)

	id2, updated, err := svc.Submit(ctx, int(product.ID), int(user.ID), 2)
	require.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, id, id2)

	all, err := svc.List(ctx, int(product.ID), 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 2, all[0].Rating)
}

func TestRatingSubmitValidation(t *testing.T) {
	r := newTestRepo(t)
	svc := &RatingService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "rate@test.ru")
	product := seedProduct(t, r, "Кеды", 2990)

	for _, bad := range []int{0, 6, -1} {
		_, _, err := svc.Submit(ctx, int(product.ID), int(user.ID), bad)
		assert.Equal(t, "INVALID_RATING", apperr.Code(err))
	}

	_, _, err := svc.Submit(ctx, int(product.ID), 9999, 3)
	assert.Equal(t, "USER_NOT_FOUND", apperr.Code(err))

	_, _, err = svc.Submit(ctx, 9999, int(user.ID), 3)
	assert.Equal(t, "PRODUCT_NOT_FOUND", apperr.Code(err))
}

func TestRatingDeleteMiss(t *testing.T) {
	r := newTestRepo(t)
	svc := &RatingService{Repo: r}

	err := svc.Delete(context.Background(), 42)
	assert.Equal(t, "RATING_NOT_FOUND", apperr.Code(err))
}
