package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonskv/shop_backend/internal/apperr"
	"github.com/antonskv/shop_backend/internal/authn"
)

func TestReviewCreateAndList(t *testing.T) {
	r := newTestRepo(t)
	svc := &ReviewService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "rev@test.ru")
	product := seedProduct(t, r, "Кроссовки", 4990)

	_, err := svc.Create(ctx, user.ID, 0, "отличные")
	assert.Equal(t, "MISSING_FIELDS", apperr.Code(err))

	_, err = svc.Create(ctx, user.ID, int(product.ID), "   ")
	assert.Equal(t, "MISSING_FIELDS", apperr.Code(err))

	id, err := svc.Create(ctx, user.ID, int(product.ID), "  отличные кроссовки  ")
	require.NoError(t, err)
	assert.NotZero(t, id)

	reviews, err := svc.List(ctx, int(product.ID))
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "отличные кроссовки", reviews[0].Comment)
	assert.Equal(t, "tester", reviews[0].Username)
}

func TestReviewDeleteAuthorOrAdmin(t *testing.T) {
	r := newTestRepo(t)
	svc := &ReviewService{Repo: r}
	ctx := context.Background()

	author := seedUser(t, r, "author@test.ru")
	other := seedUser(t, r, "other@test.ru")
	product := seedProduct(t, r, "Кроссовки", 4990)

	id, err := svc.Create(ctx, author.ID, int(product.ID), "норм")
	require.NoError(t, err)

	err = svc.Delete(ctx, authn.Identity{UserID: other.ID, Role: authn.RoleUser}, int(id))
	assert.Equal(t, "FORBIDDEN", apperr.Code(err))

	require.NoError(t, svc.Delete(ctx, authn.Identity{UserID: author.ID, Role: authn.RoleUser}, int(id)))

	id2, err := svc.Create(ctx, author.ID, int(product.ID), "еще раз")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, authn.Identity{UserID: 999, Role: authn.RoleAdmin}, int(id2)))

	err = svc.Delete(ctx, authn.Identity{UserID: 999, Role: authn.RoleAdmin}, int(id2))
	assert.Equal(t, "NOT_FOUND", apperr.Code(err))
}
