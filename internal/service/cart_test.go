package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonskv/shop_backend/internal/apperr"
	"github.com/antonskv/shop_backend/internal/authn"
)

func TestCartAddMergesQuantity(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "cart@test.ru")
	product := seedProduct(t, r, "Кроссовки", 4990)

	_, err := svc.Add(ctx, user.ID, int(product.ID), 2)
	require.NoError(t, err)
	item, err := svc.Add(ctx, user.ID, int(product.ID), 3)
	require.NoError(t, err)
	assert.Equal(t, uint(5), item.Quantity)

	items, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, uint(5), items[0].Quantity)
}

func TestCartAddRejectsBadInput(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "cart@test.ru")
	product := seedProduct(t, r, "Кроссовки", 4990)

	_, err := svc.Add(ctx, user.ID, 0, 1)
	assert.Equal(t, "INVALID_PRODUCT_ID", apperr.Code(err))

	_, err = svc.Add(ctx, user.ID, int(product.ID), 0)
	assert.Equal(t, "INVALID_QUANTITY", apperr.Code(err))

	_, err = svc.Add(ctx, user.ID, 9999, 1)
	assert.Equal(t, "PRODUCT_NOT_FOUND", apperr.Code(err))
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestCartSetQuantityFloorDeletes(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "cart@test.ru")
	product := seedProduct(t, r, "Кроссовки", 4990)

	_, err := svc.Add(ctx, user.ID, int(product.ID), 2)
	require.NoError(t, err)

	deleted, item, err := svc.SetQuantity(ctx, user.ID, int(product.ID), 0)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Nil(t, item)

	items, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	// Second floor on the now empty cart is a miss.
	_, _, err = svc.SetQuantity(ctx, user.ID, int(product.ID), 0)
	assert.Equal(t, "CART_ITEM_NOT_FOUND", apperr.Code(err))
}

func TestCartSetQuantityAbsolute(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "cart@test.ru")
	product := seedProduct(t, r, "Кроссовки", 4990)

	_, err := svc.Add(ctx, user.ID, int(product.ID), 2)
	require.NoError(t, err)

	deleted, item, err := svc.SetQuantity(ctx, user.ID, int(product.ID), 7)
	require.NoError(t, err)
	assert.False(t, deleted)
	require.NotNil(t, item)
	assert.Equal(t, uint(7), item.Quantity)
}

func TestCartItemByIDScopedToOwner(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	owner := seedUser(t, r, "owner@test.ru")
	other := seedUser(t, r, "other@test.ru")
	product := seedProduct(t, r, "Кроссовки", 4990)

	item, err := svc.Add(ctx, owner.ID, int(product.ID), 1)
	require.NoError(t, err)

	// A different user must not see the row even by its id.
	_, err = svc.GetItemByID(ctx, authn.Identity{UserID: other.ID, Role: authn.RoleUser}, int(item.ID))
	assert.Equal(t, "CART_ITEM_NOT_FOUND", apperr.Code(err))

	got, err := svc.GetItemByID(ctx, authn.Identity{UserID: owner.ID, Role: authn.RoleUser}, int(item.ID))
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)

	admin := authn.Identity{UserID: 999, Role: authn.RoleAdmin}
	got, err = svc.GetItemByID(ctx, admin, int(item.ID))
	require.NoError(t, err)
	assert.Equal(t, owner.ID, got.UserID)
}
