package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonskv/shop_backend/internal/apperr"
	"github.com/antonskv/shop_backend/internal/authn"
	"github.com/antonskv/shop_backend/internal/models"
)

func TestCheckoutCreatesOrdersAndClearsCart(t *testing.T) {
	r := newTestRepo(t)
	cart := &CartService{Repo: r}
	svc := &DeliveryService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "buyer@test.ru")
	p1 := seedProduct(t, r, "Кроссовки", 4990)
	p2 := seedProduct(t, r, "Кеды", 2990)

	_, err := cart.Add(ctx, user.ID, int(p1.ID), 1)
	require.NoError(t, err)
	_, err = cart.Add(ctx, user.ID, int(p2.ID), 2)
	require.NoError(t, err)

	orders, err := svc.Checkout(ctx, user.ID, []CheckoutLine{
		{ProductID: int(p1.ID), Count: 1, Date: "2026-09-05", Time: "14:00"},
		{ProductID: int(p2.ID), Count: 2, Date: "2026-09-05", Time: "14:00"},
	})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, models.DeliveryStatusPreparing, o.Status)
		assert.Equal(t, user.ID, o.UserID)
	}

	items, err := cart.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCheckoutRejectsWholeBatchOnOneBadLine(t *testing.T) {
	r := newTestRepo(t)
	cart := &CartService{Repo: r}
	svc := &DeliveryService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "buyer@test.ru")
	p1 := seedProduct(t, r, "Кроссовки", 4990)
	p2 := seedProduct(t, r, "Кеды", 2990)
	p3 := seedProduct(t, r, "Ботинки", 7990)

	_, err := cart.Add(ctx, user.ID, int(p1.ID), 1)
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, user.ID, []CheckoutLine{
		{ProductID: int(p1.ID), Count: 1, Date: "2026-09-05", Time: "14:00"},
		{ProductID: int(p2.ID), Count: 1, Date: "2026-09-05", Time: "14:00"},
		{ProductID: int(p3.ID), Count: 1, Date: "2026-09-05", Time: "14:00"},
		{ProductID: 9999, Count: 1, Date: "2026-09-05", Time: "14:00"},
	})
	require.Error(t, err)

	var checkout *CheckoutError
	require.True(t, errors.As(err, &checkout))
	require.Len(t, checkout.Lines, 1)
	assert.Equal(t, 3, checkout.Lines[0].Index)
	assert.Equal(t, "PRODUCT_NOT_FOUND", checkout.Lines[0].Code)

	// Nothing committed: no orders, cart untouched.
	ident := authn.Identity{UserID: user.ID, Role: authn.RoleUser}
	orders, err := svc.List(ctx, ident)
	require.NoError(t, err)
	assert.Empty(t, orders)

	items, err := cart.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCheckoutCartDerivesLines(t *testing.T) {
	r := newTestRepo(t)
	cart := &CartService{Repo: r}
	svc := &DeliveryService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "buyer@test.ru")
	p1 := seedProduct(t, r, "Кроссовки", 4990)
	p2 := seedProduct(t, r, "Кеды", 2990)

	_, err := svc.CheckoutCart(ctx, user.ID, "2026-09-05", "14:00")
	assert.Equal(t, "INVALID_DATA", apperr.Code(err))

	_, err = cart.Add(ctx, user.ID, int(p1.ID), 3)
	require.NoError(t, err)
	_, err = cart.Add(ctx, user.ID, int(p2.ID), 1)
	require.NoError(t, err)

	orders, err := svc.CheckoutCart(ctx, user.ID, "2026-09-05", "14:00")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, uint(3), orders[0].Count)

	items, err := cart.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCheckoutCollectsEveryLineError(t *testing.T) {
	r := newTestRepo(t)
	svc := &DeliveryService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "buyer@test.ru")
	p1 := seedProduct(t, r, "Кроссовки", 4990)

	_, err := svc.Checkout(ctx, user.ID, []CheckoutLine{
		{ProductID: int(p1.ID), Count: 0, Date: "2026-09-05", Time: "14:00"},
		{ProductID: 9999, Count: 1, Date: "2026-09-05", Time: "14:00"},
		{ProductID: int(p1.ID), Count: 1, Date: "", Time: "14:00"},
	})
	require.Error(t, err)

	var checkout *CheckoutError
	require.True(t, errors.As(err, &checkout))
	require.Len(t, checkout.Lines, 3)
	assert.Equal(t, "INVALID_ORDER_DATA", checkout.Lines[0].Code)
	assert.Equal(t, "PRODUCT_NOT_FOUND", checkout.Lines[1].Code)
	assert.Equal(t, "INVALID_ORDER_DATA", checkout.Lines[2].Code)
}

func TestDeliveryStatusWhitelist(t *testing.T) {
	r := newTestRepo(t)
	svc := &DeliveryService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "buyer@test.ru")
	product := seedProduct(t, r, "Кроссовки", 4990)

	order, err := svc.Create(ctx, user.ID, CheckoutLine{
		ProductID: int(product.ID), Count: 1, Date: "2026-09-05", Time: "14:00",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, models.DeliveryStatusPreparing, order.Status)

	err = svc.UpdateStatus(ctx, int(order.ID), "Отправлено")
	assert.Equal(t, "INVALID_STATUS", apperr.Code(err))

	require.NoError(t, svc.UpdateStatus(ctx, int(order.ID), models.DeliveryStatusReady))

	ident := authn.Identity{UserID: user.ID, Role: authn.RoleUser}
	got, err := svc.Get(ctx, ident, int(order.ID))
	require.NoError(t, err)
	assert.Equal(t, models.DeliveryStatusReady, got.Status)

	err = svc.UpdateStatus(ctx, 9999, models.DeliveryStatusCancelled)
	assert.Equal(t, "NOT_FOUND", apperr.Code(err))
}

func TestDeliveryVisibilityScopedToOwner(t *testing.T) {
	r := newTestRepo(t)
	svc := &DeliveryService{Repo: r}
	ctx := context.Background()

	owner := seedUser(t, r, "owner@test.ru")
	other := seedUser(t, r, "other@test.ru")
	product := seedProduct(t, r, "Кроссовки", 4990)

	order, err := svc.Create(ctx, owner.ID, CheckoutLine{
		ProductID: int(product.ID), Count: 1, Date: "2026-09-05", Time: "14:00",
	}, "")
	require.NoError(t, err)

	_, err = svc.Get(ctx, authn.Identity{UserID: other.ID, Role: authn.RoleUser}, int(order.ID))
	assert.Equal(t, "NOT_FOUND", apperr.Code(err))

	admin := authn.Identity{UserID: 999, Role: authn.RoleAdmin}
	got, err := svc.Get(ctx, admin, int(order.ID))
	require.NoError(t, err)
	assert.Equal(t, owner.ID, got.UserID)

	all, err := svc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	mine, err := svc.List(ctx, authn.Identity{UserID: other.ID, Role: authn.RoleUser})
	require.NoError(t, err)
	assert.Empty(t, mine)
}
