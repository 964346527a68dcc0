package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonskv/shop_backend/internal/apperr"
	"github.com/antonskv/shop_backend/internal/models"
	"github.com/antonskv/shop_backend/internal/repo"
)

func seedCatalog(t *testing.T, r *repo.GormRepo) {
	t.Helper()
	ctx := context.Background()

	firmA, firmB := "Adidas", "Reebok"
	for i, p := range []models.Product{
		{Name: "Кроссовки беговые", Price: 4990, FirmName: &firmA},
		{Name: "Кроссовки городские", Price: 6990, FirmName: &firmA},
		{Name: "Кеды классические", Price: 2990, FirmName: &firmB},
		{Name: "Ботинки зимние", Price: 8990, FirmName: &firmB},
	} {
		p.SoldQuantity = uint(i * 10)
		require.NoError(t, r.CreateProduct(ctx, &p))
	}
}

func TestCatalogListFilters(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()
	seedCatalog(t, r)

	items, meta, err := svc.List(ctx, ListParams{Firm: "Adidas"})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, int64(2), meta.Total)

	min, max := 3000.0, 7000.0
	items, _, err = svc.List(ctx, ListParams{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	for _, p := range items {
		assert.GreaterOrEqual(t, p.Price, min)
		assert.LessOrEqual(t, p.Price, max)
	}
}

func TestCatalogListSortAndPagination(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()
	seedCatalog(t, r)

	items, meta, err := svc.List(ctx, ListParams{Sort: "price_asc", Page: 1, Size: 2})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 2990.0, items[0].Price)
	assert.Equal(t, int64(4), meta.Total)
	assert.Equal(t, 2, meta.TotalPages)
	assert.False(t, meta.HasPrev)
	assert.True(t, meta.HasNext)

	items, meta, err = svc.List(ctx, ListParams{Sort: "price_asc", Page: 2, Size: 2})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 8990.0, items[1].Price)
	assert.True(t, meta.HasPrev)
	assert.False(t, meta.HasNext)

	items, _, err = svc.List(ctx, ListParams{Sort: "sold"})
	require.NoError(t, err)
	assert.Equal(t, "Ботинки зимние", items[0].Name)
}

func TestCatalogCreateValidation(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, ProductInput{Name: "  "})
	assert.Equal(t, "MISSING_FIELDS", apperr.Code(err))

	_, err = svc.CreateProduct(ctx, ProductInput{Name: "Кеды", Price: -1})
	assert.Equal(t, "INVALID_DATA", apperr.Code(err))
}

func TestCatalogProductLifecycle(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, ProductInput{
		Name:   "Кеды",
		Price:  2990,
		Photos: [][]byte{[]byte("img-1"), []byte("img-2")},
	})
	require.NoError(t, err)

	product, photos, err := svc.Get(ctx, int(created.ID))
	require.NoError(t, err)
	assert.Equal(t, "Кеды", product.Name)
	assert.Len(t, photos, 2)

	updated, err := svc.UpdateProduct(ctx, int(created.ID), ProductInput{
		Name:   "Кеды высокие",
		Price:  3490,
		Photos: [][]byte{[]byte("img-3")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Кеды высокие", updated.Name)

	_, photos, err = svc.Get(ctx, int(created.ID))
	require.NoError(t, err)
	assert.Len(t, photos, 1)

	require.NoError(t, svc.DeleteProduct(ctx, int(created.ID)))

	_, _, err = svc.Get(ctx, int(created.ID))
	assert.Equal(t, "PRODUCT_NOT_FOUND", apperr.Code(err))

	err = svc.DeleteProduct(ctx, int(created.ID))
	assert.Equal(t, "PRODUCT_NOT_FOUND", apperr.Code(err))
}
