package admin

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/antonskv/shop_backend/internal/apperr"
	"github.com/antonskv/shop_backend/internal/models"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return &Engine{DB: db}
}

func TestLookupKnowsEveryResource(t *testing.T) {
	for _, name := range []string{"users", "products", "reviews", "ratings", "favorites", "cart", "delivery", "photos"} {
		_, ok := Lookup(name)
		assert.True(t, ok, name)
	}
	_, ok := Lookup("orders")
	assert.False(t, ok)
}

func TestEngineCreateAndGet(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	res, _ := Lookup("products")

	row, err := e.Create(ctx, res, map[string]any{"name": "Кеды", "price": 2990})
	require.NoError(t, err)
	assert.Equal(t, "Кеды", row["name"])

	rows, err := e.List(ctx, res)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestEngineRejectsUnknownField(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	res, _ := Lookup("products")

	_, err := e.Create(ctx, res, map[string]any{"name": "Кеды", "warehouse": "A1"})
	assert.Equal(t, "INVALID_DATA", apperr.Code(err))

	_, err = e.Create(ctx, res, map[string]any{})
	assert.Equal(t, "INVALID_DATA", apperr.Code(err))
}

func TestEngineUserPasswordsAreHashedAndScrubbed(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	res, _ := Lookup("users")

	row, err := e.Create(ctx, res, map[string]any{
		"username": "vasya", "email": "v@test.ru", "password": "password123", "role": "user",
	})
	require.NoError(t, err)
	_, exposed := row["password_hash"]
	assert.False(t, exposed)
	assert.NotContains(t, row, "password")

	var user models.User
	require.NoError(t, e.DB.First(&user).Error)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "password123", user.PasswordHash)
}

func TestEngineDuplicateEntry(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	res, _ := Lookup("users")

	payload := map[string]any{
		"username": "vasya", "email": "dup@test.ru", "password": "password123", "role": "user",
	}
	_, err := e.Create(ctx, res, payload)
	require.NoError(t, err)

	_, err = e.Create(ctx, res, map[string]any{
		"username": "petya", "email": "dup@test.ru", "password": "password123", "role": "user",
	})
	assert.Equal(t, "DUPLICATE_ENTRY", apperr.Code(err))
}

func TestEnginePhotosAreReadOnly(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	res, ok := Lookup("photos")
	require.True(t, ok)

	require.NoError(t, e.DB.Create(&models.Product{Name: "Кеды", Price: 2990}).Error)
	require.NoError(t, e.DB.Create(&models.Photo{ProductID: 1, Image: []byte("img")}).Error)

	rows, err := e.List(ctx, res)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row, err := e.Get(ctx, res, 1)
	require.NoError(t, err)
	assert.NotNil(t, row["image"])

	_, err = e.Create(ctx, res, map[string]any{"product_id": 1, "image": "x"})
	assert.Equal(t, "INVALID_DATA", apperr.Code(err))

	_, err = e.Update(ctx, res, 1, map[string]any{"image": "x"})
	assert.Equal(t, "INVALID_DATA", apperr.Code(err))

	err = e.Delete(ctx, res, 1)
	assert.Equal(t, "INVALID_DATA", apperr.Code(err))
}

func TestEngineUpdateAndDeleteMisses(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	res, _ := Lookup("products")

	_, err := e.Update(ctx, res, 42, map[string]any{"name": "Кеды"})
	assert.Equal(t, "NOT_FOUND", apperr.Code(err))

	err = e.Delete(ctx, res, 42)
	assert.Equal(t, "NOT_FOUND", apperr.Code(err))

	_, err = e.Create(ctx, res, map[string]any{"name": "Кеды", "price": 2990})
	require.NoError(t, err)

	var product models.Product
	require.NoError(t, e.DB.First(&product).Error)
	id := product.ID

	updated, err := e.Update(ctx, res, id, map[string]any{"price": 3490})
	require.NoError(t, err)
	assert.NotNil(t, updated)

	require.NoError(t, e.Delete(ctx, res, id))
	_, err = e.Get(ctx, res, id)
	assert.Equal(t, "NOT_FOUND", apperr.Code(err))
}
