package repo

import (
	"context"

	"github.com/antonskv/shop_backend/internal/models"
)

// FavoriteProduct is a favorite row joined with the product fields the
// listing needs.
type FavoriteProduct struct {
	UserID    uint    `json:"user_id"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	FirmName  *string `json:"firm_name"`
}

func (r *GormRepo) ListFavorites(ctx context.Context, userID uint) ([]FavoriteProduct, error) {
	var rows []FavoriteProduct
	err := r.DB.WithContext(ctx).Model(&models.Favorite{}).
		Select("favorites.user_id, favorites.product_id, products.name, products.price, products.firm_name").
		Joins("JOIN products ON favorites.product_id = products.id").
		Where("favorites.user_id = ?", userID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) GetFavorite(ctx context.Context, userID, productID uint) (*models.Favorite, error) {
	var fav models.Favorite
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&fav).Error
	if err != nil {
		return nil, err
	}
	return &fav, nil
}

func (r *GormRepo) CreateFavorite(ctx context.Context, fav *models.Favorite) error {
	return r.DB.WithContext(ctx).Create(fav).Error
}

func (r *GormRepo) DeleteFavorite(ctx context.Context, userID, productID uint) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Favorite{})
	return res.RowsAffected, res.Error
}
