package repo

import (
	"context"

	"github.com/antonskv/shop_backend/internal/models"
)

// RatingFilter: zero values mean "no filter".
type RatingFilter struct {
	ProductID uint
	UserID    uint
}

func (r *GormRepo) ListRatings(ctx context.Context, f RatingFilter) ([]models.Rating, error) {
	q := r.DB.WithContext(ctx).Model(&models.Rating{})
	if f.ProductID != 0 {
		q = q.Where("product_id = ?", f.ProductID)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}

	var rows []models.Rating
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) GetRating(ctx context.Context, id uint) (*models.Rating, error) {
	var rating models.Rating
	if err := r.DB.WithContext(ctx).First(&rating, id).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *GormRepo) GetRatingByPair(ctx context.Context, productID, userID uint) (*models.Rating, error) {
	var rating models.Rating
	err := r.DB.WithContext(ctx).
		Where("product_id = ? AND user_id = ?", productID, userID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *GormRepo) CreateRating(ctx context.Context, rating *models.Rating) error {
	return r.DB.WithContext(ctx).Create(rating).Error
}

// UpdateRatingValue changes the value in place: same row id, same
// created_at.
func (r *GormRepo) UpdateRatingValue(ctx context.Context, id uint, value int) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.Rating{}).
		Where("id = ?", id).
		Update("rating", value)
	return res.RowsAffected, res.Error
}

func (r *GormRepo) UpdateRating(ctx context.Context, id, productID, userID uint, value int) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.Rating{}).
		Where("id = ?", id).
		Updates(map[string]any{"product_id": productID, "user_id": userID, "rating": value})
	return res.RowsAffected, res.Error
}

func (r *GormRepo) DeleteRating(ctx context.Context, id uint) (int64, error) {
	res := r.DB.WithContext(ctx).Delete(&models.Rating{}, id)
	return res.RowsAffected, res.Error
}
