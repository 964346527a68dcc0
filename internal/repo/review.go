package repo

import (
	"context"
	"time"

	"github.com/antonskv/shop_backend/internal/models"
)

// ReviewWithAuthor is a review row joined with the author's username.
type ReviewWithAuthor struct {
	ID        uint      `json:"id"`
	ProductID uint      `json:"product_id"`
	UserID    uint      `json:"user_id"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
}

func (r *GormRepo) ListReviews(ctx context.Context, productID uint) ([]ReviewWithAuthor, error) {
	q := r.DB.WithContext(ctx).Model(&models.Review{}).
		Select("reviews.id, reviews.product_id, reviews.user_id, reviews.comment, reviews.created_at, users.username").
		Joins("JOIN users ON reviews.user_id = users.id")
	if productID != 0 {
		q = q.Where("reviews.product_id = ?", productID)
	}

	var rows []ReviewWithAuthor
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) GetReview(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.DB.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *GormRepo) CreateReview(ctx context.Context, review *models.Review) error {
	return r.DB.WithContext(ctx).Create(review).Error
}

func (r *GormRepo) DeleteReview(ctx context.Context, id uint) (int64, error) {
	res := r.DB.WithContext(ctx).Delete(&models.Review{}, id)
	return res.RowsAffected, res.Error
}
