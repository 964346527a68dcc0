package repo

import (
	"context"

	"github.com/antonskv/shop_backend/internal/models"
)

// ListDeliveries returns all orders when userID is nil (admin view),
// otherwise only the given user's.
func (r *GormRepo) ListDeliveries(ctx context.Context, userID *uint) ([]models.DeliveryOrder, error) {
	q := r.DB.WithContext(ctx).Model(&models.DeliveryOrder{})
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}

	var rows []models.DeliveryOrder
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) GetDelivery(ctx context.Context, id uint, userID *uint) (*models.DeliveryOrder, error) {
	q := r.DB.WithContext(ctx).Where("id = ?", id)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}

	var row models.DeliveryOrder
	if err := q.First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormRepo) CreateDelivery(ctx context.Context, d *models.DeliveryOrder) error {
	return r.DB.WithContext(ctx).Create(d).Error
}

func (r *GormRepo) UpdateDeliveryStatus(ctx context.Context, id uint, status string) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.DeliveryOrder{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *GormRepo) UpdateDelivery(ctx context.Context, d *models.DeliveryOrder) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.DeliveryOrder{}).
		Where("id = ?", d.ID).
		Updates(map[string]any{
			"user_id":    d.UserID,
			"product_id": d.ProductID,
			"count":      d.Count,
			"date":       d.Date,
			"time":       d.Time,
			"status":     d.Status,
		})
	return res.RowsAffected, res.Error
}

func (r *GormRepo) DeleteDelivery(ctx context.Context, id uint) (int64, error) {
	res := r.DB.WithContext(ctx).Delete(&models.DeliveryOrder{}, id)
	return res.RowsAffected, res.Error
}
