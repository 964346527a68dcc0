package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/antonskv/shop_backend/internal/models"
)

// ProductFilter narrows and orders the public catalog listing.
type ProductFilter struct {
	Firm     string
	MinPrice *float64
	MaxPrice *float64
	Year     *int
	Sort     string
	Offset   int
	Limit    int
}

func (r *GormRepo) ListProducts(ctx context.Context, f ProductFilter) (int64, []models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})

	if f.Firm != "" {
		q = q.Where("firm_name = ?", f.Firm)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.Year != nil {
		q = q.Where("manufacturing_year = ?", *f.Year)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	switch f.Sort {
	case "price_asc":
		q = q.Order("price ASC")
	case "price_desc":
		q = q.Order("price DESC")
	case "sold":
		q = q.Order("sold_quantity DESC")
	case "newest":
		q = q.Order("id DESC")
	default:
		q = q.Order("id ASC")
	}

	var items []models.Product
	if err := q.Offset(f.Offset).Limit(f.Limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ProductExists(ctx context.Context, id uint) (bool, error) {
	var product models.Product
	err := r.DB.WithContext(ctx).Select("id").First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

// DeleteProduct removes the product together with its photo set.
func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) (int64, error) {
	var deleted int64
	err := r.Tx(ctx, func(tx *GormRepo) error {
		if err := tx.DB.Where("product_id = ?", id).Delete(&models.Photo{}).Error; err != nil {
			return err
		}
		res := tx.DB.Delete(&models.Product{}, id)
		deleted = res.RowsAffected
		return res.Error
	})
	return deleted, err
}

func (r *GormRepo) ListPhotos(ctx context.Context, productID uint) ([]models.Photo, error) {
	var photos []models.Photo
	if err := r.DB.WithContext(ctx).Where("product_id = ?", productID).Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}

// ReplacePhotos swaps a product's photo set wholesale.
func (r *GormRepo) ReplacePhotos(ctx context.Context, productID uint, images [][]byte) error {
	return r.Tx(ctx, func(tx *GormRepo) error {
		if err := tx.DB.Where("product_id = ?", productID).Delete(&models.Photo{}).Error; err != nil {
			return err
		}
		for _, img := range images {
			photo := models.Photo{ProductID: productID, Image: img}
			if err := tx.DB.Create(&photo).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
