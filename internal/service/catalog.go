package service

import (
	"context"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/antonskv/shop_backend/internal/apperr"
	"github.com/antonskv/shop_backend/internal/es"
	"github.com/antonskv/shop_backend/internal/logging"
	"github.com/antonskv/shop_backend/internal/models"
	"github.com/antonskv/shop_backend/internal/repo"
	"github.com/antonskv/shop_backend/internal/util"
)

// CatalogService serves the public product listing and the admin product
// mutations. ES is optional: a nil client disables index sync.
type CatalogService struct {
	Repo  *repo.GormRepo
	ES    *elasticsearch.Client
	Index string
}

type ListParams struct {
	Firm     string
	MinPrice *float64
	MaxPrice *float64
	Year     *int
	Sort     string
	Page     int
	Size     int
}

// Meta is the pagination envelope attached to every catalog page.
type Meta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

func buildMeta(page, size int, total int64) Meta {
	pages := int((total + int64(size) - 1) / int64(size))
	return Meta{
		Page:       page,
		Size:       size,
		Total:      total,
		TotalPages: pages,
		HasPrev:    page > 1,
		HasNext:    page < pages,
	}
}

func (s *CatalogService) List(ctx context.Context, p ListParams) ([]models.Product, Meta, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	from, limit := util.Calculate(p.Page, p.Size)

	total, items, err := s.Repo.ListProducts(ctx, repo.ProductFilter{
		Firm:     p.Firm,
		MinPrice: p.MinPrice,
		MaxPrice: p.MaxPrice,
		Year:     p.Year,
		Sort:     p.Sort,
		Offset:   from,
		Limit:    limit,
	})
	if err != nil {
		return nil, Meta{}, err
	}
	return items, buildMeta(p.Page, limit, total), nil
}

func (s *CatalogService) Get(ctx context.Context, id int) (*models.Product, []models.Photo, error) {
	if err := checkProductID(id); err != nil {
		return nil, nil, err
	}

	product, err := s.Repo.GetProduct(ctx, uint(id))
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, nil, apperr.NotFound("PRODUCT_NOT_FOUND", "Продукт с ID %d не найден", id)
		}
		return nil, nil, err
	}
	photos, err := s.Repo.ListPhotos(ctx, uint(id))
	if err != nil {
		return nil, nil, err
	}
	return product, photos, nil
}

// ProductInput carries an admin create/update payload. Photos replaces
// the stored photo set wholesale when non-nil.
type ProductInput struct {
	Name              string
	Description       *string
	Price             float64
	LastPrice         *float64
	LogoImage         []byte
	FirmName          *string
	ManufacturingYear *int
	Photos            [][]byte
}

func (in *ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return apperr.Validation("MISSING_FIELDS", "Требуются name")
	}
	if in.Price < 0 {
		return apperr.Validation("INVALID_DATA", "Цена не может быть отрицательной")
	}
	return nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	product := models.Product{
		Name:              strings.TrimSpace(in.Name),
		Description:       in.Description,
		Price:             in.Price,
		LastPrice:         in.LastPrice,
		LogoImage:         in.LogoImage,
		FirmName:          in.FirmName,
		ManufacturingYear: in.ManufacturingYear,
	}
	if err := s.Repo.CreateProduct(ctx, &product); err != nil {
		return nil, err
	}
	if len(in.Photos) > 0 {
		if err := s.Repo.ReplacePhotos(ctx, product.ID, in.Photos); err != nil {
			return nil, err
		}
	}

	s.syncIndex(ctx, &product)
	return &product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id int, in ProductInput) (*models.Product, error) {
	if err := checkProductID(id); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	product, err := s.Repo.GetProduct(ctx, uint(id))
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, apperr.NotFound("PRODUCT_NOT_FOUND", "Продукт с ID %d не найден", id)
		}
		return nil, err
	}

	product.Name = strings.TrimSpace(in.Name)
	product.Description = in.Description
	product.Price = in.Price
	product.LastPrice = in.LastPrice
	product.FirmName = in.FirmName
	product.ManufacturingYear = in.ManufacturingYear
	if in.LogoImage != nil {
		product.LogoImage = in.LogoImage
	}
	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	if in.Photos != nil {
		if err := s.Repo.ReplacePhotos(ctx, product.ID, in.Photos); err != nil {
			return nil, err
		}
	}

	s.syncIndex(ctx, product)
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int) error {
	if err := checkProductID(id); err != nil {
		return err
	}

	rows, err := s.Repo.DeleteProduct(ctx, uint(id))
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.NotFound("PRODUCT_NOT_FOUND", "Продукт с ID %d не найден", id)
	}

	if s.ES != nil {
		if err := es.DeleteProduct(ctx, s.ES, s.Index, uint(id)); err != nil {
			logging.FromContext(ctx).Warn("es_delete_failed", "product_id", id, "error", err)
		}
	}
	return nil
}

// syncIndex pushes the product into the search index best effort: the
// write already committed, so an index failure only logs.
func (s *CatalogService) syncIndex(ctx context.Context, p *models.Product) {
	if s.ES == nil {
		return
	}
	if err := es.IndexProduct(ctx, s.ES, s.Index, p); err != nil {
		logging.FromContext(ctx).Warn("es_index_failed", "product_id", p.ID, "error", err)
	}
}
