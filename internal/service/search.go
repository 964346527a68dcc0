package service

import (
	"context"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/antonskv/shop_backend/internal/apperr"
	"github.com/antonskv/shop_backend/internal/es"
	"github.com/antonskv/shop_backend/internal/models"
	"github.com/antonskv/shop_backend/internal/util"
)

type SearchService struct {
	ES    *elasticsearch.Client
	Index string
}

func (s *SearchService) Search(ctx context.Context, query string, page, size int) ([]models.Product, Meta, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, Meta{}, apperr.Validation("INVALID_DATA", "Требуется параметр q")
	}
	if s.ES == nil {
		return nil, Meta{}, apperr.New(apperr.ErrValidation, "SEARCH_UNAVAILABLE", "Поиск временно недоступен")
	}

	if page < 1 {
		page = 1
	}
	from, limit := util.Calculate(page, size)

	total, items, err := es.SearchProducts(ctx, s.ES, s.Index, query, from, limit)
	if err != nil {
		return nil, Meta{}, err
	}
	return items, buildMeta(page, limit, total), nil
}
