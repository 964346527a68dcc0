package service

import (
	"context"

	"github.com/antonskv/shop_backend/internal/apperr"
	"github.com/antonskv/shop_backend/internal/repo"
)

// Referential guards: every mutating operation re-checks its foreign
// keys against the store before writing.

func ensureProductExists(ctx context.Context, r *repo.GormRepo, id uint) error {
	ok, err := r.ProductExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("PRODUCT_NOT_FOUND", "Продукт с ID %d не найден", id)
	}
	return nil
}

func ensureUserExists(ctx context.Context, r *repo.GormRepo, id uint) error {
	ok, err := r.UserExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("USER_NOT_FOUND", "Пользователь с ID %d не найден", id)
	}
	return nil
}

func checkProductID(id int) error {
	if id < 1 {
		return apperr.Validation("INVALID_PRODUCT_ID", "productId должен быть целым числом больше 0")
	}
	return nil
}

func checkUserID(id int) error {
	if id < 1 {
		return apperr.Validation("INVALID_USER_ID", "userId должен быть целым числом больше 0")
	}
	return nil
}

func checkRowID(id int) error {
	if id < 1 {
		return apperr.Validation("INVALID_ID", "id должен быть целым числом больше 0")
	}
	return nil
}
