package service

import (
	"context"

	"github.com/antonskv/shop_backend/internal/apperr"
	"github.com/antonskv/shop_backend/internal/authn"
	"github.com/antonskv/shop_backend/internal/logging"
	"github.com/antonskv/shop_backend/internal/models"
	"github.com/antonskv/shop_backend/internal/repo"
)

type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) Get(ctx context.Context, userID uint) ([]models.CartItem, error) {
	return s.Repo.GetCart(ctx, userID)
}

// Add merges into the existing (user, product) row: adding q1 then q2
// yields one row with quantity q1+q2.
func (s *CartService) Add(ctx context.Context, userID uint, productID, quantity int) (*models.CartItem, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add")

	if err := checkProductID(productID); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, apperr.Validation("INVALID_QUANTITY", "quantity должно быть целым числом >= 1")
	}
	if err := ensureProductExists(ctx, s.Repo, uint(productID)); err != nil {
		return nil, err
	}

	item := models.CartItem{
		UserID:    userID,
		ProductID: uint(productID),
		Quantity:  uint(quantity),
	}
	if err := s.Repo.AddToCart(ctx, &item); err != nil {
		if repo.IsDuplicate(err) {
			return nil, apperr.Conflict("DUPLICATE_ENTRY", "Запись уже существует")
		}
		l.Error("add_to_cart_error", "error", err)
		return nil, err
	}
	return &item, nil
}

// SetQuantity writes an absolute quantity. A target below 1 deletes the
// row instead: quantity is never persisted as 0 or negative.
func (s *CartService) SetQuantity(ctx context.Context, userID uint, productID, quantity int) (bool, *models.CartItem, error) {
	if err := checkProductID(productID); err != nil {
		return false, nil, err
	}

	if quantity < 1 {
		rows, err := s.Repo.DeleteCartItem(ctx, userID, uint(productID))
		if err != nil {
			return false, nil, err
		}
		if rows == 0 {
			return false, nil, apperr.NotFound("CART_ITEM_NOT_FOUND", "Товар не найден в корзине")
		}
		return true, nil, nil
	}

	if err := ensureProductExists(ctx, s.Repo, uint(productID)); err != nil {
		return false, nil, err
	}
	rows, err := s.Repo.SetCartQuantity(ctx, userID, uint(productID), uint(quantity))
	if err != nil {
		return false, nil, err
	}
	if rows == 0 {
		return false, nil, apperr.NotFound("CART_ITEM_NOT_FOUND", "Товар не найден в корзине")
	}

	item, err := s.Repo.GetCartItem(ctx, userID, uint(productID))
	if err != nil {
		return false, nil, err
	}
	return false, item, nil
}

func (s *CartService) Remove(ctx context.Context, userID uint, productID int) error {
	if err := checkProductID(productID); err != nil {
		return err
	}
	if err := ensureProductExists(ctx, s.Repo, uint(productID)); err != nil {
		return err
	}

	rows, err := s.Repo.DeleteCartItem(ctx, userID, uint(productID))
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.NotFound("CART_ITEM_NOT_FOUND", "Товар не найден в корзине")
	}
	return nil
}

// GetItemByID is id-addressed access: non-admins only see their own rows.
func (s *CartService) GetItemByID(ctx context.Context, ident authn.Identity, id int) (*models.CartItem, error) {
	if err := checkRowID(id); err != nil {
		return nil, err
	}

	item, err := s.Repo.GetCartItemByID(ctx, uint(id))
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, apperr.NotFound("CART_ITEM_NOT_FOUND", "Запись не найдена")
		}
		return nil, err
	}
	if !ident.IsAdmin() && item.UserID != ident.UserID {
		return nil, apperr.NotFound("CART_ITEM_NOT_FOUND", "Запись не найдена")
	}
	return item, nil
}

func (s *CartService) UpdateItemByID(ctx context.Context, ident authn.Identity, id int, userID uint, productID, quantity int) error {
	if err := checkRowID(id); err != nil {
		return err
	}
	if err := checkProductID(productID); err != nil {
		return err
	}
	if quantity < 1 {
		return apperr.Validation("INVALID_QUANTITY", "quantity должно быть целым числом >= 1")
	}
	if err := ensureProductExists(ctx, s.Repo, uint(productID)); err != nil {
		return err
	}

	existing, err := s.Repo.GetCartItemByID(ctx, uint(id))
	if err != nil {
		if repo.IsNotFound(err) {
			return apperr.NotFound("CART_ITEM_NOT_FOUND", "Запись не найдена или доступ запрещен")
		}
		return err
	}
	if !ident.IsAdmin() && existing.UserID != ident.UserID {
		return apperr.NotFound("CART_ITEM_NOT_FOUND", "Запись не найдена или доступ запрещен")
	}

	rows, err := s.Repo.UpdateCartItemByID(ctx, uint(id), userID, uint(productID), uint(quantity))
	if err != nil {
		if repo.IsDuplicate(err) {
			return apperr.Conflict("DUPLICATE_ENTRY", "Запись уже существует")
		}
		return err
	}
	if rows == 0 {
		return apperr.NotFound("CART_ITEM_NOT_FOUND", "Запись не найдена")
	}
	return nil
}
