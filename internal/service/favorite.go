package service

import (
	"context"

	"github.com/antonskv/shop_backend/internal/apperr"
	"github.com/antonskv/shop_backend/internal/models"
	"github.com/antonskv/shop_backend/internal/repo"
)

type FavoriteService struct {
	Repo *repo.GormRepo
}

func (s *FavoriteService) List(ctx context.Context, userID uint) ([]repo.FavoriteProduct, error) {
	return s.Repo.ListFavorites(ctx, userID)
}

// Add is the explicit, non-toggling insert; a second add for the same
// pair is a coded duplicate.
func (s *FavoriteService) Add(ctx context.Context, userID uint, productID int) (uint, error) {
	if err := checkProductID(productID); err != nil {
		return 0, err
	}
	if err := ensureUserExists(ctx, s.Repo, userID); err != nil {
		return 0, err
	}
	if err := ensureProductExists(ctx, s.Repo, uint(productID)); err != nil {
		return 0, err
	}

	if _, err := s.Repo.GetFavorite(ctx, userID, uint(productID)); err == nil {
		return 0, apperr.Conflict("FAVORITE_ALREADY_EXISTS", "Товар уже в избранном")
	} else if !repo.IsNotFound(err) {
		return 0, err
	}

	fav := models.Favorite{UserID: userID, ProductID: uint(productID)}
	if err := s.Repo.CreateFavorite(ctx, &fav); err != nil {
		if repo.IsDuplicate(err) {
			return 0, apperr.Conflict("FAVORITE_ALREADY_EXISTS", "Товар уже в избранном")
		}
		return 0, err
	}
	return fav.ID, nil
}

// Toggle flips membership: present row is deleted, absent row is
// inserted. Each call changes state exactly once.
func (s *FavoriteService) Toggle(ctx context.Context, userID uint, productID int) (bool, uint, error) {
	if err := checkProductID(productID); err != nil {
		return false, 0, err
	}
	if err := ensureProductExists(ctx, s.Repo, uint(productID)); err != nil {
		return false, 0, err
	}

	existing, err := s.Repo.GetFavorite(ctx, userID, uint(productID))
	if err == nil {
		if _, err := s.Repo.DeleteFavorite(ctx, userID, uint(productID)); err != nil {
			return false, 0, err
		}
		return false, existing.ID, nil
	}
	if !repo.IsNotFound(err) {
		return false, 0, err
	}

	fav := models.Favorite{UserID: userID, ProductID: uint(productID)}
	if err := s.Repo.CreateFavorite(ctx, &fav); err != nil {
		// Lost check-then-insert race: surface as a duplicate, not a 500.
		if repo.IsDuplicate(err) {
			return false, 0, apperr.Conflict("DUPLICATE_ENTRY", "Запись уже существует")
		}
		return false, 0, err
	}
	return true, fav.ID, nil
}

func (s *FavoriteService) Remove(ctx context.Context, userID uint, productID int) error {
	if err := checkProductID(productID); err != nil {
		return err
	}

	rows, err := s.Repo.DeleteFavorite(ctx, userID, uint(productID))
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.NotFound("FAVORITE_NOT_FOUND", "Запись в избранном не найдена")
	}
	return nil
}
