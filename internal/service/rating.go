package service

import (
	"context"

	"github.com/antonskv/shop_backend/internal/apperr"
	"github.com/antonskv/shop_backend/internal/models"
	"github.com/antonskv/shop_backend/internal/repo"
)

type RatingService struct {
	Repo *repo.GormRepo
}

func (s *RatingService) List(ctx context.Context, productID, userID int) ([]models.Rating, error) {
	f := repo.RatingFilter{}
	if productID > 0 {
		f.ProductID = uint(productID)
	}
	if userID > 0 {
		f.UserID = uint(userID)
	}
	return s.Repo.ListRatings(ctx, f)
}

func (s *RatingService) Get(ctx context.Context, id int) (*models.Rating, error) {
	if err := checkRowID(id); err != nil {
		return nil, err
	}
	rating, err := s.Repo.GetRating(ctx, uint(id))
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, apperr.NotFound("RATING_NOT_FOUND", "Рейтинг не найден")
		}
		return nil, err
	}
	return rating, nil
}

// Submit upserts the (product, user) rating: an existing row is updated
// in place (same id, same created_at), so at most one row ever exists
// for the pair and its value is the most recent submission.
func (s *RatingService) Submit(ctx context.Context, productID, userID, value int) (uint, bool, error) {
	if err := checkProductID(productID); err != nil {
		return 0, false, err
	}
	if err := checkUserID(userID); err != nil {
		return 0, false, err
	}
	if value < 1 || value > 5 {
		return 0, false, apperr.Validation("INVALID_RATING", "rating должен быть целым числом от 1 до 5")
	}
	if err := ensureUserExists(ctx, s.Repo, uint(userID)); err != nil {
		return 0, false, err
	}
	if err := ensureProductExists(ctx, s.Repo, uint(productID)); err != nil {
		return 0, false, err
	}

	existing, err := s.Repo.GetRatingByPair(ctx, uint(productID), uint(userID))
	if err == nil {
		if _, err := s.Repo.UpdateRatingValue(ctx, existing.ID, value); err != nil {
			return 0, false, err
		}
		return existing.ID, true, nil
	}
	if !repo.IsNotFound(err) {
		return 0, false, err
	}

	rating := models.Rating{ProductID: uint(productID), UserID: uint(userID), Rating: value}
	if err := s.Repo.CreateRating(ctx, &rating); err != nil {
		// Two concurrent submissions can both miss the check; the unique
		// index settles it and the loser gets a coded duplicate.
		if repo.IsDuplicate(err) {
			return 0, false, apperr.Conflict("DUPLICATE_ENTRY", "Запись уже существует")
		}
		return 0, false, err
	}
	return rating.ID, false, nil
}

func (s *RatingService) UpdateByID(ctx context.Context, id, productID, userID, value int) error {
	if err := checkRowID(id); err != nil {
		return err
	}
	if err := checkProductID(productID); err != nil {
		return err
	}
	if err := checkUserID(userID); err != nil {
		return err
	}
	if value < 1 || value > 5 {
		return apperr.Validation("INVALID_RATING", "rating должен быть целым числом от 1 до 5")
	}
	if err := ensureUserExists(ctx, s.Repo, uint(userID)); err != nil {
		return err
	}
	if err := ensureProductExists(ctx, s.Repo, uint(productID)); err != nil {
		return err
	}

	rows, err := s.Repo.UpdateRating(ctx, uint(id), uint(productID), uint(userID), value)
	if err != nil {
		if repo.IsDuplicate(err) {
			return apperr.Conflict("DUPLICATE_ENTRY", "Запись уже существует")
		}
		return err
	}
	if rows == 0 {
		return apperr.NotFound("RATING_NOT_FOUND", "Рейтинг не найден")
	}
	return nil
}

func (s *RatingService) Delete(ctx context.Context, id int) error {
	if err := checkRowID(id); err != nil {
		return err
	}
	rows, err := s.Repo.DeleteRating(ctx, uint(id))
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.NotFound("RATING_NOT_FOUND", "Рейтинг не найден")
	}
	return nil
}
