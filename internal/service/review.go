package service

import (
	"context"
	"strings"

	"github.com/antonskv/shop_backend/internal/apperr"
	"github.com/antonskv/shop_backend/internal/authn"
	"github.com/antonskv/shop_backend/internal/models"
	"github.com/antonskv/shop_backend/internal/repo"
)

type ReviewService struct {
	Repo *repo.GormRepo
}

func (s *ReviewService) List(ctx context.Context, productID int) ([]repo.ReviewWithAuthor, error) {
	var pid uint
	if productID > 0 {
		pid = uint(productID)
	}
	return s.Repo.ListReviews(ctx, pid)
}

func (s *ReviewService) Create(ctx context.Context, userID uint, productID int, comment string) (uint, error) {
	var missing []string
	if productID == 0 {
		missing = append(missing, "productId")
	}
	if strings.TrimSpace(comment) == "" {
		missing = append(missing, "comment")
	}
	if len(missing) > 0 {
		return 0, apperr.Validation("MISSING_FIELDS", "Требуются %s", strings.Join(missing, ", "))
	}
	if err := checkProductID(productID); err != nil {
		return 0, err
	}
	if err := ensureProductExists(ctx, s.Repo, uint(productID)); err != nil {
		return 0, err
	}

	review := models.Review{
		ProductID: uint(productID),
		UserID:    userID,
		Comment:   strings.TrimSpace(comment),
	}
	if err := s.Repo.CreateReview(ctx, &review); err != nil {
		return 0, err
	}
	return review.ID, nil
}

// Delete allows authors to remove their own reviews; admins may remove
// any.
func (s *ReviewService) Delete(ctx context.Context, ident authn.Identity, id int) error {
	if err := checkRowID(id); err != nil {
		return err
	}

	review, err := s.Repo.GetReview(ctx, uint(id))
	if err != nil {
		if repo.IsNotFound(err) {
			return apperr.NotFound("NOT_FOUND", "Отзыв не найден")
		}
		return err
	}
	if review.UserID != ident.UserID && !ident.IsAdmin() {
		return apperr.New(apperr.ErrForbidden, "FORBIDDEN", "Вы можете удалять только свои отзывы")
	}

	rows, err := s.Repo.DeleteReview(ctx, uint(id))
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.NotFound("NOT_FOUND", "Отзыв не найден")
	}
	return nil
}
