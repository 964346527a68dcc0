package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/antonskv/shop_backend/internal/apperr"
	"github.com/antonskv/shop_backend/internal/authn"
	"github.com/antonskv/shop_backend/internal/logging"
	"github.com/antonskv/shop_backend/internal/models"
	"github.com/antonskv/shop_backend/internal/repo"
)

type DeliveryService struct {
	Repo *repo.GormRepo
}

// CheckoutLine is one order line of a bulk checkout.
type CheckoutLine struct {
	ProductID int    `json:"product_id"`
	Count     int    `json:"count"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

// LineError tags a checkout validation failure with the index of the
// offending line, so the caller sees every problem at once.
type LineError struct {
	Index   int    `json:"index"`
	Code    string `json:"code"`
	Message string `json:"error"`
}

type CheckoutError struct {
	Lines []LineError
}

func (e *CheckoutError) Error() string {
	return fmt.Sprintf("checkout rejected: %d invalid line(s)", len(e.Lines))
}

// Checkout converts order lines into delivery rows and empties the
// caller's cart, all inside one transaction. Validation of every line
// happens before any insert; a single bad line aborts the whole batch
// with the complete error list, leaving orders and cart untouched.
func (s *DeliveryService) Checkout(ctx context.Context, userID uint, lines []CheckoutLine) ([]models.DeliveryOrder, error) {
	l := logging.FromContext(ctx).With("svc", "delivery.checkout", "user_id", userID)

	if len(lines) == 0 {
		return nil, apperr.Validation("INVALID_DATA", "Требуется непустой массив заказов")
	}

	var created []models.DeliveryOrder
	err := s.Repo.Tx(ctx, func(tx *repo.GormRepo) error {
		var lineErrs []LineError
		for i, line := range lines {
			if line.ProductID < 1 || line.Count < 1 ||
				strings.TrimSpace(line.Date) == "" || strings.TrimSpace(line.Time) == "" {
				lineErrs = append(lineErrs, LineError{
					Index: i, Code: "INVALID_ORDER_DATA", Message: "Некорректные данные заказа",
				})
				continue
			}
			ok, err := tx.ProductExists(ctx, uint(line.ProductID))
			if err != nil {
				return err
			}
			if !ok {
				lineErrs = append(lineErrs, LineError{
					Index: i, Code: "PRODUCT_NOT_FOUND", Message: "Товар не найден",
				})
			}
		}
		if len(lineErrs) > 0 {
			return &CheckoutError{Lines: lineErrs}
		}

		created = make([]models.DeliveryOrder, 0, len(lines))
		for _, line := range lines {
			order := models.DeliveryOrder{
				UserID:    userID,
				ProductID: uint(line.ProductID),
				Count:     uint(line.Count),
				Date:      line.Date,
				Time:      line.Time,
				Status:    models.DeliveryStatusPreparing,
			}
			if err := tx.CreateDelivery(ctx, &order); err != nil {
				return err
			}
			created = append(created, order)
		}

		// Inserted orders must not survive a failed cart clear.
		return tx.ClearCart(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	l.Info("checkout_complete", "orders", len(created))
	return created, nil
}

// CheckoutCart builds the line list from the caller's current cart and
// runs the same transactional checkout.
func (s *DeliveryService) CheckoutCart(ctx context.Context, userID uint, date, timeOfDay string) ([]models.DeliveryOrder, error) {
	items, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperr.Validation("INVALID_DATA", "Требуется непустой массив заказов")
	}

	lines := make([]CheckoutLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, CheckoutLine{
			ProductID: int(it.ProductID),
			Count:     int(it.Quantity),
			Date:      date,
			Time:      timeOfDay,
		})
	}
	return s.Checkout(ctx, userID, lines)
}

// Create inserts a single delivery order outside the bulk flow.
func (s *DeliveryService) Create(ctx context.Context, userID uint, line CheckoutLine, status string) (*models.DeliveryOrder, error) {
	var missing []string
	if line.ProductID == 0 {
		missing = append(missing, "productId")
	}
	if line.Count == 0 {
		missing = append(missing, "count")
	}
	if strings.TrimSpace(line.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(line.Time) == "" {
		missing = append(missing, "time")
	}
	if len(missing) > 0 {
		return nil, apperr.Validation("MISSING_FIELDS", "Требуются %s", strings.Join(missing, ", "))
	}
	if line.Count < 1 {
		return nil, apperr.Validation("INVALID_QUANTITY", "Количество должно быть положительным")
	}
	if err := checkProductID(line.ProductID); err != nil {
		return nil, err
	}
	if status == "" {
		status = models.DeliveryStatusPreparing
	}
	if !models.ValidDeliveryStatus(status) {
		return nil, apperr.Validation("INVALID_STATUS", "Недопустимый статус доставки")
	}
	if err := ensureProductExists(ctx, s.Repo, uint(line.ProductID)); err != nil {
		return nil, err
	}

	order := models.DeliveryOrder{
		UserID:    userID,
		ProductID: uint(line.ProductID),
		Count:     uint(line.Count),
		Date:      line.Date,
		Time:      line.Time,
		Status:    status,
	}
	if err := s.Repo.CreateDelivery(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *DeliveryService) List(ctx context.Context, ident authn.Identity) ([]models.DeliveryOrder, error) {
	if ident.IsAdmin() {
		return s.Repo.ListDeliveries(ctx, nil)
	}
	uid := ident.UserID
	return s.Repo.ListDeliveries(ctx, &uid)
}

func (s *DeliveryService) Get(ctx context.Context, ident authn.Identity, id int) (*models.DeliveryOrder, error) {
	if err := checkRowID(id); err != nil {
		return nil, err
	}

	var scope *uint
	if !ident.IsAdmin() {
		uid := ident.UserID
		scope = &uid
	}
	row, err := s.Repo.GetDelivery(ctx, uint(id), scope)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, apperr.NotFound("NOT_FOUND", "Доставка не найдена")
		}
		return nil, err
	}
	return row, nil
}

// UpdateStatus is the explicit admin status transition; it replaces the
// original full-row update for the preparing → ready/cancelled flow.
func (s *DeliveryService) UpdateStatus(ctx context.Context, id int, status string) error {
	if err := checkRowID(id); err != nil {
		return err
	}
	if strings.TrimSpace(status) == "" {
		return apperr.Validation("INVALID_STATUS", "Статус должен быть непустой строкой")
	}
	if !models.ValidDeliveryStatus(status) {
		return apperr.Validation("INVALID_STATUS",
			"Статус должен быть одним из: %s, %s, %s",
			models.DeliveryStatusPreparing, models.DeliveryStatusReady, models.DeliveryStatusCancelled)
	}

	rows, err := s.Repo.UpdateDeliveryStatus(ctx, uint(id), status)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.NotFound("NOT_FOUND", "Доставка не найдена")
	}
	return nil
}

// Update is the admin full-row update.
func (s *DeliveryService) Update(ctx context.Context, id, userID int, line CheckoutLine, status string) error {
	if err := checkRowID(id); err != nil {
		return err
	}

	var missing []string
	if userID == 0 {
		missing = append(missing, "userId")
	}
	if line.ProductID == 0 {
		missing = append(missing, "productId")
	}
	if line.Count == 0 {
		missing = append(missing, "count")
	}
	if strings.TrimSpace(line.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(line.Time) == "" {
		missing = append(missing, "time")
	}
	if strings.TrimSpace(status) == "" {
		missing = append(missing, "status")
	}
	if len(missing) > 0 {
		return apperr.Validation("MISSING_FIELDS", "Требуются %s", strings.Join(missing, ", "))
	}
	if line.Count < 1 {
		return apperr.Validation("INVALID_QUANTITY", "Количество должно быть положительным")
	}
	if err := checkUserID(userID); err != nil {
		return err
	}
	if err := checkProductID(line.ProductID); err != nil {
		return err
	}
	if !models.ValidDeliveryStatus(status) {
		return apperr.Validation("INVALID_STATUS", "Недопустимый статус доставки")
	}
	if err := ensureProductExists(ctx, s.Repo, uint(line.ProductID)); err != nil {
		return err
	}
	if err := ensureUserExists(ctx, s.Repo, uint(userID)); err != nil {
		return err
	}

	order := models.DeliveryOrder{
		ID:        uint(id),
		UserID:    uint(userID),
		ProductID: uint(line.ProductID),
		Count:     uint(line.Count),
		Date:      line.Date,
		Time:      line.Time,
		Status:    status,
	}
	rows, err := s.Repo.UpdateDelivery(ctx, &order)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.NotFound("NOT_FOUND", "Доставка не найдена")
	}
	return nil
}

func (s *DeliveryService) Delete(ctx context.Context, id int) error {
	if err := checkRowID(id); err != nil {
		return err
	}
	rows, err := s.Repo.DeleteDelivery(ctx, uint(id))
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.NotFound("NOT_FOUND", "Доставка не найдена")
	}
	return nil
}
