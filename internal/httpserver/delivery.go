package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/antonskv/shop_backend/internal/authn"
	"github.com/antonskv/shop_backend/internal/models"
	"github.com/antonskv/shop_backend/internal/service"
)

type deliveryLineRequest struct {
	ProductID int    `json:"productId"`
	Count     int    `json:"count"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

func (r deliveryLineRequest) toLine() service.CheckoutLine {
	return service.CheckoutLine{
		ProductID: r.ProductID,
		Count:     r.Count,
		Date:      r.Date,
		Time:      r.Time,
	}
}

type checkoutRequest struct {
	UserID int                   `json:"userId"`
	Orders []deliveryLineRequest `json:"orders"`
	Date   string                `json:"date"`
	Time   string                `json:"time"`
}

// handleCheckout accepts either an explicit line list or, when orders is
// omitted, a date/time pair applied to the caller's current cart.
func (s *Server) handleCheckout(c echo.Context) error {
	ident, _ := authn.IdentityFrom(c)

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return bindErr(c)
	}
	userID := authn.EffectiveUserID(ident, req.UserID)

	var orders []models.DeliveryOrder
	var err error
	if len(req.Orders) == 0 {
		orders, err = s.Delivery.CheckoutCart(c.Request().Context(), userID, req.Date, req.Time)
	} else {
		lines := make([]service.CheckoutLine, len(req.Orders))
		for i, o := range req.Orders {
			lines[i] = o.toLine()
		}
		orders, err = s.Delivery.Checkout(c.Request().Context(), userID, lines)
	}
	if err != nil {
		return writeErr(c, err)
	}

	s.publish(c, topicOrderEvents, "checkout", map[string]any{
		"user_id": userID, "orders": len(orders),
	})
	return c.JSON(http.StatusCreated, orders)
}

type createDeliveryRequest struct {
	UserID int    `json:"userId"`
	Status string `json:"status"`
	deliveryLineRequest
}

func (s *Server) handleCreateDelivery(c echo.Context) error {
	ident, _ := authn.IdentityFrom(c)

	var req createDeliveryRequest
	if err := c.Bind(&req); err != nil {
		return bindErr(c)
	}
	userID := authn.EffectiveUserID(ident, req.UserID)

	order, err := s.Delivery.Create(c.Request().Context(), userID, req.toLine(), req.Status)
	if err != nil {
		return writeErr(c, err)
	}

	s.publish(c, topicOrderEvents, "created", map[string]any{
		"user_id": userID, "order_id": order.ID,
	})
	return c.JSON(http.StatusCreated, order)
}

func (s *Server) handleListDeliveries(c echo.Context) error {
	ident, _ := authn.IdentityFrom(c)

	orders, err := s.Delivery.List(c.Request().Context(), ident)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (s *Server) handleGetDelivery(c echo.Context) error {
	ident, _ := authn.IdentityFrom(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "INVALID_ID", "id должен быть целым числом больше 0")
	}

	order, err := s.Delivery.Get(c.Request().Context(), ident, id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

type deliveryStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (s *Server) handleUpdateDeliveryStatus(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "INVALID_ID", "id должен быть целым числом больше 0")
	}

	var req deliveryStatusRequest
	if err := c.Bind(&req); err != nil {
		return bindErr(c)
	}
	if err := c.Validate(&req); err != nil {
		return writeErr(c, err)
	}

	if err := s.Delivery.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		return writeErr(c, err)
	}

	s.publish(c, topicOrderEvents, "status_changed", map[string]any{
		"order_id": id, "status": req.Status,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "Статус обновлен"})
}

func (s *Server) handleUpdateDelivery(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "INVALID_ID", "id должен быть целым числом больше 0")
	}

	var req createDeliveryRequest
	if err := c.Bind(&req); err != nil {
		return bindErr(c)
	}

	if err := s.Delivery.Update(c.Request().Context(), id, req.UserID, req.toLine(), req.Status); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Доставка обновлена"})
}

func (s *Server) handleDeleteDelivery(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "INVALID_ID", "id должен быть целым числом больше 0")
	}

	if err := s.Delivery.Delete(c.Request().Context(), id); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Доставка удалена"})
}
