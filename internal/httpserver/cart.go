package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/antonskv/shop_backend/internal/authn"
)

// cartItemRequest leaves the int fields untagged on purpose: zero and
// absent values get their typed codes from the service checks.
type cartItemRequest struct {
	UserID    int `json:"userId"`
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

func (s *Server) handleGetCart(c echo.Context) error {
	ident, _ := authn.IdentityFrom(c)
	userID := authn.EffectiveUserID(ident, queryInt(c, "userId"))

	items, err := s.Cart.Get(c.Request().Context(), userID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (s *Server) handleAddToCart(c echo.Context) error {
	ident, _ := authn.IdentityFrom(c)

	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		return bindErr(c)
	}
	userID := authn.EffectiveUserID(ident, req.UserID)

	item, err := s.Cart.Add(c.Request().Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		return writeErr(c, err)
	}

	s.publish(c, topicCartEvents, "added", map[string]any{
		"user_id": userID, "product_id": item.ProductID, "quantity": item.Quantity,
	})
	return c.JSON(http.StatusCreated, item)
}

func (s *Server) handleSetCartQuantity(c echo.Context) error {
	ident, _ := authn.IdentityFrom(c)

	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		return bindErr(c)
	}
	userID := authn.EffectiveUserID(ident, req.UserID)

	deleted, item, err := s.Cart.SetQuantity(c.Request().Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		return writeErr(c, err)
	}
	if deleted {
		return c.JSON(http.StatusOK, echo.Map{"message": "Товар удален из корзины"})
	}
	return c.JSON(http.StatusOK, item)
}

func (s *Server) handleRemoveFromCart(c echo.Context) error {
	ident, _ := authn.IdentityFrom(c)
	userID := authn.EffectiveUserID(ident, queryInt(c, "userId"))

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		return badRequest(c, "INVALID_PRODUCT_ID", "productId должен быть целым числом больше 0")
	}

	if err := s.Cart.Remove(c.Request().Context(), userID, productID); err != nil {
		return writeErr(c, err)
	}

	s.publish(c, topicCartEvents, "removed", map[string]any{
		"user_id": userID, "product_id": productID,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "Товар удален из корзины"})
}

func (s *Server) handleGetCartItem(c echo.Context) error {
	ident, _ := authn.IdentityFrom(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "INVALID_ID", "id должен быть целым числом больше 0")
	}

	item, err := s.Cart.GetItemByID(c.Request().Context(), ident, id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (s *Server) handleUpdateCartItem(c echo.Context) error {
	ident, _ := authn.IdentityFrom(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "INVALID_ID", "id должен быть целым числом больше 0")
	}

	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		return bindErr(c)
	}
	userID := authn.EffectiveUserID(ident, req.UserID)

	if err := s.Cart.UpdateItemByID(c.Request().Context(), ident, id, userID, req.ProductID, req.Quantity); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Запись обновлена"})
}

func queryInt(c echo.Context, name string) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return v
}
