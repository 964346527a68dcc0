package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/antonskv/shop_backend/internal/authn"
)

type reviewRequest struct {
	UserID    int    `json:"userId"`
	ProductID int    `json:"productId" validate:"required"`
	Comment   string `json:"comment" validate:"required"`
}

func (s *Server) handleListReviews(c echo.Context) error {
	reviews, err := s.Reviews.List(c.Request().Context(), queryInt(c, "productId"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, reviews)
}

func (s *Server) handleCreateReview(c echo.Context) error {
	ident, _ := authn.IdentityFrom(c)

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return bindErr(c)
	}
	if err := c.Validate(&req); err != nil {
		return writeErr(c, err)
	}
	userID := authn.EffectiveUserID(ident, req.UserID)

	id, err := s.Reviews.Create(c.Request().Context(), userID, req.ProductID, req.Comment)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

func (s *Server) handleDeleteReview(c echo.Context) error {
	ident, _ := authn.IdentityFrom(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "INVALID_ID", "id должен быть целым числом больше 0")
	}

	if err := s.Reviews.Delete(c.Request().Context(), ident, id); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Отзыв удален"})
}
