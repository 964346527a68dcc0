package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/antonskv/shop_backend/internal/authn"
)

type ratingRequest struct {
	UserID    int `json:"userId"`
	ProductID int `json:"productId"`
	Rating    int `json:"rating"`
}

func (s *Server) handleListRatings(c echo.Context) error {
	ratings, err := s.Ratings.List(c.Request().Context(), queryInt(c, "productId"), queryInt(c, "userId"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, ratings)
}

func (s *Server) handleGetRating(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "INVALID_ID", "id должен быть целым числом больше 0")
	}

	rating, err := s.Ratings.Get(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, rating)
}

func (s *Server) handleSubmitRating(c echo.Context) error {
	ident, _ := authn.IdentityFrom(c)

	var req ratingRequest
	if err := c.Bind(&req); err != nil {
		return bindErr(c)
	}
	userID := authn.EffectiveUserID(ident, req.UserID)

	id, updated, err := s.Ratings.Submit(c.Request().Context(), req.ProductID, int(userID), req.Rating)
	if err != nil {
		return writeErr(c, err)
	}

	status := http.StatusCreated
	if updated {
		status = http.StatusOK
	}
	return c.JSON(status, echo.Map{"id": id, "updated": updated})
}

func (s *Server) handleUpdateRating(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "INVALID_ID", "id должен быть целым числом больше 0")
	}

	var req ratingRequest
	if err := c.Bind(&req); err != nil {
		return bindErr(c)
	}

	if err := s.Ratings.UpdateByID(c.Request().Context(), id, req.ProductID, req.UserID, req.Rating); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Рейтинг обновлен"})
}

func (s *Server) handleDeleteRating(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "INVALID_ID", "id должен быть целым числом больше 0")
	}

	if err := s.Ratings.Delete(c.Request().Context(), id); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Рейтинг удален"})
}
