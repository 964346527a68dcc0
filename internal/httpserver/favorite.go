package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/antonskv/shop_backend/internal/authn"
)

type favoriteRequest struct {
	UserID    int `json:"userId"`
	ProductID int `json:"productId"`
}

func (s *Server) handleListFavorites(c echo.Context) error {
	ident, _ := authn.IdentityFrom(c)
	userID := authn.EffectiveUserID(ident, queryInt(c, "userId"))

	favorites, err := s.Favorites.List(c.Request().Context(), userID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, favorites)
}

func (s *Server) handleAddFavorite(c echo.Context) error {
	ident, _ := authn.IdentityFrom(c)

	var req favoriteRequest
	if err := c.Bind(&req); err != nil {
		return bindErr(c)
	}
	userID := authn.EffectiveUserID(ident, req.UserID)

	id, err := s.Favorites.Add(c.Request().Context(), userID, req.ProductID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// handleToggleFavorite flips membership and reports the resulting state.
func (s *Server) handleToggleFavorite(c echo.Context) error {
	ident, _ := authn.IdentityFrom(c)

	var req favoriteRequest
	if err := c.Bind(&req); err != nil {
		return bindErr(c)
	}
	userID := authn.EffectiveUserID(ident, req.UserID)

	isFavorite, id, err := s.Favorites.Toggle(c.Request().Context(), userID, req.ProductID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"is_favorite": isFavorite, "id": id})
}

func (s *Server) handleRemoveFavorite(c echo.Context) error {
	ident, _ := authn.IdentityFrom(c)
	userID := authn.EffectiveUserID(ident, queryInt(c, "userId"))

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		return badRequest(c, "INVALID_PRODUCT_ID", "productId должен быть целым числом больше 0")
	}

	if err := s.Favorites.Remove(c.Request().Context(), userID, productID); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Товар удален из избранного"})
}
