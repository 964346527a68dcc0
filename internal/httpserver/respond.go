package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/antonskv/shop_backend/internal/apperr"
	"github.com/antonskv/shop_backend/internal/logging"
	"github.com/antonskv/shop_backend/internal/service"
)

// writeErr renders every service error as the {"error", "code"} envelope.
// Checkout batch failures carry one entry per bad line instead.
func writeErr(c echo.Context, err error) error {
	var checkout *service.CheckoutError
	if errors.As(err, &checkout) {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": checkout.Lines})
	}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return c.JSON(apperr.Status(err), echo.Map{
			"error": appErr.Message,
			"code":  appErr.Code,
		})
	}

	logging.FromContext(c.Request().Context()).Error("internal_error",
		"method", c.Request().Method, "path", c.Path(), "error", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"error": "Внутренняя ошибка сервера",
		"code":  "SERVER_ERROR",
	})
}

func badRequest(c echo.Context, code, message string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": message, "code": code})
}

func bindErr(c echo.Context) error {
	return badRequest(c, "INVALID_DATA", "Некорректное тело запроса")
}
