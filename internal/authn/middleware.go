package authn

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const identityKey = "identity"

const AccessCookieName = "accessToken"
const RefreshCookieName = "refreshToken"

type Middleware struct {
	JWTSecret []byte
}

// RequireAuth rejects the request before any validation or store access
// when no valid session identity is present.
func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(AccessCookieName)
		if err != nil || cookie.Value == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error": "Требуется авторизация", "code": "UNAUTHORIZED",
			})
		}

		ident, err := ParseAccessToken(cookie.Value, m.JWTSecret)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error": "Требуется авторизация", "code": "UNAUTHORIZED",
			})
		}

		c.Set(identityKey, ident)
		return next(c)
	}
}

func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireAuth(func(c echo.Context) error {
		ident, _ := IdentityFrom(c)
		if !ident.IsAdmin() {
			return c.JSON(http.StatusForbidden, echo.Map{
				"error": "Доступ запрещен", "code": "FORBIDDEN",
			})
		}
		return next(c)
	})
}

func IdentityFrom(c echo.Context) (Identity, bool) {
	ident, ok := c.Get(identityKey).(Identity)
	return ident, ok
}

func CreateCookie(name, value, path string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  exp,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}
