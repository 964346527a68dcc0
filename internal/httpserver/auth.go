package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/antonskv/shop_backend/internal/authn"
	"github.com/antonskv/shop_backend/internal/service"
)

type registerRequest struct {
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return bindErr(c)
	}
	if err := c.Validate(&req); err != nil {
		return writeErr(c, err)
	}

	user, err := s.Auth.Register(c.Request().Context(), req.Username, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		return writeErr(c, err)
	}

	s.publish(c, topicUserEvents, "registered", map[string]any{
		"user_id": user.ID, "email": user.Email,
	})
	return c.JSON(http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return bindErr(c)
	}
	if err := c.Validate(&req); err != nil {
		return writeErr(c, err)
	}

	result, err := s.Auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeErr(c, err)
	}
	s.setSessionCookies(c, result)

	s.publish(c, topicUserEvents, "login", map[string]any{"user_id": result.User.ID})
	return c.JSON(http.StatusOK, echo.Map{
		"user":     result.User,
		"is_admin": result.User.Role == authn.RoleAdmin,
	})
}

func (s *Server) handleRefresh(c echo.Context) error {
	cookie, err := c.Cookie(authn.RefreshCookieName)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error": "Требуется авторизация", "code": "UNAUTHORIZED",
		})
	}

	result, err := s.Auth.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		return writeErr(c, err)
	}
	s.setSessionCookies(c, result)

	return c.JSON(http.StatusOK, echo.Map{"user": result.User})
}

func (s *Server) handleLogout(c echo.Context) error {
	if cookie, err := c.Cookie(authn.RefreshCookieName); err == nil {
		if err := s.Auth.Logout(c.Request().Context(), cookie.Value); err != nil {
			return writeErr(c, err)
		}
	}

	expired := time.Unix(0, 0)
	c.SetCookie(authn.CreateCookie(authn.AccessCookieName, "", "/", expired))
	c.SetCookie(authn.CreateCookie(authn.RefreshCookieName, "", "/", expired))
	return c.JSON(http.StatusOK, echo.Map{"message": "Выход выполнен"})
}

func (s *Server) handleMe(c echo.Context) error {
	ident, _ := authn.IdentityFrom(c)
	user, err := s.Auth.Me(c.Request().Context(), ident.UserID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

type updateProfileRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

func (s *Server) handleUpdateProfile(c echo.Context) error {
	ident, _ := authn.IdentityFrom(c)

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return bindErr(c)
	}
	if err := c.Validate(&req); err != nil {
		return writeErr(c, err)
	}

	user, err := s.Auth.UpdateProfile(c.Request().Context(), ident.UserID, req.Username, req.Email)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

func (s *Server) handleChangePassword(c echo.Context) error {
	ident, _ := authn.IdentityFrom(c)

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return bindErr(c)
	}
	if err := c.Validate(&req); err != nil {
		return writeErr(c, err)
	}

	if err := s.Auth.ChangePassword(c.Request().Context(), ident.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Пароль обновлен"})
}

func (s *Server) setSessionCookies(c echo.Context, result *service.LoginResult) {
	c.SetCookie(authn.CreateCookie(authn.AccessCookieName, result.AccessToken, "/", result.AccessExp))
	c.SetCookie(authn.CreateCookie(authn.RefreshCookieName, result.RefreshToken, "/", result.RefreshExp))
}
