package service

import (
	"context"
	"strings"
	"time"

	"github.com/antonskv/shop_backend/internal/apperr"
	"github.com/antonskv/shop_backend/internal/authn"
	"github.com/antonskv/shop_backend/internal/hash"
	"github.com/antonskv/shop_backend/internal/logging"
	"github.com/antonskv/shop_backend/internal/models"
	"github.com/antonskv/shop_backend/internal/repo"
)

const minPasswordLength = 8

type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
}

// LoginResult bundles the signed tokens with their expiry, so the
// handler can set cookies without recomputing TTLs.
type LoginResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

// Register creates a new account. The role is always "user": privileged
// accounts are provisioned through the admin surface only.
func (s *AuthService) Register(ctx context.Context, username, email, password, confirm string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	var missing []string
	if strings.TrimSpace(username) == "" {
		missing = append(missing, "username")
	}
	if strings.TrimSpace(email) == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, apperr.Validation("MISSING_FIELDS", "Требуются %s", strings.Join(missing, ", "))
	}
	if confirm != "" && password != confirm {
		return nil, apperr.Validation("PASSWORD_MISMATCH", "Пароли не совпадают")
	}
	if len(password) < minPasswordLength {
		return nil, apperr.Validation("INVALID_PASSWORD_LENGTH", "Пароль должен содержать минимум %d символов", minPasswordLength)
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return nil, apperr.Validation("INVALID_EMAIL", "Некорректный email")
	}

	hashed, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Username:     strings.TrimSpace(username),
		Email:        email,
		PasswordHash: hashed,
		Role:         authn.RoleUser,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if repo.IsDuplicate(err) {
			return nil, apperr.Conflict("EMAIL_EXISTS", "Пользователь с таким email уже существует")
		}
		return nil, err
	}

	l.Info("user_registered", "user_id", user.ID)
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperr.Validation("MISSING_FIELDS", "Требуются email, password")
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, apperr.New(apperr.ErrUnauthorized, "INVALID_CREDENTIALS", "Неверный email или пароль")
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, apperr.New(apperr.ErrUnauthorized, "INVALID_CREDENTIALS", "Неверный email или пароль")
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*LoginResult, error) {
	now := time.Now()
	accessExp := now.Add(authn.AccessTokenTTL)
	refreshExp := now.Add(authn.RefreshTokenTTL)

	access, err := authn.SignAccessToken(user.ID, user.Role, s.JWTSecret, accessExp)
	if err != nil {
		return nil, err
	}
	refresh, jti, err := authn.SignRefreshToken(user.ID, s.RefreshSecret, refreshExp)
	if err != nil {
		return nil, err
	}
	stored := models.RefreshToken{
		Token:     refresh,
		JTI:       jti,
		UserID:    user.ID,
		ExpiresAt: refreshExp.Unix(),
	}
	if err := s.Repo.SaveRefreshToken(ctx, &stored); err != nil {
		return nil, err
	}

	return &LoginResult{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}

// Refresh rotates the token pair: the presented refresh token must be
// known, unrevoked and unexpired, and is revoked on use.
func (s *AuthService) Refresh(ctx context.Context, rawToken string) (*LoginResult, error) {
	if rawToken == "" {
		return nil, apperr.New(apperr.ErrUnauthorized, "UNAUTHORIZED", "Требуется авторизация")
	}

	userID, _, err := authn.ParseRefreshToken(rawToken, s.RefreshSecret)
	if err != nil {
		return nil, apperr.New(apperr.ErrUnauthorized, "UNAUTHORIZED", "Недействительный токен")
	}

	stored, err := s.Repo.GetRefreshToken(ctx, rawToken)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, apperr.New(apperr.ErrUnauthorized, "UNAUTHORIZED", "Недействительный токен")
		}
		return nil, err
	}
	if stored.Revoked || stored.ExpiresAt < time.Now().Unix() || stored.UserID != userID {
		return nil, apperr.New(apperr.ErrUnauthorized, "UNAUTHORIZED", "Недействительный токен")
	}

	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, apperr.New(apperr.ErrUnauthorized, "UNAUTHORIZED", "Недействительный токен")
		}
		return nil, err
	}

	if err := s.Repo.RevokeRefreshToken(ctx, rawToken); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}
	return s.Repo.RevokeRefreshToken(ctx, rawToken)
}

func (s *AuthService) Me(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, apperr.NotFound("USER_NOT_FOUND", "Пользователь не найден")
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, username, email string) (*models.User, error) {
	var missing []string
	if strings.TrimSpace(username) == "" {
		missing = append(missing, "username")
	}
	if strings.TrimSpace(email) == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return nil, apperr.Validation("MISSING_FIELDS", "Требуются %s", strings.Join(missing, ", "))
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return nil, apperr.Validation("INVALID_EMAIL", "Некорректный email")
	}

	rows, err := s.Repo.UpdateUserProfile(ctx, userID, strings.TrimSpace(username), email)
	if err != nil {
		if repo.IsDuplicate(err) {
			return nil, apperr.Conflict("EMAIL_EXISTS", "Пользователь с таким email уже существует")
		}
		return nil, err
	}
	if rows == 0 {
		return nil, apperr.NotFound("USER_NOT_FOUND", "Пользователь не найден")
	}
	return s.Me(ctx, userID)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	if current == "" || next == "" {
		return apperr.Validation("MISSING_FIELDS", "Требуются currentPassword, newPassword")
	}
	if len(next) < minPasswordLength {
		return apperr.Validation("INVALID_PASSWORD_LENGTH", "Пароль должен содержать минимум %d символов", minPasswordLength)
	}

	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if repo.IsNotFound(err) {
			return apperr.NotFound("USER_NOT_FOUND", "Пользователь не найден")
		}
		return err
	}
	if !hash.CheckPassword(user.PasswordHash, current) {
		return apperr.Validation("INVALID_CURRENT_PASSWORD", "Неверный текущий пароль")
	}

	hashed, err := hash.HashPassword(next)
	if err != nil {
		return err
	}
	return s.Repo.UpdateUserPassword(ctx, userID, hashed)
}
