package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/todosync/internal/crypto"
	"github.com/iudanet/todosync/internal/models"
	"github.com/iudanet/todosync/internal/server/storage"
	"github.com/iudanet/todosync/internal/validation"
	"github.com/iudanet/todosync/pkg/api"
)

// AuthConfig содержит настройки аутентификации
type AuthConfig struct {
	JWT          JWTConfig
	BcryptCost   int
	ResetCodeTTL time.Duration
}

// maxResetAttempts - после стольких неверных попыток код сброса удаляется
const maxResetAttempts = 5

// CodeSender доставляет пользователю код сброса пароля
type CodeSender interface {
	SendResetCode(ctx context.Context, email, code string) error
}

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	logger       *slog.Logger
	userStorage  storage.UserStorage
	tokenStorage storage.TokenStorage
	resetStorage storage.ResetCodeStorage
	codeSender   CodeSender
	now          func() time.Time
	cfg          AuthConfig
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(
	logger *slog.Logger,
	userStorage storage.UserStorage,
	tokenStorage storage.TokenStorage,
	resetStorage storage.ResetCodeStorage,
	codeSender CodeSender,
	cfg AuthConfig,
) *AuthHandler {
	return &AuthHandler{
		logger:       logger,
		userStorage:  userStorage,
		tokenStorage: tokenStorage,
		resetStorage: resetStorage,
		codeSender:   codeSender,
		cfg:          cfg,
		now:          time.Now,
	}
}

// Register обрабатывает POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode register request", slog.Any("error", err))
		badRequest(w, h.logger, "invalid request body")
		return
	}

	email := validation.NormalizeEmail(req.Email)
	if err := validateCredentials(email, req.Password); err != nil {
		badRequest(w, h.logger, err.Error())
		return
	}
	if err := validation.ValidateName(req.Name); err != nil {
		badRequest(w, h.logger, err.Error())
		return
	}

	hash, err := crypto.HashPassword(req.Password, h.cfg.BcryptCost)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		internalError(w, h.logger)
		return
	}

	now := h.now()
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         req.Name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.userStorage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.logger.WarnContext(ctx, "user already exists", slog.String("email", email))
			WriteError(w, h.logger, http.StatusConflict, api.CodeEmailExists, "email already registered")
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		internalError(w, h.logger)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully",
		slog.String("email", email),
		slog.String("user_id", user.ID))

	h.issueTokens(w, r, user, http.StatusCreated)
}

// Login обрабатывает POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		badRequest(w, h.logger, "invalid request body")
		return
	}

	email := validation.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		badRequest(w, h.logger, "email and password are required")
		return
	}

	user, err := h.userStorage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: user not found", slog.String("email", email))
			unauthorized(w, h.logger, api.CodeInvalidCredentials, "invalid email or password")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		internalError(w, h.logger)
		return
	}

	if err := crypto.VerifyPassword(req.Password, user.PasswordHash); err != nil {
		if errors.Is(err, crypto.ErrMismatch) {
			h.logger.WarnContext(ctx, "login failed: wrong password", slog.String("email", email))
			unauthorized(w, h.logger, api.CodeInvalidCredentials, "invalid email or password")
			return
		}
		h.logger.ErrorContext(ctx, "failed to verify password", slog.Any("error", err))
		internalError(w, h.logger)
		return
	}

	h.logger.InfoContext(ctx, "user logged in successfully",
		slog.String("email", email),
		slog.String("user_id", user.ID))

	h.issueTokens(w, r, user, http.StatusOK)
}

// Refresh обрабатывает POST /auth/refresh
// Refresh token передается в заголовке Authorization и ротируется при каждом вызове
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	refreshToken, ok := BearerToken(r.Header.Get("Authorization"))
	if !ok {
		unauthorized(w, h.logger, api.CodeUnauthorized, "refresh token is required")
		return
	}

	tokenHash, err := crypto.HashToken(refreshToken)
	if err != nil {
		unauthorized(w, h.logger, api.CodeUnauthorized, "invalid refresh token")
		return
	}

	stored, err := h.tokenStorage.GetRefreshToken(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			h.logger.WarnContext(ctx, "refresh token not found")
			unauthorized(w, h.logger, api.CodeUnauthorized, "invalid refresh token")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get refresh token", slog.Any("error", err))
		internalError(w, h.logger)
		return
	}

	// Старый токен удаляется в любом случае: истекший больше не нужен,
	// действующий заменяется новым
	if err := h.tokenStorage.DeleteRefreshToken(ctx, tokenHash); err != nil {
		h.logger.WarnContext(ctx, "failed to delete old refresh token", slog.Any("error", err))
	}

	if !h.now().Before(stored.ExpiresAt) {
		h.logger.WarnContext(ctx, "refresh token expired", slog.String("user_id", stored.UserID))
		unauthorized(w, h.logger, api.CodeUnauthorized, "refresh token expired")
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			unauthorized(w, h.logger, api.CodeUnauthorized, "invalid refresh token")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		internalError(w, h.logger)
		return
	}

	h.logger.InfoContext(ctx, "tokens refreshed successfully", slog.String("user_id", user.ID))

	h.issueTokens(w, r, user, http.StatusOK)
}

// Logout обрабатывает POST /auth/logout
// Удаляет все refresh токены пользователя
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		unauthorized(w, h.logger, api.CodeUnauthorized, "unauthorized")
		return
	}

	deleted, err := h.tokenStorage.DeleteUserTokens(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to delete user tokens", slog.Any("error", err))
		internalError(w, h.logger)
		return
	}

	h.logger.InfoContext(ctx, "user logged out successfully",
		slog.String("user_id", userID),
		slog.Int("tokens_deleted", deleted))

	WriteData(w, h.logger, http.StatusOK, api.MessageResponse{Message: "logged out"})
}

// SendCode обрабатывает POST /auth/send-code
// Генерирует 6-значный код сброса пароля и передает его CodeSender
func (h *AuthHandler) SendCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.SendCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, h.logger, "invalid request body")
		return
	}

	email := validation.NormalizeEmail(req.Email)
	if err := validation.ValidateEmail(email); err != nil {
		badRequest(w, h.logger, err.Error())
		return
	}

	if _, err := h.userStorage.GetUserByEmail(ctx, email); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			badRequest(w, h.logger, "email is not registered")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		internalError(w, h.logger)
		return
	}

	code, err := crypto.GenerateResetCode()
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate reset code", slog.Any("error", err))
		internalError(w, h.logger)
		return
	}

	codeHash, err := crypto.HashToken(code)
	if err != nil {
		internalError(w, h.logger)
		return
	}

	now := h.now()
	if err := h.resetStorage.SaveResetCode(ctx, &models.ResetCode{
		Email:     email,
		CodeHash:  codeHash,
		CreatedAt: now,
		ExpiresAt: now.Add(h.cfg.ResetCodeTTL),
	}); err != nil {
		h.logger.ErrorContext(ctx, "failed to save reset code", slog.Any("error", err))
		internalError(w, h.logger)
		return
	}

	if err := h.codeSender.SendResetCode(ctx, email, code); err != nil {
		h.logger.ErrorContext(ctx, "failed to send reset code", slog.String("email", email), slog.Any("error", err))
		badRequest(w, h.logger, "failed to send code, try again later")
		return
	}

	h.logger.InfoContext(ctx, "reset code sent", slog.String("email", email))

	WriteData(w, h.logger, http.StatusOK, api.MessageResponse{Message: "code sent"})
}

// ResetPassword обрабатывает POST /auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ResetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, h.logger, "invalid request body")
		return
	}

	email := validation.NormalizeEmail(req.Email)
	if err := validateCredentials(email, req.Password); err != nil {
		badRequest(w, h.logger, err.Error())
		return
	}
	if err := validation.ValidateResetCode(req.Code); err != nil {
		badRequest(w, h.logger, "invalid code")
		return
	}

	stored, err := h.resetStorage.GetResetCode(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrResetCodeNotFound) {
			badRequest(w, h.logger, "invalid code")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get reset code", slog.Any("error", err))
		internalError(w, h.logger)
		return
	}

	if stored.Attempts >= maxResetAttempts {
		h.burnResetCode(ctx, email)
		badRequest(w, h.logger, "too many attempts, request a new code")
		return
	}

	if err := crypto.VerifyToken(req.Code, stored.CodeHash); err != nil {
		h.logger.WarnContext(ctx, "reset failed: wrong code", slog.String("email", email))
		attempts, err := h.resetStorage.RecordResetAttempt(ctx, email)
		if err != nil && !errors.Is(err, storage.ErrResetCodeNotFound) {
			h.logger.ErrorContext(ctx, "failed to record reset attempt", slog.Any("error", err))
			internalError(w, h.logger)
			return
		}
		if attempts >= maxResetAttempts {
			h.burnResetCode(ctx, email)
			badRequest(w, h.logger, "too many attempts, request a new code")
			return
		}
		badRequest(w, h.logger, "invalid code")
		return
	}

	if stored.Expired(h.now()) {
		badRequest(w, h.logger, "code expired")
		return
	}

	user, err := h.userStorage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			badRequest(w, h.logger, "email is not registered")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		internalError(w, h.logger)
		return
	}

	hash, err := crypto.HashPassword(req.Password, h.cfg.BcryptCost)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		internalError(w, h.logger)
		return
	}

	if err := h.userStorage.UpdatePassword(ctx, user.ID, hash, h.now()); err != nil {
		h.logger.ErrorContext(ctx, "failed to update password", slog.Any("error", err))
		internalError(w, h.logger)
		return
	}

	if err := h.resetStorage.DeleteResetCode(ctx, email); err != nil {
		h.logger.WarnContext(ctx, "failed to delete used reset code", slog.Any("error", err))
	}

	// Сброс пароля завершает все сессии
	if _, err := h.tokenStorage.DeleteUserTokens(ctx, user.ID); err != nil {
		h.logger.WarnContext(ctx, "failed to revoke refresh tokens", slog.Any("error", err))
	}

	h.logger.InfoContext(ctx, "password reset", slog.String("user_id", user.ID))

	WriteData(w, h.logger, http.StatusOK, api.MessageResponse{Message: "password reset"})
}

// burnResetCode удаляет код после исчерпания попыток
func (h *AuthHandler) burnResetCode(ctx context.Context, email string) {
	h.logger.WarnContext(ctx, "reset code revoked: too many attempts", slog.String("email", email))
	if err := h.resetStorage.DeleteResetCode(ctx, email); err != nil && !errors.Is(err, storage.ErrResetCodeNotFound) {
		h.logger.ErrorContext(ctx, "failed to delete reset code", slog.Any("error", err))
	}
}

// issueTokens выпускает пару access/refresh токенов и отправляет их клиенту
func (h *AuthHandler) issueTokens(w http.ResponseWriter, r *http.Request, user *models.User, status int) {
	ctx := r.Context()
	now := h.now()

	accessToken, expiresIn, err := GenerateAccessToken(h.cfg.JWT, user.ID, user.Email, now)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		internalError(w, h.logger)
		return
	}

	refreshToken, expiresAt, err := GenerateRefreshToken(h.cfg.JWT, now)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate refresh token", slog.Any("error", err))
		internalError(w, h.logger)
		return
	}

	tokenHash, err := crypto.HashToken(refreshToken)
	if err != nil {
		internalError(w, h.logger)
		return
	}

	if err := h.tokenStorage.SaveRefreshToken(ctx, &models.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}); err != nil {
		h.logger.ErrorContext(ctx, "failed to save refresh token", slog.Any("error", err))
		internalError(w, h.logger)
		return
	}

	WriteData(w, h.logger, status, api.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		UserID:           user.ID,
		Email:            user.Email,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: int64(expiresAt.Sub(now) / time.Second),
	})
}

func validateCredentials(email, password string) error {
	if err := validation.ValidateEmail(email); err != nil {
		return err
	}
	return validation.ValidatePassword(password)
}

// LogCodeSender пишет код сброса в лог вместо отправки письма
type LogCodeSender struct {
	Logger *slog.Logger
}

// SendResetCode implements CodeSender
func (s LogCodeSender) SendResetCode(ctx context.Context, email, code string) error {
	s.Logger.InfoContext(ctx, "password reset code issued",
		slog.String("email", email),
		slog.String("code", code))
	return nil
}
