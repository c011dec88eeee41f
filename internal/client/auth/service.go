package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/todosync/internal/client/storage"
	"github.com/iudanet/todosync/internal/validation"
	"github.com/iudanet/todosync/pkg/api"
)

// defaultSkew access token обновляется заранее, за этот интервал до истечения
const defaultSkew = 30 * time.Second

// ErrSessionExpired сессию нельзя продлить, нужен повторный вход.
// Всегда оборачивается вместе с api.ErrUnauthorized
var ErrSessionExpired = errors.New("session expired, please log in again")

// Service предоставляет функции авторизации и хранит текущую сессию
type Service struct {
	apiClient AuthAPI
	store     storage.AuthStorage
	logger    *slog.Logger
	now       func() time.Time
	skew      time.Duration
	mu        sync.Mutex
}

// NewService создает новый сервис авторизации
func NewService(apiClient AuthAPI, store storage.AuthStorage, logger *slog.Logger) *Service {
	return &Service{
		apiClient: apiClient,
		store:     store,
		logger:    logger,
		now:       time.Now,
		skew:      defaultSkew,
	}
}

// Register регистрирует нового пользователя и сохраняет сессию
func (s *Service) Register(ctx context.Context, email, password, name string) (*storage.AuthData, error) {
	email = validation.NormalizeEmail(email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, fmt.Errorf("invalid name: %w", err)
	}

	resp, err := s.apiClient.Register(ctx, api.RegisterRequest{
		Email:    email,
		Password: password,
		Name:     name,
	})
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	return s.saveSession(ctx, resp, email)
}

// Login выполняет аутентификацию и сохраняет сессию
func (s *Service) Login(ctx context.Context, email, password string) (*storage.AuthData, error) {
	email = validation.NormalizeEmail(email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}
	if password == "" {
		return nil, fmt.Errorf("invalid password: password cannot be empty")
	}

	resp, err := s.apiClient.Login(ctx, api.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	return s.saveSession(ctx, resp, email)
}

// Logout выполняет выход из системы.
// Сервер уведомляется по возможности, локальная сессия удаляется всегда
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	authData, err := s.store.GetAuth(ctx)
	switch {
	case errors.Is(err, storage.ErrAuthNotFound):
		s.logger.Debug("No auth data found during logout")
		return nil
	case err != nil:
		s.logger.Warn("Failed to read auth data during logout", slog.Any("error", err))
	default:
		if logoutErr := s.apiClient.Logout(ctx, authData.AccessToken); logoutErr != nil {
			// сервер недоступен или токен уже истек
			s.logger.Warn("Failed to logout on server", slog.Any("error", logoutErr))
		}
	}

	if err := s.store.DeleteAuth(ctx); err != nil {
		return fmt.Errorf("failed to delete local auth data: %w", err)
	}
	return nil
}

// SendCode запрашивает код сброса пароля
func (s *Service) SendCode(ctx context.Context, email string) error {
	email = validation.NormalizeEmail(email)
	if err := validation.ValidateEmail(email); err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}

	if err := s.apiClient.SendCode(ctx, api.SendCodeRequest{Email: email}); err != nil {
		return fmt.Errorf("failed to send reset code: %w", err)
	}
	return nil
}

// ResetPassword задает новый пароль по коду.
// Сервер отзывает все сессии пользователя, поэтому локальная тоже удаляется
func (s *Service) ResetPassword(ctx context.Context, email, code, password string) error {
	email = validation.NormalizeEmail(email)
	if err := validation.ValidateEmail(email); err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}
	if err := validation.ValidateResetCode(code); err != nil {
		return fmt.Errorf("invalid code: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	err := s.apiClient.ResetPassword(ctx, api.ResetPasswordRequest{
		Email:    email,
		Code:     code,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("password reset failed: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.store.GetAuth(ctx)
	if err == nil && current.Email == email {
		if err := s.store.DeleteAuth(ctx); err != nil {
			return fmt.Errorf("failed to delete local auth data: %w", err)
		}
	}
	return nil
}

// refreshExpiry переводит refresh_expires_in в unix время;
// если сервер его не прислал, остается fallback
func refreshExpiry(now time.Time, resp *api.TokenResponse, fallback int64) int64 {
	if resp.RefreshExpiresIn <= 0 {
		return fallback
	}
	return now.Add(time.Duration(resp.RefreshExpiresIn) * time.Second).Unix()
}

func (s *Service) saveSession(ctx context.Context, resp *api.TokenResponse, email string) (*storage.AuthData, error) {
	now := s.now()
	data := &storage.AuthData{
		UserID:           resp.UserID,
		Email:            resp.Email,
		AccessToken:      resp.AccessToken,
		RefreshToken:     resp.RefreshToken,
		ExpiresAt:        now.Add(time.Duration(resp.ExpiresIn) * time.Second).Unix(),
		RefreshExpiresAt: refreshExpiry(now, resp, 0),
	}
	if data.Email == "" {
		data.Email = email
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SaveAuth(ctx, data); err != nil {
		return nil, fmt.Errorf("failed to save auth data: %w", err)
	}

	s.logger.Info("Session saved", slog.String("email", data.Email), slog.String("user_id", data.UserID))
	return data, nil
}
