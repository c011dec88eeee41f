package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	clientapi "github.com/iudanet/todosync/internal/client/api"
	"github.com/iudanet/todosync/internal/client/storage"
)

// Current возвращает сохраненную сессию или storage.ErrAuthNotFound
func (s *Service) Current(ctx context.Context) (*storage.AuthData, error) {
	data, err := s.store.GetAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get auth data: %w", err)
	}
	return data, nil
}

// IsAuthenticated сообщает, есть ли сессия, которую можно продлить
func (s *Service) IsAuthenticated(ctx context.Context) (bool, error) {
	return s.store.IsAuthenticated(ctx)
}

// AccessToken возвращает действующий access token.
// Истекающий токен обновляется через refresh; если сервер отказал,
// локальная сессия удаляется и возвращается ErrSessionExpired
func (s *Service) AccessToken(ctx context.Context) (string, error) {
	// refresh token одноразовый: параллельные обновления должны идти по очереди
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.store.GetAuth(ctx)
	if err != nil {
		return "", fmt.Errorf("not logged in: %w", err)
	}

	now := s.now()
	if !data.AccessExpired(now, s.skew) {
		return data.AccessToken, nil
	}

	if data.RefreshExpiresAt != 0 && !now.Before(time.Unix(data.RefreshExpiresAt, 0)) {
		s.dropSession(ctx)
		return "", fmt.Errorf("%w: %w", ErrSessionExpired, clientapi.ErrUnauthorized)
	}

	refreshed, err := s.refresh(ctx, data)
	if err != nil {
		return "", err
	}
	return refreshed.AccessToken, nil
}

func (s *Service) refresh(ctx context.Context, current *storage.AuthData) (*storage.AuthData, error) {
	resp, err := s.apiClient.Refresh(ctx, current.RefreshToken)
	if err != nil {
		if errors.Is(err, clientapi.ErrUnauthorized) {
			s.dropSession(ctx)
			return nil, fmt.Errorf("%w: %w", ErrSessionExpired, err)
		}
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	now := s.now()
	next := &storage.AuthData{
		UserID:           resp.UserID,
		Email:            resp.Email,
		AccessToken:      resp.AccessToken,
		RefreshToken:     resp.RefreshToken,
		ExpiresAt:        now.Add(time.Duration(resp.ExpiresIn) * time.Second).Unix(),
		RefreshExpiresAt: refreshExpiry(now, resp, current.RefreshExpiresAt),
	}
	if next.UserID == "" {
		next.UserID = current.UserID
	}
	if next.Email == "" {
		next.Email = current.Email
	}

	if err := s.store.SaveAuth(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save refreshed tokens: %w", err)
	}

	s.logger.Debug("Access token refreshed", slog.String("user_id", next.UserID))
	return next, nil
}

func (s *Service) dropSession(ctx context.Context) {
	s.logger.Warn("Session expired, removing local auth data")
	if err := s.store.DeleteAuth(ctx); err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		s.logger.Warn("Failed to delete expired session", slog.Any("error", err))
	}
}
