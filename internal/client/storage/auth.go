package storage

import (
	"context"
	"time"
)

//go:generate moq -out auth_mock.go . AuthStorage

// AuthStorage defines interface for storing authentication data on client
type AuthStorage interface {
	// SaveAuth stores authentication data, replacing the previous session
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves stored authentication data
	// Returns ErrAuthNotFound if no auth data exists
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes stored authentication data (logout)
	DeleteAuth(ctx context.Context) error

	// IsAuthenticated reports whether a session exists that can still be
	// refreshed (refresh token not expired)
	IsAuthenticated(ctx context.Context) (bool, error)
}

// AuthData represents the stored session
type AuthData struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	// ExpiresAt время истечения access token (unix seconds)
	ExpiresAt int64 `json:"expires_at"`
	// RefreshExpiresAt время истечения refresh token (unix seconds), 0 если неизвестно
	RefreshExpiresAt int64 `json:"refresh_expires_at"`
}

// AccessExpired reports whether the access token expires within skew of now
func (a *AuthData) AccessExpired(now time.Time, skew time.Duration) bool {
	return !now.Add(skew).Before(time.Unix(a.ExpiresAt, 0))
}
