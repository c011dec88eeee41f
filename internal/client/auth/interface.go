package auth

import (
	"context"

	"github.com/iudanet/todosync/pkg/api"
)

//go:generate moq -out api_mock.go . AuthAPI

// AuthAPI defines the server calls the auth service depends on
type AuthAPI interface {
	// Register создает аккаунт и сразу выдает пару токенов
	Register(ctx context.Context, req api.RegisterRequest) (*api.TokenResponse, error)

	// Login обменивает email и пароль на пару токенов
	Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error)

	// Refresh обменивает refresh token на новую пару; старый токен отзывается
	Refresh(ctx context.Context, refreshToken string) (*api.TokenResponse, error)

	// Logout отзывает refresh токены пользователя на сервере
	Logout(ctx context.Context, accessToken string) error

	// SendCode запрашивает код сброса пароля
	SendCode(ctx context.Context, req api.SendCodeRequest) error

	// ResetPassword задает новый пароль по коду
	ResetPassword(ctx context.Context, req api.ResetPasswordRequest) error
}
