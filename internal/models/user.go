package models

import "time"

// User представляет пользователя в системе
type User struct {
	CreatedAt    time.Time `json:"created_at"`    // время создания
	UpdatedAt    time.Time `json:"updated_at"`    // время последнего обновления
	ID           string    `json:"id"`            // UUID пользователя
	Email        string    `json:"email"`         // уникальный email (в нижнем регистре)
	Name         string    `json:"name"`          // отображаемое имя, может быть пустым
	PasswordHash string    `json:"password_hash"` // bcrypt хеш пароля
}

// RefreshToken представляет refresh token пользователя
type RefreshToken struct {
	ExpiresAt time.Time `json:"expires_at"` // время истечения
	CreatedAt time.Time `json:"created_at"` // время создания
	ID        string    `json:"id"`         // UUID токена
	UserID    string    `json:"user_id"`    // ID пользователя
	TokenHash string    `json:"token_hash"` // SHA256 хеш токена
}

// ResetCode is a pending password reset code. Only its hash is stored.
type ResetCode struct {
	ExpiresAt time.Time
	CreatedAt time.Time
	Email     string
	CodeHash  string
	// Attempts - число неверных попыток ввода кода
	Attempts int
}

// Expired reports whether the code is no longer usable at now.
func (c ResetCode) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
