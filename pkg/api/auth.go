package api

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Email    string `json:"email"`          // email пользователя (уникальный)
	Password string `json:"password"`       // пароль в открытом виде (только по TLS)
	Name     string `json:"name,omitempty"` // отображаемое имя, опционально
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse представляет ответ с токенами доступа
type TokenResponse struct {
	AccessToken  string `json:"access_token"`  // JWT access token
	RefreshToken string `json:"refresh_token"` // refresh token
	UserID       string `json:"userId"`        // UUID пользователя
	Email        string `json:"email"`         // email пользователя
	ExpiresIn    int64  `json:"expires_in"`    // время жизни access token в секундах
	// RefreshExpiresIn время жизни refresh token в секундах
	RefreshExpiresIn int64 `json:"refresh_expires_in"`
}

// SendCodeRequest запрашивает код для сброса пароля
type SendCodeRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest сбрасывает пароль по коду подтверждения
type ResetPasswordRequest struct {
	Email    string `json:"email"`
	Code     string `json:"code"`
	Password string `json:"password"`
}

// MessageResponse is a plain acknowledgement payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
