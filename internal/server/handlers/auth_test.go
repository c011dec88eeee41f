package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/todosync/internal/server/storage"
	"github.com/iudanet/todosync/pkg/api"
)

func TestAuthHandler_Register_Success(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/auth/register",
		api.RegisterRequest{Email: "Alice@Example.com", Password: "password123", Name: "Alice"}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	resp := decodeData[api.TokenResponse](t, w)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.NotEmpty(t, resp.UserID)
	assert.Equal(t, "alice@example.com", resp.Email, "email is normalized")
	assert.Equal(t, int64(testJWT.AccessTokenTTL.Seconds()), resp.ExpiresIn)
	assert.Equal(t, int64(testJWT.RefreshTokenTTL.Seconds()), resp.RefreshExpiresIn)

	claims, err := ValidateAccessToken(testJWT, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claims.UserID)
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	env := setupTestEnv(t)

	tests := []struct {
		body any
		name string
	}{
		{name: "invalid email", body: api.RegisterRequest{Email: "nope", Password: "password123"}},
		{name: "short password", body: api.RegisterRequest{Email: "a@example.com", Password: "short"}},
		{name: "empty fields", body: api.RegisterRequest{}},
		{name: "unknown field", body: map[string]string{"email": "a@example.com", "password": "password123", "role": "admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/auth/register", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, api.CodeBadRequest, decodeError(t, w).Code)
		})
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "dup@example.com")

	w := env.do(t, http.MethodPost, "/auth/register",
		api.RegisterRequest{Email: "DUP@example.com", Password: "password123"}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, api.CodeEmailExists, decodeError(t, w).Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupTestEnv(t)
	registered := env.registerUser(t, "bob@example.com")

	tests := []struct {
		name       string
		req        api.LoginRequest
		wantStatus int
		wantCode   int
	}{
		{
			name:       "success",
			req:        api.LoginRequest{Email: "bob@example.com", Password: "password123"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong password",
			req:        api.LoginRequest{Email: "bob@example.com", Password: "password124"},
			wantStatus: http.StatusUnauthorized,
			wantCode:   api.CodeInvalidCredentials,
		},
		{
			name:       "unknown user",
			req:        api.LoginRequest{Email: "eve@example.com", Password: "password123"},
			wantStatus: http.StatusUnauthorized,
			wantCode:   api.CodeInvalidCredentials,
		},
		{
			name:       "missing password",
			req:        api.LoginRequest{Email: "bob@example.com"},
			wantStatus: http.StatusBadRequest,
			wantCode:   api.CodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/auth/login", tt.req, "")
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, decodeError(t, w).Code)
				return
			}
			resp := decodeData[api.TokenResponse](t, w)
			assert.Equal(t, registered.UserID, resp.UserID)
		})
	}
}

func TestAuthHandler_Refresh_RotatesToken(t *testing.T) {
	env := setupTestEnv(t)
	tokens := env.registerUser(t, "carol@example.com")

	w := env.do(t, http.MethodPost, "/auth/refresh", nil, tokens.RefreshToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	rotated := decodeData[api.TokenResponse](t, w)
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	// Старый refresh token больше не действует
	w = env.do(t, http.MethodPost, "/auth/refresh", nil, tokens.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/auth/refresh", nil, rotated.RefreshToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_Refresh_Expired(t *testing.T) {
	env := setupTestEnv(t)
	tokens := env.registerUser(t, "dave@example.com")

	env.clock.Advance(testJWT.RefreshTokenTTL + time.Second)

	w := env.do(t, http.MethodPost, "/auth/refresh", nil, tokens.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, decodeError(t, w).Message, "expired")
}

func TestAuthHandler_Refresh_MissingToken(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/auth/refresh", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, api.CodeUnauthorized, decodeError(t, w).Code)
}

func TestAuthHandler_Logout_RevokesRefreshTokens(t *testing.T) {
	env := setupTestEnv(t)
	tokens := env.registerUser(t, "erin@example.com")

	w := env.do(t, http.MethodPost, "/auth/logout", nil, tokens.AccessToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodPost, "/auth/refresh", nil, tokens.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_PasswordReset(t *testing.T) {
	env := setupTestEnv(t)
	tokens := env.registerUser(t, "frank@example.com")

	w := env.do(t, http.MethodPost, "/auth/send-code", api.SendCodeRequest{Email: "frank@example.com"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	code := env.sender.codes["frank@example.com"]
	require.Len(t, code, 6)

	// Неверный код
	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	w = env.do(t, http.MethodPost, "/auth/reset-password",
		api.ResetPasswordRequest{Email: "frank@example.com", Code: wrong, Password: "newpassword1"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/auth/reset-password",
		api.ResetPasswordRequest{Email: "frank@example.com", Code: code, Password: "newpassword1"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Старый пароль больше не подходит, новый подходит
	w = env.do(t, http.MethodPost, "/auth/login", api.LoginRequest{Email: "frank@example.com", Password: "password123"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = env.do(t, http.MethodPost, "/auth/login", api.LoginRequest{Email: "frank@example.com", Password: "newpassword1"}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Сессии до сброса отозваны, код одноразовый
	w = env.do(t, http.MethodPost, "/auth/refresh", nil, tokens.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = env.do(t, http.MethodPost, "/auth/reset-password",
		api.ResetPasswordRequest{Email: "frank@example.com", Code: code, Password: "another-pass"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_PasswordReset_ExpiredCode(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "gina@example.com")

	w := env.do(t, http.MethodPost, "/auth/send-code", api.SendCodeRequest{Email: "gina@example.com"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	code := env.sender.codes["gina@example.com"]

	env.clock.Advance(10*time.Minute + time.Second)

	w = env.do(t, http.MethodPost, "/auth/reset-password",
		api.ResetPasswordRequest{Email: "gina@example.com", Code: code, Password: "newpassword1"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w).Message, "expired")
}

func TestAuthHandler_PasswordReset_TooManyAttempts(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "ivan@example.com")

	w := env.do(t, http.MethodPost, "/auth/send-code", api.SendCodeRequest{Email: "ivan@example.com"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	code := env.sender.codes["ivan@example.com"]

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}

	reset := func(c string) *httptest.ResponseRecorder {
		return env.do(t, http.MethodPost, "/auth/reset-password",
			api.ResetPasswordRequest{Email: "ivan@example.com", Code: c, Password: "newpassword1"}, "")
	}

	for i := 1; i < maxResetAttempts; i++ {
		w = reset(wrong)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid code", decodeError(t, w).Message, "attempt %d", i)
	}

	w = reset(wrong)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w).Message, "too many attempts")

	// Код удален, верный код больше не принимается
	_, err := env.store.GetResetCode(context.Background(), "ivan@example.com")
	require.ErrorIs(t, err, storage.ErrResetCodeNotFound)
	w = reset(code)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Новый код снова работает
	w = env.do(t, http.MethodPost, "/auth/send-code", api.SendCodeRequest{Email: "ivan@example.com"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	w = reset(env.sender.codes["ivan@example.com"])
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestAuthHandler_SendCode_Errors(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/auth/send-code", api.SendCodeRequest{Email: "ghost@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	env.registerUser(t, "hank@example.com")
	env.sender.err = errors.New("smtp down")
	w = env.do(t, http.MethodPost, "/auth/send-code", api.SendCodeRequest{Email: "hank@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{header: "Bearer abc", want: "abc", ok: true},
		{header: "bearer abc", want: "abc", ok: true},
		{header: "Bearer ", ok: false},
		{header: "Basic abc", ok: false},
		{header: "", ok: false},
		{header: "abc", ok: false},
	}

	for _, tt := range tests {
		got, ok := BearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.want, got, tt.header)
	}
}

func TestValidateAccessToken_Rejects(t *testing.T) {
	now := time.Now()
	token, _, err := GenerateAccessToken(testJWT, "u1", "u1@example.com", now)
	require.NoError(t, err)

	otherSecret := testJWT
	otherSecret.Secret = []byte("another-secret-key-of-enough-length")
	_, err = ValidateAccessToken(otherSecret, token)
	assert.Error(t, err, "wrong secret")

	otherIssuer := testJWT
	otherIssuer.Issuer = "someone-else"
	_, err = ValidateAccessToken(otherIssuer, token)
	assert.Error(t, err, "wrong issuer")

	expired, _, err := GenerateAccessToken(testJWT, "u1", "u1@example.com", now.Add(-time.Hour))
	require.NoError(t, err)
	_, err = ValidateAccessToken(testJWT, expired)
	assert.Error(t, err, "expired")
}
