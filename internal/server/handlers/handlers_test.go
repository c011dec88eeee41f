package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/todosync/internal/server/changelog"
	"github.com/iudanet/todosync/internal/server/storage/sqlite"
	"github.com/iudanet/todosync/pkg/api"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError, // Only show errors in tests
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

var testJWT = JWTConfig{
	Issuer:          "todosync-test",
	Secret:          []byte("test-secret-key-at-least-32-bytes!"),
	AccessTokenTTL:  15 * time.Minute,
	RefreshTokenTTL: 24 * time.Hour,
}

// recordingSender запоминает последний отправленный код
type recordingSender struct {
	err   error
	codes map[string]string
}

func (s *recordingSender) SendResetCode(ctx context.Context, email, code string) error {
	if s.err != nil {
		return s.err
	}
	s.codes[email] = code
	return nil
}

// testEnv связывает handlers с in-memory SQLite так же, как это делает сервер
type testEnv struct {
	store  *sqlite.Storage
	auth   *AuthHandler
	todos  *TodoHandler
	sync   *SyncHandler
	sender *recordingSender
	router chi.Router
	clock  *fakeClock
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	logger := setupTestLogger()
	// JWT проверяется по реальному времени, поэтому часы стартуют с time.Now
	clock := &fakeClock{now: time.Now().UTC().Truncate(time.Millisecond)}
	sender := &recordingSender{codes: make(map[string]string)}

	env := &testEnv{
		store:  store,
		sender: sender,
		clock:  clock,
		auth: NewAuthHandler(logger, store, store, store, sender, AuthConfig{
			JWT:          testJWT,
			BcryptCost:   bcrypt.MinCost,
			ResetCodeTTL: 10 * time.Minute,
		}),
		todos: NewTodoHandler(logger, store),
		sync:  NewSyncHandler(logger, changelog.NewDeriver(store, logger)),
	}
	env.auth.now = clock.Now
	env.todos.now = clock.Now

	r := chi.NewRouter()
	r.Post("/auth/register", env.auth.Register)
	r.Post("/auth/login", env.auth.Login)
	r.Post("/auth/refresh", env.auth.Refresh)
	r.Post("/auth/send-code", env.auth.SendCode)
	r.Post("/auth/reset-password", env.auth.ResetPassword)
	r.Group(func(r chi.Router) {
		r.Use(testAuth)
		r.Post("/auth/logout", env.auth.Logout)
		r.Get("/todos", env.todos.List)
		r.Post("/todos", env.todos.Create)
		r.Get("/todos/sync", env.sync.Changes)
		r.Post("/todos/clear-completed", env.todos.ClearCompleted)
		r.Put("/todos/{id}", env.todos.Update)
		r.Delete("/todos/{id}", env.todos.Delete)
	})
	env.router = r

	return env
}

// testAuth проверяет access token тем же кодом, что и middleware сервера
func testAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := BearerToken(r.Header.Get("Authorization"))
		if !ok {
			WriteError(w, setupTestLogger(), http.StatusUnauthorized, api.CodeUnauthorized, "unauthorized")
			return
		}
		claims, err := ValidateAccessToken(testJWT, token)
		if err != nil {
			WriteError(w, setupTestLogger(), http.StatusUnauthorized, api.CodeUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), claims.UserID, claims.Email)))
	})
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decodeData разбирает конверт и возвращает data; error должен отсутствовать
func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var env api.RawEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	require.Nil(t, env.Error, w.Body.String())

	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

// decodeError разбирает конверт ошибки
func decodeError(t *testing.T, w *httptest.ResponseRecorder) api.ErrorBody {
	t.Helper()

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw), w.Body.String())
	require.Equal(t, "null", string(raw["data"]), "data must be null on error")

	var env api.RawEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	return *env.Error
}

// registerUser регистрирует пользователя и возвращает его токены
func (e *testEnv) registerUser(t *testing.T, email string) api.TokenResponse {
	t.Helper()

	w := e.do(t, http.MethodPost, "/auth/register", api.RegisterRequest{Email: email, Password: "password123"}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeData[api.TokenResponse](t, w)
}
