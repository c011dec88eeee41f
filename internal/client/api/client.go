package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iudanet/todosync/internal/models"
	"github.com/iudanet/todosync/pkg/api"
)

const defaultTimeout = 30 * time.Second

// sinceLayout формат параметра since: ISO-8601 с миллисекундами
const sinceLayout = "2006-01-02T15:04:05.000Z07:00"

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option настраивает Client
type Option func(*Client)

// WithHTTPClient подменяет http.Client (для тестов и прокси)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout задает таймаут одного запроса
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient создает новый API клиент
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL возвращает адрес сервера
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/auth/register", "", req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/auth/login", "", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Refresh обменивает refresh token на новую пару токенов
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/auth/refresh", refreshToken, nil, &resp); err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	return &resp, nil
}

// Logout отзывает refresh токены пользователя на сервере
func (c *Client) Logout(ctx context.Context, accessToken string) error {
	if err := c.doRequest(ctx, http.MethodPost, "/auth/logout", accessToken, nil, nil); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// SendCode запрашивает код сброса пароля
func (c *Client) SendCode(ctx context.Context, req api.SendCodeRequest) error {
	if err := c.doRequest(ctx, http.MethodPost, "/auth/send-code", "", req, nil); err != nil {
		return fmt.Errorf("send code request failed: %w", err)
	}
	return nil
}

// ResetPassword устанавливает новый пароль по коду
func (c *Client) ResetPassword(ctx context.Context, req api.ResetPasswordRequest) error {
	if err := c.doRequest(ctx, http.MethodPost, "/auth/reset-password", "", req, nil); err != nil {
		return fmt.Errorf("reset password request failed: %w", err)
	}
	return nil
}

// Health проверяет доступность сервера
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/health", "", nil, &resp); err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	return &resp, nil
}

// ListTodos загружает все живые задачи пользователя (полная выборка)
func (c *Client) ListTodos(ctx context.Context, accessToken string) ([]models.Todo, error) {
	var resp []api.Todo
	if err := c.doRequest(ctx, http.MethodGet, "/todos", accessToken, nil, &resp); err != nil {
		return nil, fmt.Errorf("list todos request failed: %w", err)
	}
	return fromAPITodos(resp), nil
}

// ChangesSince загружает изменения начиная с since
// Нулевой since не передается, сервер трактует это как epoch
func (c *Client) ChangesSince(ctx context.Context, accessToken string, since time.Time) ([]models.TodoChange, error) {
	path := "/todos/sync"
	if !since.IsZero() {
		path += "?" + url.Values{"since": {FormatSince(since)}}.Encode()
	}

	var resp []api.TodoChange
	if err := c.doRequest(ctx, http.MethodGet, path, accessToken, nil, &resp); err != nil {
		return nil, fmt.Errorf("sync request failed: %w", err)
	}

	changes, err := fromAPIChanges(resp)
	if err != nil {
		return nil, fmt.Errorf("sync response: %w", err)
	}
	return changes, nil
}

// CreateTodo создает задачу; id и временные метки назначает сервер
func (c *Client) CreateTodo(ctx context.Context, accessToken, title string, priority int) (*models.Todo, error) {
	req := api.CreateTodoRequest{Title: title}
	if priority != 0 {
		req.Priority = &priority
	}

	var resp api.Todo
	if err := c.doRequest(ctx, http.MethodPost, "/todos", accessToken, req, &resp); err != nil {
		return nil, fmt.Errorf("create todo request failed: %w", err)
	}
	todo := fromAPITodo(resp)
	return &todo, nil
}

// UpdateTodo частично обновляет задачу
func (c *Client) UpdateTodo(ctx context.Context, accessToken, id string, patch models.TodoPatch) (*models.Todo, error) {
	req := api.UpdateTodoRequest{
		Title:     patch.Title,
		Completed: patch.Completed,
		Priority:  patch.Priority,
	}

	var resp api.Todo
	if err := c.doRequest(ctx, http.MethodPut, "/todos/"+url.PathEscape(id), accessToken, req, &resp); err != nil {
		return nil, fmt.Errorf("update todo request failed: %w", err)
	}
	todo := fromAPITodo(resp)
	return &todo, nil
}

// DeleteTodo мягко удаляет задачу
func (c *Client) DeleteTodo(ctx context.Context, accessToken, id string) error {
	var resp api.DeleteResponse
	if err := c.doRequest(ctx, http.MethodDelete, "/todos/"+url.PathEscape(id), accessToken, nil, &resp); err != nil {
		return fmt.Errorf("delete todo request failed: %w", err)
	}
	return nil
}

// ClearCompleted мягко удаляет все выполненные задачи
func (c *Client) ClearCompleted(ctx context.Context, accessToken string) (int, error) {
	var resp api.ClearCompletedResponse
	if err := c.doRequest(ctx, http.MethodPost, "/todos/clear-completed", accessToken, nil, &resp); err != nil {
		return 0, fmt.Errorf("clear completed request failed: %w", err)
	}
	return resp.Deleted, nil
}

// FormatSince форматирует водяной знак для параметра since
func FormatSince(t time.Time) string {
	return t.UTC().Format(sinceLayout)
}

// doRequest выполняет HTTP запрос и разбирает конверт ответа
func (c *Client) doRequest(ctx context.Context, method, path, token string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransient, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %w", ErrTransient, err)
	}

	var env api.RawEnvelope
	decodeErr := json.Unmarshal(respBody, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode, Code: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		if decodeErr == nil && env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}

	if decodeErr != nil {
		return fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	if result != nil {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return nil
}
