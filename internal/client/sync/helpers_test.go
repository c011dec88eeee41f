package sync

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iudanet/todosync/internal/client/reconciler"
	"github.com/iudanet/todosync/internal/client/storage"
	"github.com/iudanet/todosync/internal/models"
	"github.com/iudanet/todosync/internal/server/changelog"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testClock общие часы клиента и сервера
type testClock struct {
	now time.Time
	mu  sync.Mutex
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// fakeServer хранит задачи одного пользователя и строит изменения
// тем же Deriver, что и настоящий сервер
type fakeServer struct {
	err     error
	todos   map[string]*models.Todo
	clock   *testClock
	deriver *changelog.Deriver
	seq     int
	mu      sync.Mutex
}

func newFakeServer(clock *testClock) *fakeServer {
	s := &fakeServer{todos: make(map[string]*models.Todo), clock: clock}
	s.deriver = changelog.NewDeriver(s, testLogger())
	return s
}

func (s *fakeServer) ListAllTodos(ctx context.Context, userID string) ([]*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Todo, 0, len(s.todos))
	for _, t := range s.todos {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (s *fakeServer) failWith(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *fakeServer) currentErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *fakeServer) ListTodos(ctx context.Context, accessToken string) ([]models.Todo, error) {
	if err := s.currentErr(); err != nil {
		return nil, err
	}
	all, _ := s.ListAllTodos(ctx, "u1")
	out := make([]models.Todo, 0, len(all))
	for _, t := range all {
		if !t.IsDeleted() {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeServer) ChangesSince(ctx context.Context, accessToken string, since time.Time) ([]models.TodoChange, error) {
	if err := s.currentErr(); err != nil {
		return nil, err
	}
	return s.deriver.ChangesSince(ctx, "u1", since)
}

func (s *fakeServer) create(title string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	now := s.clock.Now()
	id := fmt.Sprintf("todo-%02d", s.seq)
	s.todos[id] = &models.Todo{
		ID: id, UserID: "u1", Title: title, Priority: models.PriorityDefault,
		CreatedAt: now, UpdatedAt: now,
	}
	return id
}

func (s *fakeServer) rename(id, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos[id].Title = title
	s.todos[id].UpdatedAt = s.clock.Now()
}

func (s *fakeServer) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	s.todos[id].DeletedAt = &now
	s.todos[id].UpdatedAt = now
}

// fullView представление, которое дала бы полная выборка прямо сейчас
func (s *fakeServer) fullView(t *testing.T) map[string]reconciler.TodoView {
	t.Helper()
	todos, err := s.ListTodos(context.Background(), "")
	require.NoError(t, err)
	view := make(map[string]reconciler.TodoView, len(todos))
	for _, td := range todos {
		view[td.ID] = reconciler.ViewOf(td)
	}
	return view
}

// memStores in-memory реализации хранилищ на moq моках
type memStores struct {
	meta      *storage.MetadataStorageMock
	cache     *storage.TodoCacheStorageMock
	watermark time.Time
	snapshot  []reconciler.TodoView
	mu        sync.Mutex
	hasWM     bool
}

func newMemStores() *memStores {
	m := &memStores{}
	m.meta = &storage.MetadataStorageMock{
		SaveWatermarkFunc: func(ctx context.Context, watermark time.Time) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.watermark, m.hasWM = watermark, true
			return nil
		},
		GetWatermarkFunc: func(ctx context.Context) (time.Time, bool, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			return m.watermark, m.hasWM, nil
		},
		ClearWatermarkFunc: func(ctx context.Context) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.watermark, m.hasWM = time.Time{}, false
			return nil
		},
	}
	m.cache = &storage.TodoCacheStorageMock{
		SaveTodosFunc: func(ctx context.Context, todos []reconciler.TodoView) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.snapshot = append([]reconciler.TodoView(nil), todos...)
			return nil
		},
		LoadTodosFunc: func(ctx context.Context) ([]reconciler.TodoView, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			return append([]reconciler.TodoView(nil), m.snapshot...), nil
		},
		ClearTodosFunc: func(ctx context.Context) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.snapshot = nil
			return nil
		},
	}
	return m
}

func staticToken() *TokenSourceMock {
	return &TokenSourceMock{
		AccessTokenFunc: func(ctx context.Context) (string, error) {
			return "access-token", nil
		},
	}
}
