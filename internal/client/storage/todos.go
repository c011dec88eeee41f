package storage

import (
	"context"

	"github.com/iudanet/todosync/internal/client/reconciler"
)

//go:generate moq -out todos_mock.go . TodoCacheStorage

// TodoCacheStorage persists the last known local view so that a new
// process can resume incrementally and list todos offline
type TodoCacheStorage interface {
	// SaveTodos replaces the cached snapshot
	SaveTodos(ctx context.Context, todos []reconciler.TodoView) error

	// LoadTodos returns the cached snapshot, empty if none
	LoadTodos(ctx context.Context) ([]reconciler.TodoView, error)

	// ClearTodos drops the cached snapshot
	ClearTodos(ctx context.Context) error
}
