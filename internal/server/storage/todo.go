package storage

import (
	"context"
	"time"

	"github.com/iudanet/todosync/internal/models"
)

// TodoStorage defines interface for todo persistence.
// Every method is scoped to the owning user.
type TodoStorage interface {
	// CreateTodo inserts a new todo
	CreateTodo(ctx context.Context, todo *models.Todo) error

	// GetTodo retrieves a live todo
	// Returns ErrTodoNotFound if todo doesn't exist, isn't owned by userID or is deleted
	GetTodo(ctx context.Context, userID, id string) (*models.Todo, error)

	// ListTodos retrieves live todos, newest CreatedAt first
	// Returns empty slice if no todos found
	ListTodos(ctx context.Context, userID string) ([]*models.Todo, error)

	// ListAllTodos retrieves every todo of the user including soft-deleted ones,
	// ascending by UpdatedAt. Used for change derivation.
	ListAllTodos(ctx context.Context, userID string) ([]*models.Todo, error)

	// UpdateTodo applies patch to a live todo and sets UpdatedAt to now atomically
	// Returns ErrTodoNotFound if todo doesn't exist, isn't owned by userID or is deleted
	UpdateTodo(ctx context.Context, userID, id string, patch models.TodoPatch, now time.Time) (*models.Todo, error)

	// DeleteTodo soft-deletes a live todo: DeletedAt = UpdatedAt = now
	// Returns ErrTodoNotFound if todo doesn't exist, isn't owned by userID or is already deleted
	DeleteTodo(ctx context.Context, userID, id string, now time.Time) error

	// DeleteCompletedTodos soft-deletes every live completed todo of the user
	// Returns number of deleted todos
	DeleteCompletedTodos(ctx context.Context, userID string, now time.Time) (int, error)
}
