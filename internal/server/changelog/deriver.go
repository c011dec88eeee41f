// Package changelog derives incremental changesets for todo sync.
//
// The server keeps no change journal: every todo row carries CreatedAt,
// UpdatedAt and DeletedAt, and a changeset is reconstructed by classifying
// each row of the user against the client's watermark.
package changelog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/iudanet/todosync/internal/models"
)

// ErrRetrieval is returned when the user's todos cannot be read.
var ErrRetrieval = errors.New("failed to retrieve todos")

// TodoSource provides every todo of a user including soft-deleted ones.
type TodoSource interface {
	ListAllTodos(ctx context.Context, userID string) ([]*models.Todo, error)
}

// Deriver builds changesets from a TodoSource.
type Deriver struct {
	source TodoSource
	logger *slog.Logger
}

// NewDeriver creates a new Deriver
func NewDeriver(source TodoSource, logger *slog.Logger) *Deriver {
	return &Deriver{source: source, logger: logger}
}

// Classify returns the action a todo represents relative to since.
// The second result is false when the todo did not change since the watermark.
//
// A todo created after since is a create even if it was later updated;
// the snapshot already carries the latest fields. A deleted todo is only
// ever a delete.
func Classify(todo models.Todo, since time.Time) (models.ChangeAction, bool) {
	if todo.DeletedAt != nil {
		if !todo.DeletedAt.Before(since) {
			return models.ActionDelete, true
		}
		return "", false
	}

	if !todo.CreatedAt.Before(since) {
		return models.ActionCreate, true
	}

	if !todo.UpdatedAt.Before(since) {
		return models.ActionUpdate, true
	}

	return "", false
}

// ChangesSince returns every change of userID's todos at or after since,
// ascending by UpdatedAt. A zero since means the epoch.
//
// All rows of the user are scanned, so the cost grows with the total number
// of todos ever created, deleted ones included.
func (d *Deriver) ChangesSince(ctx context.Context, userID string, since time.Time) ([]models.TodoChange, error) {
	todos, err := d.source.ListAllTodos(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}

	changes := make([]models.TodoChange, 0, len(todos))
	for _, todo := range todos {
		action, ok := Classify(*todo, since)
		if !ok {
			continue
		}
		changes = append(changes, models.TodoChange{Action: action, Todo: *todo})
	}

	sort.SliceStable(changes, func(i, j int) bool {
		a, b := changes[i].Todo, changes[j].Todo
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.Before(b.UpdatedAt)
		}
		return a.ID < b.ID
	})

	d.logger.DebugContext(ctx, "Changes derived",
		slog.String("user_id", userID),
		slog.Time("since", since),
		slog.Int("scanned", len(todos)),
		slog.Int("changes", len(changes)),
	)

	return changes, nil
}
