package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/iudanet/todosync/internal/models"
	"github.com/iudanet/todosync/internal/server/storage"
)

var todoColumns = []string{
	"id", "user_id", "title", "completed", "priority",
	"created_at", "updated_at", "deleted_at",
}

type rowScanner interface {
	Scan(dest ...any) error
}

// CreateTodo inserts a new todo
func (s *Storage) CreateTodo(ctx context.Context, todo *models.Todo) error {
	query, args, err := qb.Insert("todos").
		Columns(todoColumns...).
		Values(
			todo.ID,
			todo.UserID,
			todo.Title,
			boolToInt(todo.Completed),
			todo.Priority,
			toMillis(todo.CreatedAt),
			toMillis(todo.UpdatedAt),
			nullMillis(todo.DeletedAt),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert todo: %w", err)
	}

	return nil
}

// GetTodo retrieves a live todo
func (s *Storage) GetTodo(ctx context.Context, userID, id string) (*models.Todo, error) {
	query, args, err := qb.Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"id": id, "user_id": userID, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	todo, err := scanTodo(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	return todo, nil
}

// ListTodos retrieves live todos, newest CreatedAt first
func (s *Storage) ListTodos(ctx context.Context, userID string) ([]*models.Todo, error) {
	return s.queryTodos(ctx, qb.Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"user_id": userID, "deleted_at": nil}).
		OrderBy("created_at DESC", "id DESC"))
}

// ListAllTodos retrieves every todo of the user including soft-deleted ones
func (s *Storage) ListAllTodos(ctx context.Context, userID string) ([]*models.Todo, error) {
	return s.queryTodos(ctx, qb.Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("updated_at ASC", "id ASC"))
}

func (s *Storage) queryTodos(ctx context.Context, b sq.SelectBuilder) ([]*models.Todo, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	todos := make([]*models.Todo, 0)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return todos, nil
}

// UpdateTodo applies patch to a live todo and sets UpdatedAt to now.
// Проверка владельца, проверка удаления и запись выполняются одним UPDATE.
func (s *Storage) UpdateTodo(
	ctx context.Context,
	userID, id string,
	patch models.TodoPatch,
	now time.Time,
) (*models.Todo, error) {
	b := qb.Update("todos").Set("updated_at", toMillis(now))
	if patch.Title != nil {
		b = b.Set("title", *patch.Title)
	}
	if patch.Completed != nil {
		b = b.Set("completed", boolToInt(*patch.Completed))
	}
	if patch.Priority != nil {
		b = b.Set("priority", *patch.Priority)
	}

	query, args, err := b.
		Where(sq.Eq{"id": id, "user_id": userID, "deleted_at": nil}).
		Suffix("RETURNING " + strings.Join(todoColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	todo, err := scanTodo(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	return todo, nil
}

// DeleteTodo soft-deletes a live todo
func (s *Storage) DeleteTodo(ctx context.Context, userID, id string, now time.Time) error {
	query, args, err := qb.Update("todos").
		Set("deleted_at", toMillis(now)).
		Set("updated_at", toMillis(now)).
		Where(sq.Eq{"id": id, "user_id": userID, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrTodoNotFound
	}

	return nil
}

// DeleteCompletedTodos soft-deletes every live completed todo of the user
func (s *Storage) DeleteCompletedTodos(ctx context.Context, userID string, now time.Time) (int, error) {
	query, args, err := qb.Update("todos").
		Set("deleted_at", toMillis(now)).
		Set("updated_at", toMillis(now)).
		Where(sq.Eq{"user_id": userID, "completed": 1, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete completed todos: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rows), nil
}

func scanTodo(row rowScanner) (*models.Todo, error) {
	todo := &models.Todo{}
	var (
		completed            int
		createdAt, updatedAt int64
		deletedAt            sql.NullInt64
	)

	if err := row.Scan(
		&todo.ID,
		&todo.UserID,
		&todo.Title,
		&completed,
		&todo.Priority,
		&createdAt,
		&updatedAt,
		&deletedAt,
	); err != nil {
		return nil, err
	}

	todo.Completed = completed != 0
	todo.CreatedAt = fromMillis(createdAt)
	todo.UpdatedAt = fromMillis(updatedAt)
	if deletedAt.Valid {
		t := fromMillis(deletedAt.Int64)
		todo.DeletedAt = &t
	}

	return todo, nil
}
