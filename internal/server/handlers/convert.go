package handlers

import (
	"github.com/iudanet/todosync/internal/models"
	"github.com/iudanet/todosync/pkg/api"
)

func toAPITodo(t models.Todo) api.Todo {
	return api.Todo{
		ID:        t.ID,
		UserID:    t.UserID,
		Title:     t.Title,
		Completed: t.Completed,
		Priority:  t.Priority,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		DeletedAt: t.DeletedAt,
	}
}

func toAPITodos(todos []*models.Todo) []api.Todo {
	out := make([]api.Todo, 0, len(todos))
	for _, t := range todos {
		out = append(out, toAPITodo(*t))
	}
	return out
}

func toAPIChanges(changes []models.TodoChange) []api.TodoChange {
	out := make([]api.TodoChange, 0, len(changes))
	for _, c := range changes {
		out = append(out, api.TodoChange{Todo: toAPITodo(c.Todo), Action: string(c.Action)})
	}
	return out
}
