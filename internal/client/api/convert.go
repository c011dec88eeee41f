package api

import (
	"fmt"

	"github.com/iudanet/todosync/internal/models"
	"github.com/iudanet/todosync/pkg/api"
)

func fromAPITodo(t api.Todo) models.Todo {
	todo := models.Todo{
		ID:        t.ID,
		UserID:    t.UserID,
		Title:     t.Title,
		Completed: t.Completed,
		Priority:  t.Priority,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if t.DeletedAt != nil {
		deletedAt := *t.DeletedAt
		todo.DeletedAt = &deletedAt
	}
	return todo
}

func fromAPITodos(todos []api.Todo) []models.Todo {
	out := make([]models.Todo, 0, len(todos))
	for _, t := range todos {
		out = append(out, fromAPITodo(t))
	}
	return out
}

func fromAPIChanges(changes []api.TodoChange) ([]models.TodoChange, error) {
	out := make([]models.TodoChange, 0, len(changes))
	for _, c := range changes {
		action := models.ChangeAction(c.Action)
		if !action.Valid() {
			return nil, fmt.Errorf("unknown change action %q for todo %s", c.Action, c.ID)
		}
		out = append(out, models.TodoChange{Action: action, Todo: fromAPITodo(c.Todo)})
	}
	return out, nil
}
