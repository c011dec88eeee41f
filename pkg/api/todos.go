package api

import "time"

// Todo is the wire representation of a todo record.
type Todo struct {
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Title     string     `json:"title"`
	Priority  int        `json:"priority"`
	Completed bool       `json:"completed"`
}

// TodoChange is one entry of the GET /todos/sync changeset.
type TodoChange struct {
	Todo
	Action string `json:"_action"` // create | update | delete
}

// CreateTodoRequest is the body of POST /todos.
// Priority is optional; the server defaults it to 3.
type CreateTodoRequest struct {
	Priority *int   `json:"priority,omitempty"`
	Title    string `json:"title"`
}

// UpdateTodoRequest is the body of PUT /todos/{id}.
// Nil fields are left untouched.
type UpdateTodoRequest struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	Priority  *int    `json:"priority,omitempty"`
}

// DeleteResponse is returned by DELETE /todos/{id}.
type DeleteResponse struct {
	Success bool `json:"success"`
}

// ClearCompletedResponse is returned by POST /todos/clear-completed.
type ClearCompletedResponse struct {
	Deleted int `json:"deleted"`
}
