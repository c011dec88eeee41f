package models

import "time"

// Priority bounds. 1 is the most urgent.
const (
	PriorityHighest = 1
	PriorityLowest  = 4
	PriorityDefault = 3
)

// Todo is a single todo item owned by one user.
//
// UpdatedAt is bumped on every mutation including soft delete.
// DeletedAt, once set, is never cleared.
type Todo struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
	ID        string
	UserID    string
	Title     string
	Priority  int
	Completed bool
}

// IsDeleted reports whether the todo was soft-deleted.
func (t Todo) IsDeleted() bool {
	return t.DeletedAt != nil
}

// ChangeAction describes how a todo changed relative to a sync watermark.
type ChangeAction string

const (
	ActionCreate ChangeAction = "create"
	ActionUpdate ChangeAction = "update"
	ActionDelete ChangeAction = "delete"
)

// Valid reports whether a is one of the known actions.
func (a ChangeAction) Valid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// TodoChange is a snapshot of a todo tagged with the action that
// produced it since a watermark.
type TodoChange struct {
	Action ChangeAction
	Todo   Todo
}

// TodoPatch is a partial update. Nil fields are left unchanged.
type TodoPatch struct {
	Title     *string
	Completed *bool
	Priority  *int
}

// IsEmpty reports whether the patch changes nothing.
func (p TodoPatch) IsEmpty() bool {
	return p.Title == nil && p.Completed == nil && p.Priority == nil
}

// Apply returns a copy of t with the patch fields applied.
func (p TodoPatch) Apply(t Todo) Todo {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	return t
}
