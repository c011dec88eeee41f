// Package reconciler owns the client's local view of todos and merges
// server changesets into it.
//
// Merge is a full-overwrite upsert keyed by id: the server is the single
// source of truth and changesets arrive ordered by updatedAt, so the last
// applied entry for an id wins. Deletes remove the id and are idempotent.
package reconciler

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/iudanet/todosync/internal/models"
)

// TodoView is the client-side projection of a todo.
type TodoView struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Priority  int       `json:"priority"`
	Completed bool      `json:"completed"`
}

// ViewOf projects a todo record onto the local view.
func ViewOf(t models.Todo) TodoView {
	return TodoView{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		Priority:  t.Priority,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// MergeStats counts what a merge did.
type MergeStats struct {
	Upserted int
	Removed  int
}

// Merge applies changes in order to a copy of current and returns it.
// current is not modified.
func Merge(current map[string]TodoView, changes []models.TodoChange) map[string]TodoView {
	next := make(map[string]TodoView, len(current)+len(changes))
	for id, v := range current {
		next[id] = v
	}
	applyChanges(next, changes)
	return next
}

func applyChanges(view map[string]TodoView, changes []models.TodoChange) MergeStats {
	var stats MergeStats
	for _, c := range changes {
		switch c.Action {
		case models.ActionCreate, models.ActionUpdate:
			view[c.Todo.ID] = ViewOf(c.Todo)
			stats.Upserted++
		case models.ActionDelete:
			if _, ok := view[c.Todo.ID]; ok {
				delete(view, c.Todo.ID)
				stats.Removed++
			}
		}
	}
	return stats
}

// Sorted returns the view ordered by CreatedAt descending, ties by ID.
func Sorted(view map[string]TodoView) []TodoView {
	out := make([]TodoView, 0, len(view))
	for _, v := range view {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b TodoView) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Reconciler guards the local view. All mutations of the view go through it,
// so a merge never interleaves with a local edit.
type Reconciler struct {
	view map[string]TodoView
	mu   sync.RWMutex
}

// New creates an empty reconciler.
func New() *Reconciler {
	return &Reconciler{view: make(map[string]TodoView)}
}

// Replace swaps the whole view, used for the baseline fetch and for
// restoring a persisted snapshot.
func (r *Reconciler) Replace(todos []TodoView) {
	view := make(map[string]TodoView, len(todos))
	for _, t := range todos {
		view[t.ID] = t
	}

	r.mu.Lock()
	r.view = view
	r.mu.Unlock()
}

// Merge applies a changeset atomically.
func (r *Reconciler) Merge(changes []models.TodoChange) MergeStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return applyChanges(r.view, changes)
}

// Upsert stores v, overwriting any entry with the same id.
func (r *Reconciler) Upsert(v TodoView) {
	r.mu.Lock()
	r.view[v.ID] = v
	r.mu.Unlock()
}

// Patch applies a partial update to the entry with id and stamps UpdatedAt.
// It returns false if the id is not in the view.
func (r *Reconciler) Patch(id string, patch models.TodoPatch, now time.Time) (TodoView, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.view[id]
	if !ok {
		return TodoView{}, false
	}
	if patch.Title != nil {
		v.Title = *patch.Title
	}
	if patch.Completed != nil {
		v.Completed = *patch.Completed
	}
	if patch.Priority != nil {
		v.Priority = *patch.Priority
	}
	v.UpdatedAt = now
	r.view[id] = v
	return v, true
}

// Remove deletes id from the view and reports whether it was present.
func (r *Reconciler) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.view[id]; !ok {
		return false
	}
	delete(r.view, id)
	return true
}

// RemoveWhere deletes every entry matching pred and returns the removed ids.
func (r *Reconciler) RemoveWhere(pred func(TodoView) bool) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []string
	for id, v := range r.view {
		if pred(v) {
			delete(r.view, id)
			removed = append(removed, id)
		}
	}
	slices.Sort(removed)
	return removed
}

// Clear empties the view.
func (r *Reconciler) Clear() {
	r.mu.Lock()
	r.view = make(map[string]TodoView)
	r.mu.Unlock()
}

// Get returns the entry with id.
func (r *Reconciler) Get(id string) (TodoView, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.view[id]
	return v, ok
}

// Snapshot returns a copy of the view.
func (r *Reconciler) Snapshot() map[string]TodoView {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]TodoView, len(r.view))
	for id, v := range r.view {
		out[id] = v
	}
	return out
}

// List returns the view in display order.
func (r *Reconciler) List() []TodoView {
	return Sorted(r.Snapshot())
}

// Len returns the number of entries.
func (r *Reconciler) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.view)
}
