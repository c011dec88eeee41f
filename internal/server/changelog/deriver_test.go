package changelog

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/todosync/internal/models"
)

// fakeSource is an in-memory TodoSource
type fakeSource struct {
	err   error
	todos []*models.Todo
}

func (f *fakeSource) ListAllTodos(ctx context.Context, userID string) ([]*models.Todo, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Todo
	for _, t := range f.todos {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func at(sec int) time.Time {
	return t0.Add(time.Duration(sec) * time.Second)
}

func ptr(t time.Time) *time.Time {
	return &t
}

func TestClassify(t *testing.T) {
	since := at(10)

	tests := []struct {
		name       string
		todo       models.Todo
		wantAction models.ChangeAction
		wantOK     bool
	}{
		{
			name:       "created after watermark",
			todo:       models.Todo{CreatedAt: at(11), UpdatedAt: at(11)},
			wantAction: models.ActionCreate,
			wantOK:     true,
		},
		{
			name:       "created exactly at watermark is inclusive",
			todo:       models.Todo{CreatedAt: at(10), UpdatedAt: at(10)},
			wantAction: models.ActionCreate,
			wantOK:     true,
		},
		{
			name:       "created after and updated later stays create",
			todo:       models.Todo{CreatedAt: at(11), UpdatedAt: at(20)},
			wantAction: models.ActionCreate,
			wantOK:     true,
		},
		{
			name:       "created before, updated after",
			todo:       models.Todo{CreatedAt: at(1), UpdatedAt: at(12)},
			wantAction: models.ActionUpdate,
			wantOK:     true,
		},
		{
			name:       "updated exactly at watermark",
			todo:       models.Todo{CreatedAt: at(1), UpdatedAt: at(10)},
			wantAction: models.ActionUpdate,
			wantOK:     true,
		},
		{
			name:   "untouched since watermark",
			todo:   models.Todo{CreatedAt: at(1), UpdatedAt: at(5)},
			wantOK: false,
		},
		{
			name:       "deleted after watermark",
			todo:       models.Todo{CreatedAt: at(1), UpdatedAt: at(12), DeletedAt: ptr(at(12))},
			wantAction: models.ActionDelete,
			wantOK:     true,
		},
		{
			name:       "created and deleted after watermark is delete, never create",
			todo:       models.Todo{CreatedAt: at(11), UpdatedAt: at(12), DeletedAt: ptr(at(12))},
			wantAction: models.ActionDelete,
			wantOK:     true,
		},
		{
			name:   "deleted before watermark",
			todo:   models.Todo{CreatedAt: at(1), UpdatedAt: at(5), DeletedAt: ptr(at(5))},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, ok := Classify(tt.todo, since)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantAction, action)
		})
	}
}

func TestClassify_Completeness(t *testing.T) {
	// Каждая строка получает не более одного действия, а строка,
	// изменённая после watermark, получает ровно одно.
	since := at(10)
	for created := 0; created <= 20; created += 5 {
		for updated := created; updated <= 20; updated += 5 {
			for _, deleted := range []*time.Time{nil, ptr(at(updated))} {
				todo := models.Todo{CreatedAt: at(created), UpdatedAt: at(updated), DeletedAt: deleted}
				action, ok := Classify(todo, since)

				touched := !at(updated).Before(since)
				assert.Equal(t, touched, ok, "created=%d updated=%d deleted=%v", created, updated, deleted != nil)
				if deleted != nil && ok {
					assert.Equal(t, models.ActionDelete, action)
				}
				if deleted == nil && ok {
					assert.NotEqual(t, models.ActionDelete, action)
				}
			}
		}
	}
}

func TestDeriver_ChangesSince(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{todos: []*models.Todo{
		{ID: "old", UserID: "u1", CreatedAt: at(1), UpdatedAt: at(1)},
		{ID: "upd", UserID: "u1", CreatedAt: at(1), UpdatedAt: at(30)},
		{ID: "new", UserID: "u1", CreatedAt: at(20), UpdatedAt: at(20)},
		{ID: "del", UserID: "u1", CreatedAt: at(1), UpdatedAt: at(25), DeletedAt: ptr(at(25))},
		{ID: "foreign", UserID: "u2", CreatedAt: at(20), UpdatedAt: at(20)},
	}}
	d := NewDeriver(src, setupTestLogger())

	changes, err := d.ChangesSince(ctx, "u1", at(10))
	require.NoError(t, err)
	require.Len(t, changes, 3)

	assert.Equal(t, "new", changes[0].Todo.ID)
	assert.Equal(t, models.ActionCreate, changes[0].Action)
	assert.Equal(t, "del", changes[1].Todo.ID)
	assert.Equal(t, models.ActionDelete, changes[1].Action)
	assert.Equal(t, "upd", changes[2].Todo.ID)
	assert.Equal(t, models.ActionUpdate, changes[2].Action)
}

func TestDeriver_ChangesSince_OrderTiesByID(t *testing.T) {
	src := &fakeSource{todos: []*models.Todo{
		{ID: "b", UserID: "u1", CreatedAt: at(20), UpdatedAt: at(20)},
		{ID: "a", UserID: "u1", CreatedAt: at(20), UpdatedAt: at(20)},
	}}
	d := NewDeriver(src, setupTestLogger())

	changes, err := d.ChangesSince(context.Background(), "u1", at(0))
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, "a", changes[0].Todo.ID)
	assert.Equal(t, "b", changes[1].Todo.ID)
}

func TestDeriver_ChangesSince_ZeroSinceIsEpoch(t *testing.T) {
	src := &fakeSource{todos: []*models.Todo{
		{ID: "live", UserID: "u1", CreatedAt: at(1), UpdatedAt: at(2)},
		{ID: "gone", UserID: "u1", CreatedAt: at(1), UpdatedAt: at(3), DeletedAt: ptr(at(3))},
	}}
	d := NewDeriver(src, setupTestLogger())

	changes, err := d.ChangesSince(context.Background(), "u1", time.Time{})
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, models.ActionCreate, changes[0].Action)
	assert.Equal(t, models.ActionDelete, changes[1].Action)
}

func TestDeriver_ChangesSince_Empty(t *testing.T) {
	d := NewDeriver(&fakeSource{}, setupTestLogger())

	changes, err := d.ChangesSince(context.Background(), "nobody", at(0))
	require.NoError(t, err)
	assert.NotNil(t, changes)
	assert.Empty(t, changes)
}

func TestDeriver_ChangesSince_RetrievalError(t *testing.T) {
	dbErr := errors.New("disk I/O error")
	d := NewDeriver(&fakeSource{err: dbErr}, setupTestLogger())

	_, err := d.ChangesSince(context.Background(), "u1", at(0))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRetrieval)
	assert.ErrorIs(t, err, dbErr)
}

func TestDeriver_CreateAbsorbsLaterUpdate(t *testing.T) {
	// Задача создана и изменена после watermark: одна запись create
	// с последними значениями полей.
	src := &fakeSource{todos: []*models.Todo{
		{ID: "x", UserID: "u1", Title: "edited", Completed: true, CreatedAt: at(11), UpdatedAt: at(15)},
	}}
	d := NewDeriver(src, setupTestLogger())

	changes, err := d.ChangesSince(context.Background(), "u1", at(10))
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, models.ActionCreate, changes[0].Action)
	assert.Equal(t, "edited", changes[0].Todo.Title)
	assert.True(t, changes[0].Todo.Completed)
}
