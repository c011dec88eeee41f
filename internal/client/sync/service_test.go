package sync

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/todosync/internal/client/api"
	"github.com/iudanet/todosync/internal/client/reconciler"
	"github.com/iudanet/todosync/internal/client/storage"
	"github.com/iudanet/todosync/internal/models"
)

type testEnv struct {
	clock  *testClock
	server *fakeServer
	stores *memStores
	view   *reconciler.Reconciler
	svc    *Service
}

func setupTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()

	clock := newTestClock()
	env := &testEnv{
		clock:  clock,
		server: newFakeServer(clock),
		stores: newMemStores(),
		view:   reconciler.New(),
	}
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	env.svc = NewService(env.server, staticToken(), env.view, env.stores.meta, env.stores.cache, testLogger(), opts...)
	t.Cleanup(env.svc.Stop)
	return env
}

func TestNewService_Defaults(t *testing.T) {
	svc := NewService(nil, nil, reconciler.New(), nil, nil, testLogger())
	assert.Equal(t, DefaultInterval, svc.interval)
	assert.Equal(t, defaultRoundTimeout, svc.roundTimeout)

	_, ok := svc.Watermark()
	assert.False(t, ok)
}

func TestSyncNow_ColdStartIsBaseline(t *testing.T) {
	env := setupTestEnv(t)
	env.server.create("a")
	env.server.create("b")
	env.clock.Advance(time.Second)

	requestTime := env.clock.Now()
	res, err := env.svc.SyncNow(context.Background(), ReasonColdStart)
	require.NoError(t, err)

	assert.True(t, res.Full)
	assert.Equal(t, 2, res.Changes)
	assert.Equal(t, requestTime, res.Watermark)
	assert.Equal(t, env.server.fullView(t), env.view.Snapshot())

	wm, ok := env.svc.Watermark()
	require.True(t, ok)
	assert.Equal(t, requestTime, wm)

	// снимок и водяной знак сохранены
	assert.Len(t, env.stores.snapshot, 2)
	assert.Equal(t, requestTime, env.stores.watermark)
}

// Полная выборка в T1 плюс изменения с T1 дают то же, что полная выборка в T2
func TestSyncNow_IncrementalMatchesFullFetch(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	keep := env.server.create("keep")
	edit := env.server.create("edit")
	gone := env.server.create("gone")
	env.clock.Advance(time.Second)

	_, err := env.svc.SyncNow(ctx, ReasonColdStart)
	require.NoError(t, err)

	env.clock.Advance(time.Second)
	env.server.rename(edit, "edited")
	env.server.remove(gone)
	fresh := env.server.create("fresh")
	env.clock.Advance(time.Second)
	env.server.rename(fresh, "fresh edited")
	env.clock.Advance(time.Second)

	res, err := env.svc.SyncNow(ctx, ReasonPeriodic)
	require.NoError(t, err)
	assert.False(t, res.Full)
	assert.Equal(t, 3, res.Changes, "update, delete and one create that absorbed its update")
	assert.Equal(t, 1, res.Removed)

	assert.Equal(t, env.server.fullView(t), env.view.Snapshot())

	got, ok := env.view.Get(fresh)
	require.True(t, ok)
	assert.Equal(t, "fresh edited", got.Title)
	_, ok = env.view.Get(keep)
	assert.True(t, ok)
}

func TestSyncNow_DeleteBetweenRounds(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	old := env.server.create("old")
	env.clock.Advance(time.Second)
	_, err := env.svc.SyncNow(ctx, ReasonColdStart)
	require.NoError(t, err)

	// создана и удалена между раундами: клиент ее никогда не видел
	env.clock.Advance(time.Second)
	flash := env.server.create("flash")
	env.server.remove(old)
	env.clock.Advance(time.Second)
	env.server.remove(flash)
	env.clock.Advance(time.Second)

	_, err = env.svc.SyncNow(ctx, ReasonPeriodic)
	require.NoError(t, err)

	assert.Equal(t, 0, env.view.Len())
	assert.Equal(t, env.server.fullView(t), env.view.Snapshot())
}

// Неудачный раунд не меняет ни представление, ни водяной знак,
// а следующий раунд получает пропущенные изменения
func TestSyncNow_FailedRoundIsRecoverable(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	id := env.server.create("a")
	env.clock.Advance(time.Second)
	_, err := env.svc.SyncNow(ctx, ReasonColdStart)
	require.NoError(t, err)

	wmBefore, _ := env.svc.Watermark()
	viewBefore := env.view.Snapshot()
	saves := len(env.stores.meta.SaveWatermarkCalls())

	env.clock.Advance(time.Second)
	env.server.rename(id, "changed")
	env.clock.Advance(time.Second)

	env.server.failWith(fmt.Errorf("%w: connection refused", api.ErrTransient))
	_, err = env.svc.SyncNow(ctx, ReasonPeriodic)

	var syncErr *SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, KindTransient, syncErr.Kind)
	assert.Equal(t, ReasonPeriodic, syncErr.Reason)
	assert.ErrorIs(t, err, api.ErrTransient)

	wmAfter, _ := env.svc.Watermark()
	assert.Equal(t, wmBefore, wmAfter)
	assert.Equal(t, viewBefore, env.view.Snapshot())
	assert.Len(t, env.stores.meta.SaveWatermarkCalls(), saves)

	env.server.failWith(nil)
	env.clock.Advance(time.Second)
	_, err = env.svc.SyncNow(ctx, ReasonReconnect)
	require.NoError(t, err)

	got, ok := env.view.Get(id)
	require.True(t, ok)
	assert.Equal(t, "changed", got.Title)
	assert.Equal(t, int64(1), env.svc.Stats().Failures)
}

func TestSyncNow_AuthErrorClearsState(t *testing.T) {
	tests := []struct {
		apiErr   error
		tokenErr error
		name     string
	}{
		{name: "server rejects token", apiErr: &api.Error{Status: 401, Code: 401, Message: "token expired"}},
		{name: "no stored session", tokenErr: fmt.Errorf("get auth: %w", storage.ErrAuthNotFound)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hookErr error
			env := setupTestEnv(t, WithAuthErrorHandler(func(err error) { hookErr = err }))
			ctx := context.Background()

			env.server.create("a")
			env.clock.Advance(time.Second)
			_, err := env.svc.SyncNow(ctx, ReasonColdStart)
			require.NoError(t, err)
			require.Equal(t, 1, env.view.Len())

			if tt.tokenErr != nil {
				env.svc.tokens = &TokenSourceMock{
					AccessTokenFunc: func(ctx context.Context) (string, error) { return "", tt.tokenErr },
				}
			}
			env.server.failWith(tt.apiErr)

			_, err = env.svc.SyncNow(ctx, ReasonPeriodic)
			var syncErr *SyncError
			require.ErrorAs(t, err, &syncErr)
			assert.True(t, syncErr.IsAuth())

			assert.Equal(t, 0, env.view.Len())
			_, ok := env.svc.Watermark()
			assert.False(t, ok)
			assert.False(t, env.stores.hasWM)
			assert.Empty(t, env.stores.snapshot)
			require.Error(t, hookErr)
			assert.ErrorAs(t, hookErr, &syncErr)
		})
	}
}

func TestSyncNow_InFlightGuardDropsOverlap(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	todoAPI := &TodoAPIMock{
		ListTodosFunc: func(ctx context.Context, accessToken string) ([]models.Todo, error) {
			close(entered)
			<-release
			return nil, nil
		},
		ChangesSinceFunc: func(ctx context.Context, accessToken string, since time.Time) ([]models.TodoChange, error) {
			return nil, nil
		},
	}
	stores := newMemStores()
	svc := NewService(todoAPI, staticToken(), reconciler.New(), stores.meta, stores.cache, testLogger())

	done := make(chan error, 1)
	go func() {
		_, err := svc.SyncNow(context.Background(), ReasonColdStart)
		done <- err
	}()
	<-entered

	_, err := svc.SyncNow(context.Background(), ReasonLocalMutation)
	assert.ErrorIs(t, err, ErrSyncInFlight)
	_, err = svc.Baseline(context.Background())
	assert.ErrorIs(t, err, ErrSyncInFlight)

	close(release)
	require.NoError(t, <-done)

	assert.Len(t, todoAPI.ListTodosCalls(), 1)
	assert.Equal(t, int64(2), svc.Stats().Dropped)

	// после завершения раунда новые запуски проходят
	_, err = svc.SyncNow(context.Background(), ReasonManual)
	assert.NoError(t, err)
}

func TestBaseline_ReplacesView(t *testing.T) {
	env := setupTestEnv(t)
	env.view.Upsert(reconciler.TodoView{ID: "stale", Title: "local only"})
	env.server.create("a")

	res, err := env.svc.Baseline(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Full)
	assert.Equal(t, ReasonManual, res.Reason)

	_, ok := env.view.Get("stale")
	assert.False(t, ok)
	assert.Equal(t, 1, env.view.Len())
}

func TestLoad_ResumesIncrementally(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	wm := env.clock.Now()
	env.stores.watermark, env.stores.hasWM = wm, true
	env.stores.snapshot = []reconciler.TodoView{{ID: "cached", Title: "from disk", CreatedAt: wm.Add(-time.Hour)}}

	require.NoError(t, env.svc.Load(ctx))
	got, ok := env.svc.Watermark()
	require.True(t, ok)
	assert.Equal(t, wm, got)
	assert.Equal(t, 1, env.view.Len())

	calledSince := time.Time{}
	env.svc.api = &TodoAPIMock{
		ChangesSinceFunc: func(ctx context.Context, accessToken string, since time.Time) ([]models.TodoChange, error) {
			calledSince = since
			return []models.TodoChange{}, nil
		},
	}
	env.clock.Advance(time.Second)

	res, err := env.svc.SyncNow(ctx, ReasonColdStart)
	require.NoError(t, err)
	assert.False(t, res.Full)
	assert.Equal(t, wm, calledSince)

	// пустой раунд тоже продвигает водяной знак
	got, _ = env.svc.Watermark()
	assert.Equal(t, env.clock.Now(), got)
	assert.Equal(t, 1, env.view.Len())
}

func TestCommit_SnapshotFailureSkipsWatermarkPersist(t *testing.T) {
	env := setupTestEnv(t)
	env.stores.cache.SaveTodosFunc = func(ctx context.Context, todos []reconciler.TodoView) error {
		return errors.New("disk full")
	}

	_, err := env.svc.SyncNow(context.Background(), ReasonColdStart)
	require.NoError(t, err, "persistence failure does not fail the round")

	_, ok := env.svc.Watermark()
	assert.True(t, ok)
	assert.Empty(t, env.stores.meta.SaveWatermarkCalls())
}

func TestTrigger_LogsAndCountsFailures(t *testing.T) {
	env := setupTestEnv(t)
	env.server.failWith(fmt.Errorf("%w: timeout", api.ErrTransient))

	env.svc.Trigger(ReasonManual)
	env.svc.Stop()

	stats := env.svc.Stats()
	assert.Equal(t, int64(1), stats.Failures)
	assert.Equal(t, int64(0), stats.Rounds)
}

func TestStartStop(t *testing.T) {
	var calls atomic.Int32
	todoAPI := &TodoAPIMock{
		ListTodosFunc: func(ctx context.Context, accessToken string) ([]models.Todo, error) {
			calls.Add(1)
			return nil, nil
		},
		ChangesSinceFunc: func(ctx context.Context, accessToken string, since time.Time) ([]models.TodoChange, error) {
			calls.Add(1)
			return nil, nil
		},
	}
	stores := newMemStores()
	svc := NewService(todoAPI, staticToken(), reconciler.New(), stores.meta, stores.cache, testLogger(),
		WithInterval(10*time.Millisecond))

	require.NoError(t, svc.Start(context.Background()))
	assert.ErrorIs(t, svc.Start(context.Background()), ErrAlreadyStarted)

	// холодный раунд и несколько периодических
	require.Eventually(t, func() bool { return calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	assert.NotEmpty(t, todoAPI.ListTodosCalls())
	assert.NotEmpty(t, todoAPI.ChangesSinceCalls())

	svc.Stop()
	stopped := calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, stopped, calls.Load(), "no rounds after Stop")

	// после Stop можно запустить снова
	require.NoError(t, svc.Start(context.Background()))
	svc.Stop()
}

func TestSyncError(t *testing.T) {
	inner := &api.Error{Status: 503, Code: 500, Message: "down"}
	err := &SyncError{Err: inner, Kind: classify(inner), Reason: ReasonForeground}

	assert.Equal(t, KindTransient, err.Kind)
	assert.Contains(t, err.Error(), "foreground")
	assert.Contains(t, err.Error(), "transient")
	assert.ErrorIs(t, err, api.ErrTransient)
	assert.False(t, err.IsAuth())
}
