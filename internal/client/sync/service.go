// Package sync keeps the local todo view in step with the server.
//
// The first round is a full fetch that sets the watermark. Every later round
// asks the server for everything changed since the watermark, merges it and
// advances the watermark to the client time captured before the request.
// A failed round changes nothing, so the next trigger retries the same window.
package sync

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iudanet/todosync/internal/client/reconciler"
	"github.com/iudanet/todosync/internal/client/storage"
	"github.com/iudanet/todosync/internal/models"
)

const (
	// DefaultInterval период фоновой синхронизации
	DefaultInterval = 10 * time.Second

	defaultRoundTimeout = 30 * time.Second
)

// Reason источник запуска раунда
type Reason string

const (
	ReasonColdStart     Reason = "cold_start"
	ReasonPeriodic      Reason = "periodic"
	ReasonReconnect     Reason = "reconnect"
	ReasonForeground    Reason = "foreground"
	ReasonLocalMutation Reason = "local_mutation"
	ReasonManual        Reason = "manual"
)

//go:generate moq -out api_mock.go . TodoAPI TokenSource

// TodoAPI серверные операции чтения, нужные синхронизации
type TodoAPI interface {
	ListTodos(ctx context.Context, accessToken string) ([]models.Todo, error)
	ChangesSince(ctx context.Context, accessToken string, since time.Time) ([]models.TodoChange, error)
}

// TokenSource выдает действующий access token, обновляя его при необходимости
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Result итог успешного раунда
type Result struct {
	Watermark time.Time
	Reason    Reason
	Changes   int
	Upserted  int
	Removed   int
	Full      bool
}

// Stats счетчики раундов с момента создания сервиса
type Stats struct {
	Rounds   int64
	Failures int64
	Dropped  int64
}

// Option настраивает Service
type Option func(*Service)

// WithInterval задает период фоновой синхронизации
func WithInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithClock подменяет часы клиента
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRoundTimeout ограничивает длительность раунда, запущенного через Trigger
func WithRoundTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.roundTimeout = d
		}
	}
}

// WithAuthErrorHandler вызывается после того, как раунд получил ошибку
// авторизации и локальное состояние было сброшено
func WithAuthErrorHandler(fn func(error)) Option {
	return func(s *Service) { s.onAuthError = fn }
}

// Service синхронизирует локальное представление с сервером
type Service struct {
	watermark    time.Time
	api          TodoAPI
	tokens       TokenSource
	meta         storage.MetadataStorage
	cache        storage.TodoCacheStorage
	view         *reconciler.Reconciler
	logger       *slog.Logger
	now          func() time.Time
	onAuthError  func(error)
	cancel       context.CancelFunc
	interval     time.Duration
	roundTimeout time.Duration
	wg           sync.WaitGroup
	rounds       atomic.Int64
	failures     atomic.Int64
	dropped      atomic.Int64
	mu           sync.Mutex
	inFlight     atomic.Bool
	hasWatermark bool
}

// NewService creates a new sync service
func NewService(
	todoAPI TodoAPI,
	tokens TokenSource,
	view *reconciler.Reconciler,
	meta storage.MetadataStorage,
	cache storage.TodoCacheStorage,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		api:          todoAPI,
		tokens:       tokens,
		view:         view,
		meta:         meta,
		cache:        cache,
		logger:       logger,
		now:          time.Now,
		interval:     DefaultInterval,
		roundTimeout: defaultRoundTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load восстанавливает сохраненный снимок и водяной знак,
// чтобы продолжить синхронизацию инкрементально
func (s *Service) Load(ctx context.Context) error {
	todos, err := s.cache.LoadTodos(ctx)
	if err != nil {
		return err
	}
	wm, ok, err := s.meta.GetWatermark(ctx)
	if err != nil {
		return err
	}

	s.view.Replace(todos)

	s.mu.Lock()
	s.watermark, s.hasWatermark = wm, ok
	s.mu.Unlock()

	s.logger.Debug("Sync state loaded",
		slog.Int("todos", len(todos)),
		slog.Bool("has_watermark", ok),
		slog.Time("watermark", wm),
	)
	return nil
}

// Watermark возвращает текущий водяной знак; ok=false до первого успешного раунда
func (s *Service) Watermark() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watermark, s.hasWatermark
}

// Stats возвращает счетчики раундов
func (s *Service) Stats() Stats {
	return Stats{
		Rounds:   s.rounds.Load(),
		Failures: s.failures.Load(),
		Dropped:  s.dropped.Load(),
	}
}

// Baseline выполняет полную выборку и заменяет ею локальное представление
func (s *Service) Baseline(ctx context.Context) (*Result, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.dropped.Add(1)
		return nil, ErrSyncInFlight
	}
	defer s.inFlight.Store(false)

	return s.baseline(ctx, ReasonManual)
}

// SyncNow выполняет один раунд: полную выборку, если водяного знака нет,
// иначе инкрементальный запрос изменений
func (s *Service) SyncNow(ctx context.Context, reason Reason) (*Result, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.dropped.Add(1)
		return nil, ErrSyncInFlight
	}
	defer s.inFlight.Store(false)

	wm, ok := s.Watermark()
	if !ok {
		return s.baseline(ctx, reason)
	}
	return s.incremental(ctx, reason, wm)
}

func (s *Service) baseline(ctx context.Context, reason Reason) (*Result, error) {
	requestTime := s.now()

	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		return nil, s.fail(ctx, reason, err)
	}

	todos, err := s.api.ListTodos(ctx, token)
	if err != nil {
		return nil, s.fail(ctx, reason, err)
	}

	views := make([]reconciler.TodoView, 0, len(todos))
	for _, t := range todos {
		views = append(views, reconciler.ViewOf(t))
	}
	s.view.Replace(views)
	s.commit(ctx, requestTime)

	s.logger.Info("Baseline sync completed",
		slog.String("reason", string(reason)),
		slog.Int("todos", len(views)),
		slog.Time("watermark", requestTime),
	)

	return &Result{
		Watermark: requestTime,
		Reason:    reason,
		Changes:   len(views),
		Upserted:  len(views),
		Full:      true,
	}, nil
}

func (s *Service) incremental(ctx context.Context, reason Reason, since time.Time) (*Result, error) {
	requestTime := s.now()

	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		return nil, s.fail(ctx, reason, err)
	}

	changes, err := s.api.ChangesSince(ctx, token, since)
	if err != nil {
		return nil, s.fail(ctx, reason, err)
	}

	stats := s.view.Merge(changes)
	s.commit(ctx, requestTime)

	level := slog.LevelDebug
	if len(changes) > 0 {
		level = slog.LevelInfo
	}
	s.logger.Log(ctx, level, "Incremental sync completed",
		slog.String("reason", string(reason)),
		slog.Int("changes", len(changes)),
		slog.Int("upserted", stats.Upserted),
		slog.Int("removed", stats.Removed),
		slog.Time("since", since),
		slog.Time("watermark", requestTime),
	)

	return &Result{
		Watermark: requestTime,
		Reason:    reason,
		Changes:   len(changes),
		Upserted:  stats.Upserted,
		Removed:   stats.Removed,
	}, nil
}

// commit продвигает водяной знак и сохраняет снимок
func (s *Service) commit(ctx context.Context, watermark time.Time) {
	s.rounds.Add(1)

	s.mu.Lock()
	s.watermark, s.hasWatermark = watermark, true
	s.mu.Unlock()

	// Сначала снимок, затем водяной знак: более старый знак при новом снимке
	// лишь повторит уже примененные изменения
	if err := s.cache.SaveTodos(ctx, s.view.List()); err != nil {
		s.logger.Warn("Failed to persist todo snapshot", slog.Any("error", err))
		return
	}
	if err := s.meta.SaveWatermark(ctx, watermark); err != nil {
		s.logger.Warn("Failed to persist watermark", slog.Any("error", err))
	}
}

// fail оборачивает ошибку раунда; при ошибке авторизации сбрасывает сессию
func (s *Service) fail(ctx context.Context, reason Reason, err error) error {
	s.failures.Add(1)

	syncErr := &SyncError{Err: err, Kind: classify(err), Reason: reason}
	if syncErr.IsAuth() {
		if resetErr := s.Reset(ctx); resetErr != nil {
			s.logger.Warn("Failed to reset sync state", slog.Any("error", resetErr))
		}
		if s.onAuthError != nil {
			s.onAuthError(syncErr)
		}
	}
	return syncErr
}

// Reset очищает локальное представление, водяной знак и сохраненный снимок
func (s *Service) Reset(ctx context.Context) error {
	s.view.Clear()

	s.mu.Lock()
	s.watermark, s.hasWatermark = time.Time{}, false
	s.mu.Unlock()

	return errors.Join(
		s.meta.ClearWatermark(ctx),
		s.cache.ClearTodos(ctx),
	)
}

// Trigger запускает раунд в фоне и не ждет результата.
// Ошибки логируются и учитываются в Stats
func (s *Service) Trigger(reason Reason) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.roundTimeout)
		defer cancel()

		if _, err := s.SyncNow(ctx, reason); err != nil {
			s.logRoundError(reason, err)
		}
	}()
}

func (s *Service) logRoundError(reason Reason, err error) {
	var syncErr *SyncError
	switch {
	case errors.Is(err, ErrSyncInFlight):
		s.logger.Debug("Sync trigger dropped, round in flight", slog.String("reason", string(reason)))
	case errors.As(err, &syncErr) && syncErr.IsAuth():
		s.logger.Error("Sync failed, login required",
			slog.String("reason", string(reason)),
			slog.Any("error", syncErr.Err),
		)
	default:
		s.logger.Warn("Sync failed, will retry on next trigger",
			slog.String("reason", string(reason)),
			slog.Any("error", err),
		)
	}
}

// Start запускает холодный раунд и периодический таймер и сразу возвращается
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	s.logger.Info("Sync scheduler started", slog.Duration("interval", s.interval))

	s.Trigger(ReasonColdStart)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runTicker(runCtx)
	}()

	return nil
}

func (s *Service) runTicker(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Trigger(ReasonPeriodic)
		}
	}
}

// Stop останавливает таймер и ждет завершения запущенных раундов.
// Безопасно вызывать без Start: тогда ждет только раунды из Trigger
func (s *Service) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		s.logger.Info("Sync scheduler stopped")
	}
	s.wg.Wait()
}
