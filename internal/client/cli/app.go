package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/todosync/internal/client/api"
	"github.com/iudanet/todosync/internal/client/auth"
	"github.com/iudanet/todosync/internal/client/data"
	"github.com/iudanet/todosync/internal/client/iocli"
	"github.com/iudanet/todosync/internal/client/reconciler"
	"github.com/iudanet/todosync/internal/client/storage"
	"github.com/iudanet/todosync/internal/client/storage/boltdb"
	clientsync "github.com/iudanet/todosync/internal/client/sync"
)

// Options глобальные флаги клиента
type Options struct {
	ServerURL string
	DBPath    string
	LogLevel  string
	LogFile   string
	Interval  time.Duration
}

// App связывает сервисы клиента для одной команды
type App struct {
	io        iocli.IO
	logger    *slog.Logger
	store     *boltdb.Storage
	apiClient *api.Client
	auth      *auth.Service
	view      *reconciler.Reconciler
	sync      *clientsync.Service
	data      data.Service
	opts      Options
}

// NewApp открывает локальное хранилище и восстанавливает сохраненное представление.
// Вызывающий обязан вызвать Close
func NewApp(ctx context.Context, opts Options, out iocli.IO, logger *slog.Logger) (*App, error) {
	store, err := boltdb.New(ctx, opts.DBPath)
	if err != nil {
		if errors.Is(err, boltdb.ErrLocked) {
			return nil, fmt.Errorf("local database %s is used by another todosync process (is 'watch' running?)", opts.DBPath)
		}
		return nil, fmt.Errorf("failed to open local database: %w", err)
	}

	a := &App{
		io:        out,
		logger:    logger,
		store:     store,
		apiClient: api.NewClient(opts.ServerURL),
		view:      reconciler.New(),
		opts:      opts,
	}
	a.auth = auth.NewService(a.apiClient, store, logger)
	a.sync = clientsync.NewService(a.apiClient, a.auth, a.view, store, store, logger,
		clientsync.WithInterval(opts.Interval),
		clientsync.WithAuthErrorHandler(func(error) {
			a.io.Println("Session expired. Please run 'todosync login' again.")
		}),
	)
	a.data = data.NewService(a.apiClient, a.auth, a.view, store, a.sync, logger)

	if err := a.sync.Load(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to load local state: %w", err)
	}

	return a, nil
}

// Close дожидается фоновой синхронизации и закрывает хранилище
func (a *App) Close() error {
	a.sync.Stop()
	return a.store.Close()
}

// requireLogin проверяет наличие сессии до обращения к серверу
func (a *App) requireLogin(ctx context.Context) (*storage.AuthData, error) {
	current, err := a.auth.Current(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, errNotLoggedIn
		}
		return nil, err
	}
	return current, nil
}

var errNotLoggedIn = errors.New("not authenticated. Please run 'todosync login' first")

// describeError переводит ошибки клиента в сообщения для пользователя
func describeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errNotLoggedIn):
		return err
	case errors.Is(err, auth.ErrSessionExpired), errors.Is(err, storage.ErrAuthNotFound):
		return fmt.Errorf("%w (%v)", errNotLoggedIn, err)
	case api.IsTransient(err):
		return fmt.Errorf("server unreachable, try again later: %w", err)
	default:
		return err
	}
}
