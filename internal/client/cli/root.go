package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/todosync/internal/client/iocli"
	clientsync "github.com/iudanet/todosync/internal/client/sync"
	"github.com/iudanet/todosync/internal/config"
	"github.com/iudanet/todosync/internal/logger"
)

const (
	defaultServerURL = "http://localhost:8080"
	defaultDBPath    = "todosync-client.db"
)

// BuildInfo версия клиента, задается через ldflags
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// NewRootCmd собирает дерево команд клиента.
// Значения флагов по умолчанию берутся из переменных TODOSYNC_*
func NewRootCmd(out iocli.IO, build BuildInfo) *cobra.Command {
	opts := &Options{}

	root := &cobra.Command{
		Use:           "todosync",
		Short:         "Todo list client with offline cache and background sync",
		Version:       fmt.Sprintf("%s (built %s, commit %s)", build.Version, build.BuildDate, build.GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(out)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ServerURL, "server", envOr("TODOSYNC_SERVER", defaultServerURL), "server URL (env TODOSYNC_SERVER)")
	flags.StringVar(&opts.DBPath, "db", envOr("TODOSYNC_DB", defaultDBPath), "path to local database (env TODOSYNC_DB)")
	flags.DurationVar(&opts.Interval, "interval", envDuration("TODOSYNC_INTERVAL", clientsync.DefaultInterval), "background sync interval (env TODOSYNC_INTERVAL)")
	flags.StringVar(&opts.LogLevel, "log-level", envOr("TODOSYNC_LOG_LEVEL", "warn"), "log level: debug, info, warn, error (env TODOSYNC_LOG_LEVEL)")
	flags.StringVar(&opts.LogFile, "log-file", os.Getenv("TODOSYNC_LOG_FILE"), "also write logs to a rotated file (env TODOSYNC_LOG_FILE)")

	run := func(fn func(ctx context.Context, a *App, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), *opts, out, func(ctx context.Context, a *App) error {
				return fn(ctx, a, args)
			})
		}
	}

	root.AddCommand(
		newRegisterCmd(run),
		newLoginCmd(run),
		newLogoutCmd(run),
		newStatusCmd(run),
		newResetPasswordCmd(run),
		newListCmd(run),
		newShowCmd(run),
		newAddCmd(run),
		newEditCmd(run),
		newDoneCmd(run, true),
		newDoneCmd(run, false),
		newToggleCmd(run),
		newPriorityCmd(run),
		newRemoveCmd(run),
		newClearCmd(run),
		newSyncCmd(run),
		newWatchCmd(run),
	)

	return root
}

// runFunc оборачивает тело команды созданием и закрытием App
type runFunc func(fn func(ctx context.Context, a *App, args []string) error) func(*cobra.Command, []string) error

func withApp(ctx context.Context, opts Options, out iocli.IO, fn func(ctx context.Context, a *App) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	log, closer := logger.New(config.LogConfig{
		Level:      opts.LogLevel,
		Format:     "text",
		File:       opts.LogFile,
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
	})
	defer func() { _ = closer.Close() }()

	a, err := NewApp(ctx, opts, out, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Error("Failed to close local database", slog.Any("error", err))
		}
	}()

	return describeError(fn(ctx, a))
}

// Execute запускает клиент и возвращает код выхода
func Execute(ctx context.Context, build BuildInfo) int {
	out := iocli.NewStdio()
	root := NewRootCmd(out, build)
	if err := root.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
