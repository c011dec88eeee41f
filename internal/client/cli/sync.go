package cli

import (
	"context"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/iudanet/todosync/internal/client/reconciler"
	clientsync "github.com/iudanet/todosync/internal/client/sync"
)

func newSyncCmd(run runFunc) *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize the local cache with the server",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, a *App, args []string) error {
			if _, err := a.requireLogin(ctx); err != nil {
				return err
			}

			var (
				res *clientsync.Result
				err error
			)
			if full {
				res, err = a.sync.Baseline(ctx)
			} else {
				res, err = a.sync.SyncNow(ctx, clientsync.ReasonManual)
			}
			if err != nil {
				return err
			}

			if res.Full {
				a.io.Printf("✓ Full sync: %d todos\n", res.Changes)
			} else {
				a.io.Printf("✓ Synced %d changes (%d updated, %d removed)\n", res.Changes, res.Upserted, res.Removed)
			}
			a.io.Printf("Watermark: %s\n", formatTime(res.Watermark))
			return nil
		}),
	}

	cmd.Flags().BoolVar(&full, "full", false, "discard the local cache and fetch everything")
	return cmd
}

func newWatchCmd(run runFunc) *cobra.Command {
	var (
		refresh        time.Duration
		healthInterval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep syncing in the background and print the list when it changes",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, a *App, args []string) error {
			if _, err := a.requireLogin(ctx); err != nil {
				return err
			}

			a.io.Println("Watching for changes. Press Ctrl+C to stop.")

			g, gctx := errgroup.WithContext(ctx)

			if err := a.sync.Start(gctx); err != nil {
				return err
			}
			defer a.sync.Stop()

			monitor := clientsync.NewConnectivityMonitor(a.apiClient, healthInterval, a.logger, func() {
				a.sync.Trigger(clientsync.ReasonReconnect)
			})

			g.Go(func() error {
				return monitor.Run(gctx)
			})
			g.Go(func() error {
				clientsync.WatchForeground(gctx, func() {
					a.sync.Trigger(clientsync.ReasonForeground)
				})
				return nil
			})
			g.Go(func() error {
				return a.renderLoop(gctx, refresh, monitor)
			})

			return g.Wait()
		}),
	}

	cmd.Flags().DurationVar(&refresh, "refresh", time.Second, "how often to check the local view for changes")
	cmd.Flags().DurationVar(&healthInterval, "health-interval", clientsync.DefaultHealthInterval, "how often to probe the server")
	return cmd
}

// renderLoop печатает список, когда меняется представление или доступность сервера
func (a *App) renderLoop(ctx context.Context, every time.Duration, monitor *clientsync.ConnectivityMonitor) error {
	if every <= 0 {
		every = time.Second
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	var (
		last     []reconciler.TodoView
		online   = true
		rendered bool
	)
	for {
		current := a.data.List()
		nowOnline := monitor.Online()
		if !rendered || nowOnline != online || !slices.Equal(current, last) {
			a.io.Println("")
			status := "online"
			if !nowOnline {
				status = "offline, showing cached todos"
			}
			a.io.Printf("--- %s (%s) ---\n", time.Now().Format("15:04:05"), status)
			if err := printTodos(a.io, current); err != nil {
				return err
			}
			last, online, rendered = current, nowOnline, true
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
