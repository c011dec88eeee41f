//go:build unix

package sync

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WatchForeground вызывает onForeground каждый раз, когда процесс
// возвращается на передний план (SIGCONT после fg)
func WatchForeground(ctx context.Context, onForeground func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGCONT)
	defer signal.Stop(ch)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ch:
			onForeground()
		}
	}
}
