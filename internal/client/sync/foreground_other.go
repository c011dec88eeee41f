//go:build !unix

package sync

import "context"

// WatchForeground на этой платформе нет сигнала возврата на передний план
func WatchForeground(ctx context.Context, onForeground func()) {
	<-ctx.Done()
}
