package server

import (
	"context"
	"log/slog"
	"time"
)

// ExpiredTokenRemover удаляет просроченные refresh токены
type ExpiredTokenRemover interface {
	DeleteExpiredTokens(ctx context.Context, now time.Time) (int, error)
}

// RunTokenJanitor периодически чистит просроченные refresh токены
// до отмены ctx
func RunTokenJanitor(ctx context.Context, logger *slog.Logger, store ExpiredTokenRemover, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.DeleteExpiredTokens(ctx, time.Now())
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.ErrorContext(ctx, "Failed to delete expired tokens", slog.Any("error", err))
				continue
			}
			if n > 0 {
				logger.InfoContext(ctx, "Expired refresh tokens removed", slog.Int("count", n))
			}
		}
	}
}
