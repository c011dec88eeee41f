package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/todosync/internal/models"
	"github.com/iudanet/todosync/pkg/api"
)

// ChangeDeriver строит набор изменений с момента since
type ChangeDeriver interface {
	ChangesSince(ctx context.Context, userID string, since time.Time) ([]models.TodoChange, error)
}

// SyncHandler handles incremental synchronization requests
type SyncHandler struct {
	logger  *slog.Logger
	deriver ChangeDeriver
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(logger *slog.Logger, deriver ChangeDeriver) *SyncHandler {
	return &SyncHandler{
		logger:  logger,
		deriver: deriver,
	}
}

// Changes обрабатывает GET /todos/sync?since=<RFC3339>
// Без since возвращаются все изменения с начала эпохи
func (h *SyncHandler) Changes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := GetUserID(ctx)
	if !ok {
		unauthorized(w, h.logger, api.CodeUnauthorized, "unauthorized")
		return
	}

	since := time.Unix(0, 0).UTC()
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			h.logger.WarnContext(ctx, "invalid since parameter", slog.String("since", raw))
			badRequest(w, h.logger, "since must be an RFC3339 timestamp")
			return
		}
		// Хранилище работает с точностью до миллисекунд
		since = parsed.Truncate(time.Millisecond)
	}

	changes, err := h.deriver.ChangesSince(ctx, userID, since)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to derive changes",
			slog.String("user_id", userID),
			slog.Any("error", err))
		internalError(w, h.logger)
		return
	}

	h.logger.InfoContext(ctx, "sync changes sent",
		slog.String("user_id", userID),
		slog.Time("since", since),
		slog.Int("count", len(changes)))

	WriteData(w, h.logger, http.StatusOK, toAPIChanges(changes))
}
