package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/iudanet/todosync/internal/models"
	"github.com/iudanet/todosync/internal/server/storage"
	"github.com/iudanet/todosync/internal/validation"
	"github.com/iudanet/todosync/pkg/api"
)

// TodoHandler обрабатывает CRUD запросы над задачами
type TodoHandler struct {
	logger  *slog.Logger
	storage storage.TodoStorage
	now     func() time.Time
}

// NewTodoHandler создает новый handler для задач
func NewTodoHandler(logger *slog.Logger, todoStorage storage.TodoStorage) *TodoHandler {
	return &TodoHandler{
		logger:  logger,
		storage: todoStorage,
		now:     time.Now,
	}
}

// List обрабатывает GET /todos
// Возвращает живые задачи, новые первыми
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := GetUserID(ctx)
	if !ok {
		unauthorized(w, h.logger, api.CodeUnauthorized, "unauthorized")
		return
	}

	todos, err := h.storage.ListTodos(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list todos", slog.String("user_id", userID), slog.Any("error", err))
		internalError(w, h.logger)
		return
	}

	WriteData(w, h.logger, http.StatusOK, toAPITodos(todos))
}

// Create обрабатывает POST /todos
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := GetUserID(ctx)
	if !ok {
		unauthorized(w, h.logger, api.CodeUnauthorized, "unauthorized")
		return
	}

	var req api.CreateTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, h.logger, "invalid request body")
		return
	}

	priority := models.PriorityDefault
	if req.Priority != nil {
		priority = *req.Priority
	}

	req.Title = validation.NormalizeTitle(req.Title)
	if err := validation.ValidateTitle(req.Title); err != nil {
		badRequest(w, h.logger, err.Error())
		return
	}
	if err := validation.ValidatePriority(priority); err != nil {
		badRequest(w, h.logger, err.Error())
		return
	}

	now := h.now().UTC().Truncate(time.Millisecond)
	todo := &models.Todo{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     req.Title,
		Priority:  priority,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.storage.CreateTodo(ctx, todo); err != nil {
		h.logger.ErrorContext(ctx, "failed to create todo", slog.String("user_id", userID), slog.Any("error", err))
		internalError(w, h.logger)
		return
	}

	h.logger.InfoContext(ctx, "todo created",
		slog.String("user_id", userID),
		slog.String("todo_id", todo.ID))

	WriteData(w, h.logger, http.StatusCreated, toAPITodo(*todo))
}

// Update обрабатывает PUT /todos/{id}
// Частичное обновление: отсутствующие поля не меняются, updatedAt всегда сдвигается
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := GetUserID(ctx)
	if !ok {
		unauthorized(w, h.logger, api.CodeUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "id")

	var req api.UpdateTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, h.logger, "invalid request body")
		return
	}

	if req.Title != nil {
		title := validation.NormalizeTitle(*req.Title)
		req.Title = &title
	}

	patch := models.TodoPatch{Title: req.Title, Completed: req.Completed, Priority: req.Priority}
	if err := validation.ValidatePatch(patch); err != nil {
		badRequest(w, h.logger, err.Error())
		return
	}

	todo, err := h.storage.UpdateTodo(ctx, userID, id, patch, h.now())
	if err != nil {
		if errors.Is(err, storage.ErrTodoNotFound) {
			h.todoNotFound(w, r, id)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update todo", slog.String("todo_id", id), slog.Any("error", err))
		internalError(w, h.logger)
		return
	}

	h.logger.InfoContext(ctx, "todo updated",
		slog.String("user_id", userID),
		slog.String("todo_id", id))

	WriteData(w, h.logger, http.StatusOK, toAPITodo(*todo))
}

// Delete обрабатывает DELETE /todos/{id}
// Мягкое удаление: строка остается для синхронизации
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := GetUserID(ctx)
	if !ok {
		unauthorized(w, h.logger, api.CodeUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.storage.DeleteTodo(ctx, userID, id, h.now()); err != nil {
		if errors.Is(err, storage.ErrTodoNotFound) {
			h.todoNotFound(w, r, id)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete todo", slog.String("todo_id", id), slog.Any("error", err))
		internalError(w, h.logger)
		return
	}

	h.logger.InfoContext(ctx, "todo deleted",
		slog.String("user_id", userID),
		slog.String("todo_id", id))

	WriteData(w, h.logger, http.StatusOK, api.DeleteResponse{Success: true})
}

// ClearCompleted обрабатывает POST /todos/clear-completed
func (h *TodoHandler) ClearCompleted(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := GetUserID(ctx)
	if !ok {
		unauthorized(w, h.logger, api.CodeUnauthorized, "unauthorized")
		return
	}

	n, err := h.storage.DeleteCompletedTodos(ctx, userID, h.now())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to clear completed todos", slog.String("user_id", userID), slog.Any("error", err))
		internalError(w, h.logger)
		return
	}

	h.logger.InfoContext(ctx, "completed todos cleared",
		slog.String("user_id", userID),
		slog.Int("deleted", n))

	WriteData(w, h.logger, http.StatusOK, api.ClearCompletedResponse{Deleted: n})
}

func (h *TodoHandler) todoNotFound(w http.ResponseWriter, r *http.Request, id string) {
	h.logger.WarnContext(r.Context(), "todo not found", slog.String("todo_id", id))
	WriteError(w, h.logger, http.StatusNotFound, api.CodeTodoNotFound, "todo not found")
}
