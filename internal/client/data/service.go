package data

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/iudanet/todosync/internal/client/reconciler"
	"github.com/iudanet/todosync/internal/client/storage"
	clientsync "github.com/iudanet/todosync/internal/client/sync"
	"github.com/iudanet/todosync/internal/models"
	"github.com/iudanet/todosync/internal/validation"
)

var (
	// ErrNotFound задача отсутствует в локальном представлении
	ErrNotFound = errors.New("todo not found")

	// ErrAmbiguous префикс ID подходит к нескольким задачам
	ErrAmbiguous = errors.New("todo id prefix is ambiguous")
)

//go:generate moq -out api_mock.go . TodoAPI Syncer

// TodoAPI серверные операции изменения задач
type TodoAPI interface {
	CreateTodo(ctx context.Context, accessToken, title string, priority int) (*models.Todo, error)
	UpdateTodo(ctx context.Context, accessToken, id string, patch models.TodoPatch) (*models.Todo, error)
	DeleteTodo(ctx context.Context, accessToken, id string) error
	ClearCompleted(ctx context.Context, accessToken string) (int, error)
}

// Syncer запускает внеочередной раунд синхронизации
type Syncer interface {
	Trigger(reason clientsync.Reason)
}

// Service определяет операции над задачами на клиенте.
// Изменения сразу видны в локальном представлении и отправляются на сервер;
// после каждого изменения запускается синхронизация
type Service interface {
	List() []reconciler.TodoView
	Resolve(idOrPrefix string) (reconciler.TodoView, error)
	Add(ctx context.Context, title string, priority int) (reconciler.TodoView, error)
	Edit(ctx context.Context, id string, patch models.TodoPatch) (reconciler.TodoView, error)
	Toggle(ctx context.Context, id string) (reconciler.TodoView, error)
	SetPriority(ctx context.Context, id string, priority int) (reconciler.TodoView, error)
	Remove(ctx context.Context, id string) error
	ClearCompleted(ctx context.Context) (int, error)
}

// service handles client-side todo operations
type service struct {
	api    TodoAPI
	tokens clientsync.TokenSource
	view   *reconciler.Reconciler
	cache  storage.TodoCacheStorage
	syncer Syncer
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new data service
func NewService(
	api TodoAPI,
	tokens clientsync.TokenSource,
	view *reconciler.Reconciler,
	cache storage.TodoCacheStorage,
	syncer Syncer,
	logger *slog.Logger,
) Service {
	return &service{
		api:    api,
		tokens: tokens,
		view:   view,
		cache:  cache,
		syncer: syncer,
		logger: logger,
		now:    time.Now,
	}
}

// List возвращает задачи в порядке отображения
func (s *service) List() []reconciler.TodoView {
	return s.view.List()
}

// Resolve находит задачу по полному ID или однозначному префиксу
func (s *service) Resolve(idOrPrefix string) (reconciler.TodoView, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return reconciler.TodoView{}, fmt.Errorf("%w: empty id", ErrNotFound)
	}

	if v, ok := s.view.Get(idOrPrefix); ok {
		return v, nil
	}

	var matches []reconciler.TodoView
	for _, v := range s.view.List() {
		if strings.HasPrefix(v.ID, idOrPrefix) {
			matches = append(matches, v)
		}
	}

	switch len(matches) {
	case 0:
		return reconciler.TodoView{}, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return reconciler.TodoView{}, fmt.Errorf("%w: %s matches %d todos", ErrAmbiguous, idOrPrefix, len(matches))
	}
}

// Add создает задачу на сервере и добавляет ее в локальное представление.
// priority 0 означает приоритет по умолчанию
func (s *service) Add(ctx context.Context, title string, priority int) (reconciler.TodoView, error) {
	title = strings.TrimSpace(title)
	if err := validation.ValidateTitle(title); err != nil {
		return reconciler.TodoView{}, fmt.Errorf("invalid title: %w", err)
	}
	if priority != 0 {
		if err := validation.ValidatePriority(priority); err != nil {
			return reconciler.TodoView{}, fmt.Errorf("invalid priority: %w", err)
		}
	}

	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		return reconciler.TodoView{}, err
	}

	// ID выдает сервер, поэтому создание не оптимистичное
	created, err := s.api.CreateTodo(ctx, token, title, priority)
	if err != nil {
		return reconciler.TodoView{}, fmt.Errorf("failed to create todo: %w", err)
	}

	v := reconciler.ViewOf(*created)
	s.view.Upsert(v)
	s.mutated(ctx, "created", v.ID)
	return v, nil
}

// Edit применяет частичное изменение сначала локально, затем на сервере.
// При ошибке сервера локальное изменение не откатывается
func (s *service) Edit(ctx context.Context, id string, patch models.TodoPatch) (reconciler.TodoView, error) {
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		patch.Title = &trimmed
	}
	if err := validation.ValidatePatch(patch); err != nil {
		return reconciler.TodoView{}, fmt.Errorf("invalid update: %w", err)
	}

	current, err := s.Resolve(id)
	if err != nil {
		return reconciler.TodoView{}, err
	}

	local, ok := s.view.Patch(current.ID, patch, s.now())
	if !ok {
		return reconciler.TodoView{}, fmt.Errorf("%w: %s", ErrNotFound, current.ID)
	}
	s.persist(ctx)

	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		return local, err
	}

	updated, err := s.api.UpdateTodo(ctx, token, current.ID, patch)
	if err != nil {
		return local, fmt.Errorf("failed to update todo: %w", err)
	}

	v := reconciler.ViewOf(*updated)
	s.view.Upsert(v)
	s.mutated(ctx, "updated", v.ID)
	return v, nil
}

// Toggle переключает отметку о выполнении
func (s *service) Toggle(ctx context.Context, id string) (reconciler.TodoView, error) {
	current, err := s.Resolve(id)
	if err != nil {
		return reconciler.TodoView{}, err
	}
	completed := !current.Completed
	return s.Edit(ctx, current.ID, models.TodoPatch{Completed: &completed})
}

// SetPriority меняет приоритет задачи
func (s *service) SetPriority(ctx context.Context, id string, priority int) (reconciler.TodoView, error) {
	return s.Edit(ctx, id, models.TodoPatch{Priority: &priority})
}

// Remove удаляет задачу локально и на сервере
func (s *service) Remove(ctx context.Context, id string) error {
	current, err := s.Resolve(id)
	if err != nil {
		return err
	}

	s.view.Remove(current.ID)
	s.persist(ctx)

	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		return err
	}

	if err := s.api.DeleteTodo(ctx, token, current.ID); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	s.mutated(ctx, "deleted", current.ID)
	return nil
}

// ClearCompleted удаляет все выполненные задачи и возвращает число
// задач, удаленных на сервере
func (s *service) ClearCompleted(ctx context.Context) (int, error) {
	removed := s.view.RemoveWhere(func(v reconciler.TodoView) bool { return v.Completed })
	if len(removed) > 0 {
		s.persist(ctx)
	}

	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		return 0, err
	}

	n, err := s.api.ClearCompleted(ctx, token)
	if err != nil {
		return 0, fmt.Errorf("failed to clear completed todos: %w", err)
	}

	s.mutated(ctx, "cleared", fmt.Sprintf("%d", n))
	return n, nil
}

func (s *service) mutated(ctx context.Context, op, id string) {
	s.persist(ctx)
	s.logger.Debug("Todo "+op, slog.String("id", id))
	s.syncer.Trigger(clientsync.ReasonLocalMutation)
}

func (s *service) persist(ctx context.Context) {
	if err := s.cache.SaveTodos(ctx, s.view.List()); err != nil {
		s.logger.Warn("Failed to persist todo snapshot", slog.Any("error", err))
	}
}
