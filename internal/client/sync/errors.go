package sync

import (
	"errors"
	"fmt"

	"github.com/iudanet/todosync/internal/client/api"
	"github.com/iudanet/todosync/internal/client/storage"
)

// ErrSyncInFlight возвращается, если раунд синхронизации уже выполняется;
// такой запуск отбрасывается, а не ставится в очередь
var ErrSyncInFlight = errors.New("sync already in flight")

// ErrAlreadyStarted повторный Start без Stop
var ErrAlreadyStarted = errors.New("sync scheduler already started")

// ErrorKind классифицирует неудачный раунд
type ErrorKind string

const (
	// KindTransient сеть, 5xx, 429 и прочие ошибки, которые исправит следующий раунд
	KindTransient ErrorKind = "transient"
	// KindAuth сессия недействительна, требуется повторный вход
	KindAuth ErrorKind = "auth"
)

// SyncError описывает неудачный раунд синхронизации
type SyncError struct {
	Err    error
	Kind   ErrorKind
	Reason Reason
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync (%s) failed with %s error: %v", e.Reason, e.Kind, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// IsAuth сообщает, что раунд провалился из-за авторизации
func (e *SyncError) IsAuth() bool {
	return e.Kind == KindAuth
}

func classify(err error) ErrorKind {
	if errors.Is(err, api.ErrUnauthorized) || errors.Is(err, storage.ErrAuthNotFound) {
		return KindAuth
	}
	return KindTransient
}
