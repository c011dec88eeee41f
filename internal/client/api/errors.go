package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Классы ошибок клиента; проверяются через errors.Is
var (
	// ErrNotFound запись не найдена или принадлежит другому пользователю
	ErrNotFound = errors.New("not found")

	// ErrValidation сервер отклонил запрос как некорректный
	ErrValidation = errors.New("validation failed")

	// ErrConflict ресурс уже существует (например, email занят)
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized токен отсутствует, истек или неверные учетные данные
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTransient сеть недоступна, 5xx или 429; запрос можно повторить
	ErrTransient = errors.New("transient failure")
)

// Error ошибка, полученная от сервера в конверте ответа
type Error struct {
	Message string
	Status  int
	Code    int
}

func (e *Error) Error() string {
	return fmt.Sprintf("server error (%d, code %d): %s", e.Status, e.Code, e.Message)
}

// Unwrap сопоставляет HTTP статус с классом ошибки
func (e *Error) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized, e.Status == http.StatusForbidden:
		return ErrUnauthorized
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status == http.StatusConflict:
		return ErrConflict
	case e.Status == http.StatusTooManyRequests, e.Status >= 500:
		return ErrTransient
	case e.Status >= 400:
		return ErrValidation
	default:
		return nil
	}
}

// IsTransient сообщает, можно ли повторить запрос позже
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}
