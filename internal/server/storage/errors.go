package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this email already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrTokenNotFound indicates that refresh token was not found
	ErrTokenNotFound = errors.New("refresh token not found")

	// ErrTodoNotFound indicates that todo is absent, owned by another user or deleted
	ErrTodoNotFound = errors.New("todo not found")

	// ErrResetCodeNotFound indicates that no reset code is pending for the email
	ErrResetCodeNotFound = errors.New("reset code not found")
)
