package storage

import (
	"context"

	"github.com/iudanet/todosync/internal/models"
)

// ResetCodeStorage defines interface for password reset codes.
// At most one code is pending per email; saving a new one replaces the old.
type ResetCodeStorage interface {
	// SaveResetCode stores or replaces the pending code for code.Email
	SaveResetCode(ctx context.Context, code *models.ResetCode) error

	// GetResetCode retrieves the pending code for email
	// Returns ErrResetCodeNotFound if none is pending
	GetResetCode(ctx context.Context, email string) (*models.ResetCode, error)

	// RecordResetAttempt increments the failed attempt counter for email
	// and returns the new value
	// Returns ErrResetCodeNotFound if none is pending
	RecordResetAttempt(ctx context.Context, email string) (int, error)

	// DeleteResetCode removes the pending code for email
	// Returns ErrResetCodeNotFound if none is pending
	DeleteResetCode(ctx context.Context, email string) error
}
