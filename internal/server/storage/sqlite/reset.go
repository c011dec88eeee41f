package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/todosync/internal/models"
	"github.com/iudanet/todosync/internal/server/storage"
)

// SaveResetCode stores or replaces the pending code for code.Email
func (s *Storage) SaveResetCode(ctx context.Context, code *models.ResetCode) error {
	query := `
		INSERT INTO reset_codes (email, code_hash, expires_at, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (email) DO UPDATE SET
			code_hash = excluded.code_hash,
			expires_at = excluded.expires_at,
			created_at = excluded.created_at,
			attempts = 0
	`

	_, err := s.db.ExecContext(ctx, query,
		code.Email,
		code.CodeHash,
		toMillis(code.ExpiresAt),
		toMillis(code.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save reset code: %w", err)
	}

	return nil
}

// GetResetCode retrieves the pending code for email
func (s *Storage) GetResetCode(ctx context.Context, email string) (*models.ResetCode, error) {
	query := `SELECT email, code_hash, expires_at, created_at, attempts FROM reset_codes WHERE email = ?`

	code := &models.ResetCode{}
	var expiresAt, createdAt int64

	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&code.Email,
		&code.CodeHash,
		&expiresAt,
		&createdAt,
		&code.Attempts,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrResetCodeNotFound
		}
		return nil, fmt.Errorf("failed to get reset code: %w", err)
	}

	code.ExpiresAt = fromMillis(expiresAt)
	code.CreatedAt = fromMillis(createdAt)

	return code, nil
}

// RecordResetAttempt increments the failed attempt counter for email
func (s *Storage) RecordResetAttempt(ctx context.Context, email string) (int, error) {
	query := `UPDATE reset_codes SET attempts = attempts + 1 WHERE email = ? RETURNING attempts`

	var attempts int
	if err := s.db.QueryRowContext(ctx, query, email).Scan(&attempts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, storage.ErrResetCodeNotFound
		}
		return 0, fmt.Errorf("failed to record reset attempt: %w", err)
	}

	return attempts, nil
}

// DeleteResetCode removes the pending code for email
func (s *Storage) DeleteResetCode(ctx context.Context, email string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reset_codes WHERE email = ?`, email)
	if err != nil {
		return fmt.Errorf("failed to delete reset code: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrResetCodeNotFound
	}

	return nil
}
