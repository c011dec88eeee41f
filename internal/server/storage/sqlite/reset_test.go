package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/todosync/internal/models"
	"github.com/iudanet/todosync/internal/server/storage"
)

func TestResetCodeStorage(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	now := time.Now()

	_, err := s.GetResetCode(ctx, "a@example.com")
	require.ErrorIs(t, err, storage.ErrResetCodeNotFound)

	first := &models.ResetCode{Email: "a@example.com", CodeHash: "h1", CreatedAt: now, ExpiresAt: now.Add(10 * time.Minute)}
	require.NoError(t, s.SaveResetCode(ctx, first))

	// Повторная отправка кода заменяет предыдущий
	second := &models.ResetCode{Email: "a@example.com", CodeHash: "h2", CreatedAt: now, ExpiresAt: now.Add(20 * time.Minute)}
	require.NoError(t, s.SaveResetCode(ctx, second))

	got, err := s.GetResetCode(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "h2", got.CodeHash)
	assert.Equal(t, second.ExpiresAt.UnixMilli(), got.ExpiresAt.UnixMilli())

	require.NoError(t, s.DeleteResetCode(ctx, "a@example.com"))
	assert.ErrorIs(t, s.DeleteResetCode(ctx, "a@example.com"), storage.ErrResetCodeNotFound)
}

func TestResetCodeStorage_RecordResetAttempt(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, err := s.RecordResetAttempt(ctx, "b@example.com")
	require.ErrorIs(t, err, storage.ErrResetCodeNotFound)

	now := time.Now()
	code := &models.ResetCode{Email: "b@example.com", CodeHash: "h1", CreatedAt: now, ExpiresAt: now.Add(10 * time.Minute)}
	require.NoError(t, s.SaveResetCode(ctx, code))

	for want := 1; want <= 3; want++ {
		n, err := s.RecordResetAttempt(ctx, "b@example.com")
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	got, err := s.GetResetCode(ctx, "b@example.com")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Attempts)

	// Новый код сбрасывает счетчик
	require.NoError(t, s.SaveResetCode(ctx, code))
	got, err = s.GetResetCode(ctx, "b@example.com")
	require.NoError(t, err)
	assert.Zero(t, got.Attempts)
}
