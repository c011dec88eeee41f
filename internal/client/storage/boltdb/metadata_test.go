package boltdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

func TestWatermark_SaveGetClear(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	// Изначально водяного знака нет
	_, ok, err := store.GetWatermark(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	wm := time.Date(2024, 3, 1, 12, 30, 45, 123_456_789, time.FixedZone("X", 2*3600))
	require.NoError(t, store.SaveWatermark(ctx, wm))

	got, ok, err := store.GetWatermark(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	// хранится с точностью до миллисекунд
	assert.True(t, wm.Truncate(time.Millisecond).Equal(got))
	assert.Equal(t, time.UTC, got.Location())

	require.NoError(t, store.ClearWatermark(ctx))
	_, ok, err = store.GetWatermark(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWatermark_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "reopen.db")
	wm := time.UnixMilli(1_700_000_000_000).UTC()

	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.SaveWatermark(ctx, wm))
	require.NoError(t, store.Close())

	store, err = New(ctx, dbPath)
	require.NoError(t, err)
	defer store.Close()

	got, ok, err := store.GetWatermark(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, wm, got)
}

func TestWatermark_Corrupted(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketMetadata).Put(keyWatermark, []byte{1, 2, 3})
	}))

	_, _, err := store.GetWatermark(ctx)
	assert.ErrorContains(t, err, "corrupted watermark")
}

func TestWatermark_BucketMissing(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	deleteBucket(t, store, bucketMetadata)

	_, _, err := store.GetWatermark(ctx)
	assert.ErrorContains(t, err, "metadata bucket not found")

	assert.Error(t, store.SaveWatermark(ctx, time.Now()))
	assert.Error(t, store.ClearWatermark(ctx))
}
