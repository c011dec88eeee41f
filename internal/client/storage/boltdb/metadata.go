package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var keyWatermark = []byte("watermark")

// SaveWatermark saves the watermark as unix milliseconds
func (s *Storage) SaveWatermark(ctx context.Context, watermark time.Time) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		// Конвертируем int64 в bytes
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(watermark.UnixMilli()))

		if err := bucket.Put(keyWatermark, buf); err != nil {
			return fmt.Errorf("failed to save watermark: %w", err)
		}

		return nil
	})
}

// GetWatermark retrieves the watermark
// ok is false if no sync has been performed yet
func (s *Storage) GetWatermark(ctx context.Context) (time.Time, bool, error) {
	var (
		watermark time.Time
		ok        bool
	)

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		buf := bucket.Get(keyWatermark)
		if buf == nil {
			// первая синхронизация
			return nil
		}
		if len(buf) != 8 {
			return fmt.Errorf("corrupted watermark value (%d bytes)", len(buf))
		}

		watermark = time.UnixMilli(int64(binary.BigEndian.Uint64(buf))).UTC()
		ok = true
		return nil
	})

	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to get watermark: %w", err)
	}

	return watermark, ok, nil
}

// ClearWatermark forgets the watermark
func (s *Storage) ClearWatermark(ctx context.Context) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}
		if err := bucket.Delete(keyWatermark); err != nil {
			return fmt.Errorf("failed to clear watermark: %w", err)
		}
		return nil
	})
}
