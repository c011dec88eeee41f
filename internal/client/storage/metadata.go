package storage

import (
	"context"
	"time"
)

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing client sync metadata
type MetadataStorage interface {
	// SaveWatermark saves the client time captured before the last
	// successful sync request
	SaveWatermark(ctx context.Context, watermark time.Time) error

	// GetWatermark retrieves the watermark
	// ok is false if no sync has been performed yet
	GetWatermark(ctx context.Context) (watermark time.Time, ok bool, err error)

	// ClearWatermark forgets the watermark so the next round is a full fetch
	ClearWatermark(ctx context.Context) error
}
