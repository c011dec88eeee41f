package boltdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"
	bolterrors "go.etcd.io/bbolt/errors"

	"github.com/iudanet/todosync/internal/client/reconciler"
)

// SaveTodos replaces the cached snapshot in one transaction
func (s *Storage) SaveTodos(ctx context.Context, todos []reconciler.TodoView) error {
	return s.update(func(tx *bbolt.Tx) error {
		// Пересоздаем bucket: снимок заменяется целиком
		if err := tx.DeleteBucket(bucketTodos); err != nil && !errors.Is(err, bolterrors.ErrBucketNotFound) {
			return fmt.Errorf("failed to drop todos bucket: %w", err)
		}
		bucket, err := tx.CreateBucket(bucketTodos)
		if err != nil {
			return fmt.Errorf("failed to create todos bucket: %w", err)
		}

		for _, t := range todos {
			data, err := json.Marshal(t)
			if err != nil {
				return fmt.Errorf("failed to marshal todo %s: %w", t.ID, err)
			}
			if err := bucket.Put([]byte(t.ID), data); err != nil {
				return fmt.Errorf("failed to save todo %s: %w", t.ID, err)
			}
		}

		return nil
	})
}

// LoadTodos returns the cached snapshot in key order
func (s *Storage) LoadTodos(ctx context.Context) ([]reconciler.TodoView, error) {
	todos := []reconciler.TodoView{}

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketTodos)
		if bucket == nil {
			return fmt.Errorf("todos bucket not found")
		}

		return bucket.ForEach(func(k, v []byte) error {
			var t reconciler.TodoView
			if err := json.Unmarshal(v, &t); err != nil {
				return fmt.Errorf("failed to unmarshal todo %s: %w", k, err)
			}
			todos = append(todos, t)
			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	return todos, nil
}

// ClearTodos drops the cached snapshot
func (s *Storage) ClearTodos(ctx context.Context) error {
	return s.SaveTodos(ctx, nil)
}
