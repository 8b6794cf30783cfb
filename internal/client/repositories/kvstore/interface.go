package kvstore

import (
	"context"
)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// UpdateFunc receives the current value (nil when absent or empty) and returns the
// full replacement value. Returning an error aborts the update.
type UpdateFunc func(current []byte) ([]byte, error)

// Updater is implemented by stores that can apply an UpdateFunc atomically
// with respect to other writers of the same key.
type Updater interface {
	Update(ctx context.Context, key string, fn UpdateFunc) error
}
