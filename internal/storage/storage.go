package storage

import (
	"context"
	"errors"
)

// Keys for the two persisted records. The whole cart and the whole order
// collection are rewritten on every mutation; there is no append log.
const (
	KeyCart   = "cart"
	KeyOrders = "orders"
)

var (
	ErrNotFound = errors.New("record not found")

	// ErrCorruptRecord marks persisted data that could not be decoded.
	// Stores recover by falling back to an empty state and surface this
	// error so the caller can observe the reset.
	ErrCorruptRecord = errors.New("persisted record is corrupt")
)

// Store is the durable key-value storage backing a session. Implementations
// must never expose partial writes to readers.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
