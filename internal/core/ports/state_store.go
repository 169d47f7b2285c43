package ports

import (
	"context"
	"errors"
)

// ErrStateNotFound is returned by StateStore.Load when nothing is stored
// under the key.
var ErrStateNotFound = errors.New("state: key not found")

// StateStore is the durable client-side key/value store the session and
// cart survive restarts in. Values are opaque bytes (JSON in practice).
type StateStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
