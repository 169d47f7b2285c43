package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pawshop/storefront/internal/core/ports"
	"github.com/pawshop/storefront/internal/infrastructure/metrics"
)

// Durable state keys. They are part of the on-disk contract: renaming one
// orphans whatever earlier versions stored.
const (
	SessionStateKey = "auth-storage"
	TokenStateKey   = "auth-token"
	CartStateKey    = "cart-storage"
)

// loadJSON decodes the value under key into v. found is false when nothing
// is stored.
func loadJSON(ctx context.Context, store ports.StateStore, key string, v any) (found bool, err error) {
	raw, err := store.Load(ctx, key)
	if err != nil {
		if errors.Is(err, ports.ErrStateNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func saveJSON(ctx context.Context, store ports.StateStore, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Save(ctx, key, raw); err != nil {
		metrics.StatePersistErrorsTotal.WithLabelValues(key).Inc()
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func deleteKey(ctx context.Context, store ports.StateStore, key string) error {
	if err := store.Delete(ctx, key); err != nil {
		metrics.StatePersistErrorsTotal.WithLabelValues(key).Inc()
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
