package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pawshop/storefront/internal/core/ports"
)

// Store persists client state in Redis without expiry.
// Key format: <namespace>:<key>, e.g. storefront:cart-storage
type Store struct {
	client    *redis.Client
	namespace string
}

// NewStore wraps the given Redis client. namespace separates several
// storefront installations sharing one Redis.
func NewStore(client *redis.Client, namespace string) *Store {
	return &Store{client: client, namespace: namespace}
}

func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrStateNotFound
		}
		return nil, fmt.Errorf("redis state load %s: %w", key, err)
	}
	return v, nil
}

func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis state save %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis state delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) key(key string) string {
	if s.namespace == "" {
		return key
	}
	return s.namespace + ":" + key
}
