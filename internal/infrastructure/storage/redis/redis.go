// Package redis keeps the session and cart in Redis so that every client
// process pointed at the same instance (a kiosk fleet, a desktop shell and
// its helper) shares the cached state.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultDialTimeout = 3 * time.Second

// Config captures the settings for establishing a Redis connection.
type Config struct {
	Addr      string
	DB        int
	Namespace string
	Timeout   time.Duration
}

// Open connects, verifies the connection with a ping and returns a Store
// together with the function that releases the client.
func Open(ctx context.Context, cfg Config) (*Store, func() error, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		DB:          cfg.DB,
		DialTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return NewStore(client, cfg.Namespace), client.Close, nil
}
