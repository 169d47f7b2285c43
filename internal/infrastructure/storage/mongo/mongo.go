// Package mongo keeps the session and cart in a MongoDB collection, one
// document per state key.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings required to reach the state database.
type Config struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// Open connects, pings and returns a Store plus a disconnect function.
func Open(ctx context.Context, cfg Config) (*Store, func(context.Context) error, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	store := NewStore(client.Database(cfg.Database), cfg.Collection)
	return store, client.Disconnect, nil
}
