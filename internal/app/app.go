// Package app wires the storefront client together: state store, REST
// client, session, cart and the page services a UI layer drives.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pawshop/storefront/internal/core/ports"
	"github.com/pawshop/storefront/internal/core/service"
	"github.com/pawshop/storefront/internal/infrastructure/api"
	"github.com/pawshop/storefront/internal/infrastructure/storage/memory"
	"github.com/pawshop/storefront/internal/infrastructure/storage/mongo"
	"github.com/pawshop/storefront/internal/infrastructure/storage/redis"
	"github.com/pawshop/storefront/internal/pkg/config"
	"github.com/pawshop/storefront/internal/validation"
)

// App is the process-wide set of stores. Build one with New and call Start
// before handing it to the UI.
type App struct {
	Session  *service.SessionManager
	Cart     *service.Cart
	Catalog  *service.CatalogService
	Bookings *service.BookingService
	Admin    *service.AdminService

	log     zerolog.Logger
	closers []func(context.Context) error
}

// New builds the object graph from cfg. The returned App owns the state
// store connection; release it with Close.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{log: log}

	store, err := a.openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cred := service.NewCredential()
	client, err := api.NewClient(api.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout}, cred, log)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	v := validation.New()
	a.Session = service.NewSessionManager(client, store, cred, v, log)
	a.Cart = service.NewCart(store, log)
	a.Catalog = service.NewCatalogService(client, log)
	a.Bookings = service.NewBookingService(client, a.Session, v, log)
	a.Admin = service.NewAdminService(client, a.Session, v, log)
	return a, nil
}

// Start restores durable state and verifies the session once. Restore
// failures are logged rather than fatal: a broken cache must not keep the
// shop from opening.
func (a *App) Start(ctx context.Context) error {
	if err := a.Session.Restore(ctx); err != nil {
		a.log.Warn().Err(err).Msg("could not restore session, starting signed out")
	}
	if err := a.Cart.Restore(ctx); err != nil {
		a.log.Warn().Err(err).Msg("could not restore cart, starting empty")
	}
	if err := a.Session.CheckAuth(ctx); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	return nil
}

// Close releases the state store connection.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i](ctx))
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) openStore(ctx context.Context, cfg *config.Config) (ports.StateStore, error) {
	switch cfg.State.Driver {
	case config.StateMemory:
		return memory.NewStore(), nil

	case config.StateRedis:
		store, closeFn, err := redis.Open(ctx, redis.Config{
			Addr:      cfg.Redis.Addr,
			DB:        cfg.Redis.DB,
			Namespace: cfg.State.Namespace,
		})
		if err != nil {
			return nil, fmt.Errorf("open state store: %w", err)
		}
		a.closers = append(a.closers, func(context.Context) error { return closeFn() })
		a.log.Info().Str("addr", cfg.Redis.Addr).Msg("state store: redis")
		return store, nil

	case config.StateMongo:
		store, disconnect, err := mongo.Open(ctx, mongo.Config{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.State.Namespace,
		})
		if err != nil {
			return nil, fmt.Errorf("open state store: %w", err)
		}
		a.closers = append(a.closers, disconnect)
		a.log.Info().Str("database", cfg.Mongo.Database).Msg("state store: mongo")
		return store, nil

	default:
		return nil, fmt.Errorf("open state store: unknown driver %q", cfg.State.Driver)
	}
}
