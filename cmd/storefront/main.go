// Command storefront boots the storefront client against the configured
// backend, restores the cached session and cart, and reports what it found.
// UI front ends embed internal/app the same way.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pawshop/storefront/internal/app"
	"github.com/pawshop/storefront/internal/pkg/config"
	"github.com/pawshop/storefront/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx))
}

func run(ctx context.Context) int {
	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		l := logger.Get()
		l.Error().Err(err).Msg("invalid configuration")
		return 1
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	log.Info().
		Str("env", cfg.Env).
		Str("api", cfg.API.BaseURL).
		Str("state_driver", cfg.State.Driver).
		Msg("starting storefront")

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to build application")
		return 1
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := a.Close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("failed to close state store")
		}
	}()

	if err := a.Start(ctx); err != nil {
		log.Error().Err(err).Msg("startup interrupted")
		return 1
	}

	session := a.Session.Snapshot()
	ev := log.Info().Str("state", string(session.State()))
	if session.User != nil {
		ev = ev.Int64("user_id", session.User.ID).Str("role", string(session.User.Role))
	}
	ev.Msg("session ready")

	cart := a.Cart.Snapshot()
	log.Info().
		Int("lines", cart.ItemCount).
		Int("units", cart.UnitCount).
		Float64("total", cart.Total).
		Msg("cart ready")

	home, err := a.Catalog.Home(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("home page unavailable")
		return 0
	}
	log.Info().
		Int("pets", len(home.Pets)).
		Int("products", len(home.Products)).
		Int("services", len(home.Services)).
		Msg("catalogue reachable")
	return 0
}
