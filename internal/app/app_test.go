package app

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawshop/storefront/internal/apitest"
	"github.com/pawshop/storefront/internal/core/domain"
	"github.com/pawshop/storefront/internal/pkg/config"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		API:   config.APIConfig{BaseURL: baseURL, Timeout: 5 * time.Second},
		State: config.StateConfig{Driver: config.StateMemory, Namespace: "test"},
	}
}

func TestApp_StartAnonymousWithoutNetwork(t *testing.T) {
	srv := apitest.Start(t)
	a, err := New(context.Background(), testConfig(srv.BaseURL()), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close(context.Background()) })

	require.NoError(t, a.Start(context.Background()))

	assert.Equal(t, domain.StateAnonymous, a.Session.State())
	assert.Zero(t, srv.Calls("/user"))
}

func TestApp_ShopAndBook(t *testing.T) {
	srv := apitest.Start(t)
	ctx := context.Background()
	a, err := New(ctx, testConfig(srv.BaseURL()), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, a.Start(ctx))

	home, err := a.Catalog.Home(ctx)
	require.NoError(t, err)
	require.Len(t, home.Products, 3)

	a.Cart.AddItem(ctx, home.Products[0], 2)
	a.Cart.AddItem(ctx, home.Products[1], 1)
	assert.Equal(t, home.Products[0].Price*2+home.Products[1].Price, a.Cart.Total())

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	_, err = a.Bookings.Create(ctx, domain.BookingRequest{ServiceID: 1, BookingDate: tomorrow, BookingTime: "10:00"})
	require.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = a.Session.Login(ctx, domain.Credentials{WhatsAppNumber: apitest.CustomerNumber, Password: apitest.CustomerPassword})
	require.NoError(t, err)

	b, err := a.Bookings.Create(ctx, domain.BookingRequest{ServiceID: 1, BookingDate: tomorrow, BookingTime: "10:00"})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.Status)

	_, err = a.Admin.Dashboard(ctx)
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestApp_AdminDashboard(t *testing.T) {
	srv := apitest.Start(t)
	ctx := context.Background()
	a, err := New(ctx, testConfig(srv.BaseURL()), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, a.Start(ctx))

	snap, err := a.Session.Login(ctx, domain.Credentials{WhatsAppNumber: apitest.AdminNumber, Password: apitest.AdminPassword})
	require.NoError(t, err)
	require.True(t, snap.IsAdmin)

	d, err := a.Admin.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Pets)
	assert.Equal(t, 4, d.Products)
	assert.Equal(t, 4, d.Services)
	assert.Zero(t, d.Bookings)

	a.Session.Logout(ctx)
	_, err = a.Admin.Pets(ctx)
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := testConfig("http://localhost:8000/api")
	cfg.State.Driver = "sqlite"

	_, err := New(context.Background(), cfg, zerolog.Nop())
	require.Error(t, err)
}
