package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawshop/storefront/internal/core/ports"
)

func TestStore_KeyNamespacing(t *testing.T) {
	assert.Equal(t, "kiosk-1:cart-storage", NewStore(nil, "kiosk-1").key("cart-storage"))
	assert.Equal(t, "cart-storage", NewStore(nil, "").key("cart-storage"))
}

// TestStore_RoundTrip needs a live Redis; set STOREFRONT_TEST_REDIS_ADDR to run it.
func TestStore_RoundTrip(t *testing.T) {
	addr := os.Getenv("STOREFRONT_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("STOREFRONT_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()

	store, closeFn, err := Open(ctx, Config{Addr: addr, Namespace: "storefront-test-" + t.Name()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })

	_, err = store.Load(ctx, "auth-storage")
	require.ErrorIs(t, err, ports.ErrStateNotFound)

	require.NoError(t, store.Save(ctx, "auth-storage", []byte(`{"user":null}`)))
	got, err := store.Load(ctx, "auth-storage")
	require.NoError(t, err)
	assert.JSONEq(t, `{"user":null}`, string(got))

	require.NoError(t, store.Delete(ctx, "auth-storage"))
	_, err = store.Load(ctx, "auth-storage")
	require.ErrorIs(t, err, ports.ErrStateNotFound)
}

func TestOpen_UnreachableServer(t *testing.T) {
	_, _, err := Open(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping 127.0.0.1:1")
}
