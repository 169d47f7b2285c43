package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawshop/storefront/internal/core/domain"
	"github.com/pawshop/storefront/internal/infrastructure/storage/memory"
)

var (
	catFood = domain.Product{ID: 1, Name: "Cat Food", Price: 50000}
	dogToy  = domain.Product{ID: 2, Name: "Dog Toy", Price: 10000}
)

// failingStore rejects every write.
type failingStore struct{ *memory.Store }

func (failingStore) Save(context.Context, string, []byte) error { return errors.New("disk full") }

// gatedStore holds the first Save until release is closed.
type gatedStore struct {
	*memory.Store
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedStore() *gatedStore {
	return &gatedStore{Store: memory.NewStore(), entered: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedStore) Save(ctx context.Context, key string, value []byte) error {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		<-g.release
	}
	return g.Store.Save(ctx, key, value)
}

func newTestCart(t *testing.T) (*Cart, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return NewCart(store, zerolog.Nop()), store
}

func TestCart_TotalAndCounts(t *testing.T) {
	cart, _ := newTestCart(t)
	ctx := context.Background()

	cart.AddItem(ctx, catFood, 2)
	cart.AddItem(ctx, dogToy, 2)

	assert.Equal(t, 120000.0, cart.Total())
	assert.Equal(t, 2, cart.ItemCount())
	assert.Equal(t, 4, cart.UnitCount())
}

func TestCart_AddMergesByProduct(t *testing.T) {
	cart, _ := newTestCart(t)
	ctx := context.Background()

	cart.AddItem(ctx, catFood, 2)
	cart.AddItem(ctx, catFood, 3)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestCart_AddBelowOneCountsAsOne(t *testing.T) {
	cart, _ := newTestCart(t)

	cart.AddItem(context.Background(), dogToy, 0)

	require.Len(t, cart.Items(), 1)
	assert.Equal(t, 1, cart.Items()[0].Quantity)
}

func TestCart_UpdateQuantityBelowOneChangesNothing(t *testing.T) {
	cart, _ := newTestCart(t)
	ctx := context.Background()
	cart.AddItem(ctx, catFood, 3)

	for _, q := range []int{0, -1} {
		err := cart.UpdateQuantity(ctx, catFood.ID, q)
		require.ErrorIs(t, err, domain.ErrValidation)
	}

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestCart_UpdateAndRemove(t *testing.T) {
	cart, _ := newTestCart(t)
	ctx := context.Background()
	cart.AddItem(ctx, catFood, 1)
	cart.AddItem(ctx, dogToy, 1)

	require.NoError(t, cart.UpdateQuantity(ctx, dogToy.ID, 4))
	require.NoError(t, cart.UpdateQuantity(ctx, 99, 4))
	cart.RemoveItem(ctx, catFood.ID)
	cart.RemoveItem(ctx, 99)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, dogToy.ID, items[0].Product.ID)
	assert.Equal(t, 40000.0, cart.Total())
}

func TestCart_TotalMatchesLines(t *testing.T) {
	cart, _ := newTestCart(t)
	ctx := context.Background()
	cart.AddItem(ctx, catFood, 3)
	cart.AddItem(ctx, dogToy, 7)
	require.NoError(t, cart.UpdateQuantity(ctx, catFood.ID, 1))

	snap := cart.Snapshot()
	var want float64
	for _, it := range snap.Items {
		want += it.Product.Price * float64(it.Quantity)
	}
	assert.Equal(t, want, snap.Total)
	assert.Equal(t, cart.Total(), snap.Total)
}

func TestCart_ClearEmptiesEverything(t *testing.T) {
	cart, _ := newTestCart(t)
	ctx := context.Background()
	cart.AddItem(ctx, catFood, 2)

	cart.Clear(ctx)

	assert.Empty(t, cart.Items())
	assert.Zero(t, cart.Total())
	assert.Zero(t, cart.ItemCount())
}

func TestCart_SurvivesRestart(t *testing.T) {
	first, store := newTestCart(t)
	ctx := context.Background()
	first.AddItem(ctx, catFood, 2)
	first.AddItem(ctx, dogToy, 1)

	second := NewCart(store, zerolog.Nop())
	require.NoError(t, second.Restore(ctx))

	assert.Equal(t, first.Items(), second.Items())
	assert.Equal(t, 110000.0, second.Total())
}

func TestCart_RestoreRepairsBadLines(t *testing.T) {
	store := memory.NewStore()
	seedState(t, store, CartStateKey, persistedCart{Items: []domain.CartItem{
		{Product: catFood, Quantity: 1},
		{Product: dogToy, Quantity: 0},
		{Product: catFood, Quantity: 2},
	}})
	cart := NewCart(store, zerolog.Nop())

	require.NoError(t, cart.Restore(context.Background()))

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestCart_PersistFailureKeepsLocalState(t *testing.T) {
	cart := NewCart(failingStore{memory.NewStore()}, zerolog.Nop())

	cart.AddItem(context.Background(), catFood, 2)

	assert.Equal(t, 100000.0, cart.Total())
}

func TestCart_SubscribeSeesEveryChange(t *testing.T) {
	cart, _ := newTestCart(t)
	ctx := context.Background()

	var totals []float64
	stop := cart.Subscribe(func(s CartSnapshot) { totals = append(totals, s.Total) })

	cart.AddItem(ctx, catFood, 1)
	cart.AddItem(ctx, dogToy, 1)
	stop()
	cart.Clear(ctx)

	assert.Equal(t, []float64{50000, 60000}, totals)
}

func TestCart_OverlappingMutationsPersistInOrder(t *testing.T) {
	store := newGatedStore()
	cart := NewCart(store, zerolog.Nop())
	ctx := context.Background()

	var mu sync.Mutex
	var lines []int
	cart.Subscribe(func(s CartSnapshot) {
		mu.Lock()
		defer mu.Unlock()
		lines = append(lines, s.ItemCount)
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		cart.AddItem(ctx, catFood, 1)
	}()
	<-store.entered
	go func() {
		defer wg.Done()
		cart.AddItem(ctx, dogToy, 1)
	}()
	// Let the second mutation reach the cart while the first write is held.
	time.Sleep(20 * time.Millisecond)
	close(store.release)
	wg.Wait()

	raw, err := store.Load(ctx, CartStateKey)
	require.NoError(t, err)
	var saved persistedCart
	require.NoError(t, json.Unmarshal(raw, &saved))

	assert.Len(t, saved.Items, 2)
	assert.Equal(t, cart.ItemCount(), len(saved.Items))
	assert.Equal(t, []int{1, 2}, lines)
}
