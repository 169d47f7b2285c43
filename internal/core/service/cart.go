package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pawshop/storefront/internal/core/domain"
	"github.com/pawshop/storefront/internal/core/ports"
	"github.com/pawshop/storefront/internal/infrastructure/metrics"
)

// MaxLineQuantity is the per-line cap product pages apply to their quantity
// picker. The cart itself does not enforce it.
const MaxLineQuantity = 10

// CartSnapshot is what cart observers receive.
type CartSnapshot struct {
	Items     []domain.CartItem
	ItemCount int
	UnitCount int
	Total     float64
}

// Cart keeps the local shopping cart. It never talks to the backend; the
// durable copy in the state store is a cache, not a source of truth.
type Cart struct {
	store ports.StateStore
	log   zerolog.Logger

	// writeMu serialises mutations end to end, persistence and notification
	// included, so the store and observers see changes in the order they were
	// applied. Observers run under it and must not mutate the cart.
	// Taken before mu.
	writeMu sync.Mutex

	mu    sync.Mutex
	items []domain.CartItem

	listeners observers[CartSnapshot]
}

type persistedCart struct {
	Items []domain.CartItem `json:"items"`
}

func NewCart(store ports.StateStore, log zerolog.Logger) *Cart {
	return &Cart{
		store: store,
		log:   log.With().Str("component", "cart").Logger(),
	}
}

// Restore loads the cart saved by a previous run. Lines that violate the
// quantity invariant or repeat a product are dropped or merged on the way in.
func (c *Cart) Restore(ctx context.Context) error {
	var pc persistedCart
	if _, err := loadJSON(ctx, c.store, CartStateKey, &pc); err != nil {
		return fmt.Errorf("restore cart: %w", err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	restored := make([]domain.CartItem, 0, len(pc.Items))
	for _, it := range pc.Items {
		if it.Quantity < 1 {
			continue
		}
		if i := indexOf(restored, it.Product.ID); i >= 0 {
			restored[i].Quantity += it.Quantity
			continue
		}
		restored = append(restored, it)
	}

	c.mu.Lock()
	c.items = restored
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.listeners.notify(snap)
	return nil
}

// AddItem puts quantity units of product in the cart. A product already in
// the cart gets its line incremented rather than a second line. Quantities
// below 1 count as 1.
func (c *Cart) AddItem(ctx context.Context, product domain.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.Lock()
	if i := indexOf(c.items, product.ID); i >= 0 {
		c.items[i].Quantity += quantity
	} else {
		c.items = append(c.items, domain.CartItem{Product: product, Quantity: quantity})
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.commit(ctx, "add", snap)
}

// UpdateQuantity sets the quantity of an existing line. Quantities below 1
// are rejected with a validation error and change nothing; RemoveItem is the
// only way to drop a line. Unknown products are ignored.
func (c *Cart) UpdateQuantity(ctx context.Context, productID int64, quantity int) error {
	if quantity < 1 {
		return domain.NewValidationError(map[string]string{
			"quantity": "quantity must be at least 1",
		})
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.Lock()
	i := indexOf(c.items, productID)
	if i < 0 {
		c.mu.Unlock()
		return nil
	}
	c.items[i].Quantity = quantity
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.commit(ctx, "update", snap)
	return nil
}

// RemoveItem drops the line for productID, if any.
func (c *Cart) RemoveItem(ctx context.Context, productID int64) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.Lock()
	i := indexOf(c.items, productID)
	if i < 0 {
		c.mu.Unlock()
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.commit(ctx, "remove", snap)
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.Lock()
	c.items = nil
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.commit(ctx, "clear", snap)
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.CartItem(nil), c.items...)
}

// ItemCount is the number of distinct lines, not units.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// UnitCount is the sum of quantities across lines.
func (c *Cart) UnitCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return unitCount(c.items)
}

// Total is Σ price × quantity, recomputed on every call.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return total(c.items)
}

// Snapshot returns items and every derived value from one consistent read.
func (c *Cart) Snapshot() CartSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers fn to be called after every change, in order. fn may
// read the cart but must not change it.
func (c *Cart) Subscribe(fn func(CartSnapshot)) func() {
	return c.listeners.add(fn)
}

func (c *Cart) snapshotLocked() CartSnapshot {
	items := append([]domain.CartItem(nil), c.items...)
	return CartSnapshot{
		Items:     items,
		ItemCount: len(items),
		UnitCount: unitCount(items),
		Total:     total(items),
	}
}

// commit persists the new cart and notifies observers. The caller holds
// writeMu. A failed write is logged: the in-memory cart stays correct and the
// next mutation retries.
func (c *Cart) commit(ctx context.Context, op string, snap CartSnapshot) {
	if err := saveJSON(ctx, c.store, CartStateKey, persistedCart{Items: snap.Items}); err != nil {
		c.log.Warn().Err(err).Str("op", op).Msg("failed to persist cart")
	}
	metrics.CartMutationsTotal.WithLabelValues(op).Inc()
	c.log.Debug().Str("op", op).Int("lines", snap.ItemCount).Float64("total", snap.Total).Msg("cart changed")
	c.listeners.notify(snap)
}

func indexOf(items []domain.CartItem, productID int64) int {
	for i := range items {
		if items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

func unitCount(items []domain.CartItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func total(items []domain.CartItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Subtotal()
	}
	return sum
}
