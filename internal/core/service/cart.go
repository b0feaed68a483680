package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/shopspring/decimal"
)

// A Cart is the cart view.
//
// The displayed cart is always the result of the last applied server read:
// every successful mutation is followed by a full reload and nothing is
// patched locally.
type Cart struct {
	api  port.CartAPI
	busy *Inflight

	issued atomic.Uint64

	mu      sync.RWMutex
	applied uint64
	cart    *domain.Cart
	notice  string
}

func NewCart(api port.CartAPI) *Cart {
	return &Cart{api: api, busy: NewInflight()}
}

// Load fetches the cart. On failure the cart is treated as absent.
//
// A response is dropped when a reload issued later has already been applied.
func (c *Cart) Load(ctx context.Context) error {
	const op = "Cart.Load"
	log := slog.With("op", op)

	seq := c.issued.Add(1)
	cart, err := c.api.GetCart(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq < c.applied {
		log.Debug("stale cart response dropped", "seq", seq, "applied", c.applied)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	}
	c.applied = seq

	if err != nil {
		c.cart = nil
		c.notice = cartLoadFailureMessage(err)
		log.Warn("failed to load cart", "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}

	c.cart = &cart
	c.notice = ""
	return nil
}

func cartLoadFailureMessage(err error) string {
	if domain.IsUnauthorized(err) {
		return MsgCartUnauthorized
	}
	return MsgCartLoadFailed
}

// UpdateQuantity sets the item quantity, deleting the item when quantity
// is not positive, and reloads the cart.
func (c *Cart) UpdateQuantity(ctx context.Context, itemID int64, quantity int) error {
	const op = "Cart.UpdateQuantity"

	if quantity <= 0 {
		return c.mutate(ctx, op, itemID, MsgUpdateFailed, func() error {
			return c.api.DeleteItem(ctx, itemID)
		})
	}
	return c.mutate(ctx, op, itemID, MsgUpdateFailed, func() error {
		return c.api.UpdateItem(ctx, itemID, quantity)
	})
}

// Remove deletes the item and reloads the cart.
func (c *Cart) Remove(ctx context.Context, itemID int64) error {
	const op = "Cart.Remove"
	return c.mutate(ctx, op, itemID, MsgRemoveFailed, func() error {
		return c.api.DeleteItem(ctx, itemID)
	})
}

// Increase adds one unit to the displayed quantity of the item.
func (c *Cart) Increase(ctx context.Context, itemID int64) error {
	return c.step(ctx, "Cart.Increase", itemID, 1)
}

// Decrease removes one unit from the displayed quantity of the item.
// The item is deleted when the quantity drops to zero.
func (c *Cart) Decrease(ctx context.Context, itemID int64) error {
	return c.step(ctx, "Cart.Decrease", itemID, -1)
}

func (c *Cart) step(ctx context.Context, op string, itemID int64, delta int) error {
	it, ok := c.item(itemID)
	if !ok {
		return fmt.Errorf("%s: item %d: %w", op, itemID, domain.ErrNotLoaded)
	}
	if err := c.UpdateQuantity(ctx, itemID, it.Quantity+delta); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Cart) mutate(
	ctx context.Context, op string, itemID int64, fallback string, call func() error,
) error {
	log := slog.With("op", op, "itemID", itemID)

	if !c.busy.TryAcquire(itemID) {
		return fmt.Errorf("%s: %w", op, domain.ErrBusy)
	}
	defer c.busy.Release(itemID)

	c.setNotice("")

	if err := call(); err != nil {
		c.setNotice(detailOr(err, fallback))
		log.Warn("mutation failed", "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := c.Load(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IsBusy reports whether the quantity and remove controls of the item are
// disabled.
func (c *Cart) IsBusy(itemID int64) bool {
	return c.busy.Locked(itemID)
}

// Cart returns the displayed cart. The second value is false when the cart
// is absent (not loaded or failed to load).
func (c *Cart) Cart() (domain.Cart, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cart == nil {
		return domain.Cart{}, false
	}
	cart := *c.cart
	cart.Items = slices.Clone(cart.Items)
	return cart, true
}

func (c *Cart) Items() []domain.CartItem {
	cart, _ := c.Cart()
	return cart.Items
}

func (c *Cart) Subtotal() decimal.Decimal {
	cart, _ := c.Cart()
	return cart.Subtotal()
}

func (c *Cart) Shipping() decimal.Decimal {
	cart, _ := c.Cart()
	return cart.Shipping()
}

func (c *Cart) Total() decimal.Decimal {
	cart, _ := c.Cart()
	return cart.Total()
}

func (c *Cart) Notice() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.notice
}

func (c *Cart) setNotice(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notice = s
}

func (c *Cart) item(itemID int64) (domain.CartItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cart == nil {
		return domain.CartItem{}, false
	}
	return c.cart.Item(itemID)
}
