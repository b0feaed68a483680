package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

type CheckoutState int

const (
	CheckoutIdle CheckoutState = iota
	CheckoutSubmitting
	CheckoutPlaced
)

func (s CheckoutState) String() string {
	switch s {
	case CheckoutIdle:
		return "idle"
	case CheckoutSubmitting:
		return "submitting"
	case CheckoutPlaced:
		return "placed"
	}
	return fmt.Sprintf("CheckoutState(%d)", int(s))
}

// A Checkout submits the delivery form as a single order creation request.
//
// The form is not validated locally: the server rejects missing fields,
// empty carts and unauthenticated requests.
type Checkout struct {
	api  port.OrderAPI
	opts options

	mu           sync.RWMutex
	state        CheckoutState
	notice       string
	confirmation string
	order        domain.Order
}

func NewCheckout(api port.OrderAPI, opts ...Opt) *Checkout {
	return &Checkout{api: api, opts: newOptions(opts)}
}

func (c *Checkout) PlaceOrder(
	ctx context.Context, form domain.DeliveryForm,
) (domain.Order, error) {
	const op = "Checkout.PlaceOrder"
	log := slog.With("op", op)

	if err := c.begin(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	order, err := c.api.Checkout(ctx, form)

	c.mu.Lock()
	if err != nil {
		c.state = CheckoutIdle
		c.notice = detailOr(err, MsgCheckoutFailed)
		c.mu.Unlock()
		log.Warn("checkout failed", "err", err)
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	c.state = CheckoutPlaced
	c.order = order
	c.confirmation = fmt.Sprintf(MsgOrderPlaced, order.ID)
	c.mu.Unlock()

	log.Info("order placed", "orderID", order.ID)

	publish(ctx, c.opts.events, domain.ClientEvent{
		Kind:    domain.EventOrderPlaced,
		OrderID: order.ID,
	})
	return order, nil
}

func (c *Checkout) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == CheckoutSubmitting {
		return domain.ErrBusy
	}
	c.state = CheckoutSubmitting
	c.notice = ""
	c.confirmation = ""
	return nil
}

func (c *Checkout) State() CheckoutState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Checkout) Notice() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.notice
}

// Confirmation returns the order placed message after a successful checkout.
func (c *Checkout) Confirmation() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.confirmation
}

// An Orders is the order history view.
type Orders struct {
	api port.OrderAPI

	mu     sync.RWMutex
	orders []domain.Order
	notice string
}

func NewOrders(api port.OrderAPI) *Orders {
	return &Orders{api: api}
}

func (o *Orders) Load(ctx context.Context) error {
	const op = "Orders.Load"

	orders, err := o.api.ListOrders(ctx)

	o.mu.Lock()
	defer o.mu.Unlock()

	if err != nil {
		o.orders = nil
		o.notice = MsgOrdersLoadFailed
		if domain.IsUnauthorized(err) {
			o.notice = MsgOrdersUnauthorized
		}
		slog.Warn("failed to load orders", "op", op, "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}

	o.orders = orders
	o.notice = ""
	return nil
}

func (o *Orders) Orders() []domain.Order {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return slices.Clone(o.orders)
}

func (o *Orders) Notice() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.notice
}
