package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// User facing copy.
const (
	MsgCatalogLoadFailed = "Could not load products. Make sure the API server is running."
	MsgAdded             = "Added to cart ✅"
	MsgAddUnauthorized   = "Please login to add items 🙂"
	MsgAddFailed         = "Could not add to cart."

	MsgCartUnauthorized = "You're not logged in. Please login to view your cart."
	MsgCartLoadFailed   = "Could not load cart. Make sure the API server is running."
	MsgUpdateFailed     = "Could not update quantity."
	MsgRemoveFailed     = "Could not remove item."

	MsgCheckoutFailed = "Checkout failed. Are you logged in?"
	MsgOrderPlaced    = "Order placed ✅  Order ID: %d"

	MsgOrdersUnauthorized = "You're not logged in. Please login to view your orders."
	MsgOrdersLoadFailed   = "Could not load orders."

	MsgLoginFailed    = "Login failed. Check username/password."
	MsgRegisterFailed = "Registration failed."
)

const (
	DefaultSuccessTTL = 1400 * time.Millisecond
	DefaultFailureTTL = 1800 * time.Millisecond
)

type Opt func(*options)

type options struct {
	events     port.EventPublisher
	successTTL time.Duration
	failureTTL time.Duration
}

func newOptions(opts []Opt) options {
	o := options{
		events:     nopPublisher{},
		successTTL: DefaultSuccessTTL,
		failureTTL: DefaultFailureTTL,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithEvents sets the publisher of client events. Nil disables publishing.
func WithEvents(p port.EventPublisher) Opt {
	return func(o *options) {
		if p == nil {
			p = nopPublisher{}
		}
		o.events = p
	}
}

// WithToastTTL sets how long transient confirmations and failures stay visible.
func WithToastTTL(success, failure time.Duration) Opt {
	return func(o *options) {
		o.successTTL = success
		o.failureTTL = failure
	}
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, domain.ClientEvent) error {
	return nil
}

func publish(
	ctx context.Context, p port.EventPublisher, evt domain.ClientEvent,
) {
	const op = "service.publish"

	evt.ID = uuid.NewString()
	evt.OccurredAt = time.Now().UTC()

	if err := p.Publish(ctx, evt); err != nil {
		slog.Warn("failed to publish client event",
			"op", op, "kind", evt.Kind, "err", err,
		)
	}
}

// detailOr returns the server provided detail of err or fallback.
func detailOr(err error, fallback string) string {
	if d := domain.Detail(err); d != "" {
		return d
	}
	return fallback
}
