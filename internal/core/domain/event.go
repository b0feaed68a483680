package domain

import "time"

type EventKind string

const (
	EventSearch      EventKind = "search"
	EventAddToCart   EventKind = "add_to_cart"
	EventOrderPlaced EventKind = "order_placed"
)

// ClientEvent describes a user action in the storefront.
// Fields not related to the Kind are zero.
type ClientEvent struct {
	ID         string
	Kind       EventKind
	ProductID  int64
	Quantity   int
	Query      string
	Category   string
	OrderID    int64
	OccurredAt time.Time
}
