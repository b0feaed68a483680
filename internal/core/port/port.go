package port

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
)

type CatalogAPI interface {
	ListProducts(context.Context) ([]domain.Product, error)
	ListCategories(context.Context) ([]domain.Category, error)
}

type CartAPI interface {
	GetCart(context.Context) (domain.Cart, error)
	AddItem(ctx context.Context, productID int64, quantity int) error
	UpdateItem(ctx context.Context, itemID int64, quantity int) error
	DeleteItem(ctx context.Context, itemID int64) error
}

type CartAdder interface {
	AddItem(ctx context.Context, productID int64, quantity int) error
}

type OrderAPI interface {
	Checkout(context.Context, domain.DeliveryForm) (domain.Order, error)
	ListOrders(context.Context) ([]domain.Order, error)
}

type AuthAPI interface {
	Login(ctx context.Context, username, password string) (domain.Credentials, error)
	Register(ctx context.Context, username, email, password string) error
}

// A TokenSource yields the access token attached to outgoing requests.
type TokenSource interface {
	AccessToken() string
}

// A CredentialsStore is written on login and read by every request.
type CredentialsStore interface {
	TokenSource
	Credentials() domain.Credentials
	SetCredentials(context.Context, domain.Credentials) error
}

type EventPublisher interface {
	Publish(context.Context, domain.ClientEvent) error
}
