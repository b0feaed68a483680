package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
)

const (
	productsPath   = "/api/products/"
	categoriesPath = "/api/categories/"
	cartPath       = "/api/cart/"
	addItemPath    = "/api/cart/items/add/"
	checkoutPath   = "/api/checkout/"
	ordersPath     = "/api/orders/"
	loginPath      = "/api/auth/login/"
	registerPath   = "/api/auth/register/"
)

func itemPath(itemID int64) string {
	return fmt.Sprintf("/api/cart/items/%d/", itemID)
}

func deleteItemPath(itemID int64) string {
	return fmt.Sprintf("/api/cart/items/%d/delete/", itemID)
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Client.ListProducts"

	var vs []productJSON
	if err := c.do(ctx, http.MethodGet, productsPath, nil, &vs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps := make([]domain.Product, len(vs))
	for i, v := range vs {
		ps[i] = v.toDomain()
	}
	return ps, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const op = "Client.ListCategories"

	var vs []categoryJSON
	if err := c.do(ctx, http.MethodGet, categoriesPath, nil, &vs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cs := make([]domain.Category, len(vs))
	for i, v := range vs {
		cs[i] = v.toDomain()
	}
	return cs, nil
}

func (c *Client) GetCart(ctx context.Context) (domain.Cart, error) {
	const op = "Client.GetCart"

	var v cartJSON
	if err := c.do(ctx, http.MethodGet, cartPath, nil, &v); err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}
	return v.toDomain(), nil
}

// AddItem ignores the cart returned by the server: the cart view reloads.
func (c *Client) AddItem(ctx context.Context, productID int64, quantity int) error {
	const op = "Client.AddItem"

	body := addItemJSON{ProductID: productID, Quantity: quantity}
	if err := c.do(ctx, http.MethodPost, addItemPath, body, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Client) UpdateItem(ctx context.Context, itemID int64, quantity int) error {
	const op = "Client.UpdateItem"

	body := updateItemJSON{Quantity: quantity}
	if err := c.do(ctx, http.MethodPatch, itemPath(itemID), body, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Client) DeleteItem(ctx context.Context, itemID int64) error {
	const op = "Client.DeleteItem"

	if err := c.do(ctx, http.MethodDelete, deleteItemPath(itemID), nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Client) Checkout(
	ctx context.Context, form domain.DeliveryForm,
) (domain.Order, error) {
	const op = "Client.Checkout"

	var v orderJSON
	err := c.do(ctx, http.MethodPost, checkoutPath, deliveryFormFromDomain(form), &v)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return v.toDomain(), nil
}

func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	const op = "Client.ListOrders"

	var vs []orderJSON
	if err := c.do(ctx, http.MethodGet, ordersPath, nil, &vs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	orders := make([]domain.Order, len(vs))
	for i, v := range vs {
		orders[i] = v.toDomain()
	}
	return orders, nil
}

func (c *Client) Login(
	ctx context.Context, username, password string,
) (domain.Credentials, error) {
	const op = "Client.Login"

	var v tokensJSON
	body := credentialsJSON{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, loginPath, body, &v); err != nil {
		return domain.Credentials{}, fmt.Errorf("%s: %w", op, err)
	}
	return domain.Credentials{Access: v.Access, Refresh: v.Refresh}, nil
}

// Register creates the account. Tokens in the response are not used:
// the caller logs in explicitly.
func (c *Client) Register(
	ctx context.Context, username, email, password string,
) error {
	const op = "Client.Register"

	body := registerJSON{Username: username, Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, registerPath, body, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
