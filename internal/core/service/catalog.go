package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"golang.org/x/sync/errgroup"
)

// AllCategories is the category selector that matches every product.
const AllCategories = "all"

type Filter struct {
	Query    string
	Category string
}

// FilterProducts returns the products matching f sorted by ascending id.
//
// A product matches when the query is empty or is a case-insensitive
// substring of its name or description, and the category selector is
// empty, [AllCategories] or equal to the product category slug.
// Input slice is not modified.
func FilterProducts(ps []domain.Product, f Filter) []domain.Product {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	res := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		if matchesQuery(p, query) && matchesCategory(p, f.Category) {
			res = append(res, p)
		}
	}

	// by id, not by name
	slices.SortStableFunc(res, func(a, b domain.Product) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return res
}

func matchesQuery(p domain.Product, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query)
}

func matchesCategory(p domain.Product, category string) bool {
	if category == "" || category == AllCategories {
		return true
	}
	return p.CategorySlug() == category
}

// A Catalog is the product browsing view.
type Catalog struct {
	api  port.CatalogAPI
	cart port.CartAdder
	opts options
	busy *Inflight

	toast Toast

	mu         sync.RWMutex
	products   []domain.Product
	categories []domain.Category
	notice     string
	loaded     bool
}

func NewCatalog(api port.CatalogAPI, cart port.CartAdder, opts ...Opt) *Catalog {
	return &Catalog{
		api:  api,
		cart: cart,
		opts: newOptions(opts),
		busy: NewInflight(),
	}
}

// Load fetches products and categories concurrently.
//
// If any of them fails, both collections are left empty.
func (c *Catalog) Load(ctx context.Context) error {
	const op = "Catalog.Load"
	log := slog.With("op", op)

	var (
		products   []domain.Product
		categories []domain.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = c.api.ListProducts(gctx)
		return err
	})
	g.Go(func() (err error) {
		categories, err = c.api.ListCategories(gctx)
		return err
	})
	err := g.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.products, c.categories = nil, nil
		c.loaded = false
		c.notice = MsgCatalogLoadFailed
		log.Warn("failed to load catalog", "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}

	c.products, c.categories = products, categories
	c.loaded = true
	c.notice = ""
	log.Debug("loaded", "nProducts", len(products), "nCategories", len(categories))
	return nil
}

// Search filters the loaded products and reports non-empty queries as
// client events.
func (c *Catalog) Search(ctx context.Context, f Filter) []domain.Product {
	res := FilterProducts(c.Products(), f)

	if q := strings.TrimSpace(f.Query); q != "" {
		publish(ctx, c.opts.events, domain.ClientEvent{
			Kind:     domain.EventSearch,
			Query:    q,
			Category: f.Category,
		})
	}
	return res
}

// AddToCart adds one unit of the product to the cart.
//
// Out of stock products (as of the last load) and products with an add
// already in flight are rejected without calling the API.
func (c *Catalog) AddToCart(ctx context.Context, productID int64) error {
	const op = "Catalog.AddToCart"
	log := slog.With("op", op, "productID", productID)

	if p, ok := c.product(productID); ok && !p.InStock() {
		return fmt.Errorf("%s: %w", op, domain.ErrOutOfStock)
	}

	if !c.busy.TryAcquire(productID) {
		return fmt.Errorf("%s: %w", op, domain.ErrBusy)
	}
	defer c.busy.Release(productID)

	c.toast.Clear()

	err := c.cart.AddItem(ctx, productID, 1)
	if err != nil {
		c.toast.Show(addFailureMessage(err), c.opts.failureTTL)
		log.Warn("failed to add to cart", "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}

	c.toast.Show(MsgAdded, c.opts.successTTL)

	publish(ctx, c.opts.events, domain.ClientEvent{
		Kind:      domain.EventAddToCart,
		ProductID: productID,
		Quantity:  1,
	})
	return nil
}

func addFailureMessage(err error) string {
	if domain.IsUnauthorized(err) {
		return MsgAddUnauthorized
	}
	return detailOr(err, MsgAddFailed)
}

// IsBusy reports whether an add of the product is in flight.
func (c *Catalog) IsBusy(productID int64) bool {
	return c.busy.Locked(productID)
}

// CanAdd reports whether the add to cart control of a loaded product is
// enabled.
func (c *Catalog) CanAdd(productID int64) bool {
	p, ok := c.product(productID)
	return ok && p.InStock() && !c.IsBusy(productID)
}

func (c *Catalog) Products() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.products)
}

func (c *Catalog) Categories() []domain.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.categories)
}

func (c *Catalog) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Notice returns the load failure message, if any.
func (c *Catalog) Notice() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.notice
}

// Toast returns the transient add to cart message.
func (c *Catalog) Toast() string {
	return c.toast.Text()
}

func (c *Catalog) product(id int64) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}
