package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	kitchen = &domain.Category{ID: 1, Name: "Kitchen", Slug: "kitchen"}
	decor   = &domain.Category{ID: 2, Name: "Decor", Slug: "decor"}
)

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: 3, Name: "Vase", Description: "A tall MUG-shaped vase", Stock: 2, Category: decor},
		{ID: 1, Name: "Mug", Description: "Ceramic", Stock: 5, Category: kitchen},
		{ID: 2, Name: "Cup", Description: "Glass", Stock: 0, Category: kitchen},
	}
}

func ids(ps []domain.Product) (res []int64) {
	for _, p := range ps {
		res = append(res, p.ID)
	}
	return res
}

func TestFilterProducts(t *testing.T) {
	ps := testProducts()

	tests := []struct {
		name   string
		filter service.Filter
		want   []int64
	}{
		{"Empty", service.Filter{}, []int64{1, 2, 3}},
		{"AllCategories", service.Filter{Category: service.AllCategories}, []int64{1, 2, 3}},
		{"NameCaseInsensitive", service.Filter{Query: "mug"}, []int64{1, 3}},
		{"Description", service.Filter{Query: "glass"}, []int64{2}},
		{"TrimmedQuery", service.Filter{Query: "  CUP "}, []int64{2}},
		{"Category", service.Filter{Category: "kitchen"}, []int64{1, 2}},
		{"QueryAndCategory", service.Filter{Query: "mug", Category: "kitchen"}, []int64{1}},
		{"UnknownCategory", service.Filter{Category: "garden"}, nil},
		{"NoMatch", service.Filter{Query: "teapot"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(service.FilterProducts(ps, tt.filter)))
		})
	}

	t.Run("InputUntouched", func(t *testing.T) {
		_ = service.FilterProducts(ps, service.Filter{})
		assert.Equal(t, []int64{3, 1, 2}, ids(ps))
	})

	t.Run("NoCategorySkippedBySelector", func(t *testing.T) {
		res := service.FilterProducts(
			[]domain.Product{{ID: 9, Name: "Loose"}},
			service.Filter{Category: "kitchen"},
		)
		assert.Empty(t, res)
	})
}

func TestFilterProductsScenario(t *testing.T) {
	ps := []domain.Product{
		{ID: 1, Name: "Mug", Stock: 5},
		{ID: 2, Name: "Cup", Stock: 0},
	}
	res := service.FilterProducts(ps, service.Filter{Query: "mug", Category: "all"})
	require.Len(t, res, 1)
	assert.Equal(t, int64(1), res[0].ID)
}

func newLoadedCatalog(
	t *testing.T, cart *MockCartAPI, opts ...service.Opt,
) (*service.Catalog, *MockCatalogAPI) {
	t.Helper()
	api := new(MockCatalogAPI)
	api.On("ListProducts", mock.Anything).Return(testProducts(), nil)
	api.On("ListCategories", mock.Anything).
		Return([]domain.Category{*kitchen, *decor}, nil)

	c := service.NewCatalog(api, cart, opts...)
	require.NoError(t, c.Load(t.Context()))
	return c, api
}

func TestCatalogLoad(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		c, api := newLoadedCatalog(t, new(MockCartAPI))

		assert.True(t, c.Loaded())
		assert.Empty(t, c.Notice())
		assert.Len(t, c.Products(), 3)
		assert.Len(t, c.Categories(), 2)
		api.AssertExpectations(t)
	})

	t.Run("CategoriesFail", func(t *testing.T) {
		api := new(MockCatalogAPI)
		api.On("ListProducts", mock.Anything).Return(testProducts(), nil)
		api.On("ListCategories", mock.Anything).
			Return(nil, domain.ErrUnavailable)

		c := service.NewCatalog(api, new(MockCartAPI))
		err := c.Load(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnavailable)

		assert.False(t, c.Loaded())
		assert.Empty(t, c.Products())
		assert.Empty(t, c.Categories())
		assert.Equal(t, service.MsgCatalogLoadFailed, c.Notice())
	})

	t.Run("ReloadAfterFailureEmptiesPrevious", func(t *testing.T) {
		api := new(MockCatalogAPI)
		api.On("ListProducts", mock.Anything).Return(testProducts(), nil).Once()
		api.On("ListCategories", mock.Anything).Return([]domain.Category{*kitchen}, nil).Once()
		api.On("ListProducts", mock.Anything).Return(nil, errors.New("boom")).Once()
		api.On("ListCategories", mock.Anything).Return([]domain.Category{*kitchen}, nil).Once()

		c := service.NewCatalog(api, new(MockCartAPI))
		require.NoError(t, c.Load(t.Context()))
		require.Error(t, c.Load(t.Context()))
		assert.Empty(t, c.Products())
		assert.Empty(t, c.Categories())
	})
}

func TestCatalogSearch(t *testing.T) {
	events := new(MockEventPublisher)
	events.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.ClientEvent) bool {
		return e.Kind == domain.EventSearch && e.Query == "mug" && e.ID != ""
	})).Return(nil).Once()

	c, _ := newLoadedCatalog(t, new(MockCartAPI), service.WithEvents(events))

	assert.Equal(t, []int64{1, 3}, ids(c.Search(t.Context(), service.Filter{Query: " mug "})))
	assert.Equal(t, []int64{1, 2, 3}, ids(c.Search(t.Context(), service.Filter{})))

	events.AssertExpectations(t)
}

func TestCatalogAddToCart(t *testing.T) {
	t.Run("Added", func(t *testing.T) {
		cart := new(MockCartAPI)
		cart.On("AddItem", mock.Anything, int64(1), 1).Return(nil).Once()

		events := new(MockEventPublisher)
		events.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.ClientEvent) bool {
			return e.Kind == domain.EventAddToCart && e.ProductID == 1 && e.Quantity == 1
		})).Return(errors.New("broker down")).Once()

		c, _ := newLoadedCatalog(t, cart,
			service.WithEvents(events),
			service.WithToastTTL(20*time.Millisecond, 20*time.Millisecond),
		)

		require.NoError(t, c.AddToCart(t.Context(), 1))
		assert.Equal(t, service.MsgAdded, c.Toast())
		assert.False(t, c.IsBusy(1))

		assert.Eventually(t, func() bool {
			return c.Toast() == ""
		}, time.Second, 5*time.Millisecond)

		cart.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("Unauthorized", func(t *testing.T) {
		cart := new(MockCartAPI)
		cart.On("AddItem", mock.Anything, int64(1), 1).
			Return(&domain.APIError{Status: 401, Detail: "Authentication credentials were not provided."}).
			Once()

		c, _ := newLoadedCatalog(t, cart)

		err := c.AddToCart(t.Context(), 1)
		require.Error(t, err)
		assert.True(t, domain.IsUnauthorized(err))
		assert.Equal(t, "Please login to add items 🙂", c.Toast())
		cart.AssertNumberOfCalls(t, "AddItem", 1)
	})

	t.Run("ServerDetail", func(t *testing.T) {
		cart := new(MockCartAPI)
		cart.On("AddItem", mock.Anything, int64(3), 1).
			Return(&domain.APIError{Status: 400, Detail: "Not enough stock"})

		c, _ := newLoadedCatalog(t, cart)

		require.Error(t, c.AddToCart(t.Context(), 3))
		assert.Equal(t, "Not enough stock", c.Toast())
	})

	t.Run("TransportFailure", func(t *testing.T) {
		cart := new(MockCartAPI)
		cart.On("AddItem", mock.Anything, int64(3), 1).Return(domain.ErrUnavailable)

		c, _ := newLoadedCatalog(t, cart)

		require.Error(t, c.AddToCart(t.Context(), 3))
		assert.Equal(t, service.MsgAddFailed, c.Toast())
	})

	t.Run("OutOfStockDisabled", func(t *testing.T) {
		cart := new(MockCartAPI)
		c, _ := newLoadedCatalog(t, cart)

		assert.False(t, c.CanAdd(2))
		err := c.AddToCart(t.Context(), 2)
		assert.ErrorIs(t, err, domain.ErrOutOfStock)
		cart.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("BusyOnlyForSameProduct", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})

		cart := new(MockCartAPI)
		cart.On("AddItem", mock.Anything, int64(1), 1).
			Run(func(mock.Arguments) {
				close(started)
				<-release
			}).
			Return(nil).Once()
		cart.On("AddItem", mock.Anything, int64(3), 1).Return(nil).Once()

		c, _ := newLoadedCatalog(t, cart)

		errCh := make(chan error, 1)
		go func() { errCh <- c.AddToCart(t.Context(), 1) }()
		<-started

		assert.True(t, c.IsBusy(1))
		assert.False(t, c.CanAdd(1))
		assert.True(t, c.CanAdd(3))

		assert.ErrorIs(t, c.AddToCart(t.Context(), 1), domain.ErrBusy)
		require.NoError(t, c.AddToCart(t.Context(), 3))

		close(release)
		require.NoError(t, <-errCh)
		assert.False(t, c.IsBusy(1))
		cart.AssertExpectations(t)
	})
}
