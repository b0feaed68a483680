package service_test

import (
	"sync"
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testCart() domain.Cart {
	return domain.Cart{ID: 1, Items: []domain.CartItem{
		{
			ID:            10,
			Product:       domain.Product{ID: 1, Name: "Mug"},
			PriceSnapshot: decimal.RequireFromString("100"),
			Quantity:      2,
		},
		{
			ID:            11,
			Product:       domain.Product{ID: 2, Name: "Cup"},
			PriceSnapshot: decimal.RequireFromString("50"),
			Quantity:      1,
		},
	}}
}

// callLog records the order of API calls.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(name string) func(mock.Arguments) {
	return func(mock.Arguments) {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.calls = append(l.calls, name)
	}
}

func (l *callLog) get() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

func TestCartLoad(t *testing.T) {
	t.Run("Totals", func(t *testing.T) {
		api := new(MockCartAPI)
		api.On("GetCart", mock.Anything).Return(testCart(), nil)

		c := service.NewCart(api)
		require.NoError(t, c.Load(t.Context()))

		_, ok := c.Cart()
		assert.True(t, ok)
		assert.Len(t, c.Items(), 2)
		assert.True(t, c.Subtotal().Equal(decimal.NewFromInt(250)))
		assert.True(t, c.Shipping().IsZero())
		assert.True(t, c.Total().Equal(decimal.NewFromInt(250)))
		assert.Empty(t, c.Notice())
	})

	t.Run("Unauthorized", func(t *testing.T) {
		api := new(MockCartAPI)
		api.On("GetCart", mock.Anything).
			Return(domain.Cart{}, &domain.APIError{Status: 401})

		c := service.NewCart(api)
		require.Error(t, c.Load(t.Context()))

		_, ok := c.Cart()
		assert.False(t, ok)
		assert.Equal(t, service.MsgCartUnauthorized, c.Notice())
	})

	t.Run("Unavailable", func(t *testing.T) {
		api := new(MockCartAPI)
		api.On("GetCart", mock.Anything).Return(testCart(), nil).Once()
		api.On("GetCart", mock.Anything).Return(domain.Cart{}, domain.ErrUnavailable).Once()

		c := service.NewCart(api)
		require.NoError(t, c.Load(t.Context()))
		require.ErrorIs(t, c.Load(t.Context()), domain.ErrUnavailable)

		_, ok := c.Cart()
		assert.False(t, ok, "failed load must not leave a partial cart")
		assert.Empty(t, c.Items())
		assert.True(t, c.Total().IsZero())
		assert.Equal(t, service.MsgCartLoadFailed, c.Notice())
	})

	t.Run("StaleResponseDropped", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})

		older := domain.Cart{ID: 1, Items: []domain.CartItem{{ID: 10, Quantity: 1}}}
		newer := domain.Cart{ID: 1, Items: []domain.CartItem{{ID: 10, Quantity: 5}}}

		api := new(MockCartAPI)
		api.On("GetCart", mock.Anything).
			Run(func(mock.Arguments) {
				close(started)
				<-release
			}).
			Return(older, nil).Once()
		api.On("GetCart", mock.Anything).Return(newer, nil).Once()

		c := service.NewCart(api)

		errCh := make(chan error, 1)
		go func() { errCh <- c.Load(t.Context()) }()
		<-started

		require.NoError(t, c.Load(t.Context()))
		close(release)
		require.NoError(t, <-errCh)

		items := c.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 5, items[0].Quantity)
	})
}

func TestCartUpdateQuantity(t *testing.T) {
	t.Run("PatchThenReload", func(t *testing.T) {
		var log callLog
		reloaded := testCart()
		reloaded.Items[0].Quantity = 3

		api := new(MockCartAPI)
		api.On("GetCart", mock.Anything).Return(testCart(), nil).Once()
		api.On("UpdateItem", mock.Anything, int64(10), 3).
			Run(log.add("PATCH")).Return(nil).Once()
		api.On("GetCart", mock.Anything).
			Run(log.add("GET")).Return(reloaded, nil).Once()

		c := service.NewCart(api)
		require.NoError(t, c.Load(t.Context()))
		require.NoError(t, c.UpdateQuantity(t.Context(), 10, 3))

		assert.Equal(t, []string{"PATCH", "GET"}, log.get())
		assert.Equal(t, reloaded.Items, c.Items())
		assert.True(t, c.Subtotal().Equal(decimal.NewFromInt(350)))
		api.AssertExpectations(t)
	})

	t.Run("ZeroDeletes", func(t *testing.T) {
		var log callLog
		reloaded := domain.Cart{ID: 1, Items: testCart().Items[1:]}

		api := new(MockCartAPI)
		api.On("DeleteItem", mock.Anything, int64(10)).
			Run(log.add("DELETE")).Return(nil).Once()
		api.On("GetCart", mock.Anything).
			Run(log.add("GET")).Return(reloaded, nil).Once()

		c := service.NewCart(api)
		require.NoError(t, c.UpdateQuantity(t.Context(), 10, 0))

		assert.Equal(t, []string{"DELETE", "GET"}, log.get())
		api.AssertNotCalled(t, "UpdateItem", mock.Anything, mock.Anything, mock.Anything)
		assert.Equal(t, reloaded.Items, c.Items())
	})

	t.Run("NegativeDeletes", func(t *testing.T) {
		api := new(MockCartAPI)
		api.On("DeleteItem", mock.Anything, int64(10)).Return(nil).Once()
		api.On("GetCart", mock.Anything).Return(domain.Cart{}, nil).Once()

		c := service.NewCart(api)
		require.NoError(t, c.UpdateQuantity(t.Context(), 10, -1))
		api.AssertExpectations(t)
	})

	t.Run("FailureKeepsDisplayedCart", func(t *testing.T) {
		api := new(MockCartAPI)
		api.On("GetCart", mock.Anything).Return(testCart(), nil).Once()
		api.On("UpdateItem", mock.Anything, int64(10), 9).
			Return(&domain.APIError{Status: 400, Detail: "Not enough stock"}).Once()

		c := service.NewCart(api)
		require.NoError(t, c.Load(t.Context()))

		require.Error(t, c.UpdateQuantity(t.Context(), 10, 9))
		assert.Equal(t, "Not enough stock", c.Notice())
		assert.Equal(t, testCart().Items, c.Items())
		api.AssertNumberOfCalls(t, "GetCart", 1)
	})

	t.Run("FailureFallback", func(t *testing.T) {
		api := new(MockCartAPI)
		api.On("UpdateItem", mock.Anything, int64(10), 2).Return(domain.ErrUnavailable)

		c := service.NewCart(api)
		require.Error(t, c.UpdateQuantity(t.Context(), 10, 2))
		assert.Equal(t, service.MsgUpdateFailed, c.Notice())
	})

	t.Run("BusyOnlyForSameItem", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})

		api := new(MockCartAPI)
		api.On("UpdateItem", mock.Anything, int64(10), 3).
			Run(func(mock.Arguments) {
				close(started)
				<-release
			}).
			Return(nil).Once()
		api.On("UpdateItem", mock.Anything, int64(11), 2).Return(nil).Once()
		api.On("GetCart", mock.Anything).Return(testCart(), nil)

		c := service.NewCart(api)

		errCh := make(chan error, 1)
		go func() { errCh <- c.UpdateQuantity(t.Context(), 10, 3) }()
		<-started

		assert.True(t, c.IsBusy(10))
		assert.False(t, c.IsBusy(11))
		assert.ErrorIs(t, c.UpdateQuantity(t.Context(), 10, 4), domain.ErrBusy)
		assert.ErrorIs(t, c.Remove(t.Context(), 10), domain.ErrBusy)
		require.NoError(t, c.UpdateQuantity(t.Context(), 11, 2))

		close(release)
		require.NoError(t, <-errCh)
		assert.False(t, c.IsBusy(10))
		api.AssertExpectations(t)
	})
}

func TestCartRemove(t *testing.T) {
	t.Run("SameCallsAsZeroQuantity", func(t *testing.T) {
		run := func(fn func(*service.Cart) error) []string {
			var log callLog
			api := new(MockCartAPI)
			api.On("DeleteItem", mock.Anything, int64(10)).
				Run(log.add("DELETE")).Return(nil)
			api.On("GetCart", mock.Anything).
				Run(log.add("GET")).Return(domain.Cart{}, nil)

			require.NoError(t, fn(service.NewCart(api)))
			return log.get()
		}

		removeCalls := run(func(c *service.Cart) error {
			return c.Remove(t.Context(), 10)
		})
		zeroCalls := run(func(c *service.Cart) error {
			return c.UpdateQuantity(t.Context(), 10, 0)
		})

		assert.Equal(t, []string{"DELETE", "GET"}, removeCalls)
		assert.Equal(t, removeCalls, zeroCalls)
	})

	t.Run("Failure", func(t *testing.T) {
		api := new(MockCartAPI)
		api.On("DeleteItem", mock.Anything, int64(10)).Return(domain.ErrUnavailable)

		c := service.NewCart(api)
		require.Error(t, c.Remove(t.Context(), 10))
		assert.Equal(t, service.MsgRemoveFailed, c.Notice())
	})
}

func TestCartStep(t *testing.T) {
	t.Run("Increase", func(t *testing.T) {
		api := new(MockCartAPI)
		api.On("GetCart", mock.Anything).Return(testCart(), nil)
		api.On("UpdateItem", mock.Anything, int64(11), 2).Return(nil).Once()

		c := service.NewCart(api)
		require.NoError(t, c.Load(t.Context()))
		require.NoError(t, c.Increase(t.Context(), 11))
		api.AssertExpectations(t)
	})

	t.Run("DecreaseToZeroDeletes", func(t *testing.T) {
		api := new(MockCartAPI)
		api.On("GetCart", mock.Anything).Return(testCart(), nil)
		api.On("DeleteItem", mock.Anything, int64(11)).Return(nil).Once()

		c := service.NewCart(api)
		require.NoError(t, c.Load(t.Context()))
		require.NoError(t, c.Decrease(t.Context(), 11))
		api.AssertExpectations(t)
	})

	t.Run("UnknownItem", func(t *testing.T) {
		c := service.NewCart(new(MockCartAPI))
		assert.ErrorIs(t, c.Increase(t.Context(), 99), domain.ErrNotLoaded)
	})
}
