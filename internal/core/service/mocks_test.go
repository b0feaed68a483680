package service_test

import (
	"context"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type MockCatalogAPI struct {
	mock.Mock
}

func (m *MockCatalogAPI) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]domain.Product)
	return ps, args.Error(1)
}

func (m *MockCatalogAPI) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]domain.Category)
	return cs, args.Error(1)
}

type MockCartAPI struct {
	mock.Mock
}

func (m *MockCartAPI) GetCart(ctx context.Context) (domain.Cart, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Cart), args.Error(1)
}

func (m *MockCartAPI) AddItem(ctx context.Context, productID int64, quantity int) error {
	return m.Called(ctx, productID, quantity).Error(0)
}

func (m *MockCartAPI) UpdateItem(ctx context.Context, itemID int64, quantity int) error {
	return m.Called(ctx, itemID, quantity).Error(0)
}

func (m *MockCartAPI) DeleteItem(ctx context.Context, itemID int64) error {
	return m.Called(ctx, itemID).Error(0)
}

type MockOrderAPI struct {
	mock.Mock
}

func (m *MockOrderAPI) Checkout(
	ctx context.Context, form domain.DeliveryForm,
) (domain.Order, error) {
	args := m.Called(ctx, form)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrderAPI) ListOrders(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	os, _ := args.Get(0).([]domain.Order)
	return os, args.Error(1)
}

type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) Login(
	ctx context.Context, username, password string,
) (domain.Credentials, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(domain.Credentials), args.Error(1)
}

func (m *MockAuthAPI) Register(
	ctx context.Context, username, email, password string,
) error {
	return m.Called(ctx, username, email, password).Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, evt domain.ClientEvent) error {
	return m.Called(ctx, evt).Error(0)
}

type memoryCredentials struct {
	mu     sync.Mutex
	creds  domain.Credentials
	writes int
}

func (s *memoryCredentials) AccessToken() string {
	return s.Credentials().Access
}

func (s *memoryCredentials) Credentials() domain.Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds
}

func (s *memoryCredentials) SetCredentials(_ context.Context, c domain.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = c
	s.writes++
	return nil
}
