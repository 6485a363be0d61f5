package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/techstore/storefront/internal/domain/storefront"
	"github.com/techstore/storefront/internal/infrastructure/commerce"
	"github.com/techstore/storefront/internal/testutil"
)

var errBoom = errors.New("boom")

// newGateway returns a client for fake that propagates read failures
func newGateway(t testing.TB, fake *testutil.FakeCommerce) *commerce.Client {
	t.Helper()
	c, err := commerce.NewClient(commerce.NewConfig(fake.URL()))
	require.NoError(t, err)
	return c
}

// tenDollarCatalog holds a single $10.00 product
func tenDollarCatalog() []storefront.Product {
	return []storefront.Product{{
		ID:       "p10",
		Name:     "Ten Dollar Thing",
		Price:    decimal.RequireFromString("10.00"),
		Category: storefront.StringPtr("Electronics"),
	}}
}

// cartReaderFunc adapts a function to storefront.CartReader
type cartReaderFunc func(ctx context.Context) (storefront.Envelope[storefront.Cart], error)

func (f cartReaderFunc) Cart(ctx context.Context) (storefront.Envelope[storefront.Cart], error) {
	return f(ctx)
}

func failingReader(err error) storefront.CartReader {
	return cartReaderFunc(func(context.Context) (storefront.Envelope[storefront.Cart], error) {
		return storefront.Envelope[storefront.Cart]{}, err
	})
}

// MockGateway is a mock implementation of Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Cart(ctx context.Context) (storefront.Envelope[storefront.Cart], error) {
	args := m.Called(ctx)
	return args.Get(0).(storefront.Envelope[storefront.Cart]), args.Error(1)
}

func (m *MockGateway) AddItem(ctx context.Context, productID string) (storefront.Envelope[storefront.Cart], error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(storefront.Envelope[storefront.Cart]), args.Error(1)
}

func (m *MockGateway) RemoveItem(ctx context.Context, productID string) (storefront.Envelope[storefront.Cart], error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(storefront.Envelope[storefront.Cart]), args.Error(1)
}

func (m *MockGateway) CreateOrder(ctx context.Context) (storefront.Envelope[storefront.OrderMarker], error) {
	args := m.Called(ctx)
	return args.Get(0).(storefront.Envelope[storefront.OrderMarker]), args.Error(1)
}

func (m *MockGateway) ConfirmCartCleared(ctx context.Context) (storefront.Envelope[storefront.Cart], error) {
	args := m.Called(ctx)
	return args.Get(0).(storefront.Envelope[storefront.Cart]), args.Error(1)
}

func cartEnvelope(status storefront.Status, cart storefront.Cart) storefront.Envelope[storefront.Cart] {
	return storefront.Envelope[storefront.Cart]{Status: status, Data: cart}
}

func oneLineCart(productID string, qty int) storefront.Cart {
	price := decimal.NewFromInt(10)
	total := price.Mul(decimal.NewFromInt(int64(qty)))
	return storefront.Cart{
		Items: []storefront.CartItem{{
			ID:           "line-1",
			ProductID:    productID,
			ProductName:  "Thing",
			Quantity:     qty,
			ProductPrice: price,
			TotalPrice:   total,
		}},
		Summary: storefront.OrderSummary{
			Subtotal:      total,
			TaxPercentage: decimal.NewFromInt(18),
			TaxAmount:     decimal.Zero,
			Total:         total,
		},
		TotalItems: qty,
	}
}

const settle = 2 * time.Second
