package storefront

import (
	"context"
	"errors"
)

var (
	// ErrCommerceUnavailable means the remote could not be reached
	ErrCommerceUnavailable = errors.New("storefront: commerce api unavailable")
	// ErrCommerceRequestFailed means the remote answered with a non-2xx status
	ErrCommerceRequestFailed = errors.New("storefront: commerce api request failed")
	// ErrCommerceInvalidResponse means the response body could not be decoded
	ErrCommerceInvalidResponse = errors.New("storefront: invalid commerce api response")
)

// CatalogReader fetches product and category listings
type CatalogReader interface {
	FeaturedProducts(ctx context.Context) (Envelope[[]Product], error)
	AllProducts(ctx context.Context) (Envelope[[]Product], error)
	ProductsByCategory(ctx context.Context, category string) (Envelope[[]Product], error)
	Categories(ctx context.Context) (Envelope[[]Category], error)
}

// CartReader fetches the server-held cart
type CartReader interface {
	Cart(ctx context.Context) (Envelope[Cart], error)
}

// CartMutator changes the server-held cart and places orders.
// Errors from these operations are always surfaced to the caller.
type CartMutator interface {
	AddItem(ctx context.Context, productID string) (Envelope[Cart], error)
	RemoveItem(ctx context.Context, productID string) (Envelope[Cart], error)
	CreateOrder(ctx context.Context) (Envelope[OrderMarker], error)
	// ConfirmCartCleared re-reads the cart after an order. Unlike Cart it
	// never substitutes fallback data.
	ConfirmCartCleared(ctx context.Context) (Envelope[Cart], error)
}

// CommerceGateway is the full remote commerce API surface
type CommerceGateway interface {
	CatalogReader
	CartReader
	CartMutator
}
