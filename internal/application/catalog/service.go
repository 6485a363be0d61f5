// Package catalog serves the product browsing pages: home, all products and
// products of one category, plus the add-to-cart action of a product card.
package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/techstore/storefront/internal/application/cart"
	"github.com/techstore/storefront/internal/domain/shared"
	"github.com/techstore/storefront/internal/domain/storefront"
	"github.com/techstore/storefront/internal/infrastructure/logger"
	"github.com/techstore/storefront/internal/infrastructure/telemetry"
)

// Messages shown when a page cannot be loaded
const (
	MsgHomeFailed      = "Failed to load homepage data"
	MsgProductsFailed  = "Failed to load products"
	MsgAddToCartFailed = "Failed to add to cart"
)

// Page titles
const (
	AllProductsTitle    = "All Products"
	AllProductsSubtitle = "Discover our complete collection of amazing products"
	AllProductsEmpty    = "No products found"
)

// PageError is returned when a page could not be built. Message is the text
// shown to the shopper; Err is the underlying cause.
type PageError struct {
	Message string
	Err     error
}

func (e *PageError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *PageError) Unwrap() error {
	return e.Err
}

// HomePage holds the featured products and the category tiles
type HomePage struct {
	Featured   []storefront.Product
	Categories []storefront.Category
}

// ProductsPage is a product listing with its headings
type ProductsPage struct {
	Category     string
	Title        string
	Subtitle     string
	EmptyMessage string
	Products     []storefront.Product
}

// Service builds catalog pages from the commerce API
type Service struct {
	catalog storefront.CatalogReader
	cart    storefront.CartMutator
	store   *cart.Store
	logger  *zap.Logger
	lower   cases.Caser
}

// NewService creates a catalog service. store is refreshed after every
// successful add-to-cart.
func NewService(catalog storefront.CatalogReader, mutator storefront.CartMutator, store *cart.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		catalog: catalog,
		cart:    mutator,
		store:   store,
		logger:  log.Named("catalog"),
		lower:   cases.Lower(language.English),
	}
}

// HomePage fetches featured products and categories concurrently
func (s *Service) HomePage(ctx context.Context) (*HomePage, error) {
	var page HomePage
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		env, err := s.catalog.FeaturedProducts(gctx)
		if err = checkEnvelope(env, err); err != nil {
			return err
		}
		page.Featured = env.Data
		return nil
	})
	g.Go(func() error {
		env, err := s.catalog.Categories(gctx)
		if err = checkEnvelope(env, err); err != nil {
			return err
		}
		page.Categories = env.Data
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, s.pageError(ctx, MsgHomeFailed, err)
	}
	return &page, nil
}

// AllProducts returns the full catalog
func (s *Service) AllProducts(ctx context.Context) (*ProductsPage, error) {
	env, err := s.catalog.AllProducts(ctx)
	if err = checkEnvelope(env, err); err != nil {
		return nil, s.pageError(ctx, MsgProductsFailed, err)
	}
	return &ProductsPage{
		Title:        AllProductsTitle,
		Subtitle:     AllProductsSubtitle,
		EmptyMessage: AllProductsEmpty,
		Products:     env.Data,
	}, nil
}

// ProductsByCategory returns the products of category. An empty category
// returns ErrCategoryRequired without calling the commerce API.
func (s *Service) ProductsByCategory(ctx context.Context, category string) (*ProductsPage, error) {
	if category == "" {
		return nil, shared.ErrCategoryRequired
	}
	env, err := s.catalog.ProductsByCategory(ctx, category)
	if err = checkEnvelope(env, err); err != nil {
		return nil, s.pageError(ctx, MsgProductsFailed, err)
	}
	lower := s.lower.String(category)
	return &ProductsPage{
		Category:     category,
		Title:        category + " Products",
		Subtitle:     "Discover our " + lower + " collection",
		EmptyMessage: "No " + lower + " products found",
		Products:     env.Data,
	}, nil
}

// AddToCart adds one unit of productID and refreshes the cart badge. It
// returns the badge count after the refresh.
func (s *Service) AddToCart(ctx context.Context, productID string) (int, error) {
	ctx, span := telemetry.StartSpan(ctx, "catalog.add_to_cart",
		telemetry.WithAttribute(telemetry.SpanAttrProductID, productID),
	)
	defer span.End()

	env, err := s.cart.AddItem(ctx, productID)
	if err = checkEnvelope(env, err); err != nil {
		telemetry.RecordError(span, err)
		return 0, s.pageError(ctx, MsgAddToCartFailed, err)
	}

	if s.store == nil {
		return env.Data.UnitCount(), nil
	}
	if err := s.store.Refresh(ctx); err != nil {
		logger.WithLogger(ctx, s.logger).Warn("Cart badge refresh failed after add to cart", zap.Error(err))
	}
	count, err := s.store.Count()
	if err != nil {
		return 0, err
	}
	telemetry.SetOK(span)
	return count, nil
}

func (s *Service) pageError(ctx context.Context, msg string, err error) error {
	logger.WithLogger(ctx, s.logger).Error(msg, zap.Error(err))
	return &PageError{Message: msg, Err: err}
}

func checkEnvelope[T any](env storefront.Envelope[T], err error) error {
	if err != nil {
		return err
	}
	if !env.OK() {
		return fmt.Errorf("commerce api returned status %q", env.Status)
	}
	return nil
}
