package commerce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/techstore/storefront/internal/domain/storefront"
	"github.com/techstore/storefront/internal/infrastructure/logger"
	"github.com/techstore/storefront/internal/infrastructure/telemetry"
)

// maxResponseSize is the maximum allowed response size from the commerce API (10MB)
const maxResponseSize = 10 * 1024 * 1024

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Operation names, used for spans, metrics and logs
const (
	OpFeaturedProducts   = "featured_products"
	OpAllProducts        = "all_products"
	OpProductsByCategory = "products_by_category"
	OpCategories         = "categories"
	OpCart               = "cart"
	OpAddItem            = "add_item"
	OpRemoveItem         = "remove_item"
	OpConfirmCartCleared = "confirm_cart_cleared"
	OpCreateOrder        = "create_order"
)

// Envelope messages attached to successful results
const (
	MsgFeaturedProducts = "featured products retrieved successfully"
	MsgCategories       = "categories retrieved successfully"
	MsgProducts         = "products retrieved successfully"
	MsgCart             = "cart items retrieved successfully"
	MsgItemAdded        = "item added to cart successfully"
	MsgItemRemoved      = "item removed from cart successfully"
	MsgCartCleared      = "cart cleared successfully"
	MsgOrderCreated     = "order created successfully"
)

var _ storefront.CommerceGateway = (*Client)(nil)

// Client talks to the remote commerce API. The API answers with bare JSON
// payloads; the client wraps each one in a storefront.Envelope.
type Client struct {
	baseURL    string
	httpClient *http.Client
	policy     ReadFailurePolicy
	logger     *zap.Logger
	metrics    *telemetry.CommerceMetrics
	now        func() time.Time
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithReadFailurePolicy sets how failed reads are answered
func WithReadFailurePolicy(p ReadFailurePolicy) Option {
	return func(c *Client) { c.policy = p }
}

// WithLogger sets the logger used for fallback and data-consistency warnings
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l.Named("commerce") }
}

// WithMetrics records request counts, latencies and fallbacks
func WithMetrics(m *telemetry.CommerceMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a commerce API client. Without WithReadFailurePolicy,
// failed reads are propagated.
func NewClient(cfg *Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		policy:     PropagateReadFailures(),
		logger:     zap.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Policy returns the active read failure policy
func (c *Client) Policy() ReadFailurePolicy {
	return c.policy
}

// FeaturedProducts fetches the featured product listing
func (c *Client) FeaturedProducts(ctx context.Context) (storefront.Envelope[[]storefront.Product], error) {
	return read(ctx, c, OpFeaturedProducts, "/product/getFeaturedProducts", MsgFeaturedProducts,
		same[[]storefront.Product],
		func(p FallbackProvider) []storefront.Product { return p.FeaturedProducts() })
}

// AllProducts fetches the whole catalog
func (c *Client) AllProducts(ctx context.Context) (storefront.Envelope[[]storefront.Product], error) {
	return read(ctx, c, OpAllProducts, "/product/getAllProducts", MsgProducts,
		same[[]storefront.Product],
		func(p FallbackProvider) []storefront.Product { return p.AllProducts() })
}

// ProductsByCategory fetches the products of one category
func (c *Client) ProductsByCategory(ctx context.Context, category string) (storefront.Envelope[[]storefront.Product], error) {
	return read(ctx, c, OpProductsByCategory, "/product/getProductsByCategory/"+url.PathEscape(category), MsgProducts,
		same[[]storefront.Product],
		func(p FallbackProvider) []storefront.Product { return p.ProductsByCategory(category) },
		telemetry.WithAttribute(telemetry.SpanAttrCategory, category))
}

// Categories fetches the category listing with display images attached
func (c *Client) Categories(ctx context.Context) (storefront.Envelope[[]storefront.Category], error) {
	return read(ctx, c, OpCategories, "/product/getAllCategories", MsgCategories,
		ToCategories,
		func(p FallbackProvider) []storefront.Category { return p.Categories() })
}

// Cart fetches the server-held cart
func (c *Client) Cart(ctx context.Context) (storefront.Envelope[storefront.Cart], error) {
	env, err := read(ctx, c, OpCart, "/cart/getCart", MsgCart,
		same[storefront.Cart],
		func(p FallbackProvider) storefront.Cart { return p.Cart() })
	if err == nil {
		c.checkCart(ctx, OpCart, env.Data)
	}
	return env, err
}

// AddItem adds one unit of productID to the cart
func (c *Client) AddItem(ctx context.Context, productID string) (storefront.Envelope[storefront.Cart], error) {
	return c.mutateCart(ctx, OpAddItem, "/cart/addItem/"+url.PathEscape(productID), MsgItemAdded, productID)
}

// RemoveItem removes one unit of productID from the cart
func (c *Client) RemoveItem(ctx context.Context, productID string) (storefront.Envelope[storefront.Cart], error) {
	return c.mutateCart(ctx, OpRemoveItem, "/cart/removeItem/"+url.PathEscape(productID), MsgItemRemoved, productID)
}

// ConfirmCartCleared re-reads the cart after an order. It never falls back.
func (c *Client) ConfirmCartCleared(ctx context.Context) (storefront.Envelope[storefront.Cart], error) {
	cart, err := call[storefront.Cart](ctx, c, OpConfirmCartCleared, http.MethodGet, "/cart/getCart", true)
	if err != nil {
		return storefront.Envelope[storefront.Cart]{}, err
	}
	c.checkCart(ctx, OpConfirmCartCleared, cart)
	return envelope(c, cart, MsgCartCleared), nil
}

// CreateOrder places an order for the current cart. The response body is ignored.
func (c *Client) CreateOrder(ctx context.Context) (storefront.Envelope[storefront.OrderMarker], error) {
	if _, err := call[storefront.OrderMarker](ctx, c, OpCreateOrder, http.MethodPost, "/order/createOrder", false); err != nil {
		return storefront.Envelope[storefront.OrderMarker]{}, err
	}
	return envelope(c, storefront.OrderMarker{}, MsgOrderCreated), nil
}

func (c *Client) mutateCart(ctx context.Context, op, path, msg, productID string) (storefront.Envelope[storefront.Cart], error) {
	cart, err := call[storefront.Cart](ctx, c, op, http.MethodPost, path, true,
		telemetry.WithAttribute(telemetry.SpanAttrProductID, productID))
	if err != nil {
		return storefront.Envelope[storefront.Cart]{}, err
	}
	c.checkCart(ctx, op, cart)
	return envelope(c, cart, msg), nil
}

// checkCart logs server carts that break the cart invariants. The data is
// passed on unchanged.
func (c *Client) checkCart(ctx context.Context, op string, cart storefront.Cart) {
	if violations := cart.Violations(); len(violations) > 0 {
		logger.WithLogger(ctx, c.logger).Warn("Commerce API returned an inconsistent cart",
			zap.String("operation", op),
			zap.Strings("violations", violations),
		)
	}
}

// read performs a GET, converts the wire payload and applies the read
// failure policy when anything goes wrong.
func read[W, T any](
	ctx context.Context,
	c *Client,
	op, path, msg string,
	convert func(W) T,
	fallback func(FallbackProvider) T,
	opts ...telemetry.SpanOption,
) (storefront.Envelope[T], error) {
	payload, err := call[W](ctx, c, op, http.MethodGet, path, true, opts...)
	if err == nil {
		return envelope(c, convert(payload), msg), nil
	}
	if !c.policy.Substitutes() {
		return storefront.Envelope[T]{}, err
	}

	logger.WithLogger(ctx, c.logger).Warn("Commerce API read failed, serving fallback data",
		zap.String("operation", op),
		zap.Error(err),
	)
	c.metrics.RecordFallback(ctx, op)
	telemetry.AddEvent(trace.SpanFromContext(ctx), "commerce.fallback", telemetry.SpanAttrOperation, op)
	return envelope(c, fallback(c.policy.fallback), msg), nil
}

// call performs one HTTP exchange inside a client span. When decode is false
// the response body is discarded.
func call[T any](ctx context.Context, c *Client, op, method, path string, decode bool, opts ...telemetry.SpanOption) (T, error) {
	spanOpts := append([]telemetry.SpanOption{
		telemetry.WithSpanKind(trace.SpanKindClient),
		telemetry.WithAttribute(telemetry.SpanAttrOperation, op),
	}, opts...)
	ctx, span := telemetry.StartSpan(ctx, "commerce."+op, spanOpts...)
	defer span.End()

	start := time.Now()
	var out T
	body, err := c.doRequest(ctx, method, path)
	if err == nil && decode {
		if derr := json.Unmarshal(body, &out); derr != nil {
			err = fmt.Errorf("%w: %v", storefront.ErrCommerceInvalidResponse, derr)
		}
	}

	outcome := "success"
	if err != nil {
		outcome = "failure"
		telemetry.RecordError(span, err)
	} else {
		telemetry.SetOK(span)
	}
	c.metrics.RecordCall(ctx, op, outcome, time.Since(start))
	return out, err
}

func (c *Client) doRequest(ctx context.Context, method, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("commerce: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storefront.ErrCommerceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", storefront.ErrCommerceUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: API returned %d: %s",
			storefront.ErrCommerceRequestFailed, resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return body, nil
}

func envelope[T any](c *Client, data T, msg string) storefront.Envelope[T] {
	return storefront.Envelope[T]{
		Status:    storefront.StatusSuccess,
		Data:      data,
		Message:   msg,
		Timestamp: c.now().UTC().Format(timestampLayout),
	}
}

func same[T any](v T) T { return v }
