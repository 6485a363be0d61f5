package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/techstore/storefront/internal/application/cart"
	"github.com/techstore/storefront/internal/application/catalog"
	"github.com/techstore/storefront/internal/infrastructure/commerce"
	"github.com/techstore/storefront/internal/interfaces/http/middleware"
	"github.com/techstore/storefront/internal/testutil"
)

const testConfirmationDelay = 30 * time.Millisecond

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

type fixture struct {
	fake   *testutil.FakeCommerce
	store  *cart.Store
	views  *cart.ViewRegistry
	router *gin.Engine
}

// newFixture wires the handlers to a fake commerce API the same way the
// server does.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	fake := testutil.NewFakeCommerce(t, testutil.Products())
	client, err := commerce.NewClient(commerce.NewConfig(fake.URL()))
	require.NoError(t, err)

	store := cart.NewStore(client, zap.NewNop())
	require.NoError(t, store.Init(t.Context()))
	t.Cleanup(store.Teardown)

	views := cart.NewViewRegistry(client, store, cart.RegistryConfig{TTL: time.Minute, MaxViews: 8}, zap.NewNop(), nil)
	t.Cleanup(views.Close)

	checkout := cart.NewCheckoutSequencer(client, store, testConfirmationDelay, zap.NewNop(), nil)
	service := catalog.NewService(client, client, store, zap.NewNop())

	catalogHandler := NewCatalogHandler(service)
	cartHandler := NewCartHandler(store, views, checkout, zap.NewNop())

	router := gin.New()
	router.Use(middleware.RequestID())
	sf := router.Group("/storefront")
	sf.GET("/home", catalogHandler.GetHomePage)
	sf.GET("/products", catalogHandler.ListProducts)
	sf.GET("/products/by-category", catalogHandler.ListProductsByCategory)
	sf.POST("/products/:productId/cart", catalogHandler.AddToCart)
	sf.GET("/cart/count", cartHandler.GetCount)
	sf.POST("/cart/views", cartHandler.OpenView)
	sf.GET("/cart/views/:viewId", cartHandler.GetView)
	sf.POST("/cart/views/:viewId/retry", cartHandler.RetryView)
	sf.POST("/cart/views/:viewId/items/:productId/add", cartHandler.AddItem)
	sf.POST("/cart/views/:viewId/items/:productId/subtract", cartHandler.SubtractItem)
	sf.POST("/cart/views/:viewId/order", cartHandler.PlaceOrder)

	return &fixture{fake: fake, store: store, views: views, router: router}
}

func (f *fixture) do(method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

// decode unmarshals the response envelope and requires the expected status
func decode[T any](t *testing.T, w *httptest.ResponseRecorder, status int) APIResponse[T] {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())

	var resp APIResponse[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decodeOK[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	resp := decode[T](t, w, http.StatusOK)
	require.True(t, resp.Success)
	return resp.Data
}
