// Package testutil provides test doubles shared across storefront packages,
// most importantly an in-process fake of the remote commerce API.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/techstore/storefront/internal/domain/storefront"
)

// Route names understood by FakeCommerce.Fail and FailNext
const (
	RouteFeatured   = "getFeaturedProducts"
	RouteAll        = "getAllProducts"
	RouteByCategory = "getProductsByCategory"
	RouteCategories = "getAllCategories"
	RouteCart       = "getCart"
	RouteAddItem    = "addItem"
	RouteRemoveItem = "removeItem"
	RouteOrder      = "createOrder"
)

type failure struct {
	status    int
	remaining int // -1 = until Recover
}

// FakeCommerce is an httptest server that behaves like the commerce API:
// it keeps a cart, computes totals with tax, and clears the cart when an
// order is created. Failures can be injected per route.
type FakeCommerce struct {
	server *httptest.Server

	mu            sync.Mutex
	products      []storefront.Product
	lines         []storefront.CartItem
	taxPercentage decimal.Decimal
	failures      map[string]*failure
	latency       map[string]time.Duration
	clearOnOrder  bool
	orders        int
	calls         []string
	lineSeq       int
}

// NewFakeCommerce starts a fake API serving products. It is closed when t ends.
func NewFakeCommerce(t testing.TB, products []storefront.Product) *FakeCommerce {
	t.Helper()
	f := &FakeCommerce{
		products:      products,
		taxPercentage: decimal.NewFromInt(18),
		failures:      map[string]*failure{},
		latency:       map[string]time.Duration{},
		clearOnOrder:  true,
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

// URL returns the API base URL, equivalent to http://host/api
func (f *FakeCommerce) URL() string {
	return f.server.URL + "/api"
}

// Close stops the server; later calls fail at the network level.
func (f *FakeCommerce) Close() {
	f.server.Close()
}

// Fail makes route answer with status until Recover is called.
func (f *FakeCommerce) Fail(route string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[route] = &failure{status: status, remaining: -1}
}

// FailNext makes the next n calls to route answer with status.
func (f *FakeCommerce) FailNext(route string, status, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[route] = &failure{status: status, remaining: n}
}

// Recover removes an injected failure.
func (f *FakeCommerce) Recover(route string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.failures, route)
}

// SetLatency delays every answer on route.
func (f *FakeCommerce) SetLatency(route string, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.latency[route] = d
}

// KeepCartOnOrder makes order creation leave the cart populated.
func (f *FakeCommerce) KeepCartOnOrder() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clearOnOrder = false
}

// Seed puts quantity units of productID in the cart.
func (f *FakeCommerce) Seed(productID string, quantity int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := 0; i < quantity; i++ {
		f.addLocked(productID)
	}
}

// Units returns the number of units in the server-held cart.
func (f *FakeCommerce) Units() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cartLocked().UnitCount()
}

// Orders returns how many orders were created.
func (f *FakeCommerce) Orders() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orders
}

// Calls returns "METHOD route" for every request received, in order.
func (f *FakeCommerce) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// CallCount returns how many times route was called.
func (f *FakeCommerce) CallCount(route string) int {
	n := 0
	for _, c := range f.Calls() {
		if strings.HasSuffix(c, " "+route) {
			n++
		}
	}
	return n
}

func (f *FakeCommerce) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.EscapedPath(), "/api/")
	parts := strings.SplitN(path, "/", 3)
	if len(parts) < 2 {
		http.NotFound(w, r)
		return
	}
	route := parts[1]
	arg := ""
	if len(parts) == 3 {
		arg, _ = url.PathUnescape(parts[2])
	}

	f.mu.Lock()
	f.calls = append(f.calls, r.Method+" "+route)
	delay := f.latency[route]
	status := 0
	if fl, ok := f.failures[route]; ok {
		status = fl.status
		if fl.remaining > 0 {
			fl.remaining--
			if fl.remaining == 0 {
				delete(f.failures, route)
			}
		}
	}
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if status != 0 {
		http.Error(w, http.StatusText(status), status)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && route == RouteFeatured:
		writeJSON(w, f.products[:min(4, len(f.products))])
	case r.Method == http.MethodGet && route == RouteAll:
		writeJSON(w, f.products)
	case r.Method == http.MethodGet && route == RouteByCategory:
		out := []storefront.Product{}
		for _, p := range f.products {
			if p.InCategory(arg) {
				out = append(out, p)
			}
		}
		writeJSON(w, out)
	case r.Method == http.MethodGet && route == RouteCategories:
		writeJSON(w, f.categoriesLocked())
	case r.Method == http.MethodGet && route == RouteCart:
		writeJSON(w, f.cartLocked())
	case r.Method == http.MethodPost && route == RouteAddItem:
		if !f.addLocked(arg) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		writeJSON(w, f.cartLocked())
	case r.Method == http.MethodPost && route == RouteRemoveItem:
		if !f.removeLocked(arg) {
			http.Error(w, "item not in cart", http.StatusNotFound)
			return
		}
		writeJSON(w, f.cartLocked())
	case r.Method == http.MethodPost && route == RouteOrder:
		f.orders++
		if f.clearOnOrder {
			f.lines = nil
		}
		writeJSON(w, map[string]any{"orderId": f.orders})
	default:
		http.NotFound(w, r)
	}
}

func (f *FakeCommerce) product(id string) (storefront.Product, bool) {
	for _, p := range f.products {
		if p.ID == id {
			return p, true
		}
	}
	return storefront.Product{}, false
}

func (f *FakeCommerce) addLocked(productID string) bool {
	p, ok := f.product(productID)
	if !ok {
		return false
	}
	for i := range f.lines {
		if f.lines[i].ProductID == productID {
			f.lines[i].Quantity++
			f.lines[i].TotalPrice = p.Price.Mul(decimal.NewFromInt(int64(f.lines[i].Quantity)))
			return true
		}
	}
	f.lineSeq++
	f.lines = append(f.lines, storefront.CartItem{
		ID:           "line-" + strconv.Itoa(f.lineSeq),
		ProductID:    p.ID,
		ProductName:  p.Name,
		Category:     p.Category,
		Quantity:     1,
		ProductPrice: p.Price,
		TotalPrice:   p.Price,
	})
	return true
}

func (f *FakeCommerce) removeLocked(productID string) bool {
	for i := range f.lines {
		if f.lines[i].ProductID != productID {
			continue
		}
		f.lines[i].Quantity--
		if f.lines[i].Quantity == 0 {
			f.lines = append(f.lines[:i], f.lines[i+1:]...)
			return true
		}
		f.lines[i].TotalPrice = f.lines[i].ProductPrice.Mul(decimal.NewFromInt(int64(f.lines[i].Quantity)))
		return true
	}
	return false
}

func (f *FakeCommerce) cartLocked() storefront.Cart {
	cart := storefront.EmptyCart(f.taxPercentage)
	subtotal := decimal.Zero
	for _, l := range f.lines {
		cart.Items = append(cart.Items, l)
		cart.TotalItems += l.Quantity
		subtotal = subtotal.Add(l.TotalPrice)
	}
	tax := subtotal.Mul(f.taxPercentage).Div(decimal.NewFromInt(100)).Round(2)
	cart.Summary.Subtotal = subtotal
	cart.Summary.TaxAmount = tax
	cart.Summary.Total = subtotal.Add(tax)
	return cart
}

func (f *FakeCommerce) categoriesLocked() []storefront.CategorySummary {
	counts := map[string]int{}
	order := []string{}
	for _, p := range f.products {
		name := p.CategoryName()
		if name == "" {
			continue
		}
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}
	out := make([]storefront.CategorySummary, 0, len(order))
	for _, name := range order {
		out = append(out, storefront.CategorySummary{Name: name, TotalProducts: counts[name]})
	}
	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
