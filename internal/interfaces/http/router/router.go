// Package router assembles the versioned storefront API routes.
package router

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"github.com/techstore/storefront/internal/interfaces/http/handler"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// BasePath returns the versioned API prefix, e.g. /api/v1
func (r *Router) BasePath() string {
	return "/api/" + r.apiVersion
}

// Register adds a RouteRegistrar to be registered by Setup
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group(r.BasePath())
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// RouteInfo describes one registered endpoint
type RouteInfo struct {
	Method      string
	Path        string
	Description string
}

type routeDefinition struct {
	method      string
	path        string
	handlers    []gin.HandlerFunc
	description string
}

// DomainGroup collects the routes of one area of the API under a prefix
type DomainGroup struct {
	name       string
	prefix     string
	routes     []routeDefinition
	subgroups  []*DomainGroup
	middleware []gin.HandlerFunc
}

// NewDomainGroup creates a new domain-specific route group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Use adds middleware to this group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path, description string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodGet, path, description, handlers)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path, description string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPost, path, description, handlers)
}

func (dg *DomainGroup) handle(method, path, description string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{
		method:      method,
		path:        path,
		handlers:    handlers,
		description: description,
	})
	return dg
}

// Group creates a sub-group within this domain
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	subgroup := NewDomainGroup(name, prefix)
	dg.subgroups = append(dg.subgroups, subgroup)
	return subgroup
}

// RegisterRoutes implements RouteRegistrar
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix)
	if len(dg.middleware) > 0 {
		group.Use(dg.middleware...)
	}
	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}
	for _, subgroup := range dg.subgroups {
		subgroup.RegisterRoutes(group)
	}
}

// Routes lists the group's endpoints, subgroups included, relative to the
// API base path.
func (dg *DomainGroup) Routes() []RouteInfo {
	var out []RouteInfo
	for _, route := range dg.routes {
		out = append(out, RouteInfo{
			Method:      route.method,
			Path:        path.Join("/", dg.prefix, route.path),
			Description: route.description,
		})
	}
	for _, subgroup := range dg.subgroups {
		for _, info := range subgroup.Routes() {
			info.Path = path.Join("/", dg.prefix, info.Path)
			out = append(out, info)
		}
	}
	return out
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}

// NewStorefrontGroup maps the catalog and cart endpoints under /storefront
func NewStorefrontGroup(catalog *handler.CatalogHandler, cart *handler.CartHandler) *DomainGroup {
	sf := NewDomainGroup("storefront", "/storefront")
	sf.GET("/home", "Home page: featured products and categories", catalog.GetHomePage)

	products := sf.Group("products", "/products")
	products.GET("", "All products", catalog.ListProducts)
	products.GET("/by-category", "Products of one category", catalog.ListProductsByCategory)
	products.POST("/:productId/cart", "Add one unit to the cart", catalog.AddToCart)

	c := sf.Group("cart", "/cart")
	c.GET("/count", "Cart badge count", cart.GetCount)
	c.POST("/views", "Open a cart page", cart.OpenView)
	c.GET("/views/:viewId", "Cart page snapshot", cart.GetView)
	c.POST("/views/:viewId/retry", "Retry loading a cart page", cart.RetryView)
	c.POST("/views/:viewId/items/:productId/add", "Add one unit from the cart page", cart.AddItem)
	c.POST("/views/:viewId/items/:productId/subtract", "Remove one unit from the cart page", cart.SubtractItem)
	c.POST("/views/:viewId/order", "Place the order", cart.PlaceOrder)
	return sf
}

// NewSystemGroup maps the system endpoints under /system
func NewSystemGroup(system *handler.SystemHandler) *DomainGroup {
	sys := NewDomainGroup("system", "/system")
	sys.GET("/ping", "Liveness ping", system.Ping)
	sys.GET("/info", "Build and runtime information", system.GetSystemInfo)
	return sys
}
