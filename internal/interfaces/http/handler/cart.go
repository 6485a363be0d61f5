package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/techstore/storefront/internal/application/cart"
	"github.com/techstore/storefront/internal/infrastructure/logger"
	"github.com/techstore/storefront/internal/interfaces/http/dto"
	"github.com/techstore/storefront/internal/interfaces/http/middleware"
)

// CartHandler serves the cart badge and the cart pages
type CartHandler struct {
	BaseHandler
	store    *cart.Store
	views    *cart.ViewRegistry
	checkout *cart.CheckoutSequencer
	logger   *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(store *cart.Store, views *cart.ViewRegistry, checkout *cart.CheckoutSequencer, log *zap.Logger) *CartHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CartHandler{
		store:    store,
		views:    views,
		checkout: checkout,
		logger:   log.Named("cart_handler"),
	}
}

type viewURI struct {
	ViewID string `uri:"viewId" binding:"required,uuid"`
}

type itemURI struct {
	ViewID    string `uri:"viewId" binding:"required,uuid"`
	ProductID string `uri:"productId" binding:"required,max=128"`
}

// GetCount godoc
// @ID           getStorefrontCartCount
// @Summary      Cart badge
// @Description  Total units in the cart as last seen by the shared cart state
// @Tags         storefront-cart
// @Produce      json
// @Success      200 {object} APIResponse[dto.CartCountResponse]
// @Failure      500 {object} ErrorResponse
// @Router       /storefront/cart/count [get]
func (h *CartHandler) GetCount(c *gin.Context) {
	count, err := h.store.Count()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.CartCountResponse{Count: count, Loading: h.store.Loading()})
}

// OpenView godoc
// @ID           openStorefrontCartView
// @Summary      Open a cart page
// @Description  Creates a cart page and loads the cart. A failed load is reported in the view state.
// @Tags         storefront-cart
// @Produce      json
// @Success      201 {object} APIResponse[dto.CartViewResponse]
// @Router       /storefront/cart/views [post]
func (h *CartHandler) OpenView(c *gin.Context) {
	_, view := h.views.Open(c.Request.Context())
	h.Created(c, dto.ToCartViewResponse(view))
}

// GetView godoc
// @ID           getStorefrontCartView
// @Summary      Get a cart page
// @Description  Current snapshot of the cart page without refetching
// @Tags         storefront-cart
// @Produce      json
// @Param        viewId path string true "Cart view ID" format(uuid)
// @Success      200 {object} APIResponse[dto.CartViewResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /storefront/cart/views/{viewId} [get]
func (h *CartHandler) GetView(c *gin.Context) {
	controller, ok := h.controller(c)
	if !ok {
		return
	}
	h.Success(c, dto.ToCartViewResponse(controller.Snapshot()))
}

// RetryView godoc
// @ID           retryStorefrontCartView
// @Summary      Retry loading a cart page
// @Tags         storefront-cart
// @Produce      json
// @Param        viewId path string true "Cart view ID" format(uuid)
// @Success      200 {object} APIResponse[dto.CartViewResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /storefront/cart/views/{viewId}/retry [post]
func (h *CartHandler) RetryView(c *gin.Context) {
	controller, ok := h.controller(c)
	if !ok {
		return
	}
	h.Success(c, dto.ToCartViewResponse(controller.Retry(c.Request.Context())))
}

// AddItem godoc
// @ID           addStorefrontCartItem
// @Summary      Add one unit
// @Description  Adds one unit, then reloads the cart page and the cart badge
// @Tags         storefront-cart
// @Produce      json
// @Param        viewId    path string true "Cart view ID" format(uuid)
// @Param        productId path string true "Product ID"
// @Success      200 {object} APIResponse[dto.CartActionResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /storefront/cart/views/{viewId}/items/{productId}/add [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	h.adjust(c, cart.AddOne)
}

// SubtractItem godoc
// @ID           subtractStorefrontCartItem
// @Summary      Remove one unit
// @Description  Removes one unit, then reloads the cart page and the cart badge
// @Tags         storefront-cart
// @Produce      json
// @Param        viewId    path string true "Cart view ID" format(uuid)
// @Param        productId path string true "Product ID"
// @Success      200 {object} APIResponse[dto.CartActionResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /storefront/cart/views/{viewId}/items/{productId}/subtract [post]
func (h *CartHandler) SubtractItem(c *gin.Context) {
	h.adjust(c, cart.SubtractOne)
}

// PlaceOrder godoc
// @ID           placeStorefrontOrder
// @Summary      Place the order
// @Description  Creates the order and shows the confirmation. The page reloads itself after reloadAfterMs.
// @Tags         storefront-cart
// @Produce      json
// @Param        viewId path string true "Cart view ID" format(uuid)
// @Success      200 {object} APIResponse[dto.CheckoutResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /storefront/cart/views/{viewId}/order [post]
func (h *CartHandler) PlaceOrder(c *gin.Context) {
	controller, ok := h.controller(c)
	if !ok {
		return
	}

	result, err := h.checkout.PlaceOrder(c.Request.Context(), controller)
	resp := dto.CheckoutResponse{
		View:               dto.ToCartViewResponse(controller.Snapshot()),
		OrderCreated:       result.OrderCreated,
		CartStillPopulated: result.CartStillPopulated,
	}
	if err != nil {
		logger.WithLogger(c.Request.Context(), h.logger).Warn("Order placement failed", zap.Error(err))
	} else {
		resp.ReloadAfterMs = h.checkout.Delay().Milliseconds()
	}
	h.Success(c, resp)
}

// adjust applies a quantity change. Failures are part of the returned view.
func (h *CartHandler) adjust(c *gin.Context, action cart.Action) {
	var uri itemURI
	if err := c.ShouldBindUri(&uri); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	controller, ok := h.lookup(c, uri.ViewID)
	if !ok {
		return
	}

	rec, err := controller.Adjust(c.Request.Context(), uri.ProductID, action)
	if err != nil {
		logger.WithLogger(c.Request.Context(), h.logger).Warn("Cart update failed",
			zap.String("product_id", uri.ProductID),
			zap.String("action", string(action)),
			zap.Error(err))
	}
	h.Success(c, dto.CartActionResponse{
		View:           dto.ToCartViewResponse(controller.Snapshot()),
		Reconciliation: string(rec.Outcome),
	})
}

func (h *CartHandler) controller(c *gin.Context) (*cart.Controller, bool) {
	var uri viewURI
	if err := c.ShouldBindUri(&uri); err != nil {
		middleware.HandleValidationError(c, err)
		return nil, false
	}
	return h.lookup(c, uri.ViewID)
}

// lookup resolves the cart page and tags the request context with its ID
func (h *CartHandler) lookup(c *gin.Context, viewID string) (*cart.Controller, bool) {
	controller, err := h.views.Get(viewID)
	if err != nil {
		h.HandleError(c, err)
		return nil, false
	}
	c.Request = c.Request.WithContext(logger.WithViewID(c.Request.Context(), viewID))
	return controller, true
}
