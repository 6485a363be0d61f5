package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/techstore/storefront/internal/application/catalog"
	"github.com/techstore/storefront/internal/domain/shared"
	"github.com/techstore/storefront/internal/interfaces/http/dto"
	"github.com/techstore/storefront/internal/interfaces/http/middleware"
)

// CatalogHandler serves the home page, product listings and the
// add-to-cart button of product cards.
type CatalogHandler struct {
	BaseHandler
	service *catalog.Service
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(service *catalog.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// productURI binds the :productId path segment
type productURI struct {
	ProductID string `uri:"productId" binding:"required,max=128"`
}

// GetHomePage godoc
// @ID           getStorefrontHome
// @Summary      Home page
// @Description  Featured products and the category tiles, loaded together
// @Tags         storefront-catalog
// @Produce      json
// @Success      200 {object} APIResponse[dto.HomePageResponse]
// @Failure      502 {object} ErrorResponse
// @Router       /storefront/home [get]
func (h *CatalogHandler) GetHomePage(c *gin.Context) {
	page, err := h.service.HomePage(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.ToHomePageResponse(page))
}

// ListProducts godoc
// @ID           listStorefrontProducts
// @Summary      All products
// @Description  Every product in the catalog
// @Tags         storefront-catalog
// @Produce      json
// @Success      200 {object} APIResponse[dto.ProductsPageResponse]
// @Failure      502 {object} ErrorResponse
// @Router       /storefront/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	page, err := h.service.AllProducts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithTotal(c, dto.ToProductsPageResponse(page), len(page.Products))
}

// ListProductsByCategory godoc
// @ID           listStorefrontProductsByCategory
// @Summary      Products in a category
// @Description  Products whose category matches exactly
// @Tags         storefront-catalog
// @Produce      json
// @Param        category query string true "Category name" example(Electronics)
// @Success      200 {object} APIResponse[dto.ProductsPageResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Router       /storefront/products/by-category [get]
func (h *CatalogHandler) ListProductsByCategory(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		h.HandleError(c, shared.ErrCategoryRequired)
		return
	}
	page, err := h.service.ProductsByCategory(c.Request.Context(), category)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithTotal(c, dto.ToProductsPageResponse(page), len(page.Products))
}

// AddToCart godoc
// @ID           addStorefrontProductToCart
// @Summary      Add a product to the cart
// @Description  Adds one unit and returns the refreshed cart badge count
// @Tags         storefront-catalog
// @Produce      json
// @Param        productId path string true "Product ID"
// @Success      200 {object} APIResponse[dto.AddToCartResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Router       /storefront/products/{productId}/cart [post]
func (h *CatalogHandler) AddToCart(c *gin.Context) {
	var uri productURI
	if err := c.ShouldBindUri(&uri); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	count, err := h.service.AddToCart(c.Request.Context(), uri.ProductID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.AddToCartResponse{ProductID: uri.ProductID, CartCount: count})
}
