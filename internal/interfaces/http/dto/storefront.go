package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	textcatalog "golang.org/x/text/message/catalog"

	"github.com/techstore/storefront/internal/application/cart"
	"github.com/techstore/storefront/internal/application/catalog"
	"github.com/techstore/storefront/internal/domain/storefront"
)

// Display strings of the cart page
const (
	UncategorizedLabel = "Uncategorized"
	EmptyCartLabel     = "Your cart is empty"
	OrderPlacedLabel   = "Order Placed!"
	OrderPlacedNote    = "Your order has been placed. Your cart will refresh shortly."
)

const (
	keyCartItems     = "%d item(s) in your cart"
	keyCategoryCount = "%d product(s)"
	keyTaxLabel      = "Tax (%s%%)"
)

var printer = newPrinter()

func newPrinter() *message.Printer {
	b := textcatalog.NewBuilder()
	_ = b.Set(language.English, keyCartItems, plural.Selectf(1, "%d",
		"=1", "1 item in your cart",
		"other", "%[1]d items in your cart",
	))
	_ = b.Set(language.English, keyCategoryCount, plural.Selectf(1, "%d",
		"=1", "1 product",
		"other", "%[1]d products",
	))
	_ = b.SetString(language.English, keyTaxLabel, "Tax (%s%%)")
	return message.NewPrinter(language.English, message.Catalog(b))
}

// FormatPrice renders an amount as $x.yy
func FormatPrice(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// ProductResponse is a product card
type ProductResponse struct {
	ID           string          `json:"productId" example:"aabdbb5b"`
	Name         string          `json:"name" example:"Wireless Headphones"`
	Description  string          `json:"description"`
	ImageURL     string          `json:"imageUrl"`
	Price        decimal.Decimal `json:"price" swaggertype:"string" example:"99.99"`
	DisplayPrice string          `json:"displayPrice" example:"$99.99"`
	Category     string          `json:"category" example:"Electronics"`
}

// CategoryResponse is a category tile
type CategoryResponse struct {
	Name          string `json:"name" example:"Electronics"`
	Image         string `json:"image"`
	TotalProducts int    `json:"totalProducts" example:"13"`
	CountLabel    string `json:"countLabel" example:"13 products"`
}

// HomePageResponse is the home page
type HomePageResponse struct {
	FeaturedTitle   string             `json:"featuredTitle" example:"Featured Products"`
	Featured        []ProductResponse  `json:"featured"`
	CategoriesTitle string             `json:"categoriesTitle" example:"Shop by Category"`
	Categories      []CategoryResponse `json:"categories"`
}

// ProductsPageResponse is a product listing page
type ProductsPageResponse struct {
	Category     string            `json:"category,omitempty"`
	Title        string            `json:"title" example:"All Products"`
	Subtitle     string            `json:"subtitle"`
	EmptyMessage string            `json:"emptyMessage"`
	Products     []ProductResponse `json:"products"`
}

// CartCountResponse is the cart badge
type CartCountResponse struct {
	Count   int  `json:"count" example:"3"`
	Loading bool `json:"loading"`
}

// CartItemResponse is one line of the cart page
type CartItemResponse struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"productId"`
	ProductName       string          `json:"productName"`
	Category          string          `json:"category"`
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unitPrice" swaggertype:"string"`
	TotalPrice        decimal.Decimal `json:"totalPrice" swaggertype:"string"`
	DisplayUnitPrice  string          `json:"displayUnitPrice" example:"$99.99"`
	DisplayTotalPrice string          `json:"displayTotalPrice" example:"$199.98"`
}

// OrderSummaryResponse is the totals box of the cart page
type OrderSummaryResponse struct {
	Subtotal      decimal.Decimal `json:"subtotal" swaggertype:"string"`
	TaxPercentage decimal.Decimal `json:"taxPercentage" swaggertype:"string"`
	TaxAmount     decimal.Decimal `json:"taxAmount" swaggertype:"string"`
	Total         decimal.Decimal `json:"total" swaggertype:"string"`
	TaxLabel      string          `json:"taxLabel" example:"Tax (18%)"`
	DisplayTotals struct {
		Subtotal  string `json:"subtotal" example:"$199.98"`
		TaxAmount string `json:"taxAmount" example:"$36.00"`
		Total     string `json:"total" example:"$235.98"`
	} `json:"displayTotals"`
}

// CartViewResponse is a cart page snapshot
type CartViewResponse struct {
	ViewID       string                `json:"viewId"`
	State        string                `json:"state" example:"ready" enums:"loading,ready,empty,error,order_placed"`
	Error        string                `json:"error,omitempty" example:"Failed to load cart"`
	Heading      string                `json:"heading" example:"2 items in your cart"`
	Confirmation string                `json:"confirmation,omitempty"`
	Items        []CartItemResponse    `json:"items"`
	Summary      *OrderSummaryResponse `json:"summary,omitempty"`
	TotalItems   int                   `json:"totalItems"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

// CartActionResponse is returned by quantity changes
type CartActionResponse struct {
	View           CartViewResponse `json:"view"`
	Reconciliation string           `json:"reconciliation,omitempty" enums:"succeeded,partial,failed"`
}

// CheckoutResponse is returned by order placement
type CheckoutResponse struct {
	View               CartViewResponse `json:"view"`
	OrderCreated       bool             `json:"orderCreated"`
	CartStillPopulated bool             `json:"cartStillPopulated"`
	ReloadAfterMs      int64            `json:"reloadAfterMs,omitempty"`
}

// AddToCartResponse is returned by the product card button
type AddToCartResponse struct {
	ProductID string `json:"productId"`
	CartCount int    `json:"cartCount"`
}

// ToProductResponse converts a product for display
func ToProductResponse(p storefront.Product) ProductResponse {
	category := p.CategoryName()
	if category == "" {
		category = UncategorizedLabel
	}
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		ImageURL:     p.ImageURL,
		Price:        p.Price,
		DisplayPrice: FormatPrice(p.Price),
		Category:     category,
	}
}

// ToProductResponses converts a product list
func ToProductResponses(products []storefront.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ToProductResponse(p))
	}
	return out
}

// ToCategoryResponses converts the category tiles
func ToCategoryResponses(categories []storefront.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryResponse{
			Name:          c.Name,
			Image:         c.Image,
			TotalProducts: c.TotalProducts,
			CountLabel:    printer.Sprintf(keyCategoryCount, c.TotalProducts),
		})
	}
	return out
}

// ToHomePageResponse converts the home page
func ToHomePageResponse(page *catalog.HomePage) HomePageResponse {
	return HomePageResponse{
		FeaturedTitle:   "Featured Products",
		Featured:        ToProductResponses(page.Featured),
		CategoriesTitle: "Shop by Category",
		Categories:      ToCategoryResponses(page.Categories),
	}
}

// ToProductsPageResponse converts a listing page
func ToProductsPageResponse(page *catalog.ProductsPage) ProductsPageResponse {
	return ProductsPageResponse{
		Category:     page.Category,
		Title:        page.Title,
		Subtitle:     page.Subtitle,
		EmptyMessage: page.EmptyMessage,
		Products:     ToProductResponses(page.Products),
	}
}

// CartHeading returns "N items in your cart" or the empty cart text
func CartHeading(units int) string {
	if units == 0 {
		return EmptyCartLabel
	}
	return printer.Sprintf(keyCartItems, units)
}

// ToCartViewResponse converts a cart page snapshot
func ToCartViewResponse(v cart.View) CartViewResponse {
	resp := CartViewResponse{
		ViewID:    v.ID,
		State:     string(v.State),
		Error:     v.Error,
		Heading:   EmptyCartLabel,
		Items:     []CartItemResponse{},
		UpdatedAt: v.UpdatedAt,
	}
	if v.State == cart.StateOrderPlaced {
		resp.Confirmation = OrderPlacedLabel
	}
	if v.Cart == nil {
		return resp
	}

	for _, item := range v.Cart.Items {
		category := UncategorizedLabel
		if item.Category != nil {
			category = *item.Category
		}
		resp.Items = append(resp.Items, CartItemResponse{
			ID:                item.ID,
			ProductID:         item.ProductID,
			ProductName:       item.ProductName,
			Category:          category,
			Quantity:          item.Quantity,
			UnitPrice:         item.ProductPrice,
			TotalPrice:        item.TotalPrice,
			DisplayUnitPrice:  FormatPrice(item.ProductPrice),
			DisplayTotalPrice: FormatPrice(item.TotalPrice),
		})
	}
	resp.TotalItems = v.Cart.TotalItems
	resp.Heading = CartHeading(v.Cart.TotalItems)
	resp.Summary = toOrderSummaryResponse(v.Cart.Summary)
	return resp
}

func toOrderSummaryResponse(s storefront.OrderSummary) *OrderSummaryResponse {
	out := &OrderSummaryResponse{
		Subtotal:      s.Subtotal,
		TaxPercentage: s.TaxPercentage,
		TaxAmount:     s.TaxAmount,
		Total:         s.Total,
		TaxLabel:      printer.Sprintf(keyTaxLabel, s.TaxPercentage.String()),
	}
	out.DisplayTotals.Subtotal = FormatPrice(s.Subtotal)
	out.DisplayTotals.TaxAmount = FormatPrice(s.TaxAmount)
	out.DisplayTotals.Total = FormatPrice(s.Total)
	return out
}
