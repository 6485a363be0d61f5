package storefront

import "github.com/shopspring/decimal"

// Product is a catalog entry as returned by the commerce API
type Product struct {
	ID          string          `json:"productId"`
	Name        string          `json:"productName"`
	Description string          `json:"productDescription"`
	ImageURL    string          `json:"productImageUrl"`
	Price       decimal.Decimal `json:"productPrice"`
	Category    *string         `json:"productCategory"`
}

// CategoryName returns the product category or "" when the product has none
func (p Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return *p.Category
}

// InCategory reports whether the product belongs to the named category.
// Matching is exact, the way the remote service filters.
func (p Product) InCategory(name string) bool {
	return p.Category != nil && *p.Category == name
}

// CategorySummary is the wire form of a category listing entry
type CategorySummary struct {
	Name          string `json:"categoryName"`
	TotalProducts int    `json:"totalProducts"`
}

// Category is a browsable category with its display image
type Category struct {
	Name          string `json:"name"`
	Image         string `json:"image"`
	TotalProducts int    `json:"totalProducts"`
}

// StringPtr is a small helper for building products with a category
func StringPtr(s string) *string {
	return &s
}
