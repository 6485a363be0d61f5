package commerce

import (
	"github.com/shopspring/decimal"

	"github.com/techstore/storefront/internal/domain/storefront"
)

// FallbackProvider supplies the data returned when a read fails and the
// client substitutes instead of propagating.
type FallbackProvider interface {
	FeaturedProducts() []storefront.Product
	AllProducts() []storefront.Product
	ProductsByCategory(category string) []storefront.Product
	Categories() []storefront.Category
	Cart() storefront.Cart
}

// featuredCount is how many catalog entries the featured listing shows
const featuredCount = 4

// StaticFallback serves a fixed demo catalog and an empty cart.
type StaticFallback struct {
	products      []storefront.Product
	categories    []storefront.Category
	taxPercentage decimal.Decimal
}

// NewStaticFallback builds the demo dataset; the empty cart carries taxPercentage.
func NewStaticFallback(taxPercentage decimal.Decimal) *StaticFallback {
	return &StaticFallback{
		products:      demoProducts(),
		categories:    demoCategories(),
		taxPercentage: taxPercentage,
	}
}

func (f *StaticFallback) FeaturedProducts() []storefront.Product {
	n := min(featuredCount, len(f.products))
	return cloneProducts(f.products[:n])
}

func (f *StaticFallback) AllProducts() []storefront.Product {
	return cloneProducts(f.products)
}

func (f *StaticFallback) ProductsByCategory(category string) []storefront.Product {
	out := []storefront.Product{}
	for _, p := range f.products {
		if p.InCategory(category) {
			out = append(out, p)
		}
	}
	return out
}

func (f *StaticFallback) Categories() []storefront.Category {
	return append([]storefront.Category(nil), f.categories...)
}

func (f *StaticFallback) Cart() storefront.Cart {
	return storefront.EmptyCart(f.taxPercentage)
}

func cloneProducts(in []storefront.Product) []storefront.Product {
	return append([]storefront.Product{}, in...)
}

func demoProduct(id, name, description, photo, price, category string) storefront.Product {
	return storefront.Product{
		ID:          id,
		Name:        name,
		Description: description,
		ImageURL:    "https://images.unsplash.com/" + photo + "?w=300&h=300&fit=crop",
		Price:       decimal.RequireFromString(price),
		Category:    storefront.StringPtr(category),
	}
}

func demoProducts() []storefront.Product {
	return []storefront.Product{
		demoProduct("aabdbb5b", "Wireless Headphones",
			"High-quality wireless headphones with noise cancellation",
			"photo-1505740420928-5e560c06d30e", "99.99", "Electronics"),
		demoProduct("smartwatch123", "Smart Watch",
			"Feature-rich smartwatch with health tracking",
			"photo-1523275335684-37898b6baf30", "199.99", "Electronics"),
		demoProduct("laptopstand456", "Laptop Stand",
			"Ergonomic laptop stand for better posture",
			"photo-1586953208448-b95a79798f07", "49.99", "Electronics"),
		demoProduct("wirelessmouse789", "Wireless Mouse",
			"Precision wireless mouse for productivity",
			"photo-1527864550417-7fd91fc51a46", "29.99", "Electronics"),
		demoProduct("tshirt101", "T Shirt",
			"Comfortable cotton t-shirt in various colors",
			"photo-1521572163474-6864f9cf17ab", "24.99", "Clothing"),
		demoProduct("denimjeans202", "Denim Jeans",
			"Classic denim jeans with perfect fit",
			"photo-1542272604-787c3835535d", "79.99", "Clothing"),
		demoProduct("programmingbook303", "Programming Book",
			"Comprehensive guide to modern programming",
			"photo-1544947950-fa07a98d237f", "49.99", "Books"),
		demoProduct("yogamat404", "Yoga Mat",
			"Non-slip yoga mat for home workouts",
			"photo-1544367567-0f2fcb009e0b", "29.99", "Sports"),
	}
}

func demoCategories() []storefront.Category {
	return ToCategories([]storefront.CategorySummary{
		{Name: "Electronics", TotalProducts: 13},
		{Name: "Clothing", TotalProducts: 15},
		{Name: "Books", TotalProducts: 7},
		{Name: "Sports", TotalProducts: 10},
	})
}
