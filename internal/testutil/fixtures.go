package testutil

import (
	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"github.com/techstore/storefront/internal/domain/storefront"
)

// Products returns a small fixed catalog used across tests
func Products() []storefront.Product {
	return []storefront.Product{
		product("aabdbb5b", "Wireless Headphones", "99.99", "Electronics"),
		product("smartwatch123", "Smart Watch", "199.99", "Electronics"),
		product("tshirt101", "T Shirt", "24.99", "Clothing"),
		product("denimjeans202", "Denim Jeans", "79.99", "Clothing"),
		product("programmingbook303", "Programming Book", "49.99", "Books"),
		product("yogamat404", "Yoga Mat", "29.99", "Sports"),
	}
}

// FakeProducts generates n random products deterministically from seed
func FakeProducts(seed uint64, n int) []storefront.Product {
	f := gofakeit.New(seed)
	out := make([]storefront.Product, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, storefront.Product{
			ID:          f.UUID(),
			Name:        f.ProductName(),
			Description: f.Sentence(8),
			ImageURL:    f.URL(),
			Price:       decimal.NewFromFloat(f.Price(1, 500)).Round(2),
			Category:    storefront.StringPtr(f.ProductCategory()),
		})
	}
	return out
}

func product(id, name, price, category string) storefront.Product {
	return storefront.Product{
		ID:          id,
		Name:        name,
		Description: name + " description",
		ImageURL:    "https://images.example.com/" + id + ".jpg",
		Price:       decimal.RequireFromString(price),
		Category:    storefront.StringPtr(category),
	}
}
