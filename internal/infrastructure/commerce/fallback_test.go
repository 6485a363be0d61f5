package commerce

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticFallback(t *testing.T) {
	f := NewStaticFallback(decimal.NewFromInt(18))

	all := f.AllProducts()
	require.Len(t, all, 8)
	assert.Equal(t, f.AllProducts(), all, "fallback data must be deterministic")

	featured := f.FeaturedProducts()
	assert.Equal(t, all[:4], featured)

	featured[0].Name = "mutated"
	assert.Equal(t, "Wireless Headphones", f.FeaturedProducts()[0].Name)

	assert.Len(t, f.ProductsByCategory("Electronics"), 4)
	assert.Len(t, f.ProductsByCategory("Clothing"), 2)
	assert.Len(t, f.ProductsByCategory("electronics"), 0)
	assert.NotNil(t, f.ProductsByCategory("Garden"))

	categories := f.Categories()
	require.Len(t, categories, 4)
	totals := map[string]int{}
	for _, c := range categories {
		totals[c.Name] = c.TotalProducts
		assert.NotEmpty(t, c.Image)
	}
	assert.Equal(t, map[string]int{"Electronics": 13, "Clothing": 15, "Books": 7, "Sports": 10}, totals)

	cart := f.Cart()
	assert.True(t, cart.IsEmpty())
	assert.NotNil(t, cart.Items)
	assert.True(t, cart.Summary.Total.IsZero())
	assert.Empty(t, cart.Violations())
}

func TestCategoryImage(t *testing.T) {
	assert.Contains(t, CategoryImage("Electronics"), "photo-1498049794561-7780e7231661")
	assert.Equal(t, DefaultCategoryImage, CategoryImage("Garden"))
	assert.Equal(t, DefaultCategoryImage, CategoryImage(""))
}

func TestReadFailurePolicy(t *testing.T) {
	assert.False(t, PropagateReadFailures().Substitutes())
	assert.Equal(t, "propagate", PropagateReadFailures().String())

	p := SubstituteOnReadFailure(NewStaticFallback(decimal.Zero))
	assert.True(t, p.Substitutes())
	assert.Equal(t, "substitute", p.String())
}
