package storefront

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

// buildCart mirrors how the commerce service assembles a consistent cart.
func buildCart(quantities []int, cents []int64) Cart {
	cart := EmptyCart(decimal.NewFromInt(18))
	subtotal := decimal.Zero
	for i, q := range quantities {
		price := decimal.New(cents[i%len(cents)], -2)
		total := price.Mul(decimal.NewFromInt(int64(q)))
		cart.Items = append(cart.Items, CartItem{
			ID:           fmt.Sprintf("line-%d", i),
			ProductID:    fmt.Sprintf("product-%d", i),
			Quantity:     q,
			ProductPrice: price,
			TotalPrice:   total,
		})
		cart.TotalItems += q
		subtotal = subtotal.Add(total)
	}
	tax := subtotal.Mul(cart.Summary.TaxPercentage).Div(decimal.NewFromInt(100)).Round(2)
	cart.Summary.Subtotal = subtotal
	cart.Summary.TaxAmount = tax
	cart.Summary.Total = subtotal.Add(tax)
	return cart
}

func TestCartProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	quantities := gen.SliceOf(gen.IntRange(1, 25))
	prices := gen.SliceOfN(4, gen.Int64Range(0, 100000))

	properties.Property("unit count is the sum of quantities", prop.ForAll(
		func(qs []int, cents []int64) bool {
			sum := 0
			for _, q := range qs {
				sum += q
			}
			return buildCart(qs, cents).UnitCount() == sum
		},
		quantities, prices,
	))

	properties.Property("consistent carts report no violations", prop.ForAll(
		func(qs []int, cents []int64) bool {
			return len(buildCart(qs, cents).Violations()) == 0
		},
		quantities, prices,
	))

	properties.Property("emptiness follows the item list", prop.ForAll(
		func(qs []int, cents []int64) bool {
			c := buildCart(qs, cents)
			return c.IsEmpty() == (len(qs) == 0) && (c.UnitCount() == 0) == c.IsEmpty()
		},
		quantities, prices,
	))

	properties.Property("a skewed line total is always detected", prop.ForAll(
		func(q int, cents int64, skew int64) bool {
			price := decimal.New(cents, -2)
			item := CartItem{
				Quantity:     q,
				ProductPrice: price,
				TotalPrice:   price.Mul(decimal.NewFromInt(int64(q))).Add(decimal.New(skew, -2)),
			}
			return !item.TotalConsistent()
		},
		gen.IntRange(1, 50), gen.Int64Range(0, 100000), gen.Int64Range(1, 1000),
	))

	properties.TestingRun(t)
}
