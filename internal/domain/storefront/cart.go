package storefront

import "github.com/shopspring/decimal"

// CartItem is one line of the server-held cart
type CartItem struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	Category     *string         `json:"productCategory"`
	Quantity     int             `json:"quantity"`
	ProductPrice decimal.Decimal `json:"productPrice"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
}

// TotalConsistent reports whether totalPrice == quantity * productPrice
func (i CartItem) TotalConsistent() bool {
	return i.TotalPrice.Equal(i.ProductPrice.Mul(decimal.NewFromInt(int64(i.Quantity))))
}

// OrderSummary carries the totals computed by the commerce service
type OrderSummary struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxPercentage decimal.Decimal `json:"taxPercentage"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	Total         decimal.Decimal `json:"total"`
}

// Balanced reports whether total == subtotal + taxAmount
func (s OrderSummary) Balanced() bool {
	return s.Total.Equal(s.Subtotal.Add(s.TaxAmount))
}

// Cart is the server-held cart. Items keep the order the server returned.
type Cart struct {
	Items      []CartItem   `json:"cartItems"`
	Summary    OrderSummary `json:"orderSummary"`
	TotalItems int          `json:"totalItems"`
}

// EmptyCart returns a cart with no items and zero totals at the given tax rate
func EmptyCart(taxPercentage decimal.Decimal) Cart {
	return Cart{
		Items: []CartItem{},
		Summary: OrderSummary{
			Subtotal:      decimal.Zero,
			TaxPercentage: taxPercentage,
			TaxAmount:     decimal.Zero,
			Total:         decimal.Zero,
		},
	}
}

// UnitCount is the number of units in the cart: the sum of item quantities,
// not the number of distinct lines.
func (c Cart) UnitCount() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no lines
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Item returns the line for productID, if present
func (c Cart) Item(productID string) (CartItem, bool) {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return CartItem{}, false
}

// Violations lists the cart invariants the server data breaks. An empty
// result means the cart is self-consistent.
func (c Cart) Violations() []string {
	var out []string
	for _, item := range c.Items {
		if item.Quantity <= 0 {
			out = append(out, "non-positive quantity for product "+item.ProductID)
		}
		if !item.TotalConsistent() {
			out = append(out, "item total mismatch for product "+item.ProductID)
		}
	}
	if c.TotalItems != c.UnitCount() {
		out = append(out, "totalItems does not match sum of quantities")
	}
	if !c.Summary.Balanced() {
		out = append(out, "order total does not equal subtotal plus tax")
	}
	return out
}
