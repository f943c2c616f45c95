package store

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	cart "github.com/dwikikusuma/storefront/internal/cart/domain"
	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
)

// VisibleProducts is the listing for category. Recipe lists are filtered upstream, so
// only commerce lists are narrowed here.
func VisibleProducts(s State, category string) []catalog.Product {
	items := s.Catalog.Items
	if category == "" || catalog.IsAllCategories(category) || s.Catalog.SourceMode == catalog.SourceRecipe {
		return items
	}
	return catalog.FilterByCategory(items, category)
}

// CartQuantity is the number of units in the cart, for badges.
func CartQuantity(s State) int {
	n := 0
	for _, l := range s.Cart.Lines {
		n += l.Quantity
	}
	return n
}

func QuantityOf(s State, productID int) int {
	if i := cart.Find(s.Cart.Lines, productID); i >= 0 {
		return s.Cart.Lines[i].Quantity
	}
	return 0
}

// Summary is the checkout breakdown. Amounts are rounded to cents; the store itself
// keeps exact values.
type Summary struct {
	Lines    int
	Units    int
	Subtotal decimal.Decimal
	Delivery decimal.Decimal
	Total    decimal.Decimal
}

// CartSummary charges deliveryFee only when the cart has lines.
func CartSummary(s State, deliveryFee decimal.Decimal) Summary {
	sum := Summary{
		Lines:    len(s.Cart.Lines),
		Units:    CartQuantity(s),
		Subtotal: s.Cart.Subtotal,
		Delivery: decimal.Zero,
	}
	if sum.Lines > 0 {
		sum.Delivery = deliveryFee
	}
	sum.Total = sum.Subtotal.Add(sum.Delivery).Round(2)
	sum.Subtotal = sum.Subtotal.Round(2)
	sum.Delivery = sum.Delivery.Round(2)
	return sum
}

func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Lines    int    `json:"lines"`
		Units    int    `json:"units"`
		Subtotal string `json:"subtotal"`
		Delivery string `json:"delivery"`
		Total    string `json:"total"`
	}{
		Lines:    s.Lines,
		Units:    s.Units,
		Subtotal: s.Subtotal.StringFixed(2),
		Delivery: s.Delivery.StringFixed(2),
		Total:    s.Total.StringFixed(2),
	})
}
