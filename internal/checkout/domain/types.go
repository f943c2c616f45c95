package domain

import "github.com/shopspring/decimal"

type QuoteLine struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
	// PriceChanged is set when the catalog price differs from the one in the cart.
	PriceChanged bool `json:"priceChanged,omitempty"`
}

type Quote struct {
	Lines    []QuoteLine     `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Delivery decimal.Decimal `json:"delivery"`
	Total    decimal.Decimal `json:"total"`
}
