package domain

import (
	"github.com/shopspring/decimal"
)

// AllCategories is the category sentinel that selects the unfiltered list.
const AllCategories = "all"

// Source identifies the upstream API that produced a product list.
type Source string

const (
	SourceCommerce Source = "commerce"
	SourceRecipe   Source = "recipe"
)

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image,omitempty"`
	Rating      Rating          `json:"rating"`
	Source      Source          `json:"source,omitempty"`
}

// HasPrice reports whether Price and Category carry real values. Recipe items are
// zero-filled and must be shown as unpriced.
func (p Product) HasPrice() bool {
	return p.Source != SourceRecipe
}

func IsAllCategories(category string) bool {
	return category == AllCategories
}

// FilterByCategory keeps products whose Category equals category exactly.
// The AllCategories sentinel returns items unchanged.
func FilterByCategory(items []Product, category string) []Product {
	if IsAllCategories(category) {
		return items
	}
	out := make([]Product, 0, len(items))
	for _, p := range items {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}
