package adapter

import (
	"context"

	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
)

// CartView is the read side of the cart slice.
type CartView interface {
	State() cartdomain.State
}

type CartStoreReader struct {
	view CartView
}

func NewCartStoreReader(view CartView) *CartStoreReader {
	return &CartStoreReader{view: view}
}

func (r *CartStoreReader) GetCart(ctx context.Context) ([]checkoutapp.CartItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines := r.view.State().Lines
	items := make([]checkoutapp.CartItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, checkoutapp.CartItem{
			ProductID: l.ID,
			Name:      l.Title,
			Price:     l.Price,
			Quantity:  l.Quantity,
			Priced:    l.HasPrice(),
		})
	}
	return items, nil
}
