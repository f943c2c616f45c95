package app

import (
	"context"

	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

// RemoteCart is the upstream cart API. It has no remove endpoint; a line is removed
// by sending quantity 0.
type RemoteCart interface {
	GetUserCarts(ctx context.Context, userID int) ([]domain.RemoteCart, error)
	PutCart(ctx context.Context, cartID int, lines []domain.RemoteLine) (domain.RemoteCart, error)
}

// ProductResolver hydrates remote lines, which carry only product id and quantity.
type ProductResolver interface {
	GetProduct(ctx context.Context, id string) (catalog.Product, error)
}

// StateStore is the cart view of the application store.
type StateStore interface {
	State() domain.State
	Dispatch(action domain.Action)
	NextRequestID() uint64
}
