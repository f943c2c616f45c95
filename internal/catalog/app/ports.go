package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

// ProductSource is the commerce catalog API.
type ProductSource interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
}

// RecipeSource is the alternate catalog API. It filters by category server-side.
type RecipeSource interface {
	ListCategories(ctx context.Context) ([]string, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	ListAll(ctx context.Context) ([]domain.Product, error)
}

// StateStore is the catalog view of the application store.
type StateStore interface {
	State() domain.State
	Dispatch(action domain.Action)
	NextRequestID() uint64
}
