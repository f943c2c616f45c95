package adapter

import (
	"context"

	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
)

type CatalogSourceReader struct {
	src catalogapp.ProductSource
}

func NewCatalogSourceReader(src catalogapp.ProductSource) *CatalogSourceReader {
	return &CatalogSourceReader{src: src}
}

func (r *CatalogSourceReader) GetProduct(ctx context.Context, productID string) (checkoutapp.Product, error) {
	p, err := r.src.GetProduct(ctx, productID)
	if err != nil {
		return checkoutapp.Product{}, err
	}

	return checkoutapp.Product{
		ID:    p.ID,
		Name:  p.Title,
		Price: p.Price,
	}, nil
}
