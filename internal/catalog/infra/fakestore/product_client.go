package fakestore

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-faster/errors"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/pkg/httpjson"
)

// ProductClient reads the commerce catalog (GET /products, GET /products/{id}).
type ProductClient struct {
	c *httpjson.Client
}

func NewProductClient(c *httpjson.Client) *ProductClient {
	return &ProductClient{c: c}
}

func (pc *ProductClient) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := pc.c.GetJSON(ctx, "/products", nil, &out); err != nil {
		return nil, errors.Wrap(err, "list products")
	}

	items := make([]domain.Product, 0, len(out))
	for _, p := range out {
		p.Source = domain.SourceCommerce
		items = append(items, p)
	}
	return items, nil
}

// GetProduct maps an unknown id to app.ErrNotFound. The upstream answers unknown ids
// with either 404 or an empty 200.
func (pc *ProductClient) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	err := pc.c.GetJSON(ctx, "/products/"+url.PathEscape(id), nil, &p)
	if errors.Is(err, httpjson.ErrEmptyBody) || httpjson.IsStatus(err, http.StatusNotFound) {
		return domain.Product{}, errors.Wrapf(app.ErrNotFound, "product %s", id)
	}
	if err != nil {
		return domain.Product{}, errors.Wrapf(err, "get product %s", id)
	}
	if p.ID == 0 {
		return domain.Product{}, errors.Wrapf(app.ErrNotFound, "product %s", id)
	}

	p.Source = domain.SourceCommerce
	return p, nil
}
