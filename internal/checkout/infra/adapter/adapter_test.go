package adapter

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
)

type cartView struct{ s cartdomain.State }

func (v cartView) State() cartdomain.State { return v.s }

type productSource struct{}

func (productSource) ListProducts(ctx context.Context) ([]catalog.Product, error) { return nil, nil }

func (productSource) GetProduct(ctx context.Context, id string) (catalog.Product, error) {
	return catalog.Product{ID: 1, Title: "Backpack", Price: decimal.RequireFromString("109.95")}, nil
}

func TestCartStoreReader(t *testing.T) {
	s := cartdomain.Initial()
	s = cartdomain.Reduce(s, cartdomain.ItemAdded{Product: catalog.Product{ID: 1, Title: "Backpack", Price: decimal.NewFromInt(5), Source: catalog.SourceCommerce}})
	s = cartdomain.Reduce(s, cartdomain.ItemAdded{Product: catalog.Product{ID: 52772, Title: "Teriyaki", Source: catalog.SourceRecipe}})

	items, err := NewCartStoreReader(cartView{s: s}).GetCart(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].Priced)
	assert.Equal(t, "Backpack", items[0].Name)
	assert.False(t, items[1].Priced)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewCartStoreReader(cartView{s: s}).GetCart(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCatalogSourceReader(t *testing.T) {
	p, err := NewCatalogSourceReader(productSource{}).GetProduct(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Backpack", p.Name)
	assert.Equal(t, "109.95", p.Price.String())
}
