package fakestore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/pkg/httpjson"
)

const productsJSON = `[
  {"id":1,"title":"Fjallraven Backpack","price":109.95,"description":"bag","category":"men's clothing",
   "image":"https://img/1.jpg","rating":{"rate":3.9,"count":120}},
  {"id":2,"title":"Slim Fit T-Shirt","price":22.3,"description":"shirt","category":"men's clothing",
   "image":"https://img/2.jpg","rating":{"rate":4.1,"count":259}}
]`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(productsJSON))
	})
	mux.HandleFunc("/products/1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":1,"title":"Fjallraven Backpack","price":109.95,"category":"men's clothing"}`))
	})
	// Unknown ids come back as an empty 200.
	mux.HandleFunc("/products/999", func(w http.ResponseWriter, r *http.Request) {})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestProductClient(t *testing.T) {
	srv := newServer(t)
	pc := NewProductClient(httpjson.New(srv.URL))
	ctx := context.Background()

	t.Run("list", func(t *testing.T) {
		items, err := pc.ListProducts(ctx)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "109.95", items[0].Price.String())
		assert.Equal(t, 120, items[0].Rating.Count)
		assert.Equal(t, domain.SourceCommerce, items[1].Source)
	})

	t.Run("get", func(t *testing.T) {
		p, err := pc.GetProduct(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "Fjallraven Backpack", p.Title)
		assert.True(t, p.HasPrice())
	})

	t.Run("empty body is not found", func(t *testing.T) {
		_, err := pc.GetProduct(ctx, "999")
		assert.ErrorIs(t, err, app.ErrNotFound)
	})

	t.Run("404 is not found", func(t *testing.T) {
		_, err := pc.GetProduct(ctx, "12345")
		assert.ErrorIs(t, err, app.ErrNotFound)
	})
}
