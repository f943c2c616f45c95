package mealdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/pkg/httpjson"
)

func TestRecipeClient(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/categories.php", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"categories":[
			{"idCategory":"1","strCategory":"Beef","strCategoryThumb":"x"},
			{"idCategory":"2","strCategory":"Chicken"}]}`))
	})
	mux.HandleFunc("/filter.php", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("c") != "Beef" {
			_, _ = w.Write([]byte(`{"meals":null}`))
			return
		}
		_, _ = w.Write([]byte(`{"meals":[
			{"strMeal":"Beef and Mustard Pie","strMealThumb":"https://img/pie.jpg","idMeal":"52874"},
			{"strMeal":"Broken","idMeal":"n/a"}]}`))
	})
	mux.HandleFunc("/search.php", func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.URL.Query()["s"]
		assert.True(t, ok, "empty search term is still sent")
		_, _ = w.Write([]byte(`{"meals":[{"idMeal":"1","strMeal":"A"},{"idMeal":"2","strMeal":"B"}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	rc := NewRecipeClient(httpjson.New(srv.URL))
	ctx := context.Background()

	t.Run("categories", func(t *testing.T) {
		cats, err := rc.ListCategories(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Beef", "Chicken"}, cats)
	})

	t.Run("by category", func(t *testing.T) {
		meals, err := rc.ListByCategory(ctx, "Beef")
		require.NoError(t, err)
		require.Len(t, meals, 1)
		m := meals[0]
		assert.Equal(t, 52874, m.ID)
		assert.Equal(t, "Beef and Mustard Pie", m.Title)
		assert.Equal(t, "https://img/pie.jpg", m.Image)
		assert.True(t, m.Price.IsZero())
		assert.Empty(t, m.Category)
		assert.Equal(t, domain.SourceRecipe, m.Source)
		assert.False(t, m.HasPrice())
	})

	t.Run("null meals is empty", func(t *testing.T) {
		meals, err := rc.ListByCategory(ctx, "Nope")
		require.NoError(t, err)
		assert.Empty(t, meals)
	})

	t.Run("all", func(t *testing.T) {
		meals, err := rc.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, meals, 2)
	})
}

func TestRecipeClientMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	t.Cleanup(srv.Close)

	_, err := NewRecipeClient(httpjson.New(srv.URL)).ListCategories(context.Background())
	assert.ErrorIs(t, err, httpjson.ErrMalformedBody)
}
