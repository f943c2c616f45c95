// Package mealdb reads the recipe API used as the alternate catalog source. Its
// payloads use null for empty lists, so responses are read with gjson instead of
// fixed structs.
package mealdb

import (
	"context"
	"net/url"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/pkg/httpjson"
)

type RecipeClient struct {
	c *httpjson.Client
}

func NewRecipeClient(c *httpjson.Client) *RecipeClient {
	return &RecipeClient{c: c}
}

func (rc *RecipeClient) ListCategories(ctx context.Context) ([]string, error) {
	raw, err := rc.get(ctx, "/categories.php", nil)
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}

	names := gjson.GetBytes(raw, "categories.#.strCategory").Array()
	out := make([]string, 0, len(names))
	for _, n := range names {
		if s := n.String(); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

func (rc *RecipeClient) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	raw, err := rc.get(ctx, "/filter.php", url.Values{"c": {category}})
	if err != nil {
		return nil, errors.Wrapf(err, "list category %q", category)
	}
	return parseMeals(raw), nil
}

// ListAll uses an empty search, which the upstream answers with its full list.
func (rc *RecipeClient) ListAll(ctx context.Context) ([]domain.Product, error) {
	raw, err := rc.get(ctx, "/search.php", url.Values{"s": {""}})
	if err != nil {
		return nil, errors.Wrap(err, "list all meals")
	}
	return parseMeals(raw), nil
}

func (rc *RecipeClient) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	raw, err := rc.c.GetRaw(ctx, path, q)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(raw) {
		return nil, errors.Wrapf(httpjson.ErrMalformedBody, "GET %s", path)
	}
	return raw, nil
}

// parseMeals keeps id, title and image. Entries without a numeric id are skipped.
func parseMeals(raw []byte) []domain.Product {
	meals := gjson.GetBytes(raw, "meals").Array()
	out := make([]domain.Product, 0, len(meals))
	for _, m := range meals {
		id, err := strconv.Atoi(m.Get("idMeal").String())
		if err != nil {
			continue
		}
		out = append(out, domain.Product{
			ID:     id,
			Title:  m.Get("strMeal").String(),
			Image:  m.Get("strMealThumb").String(),
			Price:  decimal.Zero,
			Source: domain.SourceRecipe,
		})
	}
	return out
}
