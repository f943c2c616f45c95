package fakestore

import (
	"context"
	"strconv"

	"github.com/go-faster/errors"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/pkg/httpjson"
)

// CartClient talks to GET /carts/user/{userId} and PUT /carts/{cartId}.
type CartClient struct {
	c *httpjson.Client
}

func NewCartClient(c *httpjson.Client) *CartClient {
	return &CartClient{c: c}
}

type putCartRequest struct {
	Products []domain.RemoteLine `json:"products"`
}

func (cc *CartClient) GetUserCarts(ctx context.Context, userID int) ([]domain.RemoteCart, error) {
	var out []domain.RemoteCart
	if err := cc.c.GetJSON(ctx, "/carts/user/"+strconv.Itoa(userID), nil, &out); err != nil {
		if errors.Is(err, httpjson.ErrEmptyBody) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "fetch cart for user %d", userID)
	}
	return out, nil
}

func (cc *CartClient) PutCart(ctx context.Context, cartID int, lines []domain.RemoteLine) (domain.RemoteCart, error) {
	var out domain.RemoteCart
	err := cc.c.PutJSON(ctx, "/carts/"+strconv.Itoa(cartID), putCartRequest{Products: lines}, &out)
	if err != nil {
		return domain.RemoteCart{}, errors.Wrapf(err, "update cart %d", cartID)
	}
	if out.ID == 0 {
		out.ID = cartID
	}
	return out, nil
}
