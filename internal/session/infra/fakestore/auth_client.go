package fakestore

import (
	"context"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/dwikikusuma/storefront/internal/session/app"
	"github.com/dwikikusuma/storefront/internal/session/domain"
	"github.com/dwikikusuma/storefront/pkg/httpjson"
)

// AuthClient logs in against POST /auth/login. The endpoint answers with a token only;
// the app layer fills in the user.
type AuthClient struct {
	c *httpjson.Client
}

func NewAuthClient(c *httpjson.Client) *AuthClient {
	return &AuthClient{c: c}
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user,omitempty"`
}

func (ac *AuthClient) Login(ctx context.Context, creds domain.Credentials) (domain.AuthResult, error) {
	var resp loginResponse
	err := ac.c.PostJSON(ctx, "/auth/login", creds, &resp)

	var se *httpjson.StatusError
	if errors.As(err, &se) && se.Status >= http.StatusBadRequest && se.Status < http.StatusInternalServerError {
		return domain.AuthResult{}, errors.Wrapf(app.ErrInvalidCredentials, "status %d", se.Status)
	}
	if err != nil {
		return domain.AuthResult{}, errors.Wrap(err, "login")
	}
	if resp.Token == "" {
		return domain.AuthResult{}, errors.Wrap(app.ErrInvalidCredentials, "no token issued")
	}

	res := domain.AuthResult{Token: resp.Token}
	if resp.User != nil {
		res.User = *resp.User
	}
	return res, nil
}
