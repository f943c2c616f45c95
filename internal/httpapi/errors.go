package httpapi

import (
	"context"
	"errors"
	"net/http"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	orderapp "github.com/dwikikusuma/storefront/internal/order/app"
	sessionapp "github.com/dwikikusuma/storefront/internal/session/app"
	"github.com/dwikikusuma/storefront/pkg/httpjson"
)

var errBadRequest = errors.New("bad request")

// httpStatusFromErr maps service errors to a status, a stable code and the message
// shown to clients.
func httpStatusFromErr(err error) (int, string, string) {
	var se *httpjson.StatusError

	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, cartapp.ErrInvalidInput),
		errors.Is(err, sessionapp.ErrInvalidInput),
		errors.Is(err, orderapp.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_ARGUMENT", err.Error()

	case errors.Is(err, sessionapp.ErrInvalidCredentials):
		return http.StatusUnauthorized, "UNAUTHENTICATED", err.Error()

	case errors.Is(err, catalogapp.ErrNotFound),
		errors.Is(err, orderapp.ErrNotFound),
		errors.Is(err, cartapp.ErrNoRemoteCart):
		return http.StatusNotFound, "NOT_FOUND", err.Error()

	case errors.Is(err, checkoutapp.ErrEmptyCart):
		return http.StatusNotFound, "NOT_FOUND", "cart is empty"

	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "UNAVAILABLE", err.Error()

	case errors.As(err, &se), errors.Is(err, httpjson.ErrMalformedBody), errors.Is(err, httpjson.ErrEmptyBody):
		return http.StatusBadGateway, "UPSTREAM", err.Error()

	default:
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}
}
