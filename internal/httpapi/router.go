// Package httpapi is the local JSON surface over the storefront store. Reads come from
// the current snapshot; writes go through the slice services and answer with the
// state they produced.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	orderapp "github.com/dwikikusuma/storefront/internal/order/app"
	sessionapp "github.com/dwikikusuma/storefront/internal/session/app"
	"github.com/dwikikusuma/storefront/internal/store"
	"github.com/dwikikusuma/storefront/pkg/logger"
)

type Deps struct {
	Store    *store.Store
	Catalog  *catalogapp.Service
	Cart     *cartapp.Service
	Session  *sessionapp.Service
	Checkout *checkoutapp.Service
	Orders   *orderapp.Service

	DeliveryFee   decimal.Decimal
	DefaultUserID int

	Gatherer prometheus.Gatherer
	// Ready reports whether the initial catalog load has finished. Nil means always ready.
	Ready func() bool
	Log   *slog.Logger
}

type API struct {
	Deps
	log *slog.Logger
}

func NewRouter(d Deps) *mux.Router {
	a := &API{Deps: d, log: logger.Component(d.Log, "http")}
	if a.Gatherer == nil {
		a.Gatherer = prometheus.DefaultGatherer
	}

	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }).Methods("GET")
	r.HandleFunc("/readyz", a.readyz).Methods("GET")
	r.Handle("/metrics", promhttp.HandlerFor(a.Gatherer, promhttp.HandlerOpts{})).Methods("GET")

	r.HandleFunc("/state", a.getState).Methods("GET")

	r.HandleFunc("/products", a.listProducts).Methods("GET")
	r.HandleFunc("/products/refresh", a.refreshProducts).Methods("POST")
	r.HandleFunc("/products/selected", a.clearSelectedProduct).Methods("DELETE")
	r.HandleFunc("/products/{id}", a.getProduct).Methods("GET")
	r.HandleFunc("/categories/refresh", a.refreshCategories).Methods("POST")
	r.HandleFunc("/catalog/error", a.clearCatalogError).Methods("DELETE")

	r.HandleFunc("/cart", a.getCart).Methods("GET")
	r.HandleFunc("/cart", a.clearCart).Methods("DELETE")
	r.HandleFunc("/cart/items", a.addItem).Methods("POST")
	r.HandleFunc("/cart/items/{id}", a.removeItem).Methods("DELETE")
	r.HandleFunc("/cart/items/{id}/increment", a.incrementItem).Methods("POST")
	r.HandleFunc("/cart/items/{id}/decrement", a.decrementItem).Methods("POST")

	r.HandleFunc("/cart/remote/fetch", a.fetchRemoteCart).Methods("POST")
	r.HandleFunc("/cart/remote/push", a.pushCart).Methods("POST")
	r.HandleFunc("/cart/remote/{cartId}/items", a.addRemote).Methods("POST")
	r.HandleFunc("/cart/remote/{cartId}/items/{id}", a.updateRemote).Methods("PUT")
	r.HandleFunc("/cart/remote/{cartId}/items/{id}", a.removeRemote).Methods("DELETE")

	r.HandleFunc("/session/login", a.login).Methods("POST")
	r.HandleFunc("/session/register", a.register).Methods("POST")
	r.HandleFunc("/session/logout", a.logout).Methods("POST")
	r.HandleFunc("/session/error", a.clearSessionError).Methods("DELETE")

	r.HandleFunc("/checkout/quote", a.quote).Methods("GET")
	r.HandleFunc("/checkout/orders", a.placeOrder).Methods("POST")
	r.HandleFunc("/checkout/orders/{id}", a.getOrder).Methods("GET")

	return r
}
