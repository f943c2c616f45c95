package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
	session "github.com/dwikikusuma/storefront/internal/session/domain"
	"github.com/dwikikusuma/storefront/internal/store"
)

type stateResponse struct {
	store.State
	CartQuantity int           `json:"cartQuantity"`
	Summary      store.Summary `json:"summary"`
}

func (a *API) readyz(w http.ResponseWriter, r *http.Request) {
	if a.Ready != nil && !a.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (a *API) getState(w http.ResponseWriter, r *http.Request) {
	s := a.Store.State()
	writeJSON(w, http.StatusOK, stateResponse{
		State:        s,
		CartQuantity: store.CartQuantity(s),
		Summary:      store.CartSummary(s, a.DeliveryFee),
	})
}

// Catalog

func (a *API) listProducts(w http.ResponseWriter, r *http.Request) {
	s := a.Store.State()
	writeJSON(w, http.StatusOK, map[string]any{
		"items":      store.VisibleProducts(s, r.URL.Query().Get("category")),
		"loading":    s.Catalog.Loading,
		"error":      s.Catalog.Error,
		"sourceMode": s.Catalog.SourceMode,
	})
}

func (a *API) refreshProducts(w http.ResponseWriter, r *http.Request) {
	var err error
	if category := r.URL.Query().Get("category"); category != "" {
		err = a.Catalog.FetchAllForCategory(r.Context(), category)
	} else {
		err = a.Catalog.FetchAllProducts(r.Context())
	}
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.Store.State().Catalog)
}

func (a *API) getProduct(w http.ResponseWriter, r *http.Request) {
	if err := a.Catalog.FetchProductByID(r.Context(), mux.Vars(r)["id"]); err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.Store.State().Catalog.SelectedProduct)
}

func (a *API) clearSelectedProduct(w http.ResponseWriter, r *http.Request) {
	a.Catalog.ClearSelectedProduct()
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) refreshCategories(w http.ResponseWriter, r *http.Request) {
	if err := a.Catalog.FetchCategories(r.Context()); err != nil {
		a.writeError(w, err)
		return
	}
	s := a.Store.State().Catalog
	writeJSON(w, http.StatusOK, map[string]any{"categories": s.Categories, "sourceMode": s.SourceMode})
}

func (a *API) clearCatalogError(w http.ResponseWriter, r *http.Request) {
	a.Catalog.ClearError()
	w.WriteHeader(http.StatusNoContent)
}

// Cart

type addItemRequest struct {
	ProductID int `json:"productId"`
}

func (a *API) getCart(w http.ResponseWriter, r *http.Request) {
	a.writeCart(w)
}

// addItem adds a product the catalog already holds, from the list or the detail view.
func (a *API) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeBody(r, &req, false); err != nil {
		a.writeError(w, err)
		return
	}

	p, ok := lookupProduct(a.Store.State().Catalog, req.ProductID)
	if !ok {
		a.writeError(w, fmt.Errorf("product %d is not loaded: %w", req.ProductID, catalogapp.ErrNotFound))
		return
	}
	a.Cart.AddItem(p)
	a.writeCart(w)
}

func (a *API) removeItem(w http.ResponseWriter, r *http.Request) {
	a.withID(w, r, "id", a.Cart.RemoveItem)
}

func (a *API) incrementItem(w http.ResponseWriter, r *http.Request) {
	a.withID(w, r, "id", a.Cart.IncrementQuantity)
}

func (a *API) decrementItem(w http.ResponseWriter, r *http.Request) {
	a.withID(w, r, "id", a.Cart.DecrementQuantity)
}

func (a *API) clearCart(w http.ResponseWriter, r *http.Request) {
	a.Cart.ClearCart()
	a.writeCart(w)
}

type fetchRemoteRequest struct {
	UserID int `json:"userId"`
}

func (a *API) fetchRemoteCart(w http.ResponseWriter, r *http.Request) {
	req := fetchRemoteRequest{UserID: a.DefaultUserID}
	if err := decodeBody(r, &req, true); err != nil {
		a.writeError(w, err)
		return
	}
	if err := a.Cart.FetchRemoteCart(r.Context(), req.UserID); err != nil {
		a.writeError(w, err)
		return
	}
	a.writeCart(w)
}

type pushRequest struct {
	CartID int `json:"cartId"`
}

func (a *API) pushCart(w http.ResponseWriter, r *http.Request) {
	req := pushRequest{CartID: a.Store.State().Cart.RemoteCartID}
	if err := decodeBody(r, &req, true); err != nil {
		a.writeError(w, err)
		return
	}
	if err := a.Cart.PushCart(r.Context(), req.CartID); err != nil {
		a.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

type remoteItemRequest struct {
	ProductID int  `json:"productId"`
	Quantity  *int `json:"quantity"`
}

func (a *API) addRemote(w http.ResponseWriter, r *http.Request) {
	cartID, err := pathInt(r, "cartId")
	if err != nil {
		a.writeError(w, err)
		return
	}
	var req remoteItemRequest
	if err := decodeBody(r, &req, false); err != nil {
		a.writeError(w, err)
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	if err := a.Cart.AddRemote(r.Context(), cartID, req.ProductID, qty); err != nil {
		a.writeError(w, err)
		return
	}
	a.writeCart(w)
}

func (a *API) updateRemote(w http.ResponseWriter, r *http.Request) {
	cartID, productID, err := remoteIDs(r)
	if err != nil {
		a.writeError(w, err)
		return
	}
	var req remoteItemRequest
	if err := decodeBody(r, &req, false); err != nil {
		a.writeError(w, err)
		return
	}
	if req.Quantity == nil {
		a.writeError(w, fmt.Errorf("quantity is required: %w", errBadRequest))
		return
	}
	if err := a.Cart.UpdateRemote(r.Context(), cartID, productID, *req.Quantity); err != nil {
		a.writeError(w, err)
		return
	}
	a.writeCart(w)
}

func (a *API) removeRemote(w http.ResponseWriter, r *http.Request) {
	cartID, productID, err := remoteIDs(r)
	if err != nil {
		a.writeError(w, err)
		return
	}
	if err := a.Cart.RemoveRemote(r.Context(), cartID, productID); err != nil {
		a.writeError(w, err)
		return
	}
	a.writeCart(w)
}

// Session

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var creds session.Credentials
	if err := decodeBody(r, &creds, false); err != nil {
		a.writeError(w, err)
		return
	}
	if err := a.Session.Login(r.Context(), creds.Username, creds.Password); err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.Store.State().Session)
}

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	var data session.RegistrationData
	if err := decodeBody(r, &data, false); err != nil {
		a.writeError(w, err)
		return
	}
	if err := a.Session.Register(r.Context(), data); err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a.Store.State().Session)
}

func (a *API) logout(w http.ResponseWriter, r *http.Request) {
	a.Session.Logout()
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) clearSessionError(w http.ResponseWriter, r *http.Request) {
	a.Session.ClearError()
	w.WriteHeader(http.StatusNoContent)
}

// Checkout

type placeOrderRequest struct {
	UserID string `json:"userId"`
}

func (a *API) quote(w http.ResponseWriter, r *http.Request) {
	q, err := a.Checkout.Quote(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (a *API) placeOrder(w http.ResponseWriter, r *http.Request) {
	req := placeOrderRequest{UserID: a.orderUser()}
	if err := decodeBody(r, &req, true); err != nil {
		a.writeError(w, err)
		return
	}
	resp, err := a.Checkout.PlaceOrder(r.Context(), req.UserID)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (a *API) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := a.Orders.GetOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// orderUser is the signed-in user, or the configured default for anonymous checkouts.
func (a *API) orderUser() string {
	if s := a.Store.State().Session; s.IsAuthenticated && s.User != nil {
		return s.User.ID
	}
	return strconv.Itoa(a.DefaultUserID)
}

// helpers

func (a *API) writeCart(w http.ResponseWriter) {
	s := a.Store.State()
	writeJSON(w, http.StatusOK, map[string]any{
		"cart":    s.Cart,
		"summary": store.CartSummary(s, a.DeliveryFee),
	})
}

func (a *API) withID(w http.ResponseWriter, r *http.Request, name string, fn func(int)) {
	id, err := pathInt(r, name)
	if err != nil {
		a.writeError(w, err)
		return
	}
	fn(id)
	a.writeCart(w)
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	status, code, msg := httpStatusFromErr(err)
	if status >= http.StatusInternalServerError {
		a.log.Warn("request failed", slog.Int("status", status), slog.Any("err", err))
	}
	writeJSON(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": msg},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody reads a JSON body into v. Optional bodies may be empty, leaving v as is.
func decodeBody(r *http.Request, v any, optional bool) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) && optional {
		return nil
	}
	if err != nil {
		return fmt.Errorf("invalid request body: %v: %w", err, errBadRequest)
	}
	return nil
}

func pathInt(r *http.Request, name string) (int, error) {
	raw := mux.Vars(r)[name]
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q: %w", name, raw, errBadRequest)
	}
	return n, nil
}

func remoteIDs(r *http.Request) (int, int, error) {
	cartID, err := pathInt(r, "cartId")
	if err != nil {
		return 0, 0, err
	}
	productID, err := pathInt(r, "id")
	if err != nil {
		return 0, 0, err
	}
	return cartID, productID, nil
}

func lookupProduct(s catalog.State, id int) (catalog.Product, bool) {
	for _, p := range s.Items {
		if p.ID == id {
			return p, true
		}
	}
	if s.SelectedProduct != nil && s.SelectedProduct.ID == id {
		return *s.SelectedProduct, true
	}
	return catalog.Product{}, false
}
