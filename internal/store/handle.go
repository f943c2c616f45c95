package store

import (
	cart "github.com/dwikikusuma/storefront/internal/cart/domain"
	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
	session "github.com/dwikikusuma/storefront/internal/session/domain"
)

// Handle is the view of the store a single slice's services work against.
type Handle[S any, A Action] struct {
	store    *Store
	selectFn func(State) S
}

func (h Handle[S, A]) State() S {
	return h.selectFn(h.store.State())
}

func (h Handle[S, A]) Dispatch(a A) {
	h.store.Dispatch(a)
}

func (h Handle[S, A]) NextRequestID() uint64 {
	return h.store.NextRequestID()
}

func (s *Store) Catalog() Handle[catalog.State, catalog.Action] {
	return Handle[catalog.State, catalog.Action]{store: s, selectFn: func(st State) catalog.State { return st.Catalog }}
}

func (s *Store) Cart() Handle[cart.State, cart.Action] {
	return Handle[cart.State, cart.Action]{store: s, selectFn: func(st State) cart.State { return st.Cart }}
}

func (s *Store) Session() Handle[session.State, session.Action] {
	return Handle[session.State, session.Action]{store: s, selectFn: func(st State) session.State { return st.Session }}
}
