// Package store composes the catalog, cart and session slices into one state
// container. Every action is applied under a single lock, so each dispatch yields a
// complete new root State and listeners observe snapshots in dispatch order.
package store

import (
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	cart "github.com/dwikikusuma/storefront/internal/cart/domain"
	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
	session "github.com/dwikikusuma/storefront/internal/session/domain"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/dwikikusuma/storefront/pkg/metrics"
)

// Action is implemented by every slice action.
type Action interface {
	ActionType() string
}

type State struct {
	Catalog catalog.State `json:"catalog"`
	Cart    cart.State    `json:"cart"`
	Session session.State `json:"session"`
}

func Initial() State {
	return State{
		Catalog: catalog.Initial(),
		Cart:    cart.Initial(),
		Session: session.Initial(),
	}
}

// Reduce routes a to the slice that owns it. Unknown actions leave s unchanged.
func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case catalog.Action:
		s.Catalog = catalog.Reduce(s.Catalog, act)
	case cart.Action:
		s.Cart = cart.Reduce(s.Cart, act)
	case session.Action:
		s.Session = session.Reduce(s.Session, act)
	}
	return s
}

func superseded(s State, a Action) bool {
	switch act := a.(type) {
	case catalog.Action:
		return catalog.Superseded(s.Catalog, act)
	case cart.Action:
		return cart.Superseded(s.Cart, act)
	case session.Action:
		return session.Superseded(s.Session, act)
	}
	return false
}

// Listener receives the root state after each applied action. Listeners run on the
// dispatching goroutine and must not call Dispatch synchronously.
type Listener func(State)

type subscription struct {
	id uint64
	fn Listener
}

// Lock order is notifyMu then mu.
type Store struct {
	// held from reduce until the last listener returns, so notifications follow dispatch order
	notifyMu sync.Mutex

	mu      sync.Mutex
	state   State
	subs    []subscription // copy on write; Dispatch ranges over a snapshot outside mu
	nextSub uint64

	seq atomic.Uint64

	log     *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Store)

func WithLogger(log *slog.Logger) Option {
	return func(s *Store) { s.log = logger.Component(log, "store") }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

func New(opts ...Option) *Store {
	s := &Store{
		state: Initial(),
		log:   logger.Discard(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) Dispatch(a Action) {
	if a == nil {
		return
	}
	typ := a.ActionType()

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	stale := superseded(s.state, a)
	s.state = Reduce(s.state, a)
	next := s.state
	subs := s.subs
	s.mu.Unlock()

	s.metrics.ActionDispatched(typ)
	if stale {
		s.metrics.StaleSettlement(typ)
		s.log.Debug("stale settlement discarded", slog.String("action", typ))
	} else {
		s.log.Debug("action applied", slog.String("action", typ))
	}

	for _, sub := range subs {
		sub.fn(next)
	}
}

// Subscribe registers l and returns a func that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	s.nextSub++
	id := s.nextSub
	s.subs = append(slices.Clip(s.subs), subscription{id: id, fn: l})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.subs = slices.DeleteFunc(slices.Clone(s.subs), func(sub subscription) bool { return sub.id == id })
			s.mu.Unlock()
		})
	}
}

// NextRequestID returns a process-wide, strictly increasing id for async operations.
func (s *Store) NextRequestID() uint64 {
	return s.seq.Add(1)
}
