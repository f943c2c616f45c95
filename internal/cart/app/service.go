package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/dwikikusuma/storefront/pkg/metrics"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoRemoteCart = errors.New("no remote cart for user")
)

// Service owns both cart paths. The synchronous methods are authoritative; the remote
// methods mirror the upstream cart and, on success, replace local lines with the
// server's view. PushCart is the local-to-remote direction and never touches state.
type Service struct {
	store    StateStore
	remote   RemoteCart
	products ProductResolver

	log           *slog.Logger
	metrics       *metrics.Metrics
	timeout       time.Duration
	maxConcurrent int

	// serialises request id allocation with the pending dispatch.
	startMu sync.Mutex
}

type Option func(*Service)

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = logger.Component(log, "cart") }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// WithMaxConcurrent bounds parallel product lookups while hydrating a remote cart.
func WithMaxConcurrent(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxConcurrent = n
		}
	}
}

func NewService(store StateStore, remote RemoteCart, products ProductResolver, opts ...Option) *Service {
	s := &Service{
		store:         store,
		remote:        remote,
		products:      products,
		log:           logger.Discard(),
		timeout:       10 * time.Second,
		maxConcurrent: 10,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) AddItem(p catalog.Product) {
	s.store.Dispatch(domain.ItemAdded{Product: p})
}

func (s *Service) RemoveItem(productID int) {
	s.store.Dispatch(domain.ItemRemoved{ProductID: productID})
}

func (s *Service) IncrementQuantity(productID int) {
	s.store.Dispatch(domain.QuantityIncremented{ProductID: productID})
}

func (s *Service) DecrementQuantity(productID int) {
	s.store.Dispatch(domain.QuantityDecremented{ProductID: productID})
}

func (s *Service) ClearCart() {
	s.store.Dispatch(domain.Cleared{})
}

// RemoveOrdered subtracts ordered quantities, keyed by product id, from the cart.
func (s *Service) RemoveOrdered(quantities map[int]int) {
	s.store.Dispatch(domain.ItemsOrdered{Quantities: quantities})
}

// FetchRemoteCart loads the user's most recent upstream cart.
func (s *Service) FetchRemoteCart(ctx context.Context, userID int) error {
	return s.mirror(ctx, "cart.fetchRemote", func(ctx context.Context) (domain.RemoteCart, error) {
		if userID <= 0 {
			return domain.RemoteCart{}, fmt.Errorf("user id must be positive, got %d: %w", userID, ErrInvalidInput)
		}
		carts, err := s.remote.GetUserCarts(ctx, userID)
		if err != nil {
			return domain.RemoteCart{}, err
		}
		if len(carts) == 0 {
			return domain.RemoteCart{}, fmt.Errorf("user %d: %w", userID, ErrNoRemoteCart)
		}
		latest := carts[0]
		for _, c := range carts[1:] {
			if c.ID > latest.ID {
				latest = c
			}
		}
		return latest, nil
	})
}

func (s *Service) AddRemote(ctx context.Context, cartID, productID, quantity int) error {
	return s.put(ctx, "cart.addRemote", cartID, productID, quantity, 1)
}

func (s *Service) UpdateRemote(ctx context.Context, cartID, productID, quantity int) error {
	return s.put(ctx, "cart.updateRemote", cartID, productID, quantity, 1)
}

func (s *Service) RemoveRemote(ctx context.Context, cartID, productID int) error {
	return s.put(ctx, "cart.removeRemote", cartID, productID, 0, 0)
}

// PushCart sends every local line to the remote cart. Local state is left as is.
func (s *Service) PushCart(ctx context.Context, cartID int) error {
	if cartID <= 0 {
		return fmt.Errorf("cart id must be positive, got %d: %w", cartID, ErrInvalidInput)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	lines := s.store.State().Lines
	payload := make([]domain.RemoteLine, 0, len(lines))
	for _, l := range lines {
		payload = append(payload, domain.RemoteLine{ProductID: l.ID, Quantity: l.Quantity})
	}

	start := time.Now()
	_, err := s.remote.PutCart(ctx, cartID, payload)
	s.metrics.ObserveFetch("cart.push", start, err)
	if err != nil {
		s.log.Warn("push cart failed", slog.Int("cart_id", cartID), slog.Any("err", err))
		return err
	}
	s.log.Debug("cart pushed", slog.Int("cart_id", cartID), slog.Int("lines", len(payload)))
	return nil
}

func (s *Service) put(ctx context.Context, op string, cartID, productID, quantity, minQty int) error {
	return s.mirror(ctx, op, func(ctx context.Context) (domain.RemoteCart, error) {
		if cartID <= 0 || productID <= 0 {
			return domain.RemoteCart{}, fmt.Errorf("cart %d product %d: %w", cartID, productID, ErrInvalidInput)
		}
		if quantity < minQty {
			return domain.RemoteCart{}, fmt.Errorf("quantity must be at least %d, got %d: %w", minQty, quantity, ErrInvalidInput)
		}
		return s.remote.PutCart(ctx, cartID, []domain.RemoteLine{{ProductID: productID, Quantity: quantity}})
	})
}

// mirror runs one remote call through pending and exactly one settlement.
func (s *Service) mirror(ctx context.Context, op string, call func(ctx context.Context) (domain.RemoteCart, error)) error {
	s.startMu.Lock()
	id := s.store.NextRequestID()
	s.store.Dispatch(domain.RemoteStarted{RequestID: id})
	s.startMu.Unlock()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	lines, cartID, err := s.load(ctx, call)
	s.metrics.ObserveFetch(op, start, err)

	if err != nil {
		s.log.Warn("remote cart failed", slog.String("op", op), slog.Any("err", err))
		s.store.Dispatch(domain.RemoteFailed{RequestID: id, Message: err.Error()})
		return err
	}

	s.store.Dispatch(domain.RemoteSynced{RequestID: id, CartID: cartID, Lines: lines})
	return nil
}

func (s *Service) load(ctx context.Context, call func(ctx context.Context) (domain.RemoteCart, error)) ([]domain.Line, int, error) {
	cart, err := call(ctx)
	if err != nil {
		return nil, 0, err
	}
	lines, err := s.hydrate(ctx, cart.Products)
	if err != nil {
		return nil, 0, err
	}
	return lines, cart.ID, nil
}

// hydrate resolves remote lines into full cart lines, reusing products already held
// locally and fetching the rest concurrently. Result order follows the payload.
func (s *Service) hydrate(ctx context.Context, remote []domain.RemoteLine) ([]domain.Line, error) {
	known := make(map[int]catalog.Product)
	for _, l := range s.store.State().Lines {
		known[l.ID] = l.Product
	}

	lines := make([]domain.Line, len(remote))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range remote {
		idx := idx
		g.Go(func() error {
			rl := remote[idx]
			if rl.Quantity <= 0 {
				return nil
			}
			if p, ok := known[rl.ProductID]; ok {
				lines[idx] = domain.Line{Product: p, Quantity: rl.Quantity}
				return nil
			}
			p, err := s.products.GetProduct(ctx, strconv.Itoa(rl.ProductID))
			if err != nil {
				return fmt.Errorf("failed to get product %d: %w", rl.ProductID, err)
			}
			lines[idx] = domain.Line{Product: p, Quantity: rl.Quantity}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := lines[:0]
	for _, l := range lines {
		if l.Quantity > 0 {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return context.WithCancel(ctx)
}
