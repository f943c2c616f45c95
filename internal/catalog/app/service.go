package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/dwikikusuma/storefront/pkg/metrics"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("product not found")
)

type Service struct {
	store    StateStore
	products ProductSource
	recipes  RecipeSource

	log     *slog.Logger
	metrics *metrics.Metrics
	timeout time.Duration

	mu       sync.Mutex
	inflight map[domain.Channel]inflight
}

type inflight struct {
	id     uint64
	cancel context.CancelFunc
}

type Option func(*Service)

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = logger.Component(log, "catalog") }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTimeout bounds every fetch. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

func NewService(store StateStore, products ProductSource, recipes RecipeSource, opts ...Option) *Service {
	s := &Service{
		store:    store,
		products: products,
		recipes:  recipes,
		log:      logger.Discard(),
		timeout:  10 * time.Second,
		inflight: make(map[domain.Channel]inflight),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// FetchAllProducts replaces the list with the full commerce catalog.
func (s *Service) FetchAllProducts(ctx context.Context) error {
	return s.run(ctx, domain.ChannelList, "catalog.fetchAll", func(ctx context.Context, id uint64) (domain.Action, error) {
		items, err := s.products.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		return domain.ListFetched{RequestID: id, Items: items, Source: domain.SourceCommerce}, nil
	})
}

// FetchProductByID loads one commerce product into SelectedProduct.
func (s *Service) FetchProductByID(ctx context.Context, productID string) error {
	return s.run(ctx, domain.ChannelDetail, "catalog.fetchByID", func(ctx context.Context, id uint64) (domain.Action, error) {
		productID = strings.TrimSpace(productID)
		if productID == "" {
			return nil, fmt.Errorf("product id is required: %w", ErrInvalidInput)
		}
		p, err := s.products.GetProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
		return domain.ProductFetched{RequestID: id, Product: p}, nil
	})
}

// FetchCategories loads the recipe category labels. Success switches the source mode
// to the recipe API, which changes how FetchAllForCategory resolves.
func (s *Service) FetchCategories(ctx context.Context) error {
	return s.run(ctx, domain.ChannelCategories, "catalog.fetchCategories", func(ctx context.Context, id uint64) (domain.Action, error) {
		categories, err := s.recipes.ListCategories(ctx)
		if err != nil {
			return nil, err
		}
		return domain.CategoriesFetched{RequestID: id, Categories: categories}, nil
	})
}

// FetchAllForCategory lists category from the active source. The AllCategories
// sentinel lists everything.
func (s *Service) FetchAllForCategory(ctx context.Context, category string) error {
	source := s.store.State().SourceMode

	return s.run(ctx, domain.ChannelList, "catalog.fetchCategory", func(ctx context.Context, id uint64) (domain.Action, error) {
		if strings.TrimSpace(category) == "" {
			return nil, fmt.Errorf("category is required: %w", ErrInvalidInput)
		}

		if source == domain.SourceRecipe {
			var (
				items []domain.Product
				err   error
			)
			if domain.IsAllCategories(category) {
				items, err = s.recipes.ListAll(ctx)
			} else {
				items, err = s.recipes.ListByCategory(ctx, category)
			}
			if err != nil {
				return nil, err
			}
			return domain.ListFetched{RequestID: id, Items: items, Source: domain.SourceRecipe}, nil
		}

		items, err := s.products.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		return domain.ListFetched{
			RequestID: id,
			Items:     domain.FilterByCategory(items, category),
			Source:    domain.SourceCommerce,
		}, nil
	})
}

func (s *Service) ClearSelectedProduct() {
	s.store.Dispatch(domain.SelectedProductCleared{})
}

func (s *Service) ClearError() {
	s.store.Dispatch(domain.ErrorCleared{})
}

type fetchFunc func(ctx context.Context, requestID uint64) (domain.Action, error)

// run drives one request through pending and exactly one of fulfilled or rejected.
// Starting a request cancels the previous one on the same channel; the reducer drops
// whatever that request settles with.
func (s *Service) run(ctx context.Context, ch domain.Channel, op string, fetch fetchFunc) error {
	ctx, id, done := s.begin(ctx, ch)
	defer done()

	start := time.Now()
	act, err := fetch(ctx, id)
	s.metrics.ObserveFetch(op, start, err)

	if err != nil {
		if errors.Is(err, context.Canceled) && s.superseded(ch, id) {
			s.log.Debug("fetch superseded", slog.String("op", op), slog.Uint64("request_id", id))
		} else {
			s.log.Warn("fetch failed", slog.String("op", op), slog.Uint64("request_id", id), slog.Any("err", err))
		}
		s.store.Dispatch(domain.FetchFailed{Channel: ch, RequestID: id, Message: err.Error()})
		return err
	}

	s.store.Dispatch(act)
	return nil
}

// begin allocates the request id, cancels the channel's previous request and
// dispatches pending as one step, so pending order always matches id order.
func (s *Service) begin(parent context.Context, ch domain.Channel) (context.Context, uint64, func()) {
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if s.timeout > 0 {
		ctx, cancel = context.WithTimeout(parent, s.timeout)
	} else {
		ctx, cancel = context.WithCancel(parent)
	}

	s.mu.Lock()
	id := s.store.NextRequestID()
	if prev, ok := s.inflight[ch]; ok {
		prev.cancel()
	}
	s.inflight[ch] = inflight{id: id, cancel: cancel}
	s.store.Dispatch(domain.FetchStarted{Channel: ch, RequestID: id})
	s.mu.Unlock()

	return ctx, id, func() {
		cancel()
		s.mu.Lock()
		if cur, ok := s.inflight[ch]; ok && cur.id == id {
			delete(s.inflight, ch)
		}
		s.mu.Unlock()
	}
}

func (s *Service) superseded(ch domain.Channel, id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.inflight[ch]
	return !ok || cur.id != id
}
