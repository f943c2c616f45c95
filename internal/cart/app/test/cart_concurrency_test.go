package app_test

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/internal/store"
)

type remoteStub struct {
	mu    sync.Mutex
	lines map[int]int
}

func (r *remoteStub) GetUserCarts(ctx context.Context, userID int) ([]domain.RemoteCart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var products []domain.RemoteLine
	for id, qty := range r.lines {
		products = append(products, domain.RemoteLine{ProductID: id, Quantity: qty})
	}
	return []domain.RemoteCart{{ID: 1, UserID: userID, Products: products}}, nil
}

func (r *remoteStub) PutCart(ctx context.Context, cartID int, lines []domain.RemoteLine) (domain.RemoteCart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return domain.RemoteCart{ID: cartID, Products: lines}, nil
}

type resolverStub struct{}

func (resolverStub) GetProduct(ctx context.Context, id string) (catalog.Product, error) {
	n, _ := strconv.Atoi(id)
	return catalog.Product{ID: n, Price: decimal.NewFromInt(1)}, nil
}

func newTestService(t *testing.T) (*store.Store, *app.Service) {
	t.Helper()
	st := store.New()
	return st, app.NewService(st.Cart(), &remoteStub{lines: map[int]int{1: 1, 2: 3}}, resolverStub{})
}

func TestCart_ConcurrentAddItemIncrement(t *testing.T) {
	st, svc := newTestService(t)
	p := catalog.Product{ID: 42, Price: decimal.RequireFromString("0.01")}

	const N = 100
	var g errgroup.Group
	for i := 0; i < N; i++ {
		g.Go(func() error {
			svc.AddItem(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent AddItem failed: %v", err)
	}

	s := st.State()
	if len(s.Cart.Lines) != 1 {
		t.Fatalf("expected exactly 1 line, got %d", len(s.Cart.Lines))
	}
	if got := store.QuantityOf(s, 42); got != N {
		t.Fatalf("expected quantity=%d, got=%d", N, got)
	}
	if got := s.Cart.Subtotal.String(); got != "1" {
		t.Fatalf("expected subtotal=1, got=%s", got)
	}
}

func TestCart_ConcurrentIncrementDecrement(t *testing.T) {
	st, svc := newTestService(t)
	const N = 50
	p := catalog.Product{ID: 7, Price: decimal.NewFromInt(3)}
	for i := 0; i < N+10; i++ {
		svc.AddItem(p)
	}

	var g errgroup.Group
	for i := 0; i < N; i++ {
		g.Go(func() error { svc.IncrementQuantity(7); return nil })
		g.Go(func() error { svc.DecrementQuantity(7); return nil })
	}
	_ = g.Wait()

	s := st.State()
	if got := store.QuantityOf(s, 7); got != N+10 {
		t.Fatalf("expected quantity=%d, got=%d", N+10, got)
	}
	if !s.Cart.Subtotal.Equal(domain.Subtotal(s.Cart.Lines)) {
		t.Fatalf("subtotal %s does not match lines", s.Cart.Subtotal)
	}
}

func TestCart_ConcurrentRemoteFetch_SingleSettlement(t *testing.T) {
	st, svc := newTestService(t)
	ctx := context.Background()

	const N = 20
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < N; i++ {
		g.Go(func() error { return svc.FetchRemoteCart(ctx, 1) })
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent FetchRemoteCart failed: %v", err)
	}

	s := st.State()
	if s.Cart.Loading {
		t.Fatalf("loading left set after all fetches settled")
	}
	if got := store.CartQuantity(s); got != 4 {
		t.Fatalf("expected 4 units from remote cart, got %d", got)
	}
}
