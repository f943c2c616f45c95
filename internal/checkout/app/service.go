package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/dwikikusuma/storefront/pkg/logger"
)

type CartReader interface {
	GetCart(ctx context.Context) ([]CartItem, error)
}

type CartItem struct {
	ProductID int
	Name      string
	Price     decimal.Decimal
	Quantity  int
	// Priced is false for items from a source without prices; they are quoted as is.
	Priced bool
}

type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

type Product struct {
	ID    int
	Name  string
	Price decimal.Decimal
}

type OrderWriter interface {
	CreateOrder(ctx context.Context, req orderdomain.CreateOrderRequest) (orderdomain.OrderResponse, error)
}

// CartSettler takes the ordered quantities out of the local cart once an order is placed.
type CartSettler interface {
	RemoveOrdered(quantities map[int]int)
}

type Service struct {
	Cart    CartReader
	Catalog CatalogReader
	Orders  OrderWriter
	Settler CartSettler

	deliveryFee   decimal.Decimal
	maxConcurrent int
	log           *slog.Logger
}

type Option func(*Service)

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = logger.Component(log, "checkout") }
}

func NewService(cart CartReader, catalog CatalogReader, orders OrderWriter, settler CartSettler, deliveryFee decimal.Decimal, maxConcurrent int, opts ...Option) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}

	s := &Service{
		Cart:          cart,
		Catalog:       catalog,
		Orders:        orders,
		Settler:       settler,
		deliveryFee:   deliveryFee,
		maxConcurrent: maxConcurrent,
		log:           logger.Discard(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

var ErrEmptyCart = errors.New("cart is empty")

// Quote prices the current cart against the live catalog. Amounts are rounded to cents.
func (s *Service) Quote(ctx context.Context) (domain.Quote, error) {
	items, err := s.Cart.GetCart(ctx)
	if err != nil {
		return domain.Quote{}, err
	}

	if len(items) == 0 {
		return domain.Quote{}, ErrEmptyCart
	}

	lines := make([]domain.QuoteLine, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range items {
		idx := idx
		g.Go(func() error {
			it := items[idx]
			if it.Quantity <= 0 {
				return fmt.Errorf("quantity must be greater than zero: %d", it.Quantity)
			}

			name, price := it.Name, it.Price
			if it.Priced {
				product, err := s.Catalog.GetProduct(ctx, strconv.Itoa(it.ProductID))
				if err != nil {
					return fmt.Errorf("failed to get product %d: %w", it.ProductID, err)
				}
				name, price = product.Name, product.Price
			}

			lines[idx] = domain.QuoteLine{
				ProductID:    it.ProductID,
				Name:         name,
				Quantity:     it.Quantity,
				UnitPrice:    price,
				LineTotal:    price.Mul(decimal.NewFromInt(int64(it.Quantity))),
				PriceChanged: !price.Equal(it.Price),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Quote{}, err
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineTotal)
	}

	quote := domain.Quote{
		Lines:    lines,
		Subtotal: subtotal.Round(2),
		Delivery: s.deliveryFee.Round(2),
		Total:    subtotal.Add(s.deliveryFee).Round(2),
	}

	return quote, nil
}

// PlaceOrder records a pending order for the quoted cart and removes the quoted
// quantities from the cart. No payment is taken.
func (s *Service) PlaceOrder(ctx context.Context, userID string) (orderdomain.OrderResponse, error) {
	quote, err := s.Quote(ctx)
	if err != nil {
		return orderdomain.OrderResponse{}, err
	}

	items := make([]orderdomain.OrderItemRequest, 0, len(quote.Lines))
	ordered := make(map[int]int, len(quote.Lines))
	for _, ln := range quote.Lines {
		ordered[ln.ProductID] += ln.Quantity
		items = append(items, orderdomain.OrderItemRequest{
			ProductID: ln.ProductID,
			Name:      ln.Name,
			UnitPrice: ln.UnitPrice,
			Quantity:  ln.Quantity,
		})
	}

	resp, err := s.Orders.CreateOrder(ctx, orderdomain.CreateOrderRequest{
		UserID:   userID,
		Shipping: quote.Delivery,
		Items:    items,
	})
	if err != nil {
		return orderdomain.OrderResponse{}, fmt.Errorf("create order: %w", err)
	}

	s.Settler.RemoveOrdered(ordered)
	s.log.Info("order placed", slog.String("order_id", resp.ID), slog.String("user_id", userID), slog.String("total", resp.Total.StringFixed(2)))
	return resp, nil
}
