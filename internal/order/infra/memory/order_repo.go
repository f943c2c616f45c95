// Package memory keeps orders for the lifetime of the process.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dwikikusuma/storefront/internal/order/app"
	"github.com/dwikikusuma/storefront/internal/order/domain"
)

type OrderRepo struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
	now    func() time.Time
}

func NewOrderRepo() *OrderRepo {
	return &OrderRepo{
		orders: make(map[string]domain.Order),
		now:    time.Now,
	}
}

// CreateOrderTx assigns ids and timestamps and stores the order with its items as one unit.
func (r *OrderRepo) CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	now := r.now().UTC()
	order.ID = uuid.NewString()
	order.CreatedAt = now
	order.UpdatedAt = now

	items := make([]domain.OrderItem, 0, len(order.Items))
	for _, it := range order.Items {
		it.ID = uuid.NewString()
		it.OrderID = order.ID
		items = append(items, it)
	}
	order.Items = items

	r.mu.Lock()
	r.orders[order.ID] = order
	r.mu.Unlock()

	return withItems(order), nil
}

func (r *OrderRepo) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	r.mu.RLock()
	o, ok := r.orders[id]
	r.mu.RUnlock()
	if !ok {
		return domain.Order{}, fmt.Errorf("order %s: %w", id, app.ErrNotFound)
	}
	return withItems(o), nil
}

// withItems copies the item slice so callers cannot alter stored orders.
func withItems(o domain.Order) domain.Order {
	o.Items = slices.Clone(o.Items)
	return o
}
