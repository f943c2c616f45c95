package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/storefront/internal/order/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("order not found")
)

type Service struct {
	repo OrderRepo
}

func NewService(repo OrderRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.OrderResponse, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return domain.OrderResponse{}, fmt.Errorf("user id is required: %w", ErrInvalidInput)
	}
	if len(req.Items) == 0 {
		return domain.OrderResponse{}, fmt.Errorf("items must not be empty: %w", ErrInvalidInput)
	}
	if req.Shipping.IsNegative() {
		return domain.OrderResponse{}, fmt.Errorf("shipping cannot be negative, got %s: %w", req.Shipping, ErrInvalidInput)
	}

	orderItems := make([]domain.OrderItem, 0, len(req.Items))
	subTotal := decimal.Zero

	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return domain.OrderResponse{}, fmt.Errorf("item %d: quantity must be positive, got %d: %w", i, item.Quantity, ErrInvalidInput)
		}
		if item.UnitPrice.IsNegative() {
			return domain.OrderResponse{}, fmt.Errorf("item %d: unit price cannot be negative, got %s: %w", i, item.UnitPrice, ErrInvalidInput)
		}

		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		orderItems = append(orderItems, domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			LineTotal: lineTotal,
		})

		subTotal = subTotal.Add(lineTotal)
	}

	order := domain.Order{
		UserID:   req.UserID,
		Status:   domain.StatusPending,
		SubTotal: subTotal,
		Shipping: req.Shipping,
		Total:    subTotal.Add(req.Shipping),
		Items:    orderItems,
	}

	created, err := s.repo.CreateOrderTx(ctx, order)
	if err != nil {
		return domain.OrderResponse{}, err
	}

	return domain.OrderResponse{
		ID:        created.ID,
		Status:    created.Status,
		Total:     created.Total,
		CreatedAt: created.CreatedAt,
	}, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Order{}, fmt.Errorf("order id is required: %w", ErrInvalidInput)
	}
	return s.repo.GetOrder(ctx, id)
}
