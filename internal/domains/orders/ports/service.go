package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/Apurer/go-order-tracker/internal/domains/orders/domain"
)

// CreateOrderInput carries the caller-supplied order fields.
type CreateOrderInput struct {
	CustomerName string
	ProductName  string
	Quantity     int
	Price        domain.Money
}

// Service exposes the order use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]*domain.Order, int64, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, requested domain.Status) (*domain.Order, error)
}
