package ports

import (
	"context"

	"github.com/google/uuid"

	ordersdomain "github.com/Apurer/go-order-tracker/internal/domains/orders/domain"
)

// OrderReader is the read-only view of order storage the dispatcher needs.
// The dispatcher never mutates orders.
type OrderReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ordersdomain.Order, error)
}
