package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Apurer/go-order-tracker/internal/domains/orders/domain"
)

var (
	// ErrNotFound signals the referenced order does not exist.
	ErrNotFound = errors.New("order not found")
	// ErrConflict signals a storage-level uniqueness or concurrent-write violation.
	ErrConflict = errors.New("order conflict")
)

// ListFilter narrows and pages the order listing.
type ListFilter struct {
	Status   *domain.Status
	Page     int
	PageSize int
}

// Repository persists orders. Implementations obtained from a Tx operate
// inside that transaction; UpdateStatus must re-read the row under a write
// lock and re-validate the transition against the value actually read.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, requested domain.Status) (*domain.Order, error)
	NumberExists(ctx context.Context, number string) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Order, int64, error)
}
