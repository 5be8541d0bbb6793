package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-order-tracker/internal/domains/orders/domain"
	"github.com/Apurer/go-order-tracker/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter. It enforces the same
// order-number uniqueness the Postgres schema does, so the bounded-retry
// number generator behaves identically against it.
type Repository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*domain.Order
}

func NewRepository() *Repository {
	return &Repository{orders: map[uuid.UUID]*domain.Order{}}
}

func (r *Repository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := *order
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.orders {
		if existing.OrderNumber == clone.OrderNumber {
			return nil, ports.ErrConflict
		}
	}
	now := time.Now().UTC()
	clone.CreatedAt = now
	clone.UpdatedAt = now
	r.orders[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

// UpdateStatus validates the transition against the stored value under the
// repository lock, mirroring the row-lock re-check of the Postgres adapter.
func (r *Repository) UpdateStatus(_ context.Context, id uuid.UUID, requested domain.Status) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	next, err := domain.Transition(order.Status, requested)
	if err != nil {
		return nil, err
	}
	order.Status = next
	order.UpdatedAt = time.Now().UTC()
	clone := *order
	return &clone, nil
}

func (r *Repository) NumberExists(_ context.Context, number string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, order := range r.orders {
		if order.OrderNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]*domain.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []*domain.Order
	for _, order := range r.orders {
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		clone := *order
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	page, size := normalizePage(filter)
	offset := (page - 1) * size
	if offset >= len(matched) {
		return []*domain.Order{}, total, nil
	}
	end := offset + size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func normalizePage(filter ports.ListFilter) (page, size int) {
	page, size = filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	return page, size
}
