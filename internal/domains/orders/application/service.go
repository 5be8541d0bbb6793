package application

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Apurer/go-order-tracker/internal/domains/orders/domain"
	"github.com/Apurer/go-order-tracker/internal/domains/orders/ports"
)

// Service orchestrates the order use cases. Every mutation runs inside one
// storage transaction; the notification task for the triggering event is
// registered as an after-commit hook so it is scheduled if and only if the
// state change durably committed.
type Service struct {
	uow       ports.UnitOfWork
	scheduler ports.NotificationScheduler
	logger    *slog.Logger
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService wires the order service with its dependencies.
func NewService(uow ports.UnitOfWork, scheduler ports.NotificationScheduler, opts ...Option) *Service {
	s := &Service{uow: uow, scheduler: scheduler}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateOrder persists a new pending order and schedules a created
// notification after commit.
func (s *Service) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	var created *domain.Order
	err := s.uow.Execute(ctx, func(ctx context.Context, tx ports.Tx) error {
		number, err := domain.GenerateOrderNumber(ctx, tx.Orders().NumberExists)
		if err != nil {
			return err
		}
		order, err := domain.NewOrder(number, input.CustomerName, input.ProductName, input.Quantity, input.Price)
		if err != nil {
			return mapError(err)
		}
		created, err = tx.Orders().Create(ctx, order)
		if err != nil {
			return err
		}
		id := created.ID
		tx.AfterCommit(func() { s.schedule(id, domain.EventCreated) })
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logInfo(ctx, "order created", slog.String("order_number", created.OrderNumber))
	return created, nil
}

// GetOrder loads a single order.
func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var order *domain.Order
	err := s.uow.Execute(ctx, func(ctx context.Context, tx ports.Tx) error {
		var err error
		order, err = tx.Orders().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrders returns a page of orders plus the unfiltered total for the filter.
func (s *Service) ListOrders(ctx context.Context, filter ports.ListFilter) ([]*domain.Order, int64, error) {
	if filter.Status != nil && !domain.IsValidStatus(*filter.Status) {
		return nil, 0, mapError(domain.ErrInvalidStatus)
	}
	var (
		orders []*domain.Order
		total  int64
	)
	err := s.uow.Execute(ctx, func(ctx context.Context, tx ports.Tx) error {
		var err error
		orders, total, err = tx.Orders().List(ctx, filter)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ChangeStatus applies a validated transition and schedules a status_updated
// notification after commit. The repository re-checks the transition against
// the row it reads under lock, so a racing caller loses with ErrConflict or
// an InvalidTransitionError rather than clobbering the other write.
func (s *Service) ChangeStatus(ctx context.Context, id uuid.UUID, requested domain.Status) (*domain.Order, error) {
	var updated *domain.Order
	err := s.uow.Execute(ctx, func(ctx context.Context, tx ports.Tx) error {
		var err error
		updated, err = tx.Orders().UpdateStatus(ctx, id, requested)
		if err != nil {
			return err
		}
		orderID := updated.ID
		tx.AfterCommit(func() { s.schedule(orderID, domain.EventStatusUpdated) })
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logInfo(ctx, "order status changed",
		slog.String("order_number", updated.OrderNumber),
		slog.String("status", string(updated.Status)))
	return updated, nil
}

// schedule runs from after-commit hooks. The triggering request has already
// been answered at this point, so scheduling failures are logged, never
// propagated.
func (s *Service) schedule(orderID uuid.UUID, event domain.Event) {
	if s.scheduler == nil {
		return
	}
	if err := s.scheduler.Schedule(context.Background(), orderID, event); err != nil && s.logger != nil {
		s.logger.Error("failed to schedule notification",
			slog.String("order_id", orderID.String()),
			slog.String("event", string(event)),
			slog.String("error", err.Error()))
	}
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

var _ ports.Service = (*Service)(nil)
