package application_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-order-tracker/internal/domains/orders/adapters/memory"
	"github.com/Apurer/go-order-tracker/internal/domains/orders/application"
	"github.com/Apurer/go-order-tracker/internal/domains/orders/domain"
	"github.com/Apurer/go-order-tracker/internal/domains/orders/ports"
)

type scheduledTask struct {
	orderID uuid.UUID
	event   domain.Event
}

type recordingScheduler struct {
	mu    sync.Mutex
	tasks []scheduledTask
	err   error
}

func (s *recordingScheduler) Schedule(_ context.Context, orderID uuid.UUID, event domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.tasks = append(s.tasks, scheduledTask{orderID: orderID, event: event})
	return nil
}

func (s *recordingScheduler) scheduled() []scheduledTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]scheduledTask{}, s.tasks...)
}

// failingUnitOfWork simulates a commit failure after fn succeeds: registered
// hooks must be discarded.
type failingUnitOfWork struct {
	repo *memory.Repository
}

var errCommitFailed = errors.New("commit failed")

func (u *failingUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, tx ports.Tx) error) error {
	tx := &discardTx{repo: u.repo}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	return errCommitFailed
}

type discardTx struct {
	repo *memory.Repository
}

func (t *discardTx) Orders() ports.Repository { return t.repo }

func (t *discardTx) AfterCommit(ports.AfterCommitHook) {}

func newService(t *testing.T) (*application.Service, *memory.Repository, *recordingScheduler) {
	t.Helper()
	repo := memory.NewRepository()
	scheduler := &recordingScheduler{}
	svc := application.NewService(memory.NewUnitOfWork(repo), scheduler)
	return svc, repo, scheduler
}

func validInput() ports.CreateOrderInput {
	return ports.CreateOrderInput{
		CustomerName: "Ada Lovelace",
		ProductName:  "Mechanical keyboard",
		Quantity:     2,
		Price:        domain.Money(2999),
	}
}

func TestCreateOrderSchedulesExactlyOneCreatedTask(t *testing.T) {
	svc, _, scheduler := newService(t)

	order, err := svc.CreateOrder(context.Background(), validInput())
	require.NoError(t, err)
	assert.Regexp(t, `^ORD-[A-Z0-9]{6}$`, order.OrderNumber)
	assert.Equal(t, domain.StatusPending, order.Status)

	tasks := scheduler.scheduled()
	require.Len(t, tasks, 1)
	assert.Equal(t, order.ID, tasks[0].orderID)
	assert.Equal(t, domain.EventCreated, tasks[0].event)
}

func TestCreateOrderInvalidInputSchedulesNothing(t *testing.T) {
	svc, _, scheduler := newService(t)

	input := validInput()
	input.Quantity = 0
	_, err := svc.CreateOrder(context.Background(), input)
	require.ErrorIs(t, err, application.ErrInvalidInput)
	assert.Empty(t, scheduler.scheduled())
}

func TestCreateOrderCommitFailureSchedulesNothing(t *testing.T) {
	scheduler := &recordingScheduler{}
	svc := application.NewService(&failingUnitOfWork{repo: memory.NewRepository()}, scheduler)

	_, err := svc.CreateOrder(context.Background(), validInput())
	require.ErrorIs(t, err, errCommitFailed)
	assert.Empty(t, scheduler.scheduled())
}

func TestCreateOrderSchedulingFailureDoesNotFailTheRequest(t *testing.T) {
	repo := memory.NewRepository()
	scheduler := &recordingScheduler{err: errors.New("broker down")}
	svc := application.NewService(memory.NewUnitOfWork(repo), scheduler)

	order, err := svc.CreateOrder(context.Background(), validInput())
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, stored.OrderNumber)
}

func TestChangeStatusSchedulesStatusUpdatedTask(t *testing.T) {
	svc, _, scheduler := newService(t)

	order, err := svc.CreateOrder(context.Background(), validInput())
	require.NoError(t, err)

	updated, err := svc.ChangeStatus(context.Background(), order.ID, domain.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, updated.Status)

	tasks := scheduler.scheduled()
	require.Len(t, tasks, 2)
	assert.Equal(t, domain.EventStatusUpdated, tasks[1].event)
	assert.Equal(t, order.ID, tasks[1].orderID)
}

func TestChangeStatusInvalidTransitionSchedulesNothing(t *testing.T) {
	svc, _, scheduler := newService(t)

	order, err := svc.CreateOrder(context.Background(), validInput())
	require.NoError(t, err)
	before := len(scheduler.scheduled())

	_, err = svc.ChangeStatus(context.Background(), order.ID, domain.StatusDelivered)
	var transitionErr *domain.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, domain.StatusPending, transitionErr.From)
	assert.Equal(t, domain.StatusDelivered, transitionErr.To)
	assert.Len(t, scheduler.scheduled(), before)
}

func TestChangeStatusUnknownOrder(t *testing.T) {
	svc, _, scheduler := newService(t)

	_, err := svc.ChangeStatus(context.Background(), uuid.New(), domain.StatusConfirmed)
	require.ErrorIs(t, err, ports.ErrNotFound)
	assert.Empty(t, scheduler.scheduled())
}

func TestFullLifecycleSchedulesOneTaskPerEvent(t *testing.T) {
	svc, _, scheduler := newService(t)

	order, err := svc.CreateOrder(context.Background(), validInput())
	require.NoError(t, err)

	for _, next := range []domain.Status{domain.StatusConfirmed, domain.StatusShipped, domain.StatusDelivered} {
		_, err = svc.ChangeStatus(context.Background(), order.ID, next)
		require.NoError(t, err)
	}

	tasks := scheduler.scheduled()
	require.Len(t, tasks, 4)
	assert.Equal(t, domain.EventCreated, tasks[0].event)
	for _, task := range tasks[1:] {
		assert.Equal(t, domain.EventStatusUpdated, task.event)
	}
}

func TestListOrdersRejectsUnknownStatusFilter(t *testing.T) {
	svc, _, _ := newService(t)

	bogus := domain.Status("archived")
	_, _, err := svc.ListOrders(context.Background(), ports.ListFilter{Status: &bogus})
	require.ErrorIs(t, err, application.ErrInvalidInput)
}

func TestListOrdersFiltersByStatus(t *testing.T) {
	svc, _, _ := newService(t)

	first, err := svc.CreateOrder(context.Background(), validInput())
	require.NoError(t, err)
	_, err = svc.CreateOrder(context.Background(), validInput())
	require.NoError(t, err)
	_, err = svc.ChangeStatus(context.Background(), first.ID, domain.StatusConfirmed)
	require.NoError(t, err)

	confirmed := domain.StatusConfirmed
	orders, total, err := svc.ListOrders(context.Background(), ports.ListFilter{Status: &confirmed})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, orders, 1)
	assert.Equal(t, first.ID, orders[0].ID)
}

func TestGetOrder(t *testing.T) {
	svc, _, _ := newService(t)

	order, err := svc.CreateOrder(context.Background(), validInput())
	require.NoError(t, err)

	found, err := svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, found.OrderNumber)

	_, err = svc.GetOrder(context.Background(), uuid.New())
	require.ErrorIs(t, err, ports.ErrNotFound)
}
