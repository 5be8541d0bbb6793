package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-order-tracker/internal/domains/orders/domain"
	"github.com/Apurer/go-order-tracker/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM. When constructed from
// a transaction handle (see UnitOfWork), all operations run inside it.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps the order aggregate to a relational table. The unique
// index on order_number is the final authority for number collisions.
type orderRecord struct {
	ID           uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	OrderNumber  string    `gorm:"column:order_number;size:20;uniqueIndex"`
	CustomerName string    `gorm:"column:customer_name;size:100"`
	ProductName  string    `gorm:"column:product_name;size:200"`
	Quantity     int       `gorm:"column:quantity"`
	PriceCents   int64     `gorm:"column:price_cents"`
	Status       string    `gorm:"column:status;type:varchar(20);index"`
	CreatedAt    time.Time `gorm:"column:created_at;index"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Create inserts a new order. A duplicate order number surfaces as ErrConflict.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrConflict
		}
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// UpdateStatus re-reads the row FOR UPDATE and validates the transition
// against the status actually stored, so concurrent writers serialize on the
// row lock and at most one caller's transition commits.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, requested domain.Status) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	next, err := domain.Transition(domain.Status(record.Status), requested)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Model(&orderRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(next),
			"updated_at": gorm.Expr("NOW()"),
		}).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// NumberExists probes the uniqueness of an order number candidate.
func (r *Repository) NumberExists(ctx context.Context, number string) (bool, error) {
	if err := r.ensureDB(); err != nil {
		return false, err
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&orderRecord{}).
		Where("order_number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns a page of orders, newest first, optionally filtered by status.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Order, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	query := r.db.WithContext(ctx).Model(&orderRecord{})
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	page, size := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	var records []orderRecord
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, total, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:           order.ID,
		OrderNumber:  order.OrderNumber,
		CustomerName: order.CustomerName,
		ProductName:  order.ProductName,
		Quantity:     order.Quantity,
		PriceCents:   order.Price.Cents(),
		Status:       string(order.Status),
	}
}

func (r orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:           r.ID,
		OrderNumber:  r.OrderNumber,
		CustomerName: r.CustomerName,
		ProductName:  r.ProductName,
		Quantity:     r.Quantity,
		Price:        domain.Money(r.PriceCents),
		Status:       domain.Status(r.Status),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
