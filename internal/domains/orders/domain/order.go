package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	maxCustomerNameLen = 100
	maxProductNameLen  = 200
)

var (
	ErrEmptyCustomerName = errors.New("customer name is required")
	ErrCustomerNameLen   = errors.New("customer name exceeds 100 characters")
	ErrEmptyProductName  = errors.New("product name is required")
	ErrProductNameLen    = errors.New("product name exceeds 200 characters")
	ErrInvalidQuantity   = errors.New("quantity must be at least one")
	ErrNegativePrice     = errors.New("price must not be negative")
	ErrInvalidStatus     = errors.New("order status is invalid")
)

// Order is the aggregate tracked through its lifecycle. Status changes only
// via ChangeStatus, which consults the transition graph.
type Order struct {
	ID           uuid.UUID
	OrderNumber  string
	CustomerName string
	ProductName  string
	Quantity     int
	Price        Money
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewOrder validates the invariants and builds a pending order. The id is a
// v7 uuid so creation order is recoverable from the id itself.
func NewOrder(orderNumber, customerName, productName string, quantity int, price Money) (*Order, error) {
	order := &Order{
		ID:           newOrderID(),
		OrderNumber:  orderNumber,
		CustomerName: strings.TrimSpace(customerName),
		ProductName:  strings.TrimSpace(productName),
		Quantity:     quantity,
		Price:        price,
		Status:       StatusPending,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.CustomerName == "" {
		return ErrEmptyCustomerName
	}
	if len(o.CustomerName) > maxCustomerNameLen {
		return ErrCustomerNameLen
	}
	if o.ProductName == "" {
		return ErrEmptyProductName
	}
	if len(o.ProductName) > maxProductNameLen {
		return ErrProductNameLen
	}
	if o.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if o.Price < 0 {
		return ErrNegativePrice
	}
	if !IsValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// ChangeStatus applies a requested transition or rejects it.
func (o *Order) ChangeStatus(requested Status) error {
	next, err := Transition(o.Status, requested)
	if err != nil {
		return err
	}
	o.Status = next
	return nil
}

func newOrderID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the entropy source does; fall back to v4.
		return uuid.New()
	}
	return id
}
