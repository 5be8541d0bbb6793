package mapper

import (
	"time"

	"github.com/Apurer/go-order-tracker/internal/domains/orders/domain"
	"github.com/Apurer/go-order-tracker/internal/domains/orders/ports"
)

// Order is the HTTP representation of an order.
type Order struct {
	ID           string    `json:"id"`
	OrderNumber  string    `json:"order_number"`
	CustomerName string    `json:"customer_name"`
	ProductName  string    `json:"product_name"`
	Quantity     int       `json:"quantity"`
	Price        string    `json:"price"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateOrderRequest captures the inbound payload for order creation.
type CreateOrderRequest struct {
	CustomerName string `json:"customer_name" binding:"required"`
	ProductName  string `json:"product_name" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required"`
	Price        string `json:"price" binding:"required"`
}

// UpdateStatusRequest captures the inbound payload for a status change.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderList is the paginated HTTP representation of an order collection.
type OrderList struct {
	Orders   []Order `json:"orders"`
	Total    int64   `json:"total"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
}

// ToCreateInput converts the transport payload into an application input.
// Price validation happens in the domain; a malformed decimal surfaces as a
// validation error there.
func ToCreateInput(req CreateOrderRequest) (ports.CreateOrderInput, error) {
	price, err := domain.ParseMoney(req.Price)
	if err != nil {
		return ports.CreateOrderInput{}, err
	}
	return ports.CreateOrderInput{
		CustomerName: req.CustomerName,
		ProductName:  req.ProductName,
		Quantity:     req.Quantity,
		Price:        price,
	}, nil
}

// FromDomainOrder maps a domain order into its transport representation.
func FromDomainOrder(o *domain.Order) Order {
	return Order{
		ID:           o.ID.String(),
		OrderNumber:  o.OrderNumber,
		CustomerName: o.CustomerName,
		ProductName:  o.ProductName,
		Quantity:     o.Quantity,
		Price:        o.Price.String(),
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

// FromDomainOrderList maps a page of domain orders into the transport list.
func FromDomainOrderList(orders []*domain.Order, total int64, page, pageSize int) OrderList {
	items := make([]Order, 0, len(orders))
	for _, o := range orders {
		items = append(items, FromDomainOrder(o))
	}
	return OrderList{Orders: items, Total: total, Page: page, PageSize: pageSize}
}
