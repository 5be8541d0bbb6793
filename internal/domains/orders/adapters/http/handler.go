// Package http exposes the orders bounded context over gin transport.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Apurer/go-order-tracker/internal/domains/orders/adapters/http/mapper"
	"github.com/Apurer/go-order-tracker/internal/domains/orders/application"
	"github.com/Apurer/go-order-tracker/internal/domains/orders/domain"
	"github.com/Apurer/go-order-tracker/internal/domains/orders/ports"
	sharederrors "github.com/Apurer/go-order-tracker/internal/shared/errors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// OrderAPI wires HTTP transport with the orders service.
type OrderAPI struct {
	service   ports.Service
	responder *sharederrors.ChainedResponder
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service ports.Service) *OrderAPI {
	return &OrderAPI{
		service:   service,
		responder: sharederrors.NewChainedResponder("", mapOrderError),
	}
}

// Register mounts the order routes on the given router group.
func (api *OrderAPI) Register(r gin.IRouter) {
	r.POST("/api/orders", api.CreateOrder)
	r.GET("/api/orders", api.ListOrders)
	r.GET("/api/orders/:id", api.GetOrder)
	r.PATCH("/api/orders/:id/status", api.UpdateOrderStatus)
}

// Post /api/orders
// Create an order; the order number is generated server-side.
func (api *OrderAPI) CreateOrder(c *gin.Context) {
	var payload mapper.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	input, err := mapper.ToCreateInput(payload)
	if err != nil {
		api.responder.ValidationFailed(c, map[string]string{"price": err.Error()})
		return
	}
	order, err := api.service.CreateOrder(c.Request.Context(), input)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapper.FromDomainOrder(order))
}

// Get /api/orders/:id
// Fetch a single order by id.
func (api *OrderAPI) GetOrder(c *gin.Context) {
	id, ok := api.parseOrderID(c)
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainOrder(order))
}

// Get /api/orders
// List orders newest-first, optionally filtered by status.
func (api *OrderAPI) ListOrders(c *gin.Context) {
	filter := ports.ListFilter{
		Page:     parsePositiveQuery(c, "page", 1),
		PageSize: parsePositiveQuery(c, "page_size", defaultPageSize),
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.Status(raw)
		filter.Status = &status
	}
	orders, total, err := api.service.ListOrders(c.Request.Context(), filter)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainOrderList(orders, total, filter.Page, filter.PageSize))
}

// Patch /api/orders/:id/status
// Request a lifecycle transition; invalid transitions are rejected with a
// conflict naming both statuses.
func (api *OrderAPI) UpdateOrderStatus(c *gin.Context) {
	id, ok := api.parseOrderID(c)
	if !ok {
		return
	}
	var payload mapper.UpdateStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	order, err := api.service.ChangeStatus(c.Request.Context(), id, domain.Status(payload.Status))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainOrder(order))
}

func (api *OrderAPI) parseOrderID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.responder.NotFound(c, "order", c.Param("id"))
		return uuid.Nil, false
	}
	return id, true
}

func parsePositiveQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

// mapOrderError translates service errors into problem details.
func mapOrderError(err error) (sharederrors.ProblemDetail, bool) {
	var transitionErr *domain.InvalidTransitionError
	switch {
	case errors.As(err, &transitionErr):
		return sharederrors.NewInvalidTransitionProblem(string(transitionErr.From), string(transitionErr.To)), true
	case errors.Is(err, ports.ErrNotFound):
		return sharederrors.ErrNotFound.WithDetail("order not found"), true
	case errors.Is(err, ports.ErrConflict):
		return sharederrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrInvalidInput):
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	}
	return sharederrors.ProblemDetail{}, false
}
