package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	order, err := NewOrder("ORD-A3X7K9", "  Ada Lovelace  ", "Mechanical keyboard", 2, Money(2999))
	require.NoError(t, err)

	assert.NotEqual(t, order.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Equal(t, "ORD-A3X7K9", order.OrderNumber)
	assert.Equal(t, "Ada Lovelace", order.CustomerName)
	assert.Equal(t, StatusPending, order.Status)
}

func TestNewOrderValidation(t *testing.T) {
	cases := []struct {
		name     string
		customer string
		product  string
		quantity int
		price    Money
		want     error
	}{
		{"empty customer", "", "widget", 1, 100, ErrEmptyCustomerName},
		{"whitespace customer", "   ", "widget", 1, 100, ErrEmptyCustomerName},
		{"customer too long", strings.Repeat("a", 101), "widget", 1, 100, ErrCustomerNameLen},
		{"empty product", "Ada", "", 1, 100, ErrEmptyProductName},
		{"product too long", "Ada", strings.Repeat("b", 201), 1, 100, ErrProductNameLen},
		{"zero quantity", "Ada", "widget", 0, 100, ErrInvalidQuantity},
		{"negative quantity", "Ada", "widget", -4, 100, ErrInvalidQuantity},
		{"negative price", "Ada", "widget", 1, -1, ErrNegativePrice},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewOrder("ORD-000001", tc.customer, tc.product, tc.quantity, tc.price)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestNewOrderBoundaryLengths(t *testing.T) {
	_, err := NewOrder("ORD-000001", strings.Repeat("a", 100), strings.Repeat("b", 200), 1, 0)
	require.NoError(t, err)
}

func TestOrderChangeStatus(t *testing.T) {
	order, err := NewOrder("ORD-000001", "Ada", "widget", 1, 100)
	require.NoError(t, err)

	require.NoError(t, order.ChangeStatus(StatusConfirmed))
	require.NoError(t, order.ChangeStatus(StatusShipped))
	require.NoError(t, order.ChangeStatus(StatusDelivered))
	assert.Equal(t, StatusDelivered, order.Status)

	err = order.ChangeStatus(StatusCancelled)
	require.Error(t, err)
	assert.Equal(t, StatusDelivered, order.Status, "rejected transition must not mutate the order")
}

func TestOrderIDsAreTimeOrdered(t *testing.T) {
	first, err := NewOrder("ORD-000001", "Ada", "widget", 1, 100)
	require.NoError(t, err)
	second, err := NewOrder("ORD-000002", "Ada", "widget", 1, 100)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}
