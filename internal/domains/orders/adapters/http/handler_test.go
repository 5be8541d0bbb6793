package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordershttp "github.com/Apurer/go-order-tracker/internal/domains/orders/adapters/http"
	"github.com/Apurer/go-order-tracker/internal/domains/orders/adapters/memory"
	"github.com/Apurer/go-order-tracker/internal/domains/orders/application"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := memory.NewRepository()
	service := application.NewService(memory.NewUnitOfWork(repo), nil)
	router := gin.New()
	ordershttp.NewOrderAPI(service).Register(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func createOrder(t *testing.T, router *gin.Engine) map[string]any {
	t.Helper()
	resp := doJSON(t, router, http.MethodPost, "/api/orders", map[string]any{
		"customer_name": "Ada Lovelace",
		"product_name":  "Mechanical keyboard",
		"quantity":      2,
		"price":         "29.99",
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body
}

func TestCreateOrderEndpoint(t *testing.T) {
	router := newRouter(t)
	body := createOrder(t, router)

	assert.Regexp(t, `^ORD-[A-Z0-9]{6}$`, body["order_number"])
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, "29.99", body["price"])
	_, err := uuid.Parse(body["id"].(string))
	assert.NoError(t, err)
}

func TestCreateOrderRejectsMissingFields(t *testing.T) {
	router := newRouter(t)
	resp := doJSON(t, router, http.MethodPost, "/api/orders", map[string]any{
		"customer_name": "Ada",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCreateOrderRejectsMalformedPrice(t *testing.T) {
	router := newRouter(t)
	resp := doJSON(t, router, http.MethodPost, "/api/orders", map[string]any{
		"customer_name": "Ada",
		"product_name":  "widget",
		"quantity":      1,
		"price":         "1.999",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "application/problem+json", resp.Header().Get("Content-Type"))
}

func TestCreateOrderRejectsInvalidQuantity(t *testing.T) {
	router := newRouter(t)
	resp := doJSON(t, router, http.MethodPost, "/api/orders", map[string]any{
		"customer_name": "Ada",
		"product_name":  "widget",
		"quantity":      -1,
		"price":         "1.00",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetOrderEndpoint(t *testing.T) {
	router := newRouter(t)
	created := createOrder(t, router)

	resp := doJSON(t, router, http.MethodGet, "/api/orders/"+created["id"].(string), nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, created["order_number"], body["order_number"])
}

func TestGetOrderNotFound(t *testing.T) {
	router := newRouter(t)

	resp := doJSON(t, router, http.MethodGet, "/api/orders/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = doJSON(t, router, http.MethodGet, "/api/orders/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUpdateOrderStatusEndpoint(t *testing.T) {
	router := newRouter(t)
	created := createOrder(t, router)
	path := fmt.Sprintf("/api/orders/%s/status", created["id"])

	resp := doJSON(t, router, http.MethodPatch, path, map[string]any{"status": "confirmed"})
	require.Equal(t, http.StatusOK, resp.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "confirmed", body["status"])
}

func TestUpdateOrderStatusInvalidTransitionNamesBothStatuses(t *testing.T) {
	router := newRouter(t)
	created := createOrder(t, router)
	path := fmt.Sprintf("/api/orders/%s/status", created["id"])

	resp := doJSON(t, router, http.MethodPatch, path, map[string]any{"status": "delivered"})
	require.Equal(t, http.StatusConflict, resp.Code)

	var problem map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &problem))
	extensions, ok := problem["extensions"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "pending", extensions["from"])
	assert.Equal(t, "delivered", extensions["to"])
}

func TestUpdateOrderStatusUnknownOrder(t *testing.T) {
	router := newRouter(t)
	resp := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/orders/%s/status", uuid.NewString()), map[string]any{"status": "confirmed"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListOrdersEndpoint(t *testing.T) {
	router := newRouter(t)
	first := createOrder(t, router)
	createOrder(t, router)
	createOrder(t, router)

	doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/orders/%s/status", first["id"]), map[string]any{"status": "confirmed"})

	resp := doJSON(t, router, http.MethodGet, "/api/orders?page=1&page_size=2", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var page struct {
		Orders   []map[string]any `json:"orders"`
		Total    int64            `json:"total"`
		Page     int              `json:"page"`
		PageSize int              `json:"page_size"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &page))
	assert.EqualValues(t, 3, page.Total)
	assert.Len(t, page.Orders, 2)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.PageSize)

	resp = doJSON(t, router, http.MethodGet, "/api/orders?status=confirmed", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &page))
	assert.EqualValues(t, 1, page.Total)
	require.Len(t, page.Orders, 1)
	assert.Equal(t, first["id"], page.Orders[0]["id"])
}

func TestListOrdersRejectsUnknownStatus(t *testing.T) {
	router := newRouter(t)
	resp := doJSON(t, router, http.MethodGet, "/api/orders?status=archived", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
