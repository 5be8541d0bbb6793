package api

import (
	"github.com/gin-gonic/gin"
	"go.temporal.io/sdk/client"
	"gorm.io/gorm"

	ordershttp "github.com/Apurer/go-order-tracker/internal/domains/orders/adapters/http"
	ordersports "github.com/Apurer/go-order-tracker/internal/domains/orders/ports"
)

// NewRouter assembles the gin engine with the order routes and health check.
func NewRouter(service ordersports.Service, db *gorm.DB, temporal client.Client) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	ordershttp.NewOrderAPI(service).Register(router)

	health := &healthHandler{db: db, temporal: temporal}
	router.GET("/health", health.Check)
	return router
}
