package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.temporal.io/sdk/client"
	"gorm.io/gorm"
)

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Temporal string `json:"temporal"`
}

// healthHandler reports process liveness plus the state of each dependency.
// A disabled dependency is reported as such without degrading the overall
// status; only a configured-but-unreachable one returns 503.
type healthHandler struct {
	db       *gorm.DB
	temporal client.Client
}

func (h *healthHandler) Check(c *gin.Context) {
	resp := healthResponse{Status: "ok", Database: "disabled", Temporal: "disabled"}

	if h.db != nil {
		resp.Database = "ok"
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		sqlDB, err := h.db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			resp.Database = "unavailable"
			resp.Status = "degraded"
		}
		cancel()
	}

	if h.temporal != nil {
		resp.Temporal = "ok"
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		if _, err := h.temporal.CheckHealth(ctx, &client.CheckHealthRequest{}); err != nil {
			resp.Temporal = "unavailable"
			resp.Status = "degraded"
		}
		cancel()
	}

	code := http.StatusOK
	if resp.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, resp)
}
