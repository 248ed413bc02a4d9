package handler

import (
	"context"
	"time"

	"inotebook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger is satisfied by a mongo client wrapper and the redis blacklist.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	checks  map[string]Pinger
	cpu     func() (float64, error)
	timeout time.Duration
	logger  *zap.Logger
}

func NewHealthHandler(checks map[string]Pinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		checks:  checks,
		cpu:     utils.GetCPUUsage,
		timeout: 2 * time.Second,
		logger:  logger,
	}
}

type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
	CPUPercent float64           `json:"cpu_percent"`
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	resp := HealthResponse{
		Status:     "ok",
		Components: make(map[string]string, len(h.checks)),
	}

	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			h.logger.Warn("health check failed", zap.String("component", name), zap.Error(err))
			resp.Components[name] = "down"
			resp.Status = "degraded"
			continue
		}
		resp.Components[name] = "up"
	}

	if usage, err := h.cpu(); err == nil {
		resp.CPUPercent = usage
	}

	if resp.Status != "ok" {
		utils.ServiceUnavailable(c, resp)
		return
	}
	utils.Success(c, resp)
}
