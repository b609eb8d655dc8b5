package handler

import (
	"time"

	"kitnotes/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HealthHandler struct {
	started time.Time
	logger  *zap.Logger
}

func NewHealthHandler(logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{started: time.Now(), logger: logger}
}

type HealthResponse struct {
	Status string           `json:"status"`
	Uptime string           `json:"uptime"`
	Host   *utils.HostStats `json:"host,omitempty"`
}

// GetHealth reports liveness. Host stats are best effort.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	resp := HealthResponse{
		Status: "ok",
		Uptime: time.Since(h.started).Round(time.Second).String(),
	}

	stats, err := utils.GetHostStats(c.Request.Context())
	if err != nil {
		h.logger.Warn("failed to read host stats", zap.Error(err))
	} else {
		resp.Host = &stats
	}

	utils.Success(c, resp)
}
