package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health check status values.
const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// healthCheckTimeout bounds the database ping during a health check.
const healthCheckTimeout = 2 * time.Second

// HealthHandler handles health check requests.
type HealthHandler struct {
	service string
	version string
	dbPing  func(ctx context.Context) error
}

// NewHealthHandler creates a HealthHandler that reports the given service
// identity and verifies database connectivity via dbPing.
func NewHealthHandler(service, version string, dbPing func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{service: service, version: version, dbPing: dbPing}
}

// HealthCheck returns service health status, including a database
// connectivity check with its latency. An unreachable database yields 503.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	overall := statusHealthy
	httpStatus := http.StatusOK

	start := time.Now()
	pingErr := h.dbPing(ctx)
	latency := time.Since(start)

	dbCheck := gin.H{
		"status":  statusHealthy,
		"latency": latency.String(),
	}
	if pingErr != nil {
		overall = statusUnhealthy
		httpStatus = http.StatusServiceUnavailable
		dbCheck["status"] = statusUnhealthy
		dbCheck["message"] = "database connection failed"
	}

	c.JSON(httpStatus, gin.H{
		"status":    overall,
		"service":   h.service,
		"version":   h.version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks": gin.H{
			"database": dbCheck,
		},
	})
}

// Head answers lightweight HEAD probes from load balancers.
func (h *HealthHandler) Head(c *gin.Context) {
	c.Status(http.StatusOK)
}
