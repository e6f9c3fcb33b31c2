package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/north-cloud/trend-tracker/internal/handler"
)

// SetupRoutes registers all service routes.
func SetupRoutes(
	router *gin.Engine,
	collect *handler.CollectHandler,
	trends *handler.TrendsHandler,
	dashboard *handler.DashboardHandler,
	snapshots *handler.SnapshotHandler,
	health *handler.HealthHandler,
	metrics http.Handler,
) {
	// Dashboard bar chart
	router.GET("/", dashboard.Show)

	// Collection trigger; GET keeps the original cron-curl contract,
	// POST is accepted for callers that prefer the side-effecting verb.
	router.GET("/collect", collect.HandleCollect)
	router.POST("/collect", collect.HandleCollect)

	// Trend ranking query and stored snapshot lookup
	router.GET("/trends", trends.GetTrends)
	router.GET("/snapshots/:id", snapshots.GetSnapshot)

	// Operational endpoints
	router.GET("/health", health.HealthCheck)
	router.HEAD("/health", health.Head)
	router.GET("/metrics", gin.WrapH(metrics))
}
