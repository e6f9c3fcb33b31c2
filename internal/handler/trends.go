package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/north-cloud/trend-tracker/internal/config"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/domain"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/logger"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/telemetry"
)

// TrendReader serves windowed word rankings from the store.
type TrendReader interface {
	TopWords(ctx context.Context, window time.Duration, limit int) ([]domain.WordTrend, error)
}

// TrendsHandler serves trend ranking queries.
type TrendsHandler struct {
	reader    TrendReader
	telemetry *telemetry.Provider
	logger    logger.Logger
	cfg       config.TrendsConfig
}

// NewTrendsHandler creates a TrendsHandler with the configured defaults.
func NewTrendsHandler(
	reader TrendReader,
	tp *telemetry.Provider,
	log logger.Logger,
	cfg config.TrendsConfig,
) *TrendsHandler {
	return &TrendsHandler{reader: reader, telemetry: tp, logger: log, cfg: cfg}
}

// GetTrends returns words ranked by summed counts over a trailing window.
// GET /trends?window=24h&limit=10
// An empty store returns an empty array, not an error.
func (h *TrendsHandler) GetTrends(c *gin.Context) {
	window, limit, ok := h.parseParams(c)
	if !ok {
		return
	}

	start := time.Now()
	trends, err := h.reader.TopWords(c.Request.Context(), window, limit)
	if err != nil {
		h.logger.Error("Trend query failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "storage unavailable",
		})
		return
	}
	h.telemetry.RecordTrendQuery(time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"window": window.String(),
		"limit":  limit,
		"trends": trends,
	})
}

// parseParams reads window and limit query parameters, falling back to the
// configured defaults. It writes a 400 response and returns ok=false on
// invalid input.
func (h *TrendsHandler) parseParams(c *gin.Context) (window time.Duration, limit int, ok bool) {
	window = h.cfg.DefaultWindow
	if raw := c.Query("window"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "invalid window: use a positive duration like 24h",
			})
			return 0, 0, false
		}
		window = parsed
	}

	limit = h.cfg.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > h.cfg.MaxLimit {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "invalid limit: must be between 1 and " + strconv.Itoa(h.cfg.MaxLimit),
			})
			return 0, 0, false
		}
		limit = parsed
	}

	return window, limit, true
}
