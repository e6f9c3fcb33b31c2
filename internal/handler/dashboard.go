package handler

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/north-cloud/trend-tracker/internal/config"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/domain"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/logger"
)

// StatsReader reports store-wide totals for the dashboard footer.
type StatsReader interface {
	Stats(ctx context.Context) (*domain.StoreStats, error)
}

// DashboardHandler renders the trend bar chart.
type DashboardHandler struct {
	trends TrendReader
	stats  StatsReader
	logger logger.Logger
	cfg    config.TrendsConfig
	tmpl   *template.Template
}

// NewDashboardHandler creates a DashboardHandler using the configured default
// window and limit.
func NewDashboardHandler(
	trends TrendReader,
	stats StatsReader,
	log logger.Logger,
	cfg config.TrendsConfig,
) *DashboardHandler {
	return &DashboardHandler{
		trends: trends,
		stats:  stats,
		logger: log,
		cfg:    cfg,
		tmpl:   template.Must(template.New("dashboard").Parse(dashboardTemplate)),
	}
}

// dashboardData carries the chart series into the template. Labels and Data
// are pre-marshaled JSON arrays injected into the inline script.
type dashboardData struct {
	Window    string
	Labels    template.JS
	Data      template.JS
	Snapshots int64
}

// Show renders the bar chart of the top trending words. An empty store
// renders an empty chart.
func (h *DashboardHandler) Show(c *gin.Context) {
	ctx := c.Request.Context()

	trends, err := h.trends.TopWords(ctx, h.cfg.DefaultWindow, h.cfg.DefaultLimit)
	if err != nil {
		h.logger.Error("Dashboard trend query failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "storage unavailable",
		})
		return
	}

	data := dashboardData{Window: h.cfg.DefaultWindow.String()}

	labels := make([]string, 0, len(trends))
	totals := make([]int64, 0, len(trends))
	for _, tr := range trends {
		labels = append(labels, tr.Word)
		totals = append(totals, tr.Total)
	}

	labelsJSON, marshalErr := json.Marshal(labels)
	if marshalErr == nil {
		data.Labels = template.JS(labelsJSON)
	}
	totalsJSON, marshalErr := json.Marshal(totals)
	if marshalErr == nil {
		data.Data = template.JS(totalsJSON)
	}

	// Footer totals are decoration; a failed stats read only logs.
	if stats, statsErr := h.stats.Stats(ctx); statsErr == nil {
		data.Snapshots = stats.Snapshots
	} else {
		h.logger.Warn("Dashboard stats query failed", logger.Error(statsErr))
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if execErr := h.tmpl.Execute(c.Writer, data); execErr != nil {
		h.logger.Error("Dashboard template render failed", logger.Error(execErr))
	}
}

const dashboardTemplate = `<!DOCTYPE html>
<html>
<head>
    <title>Lexicon Velocity</title>
    <script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
    <style>
        body { font-family: sans-serif; background: #111; color: #eee; display: flex; justify-content: center; align-items: center; height: 100vh; margin: 0; }
        .container { width: 90%; max-width: 800px; text-align: center; }
        h1 { font-weight: 300; letter-spacing: 2px; }
        footer { color: #666; font-size: 0.8em; margin-top: 1em; }
    </style>
</head>
<body>
    <div class="container">
        <h1>LEXICON VELOCITY // {{.Window}}</h1>
        <canvas id="trendChart"></canvas>
        <footer>{{.Snapshots}} snapshots collected</footer>
    </div>
    <script>
        const ctx = document.getElementById('trendChart');
        new Chart(ctx, {
            type: 'bar',
            data: {
                labels: {{.Labels}},
                datasets: [{
                    label: 'Velocity (Occurrences)',
                    data: {{.Data}},
                    backgroundColor: '#00e5ff',
                    borderColor: '#00e5ff',
                    borderWidth: 1
                }]
            },
            options: {
                scales: {
                    y: { beginAtZero: true, grid: { color: '#333' } },
                    x: { grid: { color: '#333' } }
                }
            }
        });
    </script>
</body>
</html>
`
