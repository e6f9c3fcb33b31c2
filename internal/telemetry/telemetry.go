// Package telemetry provides Prometheus metrics and tracing for trend-tracker.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "trend-tracker"

// Outcome labels for collection run metrics.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// Metrics holds all trend-tracker Prometheus metrics.
type Metrics struct {
	// Collection metrics
	RunsTotal      *prometheus.CounterVec
	RunDuration    prometheus.Histogram
	StageDuration  *prometheus.HistogramVec
	TitlesFetched  prometheus.Histogram
	WordsPersisted prometheus.Histogram

	// Query metrics
	TrendQueries       prometheus.Counter
	TrendQueryDuration prometheus.Histogram
}

// Provider wraps the tracer and metrics for the service.
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics.
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	return &Metrics{
		RunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "trend_tracker_runs_total",
			Help: "Total collection runs by outcome (success, failed)",
		}, []string{"outcome"}),

		RunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "trend_tracker_run_duration_seconds",
			Help:    "End-to-end duration of a collection run",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
		}),

		StageDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trend_tracker_stage_duration_seconds",
			Help:    "Duration of each collection stage",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0},
		}, []string{"stage"}),

		TitlesFetched: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "trend_tracker_titles_fetched",
			Help:    "Number of titles returned per fetch",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}),

		WordsPersisted: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "trend_tracker_words_persisted",
			Help:    "Word-count rows written per snapshot",
			Buckets: prometheus.LinearBuckets(0, 5, 11),
		}),

		TrendQueries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "trend_tracker_trend_queries_total",
			Help: "Total trend ranking queries served",
		}),

		TrendQueryDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "trend_tracker_trend_query_duration_seconds",
			Help:    "Duration of trend ranking queries",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		}),
	}
}

// RecordRun records the outcome and duration of a collection run.
func (p *Provider) RecordRun(outcome string, duration time.Duration) {
	p.Metrics.RunsTotal.WithLabelValues(outcome).Inc()
	p.Metrics.RunDuration.Observe(duration.Seconds())
}

// RecordStage records how long a single collection stage took.
func (p *Provider) RecordStage(stage string, duration time.Duration) {
	p.Metrics.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordFetch records the number of titles returned by a fetch.
func (p *Provider) RecordFetch(titles int) {
	p.Metrics.TitlesFetched.Observe(float64(titles))
}

// RecordPersist records the number of word rows written for a snapshot.
func (p *Provider) RecordPersist(words int) {
	p.Metrics.WordsPersisted.Observe(float64(words))
}

// RecordTrendQuery records a served trend query and its duration.
func (p *Provider) RecordTrendQuery(duration time.Duration) {
	p.Metrics.TrendQueries.Inc()
	p.Metrics.TrendQueryDuration.Observe(duration.Seconds())
}
