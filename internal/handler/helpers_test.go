package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/north-cloud/trend-tracker/internal/config"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/domain"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/telemetry"
)

// One provider per test binary; promauto registers into a global registry.
var (
	testProvider *telemetry.Provider
	providerOnce sync.Once
)

func getTestProvider(t *testing.T) *telemetry.Provider {
	t.Helper()
	providerOnce.Do(func() {
		testProvider = telemetry.NewProvider()
	})
	return testProvider
}

func testTrendsConfig() config.TrendsConfig {
	return config.TrendsConfig{
		DefaultWindow: 24 * time.Hour,
		DefaultLimit:  10,
		MaxLimit:      100,
	}
}

// fakeRunner implements handler.CollectionRunner.
type fakeRunner struct {
	result *domain.CollectionResult
	err    error
}

func (f *fakeRunner) Run(_ context.Context) (*domain.CollectionResult, error) {
	return f.result, f.err
}

// fakeTrendReader implements handler.TrendReader.
type fakeTrendReader struct {
	trends []domain.WordTrend
	err    error

	gotWindow time.Duration
	gotLimit  int
}

func (f *fakeTrendReader) TopWords(_ context.Context, window time.Duration, limit int) ([]domain.WordTrend, error) {
	f.gotWindow = window
	f.gotLimit = limit
	return f.trends, f.err
}

// fakeStatsReader implements handler.StatsReader.
type fakeStatsReader struct {
	stats *domain.StoreStats
	err   error
}

func (f *fakeStatsReader) Stats(_ context.Context) (*domain.StoreStats, error) {
	return f.stats, f.err
}

func performRequest(t *testing.T, router *gin.Engine, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	return gin.New()
}
