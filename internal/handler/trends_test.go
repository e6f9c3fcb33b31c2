package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/jonesrussell/north-cloud/trend-tracker/internal/domain"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/handler"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/logger"
)

func TestGetTrendsDefaults(t *testing.T) {
	reader := &fakeTrendReader{trends: []domain.WordTrend{
		{Word: "rust", Total: 12},
		{Word: "database", Total: 7},
	}}

	router := newTestRouter(t)
	h := handler.NewTrendsHandler(reader, getTestProvider(t), logger.NewNop(), testTrendsConfig())
	router.GET("/trends", h.GetTrends)

	w := performRequest(t, router, http.MethodGet, "/trends")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
	}
	if reader.gotWindow != 24*time.Hour {
		t.Errorf("window = %v, want 24h", reader.gotWindow)
	}
	if reader.gotLimit != 10 {
		t.Errorf("limit = %d, want 10", reader.gotLimit)
	}

	body := decodeBody(t, w)
	trends, ok := body["trends"].([]any)
	if !ok {
		t.Fatalf("trends is not an array: %T", body["trends"])
	}
	if len(trends) != 2 {
		t.Fatalf("trends length = %d, want 2", len(trends))
	}
}

func TestGetTrendsCustomParams(t *testing.T) {
	reader := &fakeTrendReader{}

	router := newTestRouter(t)
	h := handler.NewTrendsHandler(reader, getTestProvider(t), logger.NewNop(), testTrendsConfig())
	router.GET("/trends", h.GetTrends)

	w := performRequest(t, router, http.MethodGet, "/trends?window=1h&limit=3")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if reader.gotWindow != time.Hour {
		t.Errorf("window = %v, want 1h", reader.gotWindow)
	}
	if reader.gotLimit != 3 {
		t.Errorf("limit = %d, want 3", reader.gotLimit)
	}
}

func TestGetTrendsEmptyStore(t *testing.T) {
	reader := &fakeTrendReader{trends: []domain.WordTrend{}}

	router := newTestRouter(t)
	h := handler.NewTrendsHandler(reader, getTestProvider(t), logger.NewNop(), testTrendsConfig())
	router.GET("/trends", h.GetTrends)

	w := performRequest(t, router, http.MethodGet, "/trends")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	body := decodeBody(t, w)
	trends, ok := body["trends"].([]any)
	if !ok {
		t.Fatalf("trends is not an array: %T", body["trends"])
	}
	if len(trends) != 0 {
		t.Fatalf("expected empty trends, got %d", len(trends))
	}
}

func TestGetTrendsBadParams(t *testing.T) {
	testCases := []struct {
		name   string
		target string
	}{
		{name: "unparseable window", target: "/trends?window=yesterday"},
		{name: "negative window", target: "/trends?window=-2h"},
		{name: "unparseable limit", target: "/trends?limit=ten"},
		{name: "zero limit", target: "/trends?limit=0"},
		{name: "limit above maximum", target: "/trends?limit=5000"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reader := &fakeTrendReader{}

			router := newTestRouter(t)
			h := handler.NewTrendsHandler(reader, getTestProvider(t), logger.NewNop(), testTrendsConfig())
			router.GET("/trends", h.GetTrends)

			w := performRequest(t, router, http.MethodGet, tc.target)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
			if reader.gotLimit != 0 {
				t.Error("reader must not be called on invalid params")
			}
		})
	}
}

func TestGetTrendsStorageError(t *testing.T) {
	reader := &fakeTrendReader{err: domain.ErrStorageUnavailable}

	router := newTestRouter(t)
	h := handler.NewTrendsHandler(reader, getTestProvider(t), logger.NewNop(), testTrendsConfig())
	router.GET("/trends", h.GetTrends)

	w := performRequest(t, router, http.MethodGet, "/trends")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}

	body := decodeBody(t, w)
	if body["status"] != "error" {
		t.Errorf("status field = %v, want error", body["status"])
	}
}
