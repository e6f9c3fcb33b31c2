package feed_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonesrussell/north-cloud/trend-tracker/internal/domain"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/feed"
)

const testTimeout = 5 * time.Second

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("tags"); got != "front_page" {
			t.Errorf("unexpected tags query: %q", got)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestFetchFrontPage(t *testing.T) {
	body := `{"hits": [
		{"objectID": "1", "title": "Show HN: new database engine", "url": "https://a.example", "author": "pg", "points": 120},
		{"objectID": "2", "title": "Ask HN: why is rust so hard", "author": "dang", "points": 80}
	]}`

	srv := newTestServer(t, http.StatusOK, body)
	client := feed.NewClient(srv.URL, testTimeout)

	items, err := client.FetchFrontPage(context.Background())
	if err != nil {
		t.Fatalf("FetchFrontPage() error = %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Title != "Show HN: new database engine" {
		t.Errorf("unexpected title: %q", items[0].Title)
	}
	if items[1].Points != 80 {
		t.Errorf("unexpected points: %d", items[1].Points)
	}
	if len(items[0].Raw) == 0 {
		t.Error("expected raw payload to be preserved")
	}
}

func TestFetchFrontPageEmptyHits(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"hits": []}`)
	client := feed.NewClient(srv.URL, testTimeout)

	items, err := client.FetchFrontPage(context.Background())
	if err != nil {
		t.Fatalf("FetchFrontPage() error = %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}
}

func TestFetchFrontPageErrors(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "oops"},
		{name: "not found", status: http.StatusNotFound, body: ""},
		{name: "malformed json", status: http.StatusOK, body: `{"hits": [`},
		{name: "wrong hit shape", status: http.StatusOK, body: `{"hits": ["not-an-object"]}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t, tc.status, tc.body)
			client := feed.NewClient(srv.URL, testTimeout)

			_, err := client.FetchFrontPage(context.Background())
			if !errors.Is(err, domain.ErrFeedUnavailable) {
				t.Fatalf("expected ErrFeedUnavailable, got %v", err)
			}
		})
	}
}

func TestFetchFrontPageUnreachable(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"hits": []}`)
	url := srv.URL
	srv.Close()

	client := feed.NewClient(url, testTimeout)

	_, err := client.FetchFrontPage(context.Background())
	if !errors.Is(err, domain.ErrFeedUnavailable) {
		t.Fatalf("expected ErrFeedUnavailable, got %v", err)
	}
}
