package menu

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testPipeline(url string) *Pipeline {
	return &Pipeline{
		httpClient: http.DefaultClient,
		extractor:  NewExtractor(),
		filterer:   NewFilterer(),
		sourceURL:  url,
		userAgent:  "Foodstoffi/test",
		timeout:    5 * time.Second,
	}
}

func TestPipeline_Run(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	page := pageWithPayload(strings.ReplaceAll(menuJSON, "2026-08-31", today))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "Foodstoffi/test" {
			t.Errorf("Expected configured user agent, got: %s", r.Header.Get("User-Agent"))
		}
		w.Write(page)
	}))
	defer server.Close()

	dishes, err := testPipeline(server.URL).Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(dishes) != 1 {
		t.Fatalf("Expected 1 dish, got: %d", len(dishes))
	}
	if dishes[0].Title != "Riz Casimir" {
		t.Errorf("Expected 'Riz Casimir', got: %s", dishes[0].Title)
	}
}

func TestPipeline_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := testPipeline(server.URL).Run(context.Background())
	if err == nil {
		t.Error("Expected error for non-success status")
	}
}

func TestPipeline_PayloadMissingIsSoft(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>no payload here</body></html>`))
	}))
	defer server.Close()

	dishes, err := testPipeline(server.URL).Run(context.Background())
	if err != nil {
		t.Fatalf("Expected soft outcome, got error: %v", err)
	}
	if dishes != nil {
		t.Errorf("Expected no dishes, got: %v", dishes)
	}
}

func TestPipeline_NoDayMatchingToday(t *testing.T) {
	// Fixture date is in the past relative to any test run
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(pageWithPayload(strings.ReplaceAll(menuJSON, "2026-08-31", "2020-01-01")))
	}))
	defer server.Close()

	dishes, err := testPipeline(server.URL).Run(context.Background())
	if err != nil {
		t.Fatalf("Expected soft outcome, got error: %v", err)
	}
	if dishes != nil {
		t.Errorf("Expected no dishes for a stale menu, got: %v", dishes)
	}
}
