package telemetry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/usmancout/ShopSense-AI/internal/auth"
	"github.com/usmancout/ShopSense-AI/internal/catalog"
)

type recordedRequest struct {
	path string
	auth string
	body map[string]interface{}
}

func TestTrackSearch_PostsWithBearerToken(t *testing.T) {
	var (
		mu  sync.Mutex
		got []recordedRequest
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		got = append(got, recordedRequest{path: r.URL.Path, auth: r.Header.Get("Authorization"), body: body})
		mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	tracker := NewTracker(server.URL, auth.StaticTokenProvider("tok-123"), time.Second, zap.NewNop())
	tracker.TrackSearch(context.Background(), "iphone", "Electronics")

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 {
		t.Fatalf("recorded %d requests, want 1", len(got))
	}
	if got[0].path != "/api/auth/search-history" {
		t.Errorf("path = %q", got[0].path)
	}
	if got[0].auth != "Bearer tok-123" {
		t.Errorf("auth = %q, want bearer token", got[0].auth)
	}
	if got[0].body["query"] != "iphone" || got[0].body["category"] != "Electronics" {
		t.Errorf("body = %v", got[0].body)
	}
}

func TestTrackProductView_PostsProductFields(t *testing.T) {
	var (
		mu   sync.Mutex
		body map[string]interface{}
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		json.NewDecoder(r.Body).Decode(&body)
		mu.Unlock()
	}))
	defer server.Close()

	tracker := NewTracker(server.URL, auth.StaticTokenProvider("tok"), time.Second, zap.NewNop())
	tracker.TrackProductView(context.Background(), catalog.Product{
		ID: "martello-1", Name: "iPhone", Brand: "Apple", Price: 999, Store: "Martello", URL: "#",
	})

	mu.Lock()
	defer mu.Unlock()
	if body["productId"] != "martello-1" || body["store"] != "Martello" {
		t.Errorf("body = %v", body)
	}
}

// Telemetry must never propagate failures; a dead endpoint is only logged.
func TestTrack_SwallowsFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	tracker := NewTracker(server.URL, auth.StaticTokenProvider("tok"), time.Second, zap.NewNop())
	tracker.TrackSearch(context.Background(), "q", "")

	server.Close()
	tracker.TrackSearch(context.Background(), "q", "")

	unconfigured := NewTracker("", nil, time.Second, zap.NewNop())
	unconfigured.TrackSearch(context.Background(), "q", "")
}
