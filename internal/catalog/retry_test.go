package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"marquee/internal/catalog"
)

func TestRetryRecoversAfterServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"id":1,"media_type":"movie","title":"Recovered"}]}`))
	}))
	t.Cleanup(server.Close)

	var delays []time.Duration
	client, err := catalog.New("token", server.URL, "en-US", "", "",
		catalog.WithSleeper(func(d time.Duration) { delays = append(delays, d) }))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	items, err := client.SearchMulti(context.Background(), "q", 10)
	if err != nil {
		t.Fatalf("SearchMulti returned error: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Recovered" {
		t.Fatalf("unexpected result: %#v", items)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}
	want := []time.Duration{300 * time.Millisecond, 800 * time.Millisecond}
	if len(delays) != len(want) || delays[0] != want[0] || delays[1] != want[1] {
		t.Fatalf("delays = %v, want %v", delays, want)
	}
}

func TestRetryExhaustionSurfacesLastKind(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	_, err := newTestClient(t, server.URL).SearchMulti(context.Background(), "q", 10)
	if kind, ok := catalog.KindOf(err); !ok || kind != catalog.ErrorUpstreamServer {
		t.Fatalf("expected upstream server kind, got %v", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestAuthFailureNeverRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	var slept bool
	client, err := catalog.New("token", server.URL, "en-US", "", "",
		catalog.WithSleeper(func(time.Duration) { slept = true }))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.SearchMulti(context.Background(), "q", 10)
	if kind, ok := catalog.KindOf(err); !ok || kind != catalog.ErrorAuthInvalid {
		t.Fatalf("expected auth kind, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single attempt, got %d", calls.Load())
	}
	if slept {
		t.Fatal("expected no backoff delay for a rejection")
	}
}

func TestRateLimitRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	t.Cleanup(server.Close)

	if _, err := newTestClient(t, server.URL).SearchMulti(context.Background(), "q", 10); err != nil {
		t.Fatalf("expected recovery after 429, got %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls.Load())
	}
}

func TestNetworkFailureSurfacesNetworkKind(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	_, err := newTestClient(t, server.URL).SearchMulti(context.Background(), "q", 10)
	if kind, ok := catalog.KindOf(err); !ok || kind != catalog.ErrorNetworkUnavailable {
		t.Fatalf("expected network kind, got %v", err)
	}
}
