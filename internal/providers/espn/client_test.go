package espn

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/scorelinehq/sportsfeed/internal/domain/event"
	"github.com/scorelinehq/sportsfeed/internal/platform/cache"
)

const scoreboardFixture = `{
	"events": [
		{
			"id": "401547439",
			"date": "2026-09-05T16:00Z",
			"status": {"type": {"name": "STATUS_FINAL"}},
			"competitions": [{
				"competitors": [
					{"homeAway": "home", "score": "27", "team": {"id": "12", "displayName": "Kansas City Chiefs", "abbreviation": "KC"}},
					{"homeAway": "away", "score": "20", "team": {"id": "33", "displayName": "Baltimore Ravens", "abbreviation": "BAL"}}
				]
			}]
		}
	]
}`

func TestClient_FetchEvents(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/football/nfl/scoreboard" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("dates"); got != "20260905" {
			t.Errorf("unexpected dates param: %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(scoreboardFixture))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Timeout: 2 * time.Second})

	events, err := client.FetchEvents(context.Background(), event.SportNFL, event.Filters{Date: "20260905"})
	if err != nil {
		t.Fatalf("fetch events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("unexpected event count: %d", len(events))
	}
	if events[0].Status != event.StatusFinal {
		t.Fatalf("unexpected status: %s", events[0].Status)
	}
	if events[0].HomeScore == nil || *events[0].HomeScore != 27 {
		t.Fatalf("unexpected home score: %v", events[0].HomeScore)
	}
}

func TestClient_FetchEventsReadsThroughCache(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(scoreboardFixture))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:  server.URL,
		Timeout:  2 * time.Second,
		Cache:    cache.NewStore(),
		CacheTTL: time.Minute,
	})

	filters := event.Filters{Date: "20260905"}
	for i := 0; i < 3; i++ {
		if _, err := client.FetchEvents(context.Background(), event.SportNFL, filters); err != nil {
			t.Fatalf("fetch events: %v", err)
		}
	}

	if n := calls.Load(); n != 1 {
		t.Fatalf("expected one upstream call with warm cache, got %d", n)
	}
}

func TestClient_ConcurrentFetchesShareOneUpstreamCall(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		<-release
		_, _ = w.Write([]byte(scoreboardFixture))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:  server.URL,
		Timeout:  5 * time.Second,
		Cache:    cache.NewStore(),
		CacheTTL: time.Minute,
	})

	const workers = 8
	filters := event.Filters{Date: "20260905"}
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := client.FetchEvents(context.Background(), event.SportNFL, filters)
			errs <- err
		}()
	}

	// Give every worker time to reach the in-flight call before the
	// upstream responds.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("fetch events: %v", err)
		}
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("expected concurrent fetches to share one upstream call, got %d", n)
	}
}

func TestClient_FetchEventsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Timeout: 2 * time.Second})

	if _, err := client.FetchEvents(context.Background(), event.SportNFL, event.Filters{}); err == nil {
		t.Fatal("expected error on upstream failure")
	}
}

func TestClient_FetchEventsUnsupportedSport(t *testing.T) {
	client := NewClient(ClientConfig{BaseURL: "http://localhost:0", Timeout: time.Second})
	if _, err := client.FetchEvents(context.Background(), "cricket", event.Filters{}); err == nil {
		t.Fatal("expected unsupported sport error")
	}
}

func TestClient_TeamFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(scoreboardFixture))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Timeout: 2 * time.Second})

	events, err := client.FetchEvents(context.Background(), event.SportNFL, event.Filters{TeamID: "99"})
	if err != nil {
		t.Fatalf("fetch events: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("team filter must drop non-matching events, got %d", len(events))
	}
}
