package cfbd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/scorelinehq/sportsfeed/internal/domain/event"
)

const gamesFixture = `[
	{
		"id": 401628455,
		"season": 2026,
		"week": 5,
		"season_type": "regular",
		"start_date": "2026-10-03T19:30:00.000Z",
		"completed": true,
		"venue": "Tiger Stadium",
		"home_id": 99,
		"home_team": "LSU",
		"home_conference": "SEC",
		"home_points": 31,
		"away_id": 333,
		"away_team": "Alabama",
		"away_conference": "SEC",
		"away_points": 28
	},
	{
		"id": 401628460,
		"season": 2026,
		"week": 5,
		"season_type": "regular",
		"start_date": "2026-10-04T16:00:00.000Z",
		"completed": false,
		"home_id": 61,
		"home_team": "Georgia",
		"away_id": 57,
		"away_team": "Florida"
	}
]`

func TestClient_FetchEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/games" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("year"); got != "2026" {
			t.Errorf("unexpected year param: %s", got)
		}
		if got := r.URL.Query().Get("week"); got != "5" {
			t.Errorf("unexpected week param: %s", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(gamesFixture))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, APIKey: "test-key", Timeout: 2 * time.Second})
	client.now = func() time.Time { return time.Date(2026, 10, 3, 12, 0, 0, 0, time.UTC) }

	events, err := client.FetchEvents(context.Background(), event.SportCollegeFootball, event.Filters{Week: 5})
	if err != nil {
		t.Fatalf("fetch events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("unexpected event count: %d", len(events))
	}
	if events[0].Status != event.StatusFinal {
		t.Fatalf("unexpected status: %s", events[0].Status)
	}
	if events[0].HomeScore == nil || *events[0].HomeScore != 31 {
		t.Fatalf("unexpected home score: %v", events[0].HomeScore)
	}
	if events[1].HomeScore != nil {
		t.Fatalf("pending game has a score: %v", events[1].HomeScore)
	}
}

func TestClient_FetchEvents_DateFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// January playoff dates resolve to the prior season.
		if got := r.URL.Query().Get("year"); got != "2026" {
			t.Errorf("unexpected year param: %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(gamesFixture))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, APIKey: "test-key"})

	events, err := client.FetchEvents(context.Background(), event.SportCollegeFootball, event.Filters{Date: "20270104"})
	if err != nil {
		t.Fatalf("fetch events: %v", err)
	}
	// Neither fixture game falls on the requested day.
	if len(events) != 0 {
		t.Fatalf("unexpected event count: %d", len(events))
	}
}

func TestClient_FetchEvents_UnsupportedSport(t *testing.T) {
	client := NewClient(ClientConfig{APIKey: "test-key"})

	if _, err := client.FetchEvents(context.Background(), event.SportNFL, event.Filters{}); err == nil {
		t.Fatal("expected error for unsupported sport")
	}
}

func TestSeasonForDate(t *testing.T) {
	if got := seasonForDate(time.Date(2027, 1, 10, 0, 0, 0, 0, time.UTC)); got != 2026 {
		t.Errorf("january date mapped to season %d", got)
	}
	if got := seasonForDate(time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)); got != 2026 {
		t.Errorf("september date mapped to season %d", got)
	}
}
