package sportsdataio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/scorelinehq/sportsfeed/internal/domain/event"
)

const gamesByDateFixture = `[
	{
		"GameID": 55123,
		"Season": 2026,
		"SeasonType": 1,
		"DateTime": "2026-10-04T19:10:00",
		"Status": "Final",
		"HomeTeam": "NYM",
		"AwayTeam": "ATL",
		"GlobalHomeTeamID": 10000037,
		"GlobalAwayTeamID": 10000016,
		"HomeScore": 5,
		"AwayScore": 2
	}
]`

func TestClient_FetchEvents_GamesByDate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mlb/scores/json/GamesByDate/2026-OCT-04" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get(apiKeyHeader); got != "test-key" {
			t.Errorf("unexpected api key header: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(gamesByDateFixture))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, APIKey: "test-key", Timeout: 2 * time.Second})

	events, err := client.FetchEvents(context.Background(), event.SportMLB, event.Filters{Date: "20261004"})
	if err != nil {
		t.Fatalf("fetch events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("unexpected event count: %d", len(events))
	}
	if events[0].Status != event.StatusFinal {
		t.Fatalf("unexpected status: %s", events[0].Status)
	}
	if events[0].HomeScore == nil || *events[0].HomeScore != 5 {
		t.Fatalf("unexpected home score: %v", events[0].HomeScore)
	}
}

func TestClient_FetchEvents_ScoresByWeek(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/nfl/scores/json/ScoresByWeek/2026/5" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, APIKey: "test-key"})

	_, err := client.FetchEvents(context.Background(), event.SportNFL, event.Filters{Date: "20261004", Week: 5})
	if err != nil {
		t.Fatalf("fetch events: %v", err)
	}
}

func TestClient_FetchEvents_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, APIKey: "test-key"})

	if _, err := client.FetchEvents(context.Background(), event.SportNFL, event.Filters{Date: "20261004"}); err == nil {
		t.Fatal("expected error for upstream 502")
	}
}

func TestClient_FetchEvents_UnsupportedSport(t *testing.T) {
	client := NewClient(ClientConfig{APIKey: "test-key"})

	if _, err := client.FetchEvents(context.Background(), "college-basketball", event.Filters{}); err == nil {
		t.Fatal("expected error for unsupported sport")
	}
}
