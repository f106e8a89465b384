package espn

import (
	"testing"
	"time"

	"github.com/scorelinehq/sportsfeed/internal/domain/event"
)

func strPtr(v string) *string { return &v }

func TestMapEvent_FullShape(t *testing.T) {
	fetchedAt := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)
	item := scoreboardEvent{
		ID:     "401547439",
		Date:   "2026-09-05T16:00Z",
		Week:   &weekRef{Number: 2},
		Season: &seasonRef{Type: 2},
		Status: eventStatus{Type: statusType{Name: "STATUS_IN_PROGRESS"}},
		Competitions: []competition{{
			Venue:      &venueRef{FullName: "Arrowhead Stadium"},
			Broadcasts: []broadcast{{Names: []string{"CBS"}}},
			Competitors: []competitor{
				{
					HomeAway:    "home",
					Score:       strPtr("21"),
					CuratedRank: &rankRef{Current: 4},
					Team:        teamRef{ID: "12", DisplayName: "Kansas City Chiefs", Abbreviation: "KC", Logo: "https://a.espncdn.com/kc.png"},
				},
				{
					HomeAway: "away",
					Score:    strPtr("17"),
					Team:     teamRef{ID: "33", DisplayName: "Baltimore Ravens", Abbreviation: "BAL"},
				},
			},
		}},
	}

	got := mapEvent(item, event.SportNFL, fetchedAt)

	if got.ID != "espn-401547439" {
		t.Fatalf("unexpected id: %s", got.ID)
	}
	if got.Status != event.StatusLive {
		t.Fatalf("unexpected status: %s", got.Status)
	}
	if got.StartTime != time.Date(2026, 9, 5, 16, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected start time: %s", got.StartTime)
	}
	if got.Week == nil || *got.Week != 2 {
		t.Fatalf("unexpected week: %v", got.Week)
	}
	if got.Postseason {
		t.Fatal("regular season game mapped as postseason")
	}
	if got.HomeScore == nil || *got.HomeScore != 21 {
		t.Fatalf("unexpected home score: %v", got.HomeScore)
	}
	if got.AwayScore == nil || *got.AwayScore != 17 {
		t.Fatalf("unexpected away score: %v", got.AwayScore)
	}
	if got.HomeTeam.Rank == nil || *got.HomeTeam.Rank != 4 {
		t.Fatalf("unexpected home rank: %v", got.HomeTeam.Rank)
	}
	if got.AwayTeam.Rank != nil {
		t.Fatal("unranked team must keep a nil rank")
	}
	if got.Venue != "Arrowhead Stadium" || got.Broadcast != "CBS" {
		t.Fatalf("unexpected venue/broadcast: %q/%q", got.Venue, got.Broadcast)
	}
	if got.Provider != ProviderName || !got.FetchedAt.Equal(fetchedAt) {
		t.Fatalf("unexpected provenance: %s %s", got.Provider, got.FetchedAt)
	}
}

func TestMapEvent_AbsentScoresStayNil(t *testing.T) {
	item := scoreboardEvent{
		ID:     "401547440",
		Date:   "2026-09-06T20:20Z",
		Status: eventStatus{Type: statusType{Name: "STATUS_SCHEDULED"}},
		Competitions: []competition{{
			Competitors: []competitor{
				{HomeAway: "home", Team: teamRef{ID: "1"}},
				{HomeAway: "away", Score: strPtr(""), Team: teamRef{ID: "2"}},
			},
		}},
	}

	got := mapEvent(item, event.SportNFL, time.Now().UTC())
	if got.HomeScore != nil {
		t.Fatalf("missing score must map to nil, got %v", *got.HomeScore)
	}
	if got.AwayScore != nil {
		t.Fatalf("empty score must map to nil, got %v", *got.AwayScore)
	}
}

func TestMapStatus_Table(t *testing.T) {
	cases := map[string]string{
		"STATUS_SCHEDULED":   event.StatusScheduled,
		"STATUS_IN_PROGRESS": event.StatusLive,
		"STATUS_HALFTIME":    event.StatusLive,
		"STATUS_FINAL":       event.StatusFinal,
		"STATUS_POSTPONED":   event.StatusPostponed,
		"STATUS_CANCELED":    event.StatusCancelled,
		"STATUS_RAIN_DELAY":  event.StatusDelayed,
		"STATUS_SOMETHING":   event.StatusScheduled,
		"":                   event.StatusScheduled,
	}
	for raw, want := range cases {
		if got := mapStatus(raw); got != want {
			t.Fatalf("mapStatus(%q)=%s want=%s", raw, got, want)
		}
	}
}

func TestMapEvent_PostseasonFlag(t *testing.T) {
	item := scoreboardEvent{
		ID:     "401547500",
		Season: &seasonRef{Type: postseasonSeasonType},
		Status: eventStatus{Type: statusType{Name: "STATUS_SCHEDULED"}},
	}
	if got := mapEvent(item, event.SportNFL, time.Now().UTC()); !got.Postseason {
		t.Fatal("playoff season type must set the postseason flag")
	}
}
