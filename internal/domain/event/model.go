package event

import (
	"strconv"
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusFinal     = "FINAL"
	StatusPostponed = "POSTPONED"
	StatusCancelled = "CANCELLED"
	StatusDelayed   = "DELAYED"
)

// Sport keys accepted by the aggregator. Provider-native sport naming never
// leaks past an adapter; these are the only values callers may use.
const (
	SportNFL             = "nfl"
	SportCollegeFootball = "college-football"
	SportNBA             = "nba"
	SportCollegeBasket   = "college-basketball"
	SportMLB             = "mlb"
)

// DateLayout is the canonical wire format for the date filter.
const DateLayout = "20060102"

// Team is one side of an event. Every field is optional; an upstream that
// does not carry a value leaves it zero.
type Team struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Logo         string `json:"logo,omitempty"`
	Rank         *int   `json:"rank,omitempty"`
}

// Event is the normalized representation of one sporting event, identical in
// shape regardless of which upstream provider supplied it.
type Event struct {
	ID         string         `json:"id"`
	Sport      string         `json:"sport"`
	StartTime  time.Time      `json:"start_time"`
	Status     string         `json:"status"`
	HomeTeam   Team           `json:"home_team"`
	AwayTeam   Team           `json:"away_team"`
	HomeScore  *int           `json:"home_score"`
	AwayScore  *int           `json:"away_score"`
	Venue      string         `json:"venue,omitempty"`
	Broadcast  string         `json:"broadcast,omitempty"`
	Conference string         `json:"conference,omitempty"`
	Week       *int           `json:"week,omitempty"`
	Postseason bool           `json:"postseason,omitempty"`
	Provider   string         `json:"provider"`
	FetchedAt  time.Time      `json:"fetched_at"`
	Extra      map[string]any `json:"extra,omitempty"`
}

// Filters narrows an event query. Zero values mean "no filter".
type Filters struct {
	Date       string
	Week       int
	Conference string
	TeamID     string
}

func NormalizeSport(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func IsKnownSport(value string) bool {
	switch NormalizeSport(value) {
	case SportNFL, SportCollegeFootball, SportNBA, SportCollegeBasket, SportMLB:
		return true
	default:
		return false
	}
}

func IsLiveStatus(status string) bool {
	return strings.ToUpper(strings.TrimSpace(status)) == StatusLive
}

// CacheKey builds the deterministic cache key adapters use for read-through
// response caching of one sport+filters query.
func (f Filters) CacheKey(provider, sport string) string {
	var b strings.Builder
	b.WriteString("events:")
	b.WriteString(provider)
	b.WriteString(":")
	b.WriteString(NormalizeSport(sport))
	if f.Date != "" {
		b.WriteString(":d=")
		b.WriteString(f.Date)
	}
	if f.Week > 0 {
		b.WriteString(":w=")
		b.WriteString(strconv.Itoa(f.Week))
	}
	if f.Conference != "" {
		b.WriteString(":c=")
		b.WriteString(strings.ToLower(f.Conference))
	}
	if f.TeamID != "" {
		b.WriteString(":t=")
		b.WriteString(f.TeamID)
	}
	return b.String()
}
