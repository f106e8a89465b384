package thesportsdb

import (
	"strconv"
	"strings"
	"time"

	"github.com/scorelinehq/sportsfeed/internal/domain/event"
)

// statusByName translates TheSportsDB match statuses into canonical ones.
// The feed mixes long names with abbreviations; both spellings are listed.
var statusByName = map[string]string{
	"NOT STARTED":    event.StatusScheduled,
	"NS":             event.StatusScheduled,
	"1H":             event.StatusLive,
	"2H":             event.StatusLive,
	"HT":             event.StatusLive,
	"Q1":             event.StatusLive,
	"Q2":             event.StatusLive,
	"Q3":             event.StatusLive,
	"Q4":             event.StatusLive,
	"OT":             event.StatusLive,
	"IN PROGRESS":    event.StatusLive,
	"MATCH FINISHED": event.StatusFinal,
	"FT":             event.StatusFinal,
	"AOT":            event.StatusFinal,
	"FINISHED":       event.StatusFinal,
	"POSTPONED":      event.StatusPostponed,
	"POST":           event.StatusPostponed,
	"SUSPENDED":      event.StatusPostponed,
	"CANCELLED":      event.StatusCancelled,
	"CANC":           event.StatusCancelled,
	"DELAYED":        event.StatusDelayed,
}

func mapEnvelope(envelope eventsEnvelope, sport string, fetchedAt time.Time) []event.Event {
	out := make([]event.Event, 0, len(envelope.Events))
	for _, item := range envelope.Events {
		out = append(out, mapEvent(item, sport, fetchedAt))
	}
	return out
}

func mapEvent(item dayEvent, sport string, fetchedAt time.Time) event.Event {
	mapped := event.Event{
		ID:        ProviderName + "-" + item.ID,
		Sport:     sport,
		Status:    mapStatus(item.Status),
		HomeTeam:  mapTeam(item.HomeID, item.HomeTeam, item.HomeBadge),
		AwayTeam:  mapTeam(item.AwayID, item.AwayTeam, item.AwayBadge),
		HomeScore: parseScore(item.HomeScore),
		AwayScore: parseScore(item.AwayScore),
		Venue:     strings.TrimSpace(item.Venue),
		Provider:  ProviderName,
		FetchedAt: fetchedAt,
	}

	if parsed := parseEventTime(item.Timestamp, item.Date); parsed != nil {
		mapped.StartTime = *parsed
	}

	extra := map[string]any{}
	if season := strings.TrimSpace(item.Season); season != "" {
		extra["season"] = season
	}
	if name := strings.TrimSpace(item.Name); name != "" {
		extra["headline"] = name
	}
	if len(extra) > 0 {
		mapped.Extra = extra
	}

	return mapped
}

func mapTeam(id, name, badge string) event.Team {
	return event.Team{
		ID:   strings.TrimSpace(id),
		Name: strings.TrimSpace(name),
		Logo: strings.TrimSpace(badge),
	}
}

// parseScore keeps an absent or unparseable upstream score absent; it is
// never defaulted to zero.
func parseScore(raw *string) *int {
	if raw == nil {
		return nil
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &parsed
}

func mapStatus(name string) string {
	if status, ok := statusByName[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return status
	}
	return event.StatusScheduled
}

// parseEventTime prefers the full timestamp and falls back to the bare event
// date at midnight UTC.
func parseEventTime(timestamp, date string) *time.Time {
	if value := strings.TrimSpace(timestamp); value != "" {
		layouts := []string{time.RFC3339, "2006-01-02T15:04:05"}
		for _, layout := range layouts {
			parsed, err := time.Parse(layout, value)
			if err == nil {
				v := parsed.UTC()
				return &v
			}
		}
	}
	if value := strings.TrimSpace(date); value != "" {
		parsed, err := time.Parse(dayLayout, value)
		if err == nil {
			v := parsed.UTC()
			return &v
		}
	}
	return nil
}
