package sportsdataio

import (
	"strconv"
	"strings"
	"time"

	"github.com/scorelinehq/sportsfeed/internal/domain/event"
)

// statusByName translates SportsDataIO game statuses into canonical ones.
// Unknown statuses fall back to SCHEDULED rather than guessing at liveness.
var statusByName = map[string]string{
	"Scheduled":    event.StatusScheduled,
	"InProgress":   event.StatusLive,
	"Final":        event.StatusFinal,
	"F/OT":         event.StatusFinal,
	"F/SO":         event.StatusFinal,
	"Suspended":    event.StatusPostponed,
	"Postponed":    event.StatusPostponed,
	"Canceled":     event.StatusCancelled,
	"NotNecessary": event.StatusCancelled,
	"Delayed":      event.StatusDelayed,
}

// postseasonSeasonType is SportsDataIO's SeasonType for playoff games.
const postseasonSeasonType = 3

func mapRows(rows []gameRow, sport string, fetchedAt time.Time) []event.Event {
	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapRow(row, sport, fetchedAt))
	}
	return out
}

func mapRow(row gameRow, sport string, fetchedAt time.Time) event.Event {
	mapped := event.Event{
		ID:         ProviderName + "-" + rowID(row),
		Sport:      sport,
		Status:     mapStatus(row.Status),
		HomeTeam:   mapTeam(row.HomeTeam, row.GlobalHomeTeamID),
		AwayTeam:   mapTeam(row.AwayTeam, row.GlobalAwayTeamID),
		HomeScore:  copyScore(row.HomeScore),
		AwayScore:  copyScore(row.AwayScore),
		Broadcast:  strings.TrimSpace(row.Channel),
		Week:       copyScore(row.Week),
		Postseason: row.SeasonType == postseasonSeasonType,
		Provider:   ProviderName,
		FetchedAt:  fetchedAt,
	}

	if parsed := parseGameTime(row.DateTime, row.Date); parsed != nil {
		mapped.StartTime = *parsed
	}
	if row.StadiumDetails != nil {
		mapped.Venue = strings.TrimSpace(row.StadiumDetails.Name)
	}
	if row.Season > 0 {
		mapped.Extra = map[string]any{"season": row.Season}
	}

	return mapped
}

func rowID(row gameRow) string {
	if key := strings.TrimSpace(row.GameKey); key != "" {
		return key
	}
	return strconv.FormatInt(row.GameID, 10)
}

func mapTeam(abbreviation string, globalID *int64) event.Team {
	team := event.Team{
		Name:         strings.TrimSpace(abbreviation),
		Abbreviation: strings.TrimSpace(abbreviation),
	}
	if globalID != nil {
		team.ID = strconv.FormatInt(*globalID, 10)
	}
	return team
}

// copyScore keeps an absent upstream value absent; it is never defaulted to
// zero.
func copyScore(raw *int) *int {
	if raw == nil {
		return nil
	}
	v := *raw
	return &v
}

func mapStatus(name string) string {
	if status, ok := statusByName[strings.TrimSpace(name)]; ok {
		return status
	}
	return event.StatusScheduled
}

// parseGameTime prefers the kickoff DateTime and falls back to the game Date.
// Both arrive as bare local timestamps without a zone designator.
func parseGameTime(values ...string) *time.Time {
	for _, raw := range values {
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		parsed, err := time.Parse("2006-01-02T15:04:05", value)
		if err != nil {
			continue
		}
		v := parsed.UTC()
		return &v
	}
	return nil
}
