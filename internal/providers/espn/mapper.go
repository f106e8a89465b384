package espn

import (
	"strconv"
	"strings"
	"time"

	"github.com/scorelinehq/sportsfeed/internal/domain/event"
)

// statusByName translates ESPN state names into canonical statuses. Unknown
// states fall back to SCHEDULED rather than guessing at liveness.
var statusByName = map[string]string{
	"STATUS_SCHEDULED":      event.StatusScheduled,
	"STATUS_IN_PROGRESS":    event.StatusLive,
	"STATUS_HALFTIME":       event.StatusLive,
	"STATUS_END_PERIOD":     event.StatusLive,
	"STATUS_FIRST_HALF":     event.StatusLive,
	"STATUS_SECOND_HALF":    event.StatusLive,
	"STATUS_FINAL":          event.StatusFinal,
	"STATUS_FINAL_OVERTIME": event.StatusFinal,
	"STATUS_POSTPONED":      event.StatusPostponed,
	"STATUS_CANCELED":       event.StatusCancelled,
	"STATUS_FORFEIT":        event.StatusCancelled,
	"STATUS_DELAYED":        event.StatusDelayed,
	"STATUS_RAIN_DELAY":     event.StatusDelayed,
}

// postseasonSeasonType is ESPN's season.type for playoff games.
const postseasonSeasonType = 3

func mapScoreboard(envelope scoreboardEnvelope, sport string, fetchedAt time.Time) []event.Event {
	out := make([]event.Event, 0, len(envelope.Events))
	for _, item := range envelope.Events {
		out = append(out, mapEvent(item, sport, fetchedAt))
	}
	return out
}

func mapEvent(item scoreboardEvent, sport string, fetchedAt time.Time) event.Event {
	mapped := event.Event{
		ID:        ProviderName + "-" + item.ID,
		Sport:     sport,
		Status:    mapStatus(item.Status.Type.Name),
		Provider:  ProviderName,
		FetchedAt: fetchedAt,
	}

	if parsed := parseEventDate(item.Date); parsed != nil {
		mapped.StartTime = *parsed
	}
	if item.Week != nil && item.Week.Number > 0 {
		week := item.Week.Number
		mapped.Week = &week
	}
	if item.Season != nil {
		mapped.Postseason = item.Season.Type == postseasonSeasonType
	}

	if len(item.Competitions) == 0 {
		return mapped
	}
	comp := item.Competitions[0]

	if comp.Venue != nil {
		mapped.Venue = strings.TrimSpace(comp.Venue.FullName)
	}
	if len(comp.Broadcasts) > 0 && len(comp.Broadcasts[0].Names) > 0 {
		mapped.Broadcast = strings.TrimSpace(comp.Broadcasts[0].Names[0])
	}
	if len(comp.Notes) > 0 {
		mapped.Extra = map[string]any{"headline": strings.TrimSpace(comp.Notes[0].Headline)}
	}

	for _, side := range comp.Competitors {
		team, score := mapCompetitor(side)
		switch strings.ToLower(strings.TrimSpace(side.HomeAway)) {
		case "home":
			mapped.HomeTeam = team
			mapped.HomeScore = score
			mapped.Conference = firstNonEmpty(mapped.Conference, side.Team.ConferenceID)
		case "away":
			mapped.AwayTeam = team
			mapped.AwayScore = score
		}
	}

	return mapped
}

func mapCompetitor(side competitor) (event.Team, *int) {
	team := event.Team{
		ID:           side.Team.ID,
		Name:         strings.TrimSpace(side.Team.DisplayName),
		Abbreviation: strings.TrimSpace(side.Team.Abbreviation),
		Logo:         strings.TrimSpace(side.Team.Logo),
	}
	// ESPN ranks unranked teams as 99; only real rankings carry over.
	if side.CuratedRank != nil && side.CuratedRank.Current > 0 && side.CuratedRank.Current < 99 {
		rank := side.CuratedRank.Current
		team.Rank = &rank
	}

	return team, parseScore(side.Score)
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

func parseEventDate(raw string) *time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}

	layouts := []string{
		"2006-01-02T15:04Z07:00",
		time.RFC3339,
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			v := parsed.UTC()
			return &v
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
