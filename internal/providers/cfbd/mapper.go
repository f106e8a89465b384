package cfbd

import (
	"strconv"
	"strings"
	"time"

	"github.com/scorelinehq/sportsfeed/internal/domain/event"
)

func mapRows(rows []gameRow, fetchedAt time.Time) []event.Event {
	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapRow(row, fetchedAt))
	}
	return out
}

func mapRow(row gameRow, fetchedAt time.Time) event.Event {
	mapped := event.Event{
		ID:         ProviderName + "-" + strconv.FormatInt(row.ID, 10),
		Sport:      event.SportCollegeFootball,
		Status:     mapStatus(row.Completed),
		HomeTeam:   mapTeam(row.HomeID, row.HomeTeam),
		AwayTeam:   mapTeam(row.AwayID, row.AwayTeam),
		HomeScore:  copyScore(row.HomePoints),
		AwayScore:  copyScore(row.AwayPoints),
		Venue:      strings.TrimSpace(row.Venue),
		Conference: strings.TrimSpace(row.HomeConference),
		Postseason: strings.EqualFold(row.SeasonType, "postseason"),
		Provider:   ProviderName,
		FetchedAt:  fetchedAt,
	}

	if row.Week > 0 {
		week := row.Week
		mapped.Week = &week
	}
	if parsed := parseStartDate(row.StartDate); parsed != nil {
		mapped.StartTime = *parsed
	}

	extra := map[string]any{}
	if row.Season > 0 {
		extra["season"] = row.Season
	}
	if row.NeutralSite {
		extra["neutral_site"] = true
	}
	if row.ConferenceGame {
		extra["conference_game"] = true
	}
	if note := strings.TrimSpace(row.Notes); note != "" {
		extra["headline"] = note
	}
	if len(extra) > 0 {
		mapped.Extra = extra
	}

	return mapped
}

// mapStatus is intentionally two-valued: the games feed carries no in-progress
// state, so a game is final once Completed flips and SCHEDULED before that.
func mapStatus(completed bool) string {
	if completed {
		return event.StatusFinal
	}
	return event.StatusScheduled
}

func mapTeam(id int64, name string) event.Team {
	team := event.Team{Name: strings.TrimSpace(name)}
	if id > 0 {
		team.ID = strconv.FormatInt(id, 10)
	}
	return team
}

func copyScore(raw *int) *int {
	if raw == nil {
		return nil
	}
	v := *raw
	return &v
}

func parseStartDate(raw string) *time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05.000Z",
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
