package cfbd

// gameRow is one game from the CollegeFootballData /games listing. The feed
// has no live state: Completed is the only status signal, so games map to
// SCHEDULED or FINAL and nothing else.
type gameRow struct {
	ID             int64    `json:"id"`
	Season         int      `json:"season"`
	Week           int      `json:"week"`
	SeasonType     string   `json:"season_type"`
	StartDate      string   `json:"start_date"`
	Completed      bool     `json:"completed"`
	NeutralSite    bool     `json:"neutral_site"`
	ConferenceGame bool     `json:"conference_game"`
	Venue          string   `json:"venue"`
	HomeID         int64    `json:"home_id"`
	HomeTeam       string   `json:"home_team"`
	HomeConference string   `json:"home_conference"`
	HomePoints     *int     `json:"home_points"`
	AwayID         int64    `json:"away_id"`
	AwayTeam       string   `json:"away_team"`
	AwayConference string   `json:"away_conference"`
	AwayPoints     *int     `json:"away_points"`
	Notes          string   `json:"notes"`
	ExcitementIdx  *float64 `json:"excitement_index"`
}
