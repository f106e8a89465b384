package sportsdataio

// gameRow is one row of a SportsDataIO scores listing. The feed is flat; the
// NFL/CFB variants carry GameKey+Week, the date-keyed sports carry GameID.
// Scores are nullable and stay nil when the upstream has not posted them.
type gameRow struct {
	GameKey          string       `json:"GameKey"`
	GameID           int64        `json:"GameID"`
	Season           int          `json:"Season"`
	SeasonType       int          `json:"SeasonType"`
	Week             *int         `json:"Week"`
	Date             string       `json:"Date"`
	DateTime         string       `json:"DateTime"`
	Status           string       `json:"Status"`
	HomeTeam         string       `json:"HomeTeam"`
	AwayTeam         string       `json:"AwayTeam"`
	GlobalHomeTeamID *int64       `json:"GlobalHomeTeamID"`
	GlobalAwayTeamID *int64       `json:"GlobalAwayTeamID"`
	HomeScore        *int         `json:"HomeScore"`
	AwayScore        *int         `json:"AwayScore"`
	Channel          string       `json:"Channel"`
	StadiumDetails   *stadiumInfo `json:"StadiumDetails"`
}

type stadiumInfo struct {
	Name string `json:"Name"`
}
