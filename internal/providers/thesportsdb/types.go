package thesportsdb

// Native eventsday payload shapes. TheSportsDB serializes nearly everything
// as strings, scores included; null fields arrive as JSON null.

type eventsEnvelope struct {
	Events []dayEvent `json:"events"`
}

type dayEvent struct {
	ID        string  `json:"idEvent"`
	Name      string  `json:"strEvent"`
	League    string  `json:"strLeague"`
	Season    string  `json:"strSeason"`
	HomeID    string  `json:"idHomeTeam"`
	HomeTeam  string  `json:"strHomeTeam"`
	AwayID    string  `json:"idAwayTeam"`
	AwayTeam  string  `json:"strAwayTeam"`
	HomeScore *string `json:"intHomeScore"`
	AwayScore *string `json:"intAwayScore"`
	Status    string  `json:"strStatus"`
	Date      string  `json:"dateEvent"`
	Timestamp string  `json:"strTimestamp"`
	Venue     string  `json:"strVenue"`
	Thumb     string  `json:"strThumb"`
	HomeBadge string  `json:"strHomeTeamBadge"`
	AwayBadge string  `json:"strAwayTeamBadge"`
}
