package espn

// Native scoreboard payload shapes. Only the fields the mapper consumes are
// declared; everything else in the upstream envelope is ignored.

type scoreboardEnvelope struct {
	Events []scoreboardEvent `json:"events"`
}

type scoreboardEvent struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Week         *weekRef      `json:"week"`
	Season       *seasonRef    `json:"season"`
	Status       eventStatus   `json:"status"`
	Competitions []competition `json:"competitions"`
}

type weekRef struct {
	Number int `json:"number"`
}

type seasonRef struct {
	Type int `json:"type"`
}

type eventStatus struct {
	Type statusType `json:"type"`
}

type statusType struct {
	Name string `json:"name"`
}

type competition struct {
	Venue       *venueRef    `json:"venue"`
	Broadcasts  []broadcast  `json:"broadcasts"`
	Notes       []note       `json:"notes"`
	Competitors []competitor `json:"competitors"`
}

type venueRef struct {
	FullName string `json:"fullName"`
}

type broadcast struct {
	Names []string `json:"names"`
}

type note struct {
	Headline string `json:"headline"`
}

type competitor struct {
	HomeAway    string   `json:"homeAway"`
	Score       *string  `json:"score"`
	CuratedRank *rankRef `json:"curatedRank"`
	Team        teamRef  `json:"team"`
}

type rankRef struct {
	Current int `json:"current"`
}

type teamRef struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation"`
	Logo         string `json:"logo"`
	ConferenceID string `json:"conferenceId"`
}
