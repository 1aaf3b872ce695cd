package models

// Conference identifies one half of the 32-team league.
type Conference string

const (
	ConferenceAFC Conference = "AFC"
	ConferenceNFC Conference = "NFC"
)

// Conferences lists both conferences in bracket order: AFC matchups are
// numbered before NFC matchups in every round.
var Conferences = []Conference{ConferenceAFC, ConferenceNFC}

// TeamRecord is a read-only regular-season record snapshot for one team,
// as provided by the standings store.
type TeamRecord struct {
	TeamID     string     `json:"team_id" db:"team_id"`
	Name       string     `json:"name" db:"name"`
	Conference Conference `json:"conference" db:"conference"`
	Division   string     `json:"division" db:"division"`

	Wins   int `json:"wins" db:"wins"`
	Losses int `json:"losses" db:"losses"`
	Ties   int `json:"ties" db:"ties"`

	ConferenceWins   int `json:"conference_wins" db:"conf_wins"`
	ConferenceLosses int `json:"conference_losses" db:"conf_losses"`
	DivisionWins     int `json:"division_wins" db:"div_wins"`
	DivisionLosses   int `json:"division_losses" db:"div_losses"`

	PointsFor     int `json:"points_for" db:"points_for"`
	PointsAgainst int `json:"points_against" db:"points_against"`

	StrengthOfVictory  float64 `json:"strength_of_victory" db:"strength_of_victory"`
	StrengthOfSchedule float64 `json:"strength_of_schedule" db:"strength_of_schedule"`
}

// WinPercentage counts a tie as half a win, the league convention.
func (r TeamRecord) WinPercentage() float64 {
	games := r.Wins + r.Losses + r.Ties
	if games == 0 {
		return 0
	}
	return (float64(r.Wins) + 0.5*float64(r.Ties)) / float64(games)
}

// PointDifferential is points scored minus points allowed.
func (r TeamRecord) PointDifferential() int {
	return r.PointsFor - r.PointsAgainst
}
