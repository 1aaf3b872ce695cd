package models

import "time"

// EventTypePlayoffGame tags persisted playoff game events in the store.
const EventTypePlayoffGame = "playoff_game"

// CompletedGame is one finished playoff game as reported by the simulator.
// GameID is the external domain identifier used for deduplication.
type CompletedGame struct {
	GameID     string `json:"game_id"`
	HomeTeamID string `json:"home_team_id"`
	AwayTeamID string `json:"away_team_id"`
	HomeScore  int    `json:"home_score"`
	AwayScore  int    `json:"away_score"`
	WinnerID   string `json:"winner_id"`
}

// GameParameters is the scheduled side of a persisted game event.
type GameParameters struct {
	AwayTeamID string `json:"away_team_id"`
	HomeTeamID string `json:"home_team_id"`
}

// GameResults is the played side of a persisted game event. Absent until
// the game has been simulated.
type GameResults struct {
	AwayScore int `json:"away_score"`
	HomeScore int `json:"home_score"`
}

// GameEvent is one row in the event store. ID is the storage handle
// assigned on insert; GameID is the stable domain identifier
// (playoff_{season}_{round}_{ordinal}) and is the only key domain logic
// may rely on.
type GameEvent struct {
	ID         int            `json:"id" db:"id"`
	DynastyID  int            `json:"dynasty_id" db:"dynasty_id"`
	Type       string         `json:"type" db:"event_type"`
	GameID     string         `json:"game_id" db:"game_id"`
	Parameters GameParameters `json:"parameters"`
	Results    *GameResults   `json:"results,omitempty"`
	Date       time.Time      `json:"date" db:"event_date"`
	Week       int            `json:"week" db:"week"`
	Season     int            `json:"season" db:"season"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
}

// Winner returns the winning team id for a played event. ok is false when
// the event has no results or the score is tied (malformed for playoffs).
func (e GameEvent) Winner() (string, bool) {
	if e.Results == nil || e.Results.HomeScore == e.Results.AwayScore {
		return "", false
	}
	if e.Results.HomeScore > e.Results.AwayScore {
		return e.Parameters.HomeTeamID, true
	}
	return e.Parameters.AwayTeamID, true
}
