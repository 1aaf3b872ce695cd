package playoffs

import (
	"github.com/gridironlabs/playoff-system/models"
)

// Reconstruct rebuilds a TournamentState purely from a persisted event log.
// The fold is maximally permissive, since real logs hold scheduled-but-
// unplayed games: events without a result payload, with an unparsable
// domain identifier, or with a tied score are silently dropped. Round
// detection and deduplication use only the embedded domain game id, never
// the storage handle, which makes the result independent of replay order.
func Reconstruct(events []models.GameEvent, originalSeeding *models.Seeding) *TournamentState {
	state := NewTournamentState()
	// Seeding goes in before any event: later-round generation reads it.
	state.SetSeeding(originalSeeding)

	for _, event := range events {
		winner, ok := event.Winner()
		if !ok {
			continue // unplayed or malformed result
		}
		round, err := RoundOfGameID(event.GameID)
		if err != nil {
			continue // not a playoff game id
		}
		game := models.CompletedGame{
			GameID:     event.GameID,
			HomeTeamID: event.Parameters.HomeTeamID,
			AwayTeamID: event.Parameters.AwayTeamID,
			HomeScore:  event.Results.HomeScore,
			AwayScore:  event.Results.AwayScore,
			WinnerID:   winner,
		}
		// Duplicate ids are absorbed by the idempotent append; any other
		// report error means the event is inconsistent with the log and is
		// dropped like the rest of the malformed ones.
		_, _ = state.ReportCompletedGame(round, game)
	}
	return state
}
