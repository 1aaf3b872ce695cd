package playoffs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironlabs/playoff-system/models"
)

func TestTournamentState_ReportIsIdempotent(t *testing.T) {
	state := NewTournamentState()
	game := completedGame(GameID(2025, models.RoundWildCard, 1), "CIN", "BUF", true)

	added, err := state.ReportCompletedGame(models.RoundWildCard, game)
	require.NoError(t, err)
	assert.True(t, added)

	// Same result reported twice: the counter moves by exactly one, not two.
	added, err = state.ReportCompletedGame(models.RoundWildCard, game)
	require.NoError(t, err)
	assert.False(t, added)

	assert.Equal(t, 1, state.GamesPlayed())
	assert.Len(t, state.CompletedGames(models.RoundWildCard), 1)
}

func TestTournamentState_UnknownRound(t *testing.T) {
	state := NewTournamentState()
	_, err := state.ReportCompletedGame("preseason", completedGame("playoff_2025_wildcard_1", "A", "B", true))
	require.ErrorIs(t, err, ErrUnknownRound)
}

func TestTournamentState_RoundCompletionAndActiveRound(t *testing.T) {
	state := NewTournamentState()
	assert.Equal(t, models.RoundWildCard, state.ActiveRound())

	for ordinal := 1; ordinal <= 6; ordinal++ {
		gameID := GameID(2025, models.RoundWildCard, ordinal)
		_, err := state.ReportCompletedGame(models.RoundWildCard, completedGame(gameID, "A", "B", true))
		require.NoError(t, err)

		if ordinal < 6 {
			assert.False(t, state.IsRoundComplete(models.RoundWildCard))
			assert.Equal(t, models.RoundWildCard, state.ActiveRound())
		}
	}
	assert.True(t, state.IsRoundComplete(models.RoundWildCard))
	assert.Equal(t, models.RoundDivisional, state.ActiveRound())
	assert.False(t, state.IsComplete())
}

func TestTournamentState_TerminalAtChampionship(t *testing.T) {
	state := NewTournamentState()
	for _, round := range models.RoundOrder {
		for ordinal := 1; ordinal <= round.GameCount(); ordinal++ {
			gameID := GameID(2025, round, ordinal)
			_, err := state.ReportCompletedGame(round, completedGame(gameID, "AWAY", "HOME", true))
			require.NoError(t, err)
		}
	}

	assert.True(t, state.IsComplete())
	assert.Equal(t, models.RoundChampionship, state.ActiveRound(), "active round stays terminal")
	assert.Equal(t, 13, state.GamesPlayed())

	champion, ok := state.Champion()
	assert.True(t, ok)
	assert.Equal(t, "HOME", champion)
}

func TestTournamentState_RejectsGamesBeyondCap(t *testing.T) {
	state := NewTournamentState()
	game := completedGame(GameID(2025, models.RoundChampionship, 1), "DET", "BUF", true)
	_, err := state.ReportCompletedGame(models.RoundChampionship, game)
	require.NoError(t, err)

	extra := completedGame("playoff_2025_championship_9", "DET", "BUF", false)
	_, err = state.ReportCompletedGame(models.RoundChampionship, extra)
	require.Error(t, err)
	assert.Equal(t, 1, state.GamesPlayed())
}

func TestTournamentState_SnapshotCopies(t *testing.T) {
	state := NewTournamentState()
	state.SetSeeding(testSeeding())
	_, err := state.ReportCompletedGame(models.RoundWildCard, completedGame(GameID(2025, models.RoundWildCard, 1), "CIN", "BUF", true))
	require.NoError(t, err)
	state.AddSimulatedDay()

	snapshot := state.Snapshot()
	assert.Equal(t, models.RoundWildCard, snapshot.CurrentRound)
	assert.Equal(t, 1, snapshot.GamesPlayed)
	assert.Equal(t, 1, snapshot.DaysSimulated)
	require.Len(t, snapshot.Completed[models.RoundWildCard], 1)

	// Mutating the snapshot must not reach the state.
	snapshot.Completed[models.RoundWildCard][0].WinnerID = "tampered"
	assert.Equal(t, "BUF", state.CompletedGames(models.RoundWildCard)[0].WinnerID)
}
