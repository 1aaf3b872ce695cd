package playoffs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironlabs/playoff-system/models"
)

func TestGenerateWildCard_Pairings(t *testing.T) {
	seeding := testSeeding()
	bracket, err := GenerateWildCard(seeding, wildCardDate)
	require.NoError(t, err)
	require.Len(t, bracket.Matchups, 6)
	assert.Equal(t, models.RoundWildCard, bracket.Round)

	// Higher seed hosts; the #1 seeds (KC, DET) bye.
	expected := []struct {
		away, home string
		awaySeed   int
		homeSeed   int
		conference models.Conference
	}{
		{"CIN", "BUF", 7, 2, models.ConferenceAFC},
		{"PIT", "BAL", 6, 3, models.ConferenceAFC},
		{"MIA", "HOU", 5, 4, models.ConferenceAFC},
		{"MIN", "PHI", 7, 2, models.ConferenceNFC},
		{"GB", "SF", 6, 3, models.ConferenceNFC},
		{"DAL", "TB", 5, 4, models.ConferenceNFC},
	}
	for i, want := range expected {
		matchup := bracket.Matchups[i]
		assert.Equal(t, want.away, matchup.AwayTeamID, "matchup %d away", i)
		assert.Equal(t, want.home, matchup.HomeTeamID, "matchup %d home", i)
		assert.Equal(t, want.awaySeed, matchup.AwaySeed, "matchup %d away seed", i)
		assert.Equal(t, want.homeSeed, matchup.HomeSeed, "matchup %d home seed", i)
		assert.Equal(t, want.conference, matchup.Conference, "matchup %d conference", i)
		assert.Equal(t, i+1, matchup.Ordinal)
		assert.Equal(t, 2025, matchup.Season)
	}

	for _, matchup := range bracket.Matchups {
		assert.NotEqual(t, "KC", matchup.AwayTeamID)
		assert.NotEqual(t, "KC", matchup.HomeTeamID)
		assert.NotEqual(t, "DET", matchup.AwayTeamID)
		assert.NotEqual(t, "DET", matchup.HomeTeamID)
	}
}

// Re-seeding, not bracket-slot advancement: with survivors {2, 5, 7} the
// #1 seed must draw the 7, never the winner of a particular slot.
func TestGenerateDivisional_ReSeedsAgainstLowestSurvivor(t *testing.T) {
	seeding := testSeeding()

	results := []models.CompletedGame{
		// AFC survivors: BUF (2), MIA (5), CIN (7).
		completedGame(GameID(2025, models.RoundWildCard, 1), "CIN", "BAL", false), // CIN advances
		completedGame(GameID(2025, models.RoundWildCard, 2), "PIT", "BUF", true),  // BUF advances
		completedGame(GameID(2025, models.RoundWildCard, 3), "MIA", "HOU", false), // MIA advances
		// NFC survivors: PHI (2), SF (3), TB (4).
		completedGame(GameID(2025, models.RoundWildCard, 4), "MIN", "PHI", true),
		completedGame(GameID(2025, models.RoundWildCard, 5), "GB", "SF", true),
		completedGame(GameID(2025, models.RoundWildCard, 6), "DAL", "TB", true),
	}

	bracket, err := GenerateDivisional(results, seeding, wildCardDate.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, bracket.Matchups, 4)

	// (1 vs 7) and (2 vs 5) — never (1 vs 5) or (1 vs 2).
	assert.Equal(t, "KC", bracket.Matchups[0].HomeTeamID)
	assert.Equal(t, "CIN", bracket.Matchups[0].AwayTeamID)
	assert.Equal(t, "BUF", bracket.Matchups[1].HomeTeamID)
	assert.Equal(t, "MIA", bracket.Matchups[1].AwayTeamID)

	// NFC survivors {2, 3, 4}: DET (1) draws TB (4), PHI hosts SF.
	assert.Equal(t, "DET", bracket.Matchups[2].HomeTeamID)
	assert.Equal(t, "TB", bracket.Matchups[2].AwayTeamID)
	assert.Equal(t, "PHI", bracket.Matchups[3].HomeTeamID)
	assert.Equal(t, "SF", bracket.Matchups[3].AwayTeamID)
}

func TestGenerateDivisional_WrongWinnerCount(t *testing.T) {
	seeding := testSeeding()
	bracket, err := GenerateWildCard(seeding, wildCardDate)
	require.NoError(t, err)

	// Only five of six games played: the AFC is short one winner.
	results := playWildCard(bracket, nil)[:5]

	_, err = GenerateDivisional(results, seeding, wildCardDate.AddDate(0, 0, 7))
	var wrongCount *WrongWinnerCountError
	require.ErrorAs(t, err, &wrongCount)
	assert.Equal(t, 3, wrongCount.Want)
}

func TestGenerateDivisional_RejectsUnseededWinner(t *testing.T) {
	seeding := testSeeding()
	results := []models.CompletedGame{
		completedGame(GameID(2025, models.RoundWildCard, 1), "XXX", "BUF", false),
	}
	_, err := GenerateDivisional(results, seeding, wildCardDate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in the original seeding")
}

func TestGenerateConference_HigherSeedHosts(t *testing.T) {
	seeding := testSeeding()
	results := []models.CompletedGame{
		// AFC survivors: BAL (3) and HOU (4).
		completedGame(GameID(2025, models.RoundDivisional, 1), "BAL", "KC", false),
		completedGame(GameID(2025, models.RoundDivisional, 2), "HOU", "BUF", false),
		// NFC survivors: DET (1) and PHI (2).
		completedGame(GameID(2025, models.RoundDivisional, 3), "TB", "DET", true),
		completedGame(GameID(2025, models.RoundDivisional, 4), "SF", "PHI", true),
	}

	bracket, err := GenerateConference(results, seeding, wildCardDate.AddDate(0, 0, 14))
	require.NoError(t, err)
	require.Len(t, bracket.Matchups, 2)

	assert.Equal(t, "BAL", bracket.Matchups[0].HomeTeamID)
	assert.Equal(t, "HOU", bracket.Matchups[0].AwayTeamID)
	assert.Equal(t, "DET", bracket.Matchups[1].HomeTeamID)
	assert.Equal(t, "PHI", bracket.Matchups[1].AwayTeamID)
}

func TestGenerateConference_WrongWinnerCount(t *testing.T) {
	seeding := testSeeding()
	results := []models.CompletedGame{
		completedGame(GameID(2025, models.RoundDivisional, 1), "CIN", "KC", true),
		completedGame(GameID(2025, models.RoundDivisional, 3), "TB", "DET", true),
		completedGame(GameID(2025, models.RoundDivisional, 4), "SF", "PHI", true),
	}
	_, err := GenerateConference(results, seeding, wildCardDate)
	var wrongCount *WrongWinnerCountError
	require.ErrorAs(t, err, &wrongCount)
	assert.Equal(t, models.ConferenceAFC, wrongCount.Conference)
	assert.Equal(t, 2, wrongCount.Want)
	assert.Equal(t, 1, wrongCount.Got)
}

func TestGenerateChampionship_AFCChampionHosts(t *testing.T) {
	seeding := testSeeding()
	results := []models.CompletedGame{
		completedGame(GameID(2025, models.RoundConference, 1), "BUF", "KC", false),
		completedGame(GameID(2025, models.RoundConference, 2), "PHI", "DET", true),
	}

	bracket, err := GenerateChampionship(results, seeding, wildCardDate.AddDate(0, 0, 28))
	require.NoError(t, err)
	require.Len(t, bracket.Matchups, 1)

	matchup := bracket.Matchups[0]
	assert.Equal(t, "BUF", matchup.HomeTeamID, "the AFC champion is listed home")
	assert.Equal(t, "DET", matchup.AwayTeamID)
	assert.Empty(t, matchup.Conference, "the championship carries no conference tag")
	assert.Equal(t, 1, matchup.Ordinal)
}
