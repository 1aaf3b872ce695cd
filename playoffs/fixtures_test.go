package playoffs

import (
	"time"

	"github.com/gridironlabs/playoff-system/models"
)

// leagueStandings builds a full 32-team league with distinct records where
// it matters, so the expected seeding is unambiguous:
//
//	AFC: 1 KC, 2 BUF, 3 BAL, 4 HOU, 5 MIA, 6 PIT, 7 CIN
//	NFC: 1 DET, 2 PHI, 3 SF, 4 TB, 5 DAL, 6 GB, 7 MIN
func leagueStandings() map[string]models.TeamRecord {
	records := make(map[string]models.TeamRecord)

	add := func(conference models.Conference, division, teamID string, wins int) {
		records[teamID] = models.TeamRecord{
			TeamID:           teamID,
			Name:             teamID,
			Conference:       conference,
			Division:         division,
			Wins:             wins,
			Losses:           17 - wins,
			ConferenceWins:   wins * 2 / 3,
			ConferenceLosses: 12 - wins*2/3,
			DivisionWins:     wins / 3,
			DivisionLosses:   6 - wins/3,
			PointsFor:        300 + wins*10,
			PointsAgainst:    400 - wins*10,
		}
	}

	add(models.ConferenceAFC, "East", "BUF", 13)
	add(models.ConferenceAFC, "East", "MIA", 11)
	add(models.ConferenceAFC, "East", "NYJ", 7)
	add(models.ConferenceAFC, "East", "NE", 4)
	add(models.ConferenceAFC, "North", "BAL", 12)
	add(models.ConferenceAFC, "North", "PIT", 10)
	add(models.ConferenceAFC, "North", "CIN", 9)
	add(models.ConferenceAFC, "North", "CLE", 3)
	add(models.ConferenceAFC, "South", "HOU", 10)
	add(models.ConferenceAFC, "South", "JAX", 8)
	add(models.ConferenceAFC, "South", "IND", 6)
	add(models.ConferenceAFC, "South", "TEN", 2)
	add(models.ConferenceAFC, "West", "KC", 14)
	add(models.ConferenceAFC, "West", "LAC", 8)
	add(models.ConferenceAFC, "West", "DEN", 7)
	add(models.ConferenceAFC, "West", "LV", 5)

	add(models.ConferenceNFC, "East", "PHI", 13)
	add(models.ConferenceNFC, "East", "DAL", 12)
	add(models.ConferenceNFC, "East", "WAS", 8)
	add(models.ConferenceNFC, "East", "NYG", 4)
	add(models.ConferenceNFC, "North", "DET", 14)
	add(models.ConferenceNFC, "North", "GB", 11)
	add(models.ConferenceNFC, "North", "MIN", 10)
	add(models.ConferenceNFC, "North", "CHI", 5)
	add(models.ConferenceNFC, "South", "TB", 10)
	add(models.ConferenceNFC, "South", "ATL", 7)
	add(models.ConferenceNFC, "South", "NO", 6)
	add(models.ConferenceNFC, "South", "CAR", 2)
	add(models.ConferenceNFC, "West", "SF", 12)
	add(models.ConferenceNFC, "West", "LAR", 9)
	add(models.ConferenceNFC, "West", "SEA", 8)
	add(models.ConferenceNFC, "West", "ARI", 3)

	return records
}

// testSeeding computes the canonical fixture seeding.
func testSeeding() *models.Seeding {
	seeding, err := CalculateSeeding(leagueStandings(), 2025, 18, nil)
	if err != nil {
		panic(err)
	}
	return seeding
}

// wildCardDate is an arbitrary but fixed kickoff date for bracket tests.
var wildCardDate = time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)

// completedGame builds a finished game where winnerHome decides the score.
func completedGame(gameID, away, home string, homeWins bool) models.CompletedGame {
	game := models.CompletedGame{
		GameID:     gameID,
		AwayTeamID: away,
		HomeTeamID: home,
		AwayScore:  17,
		HomeScore:  24,
		WinnerID:   home,
	}
	if !homeWins {
		game.AwayScore, game.HomeScore = game.HomeScore, game.AwayScore
		game.WinnerID = away
	}
	return game
}

// playWildCard finishes the wild-card bracket with the given winners (keyed
// by ordinal). Winners not named default to the home (higher) seed.
func playWildCard(bracket *models.Bracket, awayWinners map[int]bool) []models.CompletedGame {
	var results []models.CompletedGame
	for _, matchup := range bracket.Matchups {
		gameID := GameID(matchup.Season, matchup.Round, matchup.Ordinal)
		results = append(results, completedGame(gameID, matchup.AwayTeamID, matchup.HomeTeamID, !awayWinners[matchup.Ordinal]))
	}
	return results
}
