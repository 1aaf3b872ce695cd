package playoffs

import (
	"fmt"
	"sort"
	"time"

	"github.com/gridironlabs/playoff-system/models"
)

// WrongWinnerCountError reports a round being advanced from a mis-sized
// result set, the guard against generating a bracket from a partially
// completed round.
type WrongWinnerCountError struct {
	Round      models.Round
	Conference models.Conference
	Want       int
	Got        int
}

func (e *WrongWinnerCountError) Error() string {
	return fmt.Sprintf("wrong winner count for %s %s: want %d, got %d",
		e.Conference, e.Round, e.Want, e.Got)
}

// GenerateWildCard builds the opening round from the seeding: per
// conference 2v7, 3v6 and 4v5 with the higher seed hosting, while the #1
// seed byes. Six matchups, AFC ordinals before NFC.
func GenerateWildCard(seeding *models.Seeding, date time.Time) (*models.Bracket, error) {
	bracket := &models.Bracket{Round: models.RoundWildCard, StartDate: date}
	ordinal := 0
	for _, conference := range models.Conferences {
		confSeeding := seeding.ConferenceSeeding(conference)
		for _, pair := range [][2]int{{2, 7}, {3, 6}, {4, 5}} {
			home, okHome := confSeeding.SeedByNumber(pair[0])
			away, okAway := confSeeding.SeedByNumber(pair[1])
			if !okHome || !okAway {
				return nil, fmt.Errorf("%w: %s seeding is missing seed %d or %d", ErrInsufficientData, conference, pair[0], pair[1])
			}
			ordinal++
			bracket.Matchups = append(bracket.Matchups, buildMatchup(seeding, models.RoundWildCard, conference, away, home, date, ordinal))
		}
	}
	return bracket, nil
}

// GenerateDivisional builds the second round by re-seeding: each
// conference's #1 seed (from the original seeding, fresh off its bye)
// hosts the lowest-ranked surviving seed, and the remaining two wild-card
// winners meet with the higher seed hosting. Pairing is by seed number,
// never by bracket position.
func GenerateDivisional(wildCardResults []models.CompletedGame, seeding *models.Seeding, date time.Time) (*models.Bracket, error) {
	bracket := &models.Bracket{Round: models.RoundDivisional, StartDate: date}
	ordinal := 0
	for _, conference := range models.Conferences {
		survivors, err := survivingSeeds(wildCardResults, seeding, conference, models.RoundDivisional, 3)
		if err != nil {
			return nil, err
		}
		one, ok := seeding.ConferenceSeeding(conference).SeedByNumber(1)
		if !ok {
			return nil, fmt.Errorf("%w: %s seeding has no #1 seed", ErrInsufficientData, conference)
		}

		// survivors is sorted by seed number ascending; the lowest-ranked
		// survivor (highest number) visits the #1 seed.
		lowest := survivors[len(survivors)-1]
		ordinal++
		bracket.Matchups = append(bracket.Matchups, buildMatchup(seeding, models.RoundDivisional, conference, lowest, one, date, ordinal))

		ordinal++
		bracket.Matchups = append(bracket.Matchups, buildMatchup(seeding, models.RoundDivisional, conference, survivors[1], survivors[0], date, ordinal))
	}
	return bracket, nil
}

// GenerateConference builds the conference title games: the two divisional
// survivors per conference, higher seed hosting.
func GenerateConference(divisionalResults []models.CompletedGame, seeding *models.Seeding, date time.Time) (*models.Bracket, error) {
	bracket := &models.Bracket{Round: models.RoundConference, StartDate: date}
	ordinal := 0
	for _, conference := range models.Conferences {
		survivors, err := survivingSeeds(divisionalResults, seeding, conference, models.RoundConference, 2)
		if err != nil {
			return nil, err
		}
		ordinal++
		bracket.Matchups = append(bracket.Matchups, buildMatchup(seeding, models.RoundConference, conference, survivors[1], survivors[0], date, ordinal))
	}
	return bracket, nil
}

// GenerateChampionship builds the title game between the two conference
// champions. Fixed convention: the AFC champion is listed home, and the
// matchup carries no conference tag.
func GenerateChampionship(conferenceResults []models.CompletedGame, seeding *models.Seeding, date time.Time) (*models.Bracket, error) {
	afc, err := survivingSeeds(conferenceResults, seeding, models.ConferenceAFC, models.RoundChampionship, 1)
	if err != nil {
		return nil, err
	}
	nfc, err := survivingSeeds(conferenceResults, seeding, models.ConferenceNFC, models.RoundChampionship, 1)
	if err != nil {
		return nil, err
	}

	matchup := buildMatchup(seeding, models.RoundChampionship, "", nfc[0], afc[0], date, 1)
	return &models.Bracket{
		Round:     models.RoundChampionship,
		StartDate: date,
		Matchups:  []models.Matchup{matchup},
	}, nil
}

// survivingSeeds maps a result list to one conference's surviving seeds,
// sorted by seed number ascending, enforcing the expected winner count.
func survivingSeeds(results []models.CompletedGame, seeding *models.Seeding, conference models.Conference, round models.Round, want int) ([]models.Seed, error) {
	var survivors []models.Seed
	for _, game := range results {
		seed, ok := seeding.SeedByTeam(game.WinnerID)
		if !ok {
			return nil, fmt.Errorf("winner %q of game %s is not in the original seeding", game.WinnerID, game.GameID)
		}
		if seed.Conference == conference {
			survivors = append(survivors, seed)
		}
	}
	if len(survivors) != want {
		return nil, &WrongWinnerCountError{Round: round, Conference: conference, Want: want, Got: len(survivors)}
	}
	sort.Slice(survivors, func(i, j int) bool { return survivors[i].Number < survivors[j].Number })
	return survivors, nil
}

func buildMatchup(seeding *models.Seeding, round models.Round, conference models.Conference, away, home models.Seed, date time.Time, ordinal int) models.Matchup {
	return models.Matchup{
		AwayTeamID: away.TeamID,
		HomeTeamID: home.TeamID,
		AwaySeed:   away.Number,
		HomeSeed:   home.Number,
		Date:       date,
		Round:      round,
		Conference: conference,
		Ordinal:    ordinal,
		Week:       seeding.Week + round.Index() + 1,
		Season:     seeding.Season,
	}
}
