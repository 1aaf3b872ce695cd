package playoffs

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/gridironlabs/playoff-system/models"
)

// ErrInsufficientData reports standings that cannot produce a full
// seven-seed field for a conference.
var ErrInsufficientData = errors.New("insufficient standings data for seeding")

// Tiebreaker cascade key names, in application order. The names appear in
// seed annotations and in the seeding audit trail.
const (
	keyWinPercentage     = "win_percentage"
	keyTotalWins         = "total_wins"
	keyConferenceWins    = "conference_wins"
	keyDivisionWins      = "division_wins"
	keyPointDifferential = "point_differential"
	keyPointsScored      = "points_scored"
	keyFallbackOrder     = "fallback_order"
)

// CalculateSeeding computes both conferences' seven-seed fields from a full
// standings map. fallbackOrder supplies the deterministic last-resort order
// for teams the six-key cascade cannot separate; teams absent from it rank
// by team id. Pure: identical input always yields identical output.
func CalculateSeeding(records map[string]models.TeamRecord, season, week int, fallbackOrder []string) (*models.Seeding, error) {
	fallback := make(map[string]int, len(fallbackOrder))
	for i, teamID := range fallbackOrder {
		fallback[teamID] = i
	}

	seeding := &models.Seeding{
		Season:     season,
		Week:       week,
		ComputedAt: time.Now().UTC(),
	}

	for _, conference := range models.Conferences {
		confSeeding, tiebreaks, err := calculateConferenceSeeding(records, conference, fallback)
		if err != nil {
			return nil, err
		}
		seeding.Tiebreaks = append(seeding.Tiebreaks, tiebreaks...)
		if conference == models.ConferenceAFC {
			seeding.AFC = confSeeding
		} else {
			seeding.NFC = confSeeding
		}
	}
	return seeding, nil
}

func calculateConferenceSeeding(records map[string]models.TeamRecord, conference models.Conference, fallback map[string]int) (models.ConferenceSeeding, []models.TiebreakEntry, error) {
	var teams []models.TeamRecord
	divisions := make(map[string][]models.TeamRecord)
	for _, record := range records {
		if record.Conference != conference {
			continue
		}
		if record.TeamID == "" {
			return models.ConferenceSeeding{}, nil, fmt.Errorf("%w: record with empty team id in %s", ErrInsufficientData, conference)
		}
		teams = append(teams, record)
		divisions[record.Division] = append(divisions[record.Division], record)
	}

	if len(teams) < 7 {
		return models.ConferenceSeeding{}, nil, fmt.Errorf("%w: %s has %d eligible teams, need 7", ErrInsufficientData, conference, len(teams))
	}
	// Exactly four divisions: fewer cannot fill seeds 1-4 with division
	// winners, more would push winners past seed 4.
	if len(divisions) != 4 {
		return models.ConferenceSeeding{}, nil, fmt.Errorf("%w: %s has %d divisions, need exactly 4", ErrInsufficientData, conference, len(divisions))
	}

	var audit []models.TiebreakEntry
	record := func(a, b models.TeamRecord, key string) {
		if key == keyWinPercentage {
			return // not a tiebreak, just the primary sort
		}
		audit = append(audit, models.TiebreakEntry{
			Conference: conference,
			TeamA:      a.TeamID,
			TeamB:      b.TeamID,
			DecidedBy:  key,
		})
	}

	// Division winners take seeds 1-4, ranked against each other by the
	// same cascade that ranked them within their divisions.
	winners := make([]models.TeamRecord, 0, len(divisions))
	isWinner := make(map[string]bool, len(divisions))
	for _, divisionTeams := range divisions {
		rankTeams(divisionTeams, fallback, record)
		winners = append(winners, divisionTeams[0])
		isWinner[divisionTeams[0].TeamID] = true
	}
	rankTeams(winners, fallback, record)

	// The three best non-winners are the wildcards, seeds 5-7.
	var rest []models.TeamRecord
	for _, team := range teams {
		if !isWinner[team.TeamID] {
			rest = append(rest, team)
		}
	}
	rankTeams(rest, fallback, record)

	seeding := models.ConferenceSeeding{Conference: conference}
	ranked := append(append([]models.TeamRecord{}, winners...), rest[:3]...)
	for i, team := range ranked {
		seed := models.Seed{
			Conference:     conference,
			Number:         i + 1,
			TeamID:         team.TeamID,
			DivisionWinner: isWinner[team.TeamID],
			Record:         team,
		}
		seeding.Seeds = append(seeding.Seeds, seed)
		seeding.Clinched = append(seeding.Clinched, team.TeamID)
		if seed.DivisionWinner {
			seeding.DivisionWinners = append(seeding.DivisionWinners, team.TeamID)
		} else {
			seeding.Wildcards = append(seeding.Wildcards, team.TeamID)
		}
	}
	for _, team := range rest[3:] {
		seeding.Eliminated = append(seeding.Eliminated, team.TeamID)
	}
	sort.Strings(seeding.Eliminated)

	annotateSeeds(seeding.Seeds, fallback)
	return seeding, audit, nil
}

// rankTeams sorts teams best-first through the cascade and reports each
// adjacent pair that needed more than win percentage to separate.
func rankTeams(teams []models.TeamRecord, fallback map[string]int, record func(a, b models.TeamRecord, key string)) {
	sort.SliceStable(teams, func(i, j int) bool {
		cmp, _ := compareTeams(teams[i], teams[j], fallback)
		return cmp < 0
	})
	for i := 0; i+1 < len(teams); i++ {
		if _, key := compareTeams(teams[i], teams[i+1], fallback); key != keyWinPercentage {
			record(teams[i], teams[i+1], key)
		}
	}
}

// compareTeams applies the cascade. Negative means a ranks ahead of b.
// The returned key names the first comparison that separated the pair.
func compareTeams(a, b models.TeamRecord, fallback map[string]int) (int, string) {
	// Win percentage compared by cross-multiplication to stay exact when
	// the two teams have played different game counts.
	gamesA := a.Wins + a.Losses + a.Ties
	gamesB := b.Wins + b.Losses + b.Ties
	pctA := (2*a.Wins + a.Ties) * gamesB
	pctB := (2*b.Wins + b.Ties) * gamesA
	if pctA != pctB {
		return sign(pctB - pctA), keyWinPercentage
	}
	if a.Wins != b.Wins {
		return sign(b.Wins - a.Wins), keyTotalWins
	}
	if a.ConferenceWins != b.ConferenceWins {
		return sign(b.ConferenceWins - a.ConferenceWins), keyConferenceWins
	}
	if a.DivisionWins != b.DivisionWins {
		return sign(b.DivisionWins - a.DivisionWins), keyDivisionWins
	}
	if a.PointDifferential() != b.PointDifferential() {
		return sign(b.PointDifferential() - a.PointDifferential()), keyPointDifferential
	}
	if a.PointsFor != b.PointsFor {
		return sign(b.PointsFor - a.PointsFor), keyPointsScored
	}
	return compareFallback(a.TeamID, b.TeamID, fallback), keyFallbackOrder
}

func compareFallback(a, b string, fallback map[string]int) int {
	posA, okA := fallback[a]
	posB, okB := fallback[b]
	switch {
	case okA && okB:
		return sign(posA - posB)
	case okA:
		return -1
	case okB:
		return 1
	case a < b:
		return -1
	default:
		return 1
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// annotateSeeds marks each seed that was separated from its neighbour by a
// tiebreaker rather than by raw win percentage.
func annotateSeeds(seeds []models.Seed, fallback map[string]int) {
	for i := 0; i+1 < len(seeds); i++ {
		cmp, key := compareTeams(seeds[i].Record, seeds[i+1].Record, fallback)
		// Across the 4/5 boundary a wildcard may out-rank a division winner;
		// that is positional, not a tiebreak, so leave it unannotated.
		if cmp < 0 && key != keyWinPercentage {
			seeds[i].TiebreakNote = fmt.Sprintf("ahead of %s on %s", seeds[i+1].TeamID, key)
		}
	}
}
