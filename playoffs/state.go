package playoffs

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gridironlabs/playoff-system/models"
)

// ErrUnknownRound reports a round tag outside the four playoff rounds.
var ErrUnknownRound = errors.New("unknown playoff round")

// TournamentState is the mutable aggregate for one dynasty's playoff run:
// completed games per round, generated brackets, and counters. It has one
// logical owner; all mutation is serialized behind a single mutex because
// the idempotent-append and monotonic-round invariants are check-then-act
// sequences.
type TournamentState struct {
	mu sync.Mutex

	seeding   *models.Seeding
	completed map[models.Round][]models.CompletedGame
	brackets  map[models.Round]*models.Bracket

	gamesPlayed   int
	daysSimulated int
}

// StateSnapshot is an immutable copy of a TournamentState for transport.
type StateSnapshot struct {
	CurrentRound  models.Round                            `json:"current_round"`
	Complete      bool                                    `json:"complete"`
	Champion      string                                  `json:"champion,omitempty"`
	Seeding       *models.Seeding                         `json:"seeding,omitempty"`
	Completed     map[models.Round][]models.CompletedGame `json:"completed_games"`
	Brackets      map[models.Round]*models.Bracket        `json:"brackets"`
	GamesPlayed   int                                     `json:"games_played"`
	DaysSimulated int                                     `json:"days_simulated"`
}

// NewTournamentState returns an empty state with no seeding attached.
func NewTournamentState() *TournamentState {
	return &TournamentState{
		completed: make(map[models.Round][]models.CompletedGame),
		brackets:  make(map[models.Round]*models.Bracket),
	}
}

// SetSeeding attaches the original seeding. Later-round generation depends
// on it, so it must be set before any round advancement.
func (s *TournamentState) SetSeeding(seeding *models.Seeding) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seeding = seeding
}

// Seeding returns the attached original seeding, nil if unset.
func (s *TournamentState) Seeding() *models.Seeding {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seeding
}

// ReportCompletedGame appends one finished game to a round. The append is
// idempotent on the game's external identifier: re-reporting an already
// recorded game returns (false, nil) and leaves every counter untouched.
func (s *TournamentState) ReportCompletedGame(round models.Round, game models.CompletedGame) (bool, error) {
	if !round.IsValid() {
		return false, fmt.Errorf("%w: %q", ErrUnknownRound, round)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.completed[round] {
		if existing.GameID == game.GameID {
			return false, nil
		}
	}
	if len(s.completed[round]) >= round.GameCount() {
		return false, fmt.Errorf("round %s already has its %d games", round, round.GameCount())
	}

	s.completed[round] = append(s.completed[round], game)
	// Keep the list in ordinal order so the final state is identical no
	// matter what order results arrive in.
	sort.Slice(s.completed[round], func(i, j int) bool {
		return s.completed[round][i].GameID < s.completed[round][j].GameID
	})
	s.gamesPlayed++
	return true, nil
}

// IsRoundComplete reports whether the round has reached its fixed cap.
func (s *TournamentState) IsRoundComplete(round models.Round) bool {
	if !round.IsValid() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.completed[round]) >= round.GameCount()
}

// ActiveRound is the first incomplete round in play order, derived purely
// from completed-game counts. It is the single source of truth for "current
// round"; once every round is complete it stays at the championship.
func (s *TournamentState) ActiveRound() models.Round {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeRoundLocked()
}

func (s *TournamentState) activeRoundLocked() models.Round {
	for _, round := range models.RoundOrder {
		if len(s.completed[round]) < round.GameCount() {
			return round
		}
	}
	return models.RoundChampionship
}

// IsComplete reports whether the championship game has been played.
func (s *TournamentState) IsComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.completed[models.RoundChampionship]) >= models.RoundChampionship.GameCount()
}

// Champion returns the championship winner once the run is complete.
func (s *TournamentState) Champion() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	games := s.completed[models.RoundChampionship]
	if len(games) < models.RoundChampionship.GameCount() {
		return "", false
	}
	return games[0].WinnerID, true
}

// SetBracket records a generated bracket for its round.
func (s *TournamentState) SetBracket(bracket *models.Bracket) error {
	if bracket == nil || !bracket.Round.IsValid() {
		return fmt.Errorf("%w: bracket has no valid round", ErrUnknownRound)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brackets[bracket.Round] = bracket
	return nil
}

// Bracket returns the generated bracket for a round, if any.
func (s *TournamentState) Bracket(round models.Round) (*models.Bracket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bracket, ok := s.brackets[round]
	return bracket, ok
}

// CompletedGames returns a copy of the round's completed games in ordinal
// order.
func (s *TournamentState) CompletedGames(round models.Round) []models.CompletedGame {
	s.mu.Lock()
	defer s.mu.Unlock()
	games := make([]models.CompletedGame, len(s.completed[round]))
	copy(games, s.completed[round])
	return games
}

// GamesPlayed is the cumulative completed-game counter.
func (s *TournamentState) GamesPlayed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gamesPlayed
}

// DaysSimulated is the cumulative simulated-day counter.
func (s *TournamentState) DaysSimulated() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.daysSimulated
}

// AddSimulatedDay bumps the simulated-day counter.
func (s *TournamentState) AddSimulatedDay() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.daysSimulated++
}

// Snapshot copies the state for transport or inspection.
func (s *TournamentState) Snapshot() StateSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := StateSnapshot{
		CurrentRound:  s.activeRoundLocked(),
		Seeding:       s.seeding,
		Completed:     make(map[models.Round][]models.CompletedGame, len(s.completed)),
		Brackets:      make(map[models.Round]*models.Bracket, len(s.brackets)),
		GamesPlayed:   s.gamesPlayed,
		DaysSimulated: s.daysSimulated,
	}
	for round, games := range s.completed {
		copied := make([]models.CompletedGame, len(games))
		copy(copied, games)
		snapshot.Completed[round] = copied
	}
	for round, bracket := range s.brackets {
		snapshot.Brackets[round] = bracket
	}
	if games := s.completed[models.RoundChampionship]; len(games) >= models.RoundChampionship.GameCount() {
		snapshot.Complete = true
		snapshot.Champion = games[0].WinnerID
	}
	return snapshot
}
