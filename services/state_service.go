package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gridironlabs/playoff-system/models"
	"github.com/gridironlabs/playoff-system/playoffs"
	"github.com/gridironlabs/playoff-system/repositories"
)

// StateService owns the live tournament state per dynasty. States are
// lazily rebuilt from the persisted event log, so a process restart loses
// nothing and the in-memory copy is only ever a cache.
type StateService interface {
	State(ctx context.Context, dynastyID, season int) (*playoffs.TournamentState, error)
	Rebuild(ctx context.Context, dynastyID, season int) (*playoffs.TournamentState, error)
	ReportResult(ctx context.Context, dynastyID, season int, gameID string, results models.GameResults) (*models.CompletedGame, error)
	Snapshot(ctx context.Context, dynastyID, season int) (playoffs.StateSnapshot, error)
	Validate(ctx context.Context, dynastyID, season int, today time.Time) ([]models.Finding, error)
}

type stateService struct {
	eventRepo   repositories.EventRepository
	seedingRepo repositories.SeedingRepository
	hub         *playoffs.Hub

	mu     sync.Mutex
	states map[int]*playoffs.TournamentState // keyed by dynasty id
}

func NewStateService(
	eventRepo repositories.EventRepository,
	seedingRepo repositories.SeedingRepository,
	hub *playoffs.Hub,
) StateService {
	return &stateService{
		eventRepo:   eventRepo,
		seedingRepo: seedingRepo,
		hub:         hub,
		states:      make(map[int]*playoffs.TournamentState),
	}
}

// State returns the cached state for a dynasty, rebuilding it from the
// event log on first access.
func (s *stateService) State(ctx context.Context, dynastyID, season int) (*playoffs.TournamentState, error) {
	s.mu.Lock()
	if state, ok := s.states[dynastyID]; ok {
		s.mu.Unlock()
		return state, nil
	}
	s.mu.Unlock()
	return s.Rebuild(ctx, dynastyID, season)
}

// Rebuild reconstructs the state from scratch: persisted seeding plus a
// fold over every stored playoff event for the season. The result replaces
// whatever was cached.
func (s *stateService) Rebuild(ctx context.Context, dynastyID, season int) (*playoffs.TournamentState, error) {
	seeding, err := s.seedingRepo.Get(ctx, dynastyID, season)
	if err != nil {
		if errors.Is(err, repositories.ErrSeedingNotFound) {
			return nil, ErrSeedingNotFound
		}
		return nil, err
	}

	stored, err := s.eventRepo.FindByDynastyAndTypePrefix(ctx, dynastyID, models.EventTypePlayoffGame, playoffs.GameIDPrefix(season))
	if err != nil {
		return nil, fmt.Errorf("failed to load playoff events for dynasty %d: %w", dynastyID, err)
	}

	events := make([]models.GameEvent, 0, len(stored))
	for _, event := range stored {
		events = append(events, *event)
	}
	state := playoffs.Reconstruct(events, seeding)

	s.mu.Lock()
	s.states[dynastyID] = state
	s.mu.Unlock()
	return state, nil
}

// ReportResult records one simulated final score: the event row is updated
// and the in-memory state advanced. Reporting the same game twice is a
// no-op beyond the persisted score.
func (s *stateService) ReportResult(ctx context.Context, dynastyID, season int, gameID string, results models.GameResults) (*models.CompletedGame, error) {
	if results.AwayScore == results.HomeScore {
		return nil, ErrTiedResult
	}
	round, err := playoffs.RoundOfGameID(gameID)
	if err != nil {
		return nil, err
	}

	event, err := s.eventRepo.FindByGameID(ctx, dynastyID, gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	if err := s.eventRepo.UpdateResults(ctx, dynastyID, gameID, results); err != nil {
		return nil, fmt.Errorf("failed to persist results for game %s: %w", gameID, err)
	}

	state, err := s.State(ctx, dynastyID, season)
	if err != nil {
		return nil, err
	}

	game := models.CompletedGame{
		GameID:     gameID,
		AwayTeamID: event.Parameters.AwayTeamID,
		HomeTeamID: event.Parameters.HomeTeamID,
		AwayScore:  results.AwayScore,
		HomeScore:  results.HomeScore,
	}
	if results.HomeScore > results.AwayScore {
		game.WinnerID = event.Parameters.HomeTeamID
	} else {
		game.WinnerID = event.Parameters.AwayTeamID
	}

	added, err := state.ReportCompletedGame(round, game)
	if err != nil {
		return nil, err
	}
	if added && s.hub != nil {
		s.hub.BroadcastToDynasty(dynastyID, playoffs.UpdateGameCompleted, game)
		if state.IsComplete() {
			if champion, ok := state.Champion(); ok {
				s.hub.BroadcastToDynasty(dynastyID, playoffs.UpdatePlayoffsCompleted, map[string]string{"champion": champion})
			}
		}
	}
	return &game, nil
}

func (s *stateService) Snapshot(ctx context.Context, dynastyID, season int) (playoffs.StateSnapshot, error) {
	state, err := s.State(ctx, dynastyID, season)
	if err != nil {
		return playoffs.StateSnapshot{}, err
	}
	return state.Snapshot(), nil
}

// Validate runs the read-only consistency checks against a freshly rebuilt
// state, so findings reflect the persisted truth rather than the cache.
func (s *stateService) Validate(ctx context.Context, dynastyID, season int, today time.Time) ([]models.Finding, error) {
	state, err := s.Rebuild(ctx, dynastyID, season)
	if err != nil {
		return nil, err
	}
	return playoffs.ValidateAt(state, today), nil
}
