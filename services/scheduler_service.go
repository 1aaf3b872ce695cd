package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/gridironlabs/playoff-system/models"
	"github.com/gridironlabs/playoff-system/playoffs"
	"github.com/gridironlabs/playoff-system/repositories"
)

// SchedulerService turns a generated bracket into persisted game events.
// Scheduling is idempotent on the domain game id: re-scheduling a bracket
// never creates duplicate events, whatever the caller's retry behavior.
type SchedulerService interface {
	ScheduleBracket(ctx context.Context, dynastyID int, bracket *models.Bracket) ([]string, error)
}

type schedulerService struct {
	eventRepo repositories.EventRepository
}

func NewSchedulerService(eventRepo repositories.EventRepository) SchedulerService {
	return &schedulerService{eventRepo: eventRepo}
}

// ScheduleBracket persists one event per matchup and returns the game ids
// in ordinal order. Events that already exist are left untouched; a
// concurrent insert losing the unique-constraint race is treated the same
// as finding the event.
func (s *schedulerService) ScheduleBracket(ctx context.Context, dynastyID int, bracket *models.Bracket) ([]string, error) {
	if bracket == nil || len(bracket.Matchups) == 0 {
		return nil, ErrNoGamesScheduled
	}

	gameIDs := make([]string, 0, len(bracket.Matchups))
	for _, matchup := range bracket.Matchups {
		gameID := playoffs.GameID(matchup.Season, matchup.Round, matchup.Ordinal)

		_, err := s.eventRepo.FindByGameID(ctx, dynastyID, gameID)
		if err == nil {
			gameIDs = append(gameIDs, gameID)
			continue
		}
		if !errors.Is(err, repositories.ErrEventNotFound) {
			return nil, fmt.Errorf("failed to check for existing game %s: %w", gameID, err)
		}

		event := &models.GameEvent{
			DynastyID: dynastyID,
			Type:      models.EventTypePlayoffGame,
			GameID:    gameID,
			Parameters: models.GameParameters{
				AwayTeamID: matchup.AwayTeamID,
				HomeTeamID: matchup.HomeTeamID,
			},
			Date:   matchup.Date,
			Week:   matchup.Week,
			Season: matchup.Season,
		}
		if err := s.eventRepo.Insert(ctx, nil, event); err != nil {
			if errors.Is(err, repositories.ErrEventConflict) {
				gameIDs = append(gameIDs, gameID)
				continue
			}
			return nil, fmt.Errorf("failed to schedule game %s: %w", gameID, err)
		}
		gameIDs = append(gameIDs, gameID)
	}
	return gameIDs, nil
}
