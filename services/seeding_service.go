package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gridironlabs/playoff-system/models"
	"github.com/gridironlabs/playoff-system/playoffs"
	"github.com/gridironlabs/playoff-system/repositories"
)

// SeedingService computes and persists the post-season seeding for one
// dynasty. The computed document is frozen once any playoff game has been
// played; until then it may be recomputed freely.
type SeedingService interface {
	Calculate(ctx context.Context, dynastyID, season, week int) (*models.Seeding, error)
	Get(ctx context.Context, dynastyID, season int) (*models.Seeding, error)
}

type seedingService struct {
	standingRepo repositories.StandingRepository
	seedingRepo  repositories.SeedingRepository
	eventRepo    repositories.EventRepository
	hub          *playoffs.Hub
}

func NewSeedingService(
	standingRepo repositories.StandingRepository,
	seedingRepo repositories.SeedingRepository,
	eventRepo repositories.EventRepository,
	hub *playoffs.Hub,
) SeedingService {
	return &seedingService{
		standingRepo: standingRepo,
		seedingRepo:  seedingRepo,
		eventRepo:    eventRepo,
		hub:          hub,
	}
}

func (s *seedingService) Calculate(ctx context.Context, dynastyID, season, week int) (*models.Seeding, error) {
	if err := s.ensureNoPlayedGames(ctx, dynastyID, season); err != nil {
		return nil, err
	}

	records, fallbackOrder, err := s.loadRecords(ctx, dynastyID, season)
	if err != nil {
		return nil, err
	}

	seeding, err := playoffs.CalculateSeeding(records, season, week, fallbackOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate seeding for dynasty %d: %w", dynastyID, err)
	}
	seeding.ComputedAt = time.Now().UTC()

	if err := s.seedingRepo.Save(ctx, dynastyID, seeding); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastToDynasty(dynastyID, playoffs.UpdateSeedingCalculated, seeding)
	}
	return seeding, nil
}

func (s *seedingService) Get(ctx context.Context, dynastyID, season int) (*models.Seeding, error) {
	seeding, err := s.seedingRepo.Get(ctx, dynastyID, season)
	if err != nil {
		if errors.Is(err, repositories.ErrSeedingNotFound) {
			return nil, ErrSeedingNotFound
		}
		return nil, err
	}
	return seeding, nil
}

// loadRecords fetches both conferences' standings concurrently and flattens
// them into the record map the calculator consumes. The fallback order is
// the repository's stable team-id order, so identical records still seed
// deterministically.
func (s *seedingService) loadRecords(ctx context.Context, dynastyID, season int) (map[string]models.TeamRecord, []string, error) {
	byConference := make([][]models.TeamRecord, len(models.Conferences))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, conference := range models.Conferences {
		i, conference := i, conference
		group.Go(func() error {
			records, err := s.standingRepo.ListByConference(groupCtx, dynastyID, season, conference)
			if err != nil {
				return fmt.Errorf("failed to load %s standings: %w", conference, err)
			}
			byConference[i] = records
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	records := make(map[string]models.TeamRecord)
	var fallbackOrder []string
	for _, conferenceRecords := range byConference {
		for _, record := range conferenceRecords {
			records[record.TeamID] = record
			fallbackOrder = append(fallbackOrder, record.TeamID)
		}
	}
	return records, fallbackOrder, nil
}

func (s *seedingService) ensureNoPlayedGames(ctx context.Context, dynastyID, season int) error {
	events, err := s.eventRepo.FindByDynastyAndTypePrefix(ctx, dynastyID, models.EventTypePlayoffGame, playoffs.GameIDPrefix(season))
	if err != nil {
		return fmt.Errorf("failed to check for played games: %w", err)
	}
	for _, event := range events {
		if event.Results != nil {
			return ErrSeedingAlreadyFinal
		}
	}
	return nil
}
