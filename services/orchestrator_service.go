package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gridironlabs/playoff-system/models"
	"github.com/gridironlabs/playoff-system/playoffs"
	"github.com/gridironlabs/playoff-system/repositories"
)

// DaySummary reports what one simulated day produced.
type DaySummary struct {
	Date          time.Time              `json:"date"`
	GamesPlayed   []models.CompletedGame `json:"games_played"`
	ActiveRound   models.Round           `json:"active_round"`
	RoundAdvanced bool                   `json:"round_advanced"`
	Complete      bool                   `json:"complete"`
	Champion      string                 `json:"champion,omitempty"`
	ArchiveURL    string                 `json:"archive_url,omitempty"`
}

// OrchestratorService drives a dynasty's postseason day by day: it starts
// the bracket, simulates due games, advances rounds when they close, and
// archives the season after the title game.
type OrchestratorService interface {
	StartPlayoffs(ctx context.Context, dynastyID int, startDate time.Time) (*models.Bracket, error)
	AdvanceDay(ctx context.Context, dynastyID int) (*DaySummary, error)
}

type orchestratorService struct {
	dynastyRepo  repositories.DynastyRepository
	eventRepo    repositories.EventRepository
	seedingSvc   SeedingService
	stateService StateService
	scheduler    SchedulerService
	archive      ArchiveService
	simulator    GameSimulator
	hub          *playoffs.Hub
	logger       *slog.Logger
}

func NewOrchestratorService(
	dynastyRepo repositories.DynastyRepository,
	eventRepo repositories.EventRepository,
	seedingSvc SeedingService,
	stateService StateService,
	scheduler SchedulerService,
	archive ArchiveService,
	simulator GameSimulator,
	hub *playoffs.Hub,
	logger *slog.Logger,
) OrchestratorService {
	return &orchestratorService{
		dynastyRepo:  dynastyRepo,
		eventRepo:    eventRepo,
		seedingSvc:   seedingSvc,
		stateService: stateService,
		scheduler:    scheduler,
		archive:      archive,
		simulator:    simulator,
		hub:          hub,
		logger:       logger,
	}
}

// StartPlayoffs generates and schedules the opening round from the saved
// seeding. Safe to call again: scheduling is idempotent and the bracket is
// regenerated deterministically from the same seeding.
func (s *orchestratorService) StartPlayoffs(ctx context.Context, dynastyID int, startDate time.Time) (*models.Bracket, error) {
	dynasty, err := s.getDynasty(ctx, dynastyID)
	if err != nil {
		return nil, err
	}

	seeding, err := s.seedingSvc.Get(ctx, dynastyID, dynasty.Season)
	if err != nil {
		return nil, err
	}

	bracket, err := playoffs.GenerateWildCard(seeding, startDate)
	if err != nil {
		return nil, err
	}
	if _, err := s.scheduler.ScheduleBracket(ctx, dynastyID, bracket); err != nil {
		return nil, err
	}

	state, err := s.stateService.State(ctx, dynastyID, dynasty.Season)
	if err != nil {
		return nil, err
	}
	if err := state.SetBracket(bracket); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastToDynasty(dynastyID, playoffs.UpdateRoundAdvanced, bracket)
	}
	s.logger.Info("playoffs started",
		slog.Int("dynasty_id", dynastyID),
		slog.Int("season", dynasty.Season),
		slog.Time("start_date", startDate))
	return bracket, nil
}

// AdvanceDay moves the dynasty calendar forward one day. Every scheduled
// game that has come due is simulated; a round that closes generates and
// schedules its successor; a finished championship triggers the archive.
func (s *orchestratorService) AdvanceDay(ctx context.Context, dynastyID int) (*DaySummary, error) {
	dynasty, err := s.getDynasty(ctx, dynastyID)
	if err != nil {
		return nil, err
	}

	state, err := s.stateService.State(ctx, dynastyID, dynasty.Season)
	if err != nil {
		return nil, err
	}
	if state.IsComplete() {
		return nil, ErrPlayoffsComplete
	}

	today := dynasty.CurrentDate.AddDate(0, 0, 1)
	summary := &DaySummary{Date: today}

	due, err := s.eventRepo.ListDueWithoutResults(ctx, dynastyID, models.EventTypePlayoffGame, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list due games: %w", err)
	}
	for _, event := range due {
		results := s.simulator.Simulate(event)
		game, err := s.stateService.ReportResult(ctx, dynastyID, dynasty.Season, event.GameID, results)
		if err != nil {
			return nil, fmt.Errorf("failed to report game %s: %w", event.GameID, err)
		}
		summary.GamesPlayed = append(summary.GamesPlayed, *game)
	}

	advanced, err := s.advanceRoundIfComplete(ctx, dynastyID, state)
	if err != nil {
		return nil, err
	}
	summary.RoundAdvanced = advanced
	summary.ActiveRound = state.ActiveRound()

	if state.IsComplete() {
		summary.Complete = true
		summary.Champion, _ = state.Champion()
		if s.archive != nil {
			url, err := s.archive.ArchiveSeason(ctx, dynastyID, dynasty.Season)
			if err != nil {
				// Archival is best effort; the season stays reconstructable
				// from the event log.
				s.logger.Error("season archive failed",
					slog.Int("dynasty_id", dynastyID),
					slog.Any("error", err))
			} else {
				summary.ArchiveURL = url
			}
		}
	}

	if err := s.dynastyRepo.UpdateCurrentDate(ctx, dynastyID, today); err != nil {
		return nil, err
	}
	state.AddSimulatedDay()

	s.logger.Info("day advanced",
		slog.Int("dynasty_id", dynastyID),
		slog.Time("date", today),
		slog.Int("games_played", len(summary.GamesPlayed)),
		slog.String("active_round", string(summary.ActiveRound)))
	return summary, nil
}

// advanceRoundIfComplete generates and schedules the next bracket once the
// active round has all its results and no successor bracket exists yet.
func (s *orchestratorService) advanceRoundIfComplete(ctx context.Context, dynastyID int, state *playoffs.TournamentState) (bool, error) {
	seeding := state.Seeding()
	if seeding == nil {
		return false, ErrSeedingNotFound
	}

	var lastComplete models.Round
	for _, round := range models.RoundOrder {
		if !state.IsRoundComplete(round) {
			break
		}
		lastComplete = round
	}
	if lastComplete == "" || lastComplete == models.RoundChampionship {
		return false, nil
	}

	next, _ := lastComplete.Next()
	if _, exists := state.Bracket(next); exists {
		return false, nil
	}

	startDate := s.nextRoundStart(state, lastComplete)
	results := state.CompletedGames(lastComplete)

	var bracket *models.Bracket
	var err error
	switch next {
	case models.RoundDivisional:
		bracket, err = playoffs.GenerateDivisional(results, seeding, startDate)
	case models.RoundConference:
		bracket, err = playoffs.GenerateConference(results, seeding, startDate)
	case models.RoundChampionship:
		bracket, err = playoffs.GenerateChampionship(results, seeding, startDate)
	}
	if err != nil {
		return false, err
	}

	if _, err := s.scheduler.ScheduleBracket(ctx, dynastyID, bracket); err != nil {
		return false, err
	}
	if err := state.SetBracket(bracket); err != nil {
		return false, err
	}

	if s.hub != nil {
		s.hub.BroadcastToDynasty(dynastyID, playoffs.UpdateRoundAdvanced, bracket)
	}
	s.logger.Info("round advanced",
		slog.Int("dynasty_id", dynastyID),
		slog.String("round", string(next)))
	return true, nil
}

// nextRoundStart is one week after the finished round's start, falling
// back to a week from now when the bracket predates the state cache.
func (s *orchestratorService) nextRoundStart(state *playoffs.TournamentState, finished models.Round) time.Time {
	if bracket, ok := state.Bracket(finished); ok {
		return bracket.StartDate.AddDate(0, 0, 7)
	}
	return time.Now().UTC().AddDate(0, 0, 7)
}

func (s *orchestratorService) getDynasty(ctx context.Context, dynastyID int) (*models.Dynasty, error) {
	dynasty, err := s.dynastyRepo.GetByID(ctx, dynastyID)
	if err != nil {
		if errors.Is(err, repositories.ErrDynastyNotFound) {
			return nil, ErrDynastyNotFound
		}
		return nil, err
	}
	return dynasty, nil
}
