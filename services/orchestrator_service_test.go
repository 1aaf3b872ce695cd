package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironlabs/playoff-system/models"
)

func orchestratorFixture(t *testing.T) (OrchestratorService, *fakeDynastyRepo, *fakeEventRepo, *fakeUploader) {
	t.Helper()

	dynastyRepo := &fakeDynastyRepo{dynasty: models.Dynasty{
		ID:          1,
		Name:        "Test Dynasty",
		OwnerEmail:  "owner@example.com",
		Season:      2025,
		CurrentDate: time.Date(2026, time.January, 9, 0, 0, 0, 0, time.UTC),
	}}

	seedingRepo := newFakeSeedingRepo()
	require.NoError(t, seedingRepo.Save(context.Background(), 1, computeTestSeeding(t)))

	eventRepo := newFakeEventRepo()
	stateService := NewStateService(eventRepo, seedingRepo, nil)
	uploader := newFakeUploader()

	svc := NewOrchestratorService(
		dynastyRepo,
		eventRepo,
		NewSeedingService(&fakeStandingRepo{records: testStandings()}, seedingRepo, eventRepo, nil),
		stateService,
		NewSchedulerService(eventRepo),
		NewArchiveService(stateService, uploader),
		homeWinsSimulator{},
		nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return svc, dynastyRepo, eventRepo, uploader
}

func TestOrchestrator_StartPlayoffs(t *testing.T) {
	svc, _, eventRepo, _ := orchestratorFixture(t)

	bracket, err := svc.StartPlayoffs(context.Background(), 1, time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, bracket.Matchups, 6)
	assert.Equal(t, 6, eventRepo.inserts)

	// Starting again regenerates the same bracket without new events.
	again, err := svc.StartPlayoffs(context.Background(), 1, time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, bracket.Matchups, again.Matchups)
	assert.Equal(t, 6, eventRepo.inserts)
}

func TestOrchestrator_FullPostseason(t *testing.T) {
	svc, dynastyRepo, _, uploader := orchestratorFixture(t)
	start := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)

	_, err := svc.StartPlayoffs(context.Background(), 1, start)
	require.NoError(t, err)

	var final *DaySummary
	totalGames := 0
	for day := 0; day < 40; day++ {
		summary, err := svc.AdvanceDay(context.Background(), 1)
		require.NoError(t, err)
		totalGames += len(summary.GamesPlayed)
		if summary.Complete {
			final = summary
			break
		}
	}
	require.NotNil(t, final, "postseason never completed")

	assert.Equal(t, 13, totalGames)
	assert.Equal(t, "A01", final.Champion, "the AFC #1 seed hosts every game and the home side always wins")
	assert.Equal(t, models.RoundChampionship, final.ActiveRound)

	assert.Contains(t, uploader.objects, "archives/1/2025.json")
	assert.Equal(t, "https://archive.test/archives/1/2025.json", final.ArchiveURL)

	// Rounds are a week apart: wild card Jan 10, title game Jan 31.
	assert.Equal(t, start.AddDate(0, 0, 21), dynastyRepo.dynasty.CurrentDate)

	_, err = svc.AdvanceDay(context.Background(), 1)
	assert.ErrorIs(t, err, ErrPlayoffsComplete)
}

func TestOrchestrator_GameDaysProduceResults(t *testing.T) {
	svc, _, _, _ := orchestratorFixture(t)
	start := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)

	_, err := svc.StartPlayoffs(context.Background(), 1, start)
	require.NoError(t, err)

	// Day one covers the whole wild-card slate and opens the divisional.
	summary, err := svc.AdvanceDay(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, summary.GamesPlayed, 6)
	assert.True(t, summary.RoundAdvanced)
	assert.Equal(t, models.RoundDivisional, summary.ActiveRound)

	// The next day has nothing due.
	summary, err = svc.AdvanceDay(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, summary.GamesPlayed)
	assert.False(t, summary.RoundAdvanced)
}

func TestOrchestrator_UnknownDynasty(t *testing.T) {
	svc, _, _, _ := orchestratorFixture(t)
	_, err := svc.AdvanceDay(context.Background(), 99)
	assert.ErrorIs(t, err, ErrDynastyNotFound)
}
