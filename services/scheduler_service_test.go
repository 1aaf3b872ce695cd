package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironlabs/playoff-system/models"
	"github.com/gridironlabs/playoff-system/playoffs"
)

func computeTestSeeding(t *testing.T) *models.Seeding {
	t.Helper()
	standings := testStandings()
	records := make(map[string]models.TeamRecord)
	var fallback []string
	for _, conference := range models.Conferences {
		for _, record := range standings[conference] {
			records[record.TeamID] = record
			fallback = append(fallback, record.TeamID)
		}
	}
	seeding, err := playoffs.CalculateSeeding(records, 2025, 18, fallback)
	require.NoError(t, err)
	return seeding
}

func TestScheduleBracket_Idempotent(t *testing.T) {
	seeding := computeTestSeeding(t)
	bracket, err := playoffs.GenerateWildCard(seeding, time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	eventRepo := newFakeEventRepo()
	scheduler := NewSchedulerService(eventRepo)

	first, err := scheduler.ScheduleBracket(context.Background(), 1, bracket)
	require.NoError(t, err)
	require.Len(t, first, 6)
	assert.Equal(t, 6, eventRepo.inserts)

	second, err := scheduler.ScheduleBracket(context.Background(), 1, bracket)
	require.NoError(t, err)
	assert.Equal(t, first, second, "re-scheduling must return the same game ids")
	assert.Equal(t, 6, eventRepo.inserts, "re-scheduling must not insert new events")
}

func TestScheduleBracket_GameIDsAreDeterministic(t *testing.T) {
	seeding := computeTestSeeding(t)
	bracket, err := playoffs.GenerateWildCard(seeding, time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	scheduler := NewSchedulerService(newFakeEventRepo())
	ids, err := scheduler.ScheduleBracket(context.Background(), 1, bracket)
	require.NoError(t, err)

	assert.Equal(t, "playoff_2025_wildcard_1", ids[0])
	assert.Equal(t, "playoff_2025_wildcard_6", ids[5])
}

func TestScheduleBracket_EmptyBracket(t *testing.T) {
	scheduler := NewSchedulerService(newFakeEventRepo())
	_, err := scheduler.ScheduleBracket(context.Background(), 1, &models.Bracket{Round: models.RoundWildCard})
	assert.ErrorIs(t, err, ErrNoGamesScheduled)
}
