package services

import (
	"math/rand"

	"github.com/gridironlabs/playoff-system/models"
)

// GameSimulator produces a final score for one scheduled playoff game.
// Playoff games cannot end tied.
type GameSimulator interface {
	Simulate(event *models.GameEvent) models.GameResults
}

type seededSimulator struct {
	rng *rand.Rand
}

// NewSeededSimulator returns a deterministic simulator: the same seed
// replays the same postseason.
func NewSeededSimulator(seed int64) GameSimulator {
	return &seededSimulator{rng: rand.New(rand.NewSource(seed))}
}

func (s *seededSimulator) Simulate(event *models.GameEvent) models.GameResults {
	// Scores in a plausible 3..45 band, home side nudged by field advantage.
	away := 3 + s.rng.Intn(38)
	home := 3 + s.rng.Intn(38) + s.rng.Intn(4)
	if away == home {
		home += 3
	}
	return models.GameResults{AwayScore: away, HomeScore: home}
}
