package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gridironlabs/playoff-system/models"
)

var ErrSeedingNotFound = errors.New("playoff seeding not found")

// SeedingRepository persists the computed seeding document as a single
// JSONB payload per dynasty and season. Recomputing overwrites.
type SeedingRepository interface {
	Save(ctx context.Context, dynastyID int, seeding *models.Seeding) error
	Get(ctx context.Context, dynastyID, season int) (*models.Seeding, error)
}

type postgresSeedingRepository struct {
	db *sql.DB
}

func NewPostgresSeedingRepository(db *sql.DB) SeedingRepository {
	return &postgresSeedingRepository{db: db}
}

func (r *postgresSeedingRepository) Save(ctx context.Context, dynastyID int, seeding *models.Seeding) error {
	payload, err := json.Marshal(seeding)
	if err != nil {
		return fmt.Errorf("failed to marshal seeding payload: %w", err)
	}

	query := `
		INSERT INTO playoff_seedings (dynasty_id, season, week, payload, computed_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (dynasty_id, season)
		DO UPDATE SET week = EXCLUDED.week, payload = EXCLUDED.payload, computed_at = EXCLUDED.computed_at`

	_, err = r.db.ExecContext(ctx, query, dynastyID, seeding.Season, seeding.Week, payload, seeding.ComputedAt)
	if err != nil {
		return fmt.Errorf("failed to save seeding for dynasty %d season %d: %w", dynastyID, seeding.Season, err)
	}
	return nil
}

func (r *postgresSeedingRepository) Get(ctx context.Context, dynastyID, season int) (*models.Seeding, error) {
	query := `
		SELECT payload
		FROM playoff_seedings
		WHERE dynasty_id = $1 AND season = $2`

	var payload []byte
	err := r.db.QueryRowContext(ctx, query, dynastyID, season).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeedingNotFound
		}
		return nil, fmt.Errorf("failed to load seeding for dynasty %d season %d: %w", dynastyID, season, err)
	}

	seeding := &models.Seeding{}
	if err := json.Unmarshal(payload, seeding); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seeding payload: %w", err)
	}
	return seeding, nil
}
