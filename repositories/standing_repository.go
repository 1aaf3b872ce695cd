package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gridironlabs/playoff-system/models"
)

var ErrRecordNotFound = errors.New("team record not found")

// StandingRepository reads the regular-season standings that seeding
// is computed from. Records are written by the season import job, so
// this repository is read-only.
type StandingRepository interface {
	GetRecord(ctx context.Context, dynastyID, season int, teamID string) (*models.TeamRecord, error)
	ListBySeason(ctx context.Context, dynastyID, season int) ([]models.TeamRecord, error)
	ListByConference(ctx context.Context, dynastyID, season int, conference models.Conference) ([]models.TeamRecord, error)
}

type postgresStandingRepository struct {
	db *sql.DB
}

func NewPostgresStandingRepository(db *sql.DB) StandingRepository {
	return &postgresStandingRepository{db: db}
}

const recordColumns = `team_id, name, conference, division,
	wins, losses, ties, conf_wins, conf_losses,
	div_wins, div_losses, points_for, points_against,
	strength_of_victory, strength_of_schedule`

func (r *postgresStandingRepository) GetRecord(ctx context.Context, dynastyID, season int, teamID string) (*models.TeamRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM team_records
		WHERE dynasty_id = $1 AND season = $2 AND team_id = $3`

	record, err := scanRecord(r.db.QueryRowContext(ctx, query, dynastyID, season, teamID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to scan team record %s: %w", teamID, err)
	}
	return record, nil
}

func (r *postgresStandingRepository) ListBySeason(ctx context.Context, dynastyID, season int) ([]models.TeamRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM team_records
		WHERE dynasty_id = $1 AND season = $2
		ORDER BY team_id ASC`

	return r.queryRecords(ctx, query, dynastyID, season)
}

func (r *postgresStandingRepository) ListByConference(ctx context.Context, dynastyID, season int, conference models.Conference) ([]models.TeamRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM team_records
		WHERE dynasty_id = $1 AND season = $2 AND conference = $3
		ORDER BY team_id ASC`

	return r.queryRecords(ctx, query, dynastyID, season, string(conference))
}

func (r *postgresStandingRepository) queryRecords(ctx context.Context, query string, args ...interface{}) ([]models.TeamRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query team records: %w", err)
	}
	defer rows.Close()

	records := make([]models.TeamRecord, 0)
	for rows.Next() {
		record, scanErr := scanRecord(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan team record row: %w", scanErr)
		}
		records = append(records, *record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during team record rows iteration: %w", err)
	}
	return records, nil
}

func scanRecord(row rowScanner) (*models.TeamRecord, error) {
	record := &models.TeamRecord{}
	err := row.Scan(
		&record.TeamID,
		&record.Name,
		&record.Conference,
		&record.Division,
		&record.Wins,
		&record.Losses,
		&record.Ties,
		&record.ConferenceWins,
		&record.ConferenceLosses,
		&record.DivisionWins,
		&record.DivisionLosses,
		&record.PointsFor,
		&record.PointsAgainst,
		&record.StrengthOfVictory,
		&record.StrengthOfSchedule,
	)
	if err != nil {
		return nil, err
	}
	return record, nil
}
