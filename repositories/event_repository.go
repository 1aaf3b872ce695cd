package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/gridironlabs/playoff-system/models"
)

var (
	ErrEventNotFound = errors.New("game event not found")
	ErrEventConflict = errors.New("game event with this game id already exists for the dynasty")
)

// EventRepository is the persisted event log, queryable by the stable
// domain game id or by event type. Insert assigns the storage handle;
// domain logic must key on the game id alone.
type EventRepository interface {
	Insert(ctx context.Context, exec SQLExecutor, event *models.GameEvent) error
	FindByGameID(ctx context.Context, dynastyID int, gameID string) (*models.GameEvent, error)
	FindByDynastyAndTypePrefix(ctx context.Context, dynastyID int, eventType, gameIDPrefix string) ([]*models.GameEvent, error)
	ListByDynastyAndType(ctx context.Context, dynastyID int, eventType string) ([]*models.GameEvent, error)
	ListDueWithoutResults(ctx context.Context, dynastyID int, eventType string, due time.Time) ([]*models.GameEvent, error)
	UpdateResults(ctx context.Context, dynastyID int, gameID string, results models.GameResults) error
}

type postgresEventRepository struct {
	db *sql.DB
}

func NewPostgresEventRepository(db *sql.DB) EventRepository {
	return &postgresEventRepository{db: db}
}

const eventColumns = `id, dynasty_id, event_type, game_id, away_team, home_team,
	away_score, home_score, event_date, week, season, created_at`

func (r *postgresEventRepository) Insert(ctx context.Context, exec SQLExecutor, event *models.GameEvent) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		INSERT INTO game_events
			(dynasty_id, event_type, game_id, away_team, home_team,
			 away_score, home_score, event_date, week, season)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	var awayScore, homeScore interface{}
	if event.Results != nil {
		awayScore, homeScore = event.Results.AwayScore, event.Results.HomeScore
	}

	err := exec.QueryRowContext(ctx, query,
		event.DynastyID,
		event.Type,
		event.GameID,
		event.Parameters.AwayTeamID,
		event.Parameters.HomeTeamID,
		awayScore,
		homeScore,
		event.Date,
		event.Week,
		event.Season,
	).Scan(&event.ID, &event.CreatedAt)

	return r.handleEventError(err)
}

func (r *postgresEventRepository) FindByGameID(ctx context.Context, dynastyID int, gameID string) (*models.GameEvent, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM game_events
		WHERE dynasty_id = $1 AND game_id = $2`

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, dynastyID, gameID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to scan game event %s: %w", gameID, err)
	}
	return event, nil
}

func (r *postgresEventRepository) FindByDynastyAndTypePrefix(ctx context.Context, dynastyID int, eventType, gameIDPrefix string) ([]*models.GameEvent, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM game_events
		WHERE dynasty_id = $1 AND event_type = $2 AND game_id LIKE $3 || '%'
		ORDER BY game_id ASC`

	return r.queryEvents(ctx, query, dynastyID, eventType, gameIDPrefix)
}

func (r *postgresEventRepository) ListByDynastyAndType(ctx context.Context, dynastyID int, eventType string) ([]*models.GameEvent, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM game_events
		WHERE dynasty_id = $1 AND event_type = $2
		ORDER BY id ASC`

	return r.queryEvents(ctx, query, dynastyID, eventType)
}

func (r *postgresEventRepository) ListDueWithoutResults(ctx context.Context, dynastyID int, eventType string, due time.Time) ([]*models.GameEvent, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM game_events
		WHERE dynasty_id = $1 AND event_type = $2
		  AND away_score IS NULL AND event_date <= $3
		ORDER BY event_date ASC, game_id ASC`

	return r.queryEvents(ctx, query, dynastyID, eventType, due)
}

func (r *postgresEventRepository) UpdateResults(ctx context.Context, dynastyID int, gameID string, results models.GameResults) error {
	query := `
		UPDATE game_events
		SET away_score = $1, home_score = $2
		WHERE dynasty_id = $3 AND game_id = $4`

	result, err := r.db.ExecContext(ctx, query, results.AwayScore, results.HomeScore, dynastyID, gameID)
	if err != nil {
		return fmt.Errorf("failed to update results for game %s: %w", gameID, err)
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

func (r *postgresEventRepository) queryEvents(ctx context.Context, query string, args ...interface{}) ([]*models.GameEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query game events: %w", err)
	}
	defer rows.Close()

	events := make([]*models.GameEvent, 0)
	for rows.Next() {
		event, scanErr := scanEvent(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan game event row: %w", scanErr)
		}
		events = append(events, event)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during game event rows iteration: %w", err)
	}
	return events, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*models.GameEvent, error) {
	event := &models.GameEvent{}
	var awayScore, homeScore sql.NullInt64
	err := row.Scan(
		&event.ID,
		&event.DynastyID,
		&event.Type,
		&event.GameID,
		&event.Parameters.AwayTeamID,
		&event.Parameters.HomeTeamID,
		&awayScore,
		&homeScore,
		&event.Date,
		&event.Week,
		&event.Season,
		&event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if awayScore.Valid && homeScore.Valid {
		event.Results = &models.GameResults{
			AwayScore: int(awayScore.Int64),
			HomeScore: int(homeScore.Int64),
		}
	}
	return event, nil
}

func (r *postgresEventRepository) handleEventError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		// "23505": unique_violation on (dynasty_id, game_id)
		if pqErr.Code == "23505" {
			return ErrEventConflict
		}
	}
	return err
}
