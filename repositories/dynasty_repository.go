package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gridironlabs/playoff-system/models"
)

var ErrDynastyNotFound = errors.New("dynasty not found")

type DynastyRepository interface {
	GetByID(ctx context.Context, id int) (*models.Dynasty, error)
	GetByOwnerEmail(ctx context.Context, email string) (*models.Dynasty, error)
	UpdateCurrentDate(ctx context.Context, id int, current time.Time) error
}

type postgresDynastyRepository struct {
	db *sql.DB
}

func NewPostgresDynastyRepository(db *sql.DB) DynastyRepository {
	return &postgresDynastyRepository{db: db}
}

const dynastyColumns = `id, name, owner_email, password_hash, season, current_date_value, created_at`

func (r *postgresDynastyRepository) GetByID(ctx context.Context, id int) (*models.Dynasty, error) {
	query := `
		SELECT ` + dynastyColumns + `
		FROM dynasties
		WHERE id = $1`

	return r.getOne(ctx, query, id)
}

func (r *postgresDynastyRepository) GetByOwnerEmail(ctx context.Context, email string) (*models.Dynasty, error) {
	query := `
		SELECT ` + dynastyColumns + `
		FROM dynasties
		WHERE owner_email = $1`

	return r.getOne(ctx, query, email)
}

func (r *postgresDynastyRepository) UpdateCurrentDate(ctx context.Context, id int, current time.Time) error {
	query := `
		UPDATE dynasties
		SET current_date_value = $1
		WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, current, id)
	if err != nil {
		return fmt.Errorf("failed to update current date for dynasty %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrDynastyNotFound)
}

func (r *postgresDynastyRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.Dynasty, error) {
	dynasty := &models.Dynasty{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&dynasty.ID,
		&dynasty.Name,
		&dynasty.OwnerEmail,
		&dynasty.PasswordHash,
		&dynasty.Season,
		&dynasty.CurrentDate,
		&dynasty.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDynastyNotFound
		}
		return nil, fmt.Errorf("failed to scan dynasty: %w", err)
	}
	return dynasty, nil
}
