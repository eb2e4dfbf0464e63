package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Dhruvina99/sevarthi-api/internal/models"
)

const showColumns = `id, title, story_id, show_date, venue, is_active, created_at, updated_at`

// ShowRepository persists scheduled shows.
type ShowRepository struct {
	db *sqlx.DB
}

// NewShowRepository constructs a ShowRepository.
func NewShowRepository(db *sqlx.DB) *ShowRepository {
	return &ShowRepository{db: db}
}

// List returns shows ordered by date, newest first.
func (r *ShowRepository) List(ctx context.Context) ([]models.Show, error) {
	var shows []models.Show
	if err := r.db.SelectContext(ctx, &shows, "SELECT "+showColumns+" FROM shows ORDER BY show_date DESC"); err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}
	return shows, nil
}

// Count returns the number of shows.
func (r *ShowRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM shows`); err != nil {
		return 0, fmt.Errorf("count shows: %w", err)
	}
	return total, nil
}

// FindByID fetches a show.
func (r *ShowRepository) FindByID(ctx context.Context, id string) (*models.Show, error) {
	var show models.Show
	if err := r.db.GetContext(ctx, &show, "SELECT "+showColumns+" FROM shows WHERE id = $1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find show: %w", err)
	}
	return &show, nil
}

// Create inserts a show.
func (r *ShowRepository) Create(ctx context.Context, show *models.Show) error {
	if show.ID == "" {
		show.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	show.CreatedAt = now
	show.UpdatedAt = now
	const query = `INSERT INTO shows (id, title, story_id, show_date, venue, is_active, created_at, updated_at) VALUES (:id, :title, :story_id, :show_date, :venue, :is_active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, show); err != nil {
		return fmt.Errorf("create show: %w", err)
	}
	return nil
}

// Update modifies a show.
func (r *ShowRepository) Update(ctx context.Context, show *models.Show) error {
	show.UpdatedAt = time.Now().UTC()
	const query = `UPDATE shows SET title = :title, story_id = :story_id, show_date = :show_date, venue = :venue, is_active = :is_active, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, show)
	if err != nil {
		return fmt.Errorf("update show: %w", err)
	}
	return requireAffected(result, "updated show")
}

// Delete removes a show.
func (r *ShowRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM shows WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete show: %w", err)
	}
	return requireAffected(result, "deleted show")
}
