package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Dhruvina99/sevarthi-api/internal/models"
)

// PracticeLinkRepository persists rehearsal links.
type PracticeLinkRepository struct {
	db *sqlx.DB
}

// NewPracticeLinkRepository constructs a PracticeLinkRepository.
func NewPracticeLinkRepository(db *sqlx.DB) *PracticeLinkRepository {
	return &PracticeLinkRepository{db: db}
}

// List returns links newest first, optionally for a single story.
func (r *PracticeLinkRepository) List(ctx context.Context, storyID string) ([]models.PracticeLink, error) {
	query := `SELECT id, title, url, story_id, description, created_by, created_at FROM practice_links`
	var args []interface{}
	if storyID != "" {
		query += ` WHERE story_id = $1`
		args = append(args, storyID)
	}
	query += ` ORDER BY created_at DESC`

	var links []models.PracticeLink
	if err := r.db.SelectContext(ctx, &links, query, args...); err != nil {
		return nil, fmt.Errorf("list practice links: %w", err)
	}
	return links, nil
}

// Create inserts a practice link.
func (r *PracticeLinkRepository) Create(ctx context.Context, link *models.PracticeLink) error {
	if link.ID == "" {
		link.ID = uuid.NewString()
	}
	link.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO practice_links (id, title, url, story_id, description, created_by, created_at) VALUES (:id, :title, :url, :story_id, :description, :created_by, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, link); err != nil {
		return fmt.Errorf("create practice link: %w", err)
	}
	return nil
}

// Delete removes a practice link.
func (r *PracticeLinkRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM practice_links WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete practice link: %w", err)
	}
	return requireAffected(result, "deleted practice link")
}
