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

// StoryRepository manages stories and their characters.
type StoryRepository struct {
	db *sqlx.DB
}

// NewStoryRepository constructs a StoryRepository.
func NewStoryRepository(db *sqlx.DB) *StoryRepository {
	return &StoryRepository{db: db}
}

// List returns stories; inactive ones are included only when requested.
func (r *StoryRepository) List(ctx context.Context, includeInactive bool) ([]models.Story, error) {
	query := `SELECT id, name, description, is_active, created_at, updated_at FROM stories`
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name ASC`

	var stories []models.Story
	if err := r.db.SelectContext(ctx, &stories, query); err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	return stories, nil
}

// FindByID fetches a story by id.
func (r *StoryRepository) FindByID(ctx context.Context, id string) (*models.Story, error) {
	const query = `SELECT id, name, description, is_active, created_at, updated_at FROM stories WHERE id = $1`
	var story models.Story
	if err := r.db.GetContext(ctx, &story, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find story: %w", err)
	}
	return &story, nil
}

// Create inserts a story.
func (r *StoryRepository) Create(ctx context.Context, story *models.Story) error {
	if story.ID == "" {
		story.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	story.CreatedAt = now
	story.UpdatedAt = now
	const query = `INSERT INTO stories (id, name, description, is_active, created_at, updated_at) VALUES (:id, :name, :description, :is_active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, story); err != nil {
		return fmt.Errorf("create story: %w", err)
	}
	return nil
}

// Update modifies story fields.
func (r *StoryRepository) Update(ctx context.Context, story *models.Story) error {
	story.UpdatedAt = time.Now().UTC()
	const query = `UPDATE stories SET name = :name, description = :description, is_active = :is_active, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, story)
	if err != nil {
		return fmt.Errorf("update story: %w", err)
	}
	return requireAffected(result, "updated story")
}

// Deactivate soft deletes a story.
func (r *StoryRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE stories SET is_active = FALSE, updated_at = $2 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("deactivate story: %w", err)
	}
	return requireAffected(result, "deactivated story")
}

// ListCharacters returns the characters of one story, or of every story when storyID is empty.
func (r *StoryRepository) ListCharacters(ctx context.Context, storyID string) ([]models.Character, error) {
	query := `SELECT id, story_id, name, description, created_at FROM characters`
	var args []interface{}
	if storyID != "" {
		query += ` WHERE story_id = $1`
		args = append(args, storyID)
	}
	query += ` ORDER BY name ASC`

	var characters []models.Character
	if err := r.db.SelectContext(ctx, &characters, query, args...); err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	return characters, nil
}

// CreateCharacter inserts a character for a story.
func (r *StoryRepository) CreateCharacter(ctx context.Context, character *models.Character) error {
	if character.ID == "" {
		character.ID = uuid.NewString()
	}
	character.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO characters (id, story_id, name, description, created_at) VALUES (:id, :story_id, :name, :description, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, character); err != nil {
		return fmt.Errorf("create character: %w", err)
	}
	return nil
}

// DeleteCharacter removes a character.
func (r *StoryRepository) DeleteCharacter(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM characters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete character: %w", err)
	}
	return requireAffected(result, "deleted character")
}
