package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Dhruvina99/sevarthi-api/internal/models"
)

const pollColumns = `id, notification_id, question, options, is_active, created_at`

// PollRepository persists polls and member responses.
type PollRepository struct {
	db *sqlx.DB
}

// NewPollRepository constructs a PollRepository.
func NewPollRepository(db *sqlx.DB) *PollRepository {
	return &PollRepository{db: db}
}

// FindByID fetches a poll.
func (r *PollRepository) FindByID(ctx context.Context, id string) (*models.Poll, error) {
	var poll models.Poll
	if err := r.db.GetContext(ctx, &poll, "SELECT "+pollColumns+" FROM polls WHERE id = $1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find poll: %w", err)
	}
	return &poll, nil
}

// ListByNotificationIDs returns the polls attached to any of the given notifications.
func (r *PollRepository) ListByNotificationIDs(ctx context.Context, ids []string) ([]models.Poll, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := "SELECT " + pollColumns + " FROM polls WHERE notification_id = ANY($1)"
	var polls []models.Poll
	if err := r.db.SelectContext(ctx, &polls, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("list polls by notification: %w", err)
	}
	return polls, nil
}

// Create inserts a poll.
func (r *PollRepository) Create(ctx context.Context, poll *models.Poll) error {
	if poll.ID == "" {
		poll.ID = uuid.NewString()
	}
	poll.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO polls (id, notification_id, question, options, is_active, created_at) VALUES (:id, :notification_id, :question, :options, :is_active, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, poll); err != nil {
		return fmt.Errorf("create poll: %w", err)
	}
	return nil
}

// ListResponses returns every response for a poll in submission order.
func (r *PollRepository) ListResponses(ctx context.Context, pollID string) ([]models.PollResponse, error) {
	const query = `SELECT id, poll_id, member_id, selected_option, created_at, updated_at FROM poll_responses WHERE poll_id = $1 ORDER BY created_at ASC`
	var responses []models.PollResponse
	if err := r.db.SelectContext(ctx, &responses, query, pollID); err != nil {
		return nil, fmt.Errorf("list poll responses: %w", err)
	}
	return responses, nil
}

// UpsertResponse stores a member's answer, replacing any earlier choice for the same poll.
func (r *PollRepository) UpsertResponse(ctx context.Context, response *models.PollResponse) error {
	if response.ID == "" {
		response.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	response.CreatedAt = now
	response.UpdatedAt = now
	const query = `INSERT INTO poll_responses (id, poll_id, member_id, selected_option, created_at, updated_at)
VALUES (:id, :poll_id, :member_id, :selected_option, :created_at, :updated_at)
ON CONFLICT (poll_id, member_id) DO UPDATE SET selected_option = EXCLUDED.selected_option, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, response); err != nil {
		return fmt.Errorf("upsert poll response: %w", err)
	}
	return nil
}
