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

// NotificationRepository persists member notifications.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository constructs a NotificationRepository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// List returns notifications newest first, optionally only active ones.
func (r *NotificationRepository) List(ctx context.Context, activeOnly bool) ([]models.Notification, error) {
	query := `SELECT id, title, message, is_active, created_by, created_at, updated_at FROM notifications`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	var notifications []models.Notification
	if err := r.db.SelectContext(ctx, &notifications, query); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

// CountActive returns the number of active notifications.
func (r *NotificationRepository) CountActive(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM notifications WHERE is_active = TRUE`); err != nil {
		return 0, fmt.Errorf("count active notifications: %w", err)
	}
	return total, nil
}

// FindByID fetches a notification.
func (r *NotificationRepository) FindByID(ctx context.Context, id string) (*models.Notification, error) {
	const query = `SELECT id, title, message, is_active, created_by, created_at, updated_at FROM notifications WHERE id = $1`
	var notification models.Notification
	if err := r.db.GetContext(ctx, &notification, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find notification: %w", err)
	}
	return &notification, nil
}

// Create inserts a notification.
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	notification.CreatedAt = now
	notification.UpdatedAt = now
	const query = `INSERT INTO notifications (id, title, message, is_active, created_by, created_at, updated_at) VALUES (:id, :title, :message, :is_active, :created_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, notification); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// Update modifies a notification.
func (r *NotificationRepository) Update(ctx context.Context, notification *models.Notification) error {
	notification.UpdatedAt = time.Now().UTC()
	const query = `UPDATE notifications SET title = :title, message = :message, is_active = :is_active, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, notification)
	if err != nil {
		return fmt.Errorf("update notification: %w", err)
	}
	return requireAffected(result, "updated notification")
}

// Delete removes a notification; its poll and responses go with it.
func (r *NotificationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	return requireAffected(result, "deleted notification")
}
