package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Dhruvina99/sevarthi-api/internal/models"
)

// MemberReportRepository persists reports submitted by members.
type MemberReportRepository struct {
	db *sqlx.DB
}

// NewMemberReportRepository constructs a MemberReportRepository.
func NewMemberReportRepository(db *sqlx.DB) *MemberReportRepository {
	return &MemberReportRepository{db: db}
}

// List returns reports newest first, optionally restricted to unread ones.
func (r *MemberReportRepository) List(ctx context.Context, unreadOnly bool) ([]models.MemberReport, error) {
	query := `SELECT id, member_id, subject, content, is_read, created_at FROM member_reports`
	if unreadOnly {
		query += ` WHERE is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC`

	var reports []models.MemberReport
	if err := r.db.SelectContext(ctx, &reports, query); err != nil {
		return nil, fmt.Errorf("list member reports: %w", err)
	}
	return reports, nil
}

// Create inserts a report.
func (r *MemberReportRepository) Create(ctx context.Context, report *models.MemberReport) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	report.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO member_reports (id, member_id, subject, content, is_read, created_at) VALUES (:id, :member_id, :subject, :content, :is_read, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, report); err != nil {
		return fmt.Errorf("create member report: %w", err)
	}
	return nil
}

// MarkRead flags a report as read.
func (r *MemberReportRepository) MarkRead(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE member_reports SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark member report read: %w", err)
	}
	return requireAffected(result, "read member report")
}
