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

const attendanceColumns = `id, member_id, date, status, story_id, role_id, character_ids, time_in, time_out, reason, replaced_member_id, event_type, created_at, updated_at`

// AttendanceRepository provides access to attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// List returns every attendance record, most recent date first.
func (r *AttendanceRepository) List(ctx context.Context) ([]models.AttendanceRecord, error) {
	query := "SELECT " + attendanceColumns + " FROM attendance ORDER BY date DESC, created_at DESC"
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

// ListByMember returns the attendance records logged by one member.
func (r *AttendanceRepository) ListByMember(ctx context.Context, memberID string) ([]models.AttendanceRecord, error) {
	query := "SELECT " + attendanceColumns + " FROM attendance WHERE member_id = $1 ORDER BY date DESC, created_at DESC"
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, memberID); err != nil {
		return nil, fmt.Errorf("list member attendance: %w", err)
	}
	return records, nil
}

// FindByID fetches a single attendance record.
func (r *AttendanceRepository) FindByID(ctx context.Context, id string) (*models.AttendanceRecord, error) {
	query := "SELECT " + attendanceColumns + " FROM attendance WHERE id = $1"
	var record models.AttendanceRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find attendance: %w", err)
	}
	return &record, nil
}

// Create inserts an attendance record.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now
	const query = `INSERT INTO attendance (id, member_id, date, status, story_id, role_id, character_ids, time_in, time_out, reason, replaced_member_id, event_type, created_at, updated_at) VALUES (:id, :member_id, :date, :status, :story_id, :role_id, :character_ids, :time_in, :time_out, :reason, :replaced_member_id, :event_type, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create attendance: %w", err)
	}
	return nil
}

// Update rewrites the mutable columns of an attendance record.
func (r *AttendanceRepository) Update(ctx context.Context, record *models.AttendanceRecord) error {
	record.UpdatedAt = time.Now().UTC()
	const query = `UPDATE attendance SET date = :date, status = :status, story_id = :story_id, role_id = :role_id, character_ids = :character_ids, time_in = :time_in, time_out = :time_out, reason = :reason, replaced_member_id = :replaced_member_id, event_type = :event_type, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, record)
	if err != nil {
		return fmt.Errorf("update attendance: %w", err)
	}
	return requireAffected(result, "updated attendance")
}

// Delete removes an attendance record.
func (r *AttendanceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	return requireAffected(result, "deleted attendance")
}
