package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Dhruvina99/sevarthi-api/internal/models"
)

const memberColumns = `id, mht_id, name, email, mobile, is_admin, auth_user_id, created_at, updated_at`

// MemberRepository provides database access for troupe members.
type MemberRepository struct {
	db *sqlx.DB
}

// NewMemberRepository creates a new instance of MemberRepository.
func NewMemberRepository(db *sqlx.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// List returns members ordered by name. An empty filter yields the full snapshot.
func (r *MemberRepository) List(ctx context.Context, filter models.MemberFilter) ([]models.Member, error) {
	query := "SELECT " + memberColumns + " FROM members WHERE 1=1"
	var args []interface{}

	if filter.IsAdmin != nil {
		args = append(args, *filter.IsAdmin)
		query += fmt.Sprintf(" AND is_admin = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		query += fmt.Sprintf(" AND (LOWER(name) LIKE $%d OR LOWER(mht_id) LIKE $%d)", len(args), len(args))
	}
	query += " ORDER BY name ASC"

	var members []models.Member
	if err := r.db.SelectContext(ctx, &members, query, args...); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// Count returns the number of registered members.
func (r *MemberRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM members`); err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}
	return total, nil
}

// FindByID returns a member by identifier.
func (r *MemberRepository) FindByID(ctx context.Context, id string) (*models.Member, error) {
	query := "SELECT " + memberColumns + " FROM members WHERE id = $1 LIMIT 1"
	var member models.Member
	if err := r.db.GetContext(ctx, &member, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find member by id: %w", err)
	}
	return &member, nil
}

// FindByMhtID returns a member by MHT ID.
func (r *MemberRepository) FindByMhtID(ctx context.Context, mhtID string) (*models.Member, error) {
	query := "SELECT " + memberColumns + " FROM members WHERE mht_id = $1 LIMIT 1"
	var member models.Member
	if err := r.db.GetContext(ctx, &member, query, mhtID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find member by mht id: %w", err)
	}
	return &member, nil
}

// Create inserts a new member.
func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if member.CreatedAt.IsZero() {
		member.CreatedAt = now
	}
	member.UpdatedAt = now

	const query = `INSERT INTO members (id, mht_id, name, email, mobile, is_admin, auth_user_id, created_at, updated_at) VALUES (:id, :mht_id, :name, :email, :mobile, :is_admin, :auth_user_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, member); err != nil {
		return fmt.Errorf("create member: %w", err)
	}
	return nil
}

// Update persists mutable member fields.
func (r *MemberRepository) Update(ctx context.Context, member *models.Member) error {
	member.UpdatedAt = time.Now().UTC()
	const query = `UPDATE members SET mht_id = :mht_id, name = :name, email = :email, mobile = :mobile, is_admin = :is_admin, auth_user_id = :auth_user_id, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, member)
	if err != nil {
		return fmt.Errorf("update member: %w", err)
	}
	return requireAffected(result, "updated member")
}

// Delete removes a member row. Attendance history referencing the member is left in place.
func (r *MemberRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return requireAffected(result, "deleted member")
}
