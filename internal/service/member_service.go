package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Dhruvina99/sevarthi-api/internal/models"
	appErrors "github.com/Dhruvina99/sevarthi-api/pkg/errors"
)

type memberRepository interface {
	List(ctx context.Context, filter models.MemberFilter) ([]models.Member, error)
	FindByID(ctx context.Context, id string) (*models.Member, error)
	FindByMhtID(ctx context.Context, mhtID string) (*models.Member, error)
	Create(ctx context.Context, member *models.Member) error
	Update(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, id string) error
}

// CreateMemberRequest represents payload for registering a member.
type CreateMemberRequest struct {
	MhtID   string  `json:"mhtId" validate:"required,max=50"`
	Name    string  `json:"name" validate:"required,max=200"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Mobile  *string `json:"mobile" validate:"omitempty,min=6,max=20"`
	IsAdmin bool    `json:"isAdmin"`
}

// UpdateMemberRequest represents a partial member update.
type UpdateMemberRequest struct {
	MhtID   *string `json:"mhtId" validate:"omitempty,max=50"`
	Name    *string `json:"name" validate:"omitempty,max=200"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Mobile  *string `json:"mobile" validate:"omitempty,min=6,max=20"`
	IsAdmin *bool   `json:"isAdmin"`
}

// MemberService orchestrates member management.
type MemberService struct {
	repo      memberRepository
	stats     statsInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMemberService constructs a MemberService.
func NewMemberService(repo memberRepository, stats statsInvalidator, validate *validator.Validate, logger *zap.Logger) *MemberService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemberService{repo: repo, stats: invalidatorOrNop(stats), validator: validate, logger: logger}
}

// List returns members matching the filter.
func (s *MemberService) List(ctx context.Context, filter models.MemberFilter) ([]models.Member, error) {
	members, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list members")
	}
	return members, nil
}

// Get returns a member by id.
func (s *MemberService) Get(ctx context.Context, id string) (*models.Member, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "member")
	}
	return member, nil
}

// Create registers a member. At least one contact (email or mobile) is required for login.
func (s *MemberService) Create(ctx context.Context, req CreateMemberRequest) (*models.Member, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid member payload")
	}
	member := &models.Member{
		MhtID:   strings.TrimSpace(req.MhtID),
		Name:    strings.TrimSpace(req.Name),
		Email:   normalizeOptional(req.Email),
		Mobile:  normalizeOptional(req.Mobile),
		IsAdmin: req.IsAdmin,
	}
	if member.Email == nil && member.Mobile == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "email or mobile is required")
	}
	if err := s.ensureUniqueMhtID(ctx, member.MhtID, ""); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, member); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create member")
	}
	s.stats.Invalidate(ctx)
	s.logger.Info("member created", zap.String("member_id", member.ID), zap.String("mht_id", member.MhtID))
	return member, nil
}

// Update applies a partial update. Only admins may change the admin flag.
func (s *MemberService) Update(ctx context.Context, actor *models.JWTClaims, id string, req UpdateMemberRequest) (*models.Member, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid member payload")
	}
	if !actor.IsAdmin() && (actor == nil || actor.MemberID != id) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "cannot modify another member")
	}
	if req.IsAdmin != nil && !actor.IsAdmin() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only admins can change admin access")
	}

	member, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.MhtID != nil {
		mhtID := strings.TrimSpace(*req.MhtID)
		if mhtID == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "mhtId cannot be blank")
		}
		if mhtID != member.MhtID {
			if err := s.ensureUniqueMhtID(ctx, mhtID, member.ID); err != nil {
				return nil, err
			}
			member.MhtID = mhtID
		}
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "name cannot be blank")
		}
		member.Name = name
	}
	if req.Email != nil {
		member.Email = normalizeOptional(req.Email)
	}
	if req.Mobile != nil {
		member.Mobile = normalizeOptional(req.Mobile)
	}
	if member.Email == nil && member.Mobile == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "email or mobile is required")
	}
	if req.IsAdmin != nil {
		member.IsAdmin = *req.IsAdmin
	}

	if err := s.repo.Update(ctx, member); err != nil {
		return nil, writeError(err, "member", "update")
	}
	s.stats.Invalidate(ctx)
	return member, nil
}

// Delete removes a member. Attendance history stays and joins to an absent member.
func (s *MemberService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "member", "delete")
	}
	s.stats.Invalidate(ctx)
	s.logger.Info("member deleted", zap.String("member_id", id))
	return nil
}

func (s *MemberService) ensureUniqueMhtID(ctx context.Context, mhtID, excludeID string) error {
	existing, err := s.repo.FindByMhtID(ctx, mhtID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check mht id")
	}
	if existing.ID != excludeID {
		return appErrors.Clone(appErrors.ErrConflict, "mht id already registered")
	}
	return nil
}
