package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Dhruvina99/sevarthi-api/internal/models"
	appErrors "github.com/Dhruvina99/sevarthi-api/pkg/errors"
)

type roleRepository interface {
	List(ctx context.Context) ([]models.Role, error)
	FindByID(ctx context.Context, id string) (*models.Role, error)
	Create(ctx context.Context, role *models.Role) error
	Update(ctx context.Context, role *models.Role) error
	Delete(ctx context.Context, id string) error
}

type showRepository interface {
	List(ctx context.Context) ([]models.Show, error)
	FindByID(ctx context.Context, id string) (*models.Show, error)
	Create(ctx context.Context, show *models.Show) error
	Update(ctx context.Context, show *models.Show) error
	Delete(ctx context.Context, id string) error
}

// RoleRequest represents payload for creating or updating a role.
type RoleRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

// ShowRequest represents payload for scheduling a show.
type ShowRequest struct {
	Title    string  `json:"title" validate:"required,max=200"`
	ShowDate string  `json:"showDate" validate:"required"`
	StoryID  *string `json:"storyId" validate:"omitempty"`
	Venue    *string `json:"venue" validate:"omitempty,max=200"`
	IsActive *bool   `json:"isActive"`
}

// RoleService manages troupe roles.
type RoleService struct {
	repo      roleRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRoleService constructs a RoleService.
func NewRoleService(repo roleRepository, validate *validator.Validate, logger *zap.Logger) *RoleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoleService{repo: repo, validator: validate, logger: logger}
}

// List returns every role.
func (s *RoleService) List(ctx context.Context) ([]models.Role, error) {
	roles, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list roles")
	}
	return roles, nil
}

// Create adds a role.
func (s *RoleService) Create(ctx context.Context, req RoleRequest) (*models.Role, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid role payload")
	}
	role := &models.Role{Name: strings.TrimSpace(req.Name), Description: normalizeOptional(req.Description)}
	if err := s.repo.Create(ctx, role); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create role")
	}
	return role, nil
}

// Update replaces role fields.
func (s *RoleService) Update(ctx context.Context, id string, req RoleRequest) (*models.Role, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid role payload")
	}
	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "role")
	}
	role.Name = strings.TrimSpace(req.Name)
	role.Description = normalizeOptional(req.Description)
	if err := s.repo.Update(ctx, role); err != nil {
		return nil, writeError(err, "role", "update")
	}
	return role, nil
}

// Delete removes a role; attendance pointing at it joins to an absent role.
func (s *RoleService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "role", "delete")
	}
	return nil
}

// ShowService manages scheduled shows.
type ShowService struct {
	repo      showRepository
	stats     statsInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewShowService constructs a ShowService.
func NewShowService(repo showRepository, stats statsInvalidator, validate *validator.Validate, logger *zap.Logger) *ShowService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShowService{repo: repo, stats: invalidatorOrNop(stats), validator: validate, logger: logger}
}

// List returns every show.
func (s *ShowService) List(ctx context.Context) ([]models.Show, error) {
	shows, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list shows")
	}
	return shows, nil
}

// Get returns a single show.
func (s *ShowService) Get(ctx context.Context, id string) (*models.Show, error) {
	show, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "show")
	}
	return show, nil
}

// Create schedules a show.
func (s *ShowService) Create(ctx context.Context, req ShowRequest) (*models.Show, error) {
	show := &models.Show{IsActive: true}
	if err := s.apply(show, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, show); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create show")
	}
	s.stats.Invalidate(ctx)
	return show, nil
}

// Update replaces show fields.
func (s *ShowService) Update(ctx context.Context, id string, req ShowRequest) (*models.Show, error) {
	show, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(show, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, show); err != nil {
		return nil, writeError(err, "show", "update")
	}
	return show, nil
}

// Delete removes a show.
func (s *ShowService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "show", "delete")
	}
	s.stats.Invalidate(ctx)
	return nil
}

func (s *ShowService) apply(show *models.Show, req ShowRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return validationError(err, "invalid show payload")
	}
	date, err := time.Parse(dateLayout, strings.TrimSpace(req.ShowDate))
	if err != nil {
		return validationError(err, "showDate must be YYYY-MM-DD")
	}
	show.Title = strings.TrimSpace(req.Title)
	show.ShowDate = date
	show.StoryID = normalizeOptional(req.StoryID)
	show.Venue = normalizeOptional(req.Venue)
	if req.IsActive != nil {
		show.IsActive = *req.IsActive
	}
	return nil
}
