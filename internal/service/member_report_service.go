package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Dhruvina99/sevarthi-api/internal/models"
	appErrors "github.com/Dhruvina99/sevarthi-api/pkg/errors"
)

type memberReportRepository interface {
	List(ctx context.Context, unreadOnly bool) ([]models.MemberReport, error)
	Create(ctx context.Context, report *models.MemberReport) error
	MarkRead(ctx context.Context, id string) error
}

type practiceLinkRepository interface {
	List(ctx context.Context, storyID string) ([]models.PracticeLink, error)
	Create(ctx context.Context, link *models.PracticeLink) error
	Delete(ctx context.Context, id string) error
}

// MemberReportRequest represents a report submitted by a member.
type MemberReportRequest struct {
	Subject string `json:"subject" validate:"required,max=200"`
	Content string `json:"content" validate:"required,max=5000"`
}

// PracticeLinkRequest represents payload for sharing rehearsal material.
type PracticeLinkRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	URL         string  `json:"url" validate:"required,url"`
	StoryID     *string `json:"storyId"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

// MemberReportService handles member to admin reports.
type MemberReportService struct {
	repo      memberReportRepository
	members   memberLister
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMemberReportService constructs a MemberReportService.
func NewMemberReportService(repo memberReportRepository, members memberLister, validate *validator.Validate, logger *zap.Logger) *MemberReportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemberReportService{repo: repo, members: members, validator: validate, logger: logger}
}

// List returns reports joined with their authors.
func (s *MemberReportService) List(ctx context.Context, unreadOnly bool) ([]models.MemberReportWithMember, error) {
	reports, err := s.repo.List(ctx, unreadOnly)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reports")
	}
	members, err := s.members.List(ctx, models.MemberFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load members")
	}
	return JoinMemberReports(reports, members), nil
}

// Submit files a report on behalf of the caller.
func (s *MemberReportService) Submit(ctx context.Context, actor *models.JWTClaims, req MemberReportRequest) (*models.MemberReport, error) {
	if actor == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "authentication required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid report payload")
	}
	report := &models.MemberReport{
		MemberID: actor.MemberID,
		Subject:  strings.TrimSpace(req.Subject),
		Content:  strings.TrimSpace(req.Content),
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to submit report")
	}
	return report, nil
}

// MarkRead flags a report as handled.
func (s *MemberReportService) MarkRead(ctx context.Context, id string) error {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return writeError(err, "report", "update")
	}
	return nil
}

// PracticeLinkService shares rehearsal links with members.
type PracticeLinkService struct {
	repo      practiceLinkRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPracticeLinkService constructs a PracticeLinkService.
func NewPracticeLinkService(repo practiceLinkRepository, validate *validator.Validate, logger *zap.Logger) *PracticeLinkService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PracticeLinkService{repo: repo, validator: validate, logger: logger}
}

// List returns links, optionally for one story.
func (s *PracticeLinkService) List(ctx context.Context, storyID string) ([]models.PracticeLink, error) {
	links, err := s.repo.List(ctx, strings.TrimSpace(storyID))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list practice links")
	}
	return links, nil
}

// Create shares a link.
func (s *PracticeLinkService) Create(ctx context.Context, actor *models.JWTClaims, req PracticeLinkRequest) (*models.PracticeLink, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid practice link payload")
	}
	link := &models.PracticeLink{
		Title:       strings.TrimSpace(req.Title),
		URL:         strings.TrimSpace(req.URL),
		StoryID:     normalizeOptional(req.StoryID),
		Description: normalizeOptional(req.Description),
	}
	if actor != nil {
		createdBy := actor.MemberID
		link.CreatedBy = &createdBy
	}
	if err := s.repo.Create(ctx, link); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create practice link")
	}
	return link, nil
}

// Delete removes a link.
func (s *PracticeLinkService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "practice link", "delete")
	}
	return nil
}
