package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Dhruvina99/sevarthi-api/internal/models"
	appErrors "github.com/Dhruvina99/sevarthi-api/pkg/errors"
)

type notificationRepository interface {
	List(ctx context.Context, activeOnly bool) ([]models.Notification, error)
	FindByID(ctx context.Context, id string) (*models.Notification, error)
	Create(ctx context.Context, notification *models.Notification) error
	Update(ctx context.Context, notification *models.Notification) error
	Delete(ctx context.Context, id string) error
}

type notificationPollRepository interface {
	ListByNotificationIDs(ctx context.Context, ids []string) ([]models.Poll, error)
	Create(ctx context.Context, poll *models.Poll) error
}

// PollRequest describes a poll attached to a new notification.
type PollRequest struct {
	Question string   `json:"question" validate:"required,max=500"`
	Options  []string `json:"options" validate:"required,min=2,max=10,dive,required,max=200"`
}

// CreateNotificationRequest represents payload for publishing a notification.
type CreateNotificationRequest struct {
	Title    string       `json:"title" validate:"required,max=200"`
	Message  string       `json:"message" validate:"required"`
	IsActive *bool        `json:"isActive"`
	Poll     *PollRequest `json:"poll"`
}

// UpdateNotificationRequest represents a partial notification update.
type UpdateNotificationRequest struct {
	Title    *string `json:"title" validate:"omitempty,max=200"`
	Message  *string `json:"message"`
	IsActive *bool   `json:"isActive"`
}

// NotificationService publishes notifications and their optional polls.
type NotificationService struct {
	repo      notificationRepository
	polls     notificationPollRepository
	stats     statsInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(repo notificationRepository, polls notificationPollRepository, stats statsInvalidator, validate *validator.Validate, logger *zap.Logger) *NotificationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{repo: repo, polls: polls, stats: invalidatorOrNop(stats), validator: validate, logger: logger}
}

// List returns notifications with their polls attached.
func (s *NotificationService) List(ctx context.Context, activeOnly bool) ([]models.NotificationWithPoll, error) {
	notifications, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notifications")
	}
	ids := make([]string, 0, len(notifications))
	for _, n := range notifications {
		ids = append(ids, n.ID)
	}
	polls, err := s.polls.ListByNotificationIDs(ctx, ids)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load polls")
	}

	pollIndex := make(map[string]*models.Poll, len(polls))
	for i := range polls {
		if polls[i].NotificationID != nil {
			pollIndex[*polls[i].NotificationID] = &polls[i]
		}
	}
	result := make([]models.NotificationWithPoll, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, models.NotificationWithPoll{Notification: n, Poll: pollIndex[n.ID]})
	}
	return result, nil
}

// Create publishes a notification and, when requested, its poll. The two writes are not atomic:
// a failed poll insert leaves the notification in place and is reported to the caller.
func (s *NotificationService) Create(ctx context.Context, actor *models.JWTClaims, req CreateNotificationRequest) (*models.NotificationWithPoll, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid notification payload")
	}
	notification := &models.Notification{
		Title:    strings.TrimSpace(req.Title),
		Message:  strings.TrimSpace(req.Message),
		IsActive: true,
	}
	if req.IsActive != nil {
		notification.IsActive = *req.IsActive
	}
	if actor != nil {
		createdBy := actor.MemberID
		notification.CreatedBy = &createdBy
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create notification")
	}
	s.stats.Invalidate(ctx)

	result := &models.NotificationWithPoll{Notification: *notification}
	if req.Poll == nil {
		return result, nil
	}

	options := make(pq.StringArray, 0, len(req.Poll.Options))
	for _, option := range req.Poll.Options {
		options = append(options, strings.TrimSpace(option))
	}
	poll := &models.Poll{
		NotificationID: &notification.ID,
		Question:       strings.TrimSpace(req.Poll.Question),
		Options:        options,
		IsActive:       true,
	}
	if err := s.polls.Create(ctx, poll); err != nil {
		s.logger.Error("poll creation failed after notification insert", zap.String("notification_id", notification.ID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create poll")
	}
	result.Poll = poll
	return result, nil
}

// Update applies a partial update.
func (s *NotificationService) Update(ctx context.Context, id string, req UpdateNotificationRequest) (*models.Notification, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid notification payload")
	}
	notification, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "notification")
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "title cannot be blank")
		}
		notification.Title = title
	}
	if req.Message != nil {
		notification.Message = strings.TrimSpace(*req.Message)
	}
	if req.IsActive != nil {
		notification.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, notification); err != nil {
		return nil, writeError(err, "notification", "update")
	}
	s.stats.Invalidate(ctx)
	return notification, nil
}

// Delete removes a notification together with its poll.
func (s *NotificationService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "notification", "delete")
	}
	s.stats.Invalidate(ctx)
	return nil
}
