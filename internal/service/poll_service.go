package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Dhruvina99/sevarthi-api/internal/models"
	appErrors "github.com/Dhruvina99/sevarthi-api/pkg/errors"
)

type pollRepository interface {
	FindByID(ctx context.Context, id string) (*models.Poll, error)
	ListResponses(ctx context.Context, pollID string) ([]models.PollResponse, error)
	UpsertResponse(ctx context.Context, response *models.PollResponse) error
}

// PollResponseRequest carries the chosen option index.
type PollResponseRequest struct {
	SelectedOption *int `json:"selectedOption" validate:"required"`
}

// PollWithTally is a poll together with its current result.
type PollWithTally struct {
	Poll  models.Poll      `json:"poll"`
	Tally models.PollTally `json:"tally"`
}

// PollService records poll answers and tallies them.
type PollService struct {
	repo    pollRepository
	members memberLister
	logger  *zap.Logger
}

// NewPollService constructs a PollService.
func NewPollService(repo pollRepository, members memberLister, logger *zap.Logger) *PollService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PollService{repo: repo, members: members, logger: logger}
}

// Get returns a poll and its tally.
func (s *PollService) Get(ctx context.Context, id string) (*PollWithTally, error) {
	poll, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "poll")
	}
	responses, err := s.repo.ListResponses(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load poll responses")
	}
	return &PollWithTally{Poll: *poll, Tally: TallyPoll(*poll, responses)}, nil
}

// Respond stores the caller's answer, replacing any earlier one.
func (s *PollService) Respond(ctx context.Context, actor *models.JWTClaims, pollID string, req PollResponseRequest) (*models.PollResponse, error) {
	if actor == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "authentication required")
	}
	if req.SelectedOption == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "selectedOption is required")
	}
	poll, err := s.repo.FindByID(ctx, pollID)
	if err != nil {
		return nil, lookupError(err, "poll")
	}
	if !poll.IsActive {
		return nil, appErrors.Clone(appErrors.ErrValidation, "poll is closed")
	}
	selected := *req.SelectedOption
	if selected < 0 || selected >= len(poll.Options) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "selectedOption is out of range")
	}

	response := &models.PollResponse{PollID: poll.ID, MemberID: actor.MemberID, SelectedOption: selected}
	if err := s.repo.UpsertResponse(ctx, response); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record poll response")
	}
	return response, nil
}

// Responses returns the poll with every response joined to its member.
func (s *PollService) Responses(ctx context.Context, pollID string) (*models.Poll, []models.PollResponseWithMember, error) {
	poll, err := s.repo.FindByID(ctx, pollID)
	if err != nil {
		return nil, nil, lookupError(err, "poll")
	}
	responses, err := s.repo.ListResponses(ctx, pollID)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load poll responses")
	}
	members, err := s.members.List(ctx, models.MemberFilter{})
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load members")
	}
	return poll, JoinPollResponses(responses, members), nil
}
