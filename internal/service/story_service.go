package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Dhruvina99/sevarthi-api/internal/models"
	appErrors "github.com/Dhruvina99/sevarthi-api/pkg/errors"
)

type storyRepository interface {
	List(ctx context.Context, includeInactive bool) ([]models.Story, error)
	FindByID(ctx context.Context, id string) (*models.Story, error)
	Create(ctx context.Context, story *models.Story) error
	Update(ctx context.Context, story *models.Story) error
	Deactivate(ctx context.Context, id string) error
	ListCharacters(ctx context.Context, storyID string) ([]models.Character, error)
	CreateCharacter(ctx context.Context, character *models.Character) error
	DeleteCharacter(ctx context.Context, id string) error
}

// StoryRequest represents payload for creating or updating a story.
type StoryRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	IsActive    *bool   `json:"isActive"`
}

// CharacterRequest represents payload for adding a character to a story.
type CharacterRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// StoryService manages stories and their characters.
type StoryService struct {
	repo      storyRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStoryService constructs a StoryService.
func NewStoryService(repo storyRepository, validate *validator.Validate, logger *zap.Logger) *StoryService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StoryService{repo: repo, validator: validate, logger: logger}
}

// List returns stories with their characters attached.
func (s *StoryService) List(ctx context.Context, includeInactive bool) ([]models.StoryWithCharacters, error) {
	stories, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list stories")
	}
	characters, err := s.repo.ListCharacters(ctx, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list characters")
	}

	byStory := make(map[string][]models.Character, len(stories))
	for _, character := range characters {
		byStory[character.StoryID] = append(byStory[character.StoryID], character)
	}
	result := make([]models.StoryWithCharacters, 0, len(stories))
	for _, story := range stories {
		cast := byStory[story.ID]
		if cast == nil {
			cast = []models.Character{}
		}
		result = append(result, models.StoryWithCharacters{Story: story, Characters: cast})
	}
	return result, nil
}

// Create adds a story; new stories are active unless stated otherwise.
func (s *StoryService) Create(ctx context.Context, req StoryRequest) (*models.Story, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid story payload")
	}
	story := &models.Story{
		Name:        strings.TrimSpace(req.Name),
		Description: normalizeOptional(req.Description),
		IsActive:    true,
	}
	if req.IsActive != nil {
		story.IsActive = *req.IsActive
	}
	if err := s.repo.Create(ctx, story); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create story")
	}
	return story, nil
}

// Update replaces story fields.
func (s *StoryService) Update(ctx context.Context, id string, req StoryRequest) (*models.Story, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid story payload")
	}
	story, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "story")
	}
	story.Name = strings.TrimSpace(req.Name)
	story.Description = normalizeOptional(req.Description)
	if req.IsActive != nil {
		story.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, story); err != nil {
		return nil, writeError(err, "story", "update")
	}
	return story, nil
}

// Delete deactivates a story so past attendance keeps resolving it.
func (s *StoryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return writeError(err, "story", "delete")
	}
	return nil
}

// Characters returns the cast of a story.
func (s *StoryService) Characters(ctx context.Context, storyID string) ([]models.Character, error) {
	if _, err := s.repo.FindByID(ctx, storyID); err != nil {
		return nil, lookupError(err, "story")
	}
	characters, err := s.repo.ListCharacters(ctx, storyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list characters")
	}
	return characters, nil
}

// AddCharacter creates a character under an existing story.
func (s *StoryService) AddCharacter(ctx context.Context, storyID string, req CharacterRequest) (*models.Character, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid character payload")
	}
	if _, err := s.repo.FindByID(ctx, storyID); err != nil {
		return nil, lookupError(err, "story")
	}
	character := &models.Character{
		StoryID:     storyID,
		Name:        strings.TrimSpace(req.Name),
		Description: normalizeOptional(req.Description),
	}
	if err := s.repo.CreateCharacter(ctx, character); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create character")
	}
	return character, nil
}

// DeleteCharacter removes a character.
func (s *StoryService) DeleteCharacter(ctx context.Context, id string) error {
	if err := s.repo.DeleteCharacter(ctx, id); err != nil {
		return writeError(err, "character", "delete")
	}
	return nil
}
