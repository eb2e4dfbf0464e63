package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dhruvina99/sevarthi-api/internal/service"
	"github.com/Dhruvina99/sevarthi-api/pkg/response"
)

// StoryHandler handles story and character endpoints.
type StoryHandler struct {
	service *service.StoryService
}

// NewStoryHandler constructs a story handler.
func NewStoryHandler(svc *service.StoryService) *StoryHandler {
	return &StoryHandler{service: svc}
}

// List godoc
// @Summary List stories with characters
// @Tags Stories
// @Produce json
// @Param includeInactive query bool false "Include deactivated stories"
// @Success 200 {object} response.Envelope
// @Router /stories [get]
func (h *StoryHandler) List(c *gin.Context) {
	stories, err := h.service.List(c.Request.Context(), boolQuery(c, "includeInactive"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stories, nil)
}

// Create godoc
// @Summary Create story
// @Tags Stories
// @Accept json
// @Produce json
// @Param payload body service.StoryRequest true "Story payload"
// @Success 201 {object} response.Envelope
// @Router /stories [post]
func (h *StoryHandler) Create(c *gin.Context) {
	var req service.StoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid story payload"))
		return
	}
	story, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, story)
}

// Update godoc
// @Summary Update story
// @Tags Stories
// @Accept json
// @Produce json
// @Param id path string true "Story ID"
// @Param payload body service.StoryRequest true "Story payload"
// @Success 200 {object} response.Envelope
// @Router /stories/{id} [put]
func (h *StoryHandler) Update(c *gin.Context) {
	var req service.StoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid story payload"))
		return
	}
	story, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, story, nil)
}

// Delete godoc
// @Summary Deactivate story
// @Tags Stories
// @Param id path string true "Story ID"
// @Success 204
// @Router /stories/{id} [delete]
func (h *StoryHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Characters godoc
// @Summary List characters of a story
// @Tags Stories
// @Produce json
// @Param id path string true "Story ID"
// @Success 200 {object} response.Envelope
// @Router /stories/{id}/characters [get]
func (h *StoryHandler) Characters(c *gin.Context) {
	characters, err := h.service.Characters(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, characters, nil)
}

// AddCharacter godoc
// @Summary Add character to a story
// @Tags Stories
// @Accept json
// @Produce json
// @Param id path string true "Story ID"
// @Param payload body service.CharacterRequest true "Character payload"
// @Success 201 {object} response.Envelope
// @Router /stories/{id}/characters [post]
func (h *StoryHandler) AddCharacter(c *gin.Context) {
	var req service.CharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid character payload"))
		return
	}
	character, err := h.service.AddCharacter(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, character)
}

// DeleteCharacter godoc
// @Summary Delete character
// @Tags Stories
// @Param id path string true "Character ID"
// @Success 204
// @Router /characters/{id} [delete]
func (h *StoryHandler) DeleteCharacter(c *gin.Context) {
	if err := h.service.DeleteCharacter(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
