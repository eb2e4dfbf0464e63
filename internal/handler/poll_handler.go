package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dhruvina99/sevarthi-api/internal/models"
	"github.com/Dhruvina99/sevarthi-api/internal/service"
	"github.com/Dhruvina99/sevarthi-api/pkg/response"
)

type pollService interface {
	Get(ctx context.Context, id string) (*service.PollWithTally, error)
	Respond(ctx context.Context, actor *models.JWTClaims, pollID string, req service.PollResponseRequest) (*models.PollResponse, error)
	Responses(ctx context.Context, pollID string) (*models.Poll, []models.PollResponseWithMember, error)
}

// PollHandler handles poll answering and results.
type PollHandler struct {
	service pollService
}

// NewPollHandler constructs a poll handler.
func NewPollHandler(svc pollService) *PollHandler {
	return &PollHandler{service: svc}
}

// Get godoc
// @Summary Poll with tally
// @Tags Polls
// @Produce json
// @Param id path string true "Poll ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /polls/{id} [get]
func (h *PollHandler) Get(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Respond godoc
// @Summary Answer a poll
// @Description Re-answering replaces the caller's previous choice
// @Tags Polls
// @Accept json
// @Produce json
// @Param id path string true "Poll ID"
// @Param payload body service.PollResponseRequest true "Selected option index"
// @Success 200 {object} response.Envelope
// @Router /polls/{id}/responses [post]
func (h *PollHandler) Respond(c *gin.Context) {
	var req service.PollResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid poll response payload"))
		return
	}
	answer, err := h.service.Respond(c.Request.Context(), claimsFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, answer, nil)
}

// Responses godoc
// @Summary Poll responses with members
// @Tags Polls
// @Produce json
// @Param id path string true "Poll ID"
// @Success 200 {object} response.Envelope
// @Router /polls/{id}/responses [get]
func (h *PollHandler) Responses(c *gin.Context) {
	poll, responses, err := h.service.Responses(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"poll": poll, "responses": responses}, nil)
}
