package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dhruvina99/sevarthi-api/internal/service"
	"github.com/Dhruvina99/sevarthi-api/pkg/response"
)

// MemberReportHandler handles member-to-admin reports.
type MemberReportHandler struct {
	service *service.MemberReportService
}

// NewMemberReportHandler constructs the handler.
func NewMemberReportHandler(svc *service.MemberReportService) *MemberReportHandler {
	return &MemberReportHandler{service: svc}
}

// List godoc
// @Summary List member reports
// @Tags Reports
// @Produce json
// @Param unread query bool false "Only unread reports"
// @Success 200 {object} response.Envelope
// @Router /reports [get]
func (h *MemberReportHandler) List(c *gin.Context) {
	reports, err := h.service.List(c.Request.Context(), boolQuery(c, "unread"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reports, nil)
}

// Submit godoc
// @Summary Submit report to admins
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body service.MemberReportRequest true "Report payload"
// @Success 201 {object} response.Envelope
// @Router /reports [post]
func (h *MemberReportHandler) Submit(c *gin.Context) {
	var req service.MemberReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid report payload"))
		return
	}
	report, err := h.service.Submit(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, report)
}

// MarkRead godoc
// @Summary Mark report read
// @Tags Reports
// @Param id path string true "Report ID"
// @Success 204
// @Router /reports/{id}/read [patch]
func (h *MemberReportHandler) MarkRead(c *gin.Context) {
	if err := h.service.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// PracticeLinkHandler handles shared rehearsal links.
type PracticeLinkHandler struct {
	service *service.PracticeLinkService
}

// NewPracticeLinkHandler constructs the handler.
func NewPracticeLinkHandler(svc *service.PracticeLinkService) *PracticeLinkHandler {
	return &PracticeLinkHandler{service: svc}
}

// List godoc
// @Summary List practice links
// @Tags Practice
// @Produce json
// @Param storyId query string false "Story ID"
// @Success 200 {object} response.Envelope
// @Router /practice-links [get]
func (h *PracticeLinkHandler) List(c *gin.Context) {
	links, err := h.service.List(c.Request.Context(), c.Query("storyId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, links, nil)
}

// Create godoc
// @Summary Share practice link
// @Tags Practice
// @Accept json
// @Produce json
// @Param payload body service.PracticeLinkRequest true "Link payload"
// @Success 201 {object} response.Envelope
// @Router /practice-links [post]
func (h *PracticeLinkHandler) Create(c *gin.Context) {
	var req service.PracticeLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid practice link payload"))
		return
	}
	link, err := h.service.Create(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, link)
}

// Delete godoc
// @Summary Delete practice link
// @Tags Practice
// @Param id path string true "Link ID"
// @Success 204
// @Router /practice-links/{id} [delete]
func (h *PracticeLinkHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
