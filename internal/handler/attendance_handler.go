package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dhruvina99/sevarthi-api/internal/middleware"
	"github.com/Dhruvina99/sevarthi-api/internal/models"
	"github.com/Dhruvina99/sevarthi-api/internal/service"
	"github.com/Dhruvina99/sevarthi-api/pkg/response"
)

type attendanceService interface {
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceWithRelations, error)
	Create(ctx context.Context, actor *models.JWTClaims, req service.AttendanceRequest) (*models.AttendanceRecord, error)
	Update(ctx context.Context, actor *models.JWTClaims, id string, req service.AttendanceRequest) (*models.AttendanceRecord, error)
	Delete(ctx context.Context, actor *models.JWTClaims, id string) error
}

// AttendanceHandler exposes attendance logging and the joined attendance view.
type AttendanceHandler struct {
	service attendanceService
}

// NewAttendanceHandler constructs an attendance handler.
func NewAttendanceHandler(svc attendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: svc}
}

// List godoc
// @Summary List attendance with relations
// @Description Filters are AND-combined; "all" or empty disables a filter. Dates are inclusive YYYY-MM-DD.
// @Tags Attendance
// @Produce json
// @Param dateFrom query string false "From date"
// @Param dateTo query string false "To date"
// @Param statusFilter query string false "present, absent, replaced or all"
// @Param storyFilter query string false "Story ID or all"
// @Param memberFilter query string false "Member ID or all"
// @Param eventFilter query string false "Event type or all"
// @Success 200 {object} response.Envelope
// @Router /attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	var filter models.AttendanceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, bindError(err, "invalid attendance filter"))
		return
	}
	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCount(c, len(items))
	response.JSON(c, http.StatusOK, items, nil, middleware.ExtractMeta(c))
}

// Create godoc
// @Summary Log attendance
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body service.AttendanceRequest true "Attendance payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /attendance [post]
func (h *AttendanceHandler) Create(c *gin.Context) {
	var req service.AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid attendance payload"))
		return
	}
	record, err := h.service.Create(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Update godoc
// @Summary Update attendance
// @Tags Attendance
// @Accept json
// @Produce json
// @Param id path string true "Attendance ID"
// @Param payload body service.AttendanceRequest true "Attendance payload"
// @Success 200 {object} response.Envelope
// @Router /attendance/{id} [put]
func (h *AttendanceHandler) Update(c *gin.Context) {
	var req service.AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid attendance payload"))
		return
	}
	record, err := h.service.Update(c.Request.Context(), claimsFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Delete godoc
// @Summary Delete attendance
// @Tags Attendance
// @Param id path string true "Attendance ID"
// @Success 204
// @Router /attendance/{id} [delete]
func (h *AttendanceHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), claimsFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
