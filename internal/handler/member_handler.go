package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Dhruvina99/sevarthi-api/internal/middleware"
	"github.com/Dhruvina99/sevarthi-api/internal/models"
	"github.com/Dhruvina99/sevarthi-api/internal/service"
	"github.com/Dhruvina99/sevarthi-api/pkg/response"
)

type memberAttendanceService interface {
	ForMember(ctx context.Context, memberID string) (*service.MemberAttendance, error)
}

// MemberHandler handles member endpoints.
type MemberHandler struct {
	service    *service.MemberService
	attendance memberAttendanceService
}

// NewMemberHandler constructs a member handler.
func NewMemberHandler(svc *service.MemberService, attendance memberAttendanceService) *MemberHandler {
	return &MemberHandler{service: svc, attendance: attendance}
}

// List godoc
// @Summary List members
// @Tags Members
// @Produce json
// @Param search query string false "Search by name, MHT ID, email or mobile"
// @Param isAdmin query bool false "Filter by admin flag"
// @Success 200 {object} response.Envelope
// @Router /members [get]
func (h *MemberHandler) List(c *gin.Context) {
	filter := models.MemberFilter{Search: strings.TrimSpace(c.Query("search"))}
	if raw := strings.TrimSpace(c.Query("isAdmin")); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			filter.IsAdmin = &value
		}
	}
	members, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCount(c, len(members))
	response.JSON(c, http.StatusOK, members, nil, middleware.ExtractMeta(c))
}

// Get godoc
// @Summary Get member by id
// @Tags Members
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /members/{id} [get]
func (h *MemberHandler) Get(c *gin.Context) {
	member, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, member, nil)
}

// Create godoc
// @Summary Register member
// @Tags Members
// @Accept json
// @Produce json
// @Param payload body service.CreateMemberRequest true "Member payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /members [post]
func (h *MemberHandler) Create(c *gin.Context) {
	var req service.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid member payload"))
		return
	}
	member, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, member)
}

// Update godoc
// @Summary Update member
// @Tags Members
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param payload body service.UpdateMemberRequest true "Member payload"
// @Success 200 {object} response.Envelope
// @Router /members/{id} [put]
func (h *MemberHandler) Update(c *gin.Context) {
	var req service.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid member payload"))
		return
	}
	member, err := h.service.Update(c.Request.Context(), claimsFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, member, nil)
}

// Delete godoc
// @Summary Delete member
// @Description Attendance history is kept and resolves to an unknown member
// @Tags Members
// @Param id path string true "Member ID"
// @Success 204
// @Router /members/{id} [delete]
func (h *MemberHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Attendance godoc
// @Summary Member attendance history
// @Tags Members
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Envelope
// @Router /members/{id}/attendance [get]
func (h *MemberHandler) Attendance(c *gin.Context) {
	history, err := h.attendance.ForMember(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, history, nil)
}
