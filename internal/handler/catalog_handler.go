package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dhruvina99/sevarthi-api/internal/service"
	"github.com/Dhruvina99/sevarthi-api/pkg/response"
)

// RoleHandler handles troupe role endpoints.
type RoleHandler struct {
	service *service.RoleService
}

// NewRoleHandler constructs a role handler.
func NewRoleHandler(svc *service.RoleService) *RoleHandler {
	return &RoleHandler{service: svc}
}

// List godoc
// @Summary List roles
// @Tags Roles
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /roles [get]
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roles, nil)
}

// Create godoc
// @Summary Create role
// @Tags Roles
// @Accept json
// @Produce json
// @Param payload body service.RoleRequest true "Role payload"
// @Success 201 {object} response.Envelope
// @Router /roles [post]
func (h *RoleHandler) Create(c *gin.Context) {
	var req service.RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid role payload"))
		return
	}
	role, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, role)
}

// Update godoc
// @Summary Update role
// @Tags Roles
// @Accept json
// @Produce json
// @Param id path string true "Role ID"
// @Param payload body service.RoleRequest true "Role payload"
// @Success 200 {object} response.Envelope
// @Router /roles/{id} [put]
func (h *RoleHandler) Update(c *gin.Context) {
	var req service.RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid role payload"))
		return
	}
	role, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, role, nil)
}

// Delete godoc
// @Summary Delete role
// @Tags Roles
// @Param id path string true "Role ID"
// @Success 204
// @Router /roles/{id} [delete]
func (h *RoleHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ShowHandler handles show endpoints.
type ShowHandler struct {
	service *service.ShowService
}

// NewShowHandler constructs a show handler.
func NewShowHandler(svc *service.ShowService) *ShowHandler {
	return &ShowHandler{service: svc}
}

// List godoc
// @Summary List shows
// @Tags Shows
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /shows [get]
func (h *ShowHandler) List(c *gin.Context) {
	shows, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, shows, nil)
}

// Create godoc
// @Summary Schedule show
// @Tags Shows
// @Accept json
// @Produce json
// @Param payload body service.ShowRequest true "Show payload"
// @Success 201 {object} response.Envelope
// @Router /shows [post]
func (h *ShowHandler) Create(c *gin.Context) {
	var req service.ShowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid show payload"))
		return
	}
	show, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, show)
}

// Update godoc
// @Summary Update show
// @Tags Shows
// @Accept json
// @Produce json
// @Param id path string true "Show ID"
// @Param payload body service.ShowRequest true "Show payload"
// @Success 200 {object} response.Envelope
// @Router /shows/{id} [put]
func (h *ShowHandler) Update(c *gin.Context) {
	var req service.ShowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid show payload"))
		return
	}
	show, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, show, nil)
}

// Delete godoc
// @Summary Delete show
// @Tags Shows
// @Param id path string true "Show ID"
// @Success 204
// @Router /shows/{id} [delete]
func (h *ShowHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
