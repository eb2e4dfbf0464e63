package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dhruvina99/sevarthi-api/internal/dto"
	"github.com/Dhruvina99/sevarthi-api/internal/middleware"
	"github.com/Dhruvina99/sevarthi-api/pkg/response"
)

type statsService interface {
	Dashboard(ctx context.Context) (*dto.DashboardStats, bool, error)
	Performance(ctx context.Context) (*dto.PerformanceStats, bool, error)
}

// StatsHandler serves dashboard and performance statistics.
type StatsHandler struct {
	service statsService
}

// NewStatsHandler constructs the handler.
func NewStatsHandler(svc statsService) *StatsHandler {
	return &StatsHandler{service: svc}
}

// Dashboard godoc
// @Summary Dashboard statistics
// @Description Member, show and active notification counts plus attendance rate over the recent window
// @Tags Stats
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /stats/dashboard [get]
func (h *StatsHandler) Dashboard(c *gin.Context) {
	stats, hit, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, stats, nil, middleware.ExtractMeta(c))
}

// Performance godoc
// @Summary Performance statistics
// @Description Average attendance and top/low performers
// @Tags Stats
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /stats/performance [get]
func (h *StatsHandler) Performance(c *gin.Context) {
	stats, hit, err := h.service.Performance(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, stats, nil, middleware.ExtractMeta(c))
}
