package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/Dhruvina99/sevarthi-api/internal/dto"
	"github.com/Dhruvina99/sevarthi-api/pkg/response"
)

type exportService interface {
	ExportAttendance(ctx context.Context, req dto.AttendanceExportRequest) (*dto.ExportFile, error)
	ExportPoll(ctx context.Context, req dto.PollExportRequest) (*dto.ExportFile, error)
}

// ExportHandler streams rendered reports.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(svc exportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Attendance godoc
// @Summary Export attendance report
// @Description Renders filtered attendance as excel, pdf, image or csv
// @Tags Reports
// @Accept json
// @Produce application/octet-stream
// @Param payload body dto.AttendanceExportRequest true "Format and filters"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /reports/attendance/export [post]
func (h *ExportHandler) Attendance(c *gin.Context) {
	var req dto.AttendanceExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid export payload"))
		return
	}
	file, err := h.service.ExportAttendance(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}

// Poll godoc
// @Summary Export poll results
// @Tags Polls
// @Accept json
// @Produce application/octet-stream
// @Param payload body dto.PollExportRequest true "Poll and format"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /polls/export [post]
func (h *ExportHandler) Poll(c *gin.Context) {
	var req dto.PollExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid export payload"))
		return
	}
	file, err := h.service.ExportPoll(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}
