package dto

import "github.com/Dhruvina99/sevarthi-api/internal/models"

// ExportFormat selects the rendered artefact type.
type ExportFormat string

const (
	ExportFormatExcel ExportFormat = "excel"
	ExportFormatPDF   ExportFormat = "pdf"
	ExportFormatImage ExportFormat = "image"
	ExportFormatCSV   ExportFormat = "csv"
)

// AttendanceExportRequest captures POST /reports/attendance/export payload.
type AttendanceExportRequest struct {
	Format  ExportFormat            `json:"format"`
	Filters models.AttendanceFilter `json:"filters"`
}

// PollExportRequest captures POST /polls/export payload.
type PollExportRequest struct {
	PollID string       `json:"pollId"`
	Format ExportFormat `json:"format"`
}

// ExportFile is a rendered artefact ready to be streamed.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}
