package service

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Dhruvina99/sevarthi-api/internal/dto"
	"github.com/Dhruvina99/sevarthi-api/internal/models"
	appErrors "github.com/Dhruvina99/sevarthi-api/pkg/errors"
	"github.com/Dhruvina99/sevarthi-api/pkg/export"
)

var (
	attendanceExportHeaders = []string{"Date", "Member", "Story", "Role", "Status", "Replaced By"}
	attendanceColumnBudgets = []int{12, 28, 24, 20, 10, 28}
	pollExportHeaders       = []string{"Member", "Selected Option", "Response Time"}
	pollColumnBudgets       = []int{40, 60, 30}
)

type attendanceExportSource interface {
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceWithRelations, error)
}

type pollExportSource interface {
	Responses(ctx context.Context, pollID string) (*models.Poll, []models.PollResponseWithMember, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	Location *time.Location
}

// ExportServiceParams groups constructor dependencies.
type ExportServiceParams struct {
	Attendance attendanceExportSource
	Polls      pollExportSource
	Renderers  map[dto.ExportFormat]export.Renderer
	Metrics    *MetricsService
	Logger     *zap.Logger
	Config     ExportConfig
}

// ExportService turns filtered attendance and poll responses into downloadable reports.
type ExportService struct {
	attendance attendanceExportSource
	polls      pollExportSource
	renderers  map[dto.ExportFormat]export.Renderer
	metrics    *MetricsService
	logger     *zap.Logger
	now        func() time.Time
	cfg        ExportConfig
}

// DefaultRenderers wires every supported format to its renderer.
func DefaultRenderers(pdfRowsPerPage, imageMaxRows int) map[dto.ExportFormat]export.Renderer {
	return map[dto.ExportFormat]export.Renderer{
		dto.ExportFormatExcel: export.NewExcelExporter(),
		dto.ExportFormatPDF:   export.NewPDFExporter(pdfRowsPerPage),
		dto.ExportFormatImage: export.NewImageExporter(imageMaxRows),
		dto.ExportFormatCSV:   export.NewCSVExporter(),
	}
}

// NewExportService constructs an ExportService.
func NewExportService(params ExportServiceParams) *ExportService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	renderers := params.Renderers
	if renderers == nil {
		renderers = DefaultRenderers(0, 0)
	}
	cfg := params.Config
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &ExportService{
		attendance: params.Attendance,
		polls:      params.Polls,
		renderers:  renderers,
		metrics:    params.Metrics,
		logger:     logger,
		now:        time.Now,
		cfg:        cfg,
	}
}

// ExportAttendance renders the filtered, joined attendance in the requested format.
func (s *ExportService) ExportAttendance(ctx context.Context, req dto.AttendanceExportRequest) (*dto.ExportFile, error) {
	renderer, err := s.renderer(req.Format)
	if err != nil {
		return nil, err
	}
	items, err := s.attendance.List(ctx, req.Filters)
	if err != nil {
		return nil, err
	}
	return s.render(renderer, "attendance", req.Format, "attendance-report", s.attendanceDataset(items))
}

// ExportPoll renders a poll's responses and tally. A missing poll aborts before rendering.
func (s *ExportService) ExportPoll(ctx context.Context, req dto.PollExportRequest) (*dto.ExportFile, error) {
	renderer, err := s.renderer(req.Format)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.PollID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "pollId is required")
	}
	poll, responses, err := s.polls.Responses(ctx, req.PollID)
	if err != nil {
		return nil, err
	}
	return s.render(renderer, "poll", req.Format, "poll-report", s.pollDataset(*poll, responses))
}

func (s *ExportService) renderer(format dto.ExportFormat) (export.Renderer, error) {
	renderer, ok := s.renderers[dto.ExportFormat(strings.ToLower(strings.TrimSpace(string(format))))]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedFormat, fmt.Sprintf("unsupported export format %q", format))
	}
	return renderer, nil
}

func (s *ExportService) render(renderer export.Renderer, kind string, format dto.ExportFormat, prefix string, data export.Dataset) (*dto.ExportFile, error) {
	start := time.Now()
	var buf bytes.Buffer
	err := renderer.Render(&buf, data)
	s.metrics.ObserveExport(kind, renderer.Extension(), time.Since(start), err)
	if err != nil {
		s.logger.Error("report render failed", zap.String("kind", kind), zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}

	filename := fmt.Sprintf("%s-%s.%s", prefix, s.now().In(s.cfg.Location).Format(dateLayout), renderer.Extension())
	s.logger.Info("report exported",
		zap.String("kind", kind),
		zap.String("filename", filename),
		zap.Int("rows", len(data.Rows)),
		zap.Int("bytes", buf.Len()),
	)
	return &dto.ExportFile{Filename: filename, ContentType: renderer.ContentType(), Payload: buf.Bytes()}, nil
}

func (s *ExportService) attendanceDataset(items []models.AttendanceWithRelations) export.Dataset {
	counts := map[models.AttendanceStatus]int{}
	rows := make([]map[string]string, 0, len(items))
	for _, item := range items {
		counts[item.Status]++
		rows = append(rows, map[string]string{
			"Date":        calendarDate(item.Date),
			"Member":      memberName(item.Member),
			"Story":       storyName(item.Story),
			"Role":        roleName(item.Role),
			"Status":      string(item.Status),
			"Replaced By": optionalMemberName(item.ReplacedMember),
		})
	}

	return export.Dataset{
		Title:         "Attendance Report",
		GeneratedAt:   s.timestamp(),
		Headers:       attendanceExportHeaders,
		Rows:          rows,
		ColumnBudgets: attendanceColumnBudgets,
		Summary: []export.SummaryItem{
			{Label: "Records", Value: strconv.Itoa(len(items))},
			{Label: "Present", Value: strconv.Itoa(counts[models.AttendanceStatusPresent])},
			{Label: "Absent", Value: strconv.Itoa(counts[models.AttendanceStatusAbsent])},
			{Label: "Replaced", Value: strconv.Itoa(counts[models.AttendanceStatusReplaced])},
		},
	}
}

func (s *ExportService) pollDataset(poll models.Poll, responses []models.PollResponseWithMember) export.Dataset {
	plain := make([]models.PollResponse, 0, len(responses))
	rows := make([]map[string]string, 0, len(responses))
	for _, response := range responses {
		plain = append(plain, response.PollResponse)
		option := fmt.Sprintf("#%d", response.SelectedOption)
		if response.SelectedOption >= 0 && response.SelectedOption < len(poll.Options) {
			option = poll.Options[response.SelectedOption]
		}
		rows = append(rows, map[string]string{
			"Member":          memberName(response.Member),
			"Selected Option": option,
			"Response Time":   response.UpdatedAt.In(s.cfg.Location).Format("2006-01-02 15:04"),
		})
	}

	tally := TallyPoll(poll, plain)
	bars := make([]export.Bar, 0, len(tally.Options))
	for i, option := range tally.Options {
		bars = append(bars, export.Bar{Label: option, Count: tally.OptionCounts[i], Percentage: tally.Percentages[i]})
	}

	return export.Dataset{
		Title:         "Poll: " + poll.Question,
		GeneratedAt:   s.timestamp(),
		Headers:       pollExportHeaders,
		Rows:          rows,
		ColumnBudgets: pollColumnBudgets,
		Summary:       []export.SummaryItem{{Label: "Responses", Value: strconv.Itoa(tally.TotalResponses)}},
		Bars:          bars,
	}
}

func (s *ExportService) timestamp() string {
	return s.now().In(s.cfg.Location).Format("2006-01-02 15:04 MST")
}

func memberName(m *models.Member) string {
	if m == nil {
		return "Unknown"
	}
	return m.Name
}

func optionalMemberName(m *models.Member) string {
	if m == nil {
		return ""
	}
	return m.Name
}

func storyName(story *models.Story) string {
	if story == nil {
		return ""
	}
	return story.Name
}

func roleName(role *models.Role) string {
	if role == nil {
		return ""
	}
	return role.Name
}
