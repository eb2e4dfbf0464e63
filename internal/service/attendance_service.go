package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Dhruvina99/sevarthi-api/internal/dto"
	"github.com/Dhruvina99/sevarthi-api/internal/models"
	appErrors "github.com/Dhruvina99/sevarthi-api/pkg/errors"
)

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type attendanceRepository interface {
	List(ctx context.Context) ([]models.AttendanceRecord, error)
	ListByMember(ctx context.Context, memberID string) ([]models.AttendanceRecord, error)
	FindByID(ctx context.Context, id string) (*models.AttendanceRecord, error)
	Create(ctx context.Context, record *models.AttendanceRecord) error
	Update(ctx context.Context, record *models.AttendanceRecord) error
	Delete(ctx context.Context, id string) error
}

type attendanceMemberReader interface {
	List(ctx context.Context, filter models.MemberFilter) ([]models.Member, error)
	FindByID(ctx context.Context, id string) (*models.Member, error)
}

type attendanceStoryReader interface {
	List(ctx context.Context, includeInactive bool) ([]models.Story, error)
}

type attendanceRoleReader interface {
	List(ctx context.Context) ([]models.Role, error)
}

// AttendanceRequest is the payload for logging or editing an attendance record.
// MemberID defaults to the caller; only admins may log for someone else.
type AttendanceRequest struct {
	MemberID         string   `json:"memberId" validate:"omitempty"`
	Date             string   `json:"date" validate:"required"`
	Status           string   `json:"status" validate:"required,oneof=present absent replaced"`
	StoryID          *string  `json:"storyId"`
	RoleID           *string  `json:"roleId"`
	CharacterIDs     []string `json:"characterIds" validate:"omitempty,dive,required"`
	TimeIn           *string  `json:"timeIn"`
	TimeOut          *string  `json:"timeOut"`
	Reason           *string  `json:"reason" validate:"omitempty,max=1000"`
	ReplacedMemberID *string  `json:"replacedMemberId"`
	EventType        *string  `json:"eventType" validate:"omitempty,max=50"`
}

// MemberAttendance bundles a member's joined history with its summary.
type MemberAttendance struct {
	Records []models.AttendanceWithRelations `json:"records"`
	Summary dto.MemberAttendanceSummary      `json:"summary"`
}

// AttendanceServiceParams groups constructor dependencies.
type AttendanceServiceParams struct {
	Repo      attendanceRepository
	Members   attendanceMemberReader
	Stories   attendanceStoryReader
	Roles     attendanceRoleReader
	Stats     statsInvalidator
	Metrics   *MetricsService
	Validator *validator.Validate
	Logger    *zap.Logger
}

// AttendanceService logs attendance and serves joined, filtered views of it.
type AttendanceService struct {
	repo      attendanceRepository
	members   attendanceMemberReader
	stories   attendanceStoryReader
	roles     attendanceRoleReader
	stats     statsInvalidator
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs an AttendanceService.
func NewAttendanceService(params AttendanceServiceParams) *AttendanceService {
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{
		repo:      params.Repo,
		members:   params.Members,
		stories:   params.Stories,
		roles:     params.Roles,
		stats:     invalidatorOrNop(params.Stats),
		metrics:   params.Metrics,
		validator: validate,
		logger:    logger,
	}
}

// List joins the full attendance snapshot with its relations and applies the filter.
func (s *AttendanceService) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceWithRelations, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}
	joined, err := s.join(ctx, records)
	if err != nil {
		return nil, err
	}
	return FilterAttendance(joined, filter), nil
}

// ForMember returns one member's joined history plus status counts.
func (s *AttendanceService) ForMember(ctx context.Context, memberID string) (*MemberAttendance, error) {
	if _, err := s.members.FindByID(ctx, memberID); err != nil {
		return nil, lookupError(err, "member")
	}
	records, err := s.repo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}
	joined, err := s.join(ctx, records)
	if err != nil {
		return nil, err
	}
	return &MemberAttendance{Records: joined, Summary: SummariseMember(memberID, records)}, nil
}

// Create logs attendance for the caller, or for any member when the caller is an admin.
func (s *AttendanceService) Create(ctx context.Context, actor *models.JWTClaims, req AttendanceRequest) (*models.AttendanceRecord, error) {
	if actor == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "authentication required")
	}
	memberID := strings.TrimSpace(req.MemberID)
	if memberID == "" {
		memberID = actor.MemberID
	}
	if memberID != actor.MemberID && !actor.IsAdmin() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "cannot log attendance for another member")
	}
	if _, err := s.members.FindByID(ctx, memberID); err != nil {
		return nil, lookupError(err, "member")
	}

	record := &models.AttendanceRecord{MemberID: memberID}
	if err := s.apply(ctx, record, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to log attendance")
	}
	s.metrics.RecordAttendance(string(record.Status))
	s.stats.Invalidate(ctx)
	s.logger.Info("attendance logged",
		zap.String("attendance_id", record.ID),
		zap.String("member_id", record.MemberID),
		zap.String("status", string(record.Status)),
	)
	return record, nil
}

// Update edits an attendance record owned by the caller, or any record for admins.
func (s *AttendanceService) Update(ctx context.Context, actor *models.JWTClaims, id string, req AttendanceRequest) (*models.AttendanceRecord, error) {
	record, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, record, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, writeError(err, "attendance record", "update")
	}
	s.stats.Invalidate(ctx)
	return record, nil
}

// Delete removes an attendance record owned by the caller, or any record for admins.
func (s *AttendanceService) Delete(ctx context.Context, actor *models.JWTClaims, id string) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "attendance record", "delete")
	}
	s.stats.Invalidate(ctx)
	return nil
}

func (s *AttendanceService) owned(ctx context.Context, actor *models.JWTClaims, id string) (*models.AttendanceRecord, error) {
	if actor == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "authentication required")
	}
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "attendance record")
	}
	if record.MemberID != actor.MemberID && !actor.IsAdmin() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "cannot modify another member's attendance")
	}
	return record, nil
}

// apply validates req and copies it onto record. Absent records may carry a reason and
// replaced records must name the member who was replaced; every other combination is rejected.
func (s *AttendanceService) apply(ctx context.Context, record *models.AttendanceRecord, req AttendanceRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return validationError(err, "invalid attendance payload")
	}
	date, err := time.Parse(dateLayout, strings.TrimSpace(req.Date))
	if err != nil {
		return validationError(err, "date must be YYYY-MM-DD")
	}
	status := models.AttendanceStatus(req.Status)

	timeIn := normalizeOptional(req.TimeIn)
	timeOut := normalizeOptional(req.TimeOut)
	for _, clock := range []*string{timeIn, timeOut} {
		if clock != nil && !clockPattern.MatchString(*clock) {
			return appErrors.Clone(appErrors.ErrValidation, "timeIn and timeOut must be HH:MM")
		}
	}
	if timeIn != nil && timeOut != nil && *timeOut < *timeIn {
		return appErrors.Clone(appErrors.ErrValidation, "timeOut cannot be before timeIn")
	}

	reason := normalizeOptional(req.Reason)
	replaced := normalizeOptional(req.ReplacedMemberID)
	switch status {
	case models.AttendanceStatusAbsent:
		if replaced != nil {
			return appErrors.Clone(appErrors.ErrValidation, "replacedMemberId is only allowed for replaced status")
		}
	case models.AttendanceStatusReplaced:
		if reason != nil {
			return appErrors.Clone(appErrors.ErrValidation, "reason is only allowed for absent status")
		}
		if replaced == nil {
			return appErrors.Clone(appErrors.ErrValidation, "replacedMemberId is required for replaced status")
		}
		if *replaced == record.MemberID {
			return appErrors.Clone(appErrors.ErrValidation, "a member cannot replace themselves")
		}
		if _, err := s.members.FindByID(ctx, *replaced); err != nil {
			return lookupError(err, "replaced member")
		}
	default:
		if reason != nil || replaced != nil {
			return appErrors.Clone(appErrors.ErrValidation, "present attendance cannot carry reason or replacedMemberId")
		}
	}

	characters := pq.StringArray{}
	for _, id := range req.CharacterIDs {
		characters = append(characters, strings.TrimSpace(id))
	}

	record.Date = date
	record.Status = status
	record.StoryID = normalizeOptional(req.StoryID)
	record.RoleID = normalizeOptional(req.RoleID)
	record.CharacterIDs = characters
	record.TimeIn = timeIn
	record.TimeOut = timeOut
	record.Reason = reason
	record.ReplacedMemberID = replaced
	record.EventType = normalizeOptional(req.EventType)
	return nil
}

func (s *AttendanceService) join(ctx context.Context, records []models.AttendanceRecord) ([]models.AttendanceWithRelations, error) {
	members, err := s.members.List(ctx, models.MemberFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load members")
	}
	stories, err := s.stories.List(ctx, true)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load stories")
	}
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roles")
	}
	return JoinAttendance(records, members, stories, roles), nil
}
