package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dhruvina99/sevarthi-api/internal/dto"
	"github.com/Dhruvina99/sevarthi-api/internal/middleware"
	"github.com/Dhruvina99/sevarthi-api/internal/models"
	"github.com/Dhruvina99/sevarthi-api/internal/service"
	appErrors "github.com/Dhruvina99/sevarthi-api/pkg/errors"
)

type responseEnvelope struct {
	Data  json.RawMessage        `json:"data"`
	Error map[string]interface{} `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func withClaims(claims *models.JWTClaims) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, claims)
		c.Next()
	}
}

func jsonRequest(method, path string, body interface{}) *http.Request {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

type fakeStatsSrv struct {
	dashboard *dto.DashboardStats
	hit       bool
	err       error
}

func (f *fakeStatsSrv) Dashboard(context.Context) (*dto.DashboardStats, bool, error) {
	return f.dashboard, f.hit, f.err
}

func (f *fakeStatsSrv) Performance(context.Context) (*dto.PerformanceStats, bool, error) {
	return &dto.PerformanceStats{TotalMembers: 1, AverageAttendance: 80}, false, f.err
}

func TestStatsHandlerDashboardReportsCacheHit(t *testing.T) {
	handler := NewStatsHandler(&fakeStatsSrv{dashboard: &dto.DashboardStats{TotalMembers: 12, RecentAttendance: 83}, hit: true})
	router := gin.New()
	router.Use(middleware.WithResponseMeta())
	router.GET("/stats/dashboard", handler.Dashboard)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats/dashboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decode(t, rec)
	assert.Equal(t, true, envelope.Meta["cache_hit"])
	assert.JSONEq(t, `{"totalMembers":12,"totalShows":0,"recentAttendance":83,"activeNotifications":0}`, string(envelope.Data))
}

func TestStatsHandlerPropagatesErrors(t *testing.T) {
	handler := NewStatsHandler(&fakeStatsSrv{err: appErrors.Clone(appErrors.ErrInternal, "boom")})
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/stats/performance", nil)

	handler.Performance(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", decode(t, rec).Error["code"])
}

type fakeExportSrv struct {
	file    *dto.ExportFile
	err     error
	lastAtt dto.AttendanceExportRequest
}

func (f *fakeExportSrv) ExportAttendance(_ context.Context, req dto.AttendanceExportRequest) (*dto.ExportFile, error) {
	f.lastAtt = req
	return f.file, f.err
}

func (f *fakeExportSrv) ExportPoll(context.Context, dto.PollExportRequest) (*dto.ExportFile, error) {
	return f.file, f.err
}

func TestExportHandlerStreamsAttachment(t *testing.T) {
	srv := &fakeExportSrv{file: &dto.ExportFile{Filename: "attendance-report-2024-03-15.pdf", ContentType: "application/pdf", Payload: []byte("%PDF-1.3")}}
	handler := NewExportHandler(srv)
	router := gin.New()
	router.POST("/reports/attendance/export", handler.Attendance)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/reports/attendance/export", map[string]interface{}{
		"format":  "pdf",
		"filters": map[string]string{"statusFilter": "absent"},
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="attendance-report-2024-03-15.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.3", rec.Body.String())
	assert.Equal(t, "absent", srv.lastAtt.Filters.StatusFilter)
}

func TestExportHandlerUnsupportedFormat(t *testing.T) {
	handler := NewExportHandler(&fakeExportSrv{err: appErrors.Clone(appErrors.ErrUnsupportedFormat, "unsupported export format \"docx\"")})
	router := gin.New()
	router.POST("/polls/export", handler.Poll)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/polls/export", map[string]string{"pollId": "p1", "format": "docx"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "UNSUPPORTED_FORMAT", decode(t, rec).Error["code"])
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
}

type fakeAttendanceSrv struct {
	filter models.AttendanceFilter
	actor  *models.JWTClaims
	err    error
}

func (f *fakeAttendanceSrv) List(_ context.Context, filter models.AttendanceFilter) ([]models.AttendanceWithRelations, error) {
	f.filter = filter
	return []models.AttendanceWithRelations{{AttendanceRecord: models.AttendanceRecord{ID: "a1"}}}, f.err
}

func (f *fakeAttendanceSrv) Create(_ context.Context, actor *models.JWTClaims, req service.AttendanceRequest) (*models.AttendanceRecord, error) {
	f.actor = actor
	if f.err != nil {
		return nil, f.err
	}
	return &models.AttendanceRecord{ID: "a2", MemberID: actor.MemberID, Status: models.AttendanceStatus(req.Status)}, nil
}

func (f *fakeAttendanceSrv) Update(context.Context, *models.JWTClaims, string, service.AttendanceRequest) (*models.AttendanceRecord, error) {
	return nil, f.err
}

func (f *fakeAttendanceSrv) Delete(_ context.Context, actor *models.JWTClaims, _ string) error {
	f.actor = actor
	return f.err
}

func TestAttendanceHandlerListBindsFilters(t *testing.T) {
	srv := &fakeAttendanceSrv{}
	router := gin.New()
	router.GET("/attendance", NewAttendanceHandler(srv).List)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/attendance?dateFrom=2024-03-01&statusFilter=all&memberFilter=m1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.AttendanceFilter{DateFrom: "2024-03-01", StatusFilter: "all", MemberFilter: "m1"}, srv.filter)
	assert.Equal(t, float64(1), decode(t, rec).Meta["count"])
}

func TestAttendanceHandlerCreatePassesCaller(t *testing.T) {
	srv := &fakeAttendanceSrv{}
	router := gin.New()
	router.POST("/attendance", withClaims(&models.JWTClaims{MemberID: "m1", Role: models.RoleMember}), NewAttendanceHandler(srv).Create)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/attendance", map[string]string{"date": "2024-03-01", "status": "present"}))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, srv.actor)
	assert.Equal(t, "m1", srv.actor.MemberID)
}

func TestAttendanceHandlerRejectsMalformedJSON(t *testing.T) {
	router := gin.New()
	router.POST("/attendance", NewAttendanceHandler(&fakeAttendanceSrv{}).Create)

	req := httptest.NewRequest(http.MethodPost, "/attendance", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, rec).Error["code"])
}

func TestAttendanceHandlerDeleteForbidden(t *testing.T) {
	srv := &fakeAttendanceSrv{err: appErrors.Clone(appErrors.ErrForbidden, "cannot modify another member's attendance")}
	router := gin.New()
	router.DELETE("/attendance/:id", withClaims(&models.JWTClaims{MemberID: "m2"}), NewAttendanceHandler(srv).Delete)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/attendance/a1", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

type fakePollSrv struct {
	lastPoll string
	lastReq  service.PollResponseRequest
}

func (f *fakePollSrv) Get(_ context.Context, id string) (*service.PollWithTally, error) {
	if id == "missing" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "poll not found")
	}
	return &service.PollWithTally{Poll: models.Poll{ID: id}}, nil
}

func (f *fakePollSrv) Respond(_ context.Context, actor *models.JWTClaims, pollID string, req service.PollResponseRequest) (*models.PollResponse, error) {
	f.lastPoll = pollID
	f.lastReq = req
	return &models.PollResponse{PollID: pollID, MemberID: actor.MemberID, SelectedOption: *req.SelectedOption}, nil
}

func (f *fakePollSrv) Responses(context.Context, string) (*models.Poll, []models.PollResponseWithMember, error) {
	return &models.Poll{ID: "p1"}, []models.PollResponseWithMember{}, nil
}

func TestPollHandlerRespond(t *testing.T) {
	srv := &fakePollSrv{}
	router := gin.New()
	router.POST("/polls/:id/responses", withClaims(&models.JWTClaims{MemberID: "m1"}), NewPollHandler(srv).Respond)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/polls/p1/responses", map[string]int{"selectedOption": 0}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "p1", srv.lastPoll)
	require.NotNil(t, srv.lastReq.SelectedOption)
	assert.Equal(t, 0, *srv.lastReq.SelectedOption)
}

func TestPollHandlerGetNotFound(t *testing.T) {
	router := gin.New()
	router.GET("/polls/:id", NewPollHandler(&fakePollSrv{}).Get)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/polls/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type fakeMemberAttendance struct{}

func (fakeMemberAttendance) ForMember(_ context.Context, memberID string) (*service.MemberAttendance, error) {
	return &service.MemberAttendance{Records: []models.AttendanceWithRelations{}, Summary: dto.MemberAttendanceSummary{MemberID: memberID, Percentage: 100}}, nil
}

func TestMemberHandlerAttendance(t *testing.T) {
	router := gin.New()
	router.GET("/members/:id/attendance", NewMemberHandler(nil, fakeMemberAttendance{}).Attendance)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/members/m1/attendance", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(decode(t, rec).Data), `"percentage":100`)
}

func TestAuthHandlerMeRequiresClaims(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)

	NewAuthHandler(nil).Me(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMetricsHandlerReady(t *testing.T) {
	healthy := NewMetricsHandler(nil, map[string]Pinger{
		"database": PingFunc(func(context.Context) error { return nil }),
	})
	failing := NewMetricsHandler(nil, map[string]Pinger{
		"database": PingFunc(func(context.Context) error { return nil }),
		"redis":    PingFunc(func(context.Context) error { return errors.New("connection refused") }),
	})

	router := gin.New()
	router.GET("/ready", healthy.Ready)
	router.GET("/ready-failing", failing.Ready)
	router.GET("/metrics", healthy.Prometheus)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready-failing", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
