package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Dhruvina99/sevarthi-api/internal/dto"
	"github.com/Dhruvina99/sevarthi-api/internal/models"
	appErrors "github.com/Dhruvina99/sevarthi-api/pkg/errors"
)

const (
	statsCachePattern      = "stats:*"
	statsDashboardCacheKey = "stats:dashboard"
	statsPerformanceKey    = "stats:performance"
)

type statsMemberReader interface {
	List(ctx context.Context, filter models.MemberFilter) ([]models.Member, error)
	Count(ctx context.Context) (int, error)
}

type statsAttendanceReader interface {
	List(ctx context.Context) ([]models.AttendanceRecord, error)
}

type statsShowCounter interface {
	Count(ctx context.Context) (int, error)
}

type statsNotificationCounter interface {
	CountActive(ctx context.Context) (int, error)
}

// StatsServiceConfig tunes statistics behaviour.
type StatsServiceConfig struct {
	CacheTTL      time.Duration
	RecentWindow  time.Duration
	PerformerSize int
}

// StatsServiceParams groups constructor dependencies.
type StatsServiceParams struct {
	Members       statsMemberReader
	Attendance    statsAttendanceReader
	Shows         statsShowCounter
	Notifications statsNotificationCounter
	Cache         *CacheService
	Logger        *zap.Logger
	Config        StatsServiceConfig
}

// StatsService computes dashboard and performance statistics from full snapshots.
type StatsService struct {
	members       statsMemberReader
	attendance    statsAttendanceReader
	shows         statsShowCounter
	notifications statsNotificationCounter
	cache         *CacheService
	logger        *zap.Logger
	now           func() time.Time
	cfg           StatsServiceConfig
}

// NewStatsService constructs a StatsService with defaults applied.
func NewStatsService(params StatsServiceParams) *StatsService {
	cfg := params.Config
	if cfg.RecentWindow <= 0 {
		cfg.RecentWindow = 7 * 24 * time.Hour
	}
	if cfg.PerformerSize <= 0 {
		cfg.PerformerSize = 3
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{
		members:       params.Members,
		attendance:    params.Attendance,
		shows:         params.Shows,
		notifications: params.Notifications,
		cache:         params.Cache,
		logger:        logger,
		now:           time.Now,
		cfg:           cfg,
	}
}

// Dashboard returns headline counts and the recent attendance rate. The bool reports a cache hit.
func (s *StatsService) Dashboard(ctx context.Context) (*dto.DashboardStats, bool, error) {
	var cached dto.DashboardStats
	if s.readCache(ctx, statsDashboardCacheKey, &cached) {
		return &cached, true, nil
	}

	totalMembers, err := s.members.Count(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count members")
	}
	totalShows, err := s.shows.Count(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count shows")
	}
	activeNotifications, err := s.notifications.CountActive(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count notifications")
	}
	records, err := s.attendance.List(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}

	stats := &dto.DashboardStats{
		TotalMembers:        totalMembers,
		TotalShows:          totalShows,
		RecentAttendance:    RecentAttendance(records, s.now(), s.cfg.RecentWindow),
		ActiveNotifications: activeNotifications,
	}
	s.writeCache(ctx, statsDashboardCacheKey, stats)
	return stats, false, nil
}

// Performance ranks members by attendance percentage.
func (s *StatsService) Performance(ctx context.Context) (*dto.PerformanceStats, bool, error) {
	var cached dto.PerformanceStats
	if s.readCache(ctx, statsPerformanceKey, &cached) {
		return &cached, true, nil
	}

	members, err := s.members.List(ctx, models.MemberFilter{})
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load members")
	}
	records, err := s.attendance.List(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}

	performers := MemberPercentages(members, records)
	top, low := RankPerformers(performers, s.cfg.PerformerSize)
	stats := &dto.PerformanceStats{
		TotalMembers:      len(members),
		AverageAttendance: AverageAttendance(performers),
		TopPerformers:     top,
		LowPerformers:     low,
	}
	s.writeCache(ctx, statsPerformanceKey, stats)
	return stats, false, nil
}

// Invalidate drops cached statistics after attendance or membership changes.
func (s *StatsService) Invalidate(ctx context.Context) {
	if s == nil || s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, statsCachePattern); err != nil {
		s.logger.Warn("stats cache invalidation failed", zap.Error(err))
	}
}

func (s *StatsService) readCache(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		return false
	}
	return hit
}

func (s *StatsService) writeCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("stats cache write failed", zap.String("key", key), zap.Error(err))
	}
}
