package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/eduflow-api/internal/models"
	appErrors "github.com/noah-isme/eduflow-api/pkg/errors"
)

const dashboardStatsCacheKey = "dashboard:stats"

type studentCounter interface {
	Count(ctx context.Context) (int, error)
}

type teacherCounter interface {
	Count(ctx context.Context) (int, error)
}

type departmentCounter interface {
	Count(ctx context.Context) (int, error)
}

type attendanceTotalsRepository interface {
	TotalsForDate(ctx context.Context, date time.Time) (*models.AttendanceTotals, error)
}

// DashboardService aggregates the landing page statistics. Results are
// cached in Redis with a short TTL since every role hits this endpoint on
// login.
type DashboardService struct {
	students    studentCounter
	teachers    teacherCounter
	departments departmentCounter
	attendance  attendanceTotalsRepository
	cache       *CacheService
	cacheTTL    time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(students studentCounter, teachers teacherCounter, departments departmentCounter, attendance attendanceTotalsRepository, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		students:    students,
		teachers:    teachers,
		departments: departments,
		attendance:  attendance,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Stats returns the dashboard aggregate, serving from cache when possible.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var cached models.DashboardStats
	if hit, err := s.cache.Get(ctx, dashboardStatsCacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	totalStudents, err := s.students.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count students")
	}
	totalTeachers, err := s.teachers.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count teachers")
	}
	totalDepartments, err := s.departments.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count departments")
	}

	today := s.now().Truncate(24 * time.Hour)
	totals, err := s.attendance.TotalsForDate(ctx, today)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate today's attendance")
	}

	stats := &models.DashboardStats{
		TotalStudents:    totalStudents,
		TotalTeachers:    totalTeachers,
		TotalDepartments: totalDepartments,
		TodayAttendance: models.TodayAttendance{
			Present:    totals.Present,
			Total:      totals.Total,
			Percentage: models.AttendancePercentage(totals.Present, totals.Total),
		},
	}

	if err := s.cache.Set(ctx, dashboardStatsCacheKey, stats, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache dashboard stats", zap.Error(err))
	}

	return stats, nil
}

// InvalidateStats drops the cached dashboard aggregate. Directory writers
// call this after mutations.
func (s *DashboardService) InvalidateStats(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, dashboardStatsCacheKey); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}
}
