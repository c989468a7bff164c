package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/eduflow-api/internal/models"
	"github.com/noah-isme/eduflow-api/internal/scope"
	appErrors "github.com/noah-isme/eduflow-api/pkg/errors"
)

type attendanceRepository interface {
	List(ctx context.Context) ([]models.DepartmentAttendance, error)
}

// AttendanceService provides the department attendance feed with computed
// percentages.
type AttendanceService struct {
	repo   attendanceRepository
	logger *zap.Logger
}

// NewAttendanceService constructs an AttendanceService.
func NewAttendanceService(repo attendanceRepository, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, logger: logger}
}

// List returns attendance records visible to the actor. Non-admin actors
// with a department lock only see their own department's rollups.
func (s *AttendanceService) List(ctx context.Context, actor scope.Actor) ([]models.DepartmentAttendance, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list department attendance")
	}

	f := scope.Resolve(actor)
	visible := make([]models.DepartmentAttendance, 0, len(records))
	for _, record := range records {
		if f.Department != "" && record.DepartmentCode != f.Department {
			continue
		}
		record.Percentage = models.AttendancePercentage(record.Present, record.Total)
		visible = append(visible, record)
	}
	return visible, nil
}
