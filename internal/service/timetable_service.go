package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/eduflow-api/internal/models"
	"github.com/noah-isme/eduflow-api/internal/scope"
	appErrors "github.com/noah-isme/eduflow-api/pkg/errors"
)

type timetableRepository interface {
	List(ctx context.Context) ([]models.TimetableEntry, error)
}

// TimetableService provides the weekly timetable. Entries only carry the
// free-text batch label, so scoping matches by label containment.
type TimetableService struct {
	repo   timetableRepository
	logger *zap.Logger
}

// NewTimetableService constructs a TimetableService.
func NewTimetableService(repo timetableRepository, logger *zap.Logger) *TimetableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{repo: repo, logger: logger}
}

// List returns the timetable entries visible to the actor.
func (s *TimetableService) List(ctx context.Context, actor scope.Actor) ([]models.TimetableEntry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list timetable")
	}

	f := scope.Resolve(actor)
	if f.Department == "" && f.Section == "" && f.Instructor == "" {
		return entries, nil
	}

	visible := make([]models.TimetableEntry, 0, len(entries))
	for _, entry := range entries {
		if f.Department != "" && !strings.Contains(entry.Batch, f.Department) {
			continue
		}
		if f.Section != "" && !strings.Contains(entry.Batch, f.Section) {
			continue
		}
		if f.Instructor != "" && entry.TeacherName != f.Instructor {
			continue
		}
		visible = append(visible, entry)
	}
	return visible, nil
}
