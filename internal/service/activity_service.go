package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/eduflow-api/internal/models"
	"github.com/noah-isme/eduflow-api/internal/scope"
	appErrors "github.com/noah-isme/eduflow-api/pkg/errors"
)

type activityRepository interface {
	List(ctx context.Context, filter models.ActivityFilter) ([]models.ClassActivity, error)
	FindByID(ctx context.Context, id string) (*models.ClassActivity, error)
	Create(ctx context.Context, activity *models.ClassActivity) error
	Delete(ctx context.Context, id string) error
}

// ActivityInput is the payload for logging a class activity.
type ActivityInput struct {
	Date           time.Time `json:"date" validate:"required"`
	Time           string    `json:"time" validate:"required"`
	Batch          string    `json:"batch" validate:"required"`
	DepartmentCode string    `json:"department_code"`
	Section        string    `json:"section"`
	CohortYear     string    `json:"cohort_year"`
	Topic          string    `json:"topic" validate:"required"`
	InstructorName string    `json:"instructor_name" validate:"required"`
}

// ActivityService provides the scope-filtered class activity feed. The
// storage layer only narrows by date; all role scoping and client filters
// are applied here with the shared predicates.
type ActivityService struct {
	repo      activityRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewActivityService constructs an ActivityService.
func NewActivityService(repo activityRepository, validate *validator.Validate, logger *zap.Logger) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ActivityService{repo: repo, validator: validate, logger: logger}
}

// List returns the activities visible to the actor for the given query.
func (s *ActivityService) List(ctx context.Context, actor scope.Actor, query scope.ActivityQuery) ([]models.ClassActivity, error) {
	activities, err := s.repo.List(ctx, models.ActivityFilter{StartDate: query.StartDate, EndDate: query.EndDate})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class activities")
	}

	f := scope.Resolve(actor)
	merged := scope.Merge(f, query)

	visible := make([]models.ClassActivity, 0, len(activities))
	for _, activity := range activities {
		if scope.ActivityVisible(f, merged, activity) {
			visible = append(visible, activity)
		}
	}
	return visible, nil
}

// Instructors returns the instructor names the actor may filter by,
// considering the optionally selected department.
func (s *ActivityService) Instructors(ctx context.Context, actor scope.Actor, selectedDept string) ([]string, error) {
	f := scope.Resolve(actor)
	if actor.Role == models.RoleSubjectIncharge {
		return scope.Instructors(actor, f, selectedDept, nil), nil
	}

	activities, err := s.repo.List(ctx, models.ActivityFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class activities")
	}
	return scope.Instructors(actor, f, selectedDept, activities), nil
}

// Create logs a new class activity.
func (s *ActivityService) Create(ctx context.Context, input ActivityInput) (*models.ClassActivity, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid activity payload")
	}

	activity := &models.ClassActivity{
		Date:           input.Date,
		Time:           input.Time,
		Batch:          input.Batch,
		DepartmentCode: input.DepartmentCode,
		Section:        input.Section,
		CohortYear:     input.CohortYear,
		Topic:          input.Topic,
		InstructorName: input.InstructorName,
	}
	if err := s.repo.Create(ctx, activity); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class activity")
	}
	s.logger.Info("class activity logged", zap.String("id", activity.ID), zap.String("batch", activity.Batch))
	return activity, nil
}

// Delete removes a class activity.
func (s *ActivityService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "class activity not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class activity")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete class activity")
	}
	return nil
}
