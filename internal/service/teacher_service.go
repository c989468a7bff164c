package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/eduflow-api/internal/models"
	"github.com/noah-isme/eduflow-api/internal/scope"
	appErrors "github.com/noah-isme/eduflow-api/pkg/errors"
)

type teacherRepository interface {
	List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, error)
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	ExistsByEmployeeID(ctx context.Context, employeeID string, excludeID string) (bool, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id string) error
}

// TeacherInput is the payload for creating or updating a teacher.
type TeacherInput struct {
	EmployeeID     string   `json:"employee_id" validate:"required"`
	FullName       string   `json:"full_name" validate:"required"`
	Department     string   `json:"department" validate:"required"`
	Email          string   `json:"email" validate:"required,email"`
	Phone          *string  `json:"phone,omitempty"`
	Subjects       []string `json:"subjects"`
	HoursAllocated int      `json:"hours_allocated" validate:"gte=0"`
	HoursCompleted int      `json:"hours_completed" validate:"gte=0"`
}

// TeacherService provides staff directory use cases.
type TeacherService struct {
	repo      teacherRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(repo teacherRepository, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &TeacherService{repo: repo, validator: validate, logger: logger}
}

// List returns the teachers visible to the actor, optionally narrowed by a
// department filter. The scope lock wins over a conflicting client value.
func (s *TeacherService) List(ctx context.Context, actor scope.Actor, filter models.TeacherFilter) ([]models.Teacher, error) {
	f := scope.Resolve(actor)
	if f.Department != "" {
		filter.Department = f.Department
	}

	teachers, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teachers")
	}

	visible := make([]models.Teacher, 0, len(teachers))
	for _, teacher := range teachers {
		if scope.TeacherVisible(f, teacher) {
			visible = append(visible, teacher)
		}
	}
	return visible, nil
}

// Get returns one teacher if it is inside the actor's scope.
func (s *TeacherService) Get(ctx context.Context, actor scope.Actor, id string) (*models.Teacher, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	if !scope.TeacherVisible(scope.Resolve(actor), *teacher) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "teacher is outside your scope")
	}
	return teacher, nil
}

// Create inserts a new teacher. The employee id uniqueness check is
// read-then-write, not transactional.
func (s *TeacherService) Create(ctx context.Context, input TeacherInput) (*models.Teacher, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}

	exists, err := s.repo.ExistsByEmployeeID(ctx, input.EmployeeID, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check employee id")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "employee id already in use")
	}

	teacher := &models.Teacher{
		EmployeeID:     input.EmployeeID,
		FullName:       input.FullName,
		Department:     input.Department,
		Email:          input.Email,
		Phone:          input.Phone,
		Subjects:       models.SubjectList(input.Subjects),
		HoursAllocated: input.HoursAllocated,
		HoursCompleted: input.HoursCompleted,
	}

	if err := s.repo.Create(ctx, teacher); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create teacher")
	}
	s.logger.Info("teacher created", zap.String("id", teacher.ID), zap.String("employee_id", teacher.EmployeeID))
	return teacher, nil
}

// Update modifies an existing teacher.
func (s *TeacherService) Update(ctx context.Context, id string, input TeacherInput) (*models.Teacher, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}

	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}

	if teacher.EmployeeID != input.EmployeeID {
		exists, err := s.repo.ExistsByEmployeeID(ctx, input.EmployeeID, id)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check employee id")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, "employee id already in use")
		}
	}

	teacher.EmployeeID = input.EmployeeID
	teacher.FullName = input.FullName
	teacher.Department = input.Department
	teacher.Email = input.Email
	teacher.Phone = input.Phone
	teacher.Subjects = models.SubjectList(input.Subjects)
	teacher.HoursAllocated = input.HoursAllocated
	teacher.HoursCompleted = input.HoursCompleted

	if err := s.repo.Update(ctx, teacher); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update teacher")
	}
	return teacher, nil
}

// Delete removes a teacher record.
func (s *TeacherService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete teacher")
	}
	return nil
}
