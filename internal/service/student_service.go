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

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	ExistsByTokenNo(ctx context.Context, tokenNo string, excludeID string) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) error
}

// StudentInput is the payload for creating or updating a student.
type StudentInput struct {
	TokenNo              string           `json:"token_no" validate:"required"`
	FullName             string           `json:"full_name" validate:"required"`
	Department           string           `json:"department" validate:"required"`
	Section              string           `json:"section"`
	Semester             int              `json:"semester" validate:"gte=0,lte=12"`
	Email                *string          `json:"email,omitempty" validate:"omitempty,email"`
	Phone                *string          `json:"phone,omitempty"`
	AttendancePercentage int              `json:"attendance_percentage" validate:"gte=0,lte=100"`
	FeeStatus            models.FeeStatus `json:"fee_status" validate:"required"`
	PendingAmount        int64            `json:"pending_amount" validate:"gte=0"`
}

// StudentService provides student directory use cases. Reads are narrowed
// to the caller's resolved scope.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// List returns the students visible to the actor, optionally narrowed by the
// caller's filter. The scope lock wins over a conflicting client department.
func (s *StudentService) List(ctx context.Context, actor scope.Actor, filter models.StudentFilter) ([]models.Student, error) {
	f := scope.Resolve(actor)
	if f.Department != "" {
		filter.Department = f.Department
	}

	students, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}

	visible := make([]models.Student, 0, len(students))
	for _, student := range students {
		if scope.StudentVisible(f, actor, student) {
			visible = append(visible, student)
		}
	}
	return visible, nil
}

// Get returns one student if it is inside the actor's scope.
func (s *StudentService) Get(ctx context.Context, actor scope.Actor, id string) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if !scope.StudentVisible(scope.Resolve(actor), actor, *student) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "student is outside your scope")
	}
	return student, nil
}

// Create inserts a new student after normalising the fee pairing.
func (s *StudentService) Create(ctx context.Context, input StudentInput) (*models.Student, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if !input.FeeStatus.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown fee status")
	}

	exists, err := s.repo.ExistsByTokenNo(ctx, input.TokenNo, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check token number")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "token number already in use")
	}

	student := &models.Student{
		TokenNo:              input.TokenNo,
		FullName:             input.FullName,
		Department:           input.Department,
		Section:              input.Section,
		Semester:             input.Semester,
		Email:                input.Email,
		Phone:                input.Phone,
		AttendancePercentage: input.AttendancePercentage,
		FeeStatus:            input.FeeStatus,
		PendingAmount:        input.PendingAmount,
	}
	normalizeFees(student)

	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	s.logger.Info("student created", zap.String("id", student.ID), zap.String("token_no", student.TokenNo))
	return student, nil
}

// Update modifies an existing student after normalising the fee pairing.
func (s *StudentService) Update(ctx context.Context, id string, input StudentInput) (*models.Student, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if !input.FeeStatus.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown fee status")
	}

	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	if student.TokenNo != input.TokenNo {
		exists, err := s.repo.ExistsByTokenNo(ctx, input.TokenNo, id)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check token number")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, "token number already in use")
		}
	}

	student.TokenNo = input.TokenNo
	student.FullName = input.FullName
	student.Department = input.Department
	student.Section = input.Section
	student.Semester = input.Semester
	student.Email = input.Email
	student.Phone = input.Phone
	student.AttendancePercentage = input.AttendancePercentage
	student.FeeStatus = input.FeeStatus
	student.PendingAmount = input.PendingAmount
	normalizeFees(student)

	if err := s.repo.Update(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	return student, nil
}

// Delete removes a student record.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	return nil
}

// normalizeFees keeps fee status and pending amount consistent: a paid
// student owes nothing, and a student who owes nothing is paid.
func normalizeFees(student *models.Student) {
	if student.FeeStatus == models.FeeStatusPaid {
		student.PendingAmount = 0
	} else if student.PendingAmount == 0 {
		student.FeeStatus = models.FeeStatusPaid
	}
}
