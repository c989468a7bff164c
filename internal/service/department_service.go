package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/eduflow-api/internal/models"
	appErrors "github.com/noah-isme/eduflow-api/pkg/errors"
)

type departmentRepository interface {
	List(ctx context.Context) ([]models.Department, error)
	FindByCode(ctx context.Context, code string) (*models.Department, error)
}

type legendRepository interface {
	List(ctx context.Context) ([]models.SubjectLegend, error)
}

// DepartmentService provides read access to departments and subject legends.
// Departments are reference data and are listed unscoped for every role.
type DepartmentService struct {
	repo    departmentRepository
	legends legendRepository
	logger  *zap.Logger
}

// NewDepartmentService constructs a DepartmentService.
func NewDepartmentService(repo departmentRepository, legends legendRepository, logger *zap.Logger) *DepartmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DepartmentService{repo: repo, legends: legends, logger: logger}
}

// List returns all departments.
func (s *DepartmentService) List(ctx context.Context) ([]models.Department, error) {
	departments, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list departments")
	}
	return departments, nil
}

// Get returns one department by code.
func (s *DepartmentService) Get(ctx context.Context, code string) (*models.Department, error) {
	department, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "department not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load department")
	}
	return department, nil
}

// ListLegends returns all subject legends.
func (s *DepartmentService) ListLegends(ctx context.Context) ([]models.SubjectLegend, error) {
	legends, err := s.legends.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subject legends")
	}
	return legends, nil
}
