package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/eduflow-api/internal/models"
	"github.com/noah-isme/eduflow-api/internal/scope"
	appErrors "github.com/noah-isme/eduflow-api/pkg/errors"
)

type mockTeacherRepo struct {
	teachers   []models.Teacher
	exists     bool
	lastFilter models.TeacherFilter
	created    *models.Teacher
	deleted    []string
}

func (m *mockTeacherRepo) List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, error) {
	m.lastFilter = filter
	out := make([]models.Teacher, 0, len(m.teachers))
	for _, teacher := range m.teachers {
		if filter.Department != "" && teacher.Department != filter.Department {
			continue
		}
		out = append(out, teacher)
	}
	return out, nil
}

func (m *mockTeacherRepo) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	for i := range m.teachers {
		if m.teachers[i].ID == id {
			return &m.teachers[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockTeacherRepo) ExistsByEmployeeID(ctx context.Context, employeeID string, excludeID string) (bool, error) {
	return m.exists, nil
}

func (m *mockTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	teacher.ID = "generated"
	m.created = teacher
	return nil
}

func (m *mockTeacherRepo) Update(ctx context.Context, teacher *models.Teacher) error {
	return nil
}

func (m *mockTeacherRepo) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func TestTeacherListScopedToHOD(t *testing.T) {
	repo := &mockTeacherRepo{teachers: []models.Teacher{
		{ID: "1", Department: "CP01"},
		{ID: "2", Department: "CP04"},
	}}
	svc := NewTeacherService(repo, validator.New(), zap.NewNop())

	actor := scope.Actor{Role: models.RoleHOD, Department: "CP01"}
	teachers, err := svc.List(context.Background(), actor, models.TeacherFilter{Department: "CP04"})
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, "1", teachers[0].ID)
	// the scope lock wins over the client's department filter
	assert.Equal(t, "CP01", repo.lastFilter.Department)
}

func TestTeacherCreateDuplicateEmployeeID(t *testing.T) {
	repo := &mockTeacherRepo{exists: true}
	svc := NewTeacherService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), TeacherInput{
		EmployeeID: "EMP001",
		FullName:   "Sreedhar E",
		Department: "CP01",
		Email:      "sreedhar@nec.edu",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Nil(t, repo.created)
}

func TestTeacherCreateRequiresEmail(t *testing.T) {
	repo := &mockTeacherRepo{}
	svc := NewTeacherService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), TeacherInput{
		EmployeeID: "EMP001",
		FullName:   "Sreedhar E",
		Department: "CP01",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestTeacherCreateSuccess(t *testing.T) {
	repo := &mockTeacherRepo{}
	svc := NewTeacherService(repo, validator.New(), zap.NewNop())

	created, err := svc.Create(context.Background(), TeacherInput{
		EmployeeID:     "EMP001",
		FullName:       "Sreedhar E",
		Department:     "CP01",
		Email:          "sreedhar@nec.edu",
		Subjects:       []string{"DS", "OS"},
		HoursAllocated: 120,
	})
	require.NoError(t, err)
	assert.Equal(t, "generated", created.ID)
	assert.Equal(t, models.SubjectList{"DS", "OS"}, created.Subjects)
}

func TestTeacherDelete(t *testing.T) {
	repo := &mockTeacherRepo{teachers: []models.Teacher{{ID: "1", Department: "CP01"}}}
	svc := NewTeacherService(repo, validator.New(), zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), "1"))
	assert.Equal(t, []string{"1"}, repo.deleted)
}
