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

type mockStudentRepo struct {
	students   []models.Student
	exists     bool
	lastFilter models.StudentFilter
	created    *models.Student
	updated    *models.Student
	deleted    []string
}

func (m *mockStudentRepo) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	m.lastFilter = filter
	out := make([]models.Student, 0, len(m.students))
	for _, s := range m.students {
		if filter.Department != "" && s.Department != filter.Department {
			continue
		}
		if filter.Section != "" && s.Section != filter.Section {
			continue
		}
		if filter.Semester != nil && s.Semester != *filter.Semester {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id string) (*models.Student, error) {
	for i := range m.students {
		if m.students[i].ID == id {
			return &m.students[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) ExistsByTokenNo(ctx context.Context, tokenNo string, excludeID string) (bool, error) {
	return m.exists, nil
}

func (m *mockStudentRepo) Create(ctx context.Context, student *models.Student) error {
	student.ID = "generated"
	m.created = student
	return nil
}

func (m *mockStudentRepo) Update(ctx context.Context, student *models.Student) error {
	m.updated = student
	return nil
}

func (m *mockStudentRepo) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func TestStudentListScopedToCoordinator(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{
		{ID: "1", TokenNo: "22NEC09A01", Department: "CP09", Section: "A", Semester: 4},
		{ID: "2", TokenNo: "22NEC09B01", Department: "CP09", Section: "B", Semester: 4},
		{ID: "3", TokenNo: "22NEC04A01", Department: "CP04", Section: "A", Semester: 4},
		{ID: "4", TokenNo: "21NEC09A01", Department: "CP09", Section: "A", Semester: 6},
	}}
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	actor := scope.Actor{Role: models.RoleClassCoordinator, Department: "CP09", Section: "A", Semester: 4}
	students, err := svc.List(context.Background(), actor, models.StudentFilter{Section: "A"})
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "1", students[0].ID)
	assert.Equal(t, "CP09", repo.lastFilter.Department)
}

func TestStudentListAdminUnconstrained(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{
		{ID: "1", Department: "CP09", Section: "A"},
		{ID: "2", Department: "CP04", Section: "B"},
	}}
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	students, err := svc.List(context.Background(), scope.Actor{Role: models.RoleAdmin}, models.StudentFilter{})
	require.NoError(t, err)
	assert.Len(t, students, 2)
	assert.Empty(t, repo.lastFilter.Department)
}

func TestStudentCreatePaidClearsPendingAmount(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	created, err := svc.Create(context.Background(), StudentInput{
		TokenNo:       "22NEC09A01",
		FullName:      "Anita Rao",
		Department:    "CP09",
		Section:       "A",
		Semester:      4,
		FeeStatus:     models.FeeStatusPaid,
		PendingAmount: 5000,
	})
	require.NoError(t, err)
	assert.Equal(t, models.FeeStatusPaid, created.FeeStatus)
	assert.Zero(t, created.PendingAmount)
}

func TestStudentCreateZeroPendingBecomesPaid(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	created, err := svc.Create(context.Background(), StudentInput{
		TokenNo:       "22NEC09A02",
		FullName:      "Ravi Kumar",
		Department:    "CP09",
		FeeStatus:     models.FeeStatusPending,
		PendingAmount: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, models.FeeStatusPaid, created.FeeStatus)
	assert.Zero(t, created.PendingAmount)
}

func TestStudentCreateDuplicateToken(t *testing.T) {
	repo := &mockStudentRepo{exists: true}
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), StudentInput{
		TokenNo:    "22NEC09A01",
		FullName:   "Anita Rao",
		Department: "CP09",
		FeeStatus:  models.FeeStatusPaid,
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Nil(t, repo.created)
}

func TestStudentUpdateKeepsFeePairing(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{
		{ID: "1", TokenNo: "22NEC09A01", FullName: "Anita Rao", Department: "CP09", FeeStatus: models.FeeStatusPaid},
	}}
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	updated, err := svc.Update(context.Background(), "1", StudentInput{
		TokenNo:       "22NEC09A01",
		FullName:      "Anita Rao",
		Department:    "CP09",
		FeeStatus:     models.FeeStatusPartial,
		PendingAmount: 12000,
	})
	require.NoError(t, err)
	assert.Equal(t, models.FeeStatusPartial, updated.FeeStatus)
	assert.EqualValues(t, 12000, updated.PendingAmount)
}

func TestStudentGetOutsideScope(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{
		{ID: "1", Department: "CP04", Section: "A", Semester: 4},
	}}
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	actor := scope.Actor{Role: models.RoleHOD, Department: "CP09"}
	_, err := svc.Get(context.Background(), actor, "1")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)
}

func TestStudentDeleteMissing(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
