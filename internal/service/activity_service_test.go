package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/eduflow-api/internal/models"
	"github.com/noah-isme/eduflow-api/internal/scope"
	appErrors "github.com/noah-isme/eduflow-api/pkg/errors"
)

type mockActivityRepo struct {
	activities []models.ClassActivity
	created    *models.ClassActivity
	deleted    []string
}

func (m *mockActivityRepo) List(ctx context.Context, filter models.ActivityFilter) ([]models.ClassActivity, error) {
	out := make([]models.ClassActivity, 0, len(m.activities))
	for _, a := range m.activities {
		if !filter.StartDate.IsZero() && a.Date.Before(filter.StartDate) {
			continue
		}
		if !filter.EndDate.IsZero() && a.Date.After(filter.EndDate) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *mockActivityRepo) FindByID(ctx context.Context, id string) (*models.ClassActivity, error) {
	for i := range m.activities {
		if m.activities[i].ID == id {
			return &m.activities[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockActivityRepo) Create(ctx context.Context, activity *models.ClassActivity) error {
	activity.ID = "generated"
	m.created = activity
	return nil
}

func (m *mockActivityRepo) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func aprilDay(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func demoActivities() []models.ClassActivity {
	return []models.ClassActivity{
		{ID: "1", Date: aprilDay("2025-04-01"), Time: "9:00 AM - 10:00 AM", Batch: "CP09 2022JUN NEC-A", Topic: "Project", InstructorName: "Sreedhar E"},
		{ID: "2", Date: aprilDay("2025-04-01"), Time: "9:00 AM - 10:00 AM", Batch: "CP09 2022JUN NEC-B", Topic: "Project", InstructorName: "Amrutha M Kenchara"},
		{ID: "3", Date: aprilDay("2025-04-01"), Time: "10:15 AM - 11:45 AM", Batch: "CP09 2022JUN NEC-A", Topic: "Project", InstructorName: "Bhuvana K"},
		{ID: "4", Date: aprilDay("2025-04-02"), Time: "10:15 AM - 11:45 AM", Batch: "CP09 2023 JUN NEC-B", Topic: "Dynamic Website", InstructorName: "Sreedhar E"},
		{ID: "5", Date: aprilDay("2025-04-03"), Time: "12:15 PM - 1:15 PM", Batch: "CP09 2022JUN NEC-A", Topic: "Project", InstructorName: "ENOS KERKETTA"},
		{ID: "6", Date: aprilDay("2025-04-01"), Time: "12:15 PM - 1:15 PM", Batch: "CP04 2024JUN NEC-A", Topic: "SQL Server Lab", InstructorName: "C S SUNIL KUMAR"},
	}
}

func TestActivityListCoordinatorWindow(t *testing.T) {
	repo := &mockActivityRepo{activities: demoActivities()}
	svc := NewActivityService(repo, validator.New(), zap.NewNop())

	actor := scope.Actor{Role: models.RoleClassCoordinator, Department: "CP09", Section: "A", Semester: 4}
	query := scope.ActivityQuery{StartDate: aprilDay("2025-04-01"), EndDate: aprilDay("2025-04-02")}

	activities, err := svc.List(context.Background(), actor, query)
	require.NoError(t, err)
	ids := make([]string, 0, len(activities))
	for _, a := range activities {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"1", "3"}, ids)
}

func TestActivityListClientFilterOnlyNarrows(t *testing.T) {
	repo := &mockActivityRepo{activities: demoActivities()}
	svc := NewActivityService(repo, validator.New(), zap.NewNop())

	// a coordinator asking for another department still only sees their own
	actor := scope.Actor{Role: models.RoleClassCoordinator, Department: "CP09", Section: "A"}
	activities, err := svc.List(context.Background(), actor, scope.ActivityQuery{Department: "CP04"})
	require.NoError(t, err)
	for _, a := range activities {
		assert.Contains(t, a.Batch, "CP09")
	}
	assert.NotEmpty(t, activities)
}

func TestActivityListAdminInstructorFilter(t *testing.T) {
	repo := &mockActivityRepo{activities: demoActivities()}
	svc := NewActivityService(repo, validator.New(), zap.NewNop())

	activities, err := svc.List(context.Background(), scope.Actor{Role: models.RoleAdmin}, scope.ActivityQuery{Instructor: "Sreedhar E"})
	require.NoError(t, err)
	require.Len(t, activities, 2)
	for _, a := range activities {
		assert.Equal(t, "Sreedhar E", a.InstructorName)
	}
}

func TestActivityInstructorsSubjectIncharge(t *testing.T) {
	repo := &mockActivityRepo{activities: demoActivities()}
	svc := NewActivityService(repo, validator.New(), zap.NewNop())

	actor := scope.Actor{Role: models.RoleSubjectIncharge, Department: "CP09", DisplayName: "Sreedhar E"}
	names, err := svc.Instructors(context.Background(), actor, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sreedhar E"}, names)
}

func TestActivityInstructorsCoordinator(t *testing.T) {
	repo := &mockActivityRepo{activities: demoActivities()}
	svc := NewActivityService(repo, validator.New(), zap.NewNop())

	actor := scope.Actor{Role: models.RoleClassCoordinator, Department: "CP09", Section: "A"}
	names, err := svc.Instructors(context.Background(), actor, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bhuvana K", "ENOS KERKETTA", "Sreedhar E"}, names)
}

func TestActivityCreateAndDelete(t *testing.T) {
	repo := &mockActivityRepo{activities: demoActivities()}
	svc := NewActivityService(repo, validator.New(), zap.NewNop())

	created, err := svc.Create(context.Background(), ActivityInput{
		Date:           aprilDay("2025-04-10"),
		Time:           "9:00 AM - 10:00 AM",
		Batch:          "CP09 2022JUN NEC-A",
		DepartmentCode: "CP09",
		Section:        "A",
		Topic:          "Unit testing",
		InstructorName: "Sreedhar E",
	})
	require.NoError(t, err)
	assert.Equal(t, "generated", created.ID)

	require.NoError(t, svc.Delete(context.Background(), "1"))
	assert.Equal(t, []string{"1"}, repo.deleted)

	err = svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
