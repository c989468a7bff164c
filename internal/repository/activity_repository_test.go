package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/eduflow-api/internal/models"
)

func newActivityMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func activityColumns() []string {
	return []string{"id", "date", "time", "batch", "department_code", "section", "cohort_year", "topic", "instructor_name", "created_at"}
}

func TestActivityRepositoryList(t *testing.T) {
	db, mock, cleanup := newActivityMock(t)
	defer cleanup()
	repo := NewActivityRepository(db)

	rows := sqlmock.NewRows(activityColumns()).
		AddRow("1", time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC), "10:30", "2022-26 NEC CP04-A", "CP04", "A", "2022", "Graph traversal", "C S SUNIL KUMAR", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, date, time, batch, department_code, section, cohort_year, topic, instructor_name, created_at FROM class_activities ORDER BY date DESC, time DESC")).
		WillReturnRows(rows)

	activities, err := repo.List(context.Background(), models.ActivityFilter{})
	require.NoError(t, err)
	assert.Len(t, activities, 1)
	assert.Equal(t, "Graph traversal", activities[0].Topic)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityRepositoryListDateWindow(t *testing.T) {
	db, mock, cleanup := newActivityMock(t)
	defer cleanup()
	repo := NewActivityRepository(db)

	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, date, time, batch, department_code, section, cohort_year, topic, instructor_name, created_at FROM class_activities WHERE date >= $1 AND date <= $2 ORDER BY date DESC, time DESC")).
		WithArgs(start, end).
		WillReturnRows(sqlmock.NewRows(activityColumns()))

	activities, err := repo.List(context.Background(), models.ActivityFilter{StartDate: start, EndDate: end})
	require.NoError(t, err)
	assert.Empty(t, activities)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newActivityMock(t)
	defer cleanup()
	repo := NewActivityRepository(db)

	mock.ExpectExec("INSERT INTO class_activities").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	activity := &models.ClassActivity{
		Date:           time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
		Time:           "10:30",
		Batch:          "2022-26 NEC CP04-A",
		DepartmentCode: "CP04",
		Section:        "A",
		CohortYear:     "2022",
		Topic:          "Graph traversal",
		InstructorName: "C S SUNIL KUMAR",
	}
	err := repo.Create(context.Background(), activity)
	require.NoError(t, err)
	assert.NotEmpty(t, activity.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
