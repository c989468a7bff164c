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

func newTeacherMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func teacherColumns() []string {
	return []string{"id", "employee_id", "full_name", "department", "email", "phone", "subjects", "hours_allocated", "hours_completed", "created_at", "updated_at"}
}

func TestTeacherRepositoryList(t *testing.T) {
	db, mock, cleanup := newTeacherMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	rows := sqlmock.NewRows(teacherColumns()).
		AddRow("1", "EMP001", "Sreedhar E", "CP01", "sreedhar@nec.edu", "9000000001", []byte(`["DS","OS"]`), 120, 48, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, employee_id, full_name, department, email, phone, subjects, hours_allocated, hours_completed, created_at, updated_at FROM teachers WHERE department = $1 ORDER BY full_name")).
		WithArgs("CP01").
		WillReturnRows(rows)

	teachers, err := repo.List(context.Background(), models.TeacherFilter{Department: "CP01"})
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, models.SubjectList{"DS", "OS"}, teachers[0].Subjects)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryExistsByEmployeeID(t *testing.T) {
	db, mock, cleanup := newTeacherMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM teachers WHERE employee_id = $1 LIMIT 1")).
		WithArgs("EMP001").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}))

	exists, err := repo.ExistsByEmployeeID(context.Background(), "EMP001", "")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newTeacherMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectExec("INSERT INTO teachers").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	teacher := &models.Teacher{EmployeeID: "EMP001", FullName: "Sreedhar E", Department: "CP01", Email: "sreedhar@nec.edu", Subjects: models.SubjectList{"DS"}, HoursAllocated: 120}
	err := repo.Create(context.Background(), teacher)
	require.NoError(t, err)
	assert.NotEmpty(t, teacher.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
