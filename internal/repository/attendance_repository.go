package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/eduflow-api/internal/models"
)

// AttendanceRepository manages persistence for department attendance rollups.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// List returns attendance records with the department name joined in,
// newest first.
func (r *AttendanceRepository) List(ctx context.Context) ([]models.DepartmentAttendance, error) {
	const query = `SELECT a.id, a.department_code, COALESCE(d.name, '') AS department_name, a.date, a.present, a.total
        FROM department_attendance a
        LEFT JOIN departments d ON d.code = a.department_code
        ORDER BY a.date DESC, a.department_code`
	var records []models.DepartmentAttendance
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("list department attendance: %w", err)
	}
	return records, nil
}

// TotalsForDate sums present and total headcounts across departments for one day.
func (r *AttendanceRepository) TotalsForDate(ctx context.Context, date time.Time) (*models.AttendanceTotals, error) {
	const query = `SELECT COALESCE(SUM(present), 0) AS present, COALESCE(SUM(total), 0) AS total
        FROM department_attendance WHERE date = $1`
	var totals models.AttendanceTotals
	if err := r.db.GetContext(ctx, &totals, query, date); err != nil {
		return nil, fmt.Errorf("attendance totals: %w", err)
	}
	return &totals, nil
}
