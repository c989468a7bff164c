package models

import (
	"math"
	"time"
)

// DepartmentAttendance is a daily presence aggregate per department.
type DepartmentAttendance struct {
	ID             string    `db:"id" json:"id"`
	DepartmentCode string    `db:"department_code" json:"department_code"`
	DepartmentName string    `db:"department_name" json:"department_name"`
	Date           time.Time `db:"date" json:"date"`
	Present        int       `db:"present" json:"present"`
	Total          int       `db:"total" json:"total"`
	Percentage     int       `db:"percentage" json:"percentage"`
}

// AttendanceTotals is the aggregate used by the dashboard.
type AttendanceTotals struct {
	Present int `db:"present" json:"present"`
	Total   int `db:"total" json:"total"`
}

// AttendancePercentage computes round-half-up(present/total*100), or 0 when
// total is zero. 29/32 rounds to 91.
func AttendancePercentage(present, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(present) / float64(total) * 100))
}
