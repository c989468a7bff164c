package models

import "time"

// Teacher represents a staff record.
type Teacher struct {
	ID             string      `db:"id" json:"id"`
	EmployeeID     string      `db:"employee_id" json:"employee_id"`
	FullName       string      `db:"full_name" json:"full_name"`
	Department     string      `db:"department" json:"department"`
	Email          string      `db:"email" json:"email"`
	Phone          *string     `db:"phone" json:"phone,omitempty"`
	Subjects       SubjectList `db:"subjects" json:"subjects"`
	HoursAllocated int         `db:"hours_allocated" json:"hours_allocated"`
	HoursCompleted int         `db:"hours_completed" json:"hours_completed"`
	CreatedAt      time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at" json:"updated_at"`
}

// TeacherFilter captures filtering criteria for listing teachers.
type TeacherFilter struct {
	Department string
}
