package models

import "time"

// FeeStatus represents the fee settlement state of a student.
type FeeStatus string

const (
	FeeStatusPaid    FeeStatus = "paid"
	FeeStatusPending FeeStatus = "pending"
	FeeStatusPartial FeeStatus = "partial"
)

// Valid returns true when the status is a supported value.
func (s FeeStatus) Valid() bool {
	switch s {
	case FeeStatusPaid, FeeStatusPending, FeeStatusPartial:
		return true
	default:
		return false
	}
}

// Student represents an enrollment record.
type Student struct {
	ID                   string    `db:"id" json:"id"`
	TokenNo              string    `db:"token_no" json:"token_no"`
	FullName             string    `db:"full_name" json:"full_name"`
	Department           string    `db:"department" json:"department"`
	Section              string    `db:"section" json:"section"`
	Semester             int       `db:"semester" json:"semester"`
	Email                *string   `db:"email" json:"email,omitempty"`
	Phone                *string   `db:"phone" json:"phone,omitempty"`
	AttendancePercentage int       `db:"attendance_percentage" json:"attendance_percentage"`
	FeeStatus            FeeStatus `db:"fee_status" json:"fee_status"`
	PendingAmount        int64     `db:"pending_amount" json:"pending_amount"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

// StudentFilter captures filtering criteria for listing students.
type StudentFilter struct {
	Department string
	Section    string
	Semester   *int
}
