package models

import "time"

// ClassActivity records one scheduled or occurred teaching session. The
// free-text batch label (e.g. "CP09 2022JUN NEC-A") is kept for display;
// the structured department/section/cohort columns are the scoping source
// of truth. Rows imported from the legacy dataset may have the structured
// columns empty, in which case scoping falls back to label containment.
type ClassActivity struct {
	ID             string    `db:"id" json:"id"`
	Date           time.Time `db:"date" json:"date"`
	Time           string    `db:"time" json:"time"`
	Batch          string    `db:"batch" json:"batch"`
	DepartmentCode string    `db:"department_code" json:"department_code,omitempty"`
	Section        string    `db:"section" json:"section,omitempty"`
	CohortYear     string    `db:"cohort_year" json:"cohort_year,omitempty"`
	Topic          string    `db:"topic" json:"topic"`
	InstructorName string    `db:"instructor_name" json:"instructor_name"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// ActivityFilter restricts the activity listing at the storage layer. Scope
// and user filters are applied on top by the service.
type ActivityFilter struct {
	StartDate time.Time
	EndDate   time.Time
}
