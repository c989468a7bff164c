package models

import "time"

// TimetableEntry assigns a subject and instructor to a (day, batch, slot).
// At most one entry per (day, batch, time slot) is meaningful; uniqueness is
// not enforced on write.
type TimetableEntry struct {
	ID          string    `db:"id" json:"id"`
	Day         string    `db:"day" json:"day"`
	Batch       string    `db:"batch" json:"batch"`
	Venue       string    `db:"venue" json:"venue"`
	TimeSlot    string    `db:"time_slot" json:"time_slot"`
	Subject     string    `db:"subject" json:"subject"`
	TeacherCode string    `db:"teacher_code" json:"teacher_code"`
	TeacherName string    `db:"teacher_name" json:"teacher_name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
