package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/eduflow-api/internal/models"
)

// TimetableRepository manages persistence for timetable entries.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository constructs a TimetableRepository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

// List returns all timetable entries ordered by day and slot.
func (r *TimetableRepository) List(ctx context.Context) ([]models.TimetableEntry, error) {
	const query = `SELECT id, day, batch, venue, time_slot, subject, teacher_code, teacher_name, created_at
        FROM timetable_entries ORDER BY day, time_slot`
	var entries []models.TimetableEntry
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list timetable entries: %w", err)
	}
	return entries, nil
}
