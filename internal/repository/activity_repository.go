package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/eduflow-api/internal/models"
)

// ActivityRepository manages persistence for class activity records.
type ActivityRepository struct {
	db *sqlx.DB
}

// NewActivityRepository constructs an ActivityRepository.
func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// List returns activities inside the optional date window, newest first.
// Both window bounds are inclusive.
func (r *ActivityRepository) List(ctx context.Context, filter models.ActivityFilter) ([]models.ClassActivity, error) {
	base := `SELECT id, date, time, batch, department_code, section, cohort_year, topic, instructor_name, created_at FROM class_activities`
	conditions := []string{}
	args := []interface{}{}

	if !filter.StartDate.IsZero() {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)+1))
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)+1))
		args = append(args, filter.EndDate)
	}

	query := base
	if len(conditions) > 0 {
		query = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))
	}
	query += " ORDER BY date DESC, time DESC"

	var activities []models.ClassActivity
	if err := r.db.SelectContext(ctx, &activities, query, args...); err != nil {
		return nil, fmt.Errorf("list class activities: %w", err)
	}
	return activities, nil
}

// FindByID fetches a single activity.
func (r *ActivityRepository) FindByID(ctx context.Context, id string) (*models.ClassActivity, error) {
	const query = `SELECT id, date, time, batch, department_code, section, cohort_year, topic, instructor_name, created_at
        FROM class_activities WHERE id = $1`
	var activity models.ClassActivity
	if err := r.db.GetContext(ctx, &activity, query, id); err != nil {
		return nil, err
	}
	return &activity, nil
}

// Create inserts a new class activity record.
func (r *ActivityRepository) Create(ctx context.Context, activity *models.ClassActivity) error {
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO class_activities (id, date, time, batch, department_code, section, cohort_year, topic, instructor_name, created_at)
        VALUES (:id, :date, :time, :batch, :department_code, :section, :cohort_year, :topic, :instructor_name, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, activity); err != nil {
		return fmt.Errorf("create class activity: %w", err)
	}
	return nil
}

// Delete removes a class activity record.
func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM class_activities WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete class activity: %w", err)
	}
	return nil
}
