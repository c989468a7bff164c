package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/eduflow-api/internal/models"
)

// LegendRepository manages persistence for subject legends.
type LegendRepository struct {
	db *sqlx.DB
}

// NewLegendRepository constructs a LegendRepository.
func NewLegendRepository(db *sqlx.DB) *LegendRepository {
	return &LegendRepository{db: db}
}

// List returns all subject legends ordered by name.
func (r *LegendRepository) List(ctx context.Context) ([]models.SubjectLegend, error) {
	const query = `SELECT id, code, name FROM subject_legends ORDER BY name`
	var legends []models.SubjectLegend
	if err := r.db.SelectContext(ctx, &legends, query); err != nil {
		return nil, fmt.Errorf("list subject legends: %w", err)
	}
	return legends, nil
}
