package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/eduflow-api/internal/models"
	appErrors "github.com/noah-isme/eduflow-api/pkg/errors"
)

type staticCounter int

func (c staticCounter) Count(ctx context.Context) (int, error) {
	return int(c), nil
}

type memoryCacheRepo struct {
	mu      sync.Mutex
	entries map[string][]byte
	sets    int
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		m.entries = make(map[string][]byte)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	m.sets++
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return nil
}

func TestDashboardStatsAggregates(t *testing.T) {
	attendance := &mockAttendanceRepo{totals: models.AttendanceTotals{Present: 29, Total: 32}}
	cache := NewCacheService(nil, nil, time.Minute, zap.NewNop(), false)
	svc := NewDashboardService(staticCounter(120), staticCounter(14), staticCounter(4), attendance, cache, time.Minute, zap.NewNop())

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 120, stats.TotalStudents)
	assert.Equal(t, 14, stats.TotalTeachers)
	assert.Equal(t, 4, stats.TotalDepartments)
	assert.Equal(t, 29, stats.TodayAttendance.Present)
	assert.Equal(t, 32, stats.TodayAttendance.Total)
	assert.Equal(t, 91, stats.TodayAttendance.Percentage)
}

func TestDashboardStatsServedFromCache(t *testing.T) {
	attendance := &mockAttendanceRepo{totals: models.AttendanceTotals{Present: 10, Total: 20}}
	repo := &memoryCacheRepo{}
	cache := NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)
	svc := NewDashboardService(staticCounter(1), staticCounter(1), staticCounter(1), attendance, cache, time.Minute, zap.NewNop())

	first, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.sets)

	second, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	// no second write means the cache was hit
	assert.Equal(t, 1, repo.sets)

	svc.InvalidateStats(context.Background())
	_, err = svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.sets)
}
