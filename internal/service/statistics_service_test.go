package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngocminh-dev/tcms-api/internal/models"
	appErrors "github.com/ngocminh-dev/tcms-api/pkg/errors"
)

type memoryCacheRepo struct {
	entries map[string][]byte
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{entries: make(map[string][]byte)}
}

func (m *memoryCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(_ context.Context, _ string) error {
	m.entries = make(map[string][]byte)
	return nil
}

type mockStatsRepo struct {
	summaryCalls int
	provinces    []models.ProvinceCount
}

func (m *mockStatsRepo) DashboardSummary(_ context.Context) (*models.DashboardSummary, error) {
	m.summaryCalls++
	return &models.DashboardSummary{
		TotalStudents:       120,
		TotalCourses:        8,
		TotalEnrollments:    200,
		PendingCertificates: 14,
	}, nil
}

func (m *mockStatsRepo) CourseStatsByYear(_ context.Context) ([]models.CourseYearStats, error) {
	return []models.CourseYearStats{
		{Year: 2024, TotalCourses: 5, TotalStudentsEnrolled: 130, TotalPass: 90, TotalFail: 10},
		{Year: 2023, TotalCourses: 3, TotalStudentsEnrolled: 70, TotalPass: 60, TotalFail: 5},
	}, nil
}

func (m *mockStatsRepo) StudentsByProvince(_ context.Context) ([]models.ProvinceCount, error) {
	return m.provinces, nil
}

func newStatsFixture() (*StatisticsService, *mockStatsRepo, *memoryCacheRepo) {
	repo := &mockStatsRepo{}
	cacheRepo := newMemoryCacheRepo()
	cache := NewCacheService(cacheRepo, nil, time.Minute, nil, true)
	return NewStatisticsService(repo, cache, time.Minute, nil), repo, cacheRepo
}

func TestStatisticsServiceDashboardCaching(t *testing.T) {
	svc, repo, _ := newStatsFixture()

	summary, hit, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 120, summary.TotalStudents)
	assert.Equal(t, 1, repo.summaryCalls)

	summary, hit, err = svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 14, summary.PendingCertificates)
	assert.Equal(t, 1, repo.summaryCalls, "cache hit must not touch the repository")
}

func TestStatisticsServiceInvalidateAll(t *testing.T) {
	svc, repo, _ := newStatsFixture()

	_, _, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	svc.InvalidateAll(context.Background())

	_, hit, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, repo.summaryCalls)
}

func TestStatisticsServiceCourseStatsOrder(t *testing.T) {
	svc, _, _ := newStatsFixture()

	stats, hit, err := svc.CourseStats(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	require.Len(t, stats, 2)
	assert.Equal(t, 2024, stats[0].Year)
	assert.Equal(t, 2023, stats[1].Year)
}

func TestStatisticsServiceProvinceRelabelsEmpty(t *testing.T) {
	svc, repo, _ := newStatsFixture()
	repo.provinces = []models.ProvinceCount{
		{Province: "Hà Nội", Count: 40},
		{Province: "", Count: 7},
	}

	dist, hit, err := svc.StudentsByProvince(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 40, dist["Hà Nội"])
	assert.Equal(t, 7, dist["Không rõ"])
	_, ok := dist[""]
	assert.False(t, ok)
}

func TestStatisticsServiceDisabledCache(t *testing.T) {
	repo := &mockStatsRepo{}
	cache := NewCacheService(nil, nil, time.Minute, nil, false)
	svc := NewStatisticsService(repo, cache, time.Minute, nil)

	for i := 0; i < 2; i++ {
		_, hit, err := svc.Dashboard(context.Background())
		require.NoError(t, err)
		assert.False(t, hit)
	}
	assert.Equal(t, 2, repo.summaryCalls)
}
