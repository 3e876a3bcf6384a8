package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ngocminh-dev/tcms-api/internal/dto"
	"github.com/ngocminh-dev/tcms-api/internal/models"
	appErrors "github.com/ngocminh-dev/tcms-api/pkg/errors"
)

type statisticsRepository interface {
	DashboardSummary(ctx context.Context) (*models.DashboardSummary, error)
	CourseStatsByYear(ctx context.Context) ([]models.CourseYearStats, error)
	StudentsByProvince(ctx context.Context) ([]models.ProvinceCount, error)
}

const (
	cacheKeyDashboard = "stats:dashboard"
	cacheKeyCourses   = "stats:courses"
	cacheKeyProvinces = "stats:provinces"

	// Bucket label for students with no recorded residence province.
	unknownProvince = "Không rõ"
)

// StatisticsService composes the reporting payloads with a read-through cache.
type StatisticsService struct {
	repo     statisticsRepository
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewStatisticsService constructs a StatisticsService.
func NewStatisticsService(repo statisticsRepository, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *StatisticsService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatisticsService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// Dashboard returns the landing-page counters and reports cache utilisation.
func (s *StatisticsService) Dashboard(ctx context.Context) (*dto.DashboardSummaryDTO, bool, error) {
	var cached dto.DashboardSummaryDTO
	if hit, err := s.cache.Get(ctx, cacheKeyDashboard, &cached); err == nil && hit {
		return &cached, true, nil
	}

	summary, err := s.repo.DashboardSummary(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compose dashboard summary")
	}
	out := dto.SummaryFromModel(*summary)
	_ = s.cache.Set(ctx, cacheKeyDashboard, out, s.cacheTTL)
	return &out, false, nil
}

// CourseStats returns the per-year course aggregation, newest year first.
func (s *StatisticsService) CourseStats(ctx context.Context) ([]dto.CourseStatsDTO, bool, error) {
	var cached []dto.CourseStatsDTO
	if hit, err := s.cache.Get(ctx, cacheKeyCourses, &cached); err == nil && hit {
		return cached, true, nil
	}

	stats, err := s.repo.CourseStatsByYear(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compose course statistics")
	}
	out := make([]dto.CourseStatsDTO, 0, len(stats))
	for _, row := range stats {
		out = append(out, dto.CourseStatsFromModel(row))
	}
	_ = s.cache.Set(ctx, cacheKeyCourses, out, s.cacheTTL)
	return out, false, nil
}

// StudentsByProvince returns the province distribution of students.
func (s *StatisticsService) StudentsByProvince(ctx context.Context) (dto.ProvinceStats, bool, error) {
	var cached dto.ProvinceStats
	if hit, err := s.cache.Get(ctx, cacheKeyProvinces, &cached); err == nil && hit {
		return cached, true, nil
	}

	counts, err := s.repo.StudentsByProvince(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compose province statistics")
	}
	out := make(dto.ProvinceStats, len(counts))
	for _, row := range counts {
		province := row.Province
		if province == "" {
			province = unknownProvince
		}
		out[province] += row.Count
	}
	_ = s.cache.Set(ctx, cacheKeyProvinces, out, s.cacheTTL)
	return out, false, nil
}

// InvalidateAll drops cached statistics after any roster mutation.
func (s *StatisticsService) InvalidateAll(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "stats:*"); err != nil {
		s.logger.Warn("failed to invalidate statistics cache", zap.Error(err))
	}
}
