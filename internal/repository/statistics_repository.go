package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ngocminh-dev/tcms-api/internal/models"
)

// StatisticsRepository computes reporting aggregates.
type StatisticsRepository struct {
	db *sqlx.DB
}

// NewStatisticsRepository constructs a StatisticsRepository.
func NewStatisticsRepository(db *sqlx.DB) *StatisticsRepository {
	return &StatisticsRepository{db: db}
}

// DashboardSummary returns the landing-page counters.
func (r *StatisticsRepository) DashboardSummary(ctx context.Context) (*models.DashboardSummary, error) {
	const query = `SELECT
        (SELECT COUNT(*) FROM students) AS total_students,
        (SELECT COUNT(*) FROM courses) AS total_courses,
        (SELECT COUNT(*) FROM enrollments) AS total_enrollments,
        (SELECT COUNT(*) FROM enrollments WHERE status = 'PENDING') AS pending_certificates`
	var summary models.DashboardSummary
	if err := r.db.GetContext(ctx, &summary, query); err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}
	return &summary, nil
}

// CourseStatsByYear aggregates course and certificate activity per calendar year.
func (r *StatisticsRepository) CourseStatsByYear(ctx context.Context) ([]models.CourseYearStats, error) {
	const query = `SELECT
        CAST(EXTRACT(YEAR FROM c.start_date) AS INTEGER) AS year,
        COUNT(DISTINCT c.id) AS total_courses,
        COUNT(e.id) AS total_students_enrolled,
        COUNT(e.id) FILTER (WHERE e.status = 'PASS') AS total_pass,
        COUNT(e.id) FILTER (WHERE e.status = 'FAIL') AS total_fail
        FROM courses c
        LEFT JOIN enrollments e ON e.course_id = c.id
        GROUP BY 1
        ORDER BY 1 DESC`
	var stats []models.CourseYearStats
	if err := r.db.SelectContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("course stats by year: %w", err)
	}
	return stats, nil
}

// StudentsByProvince counts students per residence province. Students with no
// recorded province are bucketed under an empty key and relabelled by the service.
func (r *StatisticsRepository) StudentsByProvince(ctx context.Context) ([]models.ProvinceCount, error) {
	const query = `SELECT COALESCE(residence_province, '') AS province, COUNT(*) AS count
        FROM students
        GROUP BY 1
        ORDER BY 2 DESC`
	var counts []models.ProvinceCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("students by province: %w", err)
	}
	return counts, nil
}
