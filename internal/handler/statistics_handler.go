package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ngocminh-dev/tcms-api/internal/dto"
	"github.com/ngocminh-dev/tcms-api/pkg/response"
)

type statisticsService interface {
	Dashboard(ctx context.Context) (*dto.DashboardSummaryDTO, bool, error)
	CourseStats(ctx context.Context) ([]dto.CourseStatsDTO, bool, error)
	StudentsByProvince(ctx context.Context) (dto.ProvinceStats, bool, error)
}

// StatisticsHandler exposes reporting endpoints.
type StatisticsHandler struct {
	stats statisticsService
}

// NewStatisticsHandler constructs StatisticsHandler.
func NewStatisticsHandler(stats statisticsService) *StatisticsHandler {
	return &StatisticsHandler{stats: stats}
}

func setCacheHeader(c *gin.Context, hit bool) {
	if hit {
		c.Header("X-Cache", "HIT")
		return
	}
	c.Header("X-Cache", "MISS")
}

// Dashboard godoc
// @Summary Landing page counters
// @Tags Statistics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /statistics/dashboard [get]
func (h *StatisticsHandler) Dashboard(c *gin.Context) {
	summary, hit, err := h.stats.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	setCacheHeader(c, hit)
	response.JSON(c, http.StatusOK, summary, nil)
}

// Courses godoc
// @Summary Per-year course statistics
// @Tags Statistics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /statistics/courses [get]
func (h *StatisticsHandler) Courses(c *gin.Context) {
	stats, hit, err := h.stats.CourseStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	setCacheHeader(c, hit)
	response.JSON(c, http.StatusOK, stats, nil)
}

// Provinces godoc
// @Summary Student distribution by province
// @Tags Statistics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /statistics/students-by-province [get]
func (h *StatisticsHandler) Provinces(c *gin.Context) {
	dist, hit, err := h.stats.StudentsByProvince(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	setCacheHeader(c, hit)
	response.JSON(c, http.StatusOK, dist, nil)
}
