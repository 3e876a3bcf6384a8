package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngocminh-dev/tcms-api/internal/dto"
)

type fakeStatisticsSrv struct {
	summary   dto.DashboardSummaryDTO
	courses   []dto.CourseStatsDTO
	provinces dto.ProvinceStats
	hit       bool
	err       error
}

func (f *fakeStatisticsSrv) Dashboard(context.Context) (*dto.DashboardSummaryDTO, bool, error) {
	return &f.summary, f.hit, f.err
}

func (f *fakeStatisticsSrv) CourseStats(context.Context) ([]dto.CourseStatsDTO, bool, error) {
	return f.courses, f.hit, f.err
}

func (f *fakeStatisticsSrv) StudentsByProvince(context.Context) (dto.ProvinceStats, bool, error) {
	return f.provinces, f.hit, f.err
}

func TestStatisticsHandlerDashboard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewStatisticsHandler(&fakeStatisticsSrv{
		summary: dto.DashboardSummaryDTO{TotalStudents: 120, PendingCertificates: 14},
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/statistics/dashboard", nil)

	handler.Dashboard(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	var envelope struct {
		Data dto.DashboardSummaryDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, 120, envelope.Data.TotalStudents)
}

func TestStatisticsHandlerCacheHitHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewStatisticsHandler(&fakeStatisticsSrv{hit: true})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/statistics/courses", nil)

	handler.Courses(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
}

func TestStatisticsHandlerProvinces(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewStatisticsHandler(&fakeStatisticsSrv{
		provinces: dto.ProvinceStats{"Hà Nội": 40, "Không rõ": 7},
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/statistics/students-by-province", nil)

	handler.Provinces(c)

	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data dto.ProvinceStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, 40, envelope.Data["Hà Nội"])
	assert.Equal(t, 7, envelope.Data["Không rõ"])
}
