package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ngocminh-dev/tcms-api/internal/dto"
	"github.com/ngocminh-dev/tcms-api/internal/models"
	appErrors "github.com/ngocminh-dev/tcms-api/pkg/errors"
	"github.com/ngocminh-dev/tcms-api/pkg/response"
)

type enrollmentService interface {
	List(ctx context.Context, filter models.EnrollmentFilter) ([]dto.EnrollmentDTO, *models.Pagination, error)
	Enroll(ctx context.Context, req dto.EnrollRequest) (*dto.EnrollmentDTO, error)
	History(ctx context.Context, studentID int64) ([]dto.EnrollmentHistoryDTO, error)
	IssueCertificate(ctx context.Context, enrollmentID int64, req dto.IssueCertificateRequest) (*dto.EnrollmentDTO, error)
}

type certificateService interface {
	RenderPDF(ctx context.Context, enrollmentID int64) ([]byte, error)
}

// EnrollmentHandler exposes enrollment and certificate endpoints.
type EnrollmentHandler struct {
	enrollments  enrollmentService
	certificates certificateService
	stats        rosterInvalidator
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments enrollmentService, certificates certificateService, stats rosterInvalidator) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments, certificates: certificates, stats: stats}
}

// List godoc
// @Summary List enrollments
// @Tags Enrollments
// @Produce json
// @Param studentId query int false "Filter by student"
// @Param courseId query int false "Filter by course"
// @Param status query string false "Filter by certificate status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /enrollments [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	var filter models.EnrollmentFilter
	if studentID, err := strconv.ParseInt(c.Query("studentId"), 10, 64); err == nil {
		filter.StudentID = studentID
	}
	if courseID, err := strconv.ParseInt(c.Query("courseId"), 10, 64); err == nil {
		filter.CourseID = courseID
	}
	filter.Status = models.CertificateStatus(strings.TrimSpace(c.Query("status")))
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	enrollments, pagination, err := h.enrollments.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollments, pagination)
}

// Enroll godoc
// @Summary Enroll student on course
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body dto.EnrollRequest true "Enrollment payload"
// @Success 201 {object} response.Envelope
// @Router /enrollments [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	enrollment, err := h.enrollments.Enroll(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.stats != nil {
		h.stats.InvalidateAll(c.Request.Context())
	}
	response.Created(c, enrollment)
}

// History godoc
// @Summary Student training history
// @Tags Enrollments
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/enrollments [get]
func (h *EnrollmentHandler) History(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid student id"))
		return
	}
	history, err := h.enrollments.History(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, history, nil)
}

// IssueCertificate godoc
// @Summary Issue certificate decision
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param id path int true "Enrollment ID"
// @Param payload body dto.IssueCertificateRequest true "Certificate decision"
// @Success 200 {object} response.Envelope
// @Router /enrollments/{id}/certificate [put]
func (h *EnrollmentHandler) IssueCertificate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid enrollment id"))
		return
	}
	var req dto.IssueCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	enrollment, err := h.enrollments.IssueCertificate(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.stats != nil {
		h.stats.InvalidateAll(c.Request.Context())
	}
	response.JSON(c, http.StatusOK, enrollment, nil)
}

// Certificate godoc
// @Summary Download certificate document
// @Tags Enrollments
// @Produce application/pdf
// @Param id path int true "Enrollment ID"
// @Success 200 {string} string "PDF content"
// @Router /enrollments/{id}/certificate.pdf [get]
func (h *EnrollmentHandler) Certificate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid enrollment id"))
		return
	}
	pdf, err := h.certificates.RenderPDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("certificate-%d.pdf", id)))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
