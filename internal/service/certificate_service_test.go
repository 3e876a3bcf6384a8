package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngocminh-dev/tcms-api/internal/models"
	appErrors "github.com/ngocminh-dev/tcms-api/pkg/errors"
	"github.com/ngocminh-dev/tcms-api/pkg/export"
)

type recordingRenderer struct {
	last export.Certificate
}

func (r *recordingRenderer) Render(cert export.Certificate) ([]byte, error) {
	r.last = cert
	return []byte("%PDF-1.4 stub"), nil
}

func newCertificateFixture(status models.CertificateStatus) (*CertificateService, *recordingRenderer) {
	enrollments := &mockEnrollmentRepo{enrollments: map[int64]models.EnrollmentDetail{
		11: {
			Enrollment: models.Enrollment{ID: 11, StudentID: 2, CourseID: 7, Status: status},
			StudentHo:  "Tran Van",
			StudentTen: "Binh",
			StudentMSV: "SV000002",
			CourseCode: "LT-2024-01",
		},
	}}
	courses := &mockCourseRepo{courses: map[int64]models.Course{
		7: {
			ID:         7,
			CourseCode: "LT-2024-01",
			StartDate:  time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2024, 3, 15, 17, 0, 0, 0, time.UTC),
		},
	}}
	renderer := &recordingRenderer{}
	svc := NewCertificateService(enrollments, courses, renderer, nil)
	svc.now = func() time.Time { return time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC) }
	return svc, renderer
}

func TestCertificateServiceRenderPass(t *testing.T) {
	svc, renderer := newCertificateFixture(models.CertificatePass)

	pdf, err := svc.RenderPDF(context.Background(), 11)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))
	assert.Equal(t, "Tran Van Binh", renderer.last.StudentName)
	assert.Equal(t, "SV000002", renderer.last.StudentCode)
	assert.Equal(t, "2024-03-01T08:00:00", renderer.last.CourseStart)
	assert.Equal(t, "2024-04-02", renderer.last.IssuedOn)
	assert.NotEmpty(t, renderer.last.Serial)
}

func TestCertificateServiceRejectsPending(t *testing.T) {
	svc, _ := newCertificateFixture(models.CertificatePending)

	_, err := svc.RenderPDF(context.Background(), 11)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErrors.FromError(err).Code)
}

func TestCertificateServiceRejectsFail(t *testing.T) {
	svc, _ := newCertificateFixture(models.CertificateFail)

	_, err := svc.RenderPDF(context.Background(), 11)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErrors.FromError(err).Code)
}

func TestCertificateServiceNotFound(t *testing.T) {
	svc, _ := newCertificateFixture(models.CertificatePass)

	_, err := svc.RenderPDF(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCertificateServiceRealRendererProducesPDF(t *testing.T) {
	enrollments := &mockEnrollmentRepo{enrollments: map[int64]models.EnrollmentDetail{
		11: {
			Enrollment: models.Enrollment{ID: 11, StudentID: 2, CourseID: 7, Status: models.CertificatePass},
			StudentHo:  "Tran Van",
			StudentTen: "Binh",
			StudentMSV: "SV000002",
			CourseCode: "LT-2024-01",
		},
	}}
	courses := &mockCourseRepo{courses: map[int64]models.Course{
		7: {ID: 7, CourseCode: "LT-2024-01"},
	}}
	svc := NewCertificateService(enrollments, courses, nil, nil)

	pdf, err := svc.RenderPDF(context.Background(), 11)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))
}
