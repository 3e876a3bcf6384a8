package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngocminh-dev/tcms-api/internal/dto"
	"github.com/ngocminh-dev/tcms-api/internal/models"
	appErrors "github.com/ngocminh-dev/tcms-api/pkg/errors"
)

type mockEnrollmentRepo struct {
	enrollments map[int64]models.EnrollmentDetail
	history     []models.EnrollmentHistory
	nextID      int64
}

func (m *mockEnrollmentRepo) List(_ context.Context, _ models.EnrollmentFilter) ([]models.EnrollmentDetail, int, error) {
	out := make([]models.EnrollmentDetail, 0, len(m.enrollments))
	for _, d := range m.enrollments {
		out = append(out, d)
	}
	return out, len(out), nil
}

func (m *mockEnrollmentRepo) FindDetailByID(_ context.Context, id int64) (*models.EnrollmentDetail, error) {
	if d, ok := m.enrollments[id]; ok {
		return &d, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockEnrollmentRepo) Exists(_ context.Context, studentID, courseID int64) (bool, error) {
	for _, d := range m.enrollments {
		if d.StudentID == studentID && d.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockEnrollmentRepo) Create(_ context.Context, enrollment *models.Enrollment) error {
	if m.enrollments == nil {
		m.enrollments = make(map[int64]models.EnrollmentDetail)
	}
	m.nextID++
	enrollment.ID = m.nextID
	enrollment.Status = models.CertificatePending
	enrollment.EnrollmentDate = time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	m.enrollments[enrollment.ID] = models.EnrollmentDetail{
		Enrollment: *enrollment,
		StudentHo:  "Tran Van",
		StudentTen: "Binh",
		StudentMSV: "SV000002",
		CourseCode: "LT-2024-01",
	}
	return nil
}

func (m *mockEnrollmentRepo) UpdateStatus(_ context.Context, id int64, status models.CertificateStatus) error {
	d, ok := m.enrollments[id]
	if !ok {
		return sql.ErrNoRows
	}
	d.Status = status
	m.enrollments[id] = d
	return nil
}

func (m *mockEnrollmentRepo) HistoryByStudent(_ context.Context, _ int64) ([]models.EnrollmentHistory, error) {
	return m.history, nil
}

func newEnrollmentFixture() (*EnrollmentService, *mockEnrollmentRepo) {
	repo := &mockEnrollmentRepo{}
	students := &mockStudentRepo{students: map[int64]models.Student{
		2: {ID: 2, MSV: "SV000002", Ho: "Tran Van", Ten: "Binh"},
	}}
	courses := &mockCourseRepo{courses: map[int64]models.Course{
		7: {ID: 7, CourseCode: "LT-2024-01"},
	}}
	return NewEnrollmentService(repo, students, courses, nil, nil), repo
}

func TestEnrollmentServiceEnrollStartsPending(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	enrollment, err := svc.Enroll(context.Background(), dto.EnrollRequest{StudentID: 2, CourseID: 7})
	require.NoError(t, err)
	assert.Equal(t, models.CertificatePending, enrollment.Status)
	assert.Equal(t, "Tran Van Binh", enrollment.StudentFullName)
	assert.Equal(t, "LT-2024-01", enrollment.CourseCode)
}

func TestEnrollmentServiceEnrollDuplicate(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	_, err := svc.Enroll(context.Background(), dto.EnrollRequest{StudentID: 2, CourseID: 7})
	require.NoError(t, err)

	_, err = svc.Enroll(context.Background(), dto.EnrollRequest{StudentID: 2, CourseID: 7})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentServiceEnrollUnknownStudent(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	_, err := svc.Enroll(context.Background(), dto.EnrollRequest{StudentID: 99, CourseID: 7})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentServiceListRejectsUnknownStatus(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	_, _, err := svc.List(context.Background(), models.EnrollmentFilter{Status: "DONE"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentServiceIssueCertificate(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	enrollment, err := svc.Enroll(context.Background(), dto.EnrollRequest{StudentID: 2, CourseID: 7})
	require.NoError(t, err)

	for _, status := range []models.CertificateStatus{
		models.CertificatePass,
		models.CertificateFail,
		models.CertificatePending,
	} {
		updated, err := svc.IssueCertificate(context.Background(), enrollment.ID, dto.IssueCertificateRequest{Status: status})
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestEnrollmentServiceIssueCertificateInvalidStatus(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	_, err := svc.IssueCertificate(context.Background(), 1, dto.IssueCertificateRequest{Status: "GRADUATED"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentServiceIssueCertificateNotFound(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	_, err := svc.IssueCertificate(context.Background(), 404, dto.IssueCertificateRequest{Status: models.CertificatePass})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentServiceHistory(t *testing.T) {
	svc, repo := newEnrollmentFixture()
	repo.history = []models.EnrollmentHistory{
		{
			EnrollmentID:    1,
			CourseCode:      "LT-2023-05",
			EnrollmentDate:  time.Date(2023, 9, 1, 8, 0, 0, 0, time.UTC),
			CourseStartDate: time.Date(2023, 9, 4, 8, 0, 0, 0, time.UTC),
			CourseEndDate:   time.Date(2023, 9, 15, 17, 0, 0, 0, time.UTC),
			Status:          models.CertificatePass,
		},
	}

	history, err := svc.History(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "LT-2023-05", history[0].CourseCode)
	assert.Equal(t, "2023-09-04T08:00:00", history[0].CourseStartDate.String())
}
