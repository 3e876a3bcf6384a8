package dto

import "github.com/ngocminh-dev/tcms-api/internal/models"

// EnrollmentDTO is the wire shape of an enrollment with its denormalized
// display columns.
type EnrollmentDTO struct {
	ID              int64                    `json:"id"`
	StudentID       int64                    `json:"studentId"`
	StudentFullName string                   `json:"studentFullName"`
	CourseID        int64                    `json:"courseId"`
	CourseCode      string                   `json:"courseCode"`
	EnrollmentDate  DateTime                 `json:"enrollmentDate"`
	Status          models.CertificateStatus `json:"status"`
}

// EnrollRequest registers a student on a course.
type EnrollRequest struct {
	StudentID int64 `json:"studentId" validate:"required,gt=0"`
	CourseID  int64 `json:"courseId" validate:"required,gt=0"`
}

// IssueCertificateRequest sets an enrollment's certificate status. The
// transition is always requested, never computed client-side.
type IssueCertificateRequest struct {
	Status models.CertificateStatus `json:"status" validate:"required"`
}

// EnrollmentHistoryDTO is one row of a student's training history.
type EnrollmentHistoryDTO struct {
	EnrollmentID    int64                    `json:"enrollmentId"`
	CourseCode      string                   `json:"courseCode"`
	CourseContent   string                   `json:"courseContent,omitempty"`
	EnrollmentDate  DateTime                 `json:"enrollmentDate"`
	CourseStartDate DateTime                 `json:"courseStartDate"`
	CourseEndDate   DateTime                 `json:"courseEndDate"`
	Status          models.CertificateStatus `json:"status"`
}

// EnrollmentFromDetail converts a joined enrollment row to its wire shape.
func EnrollmentFromDetail(d models.EnrollmentDetail) EnrollmentDTO {
	return EnrollmentDTO{
		ID:              d.ID,
		StudentID:       d.StudentID,
		StudentFullName: d.StudentFullName(),
		CourseID:        d.CourseID,
		CourseCode:      d.CourseCode,
		EnrollmentDate:  DateTime(d.EnrollmentDate),
		Status:          d.Status,
	}
}

// HistoryFromModel converts a history row to its wire shape.
func HistoryFromModel(h models.EnrollmentHistory) EnrollmentHistoryDTO {
	return EnrollmentHistoryDTO{
		EnrollmentID:    h.EnrollmentID,
		CourseCode:      h.CourseCode,
		CourseContent:   h.CourseContent,
		EnrollmentDate:  DateTime(h.EnrollmentDate),
		CourseStartDate: DateTime(h.CourseStartDate),
		CourseEndDate:   DateTime(h.CourseEndDate),
		Status:          h.Status,
	}
}
