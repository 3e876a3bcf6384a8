package models

import "time"

// CertificateStatus is the lifecycle state of an enrollment's outcome.
// Carried as a plain string on the wire; no numeric coding.
type CertificateStatus string

const (
	CertificatePending CertificateStatus = "PENDING"
	CertificatePass    CertificateStatus = "PASS"
	CertificateFail    CertificateStatus = "FAIL"
)

// Valid reports whether the status belongs to the closed enumeration.
func (s CertificateStatus) Valid() bool {
	switch s {
	case CertificatePending, CertificatePass, CertificateFail:
		return true
	}
	return false
}

// Enrollment links a student to a course. Status starts at PENDING and moves
// only through the explicit certificate issuance action.
type Enrollment struct {
	ID             int64             `db:"id"`
	StudentID      int64             `db:"student_id"`
	CourseID       int64             `db:"course_id"`
	EnrollmentDate time.Time         `db:"enrollment_date"`
	Status         CertificateStatus `db:"status"`
	CreatedAt      time.Time         `db:"created_at"`
	UpdatedAt      time.Time         `db:"updated_at"`
}

// EnrollmentDetail carries the denormalized display columns joined from the
// student and course tables.
type EnrollmentDetail struct {
	Enrollment
	StudentHo  string `db:"student_ho"`
	StudentTen string `db:"student_ten"`
	StudentMSV string `db:"student_msv"`
	CourseCode string `db:"course_code"`
}

// StudentFullName derives the denormalized display name.
func (d EnrollmentDetail) StudentFullName() string {
	return Student{Ho: d.StudentHo, Ten: d.StudentTen}.FullName()
}

// EnrollmentHistory is one row of a student's training history.
type EnrollmentHistory struct {
	EnrollmentID    int64             `db:"enrollment_id"`
	CourseCode      string            `db:"course_code"`
	CourseContent   string            `db:"course_content"`
	EnrollmentDate  time.Time         `db:"enrollment_date"`
	CourseStartDate time.Time         `db:"course_start_date"`
	CourseEndDate   time.Time         `db:"course_end_date"`
	Status          CertificateStatus `db:"status"`
}

// EnrollmentFilter captures filtering criteria for listing enrollments.
type EnrollmentFilter struct {
	StudentID int64
	CourseID  int64
	Status    CertificateStatus
	Page      int
	PageSize  int
}
