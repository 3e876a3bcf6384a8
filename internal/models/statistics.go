package models

// DashboardSummary is the read-only aggregate shown on the landing page.
type DashboardSummary struct {
	TotalStudents       int `db:"total_students" json:"totalStudents"`
	TotalCourses        int `db:"total_courses" json:"totalCourses"`
	TotalEnrollments    int `db:"total_enrollments" json:"totalEnrollments"`
	PendingCertificates int `db:"pending_certificates" json:"pendingCertificates"`
}

// CourseYearStats aggregates course activity per calendar year.
type CourseYearStats struct {
	Year                  int `db:"year" json:"year"`
	TotalCourses          int `db:"total_courses" json:"totalCourses"`
	TotalStudentsEnrolled int `db:"total_students_enrolled" json:"totalStudentsEnrolled"`
	TotalPass             int `db:"total_pass" json:"totalPass"`
	TotalFail             int `db:"total_fail" json:"totalFail"`
}

// ProvinceCount is one row of the per-province student distribution.
type ProvinceCount struct {
	Province string `db:"province"`
	Count    int    `db:"count"`
}
