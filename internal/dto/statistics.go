package dto

import "github.com/ngocminh-dev/tcms-api/internal/models"

// DashboardSummaryDTO mirrors models.DashboardSummary on the wire.
type DashboardSummaryDTO struct {
	TotalStudents       int `json:"totalStudents"`
	TotalCourses        int `json:"totalCourses"`
	TotalEnrollments    int `json:"totalEnrollments"`
	PendingCertificates int `json:"pendingCertificates"`
}

// CourseStatsDTO is one per-year aggregation row.
type CourseStatsDTO struct {
	Year                  int `json:"year"`
	TotalCourses          int `json:"totalCourses"`
	TotalStudentsEnrolled int `json:"totalStudentsEnrolled"`
	TotalPass             int `json:"totalPass"`
	TotalFail             int `json:"totalFail"`
}

// ProvinceStats maps province name to resident student count.
type ProvinceStats map[string]int

// SummaryFromModel converts the stored aggregate.
func SummaryFromModel(s models.DashboardSummary) DashboardSummaryDTO {
	return DashboardSummaryDTO{
		TotalStudents:       s.TotalStudents,
		TotalCourses:        s.TotalCourses,
		TotalEnrollments:    s.TotalEnrollments,
		PendingCertificates: s.PendingCertificates,
	}
}

// CourseStatsFromModel converts one aggregation row.
func CourseStatsFromModel(s models.CourseYearStats) CourseStatsDTO {
	return CourseStatsDTO{
		Year:                  s.Year,
		TotalCourses:          s.TotalCourses,
		TotalStudentsEnrolled: s.TotalStudentsEnrolled,
		TotalPass:             s.TotalPass,
		TotalFail:             s.TotalFail,
	}
}
