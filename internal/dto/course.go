package dto

import "github.com/ngocminh-dev/tcms-api/internal/models"

// CourseDTO is the wire shape of a course record.
type CourseDTO struct {
	ID         int64    `json:"id"`
	CourseCode string   `json:"courseCode"`
	StartDate  DateTime `json:"startDate"`
	EndDate    DateTime `json:"endDate"`
	Content    string   `json:"content,omitempty"`
}

// CreateCourseRequest is the payload for opening a course.
type CreateCourseRequest struct {
	CourseCode string   `json:"courseCode" validate:"required"`
	StartDate  DateTime `json:"startDate" validate:"required"`
	EndDate    DateTime `json:"endDate" validate:"required"`
	Content    string   `json:"content"`
}

// UpdateCourseRequest is the payload for updating a course.
type UpdateCourseRequest struct {
	CourseCode string   `json:"courseCode" validate:"required"`
	StartDate  DateTime `json:"startDate" validate:"required"`
	EndDate    DateTime `json:"endDate" validate:"required"`
	Content    string   `json:"content"`
}

// CourseFromModel converts a stored course to its wire shape.
func CourseFromModel(c models.Course) CourseDTO {
	return CourseDTO{
		ID:         c.ID,
		CourseCode: c.CourseCode,
		StartDate:  DateTime(c.StartDate),
		EndDate:    DateTime(c.EndDate),
		Content:    c.Content,
	}
}
