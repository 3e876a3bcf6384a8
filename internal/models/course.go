package models

import "time"

// Course represents a training course. Start and end are wall-clock local
// times without zone; they are persisted as timestamp without time zone and
// serialized in the wire format handled by the dto package.
type Course struct {
	ID         int64     `db:"id"`
	CourseCode string    `db:"course_code"`
	StartDate  time.Time `db:"start_date"`
	EndDate    time.Time `db:"end_date"`
	Content    string    `db:"content"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// CourseFilter captures filtering criteria for listing courses.
type CourseFilter struct {
	Search    string
	Year      int
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
