package models

import "time"

// Student represents a trainee stored in the students table. Ho is the
// surname, Ten the given name; the full name shown to clients is derived
// from the pair, never stored.
type Student struct {
	ID                int64     `db:"id"`
	MSV               string    `db:"msv"`
	Ho                string    `db:"ho"`
	Ten               string    `db:"ten"`
	DateOfBirth       time.Time `db:"date_of_birth"`
	Hometown          string    `db:"hometown"`
	ResidenceProvince string    `db:"residence_province"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// FullName derives the display name from the surname/given-name pair.
func (s Student) FullName() string {
	if s.Ho == "" {
		return s.Ten
	}
	if s.Ten == "" {
		return s.Ho
	}
	return s.Ho + " " + s.Ten
}

// StudentFilter captures filtering criteria for listing students.
type StudentFilter struct {
	Search    string
	Province  string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
