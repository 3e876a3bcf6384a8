package dto

import "github.com/ngocminh-dev/tcms-api/internal/models"

// StudentDTO is the wire shape of a student record.
type StudentDTO struct {
	ID                int64  `json:"id"`
	MSV               string `json:"msv"`
	FullName          string `json:"fullName"`
	Ho                string `json:"ho"`
	Ten               string `json:"ten"`
	DateOfBirth       Date   `json:"dateOfBirth"`
	Hometown          string `json:"hometown,omitempty"`
	ResidenceProvince string `json:"residenceProvince,omitempty"`
}

// CreateStudentRequest is the payload for registering a student.
type CreateStudentRequest struct {
	Ho                string `json:"ho" validate:"required"`
	Ten               string `json:"ten" validate:"required"`
	DateOfBirth       Date   `json:"dateOfBirth" validate:"required"`
	Hometown          string `json:"hometown"`
	ResidenceProvince string `json:"residenceProvince"`
}

// UpdateStudentRequest is the payload for updating a student.
type UpdateStudentRequest struct {
	Ho                string `json:"ho" validate:"required"`
	Ten               string `json:"ten" validate:"required"`
	DateOfBirth       Date   `json:"dateOfBirth" validate:"required"`
	Hometown          string `json:"hometown"`
	ResidenceProvince string `json:"residenceProvince"`
}

// StudentFromModel converts a stored student to its wire shape.
func StudentFromModel(s models.Student) StudentDTO {
	return StudentDTO{
		ID:                s.ID,
		MSV:               s.MSV,
		FullName:          s.FullName(),
		Ho:                s.Ho,
		Ten:               s.Ten,
		DateOfBirth:       Date(s.DateOfBirth),
		Hometown:          s.Hometown,
		ResidenceProvince: s.ResidenceProvince,
	}
}
