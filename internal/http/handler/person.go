package handler

import (
	"github.com/google/uuid"

	"dept-service/internal/domain"
	apperrors "dept-service/pkg/errors"
)

// PersonPayload is the shared identity block carried by supervisor, student,
// and user bodies.
type PersonPayload struct {
	FullName     string      `json:"fullName" validate:"required,max=50"`
	DateOfBirth  domain.Date `json:"dateOfBirth"`
	CollegeEmail string      `json:"collegeEmail" validate:"required,email"`
	Gender       string      `json:"gender" validate:"omitempty,oneof=Male Female"`
	DepartmentID string      `json:"departmentId" validate:"required,uuid"`
}

// toDomain applies the gender default and assumes the payload has already
// passed validation.
func (p PersonPayload) toDomain() domain.Person {
	gender := domain.Gender(p.Gender)
	if gender == "" {
		gender = domain.GenderMale
	}

	return domain.Person{
		FullName:     p.FullName,
		CollegeEmail: p.CollegeEmail,
		DateOfBirth:  p.DateOfBirth,
		Gender:       gender,
		DepartmentID: uuid.MustParse(p.DepartmentID),
	}
}

// checkDate covers the one constraint the tag set cannot express: the date
// parses through a custom type, so required-ness is checked by hand.
func (p PersonPayload) checkDate() error {
	if p.DateOfBirth.IsZero() {
		return apperrors.BadRequest(requiredPersonDateField)
	}
	return nil
}
