package domain

import "github.com/google/uuid"

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Person carries the identity fields shared by supervisors, students, and
// users; each of those rows points at exactly one person.
type Person struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"fullName"`
	CollegeEmail string    `json:"collegeEmail"`
	DateOfBirth  Date      `json:"dateOfBirth"`
	Gender       Gender    `json:"gender"`
	DepartmentID uuid.UUID `json:"departmentId"`
}
