package domain

import "github.com/google/uuid"

type Project struct {
	ID              uuid.UUID   `json:"id"`
	Name            string      `json:"name"`
	Year            int         `json:"year"`
	Rate            int         `json:"rate"`
	Description     string      `json:"description"`
	DocumentCaption string      `json:"documentCaption"`
	DocumentPath    string      `json:"documentPath"`
	DepartmentID    uuid.UUID   `json:"departmentId"`
	SupervisorID    uuid.UUID   `json:"supervisorId"`
	Department      *Department `json:"Department,omitempty"`
	Supervisor      *Supervisor `json:"Supervisor,omitempty"`
	Students        []Student   `json:"Students,omitempty"`
}

// ProjectFilters narrows the project listing. Zero values mean "not set";
// pointer fields distinguish absent from zero.
type ProjectFilters struct {
	ID           *uuid.UUID
	Name         string
	CollegeID    *uuid.UUID
	DepartmentID *uuid.UUID
	Supervisor   string
	Student      string
	Year         *int
	Page         int
	PageSize     int
}
