package domain

import "github.com/google/uuid"

type College struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Departments []Department `json:"Departments,omitempty"`
}
