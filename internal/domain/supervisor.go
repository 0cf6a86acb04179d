package domain

import "github.com/google/uuid"

type Supervisor struct {
	ID       uuid.UUID `json:"id"`
	PersonID uuid.UUID `json:"personId"`
	Person   *Person   `json:"Person,omitempty"`
	Projects []Project `json:"Projects,omitempty"`
}
