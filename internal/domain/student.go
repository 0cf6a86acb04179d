package domain

import "github.com/google/uuid"

type Student struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	Password      string    `json:"-"`
	PersonalEmail string    `json:"personalEmail"`
	PersonID      uuid.UUID `json:"personId"`
	ProjectID     uuid.UUID `json:"projectId"`
	Person        *Person   `json:"Person,omitempty"`
	Project       *Project  `json:"Project,omitempty"`
}
