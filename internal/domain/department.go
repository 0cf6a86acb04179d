package domain

import "github.com/google/uuid"

type Department struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CollegeID uuid.UUID `json:"collegeId"`
	College   *College  `json:"College,omitempty"`
}
