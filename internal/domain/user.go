package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	Password    string    `json:"-"`
	Token       string    `json:"token"`
	IsActive    bool      `json:"isActive"`
	PersonID    uuid.UUID `json:"personId"`
	DateCreated time.Time `json:"dateCreated"`
	DateUpdated time.Time `json:"dateUpdated"`
	Person      *Person   `json:"Person,omitempty"`
}
