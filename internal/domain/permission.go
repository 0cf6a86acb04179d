package domain

import (
	"fmt"

	"github.com/google/uuid"
)

type DocType string

const (
	DocTypeCollege    DocType = "COLLEGE"
	DocTypeDepartment DocType = "DEPARTMENT"
	DocTypeProject    DocType = "PROJECT"
	DocTypeStudent    DocType = "STUDENT"
	DocTypeSupervisor DocType = "SUPERVISOR"
	DocTypeUser       DocType = "USER"
	DocTypePermission DocType = "PERMISSION"
)

type PermissionType string

const (
	PermissionCreate PermissionType = "CREATE"
	PermissionRead   PermissionType = "READ"
	PermissionUpdate PermissionType = "UPDATE"
	PermissionDelete PermissionType = "DELETE"
)

const (
	errInvalidDocTypeFmt        = "invalid doc type: %s"
	errInvalidPermissionTypeFmt = "invalid permission type: %s"
)

func (d DocType) Validate() error {
	switch d {
	case DocTypeCollege, DocTypeDepartment, DocTypeProject, DocTypeStudent,
		DocTypeSupervisor, DocTypeUser, DocTypePermission:
		return nil
	default:
		return fmt.Errorf(errInvalidDocTypeFmt, d)
	}
}

func (p PermissionType) Validate() error {
	switch p {
	case PermissionCreate, PermissionRead, PermissionUpdate, PermissionDelete:
		return nil
	default:
		return fmt.Errorf(errInvalidPermissionTypeFmt, p)
	}
}

// Permission is one grant row. Duplicates are allowed; authorization asks
// only whether at least one matching row exists.
type Permission struct {
	ID             uuid.UUID      `json:"id"`
	UserID         uuid.UUID      `json:"userId"`
	DocType        DocType        `json:"docType"`
	PermissionType PermissionType `json:"permissionType"`
}
