package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"dept-service/internal/domain"
	apperrors "dept-service/pkg/errors"
	"dept-service/pkg/validate"
)

const (
	resourcePermission = "permission"
	jsonKeyPermission  = "permission"
)

type PermissionHandler struct {
	permissions PermissionRepository
	users       UserGetter
}

func NewPermissionHandler(permissions PermissionRepository, users UserGetter) *PermissionHandler {
	return &PermissionHandler{permissions: permissions, users: users}
}

type PermissionRequest struct {
	UserID         string `json:"userId" validate:"required,uuid"`
	DocType        string `json:"docType" validate:"required,oneof=COLLEGE DEPARTMENT PROJECT STUDENT SUPERVISOR USER PERMISSION"`
	PermissionType string `json:"permissionType" validate:"required,oneof=CREATE READ UPDATE DELETE"`
}

func (r PermissionRequest) toDomain() domain.Permission {
	return domain.Permission{
		UserID:         uuid.MustParse(r.UserID),
		DocType:        domain.DocType(r.DocType),
		PermissionType: domain.PermissionType(r.PermissionType),
	}
}

func (h *PermissionHandler) checkUserExists(c echo.Context, rawUserID string) error {
	userID := uuid.MustParse(rawUserID)

	if _, err := h.users.GetByID(c.Request().Context(), userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(notFoundWithID(resourceUser, rawUserID))
		}
		return err
	}
	return nil
}

func (h *PermissionHandler) List(c echo.Context) error {
	permissions, err := h.permissions.List(c.Request().Context())
	if err != nil {
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeyPermissions, permissions)
}

func (h *PermissionHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	permission, err := h.permissions.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(notFoundWithID(resourcePermission, id.String()))
		}
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeyPermission, permission)
}

func (h *PermissionHandler) Create(c echo.Context) error {
	var req PermissionRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}
	if err := validate.Struct(req); err != nil {
		return err
	}
	if err := h.checkUserExists(c, req.UserID); err != nil {
		return err
	}

	permission, err := h.permissions.Create(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}

	return respondResource(c, http.StatusCreated, jsonKeyPermission, permission)
}

func (h *PermissionHandler) CreateMany(c echo.Context) error {
	var reqs []PermissionRequest
	if err := bindStrictJSON(c, &reqs); err != nil {
		return err
	}
	if len(reqs) == 0 {
		return apperrors.BadRequest(msgEmptyBatch)
	}

	if err := validate.Each(reqs); err != nil {
		return err
	}

	// A batch may grant to several users; verify each one once so a bogus
	// id surfaces as a 404 rather than a constraint violation.
	checked := make(map[string]struct{}, 1)
	perms := make([]domain.Permission, 0, len(reqs))
	for _, req := range reqs {
		if _, ok := checked[req.UserID]; !ok {
			if err := h.checkUserExists(c, req.UserID); err != nil {
				return err
			}
			checked[req.UserID] = struct{}{}
		}
		perms = append(perms, req.toDomain())
	}

	permissions, err := h.permissions.CreateMany(c.Request().Context(), perms)
	if err != nil {
		return err
	}

	return respondResource(c, http.StatusCreated, jsonKeyPermissions, permissions)
}

func (h *PermissionHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req PermissionRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}
	if err := validate.Struct(req); err != nil {
		return err
	}
	if err := h.checkUserExists(c, req.UserID); err != nil {
		return err
	}

	permission, err := h.permissions.Update(c.Request().Context(), id, req.toDomain())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(notFoundWithID(resourcePermission, id.String()))
		}
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeyPermission, permission)
}

func (h *PermissionHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	permission, err := h.permissions.Delete(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(notFoundWithID(resourcePermission, id.String()))
		}
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeyPermission, permission)
}
