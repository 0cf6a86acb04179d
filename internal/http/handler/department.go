package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "dept-service/pkg/errors"
	"dept-service/pkg/validate"
)

const (
	resourceDepartment = "department"
	jsonKeyDepartment  = "department"
	jsonKeyDepartments = "departments"
)

type DepartmentHandler struct {
	departments DepartmentRepository
}

func NewDepartmentHandler(departments DepartmentRepository) *DepartmentHandler {
	return &DepartmentHandler{departments: departments}
}

type DepartmentRequest struct {
	Name      string `json:"name" validate:"required,max=45"`
	CollegeID string `json:"collegeId" validate:"required,uuid"`
}

func (h *DepartmentHandler) List(c echo.Context) error {
	departments, err := h.departments.List(c.Request().Context())
	if err != nil {
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeyDepartments, departments)
}

func (h *DepartmentHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	department, err := h.departments.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(notFoundWithID(resourceDepartment, id.String()))
		}
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeyDepartment, department)
}

func (h *DepartmentHandler) Create(c echo.Context) error {
	var req DepartmentRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	collegeID := uuid.MustParse(req.CollegeID)

	// Department names only need to be unique within their college.
	if existing, err := h.departments.GetByNameInCollege(ctx, collegeID, req.Name); err == nil && existing != nil {
		return apperrors.Conflict(departmentNameExists(req.Name))
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	department, err := h.departments.Create(ctx, req.Name, collegeID)
	if err != nil {
		return err
	}

	return respondResource(c, http.StatusCreated, jsonKeyDepartment, department)
}

func (h *DepartmentHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req DepartmentRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	if _, err := h.departments.GetByID(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(notFoundWithID(resourceDepartment, id.String()))
		}
		return err
	}

	department, err := h.departments.Update(ctx, id, req.Name, uuid.MustParse(req.CollegeID))
	if err != nil {
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeyDepartment, department)
}

func (h *DepartmentHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	department, err := h.departments.Delete(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(notFoundWithID(resourceDepartment, id.String()))
		}
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeyDepartment, department)
}
