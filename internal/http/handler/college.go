package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "dept-service/pkg/errors"
	"dept-service/pkg/validate"
)

const (
	resourceCollege = "college"
	jsonKeyCollege  = "college"
	jsonKeyColleges = "colleges"
)

type CollegeHandler struct {
	colleges CollegeRepository
}

func NewCollegeHandler(colleges CollegeRepository) *CollegeHandler {
	return &CollegeHandler{colleges: colleges}
}

type CollegeRequest struct {
	Name string `json:"name" validate:"required,max=35"`
}

func (h *CollegeHandler) List(c echo.Context) error {
	colleges, err := h.colleges.List(c.Request().Context())
	if err != nil {
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeyColleges, colleges)
}

func (h *CollegeHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	college, err := h.colleges.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(notFoundWithID(resourceCollege, id.String()))
		}
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeyCollege, college)
}

func (h *CollegeHandler) Create(c echo.Context) error {
	var req CollegeRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	if existing, err := h.colleges.GetByName(ctx, req.Name); err == nil && existing != nil {
		return apperrors.Conflict(collegeNameExists(req.Name))
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	college, err := h.colleges.Create(ctx, req.Name)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.Conflict(collegeNameExists(req.Name))
		}
		return err
	}

	return respondResource(c, http.StatusCreated, jsonKeyCollege, college)
}

func (h *CollegeHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req CollegeRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	if _, err := h.colleges.GetByID(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(notFoundWithID(resourceCollege, id.String()))
		}
		return err
	}

	college, err := h.colleges.Update(ctx, id, req.Name)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.Conflict(collegeNameExists(req.Name))
		}
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeyCollege, college)
}

func (h *CollegeHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	college, err := h.colleges.Delete(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(notFoundWithID(resourceCollege, id.String()))
		}
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeyCollege, college)
}
