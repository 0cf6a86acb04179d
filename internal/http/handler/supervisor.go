package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"dept-service/internal/domain"
	apperrors "dept-service/pkg/errors"
	"dept-service/pkg/validate"
)

const (
	resourceSupervisor = "supervisor"
	jsonKeySupervisor  = "supervisor"
	jsonKeySupervisors = "supervisors"
)

type SupervisorHandler struct {
	supervisors SupervisorRepository
}

func NewSupervisorHandler(supervisors SupervisorRepository) *SupervisorHandler {
	return &SupervisorHandler{supervisors: supervisors}
}

type SupervisorRequest struct {
	Person PersonPayload `json:"Person" validate:"required"`
}

func (h *SupervisorHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	var supervisors []domain.Supervisor
	var err error
	if name := c.QueryParam("name"); name != "" {
		supervisors, err = h.supervisors.FindByName(ctx, name)
	} else {
		supervisors, err = h.supervisors.List(ctx)
	}
	if err != nil {
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeySupervisors, supervisors)
}

func (h *SupervisorHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	supervisor, err := h.supervisors.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(notFoundWithID(resourceSupervisor, id.String()))
		}
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeySupervisor, supervisor)
}

func (h *SupervisorHandler) Create(c echo.Context) error {
	var req SupervisorRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}
	if err := validate.Struct(req); err != nil {
		return err
	}
	if err := req.Person.checkDate(); err != nil {
		return err
	}

	supervisor, err := h.supervisors.Create(c.Request().Context(), req.Person.toDomain())
	if err != nil {
		return err
	}

	return respondResource(c, http.StatusCreated, jsonKeySupervisor, supervisor)
}

func (h *SupervisorHandler) CreateMany(c echo.Context) error {
	var reqs []SupervisorRequest
	if err := bindStrictJSON(c, &reqs); err != nil {
		return err
	}
	if len(reqs) == 0 {
		return apperrors.BadRequest(msgEmptyBatch)
	}

	if err := validate.Each(reqs); err != nil {
		return err
	}

	persons := make([]domain.Person, 0, len(reqs))
	for _, req := range reqs {
		if err := req.Person.checkDate(); err != nil {
			return err
		}
		persons = append(persons, req.Person.toDomain())
	}

	supervisors, err := h.supervisors.CreateMany(c.Request().Context(), persons)
	if err != nil {
		return err
	}

	return respondResource(c, http.StatusCreated, jsonKeySupervisors, supervisors)
}

func (h *SupervisorHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req SupervisorRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}
	if err := validate.Struct(req); err != nil {
		return err
	}
	if err := req.Person.checkDate(); err != nil {
		return err
	}

	supervisor, err := h.supervisors.Update(c.Request().Context(), id, req.Person.toDomain())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(notFoundWithID(resourceSupervisor, id.String()))
		}
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeySupervisor, supervisor)
}

func (h *SupervisorHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	supervisor, err := h.supervisors.Delete(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(notFoundWithID(resourceSupervisor, id.String()))
		}
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeySupervisor, supervisor)
}
