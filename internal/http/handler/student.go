package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"dept-service/internal/domain"
	apperrors "dept-service/pkg/errors"
	"dept-service/pkg/password"
	"dept-service/pkg/validate"
)

const (
	resourceStudent = "student"
	jsonKeyStudent  = "student"
	jsonKeyStudents = "students"
)

type StudentHandler struct {
	students StudentRepository
}

func NewStudentHandler(students StudentRepository) *StudentHandler {
	return &StudentHandler{students: students}
}

type StudentFields struct {
	PersonalEmail string `json:"personalEmail" validate:"required,email"`
	Username      string `json:"username" validate:"required,min=4,max=30"`
	Password      string `json:"password" validate:"required,min=4"`
}

type ProjectRef struct {
	ProjectID string `json:"projectId" validate:"required,uuid"`
}

type StudentRequest struct {
	Student StudentFields `json:"Student" validate:"required"`
	Person  PersonPayload `json:"Person" validate:"required"`
	Project ProjectRef    `json:"Project" validate:"required"`
}

func (r StudentRequest) toDomain() (domain.Student, domain.Person, error) {
	hash, err := password.Hash(r.Student.Password)
	if err != nil {
		return domain.Student{}, domain.Person{}, apperrors.InternalServer(msgPasswordProcessFail, err)
	}

	st := domain.Student{
		Username:      r.Student.Username,
		Password:      hash,
		PersonalEmail: r.Student.PersonalEmail,
		ProjectID:     uuid.MustParse(r.Project.ProjectID),
	}

	return st, r.Person.toDomain(), nil
}

func (h *StudentHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	var students []domain.Student
	var err error
	if name := c.QueryParam("name"); name != "" {
		students, err = h.students.FindByName(ctx, name)
	} else {
		students, err = h.students.List(ctx)
	}
	if err != nil {
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeyStudents, students)
}

func (h *StudentHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	student, err := h.students.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(notFoundWithID(resourceStudent, id.String()))
		}
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeyStudent, student)
}

func (h *StudentHandler) Create(c echo.Context) error {
	var req StudentRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}
	if err := validate.Struct(req); err != nil {
		return err
	}
	if err := req.Person.checkDate(); err != nil {
		return err
	}

	ctx := c.Request().Context()

	exists, err := h.students.ExistsByEmail(ctx, req.Student.PersonalEmail)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.Conflict(studentEmailExists(req.Student.PersonalEmail))
	}

	st, person, err := req.toDomain()
	if err != nil {
		return err
	}

	student, err := h.students.Create(ctx, st, person)
	if err != nil {
		return err
	}

	return respondResource(c, http.StatusCreated, jsonKeyStudent, student)
}

func (h *StudentHandler) CreateMany(c echo.Context) error {
	var reqs []StudentRequest
	if err := bindStrictJSON(c, &reqs); err != nil {
		return err
	}
	if len(reqs) == 0 {
		return apperrors.BadRequest(msgEmptyBatch)
	}

	if err := validate.Each(reqs); err != nil {
		return err
	}

	students := make([]domain.Student, 0, len(reqs))
	persons := make([]domain.Person, 0, len(reqs))
	for _, req := range reqs {
		if err := req.Person.checkDate(); err != nil {
			return err
		}

		st, person, err := req.toDomain()
		if err != nil {
			return err
		}
		students = append(students, st)
		persons = append(persons, person)
	}

	created, err := h.students.CreateMany(c.Request().Context(), students, persons)
	if err != nil {
		return err
	}

	return respondResource(c, http.StatusCreated, jsonKeyStudents, created)
}

func (h *StudentHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req StudentRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}
	if err := validate.Struct(req); err != nil {
		return err
	}
	if err := req.Person.checkDate(); err != nil {
		return err
	}

	st, person, err := req.toDomain()
	if err != nil {
		return err
	}

	student, err := h.students.Update(c.Request().Context(), id, st, person)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(notFoundWithID(resourceStudent, id.String()))
		}
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeyStudent, student)
}

func (h *StudentHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	student, err := h.students.Delete(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(notFoundWithID(resourceStudent, id.String()))
		}
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeyStudent, student)
}
