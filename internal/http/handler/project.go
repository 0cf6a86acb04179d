package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"dept-service/internal/domain"
	apperrors "dept-service/pkg/errors"
	"dept-service/pkg/validate"
)

const (
	resourceProject = "project"
	jsonKeyProject  = "project"
	jsonKeyProjects = "projects"
	jsonKeyURL      = "url"

	formFieldDocument = "document"
)

type ProjectHandler struct {
	projects    ProjectRepository
	documents   DocumentStore
	minPageSize int
	maxPageSize int
}

func NewProjectHandler(projects ProjectRepository, documents DocumentStore, minPageSize, maxPageSize int) *ProjectHandler {
	return &ProjectHandler{
		projects:    projects,
		documents:   documents,
		minPageSize: minPageSize,
		maxPageSize: maxPageSize,
	}
}

// ProjectForm is bound from multipart form values, not JSON; the document
// itself travels as a file part next to these fields.
type ProjectForm struct {
	Name         string `json:"name" validate:"required"`
	Year         int    `json:"year" validate:"required,gt=0"`
	Rate         int    `json:"rate" validate:"gte=0,lte=100"`
	Description  string `json:"description" validate:"max=500"`
	DepartmentID string `json:"departmentId" validate:"required,uuid"`
	SupervisorID string `json:"supervisorId" validate:"required,uuid"`
}

func bindProjectForm(c echo.Context) (ProjectForm, error) {
	form := ProjectForm{
		Name:         c.FormValue("name"),
		Description:  c.FormValue("description"),
		DepartmentID: c.FormValue("departmentId"),
		SupervisorID: c.FormValue("supervisorId"),
	}

	if raw := c.FormValue("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return form, apperrors.BadRequest(fmt.Sprintf(invalidQueryParamFmt, "year"))
		}
		form.Year = year
	}
	if raw := c.FormValue("rate"); raw != "" {
		rate, err := strconv.Atoi(raw)
		if err != nil {
			return form, apperrors.BadRequest(fmt.Sprintf(invalidQueryParamFmt, "rate"))
		}
		form.Rate = rate
	}

	if err := validate.Struct(form); err != nil {
		return form, err
	}
	if current := time.Now().Year(); form.Year > current {
		return form, apperrors.BadRequest(fmt.Sprintf(yearInFutureFmt, current))
	}

	return form, nil
}

func (f ProjectForm) toDomain() domain.Project {
	return domain.Project{
		Name:         f.Name,
		Year:         f.Year,
		Rate:         f.Rate,
		Description:  f.Description,
		DepartmentID: uuid.MustParse(f.DepartmentID),
		SupervisorID: uuid.MustParse(f.SupervisorID),
	}
}

// readDocument buffers the uploaded file in memory; uploads are capped by the
// server-wide body limit well before this becomes a problem.
func readDocument(fh *multipart.FileHeader) ([]byte, string, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, "", apperrors.BadRequest(msgInvalidRequestBody)
	}
	defer file.Close()

	body, err := io.ReadAll(file)
	if err != nil {
		return nil, "", apperrors.BadRequest(msgInvalidRequestBody)
	}

	contentType := fh.Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return body, contentType, nil
}

func (h *ProjectHandler) queryUUID(c echo.Context, name string) (*uuid.UUID, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperrors.BadRequest(fmt.Sprintf(invalidQueryParamFmt, name))
	}
	return &id, nil
}

func (h *ProjectHandler) parseFilters(c echo.Context) (domain.ProjectFilters, error) {
	filters := domain.ProjectFilters{
		Name:       c.QueryParam("name"),
		Supervisor: c.QueryParam("supervisor"),
		Student:    c.QueryParam("student"),
		PageSize:   h.minPageSize,
	}

	var err error
	if filters.ID, err = h.queryUUID(c, "id"); err != nil {
		return filters, err
	}
	if filters.CollegeID, err = h.queryUUID(c, "college"); err != nil {
		return filters, err
	}
	if filters.DepartmentID, err = h.queryUUID(c, "department"); err != nil {
		return filters, err
	}

	if raw := c.QueryParam("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year <= 0 || year > time.Now().Year() {
			return filters, apperrors.BadRequest(fmt.Sprintf(invalidQueryParamFmt, "year"))
		}
		filters.Year = &year
	}

	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			return filters, apperrors.BadRequest(fmt.Sprintf(invalidQueryParamFmt, "page"))
		}
		filters.Page = page
	}

	if raw := c.QueryParam("pageSize"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil || pageSize < 0 {
			return filters, apperrors.BadRequest(fmt.Sprintf(invalidQueryParamFmt, "pageSize"))
		}
		switch {
		case pageSize < h.minPageSize:
			filters.PageSize = h.minPageSize
		case pageSize > h.maxPageSize:
			filters.PageSize = h.maxPageSize
		default:
			filters.PageSize = pageSize
		}
	}

	return filters, nil
}

func (h *ProjectHandler) List(c echo.Context) error {
	filters, err := h.parseFilters(c)
	if err != nil {
		return err
	}

	projects, err := h.projects.List(c.Request().Context(), filters)
	if err != nil {
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeyProjects, projects)
}

func (h *ProjectHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	project, err := h.projects.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(notFoundWithID(resourceProject, id.String()))
		}
		return err
	}

	url, err := h.documents.SignedDownloadURL(project.DocumentPath)
	if err != nil {
		return err
	}

	return respondResources(c, http.StatusOK, map[string]any{
		jsonKeyProject: project,
		jsonKeyURL:     url,
	})
}

func (h *ProjectHandler) Create(c echo.Context) error {
	form, err := bindProjectForm(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile(formFieldDocument)
	if err != nil {
		return apperrors.BadRequest(msgNoFileAttached)
	}

	body, contentType, err := readDocument(fh)
	if err != nil {
		return err
	}

	proj := form.toDomain()
	proj.DocumentCaption = fh.Filename

	project, err := h.projects.Create(c.Request().Context(), proj)
	if err != nil {
		return err
	}

	if err := h.documents.UploadDocument(project.DocumentPath, body, contentType); err != nil {
		return err
	}

	return respondResource(c, http.StatusCreated, jsonKeyProject, project)
}

func (h *ProjectHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	form, err := bindProjectForm(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	existing, err := h.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(notFoundWithID(resourceProject, id.String()))
		}
		return err
	}

	proj := form.toDomain()
	proj.DocumentCaption = existing.DocumentCaption

	if fh, err := c.FormFile(formFieldDocument); err == nil {
		body, contentType, err := readDocument(fh)
		if err != nil {
			return err
		}

		// Replacing the file keeps the object key stable; a failed delete just
		// means the put overwrites the old object.
		_ = h.documents.DeleteDocument(existing.DocumentPath)
		if err := h.documents.UploadDocument(existing.DocumentPath, body, contentType); err != nil {
			return err
		}
		proj.DocumentCaption = fh.Filename
	}

	project, err := h.projects.Update(ctx, id, proj)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(notFoundWithID(resourceProject, id.String()))
		}
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeyProject, project)
}

func (h *ProjectHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	existing, err := h.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(notFoundWithID(resourceProject, id.String()))
		}
		return err
	}

	if err := h.documents.DeleteDocument(existing.DocumentPath); err != nil {
		return err
	}

	project, err := h.projects.Delete(ctx, id)
	if err != nil {
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeyProject, project)
}
