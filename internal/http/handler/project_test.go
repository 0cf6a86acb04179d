package handler

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dept-service/internal/domain"
	apperrors "dept-service/pkg/errors"
)

type stubProjectRepo struct {
	listFn    func(ctx context.Context, filters domain.ProjectFilters) ([]domain.Project, error)
	getByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	createFn  func(ctx context.Context, proj domain.Project) (*domain.Project, error)
	updateFn  func(ctx context.Context, id uuid.UUID, proj domain.Project) (*domain.Project, error)
	deleteFn  func(ctx context.Context, id uuid.UUID) (*domain.Project, error)
}

func (s *stubProjectRepo) List(ctx context.Context, filters domain.ProjectFilters) ([]domain.Project, error) {
	return s.listFn(ctx, filters)
}

func (s *stubProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubProjectRepo) Create(ctx context.Context, proj domain.Project) (*domain.Project, error) {
	return s.createFn(ctx, proj)
}

func (s *stubProjectRepo) Update(ctx context.Context, id uuid.UUID, proj domain.Project) (*domain.Project, error) {
	return s.updateFn(ctx, id, proj)
}

func (s *stubProjectRepo) Delete(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return s.deleteFn(ctx, id)
}

type stubDocumentStore struct {
	uploads   []string
	deletes   []string
	signedURL string
	uploadErr error
}

func (s *stubDocumentStore) UploadDocument(documentPath string, body []byte, contentType string) error {
	s.uploads = append(s.uploads, documentPath)
	return s.uploadErr
}

func (s *stubDocumentStore) DeleteDocument(documentPath string) error {
	s.deletes = append(s.deletes, documentPath)
	return nil
}

func (s *stubDocumentStore) SignedDownloadURL(documentPath string) (string, error) {
	return s.signedURL, nil
}

func newProjectHandler(repo *stubProjectRepo, store *stubDocumentStore) *ProjectHandler {
	return NewProjectHandler(repo, store, 10, 50)
}

func listContext(t *testing.T, query string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/projects"+query, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func captureFilters(t *testing.T, query string) domain.ProjectFilters {
	t.Helper()
	var captured domain.ProjectFilters
	repo := &stubProjectRepo{
		listFn: func(ctx context.Context, filters domain.ProjectFilters) ([]domain.Project, error) {
			captured = filters
			return nil, nil
		},
	}
	h := newProjectHandler(repo, &stubDocumentStore{})
	require.NoError(t, h.List(listContext(t, query)))
	return captured
}

func TestProjectHandler_ListDefaultPageSize(t *testing.T) {
	filters := captureFilters(t, "")
	assert.Equal(t, 10, filters.PageSize)
	assert.Equal(t, 0, filters.Page)
}

func TestProjectHandler_ListClampsPageSize(t *testing.T) {
	assert.Equal(t, 10, captureFilters(t, "?pageSize=3").PageSize)
	assert.Equal(t, 50, captureFilters(t, "?pageSize=500").PageSize)
	assert.Equal(t, 25, captureFilters(t, "?pageSize=25").PageSize)
}

func TestProjectHandler_ListParsesFilters(t *testing.T) {
	collegeID := uuid.New()
	query := fmt.Sprintf("?name=robot&supervisor=smith&student=jones&year=2023&page=2&college=%s", collegeID)

	filters := captureFilters(t, query)

	assert.Equal(t, "robot", filters.Name)
	assert.Equal(t, "smith", filters.Supervisor)
	assert.Equal(t, "jones", filters.Student)
	require.NotNil(t, filters.Year)
	assert.Equal(t, 2023, *filters.Year)
	assert.Equal(t, 2, filters.Page)
	require.NotNil(t, filters.CollegeID)
	assert.Equal(t, collegeID, *filters.CollegeID)
	assert.Nil(t, filters.DepartmentID)
}

func TestProjectHandler_ListRejectsBadParams(t *testing.T) {
	h := newProjectHandler(&stubProjectRepo{}, &stubDocumentStore{})

	for _, query := range []string{
		"?college=not-a-uuid",
		"?department=nope",
		"?id=nope",
		"?year=abc",
		"?year=" + strconv.Itoa(time.Now().Year()+1),
		"?page=-1",
	} {
		err := h.List(listContext(t, query))
		require.Error(t, err, query)
		assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err), query)
	}
}

func multipartRequest(t *testing.T, fields map[string]string, fileName string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("document", fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 test"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/projects", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func validProjectFields() map[string]string {
	return map[string]string{
		"name":         "Line Follower",
		"year":         "2023",
		"rate":         "4",
		"description":  "A small autonomous robot.",
		"departmentId": uuid.NewString(),
		"supervisorId": uuid.NewString(),
	}
}

func TestProjectHandler_CreateRequiresFile(t *testing.T) {
	h := newProjectHandler(&stubProjectRepo{}, &stubDocumentStore{})

	c, _ := multipartRequest(t, validProjectFields(), "")
	err := h.Create(c)

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))
	assert.Equal(t, "No file attached", err.Error())
}

func TestProjectHandler_CreateUploadsDocument(t *testing.T) {
	documentPath := uuid.NewString()
	repo := &stubProjectRepo{
		createFn: func(ctx context.Context, proj domain.Project) (*domain.Project, error) {
			created := proj
			created.ID = uuid.New()
			created.DocumentPath = documentPath
			return &created, nil
		},
	}
	store := &stubDocumentStore{}
	h := newProjectHandler(repo, store)

	c, rec := multipartRequest(t, validProjectFields(), "thesis.pdf")
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, store.uploads, 1)
	assert.Equal(t, documentPath, store.uploads[0])
	assert.Contains(t, rec.Body.String(), `"thesis.pdf"`)
}

func TestProjectHandler_CreateRejectsFutureYear(t *testing.T) {
	h := newProjectHandler(&stubProjectRepo{}, &stubDocumentStore{})

	fields := validProjectFields()
	fields["year"] = strconv.Itoa(time.Now().Year() + 1)

	c, _ := multipartRequest(t, fields, "thesis.pdf")
	err := h.Create(c)

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))
	assert.Contains(t, err.Error(), "year: must be less than or equal to")
}

func TestProjectHandler_GetIncludesSignedURL(t *testing.T) {
	id := uuid.New()
	repo := &stubProjectRepo{
		getByIDFn: func(ctx context.Context, got uuid.UUID) (*domain.Project, error) {
			return &domain.Project{ID: got, Name: "Line Follower", DocumentPath: "abc"}, nil
		},
	}
	store := &stubDocumentStore{signedURL: "https://bucket.example/abc.pdf?sig=x"}
	h := newProjectHandler(repo, store)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/projects/"+id.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, h.Get(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), store.signedURL)
}

func TestProjectHandler_DeleteRemovesDocumentFirst(t *testing.T) {
	id := uuid.New()
	repo := &stubProjectRepo{
		getByIDFn: func(ctx context.Context, got uuid.UUID) (*domain.Project, error) {
			return &domain.Project{ID: got, DocumentPath: "abc"}, nil
		},
		deleteFn: func(ctx context.Context, got uuid.UUID) (*domain.Project, error) {
			return &domain.Project{ID: got}, nil
		},
	}
	store := &stubDocumentStore{}
	h := newProjectHandler(repo, store)

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/projects/"+id.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, h.Delete(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"abc"}, store.deletes)
}
