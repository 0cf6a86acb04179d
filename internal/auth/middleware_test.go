package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dept-service/internal/domain"
	apperrors "dept-service/pkg/errors"
)

type stubUserLookup struct {
	user *domain.User
	err  error
}

func (s *stubUserLookup) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.user, s.err
}

type stubGrantLookup struct {
	allowed bool
	err     error
}

func (s *stubGrantLookup) Exists(ctx context.Context, userID uuid.UUID, docType domain.DocType, permissionType domain.PermissionType) (bool, error) {
	return s.allowed, s.err
}

func newTestContext(t *testing.T, authHeader string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/colleges", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestRequireAuth_MissingToken(t *testing.T) {
	m := NewMiddleware(NewTokenService(testSecret), &stubUserLookup{}, &stubGrantLookup{})

	err := m.RequireAuth()(okHandler)(newTestContext(t, ""))

	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperrors.StatusOf(err))
	assert.Contains(t, err.Error(), "No token were provided")
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	m := NewMiddleware(NewTokenService(testSecret), &stubUserLookup{}, &stubGrantLookup{})

	err := m.RequireAuth()(okHandler)(newTestContext(t, "Bearer garbage"))

	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperrors.StatusOf(err))
	assert.Contains(t, err.Error(), "Invalid Token")
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	ts := NewTokenService(testSecret)
	m := NewMiddleware(ts, &stubUserLookup{}, &stubGrantLookup{})

	token, err := ts.Issue("jdoe", 0)
	require.NoError(t, err)

	err = m.RequireAuth()(okHandler)(newTestContext(t, "Bearer "+token))

	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperrors.StatusOf(err))
}

func TestRequireAuth_ValidTokenSetsContext(t *testing.T) {
	ts := NewTokenService(testSecret)
	m := NewMiddleware(ts, &stubUserLookup{}, &stubGrantLookup{})

	token, err := ts.Issue("jdoe", time.Hour)
	require.NoError(t, err)

	c := newTestContext(t, "Bearer "+token)
	err = m.RequireAuth()(okHandler)(c)

	require.NoError(t, err)
	assert.Equal(t, "jdoe", c.Get(ContextKeyUsername))
	assert.Equal(t, token, c.Get(ContextKeyToken))
}

func TestRequirePermission_UnknownUser(t *testing.T) {
	ts := NewTokenService(testSecret)
	users := &stubUserLookup{err: apperrors.NotFound("There is no such a user")}
	m := NewMiddleware(ts, users, &stubGrantLookup{allowed: true})

	token, err := ts.Issue("ghost", time.Hour)
	require.NoError(t, err)

	err = m.RequirePermission(domain.DocTypeCollege, domain.PermissionCreate)(okHandler)(newTestContext(t, "Bearer "+token))

	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperrors.StatusOf(err))
	assert.Contains(t, err.Error(), "You are not allowed to do that")
}

func TestRequirePermission_NoGrant(t *testing.T) {
	ts := NewTokenService(testSecret)
	users := &stubUserLookup{user: &domain.User{ID: uuid.New(), Username: "jdoe"}}
	m := NewMiddleware(ts, users, &stubGrantLookup{allowed: false})

	token, err := ts.Issue("jdoe", time.Hour)
	require.NoError(t, err)

	err = m.RequirePermission(domain.DocTypeCollege, domain.PermissionCreate)(okHandler)(newTestContext(t, "Bearer "+token))

	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperrors.StatusOf(err))
}

func TestRequirePermission_WithGrant(t *testing.T) {
	ts := NewTokenService(testSecret)
	users := &stubUserLookup{user: &domain.User{ID: uuid.New(), Username: "jdoe"}}
	m := NewMiddleware(ts, users, &stubGrantLookup{allowed: true})

	token, err := ts.Issue("jdoe", time.Hour)
	require.NoError(t, err)

	err = m.RequirePermission(domain.DocTypeCollege, domain.PermissionCreate)(okHandler)(newTestContext(t, "Bearer "+token))

	assert.NoError(t, err)
}

func TestRequirePermission_ExpiredTokenStillDecodes(t *testing.T) {
	ts := NewTokenService(testSecret)
	users := &stubUserLookup{user: &domain.User{ID: uuid.New(), Username: "jdoe"}}
	m := NewMiddleware(ts, users, &stubGrantLookup{allowed: true})

	// The permission gate decodes without checking expiry; the auth gate in
	// front of it is what rejects stale tokens.
	token, err := ts.Issue("jdoe", 0)
	require.NoError(t, err)

	err = m.RequirePermission(domain.DocTypeCollege, domain.PermissionCreate)(okHandler)(newTestContext(t, "Bearer "+token))

	assert.NoError(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	assert.Equal(t, "abc", extractBearerToken(newTestContext(t, "Bearer abc")))
	assert.Equal(t, "abc", extractBearerToken(newTestContext(t, "bearer abc")))
	assert.Equal(t, "", extractBearerToken(newTestContext(t, "Basic abc")))
	assert.Equal(t, "", extractBearerToken(newTestContext(t, "Bearer")))
	assert.Equal(t, "", extractBearerToken(newTestContext(t, "")))
}
