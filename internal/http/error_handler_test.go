package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	apperrors "dept-service/pkg/errors"
)

func handleError(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/colleges", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zap.NewNop())(err, c)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestErrorHandler_AppError(t *testing.T) {
	code, body := handleError(t, apperrors.NotFound("There is no such a college with the id of abc"))

	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "There is no such a college with the id of abc", body["message"])
	assert.Equal(t, float64(http.StatusNotFound), body["status"])
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	code, body := handleError(t, echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"))

	assert.Equal(t, http.StatusMethodNotAllowed, code)
	assert.Equal(t, "Method Not Allowed", body["message"])
}

func TestErrorHandler_UnknownErrorIsSanitized(t *testing.T) {
	code, body := handleError(t, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Something went wrong", body["message"])
}

func TestErrorHandler_InternalAppErrorIsSanitized(t *testing.T) {
	code, body := handleError(t, apperrors.InternalServer("failed to process password", errors.New("boom")))

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Something went wrong", body["message"])
}

func TestErrorHandler_LogsTokenFragment(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/colleges", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer abcdefghijklmnop")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zap.New(core))(apperrors.NotFound("There is no such a college with the id of abc"), c)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "abcdefgh", fields["token"])
	assert.Equal(t, "/colleges", fields["path"])
	assert.Equal(t, http.MethodGet, fields["method"])
}

func TestErrorHandler_LogsTokenFragmentOnInternalError(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer short")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zap.New(core))(errors.New("pq: connection refused"), c)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "short", entries[0].ContextMap()["token"])
}

func TestErrorHandler_NoTokenLogsEmptyFragment(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/colleges", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zap.New(core))(apperrors.BadRequest("name: is required"), c)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "", entries[0].ContextMap()["token"])
}

func TestUnknownRoute(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/definitely/not/a/route", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, unknownRoute(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, false, body["isExistingRoute"])
	assert.Equal(t, "Invalid route", body["message"])
}
