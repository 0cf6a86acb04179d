package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "dept-service/pkg/errors"
)

const (
	msgSomethingWentWrong = "Something went wrong"

	jsonKeyMessage = "message"
	jsonKeyStatus  = "status"

	tokenFragmentLen = 8
)

// NewHTTPErrorHandler maps handler errors to the wire format {message, status}.
// Internal errors are logged with request context and never leak details to
// the client.
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := msgSomethingWentWrong

		var appErr *apperrors.AppError
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			code = appErr.Status
			if code < http.StatusInternalServerError {
				message = appErr.Message
			}
		case errors.As(err, &httpErr):
			code = httpErr.Code
			if code < http.StatusInternalServerError {
				message = fmt.Sprintf("%v", httpErr.Message)
			}
		}

		if code >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", code),
				zap.String("token", tokenFragment(c)),
				zap.Error(err),
			)
		} else {
			logger.Warn("request rejected",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", code),
				zap.String("token", tokenFragment(c)),
				zap.String("reason", message),
			)
		}

		if err := c.JSON(code, map[string]any{
			jsonKeyMessage: message,
			jsonKeyStatus:  code,
		}); err != nil {
			logger.Error("failed to write error response", zap.Error(err))
		}
	}
}

// tokenFragment returns a short prefix of the request's bearer token, enough
// to correlate a failure with a session without recording the credential.
func tokenFragment(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return ""
	}
	if len(token) > tokenFragmentLen {
		token = token[:tokenFragmentLen]
	}
	return token
}
