package handler

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "dept-service/pkg/errors"
	"dept-service/pkg/validate"
)

const (
	contentTypeJSON          = "application/json"
	maxStrictBodyBytes int64 = 1 << 20 // Keep parser bound aligned with global body limit.

	paramID = "id"
)

func bindStrictJSON(c echo.Context, dst any) error {
	if !strings.HasPrefix(strings.ToLower(c.Request().Header.Get(echo.HeaderContentType)), contentTypeJSON) {
		return apperrors.BadRequest(msgContentTypeJSONRequired)
	}

	body := io.LimitReader(c.Request().Body, maxStrictBodyBytes)
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return apperrors.BadRequest(msgInvalidRequestBody)
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return apperrors.BadRequest(msgInvalidRequestBody)
	}

	return nil
}

func pathID(c echo.Context) (uuid.UUID, error) {
	return validate.UUID(c.Param(paramID))
}
