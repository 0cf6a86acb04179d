package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// respondResource writes the `{"success":true,"<key>":...}` envelope every
// success response uses.
func respondResource(c echo.Context, status int, key string, value any) error {
	return c.JSON(status, map[string]any{jsonKeySuccess: true, key: value})
}

// respondResources is respondResource for envelopes carrying extra keys.
func respondResources(c echo.Context, status int, pairs map[string]any) error {
	body := map[string]any{jsonKeySuccess: true}
	for k, v := range pairs {
		body[k] = v
	}
	return c.JSON(status, body)
}

func respondNoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}
