package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"dept-service/internal/domain"
	apperrors "dept-service/pkg/errors"
)

// UserLookup resolves the user named by a token's claims.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// GrantLookup answers whether a user holds at least one grant for the
// doc type / action pair.
type GrantLookup interface {
	Exists(ctx context.Context, userID uuid.UUID, docType domain.DocType, permissionType domain.PermissionType) (bool, error)
}

type Middleware struct {
	tokens *TokenService
	users  UserLookup
	grants GrantLookup
}

func NewMiddleware(tokens *TokenService, users UserLookup, grants GrantLookup) *Middleware {
	return &Middleware{
		tokens: tokens,
		users:  users,
		grants: grants,
	}
}

// RequireAuth is the authentication gate: it verifies the bearer token's
// signature and expiry before the request proceeds.
func (m *Middleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractBearerToken(c)
			if token == "" {
				return apperrors.Unauthorized(msgNoTokenProvided)
			}

			claims, err := m.tokens.Verify(token)
			if err != nil {
				return apperrors.Unauthorized(msgInvalidToken)
			}

			c.Set(ContextKeyUsername, claims.Username)
			c.Set(ContextKeyToken, token)

			return next(c)
		}
	}
}

// RequirePermission is the authorization gate: it decodes the token, loads
// the user it names, and demands at least one matching grant row. It never
// checks the signature itself; routes that carry it sit behind RequireAuth.
func (m *Middleware) RequirePermission(docType domain.DocType, permissionType domain.PermissionType) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractBearerToken(c)
			if token == "" {
				return apperrors.Unauthorized(msgNoTokenProvided)
			}

			claims, err := m.tokens.Decode(token)
			if err != nil {
				return apperrors.Unauthorized(msgInvalidToken)
			}

			ctx := c.Request().Context()

			user, err := m.users.GetByUsername(ctx, claims.Username)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return apperrors.Forbidden(msgNotAllowed)
				}
				return err
			}

			allowed, err := m.grants.Exists(ctx, user.ID, docType, permissionType)
			if err != nil {
				return err
			}
			if !allowed {
				return apperrors.Forbidden(msgNotAllowed)
			}

			return next(c)
		}
	}
}

func extractBearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(headerAuthorization)
	if authHeader == "" {
		return ""
	}

	parts := strings.Fields(authHeader)
	if len(parts) != authHeaderParts || strings.ToLower(parts[0]) != bearerScheme {
		return ""
	}

	return parts[1]
}
