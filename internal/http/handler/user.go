package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"dept-service/internal/domain"
	apperrors "dept-service/pkg/errors"
	"dept-service/pkg/password"
	"dept-service/pkg/validate"
)

const (
	resourceUser       = "user"
	jsonKeyUser        = "user"
	jsonKeyUsers       = "users"
	jsonKeyToken       = "token"
	jsonKeyPermissions = "permissions"

	// Freshly created accounts get a short-lived token; a proper session
	// comes from logging in.
	signupTokenTTL  = 15 * time.Minute
	sessionTokenTTL = 24 * time.Hour
	refreshTokenTTL = 2 * time.Hour
)

type UserHandler struct {
	users       UserRepository
	permissions PermissionRepository
	tokens      TokenIssuer
}

func NewUserHandler(users UserRepository, permissions PermissionRepository, tokens TokenIssuer) *UserHandler {
	return &UserHandler{users: users, permissions: permissions, tokens: tokens}
}

type UserFields struct {
	Username string `json:"username" validate:"required,min=4,max=30"`
	Password string `json:"password" validate:"required,min=4"`
	IsActive *bool  `json:"isActive"`
	Token    string `json:"token"`
}

type UserRequest struct {
	User   UserFields    `json:"User" validate:"required"`
	Person PersonPayload `json:"Person" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=4,max=30"`
	Password string `json:"password" validate:"required,min=4"`
}

func (r UserRequest) toDomain() (domain.User, domain.Person, error) {
	hash, err := password.Hash(r.User.Password)
	if err != nil {
		return domain.User{}, domain.Person{}, apperrors.InternalServer(msgPasswordProcessFail, err)
	}

	// Accounts are active unless the payload says otherwise.
	isActive := true
	if r.User.IsActive != nil {
		isActive = *r.User.IsActive
	}

	u := domain.User{
		Username: r.User.Username,
		Password: hash,
		IsActive: isActive,
	}

	return u, r.Person.toDomain(), nil
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeyUsers, users)
}

func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.users.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(notFoundWithID(resourceUser, id.String()))
		}
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeyUser, user)
}

func (h *UserHandler) GetPermissions(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	if _, err := h.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(notFoundWithID(resourceUser, id.String()))
		}
		return err
	}

	permissions, err := h.permissions.ListByUser(ctx, id)
	if err != nil {
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeyPermissions, permissions)
}

func (h *UserHandler) Create(c echo.Context) error {
	var req UserRequest
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

	if existing, err := h.users.GetByUsername(ctx, req.User.Username); err == nil && existing != nil {
		return apperrors.Conflict(usernameExists(req.User.Username))
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	u, person, err := req.toDomain()
	if err != nil {
		return err
	}

	token, err := h.tokens.Issue(u.Username, signupTokenTTL)
	if err != nil {
		return err
	}
	u.Token = token

	user, err := h.users.Create(ctx, u, person)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.Conflict(usernameExists(req.User.Username))
		}
		return err
	}

	return respondResource(c, http.StatusCreated, jsonKeyUser, user)
}

func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	user, err := h.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(loginUnknownUsername(req.Username))
		}
		return err
	}

	if !password.Verify(req.Password, user.Password) {
		return apperrors.Unauthorized(msgIncorrectCredentials)
	}

	token, err := h.tokens.Issue(user.Username, sessionTokenTTL)
	if err != nil {
		return err
	}

	user, err = h.users.UpdateToken(ctx, user.ID, token)
	if err != nil {
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeyUser, user)
}

// Logout rotates the stored token to one that is already expired, so the
// session dies even if a client keeps the old header around.
func (h *UserHandler) Logout(c echo.Context) error {
	return h.rotateToken(c, 0)
}

func (h *UserHandler) RefreshToken(c echo.Context) error {
	return h.rotateToken(c, refreshTokenTTL)
}

func (h *UserHandler) rotateToken(c echo.Context, ttl time.Duration) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	user, err := h.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(msgNoSuchUser)
		}
		return err
	}

	token, err := h.tokens.Issue(user.Username, ttl)
	if err != nil {
		return err
	}

	if _, err := h.users.UpdateToken(ctx, user.ID, token); err != nil {
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeyToken, token)
}

func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req UserRequest
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

	if _, err := h.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(notFoundWithID(resourceUser, id.String()))
		}
		return err
	}

	u, person, err := req.toDomain()
	if err != nil {
		return err
	}

	user, err := h.users.Update(ctx, id, u, person)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.Conflict(usernameExists(req.User.Username))
		}
		return err
	}

	return respondResource(c, http.StatusOK, jsonKeyUser, user)
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if _, err := h.users.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(notFoundWithID(resourceUser, id.String()))
		}
		return err
	}

	return respondNoContent(c)
}
