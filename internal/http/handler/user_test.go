package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dept-service/internal/domain"
	apperrors "dept-service/pkg/errors"
	"dept-service/pkg/password"
)

type stubUserRepo struct {
	listFn          func(ctx context.Context) ([]domain.User, error)
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	createFn        func(ctx context.Context, u domain.User, person domain.Person) (*domain.User, error)
	updateFn        func(ctx context.Context, id uuid.UUID, u domain.User, person domain.Person) (*domain.User, error)
	updateTokenFn   func(ctx context.Context, id uuid.UUID, token string) (*domain.User, error)
	deleteFn        func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (s *stubUserRepo) List(ctx context.Context) ([]domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getByUsernameFn(ctx, username)
}

func (s *stubUserRepo) Create(ctx context.Context, u domain.User, person domain.Person) (*domain.User, error) {
	return s.createFn(ctx, u, person)
}

func (s *stubUserRepo) Update(ctx context.Context, id uuid.UUID, u domain.User, person domain.Person) (*domain.User, error) {
	return s.updateFn(ctx, id, u, person)
}

func (s *stubUserRepo) UpdateToken(ctx context.Context, id uuid.UUID, token string) (*domain.User, error) {
	return s.updateTokenFn(ctx, id, token)
}

func (s *stubUserRepo) Delete(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.deleteFn(ctx, id)
}

type stubPermissionRepo struct {
	listByUserFn func(ctx context.Context, userID uuid.UUID) ([]domain.Permission, error)
}

func (s *stubPermissionRepo) List(ctx context.Context) ([]domain.Permission, error) { return nil, nil }

func (s *stubPermissionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Permission, error) {
	return s.listByUserFn(ctx, userID)
}

func (s *stubPermissionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Permission, error) {
	return nil, nil
}

func (s *stubPermissionRepo) Create(ctx context.Context, perm domain.Permission) (*domain.Permission, error) {
	return nil, nil
}

func (s *stubPermissionRepo) CreateMany(ctx context.Context, perms []domain.Permission) ([]domain.Permission, error) {
	return nil, nil
}

func (s *stubPermissionRepo) Update(ctx context.Context, id uuid.UUID, perm domain.Permission) (*domain.Permission, error) {
	return nil, nil
}

func (s *stubPermissionRepo) Delete(ctx context.Context, id uuid.UUID) (*domain.Permission, error) {
	return nil, nil
}

type stubTokenIssuer struct {
	issued []time.Duration
	token  string
}

func (s *stubTokenIssuer) Issue(username string, ttl time.Duration) (string, error) {
	s.issued = append(s.issued, ttl)
	return s.token, nil
}

func TestUserHandler_LoginUnknownUsername(t *testing.T) {
	users := &stubUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return nil, apperrors.NotFound("missing")
		},
	}
	h := NewUserHandler(users, &stubPermissionRepo{}, &stubTokenIssuer{})

	c, _ := newJSONContext(t, http.MethodPost, "/users/login", `{"username":"ghost","password":"12345"}`)
	err := h.Login(c)

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.StatusOf(err))
	assert.Equal(t, `A user with the username of "ghost" does not exist`, err.Error())
}

func TestUserHandler_LoginWrongPassword(t *testing.T) {
	hash, err := password.Hash("correct-password")
	require.NoError(t, err)

	users := &stubUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: uuid.New(), Username: username, Password: hash}, nil
		},
	}
	h := NewUserHandler(users, &stubPermissionRepo{}, &stubTokenIssuer{})

	c, _ := newJSONContext(t, http.MethodPost, "/users/login", `{"username":"jdoe","password":"wrong"}`)
	err = h.Login(c)

	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperrors.StatusOf(err))
	assert.Equal(t, "Incorrect username or password", err.Error())
}

func TestUserHandler_LoginIssuesSessionToken(t *testing.T) {
	hash, err := password.Hash("correct-password")
	require.NoError(t, err)

	userID := uuid.New()
	var storedToken string
	users := &stubUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: userID, Username: username, Password: hash}, nil
		},
		updateTokenFn: func(ctx context.Context, id uuid.UUID, token string) (*domain.User, error) {
			storedToken = token
			return &domain.User{ID: id, Username: "jdoe", Token: token}, nil
		},
	}
	tokens := &stubTokenIssuer{token: "signed-token"}
	h := NewUserHandler(users, &stubPermissionRepo{}, tokens)

	c, rec := newJSONContext(t, http.MethodPost, "/users/login", `{"username":"jdoe","password":"correct-password"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "signed-token", storedToken)
	require.Len(t, tokens.issued, 1)
	assert.Equal(t, 24*time.Hour, tokens.issued[0])
	assert.Contains(t, rec.Body.String(), `"signed-token"`)
}

func TestUserHandler_LogoutStoresExpiredToken(t *testing.T) {
	userID := uuid.New()
	users := &stubUserRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: id, Username: "jdoe"}, nil
		},
		updateTokenFn: func(ctx context.Context, id uuid.UUID, token string) (*domain.User, error) {
			return &domain.User{ID: id, Token: token}, nil
		},
	}
	tokens := &stubTokenIssuer{token: "expired-token"}
	h := NewUserHandler(users, &stubPermissionRepo{}, tokens)

	c, rec := newJSONContext(t, http.MethodPost, "/users/"+userID.String()+"/logout", "")
	c.SetParamNames("id")
	c.SetParamValues(userID.String())

	require.NoError(t, h.Logout(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, tokens.issued, 1)
	assert.Equal(t, time.Duration(0), tokens.issued[0])
}

func TestUserHandler_RefreshIssuesShortToken(t *testing.T) {
	userID := uuid.New()
	users := &stubUserRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: id, Username: "jdoe"}, nil
		},
		updateTokenFn: func(ctx context.Context, id uuid.UUID, token string) (*domain.User, error) {
			return &domain.User{ID: id, Token: token}, nil
		},
	}
	tokens := &stubTokenIssuer{token: "refreshed-token"}
	h := NewUserHandler(users, &stubPermissionRepo{}, tokens)

	c, _ := newJSONContext(t, http.MethodPost, "/users/"+userID.String()+"/refreshtoken", "")
	c.SetParamNames("id")
	c.SetParamValues(userID.String())

	require.NoError(t, h.RefreshToken(c))

	require.Len(t, tokens.issued, 1)
	assert.Equal(t, 2*time.Hour, tokens.issued[0])
}

func TestUserHandler_LogoutUnknownUser(t *testing.T) {
	users := &stubUserRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return nil, apperrors.NotFound("missing")
		},
	}
	h := NewUserHandler(users, &stubPermissionRepo{}, &stubTokenIssuer{})

	userID := uuid.New()
	c, _ := newJSONContext(t, http.MethodPost, "/users/"+userID.String()+"/logout", "")
	c.SetParamNames("id")
	c.SetParamValues(userID.String())

	err := h.Logout(c)

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.StatusOf(err))
	assert.Equal(t, "There is no such a user", err.Error())
}

func TestUserHandler_CreateDuplicateUsername(t *testing.T) {
	users := &stubUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: uuid.New(), Username: username}, nil
		},
	}
	h := NewUserHandler(users, &stubPermissionRepo{}, &stubTokenIssuer{})

	body := `{"User":{"username":"jdoe","password":"12345"},"Person":{"fullName":"John Doe","dateOfBirth":"1999-04-02","collegeEmail":"jdoe@university.edu","gender":"Male","departmentId":"` + uuid.NewString() + `"}}`
	c, _ := newJSONContext(t, http.MethodPost, "/users", body)

	err := h.Create(c)

	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperrors.StatusOf(err))
	assert.Equal(t, `A user with the username "jdoe" already exists`, err.Error())
}

func TestUserHandler_GetPermissions(t *testing.T) {
	userID := uuid.New()
	users := &stubUserRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: id, Username: "jdoe"}, nil
		},
	}
	permissions := &stubPermissionRepo{
		listByUserFn: func(ctx context.Context, got uuid.UUID) ([]domain.Permission, error) {
			return []domain.Permission{
				{ID: uuid.New(), UserID: got, DocType: domain.DocTypeCollege, PermissionType: domain.PermissionRead},
			}, nil
		},
	}
	h := NewUserHandler(users, permissions, &stubTokenIssuer{})

	c, rec := newJSONContext(t, http.MethodGet, "/users/"+userID.String()+"/permissions", "")
	c.SetParamNames("id")
	c.SetParamValues(userID.String())

	require.NoError(t, h.GetPermissions(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"COLLEGE"`)
}
