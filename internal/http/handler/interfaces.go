package handler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"dept-service/internal/domain"
)

// Consumer-side interfaces defined by handlers.
// Each interface contains only the methods needed by the specific handler.

type CollegeRepository interface {
	List(ctx context.Context) ([]domain.College, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.College, error)
	GetByName(ctx context.Context, name string) (*domain.College, error)
	Create(ctx context.Context, name string) (*domain.College, error)
	Update(ctx context.Context, id uuid.UUID, name string) (*domain.College, error)
	Delete(ctx context.Context, id uuid.UUID) (*domain.College, error)
}

type DepartmentRepository interface {
	List(ctx context.Context) ([]domain.Department, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Department, error)
	GetByNameInCollege(ctx context.Context, collegeID uuid.UUID, name string) (*domain.Department, error)
	Create(ctx context.Context, name string, collegeID uuid.UUID) (*domain.Department, error)
	Update(ctx context.Context, id uuid.UUID, name string, collegeID uuid.UUID) (*domain.Department, error)
	Delete(ctx context.Context, id uuid.UUID) (*domain.Department, error)
}

type SupervisorRepository interface {
	List(ctx context.Context) ([]domain.Supervisor, error)
	FindByName(ctx context.Context, name string) ([]domain.Supervisor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Supervisor, error)
	Create(ctx context.Context, person domain.Person) (*domain.Supervisor, error)
	CreateMany(ctx context.Context, persons []domain.Person) ([]domain.Supervisor, error)
	Update(ctx context.Context, id uuid.UUID, person domain.Person) (*domain.Supervisor, error)
	Delete(ctx context.Context, id uuid.UUID) (*domain.Supervisor, error)
}

type StudentRepository interface {
	List(ctx context.Context) ([]domain.Student, error)
	FindByName(ctx context.Context, name string) ([]domain.Student, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error)
	ExistsByEmail(ctx context.Context, personalEmail string) (bool, error)
	Create(ctx context.Context, st domain.Student, person domain.Person) (*domain.Student, error)
	CreateMany(ctx context.Context, students []domain.Student, persons []domain.Person) ([]domain.Student, error)
	Update(ctx context.Context, id uuid.UUID, st domain.Student, person domain.Person) (*domain.Student, error)
	Delete(ctx context.Context, id uuid.UUID) (*domain.Student, error)
}

type ProjectRepository interface {
	List(ctx context.Context, filters domain.ProjectFilters) ([]domain.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	Create(ctx context.Context, proj domain.Project) (*domain.Project, error)
	Update(ctx context.Context, id uuid.UUID, proj domain.Project) (*domain.Project, error)
	Delete(ctx context.Context, id uuid.UUID) (*domain.Project, error)
}

type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, u domain.User, person domain.Person) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, u domain.User, person domain.Person) (*domain.User, error)
	UpdateToken(ctx context.Context, id uuid.UUID, token string) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type PermissionRepository interface {
	List(ctx context.Context) ([]domain.Permission, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Permission, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Permission, error)
	Create(ctx context.Context, perm domain.Permission) (*domain.Permission, error)
	CreateMany(ctx context.Context, perms []domain.Permission) ([]domain.Permission, error)
	Update(ctx context.Context, id uuid.UUID, perm domain.Permission) (*domain.Permission, error)
	Delete(ctx context.Context, id uuid.UUID) (*domain.Permission, error)
}

// UserGetter backs the batch-permission endpoint's existence check.
type UserGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// DocumentStore is the project handler's view of object storage.
type DocumentStore interface {
	UploadDocument(documentPath string, body []byte, contentType string) error
	DeleteDocument(documentPath string) error
	SignedDownloadURL(documentPath string) (string, error)
}

// TokenIssuer signs session tokens for the user handler.
type TokenIssuer interface {
	Issue(username string, ttl time.Duration) (string, error)
}
