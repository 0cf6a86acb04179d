package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"dept-service/internal/domain"
	apperrors "dept-service/pkg/errors"
)

type PermissionRepository struct {
	db *DB
}

func NewPermissionRepository(db *DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

const permissionColumns = "id, user_id, doc_type, permission_type"

func scanPermission(row rowScanner) (*domain.Permission, error) {
	perm := &domain.Permission{}
	err := row.Scan(&perm.ID, &perm.UserID, &perm.DocType, &perm.PermissionType)
	if err != nil {
		return nil, err
	}
	return perm, nil
}

func (r *PermissionRepository) List(ctx context.Context) ([]domain.Permission, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+permissionColumns+` FROM permissions`)
	if err != nil {
		return nil, errFailedListPerms(err)
	}
	defer rows.Close()

	permissions := []domain.Permission{}
	for rows.Next() {
		perm, err := scanPermission(rows)
		if err != nil {
			return nil, errFailedScanPerm(err)
		}
		permissions = append(permissions, *perm)
	}
	if err := rows.Err(); err != nil {
		return nil, errIteratePerms(err)
	}

	return permissions, nil
}

func (r *PermissionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Permission, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+permissionColumns+` FROM permissions WHERE user_id = $1`, userID)
	if err != nil {
		return nil, errFailedListPerms(err)
	}
	defer rows.Close()

	permissions := []domain.Permission{}
	for rows.Next() {
		perm, err := scanPermission(rows)
		if err != nil {
			return nil, errFailedScanPerm(err)
		}
		permissions = append(permissions, *perm)
	}
	if err := rows.Err(); err != nil {
		return nil, errIteratePerms(err)
	}

	return permissions, nil
}

func (r *PermissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Permission, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+permissionColumns+` FROM permissions WHERE id = $1`, id)

	perm, err := scanPermission(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errPermissionNotFound)
		}
		return nil, errFailedGetPerm(err)
	}

	return perm, nil
}

// Exists is the authorization gate's grant lookup. Duplicate grant rows are
// legal; one matching row is enough.
func (r *PermissionRepository) Exists(ctx context.Context, userID uuid.UUID, docType domain.DocType, permissionType domain.PermissionType) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM permissions
			WHERE user_id = $1 AND doc_type = $2 AND permission_type = $3
		)
	`

	var exists bool
	err := r.db.Pool.QueryRow(ctx, query, userID, docType, permissionType).Scan(&exists)
	if err != nil {
		return false, errFailedCheckPerm(err)
	}

	return exists, nil
}

func (r *PermissionRepository) Create(ctx context.Context, perm domain.Permission) (*domain.Permission, error) {
	perm.ID = uuid.New()

	query := `
		INSERT INTO permissions (id, user_id, doc_type, permission_type)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Pool.Exec(ctx, query, perm.ID, perm.UserID, perm.DocType, perm.PermissionType)
	if err != nil {
		return nil, errFailedCreatePerm(err)
	}

	return &perm, nil
}

func (r *PermissionRepository) CreateMany(ctx context.Context, perms []domain.Permission) ([]domain.Permission, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, errFailedStartTransaction(err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO permissions (id, user_id, doc_type, permission_type)
		VALUES ($1, $2, $3, $4)
	`

	created := make([]domain.Permission, 0, len(perms))
	for _, perm := range perms {
		perm.ID = uuid.New()
		if _, err := tx.Exec(ctx, query, perm.ID, perm.UserID, perm.DocType, perm.PermissionType); err != nil {
			return nil, errFailedCreatePerm(err)
		}
		created = append(created, perm)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errFailedCommitTransaction(err)
	}

	return created, nil
}

func (r *PermissionRepository) Update(ctx context.Context, id uuid.UUID, perm domain.Permission) (*domain.Permission, error) {
	query := `
		UPDATE permissions
		SET user_id = $2, doc_type = $3, permission_type = $4
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query, id, perm.UserID, perm.DocType, perm.PermissionType)
	if err != nil {
		return nil, errFailedUpdatePerm(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NotFound(errPermissionNotFound)
	}

	perm.ID = id
	return &perm, nil
}

func (r *PermissionRepository) Delete(ctx context.Context, id uuid.UUID) (*domain.Permission, error) {
	perm, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM permissions WHERE id = $1`, id)
	if err != nil {
		return nil, errFailedDeletePerm(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NotFound(errPermissionNotFound)
	}

	return perm, nil
}
