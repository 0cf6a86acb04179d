package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"dept-service/internal/domain"
	apperrors "dept-service/pkg/errors"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

const userWithPersonQuery = `
	SELECT u.id, u.username, u.password, u.token, u.is_active, u.person_id, u.date_created, u.date_updated,
	       p.id, p.full_name, p.college_email, p.date_of_birth, p.gender, p.department_id
	FROM users u
	JOIN persons p ON p.id = u.person_id
`

func scanUserWithPerson(row rowScanner) (*domain.User, error) {
	u := &domain.User{Person: &domain.Person{}}
	p := u.Person
	err := row.Scan(
		&u.ID, &u.Username, &u.Password, &u.Token, &u.IsActive, &u.PersonID,
		&u.DateCreated, &u.DateUpdated,
		&p.ID, &p.FullName, &p.CollegeEmail, &p.DateOfBirth.Time, &p.Gender, &p.DepartmentID,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Pool.Query(ctx, userWithPersonQuery+` ORDER BY u.username`)
	if err != nil {
		return nil, errFailedListUsers(err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUserWithPerson(rows)
		if err != nil {
			return nil, errFailedScanUser(err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, errIterateUsers(err)
	}

	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := r.db.Pool.QueryRow(ctx, userWithPersonQuery+` WHERE u.id = $1`, id)

	u, err := scanUserWithPerson(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errUserNotFound)
		}
		return nil, errFailedGetUser(err)
	}

	return u, nil
}

// GetByUsername also serves the authorization gate's user lookup.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.Pool.QueryRow(ctx, userWithPersonQuery+` WHERE u.username = $1`, username)

	u, err := scanUserWithPerson(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errUserNotFound)
		}
		return nil, errFailedGetUser(err)
	}

	return u, nil
}

// Create inserts the person and the user row in one transaction. The
// password is expected to be hashed and the token already issued.
func (r *UserRepository) Create(ctx context.Context, u domain.User, person domain.Person) (*domain.User, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, errFailedStartTransaction(err)
	}
	defer tx.Rollback(ctx)

	if err := insertPerson(ctx, tx, &person); err != nil {
		return nil, err
	}

	u.ID = uuid.New()
	u.PersonID = person.ID
	u.Person = &person

	query := `
		INSERT INTO users (id, username, password, token, is_active, person_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING date_created, date_updated
	`

	err = tx.QueryRow(ctx, query,
		u.ID, u.Username, u.Password, u.Token, u.IsActive, u.PersonID,
	).Scan(&u.DateCreated, &u.DateUpdated)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict(errUsernameExists)
		}
		return nil, errFailedCreateUser(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errFailedCommitTransaction(err)
	}

	return &u, nil
}

// Update rewrites the user and person rows. The token column is left alone
// so an update cannot rotate a session out from under its owner.
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, u domain.User, person domain.Person) (*domain.User, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, errFailedStartTransaction(err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE users
		SET username = $2, password = $3, is_active = $4, date_updated = NOW()
		WHERE id = $1
		RETURNING date_created, date_updated
	`

	err = tx.QueryRow(ctx, query, id, u.Username, u.Password, u.IsActive).
		Scan(&u.DateCreated, &u.DateUpdated)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict(errUsernameExists)
		}
		return nil, errFailedUpdateUser(err)
	}

	if err := updatePerson(ctx, tx, existing.PersonID, &person); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errFailedCommitTransaction(err)
	}

	u.ID = id
	u.Token = existing.Token
	u.PersonID = existing.PersonID
	u.Person = &person

	return &u, nil
}

// UpdateToken persists a freshly issued (or deliberately expired) token.
func (r *UserRepository) UpdateToken(ctx context.Context, id uuid.UUID, token string) (*domain.User, error) {
	query := `UPDATE users SET token = $2, date_updated = NOW() WHERE id = $1`

	tag, err := r.db.Pool.Exec(ctx, query, id, token)
	if err != nil {
		return nil, errFailedUpdateToken(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NotFound(errUserNotFound)
	}

	return r.GetByID(ctx, id)
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, errFailedDeleteUser(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NotFound(errUserNotFound)
	}

	return u, nil
}
