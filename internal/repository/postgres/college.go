package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"dept-service/internal/domain"
	apperrors "dept-service/pkg/errors"
)

type CollegeRepository struct {
	db *DB
}

func NewCollegeRepository(db *DB) *CollegeRepository {
	return &CollegeRepository{db: db}
}

// List returns every college with its departments attached.
func (r *CollegeRepository) List(ctx context.Context) ([]domain.College, error) {
	query := `SELECT id, name FROM colleges ORDER BY name`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, errFailedListColleges(err)
	}
	defer rows.Close()

	colleges := []domain.College{}
	index := map[uuid.UUID]int{}
	for rows.Next() {
		c := domain.College{}
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, errFailedScanCollege(err)
		}
		index[c.ID] = len(colleges)
		colleges = append(colleges, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errIterateColleges(err)
	}

	deptQuery := `SELECT id, name, college_id FROM departments ORDER BY name`

	deptRows, err := r.db.Pool.Query(ctx, deptQuery)
	if err != nil {
		return nil, errFailedListDepartments(err)
	}
	defer deptRows.Close()

	for deptRows.Next() {
		d := domain.Department{}
		if err := deptRows.Scan(&d.ID, &d.Name, &d.CollegeID); err != nil {
			return nil, errFailedScanDepartment(err)
		}
		if i, ok := index[d.CollegeID]; ok {
			colleges[i].Departments = append(colleges[i].Departments, d)
		}
	}
	if err := deptRows.Err(); err != nil {
		return nil, errIterateDepartments(err)
	}

	return colleges, nil
}

func (r *CollegeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.College, error) {
	query := `SELECT id, name FROM colleges WHERE id = $1`

	c := &domain.College{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errCollegeNotFound)
		}
		return nil, errFailedGetCollege(err)
	}

	return c, nil
}

func (r *CollegeRepository) GetByName(ctx context.Context, name string) (*domain.College, error) {
	query := `SELECT id, name FROM colleges WHERE name = $1`

	c := &domain.College{}
	err := r.db.Pool.QueryRow(ctx, query, name).Scan(&c.ID, &c.Name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errCollegeNotFound)
		}
		return nil, errFailedGetCollege(err)
	}

	return c, nil
}

func (r *CollegeRepository) Create(ctx context.Context, name string) (*domain.College, error) {
	query := `INSERT INTO colleges (id, name) VALUES ($1, $2) RETURNING id, name`

	c := &domain.College{}
	err := r.db.Pool.QueryRow(ctx, query, uuid.New(), name).Scan(&c.ID, &c.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict(errCollegeNameExists)
		}
		return nil, errFailedCreateCollege(err)
	}

	return c, nil
}

func (r *CollegeRepository) Update(ctx context.Context, id uuid.UUID, name string) (*domain.College, error) {
	query := `UPDATE colleges SET name = $2 WHERE id = $1 RETURNING id, name`

	c := &domain.College{}
	err := r.db.Pool.QueryRow(ctx, query, id, name).Scan(&c.ID, &c.Name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errCollegeNotFound)
		}
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict(errCollegeNameExists)
		}
		return nil, errFailedUpdateCollege(err)
	}

	return c, nil
}

// Delete removes the college and returns it as it was, departments included.
func (r *CollegeRepository) Delete(ctx context.Context, id uuid.UUID) (*domain.College, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	deptQuery := `SELECT id, name, college_id FROM departments WHERE college_id = $1 ORDER BY name`

	rows, err := r.db.Pool.Query(ctx, deptQuery, id)
	if err != nil {
		return nil, errFailedListDepartments(err)
	}
	defer rows.Close()

	for rows.Next() {
		d := domain.Department{}
		if err := rows.Scan(&d.ID, &d.Name, &d.CollegeID); err != nil {
			return nil, errFailedScanDepartment(err)
		}
		c.Departments = append(c.Departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, errIterateDepartments(err)
	}

	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM colleges WHERE id = $1`, id)
	if err != nil {
		return nil, errFailedDeleteCollege(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NotFound(errCollegeNotFound)
	}

	return c, nil
}
