package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"dept-service/internal/domain"
	apperrors "dept-service/pkg/errors"
)

type DepartmentRepository struct {
	db *DB
}

func NewDepartmentRepository(db *DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

const departmentWithCollegeQuery = `
	SELECT d.id, d.name, d.college_id, c.id, c.name
	FROM departments d
	JOIN colleges c ON c.id = d.college_id
`

func scanDepartmentWithCollege(row rowScanner) (*domain.Department, error) {
	d := &domain.Department{College: &domain.College{}}
	err := row.Scan(&d.ID, &d.Name, &d.CollegeID, &d.College.ID, &d.College.Name)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DepartmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	rows, err := r.db.Pool.Query(ctx, departmentWithCollegeQuery+` ORDER BY d.name`)
	if err != nil {
		return nil, errFailedListDepartments(err)
	}
	defer rows.Close()

	departments := []domain.Department{}
	for rows.Next() {
		d, err := scanDepartmentWithCollege(rows)
		if err != nil {
			return nil, errFailedScanDepartment(err)
		}
		departments = append(departments, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, errIterateDepartments(err)
	}

	return departments, nil
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	row := r.db.Pool.QueryRow(ctx, departmentWithCollegeQuery+` WHERE d.id = $1`, id)

	d, err := scanDepartmentWithCollege(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errDepartmentNotFound)
		}
		return nil, errFailedGetDepartment(err)
	}

	return d, nil
}

// GetByNameInCollege backs the duplicate check: department names are only
// required to be unique within one college.
func (r *DepartmentRepository) GetByNameInCollege(ctx context.Context, collegeID uuid.UUID, name string) (*domain.Department, error) {
	row := r.db.Pool.QueryRow(ctx,
		departmentWithCollegeQuery+` WHERE d.college_id = $1 AND d.name = $2`, collegeID, name)

	d, err := scanDepartmentWithCollege(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errDepartmentNotFound)
		}
		return nil, errFailedGetDepartment(err)
	}

	return d, nil
}

func (r *DepartmentRepository) Create(ctx context.Context, name string, collegeID uuid.UUID) (*domain.Department, error) {
	query := `
		INSERT INTO departments (id, name, college_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, college_id
	`

	d := &domain.Department{}
	err := r.db.Pool.QueryRow(ctx, query, uuid.New(), name, collegeID).Scan(&d.ID, &d.Name, &d.CollegeID)
	if err != nil {
		return nil, errFailedCreateDepartment(err)
	}

	return d, nil
}

func (r *DepartmentRepository) Update(ctx context.Context, id uuid.UUID, name string, collegeID uuid.UUID) (*domain.Department, error) {
	query := `
		UPDATE departments SET name = $2, college_id = $3
		WHERE id = $1
		RETURNING id, name, college_id
	`

	d := &domain.Department{}
	err := r.db.Pool.QueryRow(ctx, query, id, name, collegeID).Scan(&d.ID, &d.Name, &d.CollegeID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errDepartmentNotFound)
		}
		return nil, errFailedUpdateDepartment(err)
	}

	return d, nil
}

// Delete removes the department and returns it as it was, college included.
func (r *DepartmentRepository) Delete(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	d, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return nil, errFailedDeleteDepartment(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NotFound(errDepartmentNotFound)
	}

	return d, nil
}
