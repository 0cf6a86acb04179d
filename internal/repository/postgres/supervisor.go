package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"dept-service/internal/domain"
	apperrors "dept-service/pkg/errors"
)

type SupervisorRepository struct {
	db *DB
}

func NewSupervisorRepository(db *DB) *SupervisorRepository {
	return &SupervisorRepository{db: db}
}

const supervisorWithPersonQuery = `
	SELECT s.id, s.person_id, p.id, p.full_name, p.college_email, p.date_of_birth, p.gender, p.department_id
	FROM supervisors s
	JOIN persons p ON p.id = s.person_id
`

func scanSupervisorWithPerson(row rowScanner) (*domain.Supervisor, error) {
	s := &domain.Supervisor{Person: &domain.Person{}}
	p := s.Person
	err := row.Scan(
		&s.ID, &s.PersonID,
		&p.ID, &p.FullName, &p.CollegeEmail, &p.DateOfBirth.Time, &p.Gender, &p.DepartmentID,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SupervisorRepository) List(ctx context.Context) ([]domain.Supervisor, error) {
	rows, err := r.db.Pool.Query(ctx, supervisorWithPersonQuery+` ORDER BY p.full_name`)
	if err != nil {
		return nil, errFailedListSupervisors(err)
	}
	defer rows.Close()

	supervisors := []domain.Supervisor{}
	for rows.Next() {
		s, err := scanSupervisorWithPerson(rows)
		if err != nil {
			return nil, errFailedScanSupervisor(err)
		}
		supervisors = append(supervisors, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, errIterateSupervisors(err)
	}

	return supervisors, nil
}

// GetByID returns the supervisor with their person and supervised projects.
func (r *SupervisorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Supervisor, error) {
	row := r.db.Pool.QueryRow(ctx, supervisorWithPersonQuery+` WHERE s.id = $1`, id)

	s, err := scanSupervisorWithPerson(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errSupervisorNotFound)
		}
		return nil, errFailedGetSupervisor(err)
	}

	projectQuery := `
		SELECT id, name, year, rate, description, document_caption, document_path, department_id, supervisor_id
		FROM projects
		WHERE supervisor_id = $1
		ORDER BY year DESC, name ASC
	`

	rows, err := r.db.Pool.Query(ctx, projectQuery, id)
	if err != nil {
		return nil, errFailedListSupervisorProjects(err)
	}
	defer rows.Close()

	for rows.Next() {
		proj := domain.Project{}
		if err := rows.Scan(
			&proj.ID, &proj.Name, &proj.Year, &proj.Rate, &proj.Description,
			&proj.DocumentCaption, &proj.DocumentPath, &proj.DepartmentID, &proj.SupervisorID,
		); err != nil {
			return nil, errFailedScanProject(err)
		}
		s.Projects = append(s.Projects, proj)
	}
	if err := rows.Err(); err != nil {
		return nil, errIterateProjects(err)
	}

	return s, nil
}

func (r *SupervisorRepository) FindByName(ctx context.Context, name string) ([]domain.Supervisor, error) {
	query := supervisorWithPersonQuery + ` WHERE p.full_name ILIKE '%' || $1 || '%' ORDER BY p.full_name`

	rows, err := r.db.Pool.Query(ctx, query, escapeLikePattern(name))
	if err != nil {
		return nil, errFailedListSupervisors(err)
	}
	defer rows.Close()

	supervisors := []domain.Supervisor{}
	for rows.Next() {
		s, err := scanSupervisorWithPerson(rows)
		if err != nil {
			return nil, errFailedScanSupervisor(err)
		}
		supervisors = append(supervisors, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, errIterateSupervisors(err)
	}

	return supervisors, nil
}

// Create inserts the person and the supervisor row in one transaction.
func (r *SupervisorRepository) Create(ctx context.Context, person domain.Person) (*domain.Supervisor, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, errFailedStartTransaction(err)
	}
	defer tx.Rollback(ctx)

	s, err := createSupervisorTx(ctx, tx, person)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errFailedCommitTransaction(err)
	}

	return s, nil
}

func (r *SupervisorRepository) CreateMany(ctx context.Context, persons []domain.Person) ([]domain.Supervisor, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, errFailedStartTransaction(err)
	}
	defer tx.Rollback(ctx)

	supervisors := make([]domain.Supervisor, 0, len(persons))
	for _, person := range persons {
		s, err := createSupervisorTx(ctx, tx, person)
		if err != nil {
			return nil, err
		}
		supervisors = append(supervisors, *s)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errFailedCommitTransaction(err)
	}

	return supervisors, nil
}

func createSupervisorTx(ctx context.Context, tx pgx.Tx, person domain.Person) (*domain.Supervisor, error) {
	if err := insertPerson(ctx, tx, &person); err != nil {
		return nil, err
	}

	s := &domain.Supervisor{ID: uuid.New(), PersonID: person.ID, Person: &person}

	_, err := tx.Exec(ctx, `INSERT INTO supervisors (id, person_id) VALUES ($1, $2)`, s.ID, s.PersonID)
	if err != nil {
		return nil, errFailedCreateSupervisor(err)
	}

	return s, nil
}

func (r *SupervisorRepository) Update(ctx context.Context, id uuid.UUID, person domain.Person) (*domain.Supervisor, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, errFailedStartTransaction(err)
	}
	defer tx.Rollback(ctx)

	if err := updatePerson(ctx, tx, existing.PersonID, &person); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errFailedCommitTransaction(err)
	}

	existing.Person = &person
	return existing, nil
}

// Delete removes the supervisor row only; the person record stays.
func (r *SupervisorRepository) Delete(ctx context.Context, id uuid.UUID) (*domain.Supervisor, error) {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM supervisors WHERE id = $1`, id)
	if err != nil {
		return nil, errFailedDeleteSupervisor(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NotFound(errSupervisorNotFound)
	}

	return s, nil
}
