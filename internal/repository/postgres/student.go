package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"dept-service/internal/domain"
	apperrors "dept-service/pkg/errors"
)

type StudentRepository struct {
	db *DB
}

func NewStudentRepository(db *DB) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentWithPersonQuery = `
	SELECT st.id, st.username, st.password, st.personal_email, st.person_id, st.project_id,
	       p.id, p.full_name, p.college_email, p.date_of_birth, p.gender, p.department_id
	FROM students st
	JOIN persons p ON p.id = st.person_id
`

func scanStudentWithPerson(row rowScanner) (*domain.Student, error) {
	st := &domain.Student{Person: &domain.Person{}}
	p := st.Person
	err := row.Scan(
		&st.ID, &st.Username, &st.Password, &st.PersonalEmail, &st.PersonID, &st.ProjectID,
		&p.ID, &p.FullName, &p.CollegeEmail, &p.DateOfBirth.Time, &p.Gender, &p.DepartmentID,
	)
	if err != nil {
		return nil, err
	}
	return st, nil
}

func (r *StudentRepository) List(ctx context.Context) ([]domain.Student, error) {
	rows, err := r.db.Pool.Query(ctx, studentWithPersonQuery+` ORDER BY p.full_name`)
	if err != nil {
		return nil, errFailedListStudents(err)
	}
	defer rows.Close()

	students := []domain.Student{}
	for rows.Next() {
		st, err := scanStudentWithPerson(rows)
		if err != nil {
			return nil, errFailedScanStudent(err)
		}
		students = append(students, *st)
	}
	if err := rows.Err(); err != nil {
		return nil, errIterateStudents(err)
	}

	return students, nil
}

func (r *StudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	row := r.db.Pool.QueryRow(ctx, studentWithPersonQuery+` WHERE st.id = $1`, id)

	st, err := scanStudentWithPerson(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errStudentNotFound)
		}
		return nil, errFailedGetStudent(err)
	}

	if err := r.attachProject(ctx, st); err != nil {
		return nil, err
	}

	return st, nil
}

func (r *StudentRepository) FindByName(ctx context.Context, name string) ([]domain.Student, error) {
	query := studentWithPersonQuery + ` WHERE p.full_name ILIKE '%' || $1 || '%' ORDER BY p.full_name`

	rows, err := r.db.Pool.Query(ctx, query, escapeLikePattern(name))
	if err != nil {
		return nil, errFailedListStudents(err)
	}
	defer rows.Close()

	students := []domain.Student{}
	for rows.Next() {
		st, err := scanStudentWithPerson(rows)
		if err != nil {
			return nil, errFailedScanStudent(err)
		}
		students = append(students, *st)
	}
	if err := rows.Err(); err != nil {
		return nil, errIterateStudents(err)
	}

	return students, nil
}

// ExistsByEmail backs the duplicate check on the personal email.
func (r *StudentRepository) ExistsByEmail(ctx context.Context, personalEmail string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM students WHERE personal_email = $1)`

	var exists bool
	if err := r.db.Pool.QueryRow(ctx, query, personalEmail).Scan(&exists); err != nil {
		return false, errFailedGetStudent(err)
	}

	return exists, nil
}

// Create inserts the person and the student row in one transaction. The
// password is expected to be hashed already.
func (r *StudentRepository) Create(ctx context.Context, st domain.Student, person domain.Person) (*domain.Student, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, errFailedStartTransaction(err)
	}
	defer tx.Rollback(ctx)

	created, err := createStudentTx(ctx, tx, st, person)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errFailedCommitTransaction(err)
	}

	if err := r.attachProject(ctx, created); err != nil {
		return nil, err
	}

	return created, nil
}

func (r *StudentRepository) CreateMany(ctx context.Context, students []domain.Student, persons []domain.Person) ([]domain.Student, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, errFailedStartTransaction(err)
	}
	defer tx.Rollback(ctx)

	created := make([]domain.Student, 0, len(students))
	for i := range students {
		st, err := createStudentTx(ctx, tx, students[i], persons[i])
		if err != nil {
			return nil, err
		}
		created = append(created, *st)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errFailedCommitTransaction(err)
	}

	return created, nil
}

func createStudentTx(ctx context.Context, tx pgx.Tx, st domain.Student, person domain.Person) (*domain.Student, error) {
	if err := insertPerson(ctx, tx, &person); err != nil {
		return nil, err
	}

	st.ID = uuid.New()
	st.PersonID = person.ID
	st.Person = &person

	query := `
		INSERT INTO students (id, username, password, personal_email, person_id, project_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := tx.Exec(ctx, query,
		st.ID, st.Username, st.Password, st.PersonalEmail, st.PersonID, st.ProjectID)
	if err != nil {
		return nil, errFailedCreateStudent(err)
	}

	return &st, nil
}

// Update rewrites the personal email, the project link, and the person row.
func (r *StudentRepository) Update(ctx context.Context, id uuid.UUID, st domain.Student, person domain.Person) (*domain.Student, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, errFailedStartTransaction(err)
	}
	defer tx.Rollback(ctx)

	query := `UPDATE students SET personal_email = $2, project_id = $3 WHERE id = $1`
	if _, err := tx.Exec(ctx, query, id, st.PersonalEmail, st.ProjectID); err != nil {
		return nil, errFailedUpdateStudent(err)
	}

	if err := updatePerson(ctx, tx, existing.PersonID, &person); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errFailedCommitTransaction(err)
	}

	existing.PersonalEmail = st.PersonalEmail
	existing.ProjectID = st.ProjectID
	existing.Person = &person

	if err := r.attachProject(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// Delete removes the student row only; the person record stays.
func (r *StudentRepository) Delete(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	st, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return nil, errFailedDeleteStudent(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NotFound(errStudentNotFound)
	}

	return st, nil
}

func (r *StudentRepository) attachProject(ctx context.Context, st *domain.Student) error {
	query := `
		SELECT id, name, year, rate, description, document_caption, document_path, department_id, supervisor_id
		FROM projects
		WHERE id = $1
	`

	proj := &domain.Project{}
	err := r.db.Pool.QueryRow(ctx, query, st.ProjectID).Scan(
		&proj.ID, &proj.Name, &proj.Year, &proj.Rate, &proj.Description,
		&proj.DocumentCaption, &proj.DocumentPath, &proj.DepartmentID, &proj.SupervisorID,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil
		}
		return errFailedGetProject(err)
	}

	st.Project = proj
	return nil
}
