package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"dept-service/internal/domain"
	apperrors "dept-service/pkg/errors"
)

type ProjectRepository struct {
	db *DB
}

func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectSelectQuery = `
	SELECT pr.id, pr.name, pr.year, pr.rate, pr.description, pr.document_caption,
	       pr.document_path, pr.department_id, pr.supervisor_id,
	       d.id, d.name, d.college_id, c.id, c.name,
	       s.id, s.person_id,
	       sp.id, sp.full_name, sp.college_email, sp.date_of_birth, sp.gender, sp.department_id
	FROM projects pr
	JOIN departments d ON d.id = pr.department_id
	JOIN colleges c ON c.id = d.college_id
	JOIN supervisors s ON s.id = pr.supervisor_id
	JOIN persons sp ON sp.id = s.person_id
`

func scanProjectRow(row rowScanner) (*domain.Project, error) {
	proj := &domain.Project{
		Department: &domain.Department{College: &domain.College{}},
		Supervisor: &domain.Supervisor{Person: &domain.Person{}},
	}
	d := proj.Department
	c := d.College
	s := proj.Supervisor
	p := s.Person

	err := row.Scan(
		&proj.ID, &proj.Name, &proj.Year, &proj.Rate, &proj.Description,
		&proj.DocumentCaption, &proj.DocumentPath, &proj.DepartmentID, &proj.SupervisorID,
		&d.ID, &d.Name, &d.CollegeID, &c.ID, &c.Name,
		&s.ID, &s.PersonID,
		&p.ID, &p.FullName, &p.CollegeEmail, &p.DateOfBirth.Time, &p.Gender, &p.DepartmentID,
	)
	if err != nil {
		return nil, err
	}
	return proj, nil
}

// List applies the caller-normalized filters: equality on id, year, and the
// college/department ids; case-insensitive contains on the name fields.
// Ordered by year descending, then name.
func (r *ProjectRepository) List(ctx context.Context, filters domain.ProjectFilters) ([]domain.Project, error) {
	query := projectSelectQuery + " WHERE 1=1"
	args := []any{}
	argCount := 0

	if filters.ID != nil {
		argCount++
		query += fmt.Sprintf(" AND pr.id = $%d", argCount)
		args = append(args, *filters.ID)
	}

	if filters.Name != "" {
		argCount++
		query += fmt.Sprintf(" AND pr.name ILIKE '%%' || $%d || '%%'", argCount)
		args = append(args, escapeLikePattern(filters.Name))
	}

	if filters.Year != nil {
		argCount++
		query += fmt.Sprintf(" AND pr.year = $%d", argCount)
		args = append(args, *filters.Year)
	}

	if filters.CollegeID != nil {
		argCount++
		query += fmt.Sprintf(" AND d.college_id = $%d", argCount)
		args = append(args, *filters.CollegeID)
	}

	if filters.DepartmentID != nil {
		argCount++
		query += fmt.Sprintf(" AND pr.department_id = $%d", argCount)
		args = append(args, *filters.DepartmentID)
	}

	if filters.Supervisor != "" {
		argCount++
		query += fmt.Sprintf(" AND sp.full_name ILIKE '%%' || $%d || '%%'", argCount)
		args = append(args, escapeLikePattern(filters.Supervisor))
	}

	if filters.Student != "" {
		argCount++
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM students st
			JOIN persons stp ON stp.id = st.person_id
			WHERE st.project_id = pr.id AND stp.full_name ILIKE '%%' || $%d || '%%'
		)`, argCount)
		args = append(args, escapeLikePattern(filters.Student))
	}

	query += " ORDER BY pr.year DESC, pr.name ASC"

	argCount++
	query += fmt.Sprintf(" LIMIT $%d", argCount)
	args = append(args, filters.PageSize)

	argCount++
	query += fmt.Sprintf(" OFFSET $%d", argCount)
	args = append(args, filters.Page*filters.PageSize)

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errFailedListProjects(err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	ids := []uuid.UUID{}
	index := map[uuid.UUID]int{}
	for rows.Next() {
		proj, err := scanProjectRow(rows)
		if err != nil {
			return nil, errFailedScanProject(err)
		}
		index[proj.ID] = len(projects)
		ids = append(ids, proj.ID)
		projects = append(projects, *proj)
	}
	if err := rows.Err(); err != nil {
		return nil, errIterateProjects(err)
	}

	if len(projects) == 0 {
		return projects, nil
	}

	students, err := r.listStudentsByProjects(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, st := range students {
		if i, ok := index[st.ProjectID]; ok {
			projects[i].Students = append(projects[i].Students, st)
		}
	}

	return projects, nil
}

// GetByID returns the project with its department (college included),
// supervisor (person included), and students (persons included).
func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	row := r.db.Pool.QueryRow(ctx, projectSelectQuery+` WHERE pr.id = $1`, id)

	proj, err := scanProjectRow(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errProjectNotFound)
		}
		return nil, errFailedGetProject(err)
	}

	students, err := r.listStudentsByProjects(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	proj.Students = students

	return proj, nil
}

// Create inserts the row with a fresh document path; the caller uploads the
// object afterwards.
func (r *ProjectRepository) Create(ctx context.Context, proj domain.Project) (*domain.Project, error) {
	proj.ID = uuid.New()
	proj.DocumentPath = uuid.NewString()

	query := `
		INSERT INTO projects (id, name, year, rate, description, document_caption, document_path, department_id, supervisor_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		proj.ID, proj.Name, proj.Year, proj.Rate, proj.Description,
		proj.DocumentCaption, proj.DocumentPath, proj.DepartmentID, proj.SupervisorID)
	if err != nil {
		return nil, errFailedCreateProject(err)
	}

	return r.GetByID(ctx, proj.ID)
}

func (r *ProjectRepository) Update(ctx context.Context, id uuid.UUID, proj domain.Project) (*domain.Project, error) {
	query := `
		UPDATE projects
		SET name = $2, year = $3, rate = $4, description = $5, document_caption = $6,
		    department_id = $7, supervisor_id = $8
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		id, proj.Name, proj.Year, proj.Rate, proj.Description,
		proj.DocumentCaption, proj.DepartmentID, proj.SupervisorID)
	if err != nil {
		return nil, errFailedUpdateProject(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NotFound(errProjectNotFound)
	}

	return r.GetByID(ctx, id)
}

// Delete removes the row and returns it as it was, relations included.
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	proj, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return nil, errFailedDeleteProject(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NotFound(errProjectNotFound)
	}

	return proj, nil
}

func (r *ProjectRepository) listStudentsByProjects(ctx context.Context, projectIDs []uuid.UUID) ([]domain.Student, error) {
	query := `
		SELECT st.id, st.username, st.password, st.personal_email, st.person_id, st.project_id,
		       p.id, p.full_name, p.college_email, p.date_of_birth, p.gender, p.department_id
		FROM students st
		JOIN persons p ON p.id = st.person_id
		WHERE st.project_id = ANY($1)
		ORDER BY p.full_name
	`

	rows, err := r.db.Pool.Query(ctx, query, projectIDs)
	if err != nil {
		return nil, errFailedListProjectStudents(err)
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
