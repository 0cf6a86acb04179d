package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"dept-service/internal/domain"
)

// insertPerson creates a person row inside the caller's transaction. The
// supervisor, student, and user repositories all hang their rows off one.
func insertPerson(ctx context.Context, tx pgx.Tx, p *domain.Person) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	query := `
		INSERT INTO persons (id, full_name, college_email, date_of_birth, gender, department_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := tx.Exec(ctx, query,
		p.ID, p.FullName, p.CollegeEmail, p.DateOfBirth.Time, p.Gender, p.DepartmentID)
	if err != nil {
		return errFailedCreatePerson(err)
	}

	return nil
}

func updatePerson(ctx context.Context, tx pgx.Tx, id uuid.UUID, p *domain.Person) error {
	query := `
		UPDATE persons
		SET full_name = $2, college_email = $3, date_of_birth = $4, gender = $5, department_id = $6
		WHERE id = $1
	`

	_, err := tx.Exec(ctx, query,
		id, p.FullName, p.CollegeEmail, p.DateOfBirth.Time, p.Gender, p.DepartmentID)
	if err != nil {
		return errFailedUpdatePerson(err)
	}

	p.ID = id
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner, p *domain.Person) error {
	return row.Scan(
		&p.ID,
		&p.FullName,
		&p.CollegeEmail,
		&p.DateOfBirth.Time,
		&p.Gender,
		&p.DepartmentID,
	)
}
