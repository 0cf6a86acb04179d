package main

import (
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"dept-service/internal/config"
	"dept-service/internal/domain"
	"dept-service/pkg/database"
	"dept-service/pkg/password"
)

const (
	schemaFile = "database/schema.sql"

	seedAdminUsername  = "admin"
	envSeedAdminPass   = "SEED_ADMIN_PASSWORD"
	defaultAdminPass   = "admin1234"
	seedAdminFullName  = "Administrator"
	seedAdminEmail     = "admin@university.edu"
	seedAdminBirthDate = "1990-01-01"
)

type collegeSeed struct {
	name        string
	departments []string
}

var collegeSeeds = []collegeSeed{
	{"Eduction", []string{"English Language", "Kurdish Language", "Arabic Language", "Chemistry", "Physics", "Biology", "Mathematics"}},
	{"Science", []string{"Computer Science and IT", "Chemistry", "Physics", "Biology", "Geology", "Mathematics"}},
	{"Engineering", []string{"Mechanic and Mechatronics Engineering", "Electrical Engineering", "Civil Engineering", "Architect", "Software Engineering", "Dams and Water Resources Engineering", "Petrochemical Engineering"}},
	{"Languages", []string{"English", "Arabic", "Kurdish", "French", "Chinese"}},
	{"Law", []string{"Law"}},
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	fmt.Println("=== Setting Up Database ===")
	fmt.Println()

	db, err := database.Connect(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("Connected to database")

	schema, err := os.ReadFile(schemaFile)
	if err != nil {
		log.Fatalf("Failed to read schema file: %v", err)
	}

	if _, err := db.Exec(string(schema)); err != nil {
		log.Fatalf("Failed to execute schema: %v", err)
	}
	fmt.Println("Schema executed successfully")

	verifyTables(db)

	firstDepartmentID := seedColleges(db)
	seedAdmin(db, firstDepartmentID)

	fmt.Println()
	fmt.Println("=== Database Setup Complete ===")
}

func verifyTables(db *database.DB) {
	fmt.Println()
	fmt.Println("=== Verifying Tables ===")
	tables := []string{"colleges", "departments", "persons", "supervisors", "projects", "students", "users", "permissions"}

	for _, table := range tables {
		var exists bool
		query := `SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = $1
		)`
		if err := db.QueryRow(query, table).Scan(&exists); err != nil {
			fmt.Printf("Error checking table %q: %v\n", table, err)
			continue
		}

		if exists {
			fmt.Printf("Table %q created\n", table)
		} else {
			fmt.Printf("Table %q NOT created\n", table)
		}
	}
}

// seedColleges inserts the initial college list and returns the id of the
// first department, which anchors the admin account's person row.
func seedColleges(db *database.DB) uuid.UUID {
	fmt.Println()
	fmt.Println("=== Seeding Colleges ===")

	var firstDepartmentID uuid.UUID

	for _, college := range collegeSeeds {
		collegeID := uuid.New()

		var existingID uuid.UUID
		err := db.QueryRow(`SELECT id FROM colleges WHERE name = $1`, college.name).Scan(&existingID)
		if err == nil {
			fmt.Printf("College %q already exists, skipping\n", college.name)
			continue
		}

		if _, err := db.Exec(`INSERT INTO colleges (id, name) VALUES ($1, $2)`, collegeID, college.name); err != nil {
			log.Fatalf("Failed to seed college %q: %v", college.name, err)
		}

		for _, department := range college.departments {
			departmentID := uuid.New()
			if _, err := db.Exec(
				`INSERT INTO departments (id, name, college_id) VALUES ($1, $2, $3)`,
				departmentID, department, collegeID,
			); err != nil {
				log.Fatalf("Failed to seed department %q: %v", department, err)
			}

			if firstDepartmentID == uuid.Nil {
				firstDepartmentID = departmentID
			}
		}

		fmt.Printf("Seeded college %q with %d departments\n", college.name, len(college.departments))
	}

	if firstDepartmentID == uuid.Nil {
		if err := db.QueryRow(`SELECT id FROM departments LIMIT 1`).Scan(&firstDepartmentID); err != nil {
			log.Fatalf("No departments available for admin seed: %v", err)
		}
	}

	return firstDepartmentID
}

// seedAdmin creates the bootstrap account holding every grant; without it no
// caller can pass the permission gate to create anything.
func seedAdmin(db *database.DB, departmentID uuid.UUID) {
	fmt.Println()
	fmt.Println("=== Seeding Admin User ===")

	var existingID uuid.UUID
	if err := db.QueryRow(`SELECT id FROM users WHERE username = $1`, seedAdminUsername).Scan(&existingID); err == nil {
		fmt.Println("Admin user already exists, skipping")
		return
	}

	adminPass := os.Getenv(envSeedAdminPass)
	if adminPass == "" {
		adminPass = defaultAdminPass
		fmt.Printf("Warning: %s not set, using default password\n", envSeedAdminPass)
	}

	hash, err := password.Hash(adminPass)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	personID := uuid.New()
	if _, err := db.Exec(
		`INSERT INTO persons (id, full_name, college_email, date_of_birth, gender, department_id)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		personID, seedAdminFullName, seedAdminEmail, seedAdminBirthDate, domain.GenderMale, departmentID,
	); err != nil {
		log.Fatalf("Failed to seed admin person: %v", err)
	}

	userID := uuid.New()
	if _, err := db.Exec(
		`INSERT INTO users (id, username, password, token, is_active, person_id)
		 VALUES ($1, $2, $3, '', TRUE, $4)`,
		userID, seedAdminUsername, hash, personID,
	); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	docTypes := []domain.DocType{
		domain.DocTypeCollege, domain.DocTypeDepartment, domain.DocTypeProject,
		domain.DocTypeStudent, domain.DocTypeSupervisor, domain.DocTypeUser,
		domain.DocTypePermission,
	}
	permissionTypes := []domain.PermissionType{
		domain.PermissionCreate, domain.PermissionRead,
		domain.PermissionUpdate, domain.PermissionDelete,
	}

	granted := 0
	for _, docType := range docTypes {
		for _, permissionType := range permissionTypes {
			if _, err := db.Exec(
				`INSERT INTO permissions (id, user_id, doc_type, permission_type) VALUES ($1, $2, $3, $4)`,
				uuid.New(), userID, docType, permissionType,
			); err != nil {
				log.Fatalf("Failed to seed permission %s/%s: %v", docType, permissionType, err)
			}
			granted++
		}
	}

	fmt.Printf("Seeded admin user %q with %d grants\n", seedAdminUsername, granted)
}
