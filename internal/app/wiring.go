package app

import (
	"fmt"

	"dept-service/internal/auth"
	"dept-service/internal/config"
	"dept-service/internal/http"
	"dept-service/internal/logging"
	"dept-service/internal/repository/postgres"
	"dept-service/internal/storage/s3"
)

// InitializeService wires up all dependencies and returns a configured Service.
func InitializeService() (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := postgres.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store, err := s3.NewStore(&cfg.AWS, cfg.App.PresignedURLExpiry)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create document store: %w", err)
	}

	collegeRepo := postgres.NewCollegeRepository(db)
	departmentRepo := postgres.NewDepartmentRepository(db)
	supervisorRepo := postgres.NewSupervisorRepository(db)
	studentRepo := postgres.NewStudentRepository(db)
	projectRepo := postgres.NewProjectRepository(db)
	userRepo := postgres.NewUserRepository(db)
	permissionRepo := postgres.NewPermissionRepository(db)

	tokenService := auth.NewTokenService(cfg.JWT.Secret)
	authMiddleware := auth.NewMiddleware(tokenService, userRepo, permissionRepo)

	server := http.NewServer(&http.ServerDependencies{
		Config:         cfg,
		Logger:         logger,
		CollegeRepo:    collegeRepo,
		DepartmentRepo: departmentRepo,
		SupervisorRepo: supervisorRepo,
		StudentRepo:    studentRepo,
		ProjectRepo:    projectRepo,
		UserRepo:       userRepo,
		PermissionRepo: permissionRepo,
		DocumentStore:  store,
		TokenService:   tokenService,
		AuthMiddleware: authMiddleware,
	})

	return &Service{
		config: cfg,
		logger: logger,
		db:     db,
		server: server,
	}, nil
}
