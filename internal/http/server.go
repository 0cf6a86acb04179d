package http

import (
	"context"
	"fmt"
	stdhttp "net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"dept-service/internal/auth"
	"dept-service/internal/config"
	"dept-service/internal/domain"
	"dept-service/internal/http/handler"
	"dept-service/internal/http/middleware"
	"dept-service/internal/repository/postgres"
)

const (
	statusOK = "ok"

	jsonKeySuccess         = "success"
	jsonKeyIsExistingRoute = "isExistingRoute"
	msgInvalidRoute        = "Invalid route"
)

type ServerDependencies struct {
	Config         *config.Config
	Logger         *zap.Logger
	CollegeRepo    *postgres.CollegeRepository
	DepartmentRepo *postgres.DepartmentRepository
	SupervisorRepo *postgres.SupervisorRepository
	StudentRepo    *postgres.StudentRepository
	ProjectRepo    *postgres.ProjectRepository
	UserRepo       *postgres.UserRepository
	PermissionRepo *postgres.PermissionRepository
	DocumentStore  handler.DocumentStore
	TokenService   *auth.TokenService
	AuthMiddleware *auth.Middleware
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	// Request ID first so every log line carries one.
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit(fmt.Sprintf("%d", deps.Config.App.MaxUploadSize)))

	globalRateLimiter := middleware.NewGlobalRateLimiter()
	e.Use(globalRateLimiter.Middleware())

	// Credential endpoints get a tighter bucket.
	strictRateLimiter := middleware.NewStrictRateLimiter()

	collegeHandler := handler.NewCollegeHandler(deps.CollegeRepo)
	departmentHandler := handler.NewDepartmentHandler(deps.DepartmentRepo)
	supervisorHandler := handler.NewSupervisorHandler(deps.SupervisorRepo)
	studentHandler := handler.NewStudentHandler(deps.StudentRepo)
	projectHandler := handler.NewProjectHandler(deps.ProjectRepo, deps.DocumentStore,
		deps.Config.App.MinPageSize, deps.Config.App.MaxPageSize)
	userHandler := handler.NewUserHandler(deps.UserRepo, deps.PermissionRepo, deps.TokenService)
	permissionHandler := handler.NewPermissionHandler(deps.PermissionRepo, deps.UserRepo)

	authn := deps.AuthMiddleware.RequireAuth()
	can := deps.AuthMiddleware.RequirePermission

	e.GET("/health", healthCheck)

	colleges := e.Group("/colleges")
	colleges.GET("", collegeHandler.List)
	colleges.GET("/:id", collegeHandler.Get)
	colleges.POST("", collegeHandler.Create, authn, can(domain.DocTypeCollege, domain.PermissionCreate))
	colleges.PUT("/:id", collegeHandler.Update, authn, can(domain.DocTypeCollege, domain.PermissionUpdate))
	colleges.DELETE("/:id", collegeHandler.Delete, authn, can(domain.DocTypeCollege, domain.PermissionDelete))

	departments := e.Group("/departments")
	departments.GET("", departmentHandler.List)
	departments.GET("/:id", departmentHandler.Get)
	departments.POST("", departmentHandler.Create, authn, can(domain.DocTypeDepartment, domain.PermissionCreate))
	departments.PUT("/:id", departmentHandler.Update, authn, can(domain.DocTypeDepartment, domain.PermissionUpdate))
	departments.DELETE("/:id", departmentHandler.Delete, authn, can(domain.DocTypeDepartment, domain.PermissionDelete))

	supervisors := e.Group("/supervisors")
	supervisors.GET("", supervisorHandler.List)
	supervisors.GET("/:id", supervisorHandler.Get)
	supervisors.POST("", supervisorHandler.Create, authn, can(domain.DocTypeSupervisor, domain.PermissionCreate))
	supervisors.POST("/many", supervisorHandler.CreateMany, authn, can(domain.DocTypeSupervisor, domain.PermissionCreate))
	supervisors.PUT("/:id", supervisorHandler.Update, authn, can(domain.DocTypeSupervisor, domain.PermissionUpdate))
	supervisors.DELETE("/:id", supervisorHandler.Delete, authn, can(domain.DocTypeSupervisor, domain.PermissionDelete))

	students := e.Group("/students")
	students.GET("", studentHandler.List)
	students.GET("/:id", studentHandler.Get)
	students.POST("", studentHandler.Create, authn, can(domain.DocTypeStudent, domain.PermissionCreate))
	students.POST("/many", studentHandler.CreateMany, authn, can(domain.DocTypeStudent, domain.PermissionCreate))
	students.PUT("/:id", studentHandler.Update, authn, can(domain.DocTypeStudent, domain.PermissionUpdate))
	students.DELETE("/:id", studentHandler.Delete, authn, can(domain.DocTypeStudent, domain.PermissionDelete))

	projects := e.Group("/projects")
	projects.GET("", projectHandler.List)
	projects.GET("/:id", projectHandler.Get)
	projects.POST("", projectHandler.Create, authn, can(domain.DocTypeProject, domain.PermissionCreate))
	projects.PUT("/:id", projectHandler.Update, authn, can(domain.DocTypeProject, domain.PermissionUpdate))
	projects.DELETE("/:id", projectHandler.Delete, authn, can(domain.DocTypeProject, domain.PermissionDelete))

	users := e.Group("/users")
	users.POST("", userHandler.Create, strictRateLimiter.Middleware())
	users.POST("/login", userHandler.Login, strictRateLimiter.Middleware())
	users.POST("/:id/logout", userHandler.Logout, authn)
	users.POST("/:id/refreshtoken", userHandler.RefreshToken, authn)
	users.GET("", userHandler.List, authn, can(domain.DocTypeUser, domain.PermissionRead))
	users.GET("/:id", userHandler.Get, authn, can(domain.DocTypeUser, domain.PermissionRead))
	users.GET("/:id/permissions", userHandler.GetPermissions, authn, can(domain.DocTypeUser, domain.PermissionRead))
	users.PUT("/:id", userHandler.Update, authn, can(domain.DocTypeUser, domain.PermissionUpdate))
	users.DELETE("/:id", userHandler.Delete, authn, can(domain.DocTypeUser, domain.PermissionDelete))

	permissions := e.Group("/permissions")
	permissions.Use(authn)
	permissions.GET("", permissionHandler.List, can(domain.DocTypePermission, domain.PermissionRead))
	permissions.GET("/:id", permissionHandler.Get, can(domain.DocTypePermission, domain.PermissionRead))
	permissions.POST("", permissionHandler.Create, can(domain.DocTypePermission, domain.PermissionCreate))
	permissions.POST("/many", permissionHandler.CreateMany, can(domain.DocTypePermission, domain.PermissionCreate))
	permissions.PUT("/:id", permissionHandler.Update, can(domain.DocTypePermission, domain.PermissionUpdate))
	permissions.DELETE("/:id", permissionHandler.Delete, can(domain.DocTypePermission, domain.PermissionDelete))

	e.RouteNotFound("/*", unknownRoute)

	return &Server{
		echo: e,
		deps: deps,
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func healthCheck(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}

func unknownRoute(c echo.Context) error {
	return c.JSON(stdhttp.StatusNotFound, map[string]any{
		jsonKeySuccess:         false,
		jsonKeyIsExistingRoute: false,
		jsonKeyMessage:         msgInvalidRoute,
	})
}
