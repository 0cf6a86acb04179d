package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"dept-service/internal/config"
	"dept-service/internal/http"
	"dept-service/internal/repository/postgres"
)

// Service owns the wired application: configuration, database pool, and the
// HTTP server.
type Service struct {
	config *config.Config
	logger *zap.Logger
	db     *postgres.DB
	server *http.Server
}

func NewService() (*Service, error) {
	return InitializeService()
}

func (s *Service) Start() error {
	s.logger.Info("starting department service",
		zap.String("port", s.config.Server.Port))

	return s.server.Start(":" + s.config.Server.Port)
}

// Shutdown stops the HTTP server first so in-flight requests drain before the
// database pool closes underneath them.
func (s *Service) Shutdown(ctx context.Context) error {
	err := s.server.Shutdown(ctx)
	s.db.Close()
	_ = s.logger.Sync()
	return err
}

func (s *Service) ShutdownTimeout() time.Duration {
	return s.config.Server.ShutdownTimeout
}
