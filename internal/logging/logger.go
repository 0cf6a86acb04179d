package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const envAppEnv = "APP_ENV"

// New builds the process logger. Development mode (APP_ENV != "production")
// uses console encoding; production emits JSON.
func New() (*zap.Logger, error) {
	if os.Getenv(envAppEnv) == "production" {
		return zap.NewProduction()
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg.Build()
}
