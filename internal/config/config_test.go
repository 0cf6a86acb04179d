package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080"},
		Database: DatabaseConfig{Host: "localhost", Port: 5432, Database: "deptservice", User: "app", Password: "secret"},
		AWS: AWSConfig{
			Region:          "eu-central-1",
			AccessKeyID:     "AKIAEXAMPLE",
			SecretAccessKey: "secret",
			BucketName:      "dept-documents",
		},
		JWT: JWTConfig{Secret: "kX9#mP2$vL5@nQ8&wR3*tY6!uI1%oA4^"},
		App: AppConfig{PresignedURLExpiry: 5 * time.Hour, MinPageSize: 10, MaxPageSize: 50, MaxUploadSize: 25 << 20},
	}
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_ShortJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWT.Secret = "short"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET must be at least")
}

func TestValidate_LowEntropyJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWT.Secret = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entropy")
}

func TestValidate_PageSizeBounds(t *testing.T) {
	cfg := validConfig()
	cfg.App.MinPageSize = 60

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PAGINATION_MIN_PAGE_SIZE")
}

func TestValidate_MissingBucket(t *testing.T) {
	cfg := validConfig()
	cfg.AWS.BucketName = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AWS_BUCKET_NAME")
}

func TestDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Database.SSLMode = "disable"

	dsn := cfg.Database.DSN()
	assert.Equal(t, "host=localhost port=5432 user=app password=secret dbname=deptservice sslmode=disable", dsn)
}

func TestHasMinimumEntropy(t *testing.T) {
	assert.True(t, hasMinimumEntropy("kX9#mP2$vL5@nQ8&wR3*tY6!uI1%oA4^"))
	assert.False(t, hasMinimumEntropy("abababababababababababababababab"))
	assert.False(t, hasMinimumEntropy("short"))
}
