package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("API_KEY", "s3cret")
	t.Setenv("ATTACHMENT_BACKEND", "S3")
	t.Setenv("RELATOS_NEWEST_LIMIT", "")
	t.Setenv("BODY_LIMIT_MB", "")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "s3cret", cfg.APIKey)
	assert.Equal(t, BackendS3, cfg.Attachments.Backend)
	assert.Equal(t, 5, cfg.NewestLimit)
	assert.Equal(t, 16*1024*1024, cfg.BodyLimit())
}

func TestBodyLimit(t *testing.T) {
	assert.Equal(t, 0, (&AppConfig{}).BodyLimit())
	assert.Equal(t, 2*1024*1024, (&AppConfig{BodyLimitMB: 2}).BodyLimit())
}

func TestValidate(t *testing.T) {
	valid := func() *AppConfig {
		return &AppConfig{
			APIKey:      "key",
			Database:    DatabaseConfig{URL: "postgres://u@h/db"},
			Attachments: AttachmentConfig{Backend: BackendDatabase},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *AppConfig)
		wantErr error
	}{
		{name: "valid with url", mutate: func(c *AppConfig) {}},
		{
			name: "valid with components",
			mutate: func(c *AppConfig) {
				c.Database = DatabaseConfig{Host: "h", User: "u", Name: "db"}
			},
		},
		{name: "missing api key", mutate: func(c *AppConfig) { c.APIKey = "" }, wantErr: ErrAPIKeyRequired},
		{name: "blank api key", mutate: func(c *AppConfig) { c.APIKey = "   " }, wantErr: ErrAPIKeyRequired},
		{name: "missing database", mutate: func(c *AppConfig) { c.Database = DatabaseConfig{} }, wantErr: ErrDatabaseRequired},
		{name: "unknown backend", mutate: func(c *AppConfig) { c.Attachments.Backend = "disk" }, wantErr: ErrInvalidBackend},
		{
			name:    "s3 without minio settings",
			mutate:  func(c *AppConfig) { c.Attachments.Backend = BackendS3 },
			wantErr: ErrMinIORequired,
		},
		{
			name: "s3 with minio settings",
			mutate: func(c *AppConfig) {
				c.Attachments.Backend = BackendS3
				c.MinIO = MinIOConfig{Endpoint: "minio:9000", AccessKey: "a", SecretKey: "s", Bucket: "anexos"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQueryTimeout(t *testing.T) {
	assert.Equal(t, 5*time.Second, DatabaseConfig{}.QueryTimeout())
	assert.Equal(t, 2*time.Second, DatabaseConfig{QueryTimeoutSec: 2}.QueryTimeout())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
