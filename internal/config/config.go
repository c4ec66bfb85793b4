package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Attachment payload backends.
const (
	BackendDatabase = "database"
	BackendS3       = "s3"
)

var (
	ErrAPIKeyRequired   = errors.New("API_KEY is required")
	ErrDatabaseRequired = errors.New("DATABASE_URL or DB_HOST/DB_USER/DB_NAME is required")
	ErrInvalidBackend   = errors.New("ATTACHMENT_BACKEND must be \"database\" or \"s3\"")
	ErrMinIORequired    = errors.New("MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY and MINIO_BUCKET are required for the s3 backend")
)

// DatabaseConfig holds PostgreSQL database connection settings.
// URL, when set, takes precedence over the individual components.
type DatabaseConfig struct {
	URL                string
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	QueryTimeoutSec    int
}

// QueryTimeout is the upper bound applied to a single unit of store work.
func (c DatabaseConfig) QueryTimeout() time.Duration {
	if c.QueryTimeoutSec <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.QueryTimeoutSec) * time.Second
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AttachmentConfig selects where attachment payloads are kept.
type AttachmentConfig struct {
	Backend string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated once from environment variables and passed explicitly to components.
type AppConfig struct {
	AppHost     string
	Port        string
	APIKey      string
	LogLevel    string
	CORSOrigins string
	NewestLimit int
	BodyLimitMB int
	Database    DatabaseConfig
	Attachments AttachmentConfig
	MinIO       MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:     getEnv("APP_HOST", "localhost:8080"),
		Port:        getEnv("PORT", "8080"),
		APIKey:      getEnv("API_KEY", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		NewestLimit: getEnvInt("RELATOS_NEWEST_LIMIT", 5),
		BodyLimitMB: getEnvInt("BODY_LIMIT_MB", 16),
		Database: DatabaseConfig{
			URL:                getEnv("DATABASE_URL", ""),
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			QueryTimeoutSec:    getEnvInt("DB_QUERY_TIMEOUT_SEC", 5),
		},
		Attachments: AttachmentConfig{
			Backend: strings.ToLower(getEnv("ATTACHMENT_BACKEND", BackendDatabase)),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

// Validate reports the first setting that prevents the process from starting.
// A missing API key is fatal: the service never runs without its shared secret.
func (c *AppConfig) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrAPIKeyRequired
	}
	if c.Database.URL == "" && (c.Database.Host == "" || c.Database.User == "" || c.Database.Name == "") {
		return ErrDatabaseRequired
	}
	switch c.Attachments.Backend {
	case BackendDatabase:
	case BackendS3:
		m := c.MinIO
		if m.Endpoint == "" || m.AccessKey == "" || m.SecretKey == "" || m.Bucket == "" {
			return ErrMinIORequired
		}
	default:
		return ErrInvalidBackend
	}
	return nil
}

// BodyLimit is the request body cap in bytes. Attachments travel inline, so it is larger than Fiber's default.
func (c *AppConfig) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 0
	}
	return c.BodyLimitMB * 1024 * 1024
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
