package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is the development fallback; it is rejected in production.
const DefaultJWTSecret = "eventhub-dev-secret"

// Config holds all application configuration
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Auth        AuthConfig
	Logging     LoggingConfig
	Storage     StorageConfig
	Recommender RecommenderConfig
	Catalog     CatalogConfig
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	FrontendURL     string
	Environment     string
	MaxUploadBytes  int64
	RateLimitRPS    float64
	RateLimitBurst  int
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// For SQLite
	Path string
}

// AuthConfig contains authentication configuration
type AuthConfig struct {
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	BCryptCost         int
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string
	Format     string // json or console
	OutputPath string
}

// StorageConfig selects where uploaded event images go
type StorageConfig struct {
	Backend       string // local, s3 or gcs
	LocalDir      string
	Bucket        string
	Prefix        string
	PublicBaseURL string
	// S3
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	// GCS
	CredentialsFile string
}

// RecommenderConfig describes the external decision procedure
type RecommenderConfig struct {
	Command string
	// Script is passed before the JSON argument when set, e.g. run.py
	Script  string
	WorkDir string
	// Timeout and MaxOutputBytes are disabled when zero
	Timeout        time.Duration
	MaxOutputBytes int64

	// The breaker and the per-minute limit are opt-in
	BreakerEnabled     bool
	BreakerMinRequests uint32
	BreakerFailureRate float64
	BreakerOpenTimeout time.Duration

	RateLimitPerMinute int
}

// CatalogConfig controls the candidate catalog export job
type CatalogConfig struct {
	ExportEnabled bool
	Schedule      string
	Path          string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors as it's optional)
	_ = godotenv.Load()

	recommenderDir := getEnv("RECOMMENDER_WORKDIR", "./data/recommender")

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", getEnvAsInt("PORT", 4000)),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 2*time.Minute),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			MaxUploadBytes:  getEnvAsInt64("MAX_UPLOAD_BYTES", 10<<20),
			RateLimitRPS:    getEnvAsFloat("RATE_LIMIT_RPS", 100),
			RateLimitBurst:  getEnvAsInt("RATE_LIMIT_BURST", 200),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "eventhub"),
			User:            getEnv("DB_USER", ""),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			Path:            getEnv("DB_PATH", "./eventhub.db"),
		},
		Auth: AuthConfig{
			JWTSecret:          getEnv("JWT_SECRET", DefaultJWTSecret),
			AccessTokenExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 24*time.Hour),
			RefreshTokenExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
			BCryptCost:         getEnvAsInt("BCRYPT_COST", 10),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			OutputPath: getEnv("LOG_OUTPUT", "stdout"),
		},
		Storage: StorageConfig{
			Backend:         getEnv("STORAGE_BACKEND", "local"),
			LocalDir:        getEnv("UPLOAD_DIR", "uploads"),
			Bucket:          getEnv("STORAGE_BUCKET", ""),
			Prefix:          getEnv("STORAGE_PREFIX", "events/"),
			PublicBaseURL:   getEnv("STORAGE_PUBLIC_URL", ""),
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		},
		Recommender: RecommenderConfig{
			Command:            getEnv("RECOMMENDER_COMMAND", "eventpicker"),
			Script:             getEnv("RECOMMENDER_SCRIPT", ""),
			WorkDir:            recommenderDir,
			Timeout:            getEnvAsDuration("RECOMMENDER_TIMEOUT", 0),
			MaxOutputBytes:     getEnvAsInt64("RECOMMENDER_MAX_OUTPUT_BYTES", 0),
			BreakerEnabled:     getEnvAsBool("RECOMMENDER_BREAKER_ENABLED", false),
			BreakerMinRequests: uint32(getEnvAsInt("RECOMMENDER_BREAKER_MIN_REQUESTS", 10)),
			BreakerFailureRate: getEnvAsFloat("RECOMMENDER_BREAKER_FAILURE_RATE", 0.6),
			BreakerOpenTimeout: getEnvAsDuration("RECOMMENDER_BREAKER_OPEN_TIMEOUT", time.Minute),
			RateLimitPerMinute: getEnvAsInt("RECOMMENDER_RATE_LIMIT", 0),
		},
		Catalog: CatalogConfig{
			ExportEnabled: getEnvAsBool("CATALOG_EXPORT_ENABLED", true),
			Schedule:      getEnv("CATALOG_EXPORT_SCHEDULE", "@every 15m"),
			Path:          getEnv("CATALOG_PATH", filepath.Join(recommenderDir, "catalog.csv")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if c.IsProduction() && c.Auth.JWTSecret == DefaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must not use the default value in production")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	switch c.Storage.Backend {
	case "local":
	case "s3", "gcs":
		if c.Storage.Bucket == "" {
			return fmt.Errorf("STORAGE_BUCKET is required for the %s storage backend", c.Storage.Backend)
		}
	default:
		return fmt.Errorf("unsupported storage backend: %s", c.Storage.Backend)
	}

	if c.Recommender.Command == "" {
		return fmt.Errorf("RECOMMENDER_COMMAND must be set")
	}
	if c.Recommender.Timeout < 0 || c.Recommender.MaxOutputBytes < 0 {
		return fmt.Errorf("recommender timeout and output limit must not be negative")
	}
	if c.Recommender.BreakerFailureRate <= 0 || c.Recommender.BreakerFailureRate > 1 {
		return fmt.Errorf("invalid recommender breaker failure rate: %v", c.Recommender.BreakerFailureRate)
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
