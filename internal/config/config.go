package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server ServerConfig
	App    AppConfig
	Remote RemoteConfig
	Store  StoreConfig
	Seed   SeedConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"pos-admin-api"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Debug       bool   `envconfig:"APP_DEBUG" default:"false"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.0"`
}

// RemoteConfig holds settings for the remote resource service.
type RemoteConfig struct {
	BaseURL         string        `envconfig:"REMOTE_BASE_URL" default:""`
	APIKey          string        `envconfig:"REMOTE_API_KEY" default:""`
	Timeout         time.Duration `envconfig:"REMOTE_TIMEOUT" default:"10s"`
	FallbackEnabled bool          `envconfig:"REMOTE_FALLBACK_ENABLED" default:"true"`
}

// StoreConfig holds settings for the local fallback store.
type StoreConfig struct {
	Type      string `envconfig:"STORE_TYPE" default:"memory"` // memory, redis, sqlite, mysql or postgres
	Path      string `envconfig:"STORE_PATH" default:"./data/posadmin.db"`
	KeyPrefix string `envconfig:"STORE_KEY_PREFIX" default:"posadmin"`

	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// MySQL / PostgreSQL settings
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     int    `envconfig:"DB_PORT" default:"0"`
	DBName     string `envconfig:"DB_NAME" default:"posadmin"`
	DBUser     string `envconfig:"DB_USER" default:"root"`
	DBPassword string `envconfig:"DB_PASS" default:""`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

// SeedConfig controls sample data.
type SeedConfig struct {
	SampleData bool `envconfig:"SEED_SAMPLE_DATA" default:"true"`
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RedisAddress returns the Redis address in host:port format.
func (s *StoreConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", s.RedisHost, s.RedisPort)
}

// MySQLDSN returns the MySQL data source name.
func (s *StoreConfig) MySQLDSN() string {
	port := s.DBPort
	if port == 0 {
		port = 3306
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		s.DBUser, s.DBPassword, s.DBHost, port, s.DBName)
}

// PostgresDSN returns the PostgreSQL connection string.
func (s *StoreConfig) PostgresDSN() string {
	port := s.DBPort
	if port == 0 {
		port = 5432
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		s.DBUser, s.DBPassword, s.DBHost, port, s.DBName, s.DBSSLMode)
}

// IsDevelopment returns true if running in development mode.
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	switch cfg.Store.Type {
	case "memory", "redis", "sqlite", "mysql", "postgres":
	default:
		return nil, fmt.Errorf("unsupported STORE_TYPE %q", cfg.Store.Type)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
