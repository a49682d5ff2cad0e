package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DatabaseConfig PostgreSQL settings (used by the postgres store backend)
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
	MaxConns int    `yaml:"max_conns"`
	MaxIdle  int    `yaml:"max_idle"`
}

// GetDSN returns the lib/pq connection string.
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// RedisConfig Redis settings (used by the redis store backend)
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Config careconnect configuration
type Config struct {
	App struct {
		// Namespace prefixes every key written to the settings store.
		Namespace string `yaml:"namespace"`
	} `yaml:"app"`

	Store struct {
		// Backend: memory, sqlite, redis or postgres
		Backend    string `yaml:"backend"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"store"`

	Redis    RedisConfig    `yaml:"redis"`
	Database DatabaseConfig `yaml:"database"`

	Auth struct {
		DemoEmail    string `yaml:"demo_email"`
		DemoPassword string `yaml:"demo_password"`
		// DemoPasswordHash (bcrypt) takes precedence over DemoPassword when set.
		DemoPasswordHash string `yaml:"demo_password_hash"`
	} `yaml:"auth"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Store backends
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Load reads the file named by CARECONNECT_CONFIG (if any), then environment
// overrides. A .env file in the working directory fills unset variables.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFile(os.Getenv("CARECONNECT_CONFIG"))
}

// LoadFile applies defaults, then the YAML file at path (skipped when empty),
// then environment variables.
func LoadFile(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.App.Namespace == "" {
		return fmt.Errorf("app namespace must not be empty")
	}
	switch c.Store.Backend {
	case BackendMemory, BackendSQLite, BackendRedis, BackendPostgres:
	default:
		return fmt.Errorf("unsupported store backend: %s", c.Store.Backend)
	}
	return nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.App.Namespace = "careconnect"

	cfg.Store.Backend = BackendSQLite
	cfg.Store.SQLitePath = defaultSQLitePath()

	cfg.Redis.Addr = "localhost:6379"
	cfg.Redis.DB = 0

	cfg.Database.Host = "localhost"
	cfg.Database.Port = 5432
	cfg.Database.User = "postgres"
	cfg.Database.Password = "postgres"
	cfg.Database.Database = "careconnect"
	cfg.Database.SSLMode = "disable"

	cfg.Auth.DemoEmail = "caregiver@careconnect.app"
	cfg.Auth.DemoPassword = "careconnect"

	cfg.Log.Level = "warn"
	cfg.Log.Format = "console"
	return cfg
}

func applyEnv(cfg *Config) {
	cfg.App.Namespace = getEnv("CARECONNECT_NAMESPACE", cfg.App.Namespace)

	cfg.Store.Backend = getEnv("STORE_BACKEND", cfg.Store.Backend)
	cfg.Store.SQLitePath = getEnv("SQLITE_PATH", cfg.Store.SQLitePath)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", ""), cfg.Redis.DB)

	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = parseInt(getEnv("DB_PORT", ""), cfg.Database.Port)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.Database = getEnv("DB_NAME", cfg.Database.Database)
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", cfg.Database.SSLMode)

	cfg.Auth.DemoEmail = getEnv("DEMO_EMAIL", cfg.Auth.DemoEmail)
	cfg.Auth.DemoPassword = getEnv("DEMO_PASSWORD", cfg.Auth.DemoPassword)
	cfg.Auth.DemoPasswordHash = getEnv("DEMO_PASSWORD_HASH", cfg.Auth.DemoPasswordHash)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)
}

func defaultSQLitePath() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "careconnect", "settings.db")
	}
	return filepath.Join(".careconnect", "settings.db")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
