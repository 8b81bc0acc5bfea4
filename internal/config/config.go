// Package config handles loading application configuration from environment
// variables. All config is centralized here so no other package reads env
// vars directly. Sensible defaults are provided for development.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// Default scrypt cost. Stored password hashes were derived with these
// values, so changing them invalidates every existing account.
const (
	DefaultScryptN = 32768
	DefaultScryptR = 8
	DefaultScryptP = 1
)

// Config holds all application configuration. Populated from environment
// variables at startup. Passed to other packages via dependency injection.
type Config struct {
	// Env is the runtime environment: "development" or "production".
	Env string

	// Port is the HTTP listen port (default: 8080).
	Port int

	// BaseURL is the public-facing URL used for links and redirects.
	BaseURL string

	// Database holds MySQL/MariaDB connection settings.
	Database DatabaseConfig

	// Redis holds Redis connection settings for the session cache.
	Redis RedisConfig

	// Auth holds authentication-related settings.
	Auth AuthConfig
}

// DatabaseConfig holds MySQL connection parameters. If DATABASE_URL is set,
// it takes precedence over the individual fields.
type DatabaseConfig struct {
	// Host is the MySQL address in host:port format (default: "localhost:3306").
	// If no port is specified, 3306 is appended automatically.
	Host string

	User     string
	Password string
	Name     string

	// dsnOverride is set when DATABASE_URL is provided, bypassing individual fields.
	dsnOverride string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN returns the go-sql-driver/mysql connection string. If DATABASE_URL was
// set, its normalized form is returned. Otherwise the DSN is built from the
// individual fields using the driver's Config.FormatDSN() so special
// characters in passwords are escaped.
func (d DatabaseConfig) DSN() string {
	if d.dsnOverride != "" {
		return d.dsnOverride
	}
	cfg := mysql.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = ensurePort(d.Host, "3306")
	cfg.DBName = d.Name
	return withRequiredParams(cfg).FormatDSN()
}

// withRequiredParams sets the driver options the repositories and migrations
// depend on.
func withRequiredParams(cfg *mysql.Config) *mysql.Config {
	// Session and account timestamps are scanned into time.Time.
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	// golang-migrate sends each migration file as one statement batch.
	cfg.MultiStatements = true
	return cfg
}

// normalizeDSN parses a user-supplied DSN and forces the required options.
func normalizeDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	return withRequiredParams(cfg).FormatDSN(), nil
}

// ensurePort appends the default port if the host string doesn't include one.
func ensurePort(host, defaultPort string) string {
	_, _, err := net.SplitHostPort(host)
	if err != nil {
		return net.JoinHostPort(host, defaultPort)
	}
	return host
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., "redis://localhost:6379").
	// Empty disables the session cache; sessions are then served from MySQL only.
	URL string
}

// Enabled reports whether a Redis URL was configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != ""
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	// SessionTTL is how long a session row stays valid server-side. The
	// cookie Max-Age is derived from the same value.
	SessionTTL time.Duration

	// CookieDomain scopes the token cookie. Empty means host-only.
	CookieDomain string

	// SweepSchedule is the cron spec for purging expired sessions.
	SweepSchedule string

	// Scrypt cost parameters. Defaults are DefaultScryptN/R/P.
	ScryptN int
	ScryptR int
	ScryptP int
}

// Load reads configuration from environment variables with sensible defaults.
// Returns an error if a value is present but unusable.
func Load() (*Config, error) {
	cfg := &Config{
		Env:     getEnv("ENV", "development"),
		Port:    getEnvInt("PORT", 8080),
		BaseURL: getEnv("BASE_URL", "http://localhost:8080"),

		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost:3306"),
			User:            getEnv("DB_USER", "fitcoach"),
			Password:        getEnv("DB_PASSWORD", "fitcoach"),
			Name:            getEnv("DB_NAME", "fitcoach"),
			dsnOverride:     getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},

		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},

		Auth: AuthConfig{
			SessionTTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),
			CookieDomain:  getEnv("COOKIE_DOMAIN", ""),
			SweepSchedule: getEnv("SESSION_SWEEP_SCHEDULE", "@every 1h"),
			ScryptN:       getEnvInt("SCRYPT_N", DefaultScryptN),
			ScryptR:       getEnvInt("SCRYPT_R", DefaultScryptR),
			ScryptP:       getEnvInt("SCRYPT_P", DefaultScryptP),
		},
	}

	if override := cfg.Database.dsnOverride; override != "" {
		dsn, err := normalizeDSN(override)
		if err != nil {
			return nil, fmt.Errorf("DATABASE_URL is not a valid MySQL DSN: %w", err)
		}
		cfg.Database.dsnOverride = dsn
	}

	if cfg.Auth.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.Auth.SessionTTL)
	}
	// scrypt requires N to be a power of two greater than one.
	if n := cfg.Auth.ScryptN; n <= 1 || n&(n-1) != 0 {
		return nil, fmt.Errorf("SCRYPT_N must be a power of two greater than 1, got %d", n)
	}
	if cfg.Auth.ScryptR <= 0 || cfg.Auth.ScryptP <= 0 {
		return nil, fmt.Errorf("SCRYPT_R and SCRYPT_P must be positive")
	}

	return cfg, nil
}

// LoadEnvFile copies KEY=VALUE pairs from path into the process
// environment. Variables that are already set win. A missing file is not an
// error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// --- Helper functions for reading environment variables ---

// getEnv reads a string env var or returns the default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt reads an integer env var or returns the default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvDuration reads a duration env var (e.g., "24h") or returns the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
