// Package config loads server settings from flags, the environment and an
// optional .env file.
package config

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the server.
type Config struct {
	Addr          string
	DBDriver      string
	DBDSN         string
	LimiterDBPath string
	WebDir        string

	LogDir   string
	LogLevel string

	JWTSecret  string
	SessionTTL time.Duration

	IDTokenSecret   string
	IDTokenIssuer   string
	IDTokenAudience string

	// AdminEmails seeds the admin allowlist on startup.
	AdminEmails []string

	LoginAttemptLimit  int
	LoginBlockDuration time.Duration

	Environment string
}

// Load reads configuration from the environment (after loading .env when
// present) and lets command-line flags override the address and database.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:               getEnv("SERVER_ADDR", ":8080"),
		DBDriver:           getEnv("DB_DRIVER", "sqlite"),
		DBDSN:              getEnv("DB_DSN", "./samira.db"),
		LimiterDBPath:      getEnv("LIMITER_DB_PATH", "./login-security.db"),
		WebDir:             getEnv("WEB_DIR", "./web"),
		LogDir:             getEnv("LOG_DIR", "./logs"),
		LogLevel:           getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		SessionTTL:         getDuration("SESSION_TTL", time.Hour),
		IDTokenSecret:      os.Getenv("ID_TOKEN_SECRET"),
		IDTokenIssuer:      getEnv("ID_TOKEN_ISSUER", "https://accounts.google.com"),
		IDTokenAudience:    os.Getenv("ID_TOKEN_AUDIENCE"),
		AdminEmails:        splitList(os.Getenv("ADMIN_EMAILS")),
		LoginAttemptLimit:  getInt("LOGIN_ATTEMPT_LIMIT", 3),
		LoginBlockDuration: getDuration("LOGIN_BLOCK_DURATION", 7*24*time.Hour),
		Environment:        getEnv("ENVIRONMENT", "development"),
	}

	fs := flag.NewFlagSet("samiratravel", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address (ip:port)")
	fs.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "database driver: sqlite or mysql")
	fs.StringVar(&cfg.DBDSN, "db-dsn", cfg.DBDSN, "sqlite file path or mysql DSN")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	if c.IDTokenSecret == "" {
		return errors.New("ID_TOKEN_SECRET environment variable is required")
	}
	if c.DBDriver != "sqlite" && c.DBDriver != "mysql" {
		return errors.New("DB_DRIVER must be sqlite or mysql")
	}
	if c.LoginAttemptLimit <= 0 {
		return errors.New("LOGIN_ATTEMPT_LIMIT must be positive")
	}
	if c.SessionTTL <= 0 || c.LoginBlockDuration <= 0 {
		return errors.New("SESSION_TTL and LOGIN_BLOCK_DURATION must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.ToLower(strings.TrimSpace(part)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
