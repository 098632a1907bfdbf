// Package config reads the configuration of the backend from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/promissoria/backend/internal/access"
)

// Config holds the application configuration.
type Config struct {
	APIURL             *url.URL      // Public URL of the API, used to build links
	DBPath             string        // Path of the SQLite database file
	DBHost             string        // If set, PostgreSQL is used instead of SQLite
	DBUser             string        // PostgreSQL user
	DBPassword         string        // PostgreSQL password
	DBName             string        // PostgreSQL database name
	JWTSecret          string        // Secret used to sign access tokens
	TokenTTL           time.Duration // Lifetime of access tokens
	Limits             access.Limits // Default client limits per plan
	SupportPhone       string        // Chat contact for plan changes
	AdminEmail         string        // E-Mail of the administrator created on startup
	AdminPassword      string        // Password of the administrator created on startup
	PlanExpirySchedule string        // Cron schedule for expiring Pro plans
}

// New loads the configuration from environment variables.
func New() (*Config, error) {
	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		return nil, fmt.Errorf("environment variable API_URL must be set")
	}

	u, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("environment variable API_URL must be a valid URL: %w", err)
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("TOKEN_TTL is not a valid duration: %w", err)
	}

	freeLimit, err := strconv.Atoi(getEnv("FREE_CLIENT_LIMIT", "5"))
	if err != nil {
		return nil, fmt.Errorf("FREE_CLIENT_LIMIT must be a number: %w", err)
	}

	proLimit, err := strconv.Atoi(getEnv("PRO_CLIENT_LIMIT", "0"))
	if err != nil {
		return nil, fmt.Errorf("PRO_CLIENT_LIMIT must be a number: %w", err)
	}

	cfg := &Config{
		APIURL:             u,
		DBPath:             getEnv("DB_PATH", "data/gorm.db"),
		DBHost:             os.Getenv("DB_HOST"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		TokenTTL:           ttl,
		Limits:             access.Limits{Free: freeLimit, Pro: proLimit},
		SupportPhone:       os.Getenv("SUPPORT_PHONE"),
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
		PlanExpirySchedule: getEnv("PLAN_EXPIRY_SCHEDULE", "@hourly"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	if (cfg.AdminEmail == "") != (cfg.AdminPassword == "") {
		return nil, fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}

	return cfg, nil
}

// PostgresDSN returns the connection string for PostgreSQL.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s", c.DBHost, c.DBUser, c.DBPassword, c.DBName)
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}
