package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            string
	DBPath          string
	JWTSecret       string
	TokenExpiry     time.Duration
	DefaultPassword string
	LogLevel        string
	LogFormat       string
	Timezone        string
	Currency        string

	// EnvFile is the .env file that was loaded, empty when none was found.
	EnvFile string
}

// Load reads .env (when one can be found) and then the process environment.
// Variables already present in the environment win over the file.
func Load() (*Config, error) {
	envFile, err := loadEnvFile(".env")
	if err != nil {
		return nil, err
	}

	expiry, err := time.ParseDuration(getEnvOrDefault("TOKEN_EXPIRY", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_EXPIRY: %w", err)
	}

	cfg := &Config{
		Port:            getEnvOrDefault("PORT", "5000"),
		DBPath:          getEnvOrDefault("DB_PATH", ":memory:"),
		JWTSecret:       getEnvOrDefault("JWT_SECRET", "payflow-development-secret"),
		TokenExpiry:     expiry,
		DefaultPassword: getEnvOrDefault("DEFAULT_PASSWORD", "welcome2026"),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       getEnvOrDefault("LOG_FORMAT", "json"),
		Timezone:        getEnvOrDefault("TIMEZONE", "Local"),
		Currency:        getEnvOrDefault("CURRENCY", "KES"),
		EnvFile:         envFile,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %q", c.Port)
	}
	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	if c.DefaultPassword == "" {
		return fmt.Errorf("DEFAULT_PASSWORD is required")
	}
	if c.TokenExpiry <= 0 {
		return fmt.Errorf("TOKEN_EXPIRY must be positive")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return nil
}

// Location resolves the time zone attendance days and check-in times use.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// ListenAddr is the address handed to fiber's Listen.
func (c *Config) ListenAddr() string {
	return ":" + c.Port
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
