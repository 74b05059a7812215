package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the provisioning service
type Config struct {
	// Server
	Port     string `env:"PORT" default:"9600"`
	Host     string `env:"HOST" default:"0.0.0.0"`
	LogLevel string `env:"LOG_LEVEL" default:"info"`

	// Database
	DatabaseURL      string `env:"DATABASE_URL" required:"true"`
	DatabaseHost     string `env:"DB_HOST" default:"provisioning-postgres"`
	DatabasePort     string `env:"DB_PORT" default:"5432"`
	DatabaseName     string `env:"DB_NAME" default:"provisioning_db"`
	DatabaseUser     string `env:"DB_USER" default:"provisioning_user"`
	DatabasePassword string `env:"DB_PASSWORD" required:"true"`
	DatabaseSSLMode  string `env:"DB_SSL_MODE" default:"require"`

	// Database pool
	DatabaseMaxConns        int           `env:"DB_MAX_CONNS" default:"25"`
	DatabaseMinConns        int           `env:"DB_MIN_CONNS" default:"5"`
	DatabaseConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" default:"1h"`
	DatabaseConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" default:"30m"`
	DatabaseConnectTimeout  time.Duration `env:"DB_CONNECT_TIMEOUT" default:"30s"`

	// Kratos
	KratosPublicURL      string `env:"KRATOS_PUBLIC_URL" required:"true"`
	KratosAdminURL       string `env:"KRATOS_ADMIN_URL" required:"true"`
	KratosIdentitySchema string `env:"KRATOS_IDENTITY_SCHEMA" default:"default"`

	// Rate limiting
	RateLimitRPS   float64       `env:"RATE_LIMIT_RPS" default:"10"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST" default:"20"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" default:"60s"`

	// CORS
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" default:""`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	config := &Config{}

	// Server configuration
	config.Port = getEnvOrDefault("PORT", "9600")
	config.Host = getEnvOrDefault("HOST", "0.0.0.0")
	config.LogLevel = getEnvOrDefault("LOG_LEVEL", "info")

	// Database configuration
	config.DatabaseURL = os.Getenv("DATABASE_URL")
	if config.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	config.DatabaseHost = getEnvOrDefault("DB_HOST", "provisioning-postgres")
	config.DatabasePort = getEnvOrDefault("DB_PORT", "5432")
	config.DatabaseName = getEnvOrDefault("DB_NAME", "provisioning_db")
	config.DatabaseUser = getEnvOrDefault("DB_USER", "provisioning_user")
	config.DatabasePassword = os.Getenv("DB_PASSWORD")
	if config.DatabasePassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	config.DatabaseSSLMode = getEnvOrDefault("DB_SSL_MODE", "require")

	var err error
	config.DatabaseMaxConns, err = parseIntEnv("DB_MAX_CONNS", 25)
	if err != nil {
		return nil, err
	}
	config.DatabaseMinConns, err = parseIntEnv("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, err
	}
	config.DatabaseConnMaxLifetime, err = parseDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour)
	if err != nil {
		return nil, err
	}
	config.DatabaseConnMaxIdleTime, err = parseDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	config.DatabaseConnectTimeout, err = parseDurationEnv("DB_CONNECT_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	// Kratos configuration
	config.KratosPublicURL = os.Getenv("KRATOS_PUBLIC_URL")
	if config.KratosPublicURL == "" {
		return nil, fmt.Errorf("KRATOS_PUBLIC_URL is required")
	}

	config.KratosAdminURL = os.Getenv("KRATOS_ADMIN_URL")
	if config.KratosAdminURL == "" {
		return nil, fmt.Errorf("KRATOS_ADMIN_URL is required")
	}

	config.KratosIdentitySchema = getEnvOrDefault("KRATOS_IDENTITY_SCHEMA", "default")

	// Rate limiting
	rpsStr := getEnvOrDefault("RATE_LIMIT_RPS", "10")
	config.RateLimitRPS, err = strconv.ParseFloat(rpsStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}

	burstStr := getEnvOrDefault("RATE_LIMIT_BURST", "20")
	burst, err := strconv.ParseInt(burstStr, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}
	config.RateLimitBurst = int(burst)

	timeoutStr := getEnvOrDefault("REQUEST_TIMEOUT", "60s")
	config.RequestTimeout, err = time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}

	// CORS
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				config.AllowedOrigins = append(config.AllowedOrigins, trimmed)
			}
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	port, err := strconv.ParseInt(c.Port, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535: %s", c.Port)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit must be positive, got: %v", c.RateLimitRPS)
	}
	if c.RateLimitBurst < 1 {
		return fmt.Errorf("rate limit burst must be at least 1, got: %d", c.RateLimitBurst)
	}

	if c.RequestTimeout < time.Second {
		return fmt.Errorf("request timeout must be at least 1 second, got: %v", c.RequestTimeout)
	}

	if c.DatabaseMaxConns < 1 {
		return fmt.Errorf("database max conns must be at least 1, got: %d", c.DatabaseMaxConns)
	}
	if c.DatabaseMinConns < 0 || c.DatabaseMinConns > c.DatabaseMaxConns {
		return fmt.Errorf("database min conns must be between 0 and max conns, got: %d", c.DatabaseMinConns)
	}
	if c.DatabaseConnectTimeout < time.Second {
		return fmt.Errorf("database connect timeout must be at least 1 second, got: %v", c.DatabaseConnectTimeout)
	}

	return nil
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
