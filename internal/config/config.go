package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App      AppConfig
	LLM      LLMConfig
	Catalog  CatalogConfig
	Session  SessionConfig
	Redis    RedisConfig
	Database DatabaseConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type LLMConfig struct {
	Provider    string // openai, anthropic, google; empty means auto-detect
	Model       string
	BaseURL     string
	APIKey      string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

type CatalogConfig struct {
	Path string // JSON catalog file
}

type SessionConfig struct {
	Store       string // memory, redis
	TTL         time.Duration
	JWTSecret   string
	TokenExpiry time.Duration
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type DatabaseConfig struct {
	Enabled  bool // when false orders are archived in memory
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Shopbot API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		LLM: LLMConfig{
			Provider:    getEnv("LLM_PROVIDER", ""),
			Model:       getEnv("LLM_MODEL", ""),
			BaseURL:     getEnv("LLM_BASE_URL", ""),
			APIKey:      getEnv("LLM_API_KEY", ""),
			Temperature: getEnvFloat("LLM_TEMPERATURE", 0),
			MaxTokens:   getEnvInt("LLM_MAX_TOKENS", 1000),
			Timeout:     getEnvDuration("LLM_TIMEOUT", 30*time.Second),
		},
		Catalog: CatalogConfig{
			Path: getEnv("CATALOG_PATH", "data/catalog.json"),
		},
		Session: SessionConfig{
			Store:       getEnv("SESSION_STORE", "memory"),
			TTL:         getEnvDuration("SESSION_TTL", 24*time.Hour),
			JWTSecret:   getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			TokenExpiry: getEnvDuration("JWT_EXPIRY", 24*time.Hour),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Database: DatabaseConfig{
			Enabled:  getEnvBool("DB_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "shopbot"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "shopbot_dev"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.Session.JWTSecret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Enabled && c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}
	switch c.Session.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("SESSION_STORE must be memory or redis, got %q", c.Session.Store)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
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

func getEnvFloat(key string, defaultValue float64) float64 {
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

func getEnvBool(key string, defaultValue bool) bool {
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

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
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
