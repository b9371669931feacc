package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"teamcomp/internal/errors"
)

// DefaultAPIBaseURL is where the data API listens when nothing is configured
const DefaultAPIBaseURL = "http://localhost:5000/api"

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig
	API     APIConfig
	DataAPI DataAPIConfig
	Log     LogConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
	PageTTL time.Duration
}

// APIConfig holds settings for the remote data API the UI reads from
type APIConfig struct {
	BaseURL          string
	Timeout          time.Duration
	ImageConcurrency int
}

// DataAPIConfig holds settings for the bundled data API server
type DataAPIConfig struct {
	Port         string
	DataFile     string
	ImageBaseURL string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:  *loadServerConfig(),
		API:     *loadAPIConfig(),
		DataAPI: *loadDataAPIConfig(),
		Log:     LogConfig{Level: getEnvOrDefault("LOG_LEVEL", "INFO")},
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
		PageTTL: getEnvDurationOrDefault("PAGE_TTL", 5*time.Minute),
	}
}

func loadAPIConfig() *APIConfig {
	return &APIConfig{
		BaseURL:          strings.TrimRight(getEnvOrDefault("API_BASE_URL", DefaultAPIBaseURL), "/"),
		Timeout:          getEnvDurationOrDefault("FETCH_TIMEOUT", 10*time.Second),
		ImageConcurrency: getEnvIntOrDefault("IMAGE_CONCURRENCY", 8),
	}
}

func loadDataAPIConfig() *DataAPIConfig {
	return &DataAPIConfig{
		Port:         getEnvOrDefault("DATA_API_PORT", "5000"),
		DataFile:     getEnvOrDefault("DATA_FILE", "pokemon_data.json"),
		ImageBaseURL: strings.TrimRight(getEnvOrDefault("IMAGE_BASE_URL", ""), "/"),
	}
}

// Validate checks the fields that have no safe fallback
func (c *Config) Validate() error {
	if err := ValidateBaseURL(c.API.BaseURL); err != nil {
		return err
	}
	if c.API.Timeout <= 0 {
		return errors.ConfigInvalid("FETCH_TIMEOUT must be positive")
	}
	if c.API.ImageConcurrency <= 0 {
		return errors.ConfigInvalid("IMAGE_CONCURRENCY must be positive")
	}
	if c.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	return nil
}

// ValidateBaseURL requires an absolute http or https URL
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return &errors.AppError{Code: errors.CodeConfigInvalid, Message: "API base URL is not a valid URL", Cause: err}
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.ConfigInvalid("API base URL must be an absolute http(s) URL, got " + strconv.Quote(raw))
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
