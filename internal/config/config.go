package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Host string
	Port string

	// Database settings
	DatabasePath string

	// Logging settings
	LogLevel  string
	LogFormat string

	// PDF proxy settings
	PDFFetchTimeout time.Duration
	PDFUserAgent    string

	// Throttling settings
	RateLimit     int
	RateWindow    time.Duration
	RateCacheSize int

	// Dashboard settings
	RecentLimit int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Not an error if .env doesn't exist
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{
		Host:         getEnv("HOST", "0.0.0.0"),
		Port:         getEnv("PORT", "8080"),
		DatabasePath: getEnv("DATABASE_PATH", "./data/case_queries.db"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		PDFUserAgent: getEnv("PDF_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"),
	}

	var err error

	pdfTimeout, err := getInt("PDF_FETCH_TIMEOUT", 60)
	if err != nil {
		return nil, err
	}
	cfg.PDFFetchTimeout = time.Duration(pdfTimeout) * time.Second

	if cfg.RateLimit, err = getInt("RATE_LIMIT", 100); err != nil {
		return nil, err
	}

	rateWindow, err := getInt("RATE_WINDOW", 60)
	if err != nil {
		return nil, err
	}
	cfg.RateWindow = time.Duration(rateWindow) * time.Second

	if cfg.RateCacheSize, err = getInt("RATE_CACHE_SIZE", 10000); err != nil {
		return nil, err
	}

	if cfg.RecentLimit, err = getInt("RECENT_LIMIT", 10); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects values the server cannot run with
func (c *Config) Validate() error {
	if c.PDFFetchTimeout < 0 {
		return fmt.Errorf("invalid PDF_FETCH_TIMEOUT: must not be negative")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("invalid RATE_LIMIT: must not be negative")
	}
	if c.RateLimit > 0 && c.RateWindow <= 0 {
		return fmt.Errorf("invalid RATE_WINDOW: must be positive when RATE_LIMIT is set")
	}
	if c.RecentLimit <= 0 {
		return fmt.Errorf("invalid RECENT_LIMIT: must be positive")
	}
	return nil
}

// Address returns the listen address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// getEnv returns the value of an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	n, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
