package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"go-pagefetch/pkg/models"
)

// DefaultBaseURL is the endpoint fetched when BASE_URL is not set.
const DefaultBaseURL = "https://jsonmock.hackerrank.com/api/medical_records"

type Config struct {
	// BaseURL maps to BASE_URL. The page parameter is appended to it.
	BaseURL string `envconfig:"BASE_URL" default:"https://jsonmock.hackerrank.com/api/medical_records"`

	// Page maps to PAGE. 1-based.
	Page int `envconfig:"PAGE" default:"1"`

	// QueryStyle is "legacy" (?&page=N) or "normalized" (?page=N).
	QueryStyle string `envconfig:"QUERY_STYLE" default:"legacy"`

	// Timeout of zero means the client waits forever.
	Timeout time.Duration `envconfig:"TIMEOUT" default:"0s"`

	// UserAgent is only sent when non-empty.
	UserAgent string `envconfig:"USER_AGENT"`

	// RateLimit is the minimum gap between requests to one host. Zero disables it.
	RateLimit time.Duration `envconfig:"RATE_LIMIT" default:"0s"`

	RespectRobots bool `envconfig:"RESPECT_ROBOTS" default:"false"`
	DetectCharset bool `envconfig:"DETECT_CHARSET" default:"false"`

	// DatabaseURL maps to DB_URL. Pages are only stored when it is set.
	DatabaseURL string `envconfig:"DB_URL"`

	BatchSize int `envconfig:"BATCH_SIZE" default:"20"`
}

// Load processes environment variables and populates the Config struct.
func Load() (*Config, error) {
	// A missing .env is normal outside development.
	if err := godotenv.Load(); err != nil {
		if _, statErr := os.Stat(".env"); statErr == nil {
			log.Printf("Warning: .env file found but could not be loaded: %v", err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Page < 1 {
		return fmt.Errorf("PAGE must be at least 1, got %d", c.Page)
	}
	if _, err := models.ParseQueryStyle(c.QueryStyle); err != nil {
		return fmt.Errorf("QUERY_STYLE: %w", err)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("BASE_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("BASE_URL must be an absolute http(s) URL, got %q", c.BaseURL)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("BATCH_SIZE must be at least 1, got %d", c.BatchSize)
	}
	return nil
}

// Style returns the parsed QueryStyle. Call after Validate.
func (c *Config) Style() models.QueryStyle {
	style, _ := models.ParseQueryStyle(c.QueryStyle)
	return style
}
