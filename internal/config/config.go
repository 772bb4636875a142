package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken    string
	NotionToken      string
	NotionDatabaseID string

	// SplitFraction is the share of the monthly total attributed to the
	// counterpart (SRJ) in the report.
	SplitFraction float64

	HTTPPort   string
	SessionTTL time.Duration
}

// LoadConfig reads configuration from the environment, merging in a
// .env file when one is present.
func LoadConfig() (*Config, error) {
	// A missing .env is fine in deployed environments.
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:    os.Getenv("TELEGRAM_TOKEN"),
		NotionToken:      os.Getenv("NOTION_TOKEN"),
		NotionDatabaseID: os.Getenv("NOTION_DATABASE_ID"),
		SplitFraction:    0.3,
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		SessionTTL:       30 * time.Minute,
	}

	if raw := os.Getenv("SPLIT_FRACTION"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SPLIT_FRACTION %q: %w", raw, err)
		}
		cfg.SplitFraction = f
	}

	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL %q: %w", raw, err)
		}
		cfg.SessionTTL = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration and returns an error naming every
// invalid field.
func (c *Config) Validate() error {
	var problems []string

	if c.TelegramToken == "" {
		problems = append(problems, "TELEGRAM_TOKEN is required")
	}
	if c.NotionToken == "" {
		problems = append(problems, "NOTION_TOKEN is required")
	}
	if c.NotionDatabaseID == "" {
		problems = append(problems, "NOTION_DATABASE_ID is required")
	}
	if c.SplitFraction < 0 || c.SplitFraction > 1 {
		problems = append(problems, fmt.Sprintf("split fraction %v out of range [0,1]", c.SplitFraction))
	}
	if port, err := strconv.Atoi(c.HTTPPort); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number", c.HTTPPort))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}
	if c.SessionTTL < 0 {
		problems = append(problems, fmt.Sprintf("session TTL %v must not be negative", c.SessionTTL))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
