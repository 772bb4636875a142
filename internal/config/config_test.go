package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		TelegramToken:    "token",
		NotionToken:      "secret",
		NotionDatabaseID: "db",
		SplitFraction:    0.3,
		HTTPPort:         "8080",
		SessionTTL:       30 * time.Minute,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing telegram token",
			mutate:  func(c *Config) { c.TelegramToken = "" },
			wantErr: "TELEGRAM_TOKEN is required",
		},
		{
			name:    "missing notion token",
			mutate:  func(c *Config) { c.NotionToken = "" },
			wantErr: "NOTION_TOKEN is required",
		},
		{
			name:    "missing database id",
			mutate:  func(c *Config) { c.NotionDatabaseID = "" },
			wantErr: "NOTION_DATABASE_ID is required",
		},
		{
			name:    "split fraction above one",
			mutate:  func(c *Config) { c.SplitFraction = 1.5 },
			wantErr: "out of range",
		},
		{
			name:    "negative split fraction",
			mutate:  func(c *Config) { c.SplitFraction = -0.1 },
			wantErr: "out of range",
		},
		{
			name:    "non-numeric port",
			mutate:  func(c *Config) { c.HTTPPort = "abc" },
			wantErr: "must be a number",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.HTTPPort = "70000" },
			wantErr: "must be between 1 and 65535",
		},
		{
			name:    "negative session ttl",
			mutate:  func(c *Config) { c.SessionTTL = -time.Minute },
			wantErr: "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllProblems(t *testing.T) {
	cfg := validConfig()
	cfg.TelegramToken = ""
	cfg.SplitFraction = 2

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error, got nil")
	}
	for _, want := range []string{"TELEGRAM_TOKEN", "out of range"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error %q missing %q", err.Error(), want)
		}
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "tg")
	t.Setenv("NOTION_TOKEN", "nt")
	t.Setenv("NOTION_DATABASE_ID", "db")
	t.Setenv("SPLIT_FRACTION", "0.25")
	t.Setenv("SESSION_TTL", "10m")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.SplitFraction != 0.25 {
		t.Errorf("SplitFraction = %v, want 0.25", cfg.SplitFraction)
	}
	if cfg.SessionTTL != 10*time.Minute {
		t.Errorf("SessionTTL = %v, want 10m", cfg.SessionTTL)
	}
	if cfg.HTTPPort != "9090" {
		t.Errorf("HTTPPort = %q, want 9090", cfg.HTTPPort)
	}
}

func TestLoadConfig_BadSplitFraction(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "tg")
	t.Setenv("NOTION_TOKEN", "nt")
	t.Setenv("NOTION_DATABASE_ID", "db")
	t.Setenv("SPLIT_FRACTION", "a third")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("LoadConfig() expected error for malformed SPLIT_FRACTION")
	}
}
