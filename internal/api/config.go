package api

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds client-side configuration for the content service.
type Config struct {
	// BaseURL is the root of the content service, without trailing slash.
	BaseURL string
	// ReviewerID identifies this reviewer on status updates and revisions.
	ReviewerID string
	// LogCalls enables one-line API call logging to stderr.
	LogCalls bool
	// RefreshIntervalMs is the background refresh cadence for list and
	// queue views.
	RefreshIntervalMs int
}

// fileConfig models the optional ~/.lectern/config.yaml.
type fileConfig struct {
	APIURL            string `yaml:"api_url"`
	Reviewer          string `yaml:"reviewer"`
	LogCalls          *bool  `yaml:"log_calls"`
	RefreshIntervalMs int    `yaml:"refresh_interval_ms"`
}

// DefaultConfig returns a Config with sensible defaults, pointing at a
// locally running content service.
func DefaultConfig() Config {
	reviewer := os.Getenv("USER")
	if reviewer == "" {
		reviewer = "reviewer"
	}
	return Config{
		BaseURL:           "http://localhost:8000",
		ReviewerID:        reviewer,
		LogCalls:          false,
		RefreshIntervalMs: 30000,
	}
}

// LoadConfig builds configuration from defaults, then the optional yaml
// config file, then LECTERN_* environment variables (highest wins).
func LoadConfig() Config {
	cfg := DefaultConfig()

	path := os.Getenv("LECTERN_CONFIG")
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".lectern", "config.yaml")
		}
	}
	if path != "" {
		applyFileConfig(&cfg, path)
	}

	if v := os.Getenv("LECTERN_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("LECTERN_REVIEWER"); v != "" {
		cfg.ReviewerID = v
	}
	if v := os.Getenv("LECTERN_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("LECTERN_REFRESH_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RefreshIntervalMs = n
		}
	}

	return cfg
}

// applyFileConfig overlays values from a yaml config file. A missing or
// unreadable file is not an error; the file is optional.
func applyFileConfig(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return
	}
	if fc.APIURL != "" {
		cfg.BaseURL = fc.APIURL
	}
	if fc.Reviewer != "" {
		cfg.ReviewerID = fc.Reviewer
	}
	if fc.LogCalls != nil {
		cfg.LogCalls = *fc.LogCalls
	}
	if fc.RefreshIntervalMs > 0 {
		cfg.RefreshIntervalMs = fc.RefreshIntervalMs
	}
}
