// Package config provides configuration loading and validation for the
// book generator. All settings come from the environment (or a .env file
// loaded at the entrypoint); configuration is read once at startup and
// read-only afterwards.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults matching the production deployment.
const (
	DefaultReplicateModel = "anthropic/claude-3.5-sonnet"
	DefaultGeminiModel    = "gemini-2.5-flash"
	DefaultB2Bucket       = "orastria"
	DefaultB2Endpoint     = "https://s3.us-east-005.backblazeb2.com"
	DefaultB2Region       = "us-east-005"
	DefaultPort           = 8080
)

// Config holds every process-wide setting.
type Config struct {
	// LLM provider
	Provider       string // "replicate" or "gemini"
	ReplicateToken string
	ReplicateModel string // owner/name
	GeminiAPIKey   string
	GeminiModel    string

	// Call policy toward the LLM
	LLMTimeout            time.Duration
	LLMMaxRetries         int
	MaxConcurrentSections int

	// Object storage (Backblaze B2, S3-compatible)
	B2KeyID    string
	B2AppKey   string
	B2Bucket   string
	B2Endpoint string
	B2Region   string

	// Output
	BookFormat string // pdf, markdown or json

	// HTTP
	Port int

	// Malformed environment values noticed while loading, reported by
	// Validate so startup fails instead of running with defaults.
	envErrors []string
}

// FromEnv reads the configuration from the environment, applying
// defaults for optional settings.
func FromEnv() *Config {
	cfg := &Config{
		Provider:       envOr("LLM_PROVIDER", "replicate"),
		ReplicateToken: os.Getenv("REPLICATE_API_KEY"),
		ReplicateModel: envOr("REPLICATE_MODEL", DefaultReplicateModel),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    envOr("GEMINI_MODEL", DefaultGeminiModel),

		B2KeyID:    os.Getenv("B2_KEY_ID"),
		B2AppKey:   os.Getenv("B2_APP_KEY"),
		B2Bucket:   envOr("B2_BUCKET_NAME", envOr("B2_BUCKET", DefaultB2Bucket)),
		B2Endpoint: envOr("B2_ENDPOINT", DefaultB2Endpoint),
		B2Region:   envOr("B2_REGION", DefaultB2Region),

		BookFormat: envOr("BOOK_FORMAT", "pdf"),
	}

	cfg.LLMTimeout = time.Duration(cfg.envInt("LLM_TIMEOUT_SECONDS", 120)) * time.Second
	cfg.LLMMaxRetries = cfg.envInt("LLM_MAX_RETRIES", 3)
	cfg.MaxConcurrentSections = cfg.envInt("MAX_CONCURRENT_SECTIONS", 4)
	cfg.Port = cfg.envInt("PORT", DefaultPort)

	return cfg
}

// Validate checks that the configuration can actually serve requests.
// Missing required settings fail here, at startup, not per-request.
func (c *Config) Validate() error {
	if err := c.ValidateLocal(); err != nil {
		return err
	}

	if c.B2KeyID == "" {
		return fmt.Errorf("config error: B2_KEY_ID is required")
	}
	if c.B2AppKey == "" {
		return fmt.Errorf("config error: B2_APP_KEY is required")
	}
	if c.B2Bucket == "" {
		return fmt.Errorf("config error: B2_BUCKET_NAME is required")
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: invalid port %d", c.Port)
	}

	return nil
}

// ValidateLocal checks only the settings a local, no-upload run needs:
// LLM credentials and generation parameters, not bucket or port.
func (c *Config) ValidateLocal() error {
	if len(c.envErrors) > 0 {
		return fmt.Errorf("config error: %s", strings.Join(c.envErrors, "; "))
	}

	switch c.Provider {
	case "replicate":
		if c.ReplicateToken == "" {
			return fmt.Errorf("config error: REPLICATE_API_KEY is required")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("config error: GEMINI_API_KEY is required")
		}
	default:
		return fmt.Errorf("config error: unknown LLM_PROVIDER %q", c.Provider)
	}

	switch c.BookFormat {
	case "pdf", "markdown", "md", "json":
	default:
		return fmt.Errorf("config error: unknown BOOK_FORMAT %q", c.BookFormat)
	}

	if c.MaxConcurrentSections <= 0 {
		return fmt.Errorf("config error: MAX_CONCURRENT_SECTIONS must be positive")
	}
	if c.LLMMaxRetries < 0 {
		return fmt.Errorf("config error: LLM_MAX_RETRIES must be non-negative")
	}

	return nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// envInt parses an integer setting, keeping the fallback and recording
// the malformed value when the variable does not parse.
func (c *Config) envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		c.envErrors = append(c.envErrors, fmt.Sprintf("%s: invalid integer %q", key, value))
		return fallback
	}
	return parsed
}
