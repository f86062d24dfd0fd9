package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Provider:              "replicate",
		ReplicateToken:        "r8_test",
		ReplicateModel:        DefaultReplicateModel,
		LLMTimeout:            120 * time.Second,
		LLMMaxRetries:         3,
		MaxConcurrentSections: 4,
		B2KeyID:               "key-id",
		B2AppKey:              "app-key",
		B2Bucket:              "orastria",
		B2Endpoint:            DefaultB2Endpoint,
		B2Region:              DefaultB2Region,
		BookFormat:            "pdf",
		Port:                  8080,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantError string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{
			name:      "missing replicate token",
			mutate:    func(c *Config) { c.ReplicateToken = "" },
			wantError: "REPLICATE_API_KEY",
		},
		{
			name: "gemini provider requires gemini key",
			mutate: func(c *Config) {
				c.Provider = "gemini"
				c.GeminiAPIKey = ""
			},
			wantError: "GEMINI_API_KEY",
		},
		{
			name: "gemini provider with key is valid",
			mutate: func(c *Config) {
				c.Provider = "gemini"
				c.GeminiAPIKey = "g-test"
				c.ReplicateToken = ""
			},
		},
		{
			name:      "unknown provider",
			mutate:    func(c *Config) { c.Provider = "oracle" },
			wantError: "LLM_PROVIDER",
		},
		{
			name:      "missing B2 key id",
			mutate:    func(c *Config) { c.B2KeyID = "" },
			wantError: "B2_KEY_ID",
		},
		{
			name:      "missing B2 app key",
			mutate:    func(c *Config) { c.B2AppKey = "" },
			wantError: "B2_APP_KEY",
		},
		{
			name:      "unknown book format",
			mutate:    func(c *Config) { c.BookFormat = "epub" },
			wantError: "BOOK_FORMAT",
		},
		{
			name:      "invalid port",
			mutate:    func(c *Config) { c.Port = -1 },
			wantError: "port",
		},
		{
			name:      "zero concurrency",
			mutate:    func(c *Config) { c.MaxConcurrentSections = 0 },
			wantError: "MAX_CONCURRENT_SECTIONS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}

func TestFromEnvDefaults(t *testing.T) {
	// Clear any ambient settings so defaults apply.
	for _, key := range []string{
		"LLM_PROVIDER", "REPLICATE_MODEL", "B2_BUCKET_NAME", "B2_BUCKET",
		"B2_ENDPOINT", "BOOK_FORMAT", "PORT", "MAX_CONCURRENT_SECTIONS",
	} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	assert.Equal(t, "replicate", cfg.Provider)
	assert.Equal(t, DefaultReplicateModel, cfg.ReplicateModel)
	assert.Equal(t, DefaultB2Bucket, cfg.B2Bucket)
	assert.Equal(t, DefaultB2Endpoint, cfg.B2Endpoint)
	assert.Equal(t, "pdf", cfg.BookFormat)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, 4, cfg.MaxConcurrentSections)
	assert.Equal(t, 120*time.Second, cfg.LLMTimeout)
}

func TestFromEnvOverridesAndAliases(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("B2_BUCKET_NAME", "")
	t.Setenv("B2_BUCKET", "legacy-bucket")
	t.Setenv("PORT", "9000")
	t.Setenv("LLM_TIMEOUT_SECONDS", "30")

	cfg := FromEnv()
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "legacy-bucket", cfg.B2Bucket, "B2_BUCKET alias honored")
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.LLMTimeout)
}

func TestMalformedIntEnvFailsValidation(t *testing.T) {
	t.Setenv("REPLICATE_API_KEY", "r8_test")
	t.Setenv("PORT", "eight-thousand")

	cfg := FromEnv()
	assert.Equal(t, DefaultPort, cfg.Port, "malformed value keeps the default")

	err := cfg.ValidateLocal()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
	assert.Contains(t, err.Error(), "eight-thousand")
}

func TestValidateLocal(t *testing.T) {
	cfg := validConfig()
	cfg.B2KeyID = ""
	cfg.B2AppKey = ""
	cfg.Port = 0

	assert.NoError(t, cfg.ValidateLocal(), "local runs do not need bucket credentials")
	assert.Error(t, cfg.Validate())
}
