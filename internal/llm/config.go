// Package llm provides centralized LLM configuration and client
// abstractions. The generative-text capability is a black box: given a
// prompt, return text. Providers are swappable behind the Client
// interface.
package llm

import "time"

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderReplicate runs Claude through the Replicate predictions API
	ProviderReplicate Provider = "replicate"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider

	// Replicate
	ReplicateToken string
	ReplicateModel string // "owner/name", e.g. "anthropic/claude-3.5-sonnet"

	// Gemini
	GeminiAPIKey string
	GeminiModel  string

	// Cross-provider call policy
	Timeout           time.Duration // per generation call
	MaxRetries        int           // bounded retries on transient failure
	RequestsPerSecond float64       // outbound pacing toward the provider
}

// DefaultConfig returns the default configuration (Claude via Replicate)
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderReplicate,
		ReplicateModel:    "anthropic/claude-3.5-sonnet",
		GeminiModel:       "gemini-2.5-flash",
		Timeout:           120 * time.Second,
		MaxRetries:        3,
		RequestsPerSecond: 1,
	}
}
