package llm

import (
	"context"
	"fmt"
)

// GenerateOptions carries per-call generation parameters.
type GenerateOptions struct {
	// MaxTokens caps the response length. Zero means provider default.
	MaxTokens int
}

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateContent generates free-form text for a prompt
	GenerateContent(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
	// GenerateJSON generates a JSON document for a prompt, with any
	// markdown fencing stripped
	GenerateJSON(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration. The returned
// client applies the configured per-call timeout, bounded retries with
// backoff, and outbound request pacing.
func NewClient(ctx context.Context, config *Config) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var (
		provider Client
		err      error
	)
	switch config.Provider {
	case ProviderGemini:
		provider, err = NewGeminiClient(ctx, config)
	case ProviderReplicate, "":
		provider, err = NewReplicateClient(config)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", config.Provider)
	}
	if err != nil {
		return nil, err
	}

	return withRetry(provider, config), nil
}
