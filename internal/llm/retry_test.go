package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClient fails a fixed number of times before succeeding.
type stubClient struct {
	failures  int
	calls     int
	response  string
	callError error
}

func (s *stubClient) GenerateContent(_ context.Context, _ string, _ GenerateOptions) (string, error) {
	s.calls++
	if s.calls <= s.failures {
		if s.callError != nil {
			return "", s.callError
		}
		return "", errors.New("upstream unavailable")
	}
	return s.response, nil
}

func (s *stubClient) GenerateJSON(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	return s.GenerateContent(ctx, prompt, opts)
}

func (s *stubClient) Close() error { return nil }

func retryConfig(maxRetries int) *Config {
	return &Config{
		Timeout:    time.Second,
		MaxRetries: maxRetries,
		// No pacing in tests
		RequestsPerSecond: 0,
	}
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	stub := &stubClient{failures: 2, response: "generated text"}
	client := withRetry(stub, retryConfig(3))

	got, err := client.GenerateContent(context.Background(), "prompt", GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "generated text", got)
	assert.Equal(t, 3, stub.calls)
}

func TestRetryExhaustsBoundedAttempts(t *testing.T) {
	stub := &stubClient{failures: 100}
	client := withRetry(stub, retryConfig(2))

	_, err := client.GenerateContent(context.Background(), "prompt", GenerateOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, 3, stub.calls, "one initial call plus two retries")
}

func TestRetryTreatsEmptyResponseAsFailure(t *testing.T) {
	stub := &stubClient{failures: 0, response: "   "}
	client := withRetry(stub, retryConfig(1))

	_, err := client.GenerateContent(context.Background(), "prompt", GenerateOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
	assert.Equal(t, 2, stub.calls)
}

func TestRetryStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	stub := &stubClient{failures: 100, callError: context.Canceled}
	client := withRetry(stub, retryConfig(5))

	cancel()
	_, err := client.GenerateContent(ctx, "prompt", GenerateOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.LessOrEqual(t, stub.calls, 1, "no retries after cancellation")
}

func TestBackoffDelayGrows(t *testing.T) {
	first := backoffDelay(1)
	third := backoffDelay(3)
	assert.GreaterOrEqual(t, first, backoffBase)
	assert.GreaterOrEqual(t, third, 4*backoffBase)
}

func TestNewClientUnknownProvider(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{Provider: "oracle"})
	assert.Error(t, err)
}

func TestNewReplicateClientValidation(t *testing.T) {
	_, err := NewReplicateClient(&Config{ReplicateModel: "anthropic/claude-3.5-sonnet"})
	assert.Error(t, err, "missing token")

	_, err = NewReplicateClient(&Config{ReplicateToken: "r8_test", ReplicateModel: "claude"})
	assert.Error(t, err, "model must be owner/name")
}
