package llm

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const backoffBase = 500 * time.Millisecond

// retryClient wraps a provider with the cross-cutting call policy:
// outbound pacing, per-call timeout, and bounded retries with exponential
// backoff. Empty responses count as failures. Cancellation of the parent
// context stops the retry loop immediately.
type retryClient struct {
	inner      Client
	timeout    time.Duration
	maxRetries int
	limiter    *rate.Limiter
}

func withRetry(inner Client, config *Config) Client {
	var limiter *rate.Limiter
	if config.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1)
	}
	return &retryClient{
		inner:      inner,
		timeout:    config.Timeout,
		maxRetries: config.MaxRetries,
		limiter:    limiter,
	}
}

// GenerateContent generates free-form text for a prompt
func (c *retryClient) GenerateContent(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	return c.do(ctx, func(callCtx context.Context) (string, error) {
		return c.inner.GenerateContent(callCtx, prompt, opts)
	})
}

// GenerateJSON generates a JSON document for a prompt
func (c *retryClient) GenerateJSON(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	return c.do(ctx, func(callCtx context.Context) (string, error) {
		return c.inner.GenerateJSON(callCtx, prompt, opts)
	})
}

// Close releases resources held by the client
func (c *retryClient) Close() error {
	return c.inner.Close()
}

func (c *retryClient) do(ctx context.Context, call func(context.Context) (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, backoffDelay(attempt)); err != nil {
				return "", err
			}
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return "", err
			}
		}

		callCtx := ctx
		cancel := context.CancelFunc(func() {})
		if c.timeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		}

		text, err := call(callCtx)
		cancel()

		if err == nil && strings.TrimSpace(text) == "" {
			err = fmt.Errorf("empty response from provider")
		}
		if err == nil {
			return text, nil
		}
		lastErr = err

		// The overall request is gone; retrying would waste paid calls.
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	return "", fmt.Errorf("generation failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// backoffDelay returns the exponential backoff delay before the given
// retry attempt, with jitter to avoid thundering herds across concurrent
// section tasks.
func backoffDelay(attempt int) time.Duration {
	delay := backoffBase << (attempt - 1)
	jitter := time.Duration(rand.Int63n(int64(backoffBase)))
	return delay + jitter
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
