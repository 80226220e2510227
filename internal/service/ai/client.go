package ai

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Client wraps a Provider with a bounded request timeout and global rate
// limiting. It never retries: retry policy belongs to the caller.
type Client struct {
	provider    Provider
	timeout     time.Duration
	rateLimiter *RateLimiter
}

// NewClient creates a client around the given provider. A zero timeout
// falls back to 30 seconds.
func NewClient(provider Provider, timeout time.Duration, rateLimiter *RateLimiter) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		provider:    provider,
		timeout:     timeout,
		rateLimiter: rateLimiter,
	}
}

// Provider returns the name of the wrapped provider.
func (c *Client) Provider() string {
	return c.provider.Name()
}

// Summarize requests a summary of the transcript. Any failure, including
// exceeding the request timeout, is returned as a *ProviderError.
func (c *Client) Summarize(ctx context.Context, transcript string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", &ProviderError{Provider: c.provider.Name(), Err: err}
		}
	}

	summary, err := c.provider.Complete(ctx, GetSummarizePrompt(), transcript)
	if err != nil {
		// Surface the timeout cause rather than the SDK's wrapping of it.
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return "", &ProviderError{Provider: c.provider.Name(), Err: err}
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", &ProviderError{Provider: c.provider.Name(), Err: errors.New("empty completion")}
	}
	return summary, nil
}
