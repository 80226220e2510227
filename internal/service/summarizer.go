package service

import (
	"context"

	"smilescript/backend/internal/config"
	"smilescript/backend/internal/logger"
	"smilescript/backend/internal/service/ai"
)

// SummarySource identifies which strategy produced a summary.
type SummarySource string

const (
	SourceProvider SummarySource = "provider"
	SourceFallback SummarySource = "fallback"
)

// Summarizer turns a transcript into a summary. Given a non-empty
// transcript it always succeeds: provider failures are absorbed by falling
// back to the deterministic local digest, and are never visible to callers.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, SummarySource)
}

// SummaryClient is the provider-backed strategy; *ai.Client implements it.
type SummaryClient interface {
	Provider() string
	Summarize(ctx context.Context, transcript string) (string, error)
}

type summarizer struct {
	client SummaryClient // nil when the provider is disabled
}

// NewSummarizerWithClient builds a summarizer around an existing provider
// client. A nil client disables the provider path entirely.
func NewSummarizerWithClient(client SummaryClient) Summarizer {
	return &summarizer{client: client}
}

// NewSummarizer builds a summarizer from immutable startup configuration.
// When cfg.Enabled is false, or the provider cannot be constructed, the
// provider is never contacted and every call uses the fallback.
func NewSummarizer(cfg config.AI, rateLimiter *ai.RateLimiter) Summarizer {
	if !cfg.Enabled {
		return &summarizer{}
	}

	provider, err := ai.NewProvider(ai.Config{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Model:    cfg.Model,
	})
	if err != nil {
		logger.Warn("ai provider create failed, using local summarization",
			"module", "service", "action", "create", "resource", "ai", "result", "failed",
			"provider", cfg.Provider, "model", cfg.Model, "error", err)
		return &summarizer{}
	}

	logger.Info("ai provider configured",
		"module", "service", "action", "create", "resource", "ai", "result", "ok",
		"provider", cfg.Provider, "model", cfg.Model, "timeout", cfg.Timeout)
	return &summarizer{
		client: ai.NewClient(provider, cfg.Timeout, rateLimiter),
	}
}

func (s *summarizer) Summarize(ctx context.Context, transcript string) (string, SummarySource) {
	if s.client == nil {
		return ai.FallbackSummary(transcript), SourceFallback
	}

	summary, err := s.client.Summarize(ctx, transcript)
	if err != nil {
		logger.Warn("ai summarize failed, falling back",
			"module", "service", "action", "fetch", "resource", "ai", "result", "failed",
			"provider", s.client.Provider(), "error", err)
		return ai.FallbackSummary(transcript), SourceFallback
	}

	logger.Debug("ai summarize ok",
		"module", "service", "action", "fetch", "resource", "ai", "result", "ok",
		"provider", s.client.Provider())
	return summary, SourceProvider
}
