package maintenance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/suma737/webharness/internal/config"
)

// TextGenerator abstracts the generation backend so tests can fake it.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator calls the Gemini API with retries and rate limiting.
type GeminiGenerator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewGeminiGenerator builds the Gemini-backed generator from configuration.
func NewGeminiGenerator(ctx context.Context, cfg config.AIConfig, logger *zap.Logger) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiGenerator{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.APITimeout,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerMinute/60.0), 1),
		logger:  logger.Named("suggester.gemini"),
	}, nil
}

// Generate sends the prompt to Gemini, retrying transient failures with
// exponential backoff.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter interrupted: %w", err)
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 2 * time.Minute
	b.MaxInterval = 30 * time.Second

	var out string
	operation := func() error {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		resp, err := g.client.Models.GenerateContent(callCtx, g.model, genai.Text(prompt), nil)
		if err != nil {
			g.logger.Warn("Gemini call failed; will retry", zap.Error(err))
			return err
		}
		out = resp.Text()
		if out == "" {
			return backoff.Permanent(fmt.Errorf("gemini returned an empty response"))
		}
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	return out, nil
}

// Suggester renders a maintenance report into a prompt and asks the
// generation backend for human-readable upkeep suggestions.
type Suggester struct {
	gen    TextGenerator
	logger *zap.Logger
}

// NewSuggester wraps a text generator.
func NewSuggester(gen TextGenerator, logger *zap.Logger) *Suggester {
	return &Suggester{
		gen:    gen,
		logger: logger.Named("suggester"),
	}
}

// Suggest produces maintenance advice for the given report.
func (s *Suggester) Suggest(ctx context.Context, report *Report) (string, error) {
	if report.TotalErrors == 0 {
		return "No persisted test failures; nothing to suggest.", nil
	}

	prompt := buildPrompt(report)
	s.logger.Debug("Requesting maintenance suggestions", zap.Int("prompt_len", len(prompt)))

	return s.gen.Generate(ctx, prompt)
}

func buildPrompt(report *Report) string {
	var sb strings.Builder
	sb.WriteString("You are assisting with maintenance of a browser end-to-end test suite.\n")
	sb.WriteString("Failure counts by category:\n")
	for cat, count := range report.Statistics {
		if count == 0 {
			continue
		}
		fmt.Fprintf(&sb, "- %s: %d\n", cat, count)
	}
	fmt.Fprintf(&sb, "Dominant category: %s. Recent failures in it:\n", report.MostFrequentCategory)
	for _, rec := range report.TopErrors {
		fmt.Fprintf(&sb, "- [%d] %s: %s (at %s)\n", rec.Code, rec.Title, rec.Message, rec.Location)
	}
	sb.WriteString("Suggest concrete test-suite maintenance actions, most impactful first.\n")
	return sb.String()
}
