// Package genai produces the natural-language answer from a question and
// an assembled fact context, with retry and cross-provider fallback.
package genai

import (
	"context"
	"time"
)

// Provider identifies an LLM backend.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// Generator turns a question plus fact context into an answer. Treated
// as a pure function by the pipeline; all state lives in the client.
type Generator interface {
	// Generate returns the answer text for a question constrained to
	// the given fact context.
	Generate(ctx context.Context, question, factContext string) (string, error)

	// Provider returns the backend identifier for logs and metrics.
	Provider() Provider

	// IsEnabled reports whether the backend is configured.
	IsEnabled() bool

	// Close releases client resources.
	Close() error
}

// RetryConfig defines retry behavior for LLM API calls.
// Uses Full Jitter exponential backoff.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial).
	MaxAttempts int

	// InitialDelay is the base delay before first retry.
	InitialDelay time.Duration

	// MaxDelay is the maximum delay between retries.
	MaxDelay time.Duration
}

// DefaultRetryConfig keeps the retry window small so a slow provider
// still leaves room for the fallback within the request budget.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  2,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     3 * time.Second,
	}
}
