package genai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wayacademy/manychat-bot-go/internal/logger"
	"github.com/wayacademy/manychat-bot-go/internal/metrics"
)

// FallbackGenerator wraps a primary and a fallback Generator with
// three-layer degradation:
//
//  1. retry with backoff on the same provider
//  2. provider fallback (primary to fallback)
//  3. error, handled by the pipeline's fixed apology reply
type FallbackGenerator struct {
	primary  Generator
	fallback Generator
	retry    RetryConfig
	log      *logger.Logger
	metrics  *metrics.Metrics
}

// NewFallbackGenerator creates a fallback-enabled generator. A nil
// fallback leaves only the retry layer on the primary.
func NewFallbackGenerator(primary, fallback Generator, retry RetryConfig, log *logger.Logger, m *metrics.Metrics) *FallbackGenerator {
	return &FallbackGenerator{
		primary:  primary,
		fallback: fallback,
		retry:    retry,
		log:      log.WithModule("genai"),
		metrics:  m,
	}
}

// Generate tries the primary generator with retry, then the fallback.
func (f *FallbackGenerator) Generate(ctx context.Context, question, factContext string) (string, error) {
	if f == nil || f.primary == nil {
		return "", errors.New("generator not configured")
	}

	answer, err := f.generateWithRetry(ctx, f.primary, question, factContext)
	if err == nil {
		return answer, nil
	}

	action := ClassifyError(err)
	f.log.WithError(err).WithFields(map[string]any{
		"provider": f.primary.Provider(),
		"action":   action.String(),
	}).Warn("primary generator failed")

	if action == ActionFail || f.fallback == nil {
		return "", err
	}

	answer, err = f.generateWithRetry(ctx, f.fallback, question, factContext)
	if err == nil {
		return answer, nil
	}

	f.log.WithError(err).WithField("provider", f.fallback.Provider()).Error("all generators failed")
	return "", fmt.Errorf("all providers failed: %w", err)
}

func (f *FallbackGenerator) generateWithRetry(ctx context.Context, g Generator, question, factContext string) (string, error) {
	var lastErr error
	provider := string(g.Provider())

	for attempt := 0; attempt < f.retry.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		start := time.Now()
		answer, err := g.Generate(ctx, question, factContext)
		if f.metrics != nil {
			status := "success"
			if err != nil {
				status = "error"
			}
			f.metrics.RecordGeneration(provider, status, time.Since(start).Seconds())
		}
		if err == nil {
			return answer, nil
		}

		lastErr = err
		if ClassifyError(err) != ActionRetry {
			return "", err
		}
		if attempt == f.retry.MaxAttempts-1 {
			break
		}

		backoff := CalculateBackoff(attempt+1, f.retry.InitialDelay, f.retry.MaxDelay)
		if !HasSufficientBudget(ctx, backoff) {
			return "", fmt.Errorf("timeout during retry: %w", lastErr)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
	}

	return "", lastErr
}

// Provider returns the primary provider identifier.
func (f *FallbackGenerator) Provider() Provider {
	if f == nil || f.primary == nil {
		return ""
	}
	return f.primary.Provider()
}

// IsEnabled reports whether at least one backend is configured.
func (f *FallbackGenerator) IsEnabled() bool {
	if f == nil {
		return false
	}
	return (f.primary != nil && f.primary.IsEnabled()) ||
		(f.fallback != nil && f.fallback.IsEnabled())
}

// Close closes both backends.
func (f *FallbackGenerator) Close() error {
	if f == nil {
		return nil
	}
	var errs []error
	if f.primary != nil {
		errs = append(errs, f.primary.Close())
	}
	if f.fallback != nil {
		errs = append(errs, f.fallback.Close())
	}
	return errors.Join(errs...)
}
