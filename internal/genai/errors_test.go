package genai

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected ErrorAction
	}{
		{"nil", nil, ActionFail},
		{"context canceled", context.Canceled, ActionFail},
		{"deadline exceeded", context.DeadlineExceeded, ActionRetry},
		{"quota exhausted", errors.New("quota exceeded for this billing period"), ActionFallback},
		{"rate limited", errors.New("429: too many requests"), ActionRetry},
		{"server error", errors.New("503 service unavailable"), ActionRetry},
		{"connection failure", errors.New("connection refused"), ActionRetry},
		{"bad request", errors.New("400 bad request"), ActionFail},
		{"invalid api key", errors.New("401 unauthorized: invalid api key"), ActionFail},
		{"model not found", errors.New("404 not found"), ActionFail},
		{"unknown defaults to retry", errors.New("something odd"), ActionRetry},
		{
			name:     "api error retryable status",
			err:      &APIError{Err: errors.New("overloaded"), StatusCode: 529},
			expected: ActionRetry,
		},
		{
			name:     "api error permanent status",
			err:      &APIError{Err: errors.New("bad key"), StatusCode: 401},
			expected: ActionFail,
		},
		{
			name:     "wrapped api error",
			err:      fmt.Errorf("generate: %w", &APIError{Err: errors.New("nope"), StatusCode: 403}),
			expected: ActionFail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ClassifyError(tt.err))
		})
	}
}

func TestAPIErrorUnwrap(t *testing.T) {
	t.Parallel()

	inner := errors.New("boom")
	err := &APIError{Err: inner, StatusCode: 500}

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "status: 500")
}
