package genai

import (
	"context"
	"errors"
	"strconv"
	"strings"
)

// ErrorAction defines the action to take based on error type.
type ErrorAction int

const (
	// ActionRetry indicates the request should be retried on the same provider.
	ActionRetry ErrorAction = iota
	// ActionFallback indicates the other provider should be tried.
	ActionFallback
	// ActionFail indicates the request should fail immediately.
	ActionFail
)

func (a ErrorAction) String() string {
	switch a {
	case ActionRetry:
		return "retry"
	case ActionFallback:
		return "fallback"
	case ActionFail:
		return "fail"
	default:
		return "unknown"
	}
}

// APIError wraps a provider error with the status code for classification.
type APIError struct {
	Err        error
	StatusCode int
	Provider   Provider
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return e.Err.Error() + " (status: " + strconv.Itoa(e.StatusCode) + ")"
	}
	return e.Err.Error()
}

func (e *APIError) Unwrap() error { return e.Err }

// ClassifyError determines what to do with a provider error:
// transient errors (429, 5xx, network, timeout) retry, quota exhaustion
// falls back to the other provider, permanent errors (400/401/403/404)
// fail immediately.
func ClassifyError(err error) ErrorAction {
	if err == nil {
		return ActionFail
	}
	if errors.Is(err, context.Canceled) {
		return ActionFail
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ActionRetry
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return classifyStatusCode(apiErr.StatusCode)
	}

	errStr := strings.ToLower(err.Error())

	if containsAny(errStr, "quota", "daily limit", "monthly limit", "billing") {
		return ActionFallback
	}
	if containsAny(errStr, "429", "rate limit", "too many requests", "resource_exhausted") {
		return ActionRetry
	}
	if containsAny(errStr, "500", "502", "503", "504", "unavailable", "overloaded",
		"internal server error", "bad gateway", "gateway timeout") {
		return ActionRetry
	}
	if containsAny(errStr, "timeout", "deadline", "connection") {
		return ActionRetry
	}
	if containsAny(errStr, "400", "invalid", "bad request", "malformed") {
		return ActionFail
	}
	if containsAny(errStr, "401", "unauthorized", "invalid api key") {
		return ActionFail
	}
	if containsAny(errStr, "403", "forbidden", "permission denied") {
		return ActionFail
	}
	if containsAny(errStr, "404", "not found") {
		return ActionFail
	}

	// Unknown errors are retried
	return ActionRetry
}

func classifyStatusCode(statusCode int) ErrorAction {
	switch {
	case statusCode == 429 || statusCode == 408 || statusCode == 409:
		return ActionRetry
	case statusCode >= 500 && statusCode < 600:
		return ActionRetry
	case statusCode >= 400 && statusCode < 500:
		return ActionFail
	default:
		return ActionRetry
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
