// Package config provides centralized timeout constants for the application.
//
// These values are tuned around two external constraints:
//   - ManyChat External Requests time out after ~30 seconds, so the full
//     answer pipeline must finish comfortably inside that window.
//   - The Google Sheets CSV export endpoint usually answers in under two
//     seconds but can stall when the document is being edited.
package config

import "time"

// Request pipeline timeouts
const (
	// RequestProcessing is the soft deadline for answering one webhook
	// request: gate, cache read, matching, and LLM generation together.
	// Exceeding it yields the fixed "system busy" reply instead of letting
	// ManyChat time the request out on its side.
	RequestProcessing = 25 * time.Second

	// GenerateTimeout bounds a single LLM generation call, leaving headroom
	// inside RequestProcessing for one retry on a transient failure.
	GenerateTimeout = 12 * time.Second
)

// HTTP server timeouts
const (
	// HTTPRead is the server read timeout. ManyChat payloads are small JSON.
	HTTPRead = 10 * time.Second

	// HTTPWrite must accommodate RequestProcessing plus serialization.
	HTTPWrite = 30 * time.Second

	// HTTPIdle is the keep-alive idle timeout.
	HTTPIdle = 120 * time.Second
)

// Sheet fetch timeouts
const (
	// SheetRequest is the timeout for a single CSV export request.
	SheetRequest = 15 * time.Second

	// SheetRetryInitial is the initial delay before retrying a failed fetch.
	// Backoff doubles per attempt: 1s -> 2s -> 4s.
	SheetRetryInitial = 1 * time.Second

	// SheetRetryMax caps the backoff delay between fetch retries.
	SheetRetryMax = 8 * time.Second
)
