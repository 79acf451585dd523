// Package config: limits applied to matching and fact assembly.
package config

// Matching parameters.
//
// Scores are raw token-award sums (a multi-word keyword awards its word
// count, a single-word keyword awards 1). They are deliberately NOT
// normalized by keyword count: thresholds below are in the same units for
// both datasets, and a record with zero score is never selected regardless
// of threshold.
const (
	// CourseMinScore is the minimum raw score for a course match.
	CourseMinScore = 1

	// FAQMinScore is the minimum raw score for an FAQ match.
	FAQMinScore = 1

	// CourseNameBonus is added when the full normalized course name appears
	// as a substring of the message, so explicit name mentions beat partial
	// keyword overlap.
	CourseNameBonus = 10
)

// Fact truncation limits, in runes. Free-text fields copied into the fact
// payload are cut at these lengths with a truncation marker, bounding both
// payload size and generation cost.
const (
	// MaxDescriptionRunes bounds a course description in the fact payload.
	MaxDescriptionRunes = 200

	// MaxAnswerRunes bounds an FAQ answer in the fact payload.
	MaxAnswerRunes = 300

	// MaxFactFieldRunes bounds any other free-text fact field.
	MaxFactFieldRunes = 300
)

// Webhook limits.
const (
	// MaxInboundMessageRunes bounds the inbound message before gating;
	// longer messages are truncated, never rejected.
	MaxInboundMessageRunes = 2000

	// MaxWebhookBodyBytes bounds the inbound request body.
	MaxWebhookBodyBytes = 64 * 1024
)
