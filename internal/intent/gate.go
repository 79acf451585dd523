// Package intent implements the pre-routing gate: rules that answer a
// message directly or redirect it before any record matching runs.
package intent

import (
	"strings"

	"github.com/wayacademy/manychat-bot-go/internal/textnorm"
)

// Kind classifies the gate outcome.
type Kind string

const (
	// KindProceed hands the message on to record matching.
	KindProceed Kind = "proceed"
	// KindShortCircuit answers with a fixed reply, no matching.
	KindShortCircuit Kind = "short_circuit"
	// KindClarify asks which course is meant, no matching.
	KindClarify Kind = "clarify"
)

// Fixed gate replies.
const (
	ReplyEmpty = "Сайн байна уу! Та сонирхож буй сургалтынхаа нэрийг бичээрэй. Жишээ нь: Дижитал маркетинг, Excel гэх мэт."
	ReplyURL   = "Уучлаарай, линк хүлээн авах боломжгүй байна. Та асуултаа текстээр бичнэ үү."
	ReplyPrice = "Аль сургалтын үнийн мэдээлэл сонирхож байна вэ? Сургалтынхаа нэрийг бичээрэй."
)

// Decision is the gate outcome for one message. Constructed fresh per
// inbound message, never persisted.
type Decision struct {
	Kind     Kind
	Reply    string // set for short-circuit and clarify
	Escalate bool   // append contact/handoff info to the answer
	Urgent   bool   // logged as a priority signal
	Reason   string // metric label for the decision
}

// PreScreen applies the rules that need no dataset access: empty
// messages and messages carrying a URL. Returns ok=true when the
// message is answered directly and matching must be skipped.
func PreScreen(message string) (Decision, bool) {
	if strings.TrimSpace(message) == "" {
		return Decision{Kind: KindShortCircuit, Reply: ReplyEmpty, Reason: "empty"}, true
	}
	// URL detection runs on the raw message, normalization strips "://"
	if matches(CategoryURL, strings.ToLower(message)) {
		return Decision{Kind: KindShortCircuit, Reply: ReplyURL, Reason: "url"}, true
	}
	return Decision{}, false
}

// Evaluate runs the gate rules in order:
//
//  1. empty message: fixed prompt reply
//  2. message containing a URL: fixed "use text" reply
//  3. price question naming no known course: ask which course
//  4. otherwise proceed; price vocabulary sets escalate, urgency
//     vocabulary sets urgent (which also escalates)
//
// courseHints are normalized tokens that identify a course (names,
// keywords, IDs).
func Evaluate(message string, courseHints []string) Decision {
	if d, ok := PreScreen(message); ok {
		return d
	}

	normalized := textnorm.Normalize(message)
	price := matches(CategoryPrice, normalized)
	urgent := matches(CategoryUrgency, normalized)

	if price && !hasCourseHint(normalized, courseHints) {
		return Decision{
			Kind:     KindClarify,
			Reply:    ReplyPrice,
			Escalate: true,
			Urgent:   urgent,
			Reason:   "price_no_course",
		}
	}

	return Decision{
		Kind:     KindProceed,
		Escalate: price || urgent,
		Urgent:   urgent,
		Reason:   "proceed",
	}
}

func hasCourseHint(normalized string, hints []string) bool {
	for _, h := range staticCourseHints {
		if strings.Contains(normalized, h) {
			return true
		}
	}
	for _, h := range hints {
		if h != "" && strings.Contains(normalized, h) {
			return true
		}
	}
	return false
}
