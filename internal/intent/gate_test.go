package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var hints = []string{"sdm", "дижитал маркетинг", "excel"}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		message  string
		expected Decision
	}{
		{
			name:     "empty message",
			message:  "",
			expected: Decision{Kind: KindShortCircuit, Reply: ReplyEmpty, Reason: "empty"},
		},
		{
			name:     "whitespace only",
			message:  "   \n\t",
			expected: Decision{Kind: KindShortCircuit, Reply: ReplyEmpty, Reason: "empty"},
		},
		{
			name:     "url short circuits regardless of other content",
			message:  "SDM үнэ https://example.com",
			expected: Decision{Kind: KindShortCircuit, Reply: ReplyURL, Reason: "url"},
		},
		{
			name:     "www url",
			message:  "www.example.com гэж юу вэ",
			expected: Decision{Kind: KindShortCircuit, Reply: ReplyURL, Reason: "url"},
		},
		{
			name:    "price without course hint asks to clarify",
			message: "Үнэ хэд вэ?",
			expected: Decision{
				Kind: KindClarify, Reply: ReplyPrice, Escalate: true, Reason: "price_no_course",
			},
		},
		{
			name:     "price with course hint proceeds escalated",
			message:  "SDM үнэ хэд вэ?",
			expected: Decision{Kind: KindProceed, Escalate: true, Reason: "proceed"},
		},
		{
			name:     "multi word course hint",
			message:  "Дижитал маркетинг төлбөр",
			expected: Decision{Kind: KindProceed, Escalate: true, Reason: "proceed"},
		},
		{
			name:     "plain question proceeds",
			message:  "Excel сургалт хэзээ эхлэх вэ?",
			expected: Decision{Kind: KindProceed, Reason: "proceed"},
		},
		{
			name:    "urgency sets urgent and escalates",
			message: "Яаралтай хариу хэрэгтэй байна",
			expected: Decision{
				Kind: KindProceed, Escalate: true, Urgent: true, Reason: "proceed",
			},
		},
		{
			name:    "urgent price question without course still clarifies",
			message: "Яаралтай, төлбөр хэд вэ",
			expected: Decision{
				Kind: KindClarify, Reply: ReplyPrice, Escalate: true, Urgent: true,
				Reason: "price_no_course",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Evaluate(tt.message, hints))
		})
	}
}

func TestEvaluateStaticHintsWithoutSnapshot(t *testing.T) {
	t.Parallel()

	// Course snapshot unavailable, but the message names a course the
	// static vocabulary knows.
	d := Evaluate("Маркетинг үнэ хэд вэ", nil)
	assert.Equal(t, KindProceed, d.Kind)
	assert.True(t, d.Escalate)
}

func TestEvaluateEnglishPriceVocabulary(t *testing.T) {
	t.Parallel()

	d := Evaluate("how much is the price", hints)
	assert.Equal(t, KindClarify, d.Kind)
	assert.True(t, d.Escalate)
}
