// Package match scores incoming messages against course and FAQ records
// using their pipe-separated keyword lists.
package match

import (
	"strings"

	"github.com/wayacademy/manychat-bot-go/internal/config"
	"github.com/wayacademy/manychat-bot-go/internal/record"
	"github.com/wayacademy/manychat-bot-go/internal/textnorm"
)

// Match is a scored record.
type Match struct {
	Record record.Record
	Score  int
}

// Score computes the keyword score of a record against a normalized
// message.
//
// Each keyword contributes independently:
//   - a multi-word keyword awards its word count when it appears as a
//     substring of the message
//   - a single-word keyword awards 1 when it appears as a whole word
//
// Course records additionally earn a bonus when the course name itself
// appears in the message.
func Score(normalized string, r *record.Record) int {
	if normalized == "" {
		return 0
	}

	words := strings.Fields(normalized)
	score := 0

	for _, kw := range textnorm.SplitKeywords(r.KeywordField()) {
		kwWords := strings.Fields(kw)
		if len(kwWords) > 1 {
			if strings.Contains(normalized, kw) {
				score += len(kwWords)
			}
			continue
		}
		if containsWord(words, kw) {
			score++
		}
	}

	if r.Kind == record.KindCourse {
		name := textnorm.Normalize(r.CourseName)
		if name != "" && strings.Contains(normalized, name) {
			score += config.CourseNameBonus
		}
	}

	return score
}

func containsWord(words []string, w string) bool {
	for _, word := range words {
		if word == w {
			return true
		}
	}
	return false
}

// Best returns the highest-scoring record at or above minScore. Ties are
// broken by ascending priority, then by position in the slice.
func Best(normalized string, records []record.Record, minScore int) (Match, bool) {
	best := Match{}
	found := false

	for i := range records {
		score := Score(normalized, &records[i])
		if score < minScore {
			continue
		}
		if !found || better(score, records[i].Priority, best) {
			best = Match{Record: records[i], Score: score}
			found = true
		}
	}
	return best, found
}

func better(score, priority int, current Match) bool {
	if score != current.Score {
		return score > current.Score
	}
	return priority < current.Record.Priority
}

// Select picks the single best match across both datasets. A score tie
// between a course and an FAQ is broken by ascending priority; a full tie
// goes to the course.
func Select(message string, courses, faqs []record.Record) (Match, bool) {
	normalized := textnorm.Normalize(message)

	course, courseOK := Best(normalized, courses, config.CourseMinScore)
	faq, faqOK := Best(normalized, faqs, config.FAQMinScore)

	switch {
	case courseOK && faqOK:
		if faq.Score > course.Score {
			return faq, true
		}
		if faq.Score == course.Score && faq.Record.Priority < course.Record.Priority {
			return faq, true
		}
		return course, true
	case courseOK:
		return course, true
	case faqOK:
		return faq, true
	default:
		return Match{}, false
	}
}

// CourseNames returns the normalized names of all courses, used by the
// intent gate to detect whether a price question names a course.
func CourseNames(courses []record.Record) []string {
	names := make([]string, 0, len(courses))
	for i := range courses {
		if n := textnorm.Normalize(courses[i].CourseName); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// CourseHints returns every normalized token that identifies a course:
// names, keywords and IDs. Consumed by the intent gate.
func CourseHints(courses []record.Record) []string {
	seen := make(map[string]struct{})
	hints := make([]string, 0, len(courses)*3)

	add := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		hints = append(hints, s)
	}

	for i := range courses {
		c := &courses[i]
		add(textnorm.Normalize(c.CourseName))
		for _, kw := range textnorm.SplitKeywords(c.Keywords) {
			add(kw)
		}
		add(textnorm.Normalize(c.CourseID))
	}
	return hints
}
