// Package textnorm provides text normalization for keyword matching.
// Messages and keyword fields are normalized to a canonical lowercase form
// so matching is insensitive to case, punctuation, and whitespace runs.
// The target audience writes Mongolian Cyrillic mixed with Latin course
// names, so both alphabets survive normalization.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize returns the canonical matching form of s: NFC-composed,
// lowercased, punctuation stripped, whitespace runs collapsed to one space.
// Normalize is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	// Compose combining sequences first so ё/й written as base+mark
	// compare equal to their precomposed forms.
	s = norm.NFC.String(s)
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			space = true
		case isWordRune(r):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		default:
			// Punctuation and symbols are dropped entirely.
		}
	}
	return b.String()
}

// SplitKeywords splits a pipe-delimited keyword field into normalized,
// non-empty tokens. Tokens of a single rune are dropped: they match almost
// anything and only produce noise.
func SplitKeywords(pipeString string) []string {
	if pipeString == "" {
		return nil
	}

	parts := strings.Split(pipeString, "|")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		t := Normalize(p)
		if len([]rune(t)) > 1 {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// isWordRune reports whether r survives normalization: ASCII word
// characters, digits, and the Cyrillic block (covers Mongolian Өө/Үү).
func isWordRune(r rune) bool {
	if r == '_' {
		return true
	}
	if r >= '0' && r <= '9' {
		return true
	}
	if r >= 'a' && r <= 'z' {
		return true
	}
	return unicode.Is(unicode.Cyrillic, r)
}
