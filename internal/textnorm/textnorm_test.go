package textnorm

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"lowercase passthrough", "sdm", "sdm"},
		{"uppercase latin", "SDM Course", "sdm course"},
		{"mongolian cyrillic", "Дижитал Маркетинг", "дижитал маркетинг"},
		{"mixed scripts", "SDM үнэ хэд вэ?", "sdm үнэ хэд вэ"},
		{"whitespace collapse", "  сургалт   хэзээ\tэхлэх  ", "сургалт хэзээ эхлэх"},
		{"punctuation stripped", "үнэ, төлбөр!!! (хөнгөлөлт)", "үнэ төлбөр хөнгөлөлт"},
		{"digits kept", "9 сарын 15", "9 сарын 15"},
		{"leading punctuation", "...сайн уу", "сайн уу"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"SDM үнэ хэд вэ?",
		"  Дижитал   Маркетинг!  ",
		"graphic design сургалт",
		"",
	}

	for _, s := range inputs {
		once := Normalize(s)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", s, once, twice)
		}
	}
}

func TestSplitKeywords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "sdm", []string{"sdm"}},
		{"multiple", "sdm|дижитал маркетинг", []string{"sdm", "дижитал маркетинг"}},
		{"normalizes tokens", " SDM | Дижитал Маркетинг ", []string{"sdm", "дижитал маркетинг"}},
		{"drops single-rune tokens", "a|sdm|б", []string{"sdm"}},
		{"drops empty segments", "sdm||маркетинг", []string{"sdm", "маркетинг"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitKeywords(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitKeywords(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
