package record

import (
	"testing"
)

func courseRows() [][]string {
	return [][]string{
		{"course_id", "course_name", "keywords", "price_full", "priority", "is_active", "campus"},
		{"SDM01", "Дижитал Маркетинг", "sdm|дижитал маркетинг", "1500000", "1", "true", "UB"},
		{"GD01", "График Дизайн", "график|design", "1200000", "2", "TRUE", ""},
		{"OLD01", "Хуучин Сургалт", "хуучин", "900000", "3", "false", ""},
		{"NEW01", "Шинэ Сургалт", "шинэ", "", "", "", ""},
	}
}

func TestFromRowsActiveFilter(t *testing.T) {
	records, err := FromRows(KindCourse, courseRows())
	if err != nil {
		t.Fatalf("FromRows() failed: %v", err)
	}

	// OLD01 is inactive, the rest are visible (empty is_active counts as active).
	if len(records) != 3 {
		t.Fatalf("expected 3 active records, got %d", len(records))
	}
	for _, r := range records {
		if r.CourseID == "OLD01" {
			t.Error("inactive record OLD01 should be filtered out")
		}
	}
}

func TestFromRowsFieldMapping(t *testing.T) {
	records, err := FromRows(KindCourse, courseRows())
	if err != nil {
		t.Fatalf("FromRows() failed: %v", err)
	}

	sdm := records[0]
	if sdm.CourseID != "SDM01" {
		t.Errorf("CourseID = %q, want SDM01", sdm.CourseID)
	}
	if sdm.CourseName != "Дижитал Маркетинг" {
		t.Errorf("CourseName = %q", sdm.CourseName)
	}
	if sdm.Priority != 1 {
		t.Errorf("Priority = %d, want 1", sdm.Priority)
	}
	if sdm.Extra["campus"] != "UB" {
		t.Errorf("Extra[campus] = %q, want UB", sdm.Extra["campus"])
	}
	if sdm.Kind != KindCourse {
		t.Errorf("Kind = %q, want %q", sdm.Kind, KindCourse)
	}
}

func TestFromRowsShortAndLongRows(t *testing.T) {
	rows := [][]string{
		{"faq_id", "q_keywords", "answer", "priority", "is_active"},
		{"F1", "байршил|хаяг"}, // short row: missing cells become empty
		{"F2", "цаг", "09:00-18:00", "2", "yes", "surplus-cell"},
	}

	records, err := FromRows(KindFAQ, rows)
	if err != nil {
		t.Fatalf("FromRows() failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	f1 := records[0]
	if f1.Answer != "" {
		t.Errorf("short row Answer = %q, want empty", f1.Answer)
	}
	if f1.Priority != DefaultPriority {
		t.Errorf("short row Priority = %d, want %d", f1.Priority, DefaultPriority)
	}

	f2 := records[1]
	if f2.Answer != "09:00-18:00" {
		t.Errorf("Answer = %q", f2.Answer)
	}
}

func TestFromRowsNoHeader(t *testing.T) {
	if _, err := FromRows(KindCourse, nil); err == nil {
		t.Error("FromRows(nil) should fail: missing header")
	}
}

func TestIsActive(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"true", true},
		{"True", true},
		{" TRUE ", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"0", false},
		{"no", false},
		{"inactive", false},
	}

	for _, tt := range tests {
		if got := IsActive(tt.value); got != tt.want {
			t.Errorf("IsActive(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"", DefaultPriority},
		{"1", 1},
		{"2.0", 2},
		{" 5 ", 5},
		{"abc", DefaultPriority},
	}

	for _, tt := range tests {
		if got := ParsePriority(tt.value); got != tt.want {
			t.Errorf("ParsePriority(%q) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestKeywordField(t *testing.T) {
	course := &Record{Kind: KindCourse, Keywords: "sdm|маркетинг"}
	faq := &Record{Kind: KindFAQ, QKeywords: "хаяг|байршил"}

	if course.KeywordField() != "sdm|маркетинг" {
		t.Errorf("course KeywordField = %q", course.KeywordField())
	}
	if faq.KeywordField() != "хаяг|байршил" {
		t.Errorf("faq KeywordField = %q", faq.KeywordField())
	}
}
