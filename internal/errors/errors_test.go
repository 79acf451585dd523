package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSheetError(t *testing.T) {
	base := errors.New("connection refused")

	tests := []struct {
		name   string
		err    *SheetError
		expect string
	}{
		{
			name:   "with status code",
			err:    NewSheetError("courses", 503, base),
			expect: "sheet error (sheet=courses, status=503): connection refused",
		},
		{
			name:   "without status code",
			err:    NewSheetError("faq", 0, base),
			expect: "sheet error (sheet=faq): connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expect {
				t.Errorf("Error() = %q, want %q", got, tt.expect)
			}
			if !errors.Is(tt.err, base) {
				t.Error("SheetError should unwrap to the underlying error")
			}
		})
	}
}

func TestSheetErrorWrapping(t *testing.T) {
	err := fmt.Errorf("refresh courses: %w", NewSheetError("courses", 429, ErrRateLimitExceeded))

	var sheetErr *SheetError
	if !errors.As(err, &sheetErr) {
		t.Fatal("errors.As should find SheetError in chain")
	}
	if sheetErr.Sheet != "courses" {
		t.Errorf("Sheet = %q, want %q", sheetErr.Sheet, "courses")
	}
	if !errors.Is(err, ErrRateLimitExceeded) {
		t.Error("wrapped chain should match ErrRateLimitExceeded")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("message", "must not be empty")
	want := "validation failed on message: must not be empty"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
