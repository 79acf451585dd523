// Package record defines the typed dataset records (courses and FAQs) built
// from raw spreadsheet rows. A record keeps the columns the matcher and fact
// assembler care about as named fields, and everything else in an Extra map
// for forward compatibility with new sheet columns.
package record

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which dataset a record belongs to.
type Kind string

const (
	// KindCourse is a course record from the "courses" sheet.
	KindCourse Kind = "course"
	// KindFAQ is an FAQ record from the "faq" sheet.
	KindFAQ Kind = "faq"
)

// DefaultPriority is used when the priority column is absent or unparseable.
// Lower priority wins ties, so the default sorts last.
const DefaultPriority = 999

// Record is one active row of structured data used as a matching candidate.
type Record struct {
	Kind Kind `json:"kind"`

	// Course fields
	CourseID           string `json:"course_id,omitempty"`
	CourseName         string `json:"course_name,omitempty"`
	Keywords           string `json:"keywords,omitempty"` // pipe-delimited alternatives
	Description        string `json:"description,omitempty"`
	Teacher            string `json:"teacher,omitempty"`
	Duration           string `json:"duration,omitempty"`
	Schedule1          string `json:"schedule_1,omitempty"`
	Schedule2          string `json:"schedule_2,omitempty"`
	PriceFull          string `json:"price_full,omitempty"`
	PriceDiscount      string `json:"price_discount,omitempty"`
	PriceDiscountUntil string `json:"price_discount_until,omitempty"`
	PaymentOptions     string `json:"payment_options,omitempty"`
	ApplicationLink    string `json:"application_link,omitempty"`

	// FAQ fields
	FAQID     string `json:"faq_id,omitempty"`
	QKeywords string `json:"q_keywords,omitempty"` // pipe-delimited
	Answer    string `json:"answer,omitempty"`

	// Shared fields
	Priority int `json:"priority"`

	// Extra holds columns not mapped to a named field.
	Extra map[string]string `json:"extra,omitempty"`
}

// KeywordField returns the raw pipe-delimited keyword column for this kind.
func (r *Record) KeywordField() string {
	if r.Kind == KindFAQ {
		return r.QKeywords
	}
	return r.Keywords
}

// ID returns the dataset-specific identifier.
func (r *Record) ID() string {
	if r.Kind == KindFAQ {
		return r.FAQID
	}
	return r.CourseID
}

// FromRows converts raw sheet rows (first row is the header) into records of
// the given kind. Rows shorter than the header are padded with empty cells;
// rows longer than the header have their trailing cells dropped. Records whose
// is_active column is falsy are filtered out.
func FromRows(kind Kind, rows [][]string) ([]Record, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows: missing header")
	}

	header := rows[0]
	records := make([]Record, 0, len(rows)-1)

	for _, row := range rows[1:] {
		cols := make(map[string]string, len(header))
		for i, name := range header {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if i < len(row) {
				cols[name] = strings.TrimSpace(row[i])
			} else {
				cols[name] = ""
			}
		}

		if !IsActive(cols["is_active"]) {
			continue
		}

		records = append(records, fromColumns(kind, cols))
	}

	return records, nil
}

// IsActive reports whether an is_active cell marks the row as visible.
// Empty means active: rows without the column default to visible.
func IsActive(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "true", "1", "yes":
		return true
	default:
		return false
	}
}

// ParsePriority parses a numeric priority cell, returning DefaultPriority
// when absent or unparseable. The sheet sometimes holds "1.0", so float
// syntax is accepted.
func ParsePriority(value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultPriority
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return int(f)
	}
	return DefaultPriority
}

// knownColumns lists every column mapped to a named Record field.
var knownColumns = map[string]bool{
	"course_id": true, "course_name": true, "keywords": true,
	"description": true, "teacher": true, "duration": true,
	"schedule_1": true, "schedule_2": true,
	"price_full": true, "price_discount": true, "price_discount_until": true,
	"payment_options": true, "application_link": true,
	"faq_id": true, "q_keywords": true, "answer": true,
	"priority": true, "is_active": true,
}

func fromColumns(kind Kind, cols map[string]string) Record {
	r := Record{
		Kind:               kind,
		CourseID:           cols["course_id"],
		CourseName:         cols["course_name"],
		Keywords:           cols["keywords"],
		Description:        cols["description"],
		Teacher:            cols["teacher"],
		Duration:           cols["duration"],
		Schedule1:          cols["schedule_1"],
		Schedule2:          cols["schedule_2"],
		PriceFull:          cols["price_full"],
		PriceDiscount:      cols["price_discount"],
		PriceDiscountUntil: cols["price_discount_until"],
		PaymentOptions:     cols["payment_options"],
		ApplicationLink:    cols["application_link"],
		FAQID:              cols["faq_id"],
		QKeywords:          cols["q_keywords"],
		Answer:             cols["answer"],
		Priority:           ParsePriority(cols["priority"]),
	}

	for name, value := range cols {
		if knownColumns[name] || value == "" {
			continue
		}
		if r.Extra == nil {
			r.Extra = make(map[string]string)
		}
		r.Extra[name] = value
	}

	return r
}
