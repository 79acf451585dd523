// Package facts builds the bounded fact payload that constrains answer
// generation. Only allow-listed fields ever reach the payload, and every
// free-text field is truncated so prompt size stays bounded no matter
// what the worksheet contains.
package facts

import (
	"fmt"
	"strings"

	"github.com/wayacademy/manychat-bot-go/internal/config"
	"github.com/wayacademy/manychat-bot-go/internal/record"
)

// Static contact and location facts, appended to fallback payloads and
// to escalated answers.
const (
	Address   = "Galaxy Tower, 7 давхар, 705 тоот, Махатма Ганди гудамж"
	Phones    = "91117577, 99201187"
	Email     = "hello@wayconsulting.io"
	Highlight = "Салбарын шилдэг багш нар, бодит төсөл дээр практик, AI-г сургалтад нэвтрүүлсэн"
)

// Intent labels carried on the payload.
const (
	IntentCourse   = "course"
	IntentFAQ      = "faq"
	IntentFallback = "fallback"
)

// Payload is the assembled fact context for one answer.
type Payload struct {
	Intent   string
	Sections []string
}

// Truncate caps s at max runes, appending a marker when cut.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}

// ForCourse assembles the payload for a matched course. Missing fields
// are omitted, never fabricated.
func ForCourse(r *record.Record) Payload {
	var b strings.Builder
	b.WriteString("=== СУРГАЛТ ===\n")

	writeField(&b, "Нэр", r.CourseName)
	writeField(&b, "Тайлбар", Truncate(r.Description, config.MaxDescriptionRunes))
	writeField(&b, "Багш", r.Teacher)
	writeField(&b, "Хугацаа", r.Duration)
	writeField(&b, "Үнэ", r.PriceFull)
	if r.PriceDiscount != "" {
		until := ""
		if r.PriceDiscountUntil != "" {
			until = fmt.Sprintf(" (%s хүртэл)", r.PriceDiscountUntil)
		}
		writeField(&b, "Хямдралтай үнэ", r.PriceDiscount+until)
	}
	writeField(&b, "Төлбөрийн нөхцөл", r.PaymentOptions)
	writeField(&b, "Цагийн хуваарь", strings.TrimSpace(r.Schedule1+" "+r.Schedule2))
	writeField(&b, "Бүртгүүлэх линк", r.ApplicationLink)

	return Payload{Intent: IntentCourse, Sections: []string{b.String()}}
}

// ForFAQ assembles the payload for a matched FAQ entry.
func ForFAQ(r *record.Record) Payload {
	var b strings.Builder
	b.WriteString("=== ТҮГЭЭМЭЛ АСУУЛТ ===\n")
	writeField(&b, "Асуулт", Truncate(r.QKeywords, config.MaxFactFieldRunes))
	writeField(&b, "Хариулт", Truncate(r.Answer, config.MaxAnswerRunes))

	return Payload{Intent: IntentFAQ, Sections: []string{b.String()}}
}

// ForFallback lists every active course by id and name so the generated
// answer can point the user somewhere concrete.
func ForFallback(courses []record.Record) Payload {
	var b strings.Builder
	b.WriteString("=== СУРГАЛТУУД ===\n")
	for i := range courses {
		c := &courses[i]
		if c.CourseName == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("- %s (ID: %s)\n", c.CourseName, c.CourseID))
	}

	return Payload{
		Intent:   IntentFallback,
		Sections: []string{b.String(), contactBlock()},
	}
}

// Render joins the payload into the prompt context block. Escalated
// answers always carry the contact block so the handoff information is
// available to the generator.
func (p Payload) Render(escalate bool) string {
	sections := p.Sections
	if escalate && !p.hasContacts() {
		sections = append(sections, contactBlock())
	}
	return strings.Join(sections, "\n")
}

func (p Payload) hasContacts() bool {
	for _, s := range p.Sections {
		if strings.Contains(s, Email) {
			return true
		}
	}
	return false
}

func contactBlock() string {
	var b strings.Builder
	b.WriteString("=== ХОЛБОО БАРИХ ===\n")
	writeField(&b, "Хаяг", Address)
	writeField(&b, "Утас", Phones)
	writeField(&b, "Имэйл", Email)
	writeField(&b, "Академийн онцлог", Highlight)
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}
