package intent

import "regexp"

// Category names vocabulary groups in the gate table.
type Category string

const (
	CategoryPrice   Category = "price"
	CategoryUrgency Category = "urgency"
	CategoryURL     Category = "url"
)

// vocabulary is the single pattern table consumed by the gate. Patterns
// run against the normalized (lowercased) message.
var vocabulary = map[Category][]*regexp.Regexp{
	CategoryPrice: compile(
		`үнэ`,
		`үнийн`,
		`төлбөр`,
		`төлөлт`,
		`хямдрал`,
		`хуваан төл`,
		`бүртгүүл`,
		`элсэлт`,
		`price`,
		`cost`,
		`fee`,
		`discount`,
		`payment`,
		`apply`,
	),
	CategoryUrgency: compile(
		`яаралтай`,
		`яарч байна`,
		`түргэн`,
		`urgent`,
		`asap`,
		`emergency`,
	),
	CategoryURL: compile(
		`https?://`,
		`www\.`,
	),
}

// staticCourseHints recognize course mentions even when the course
// snapshot is empty, so a price question naming a course is not asked
// to clarify during a data outage.
var staticCourseHints = []string{
	"маркетинг",
	"excel",
	"дизайн",
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

// matches reports whether any pattern in the category hits the message.
func matches(category Category, message string) bool {
	for _, re := range vocabulary[category] {
		if re.MatchString(message) {
			return true
		}
	}
	return false
}
