package content

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

var (
	dateLocales = []language.Tag{language.English, language.BrazilianPortuguese}
	dateMatcher = language.NewMatcher(dateLocales)

	monthNames = [][12]string{
		{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"},
	}

	// Prismic writes offsets without a colon (2021-03-15T19:25:28+0000).
	timestampLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z0700",
		time.DateOnly,
	}
)

// DateFormatter renders publication dates as "<day> <month> <year>".
type DateFormatter struct {
	months [12]string
}

// NewDateFormatter picks the month names closest to locale. Unknown or
// unparseable locales fall back to English.
func NewDateFormatter(locale string) DateFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		return DateFormatter{months: monthNames[0]}
	}
	_, idx, conf := dateMatcher.Match(tag)
	if conf == language.No {
		idx = 0
	}
	return DateFormatter{months: monthNames[idx]}
}

// Format renders ts in UTC. A missing or unparseable timestamp is treated as
// the Unix epoch.
func (d DateFormatter) Format(ts *string) string {
	t := ParseTimestamp(ts).UTC()
	return fmt.Sprintf("%d %s %d", t.Day(), d.months[t.Month()-1], t.Year())
}

// ParseTimestamp parses a content API timestamp, returning the Unix epoch when
// ts is nil or in no known layout.
func ParseTimestamp(ts *string) time.Time {
	if ts == nil {
		return time.Unix(0, 0)
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, *ts); err == nil {
			return t
		}
	}
	return time.Unix(0, 0)
}
