package soiltest

import (
	"regexp"
	"strings"
	"time"
)

// Lab reports state nutrients either as a concentration ("22", "6.8") or a
// coarse level ("low"). Values stay on the label's own line: \s would let a
// bare label swallow the next line's first word, so only spaces and tabs may
// separate label and value.
const (
	numericValue = `(\d+(?:\.\d+)?)`
	anyValue     = `(\d+(?:\.\d+)?|[A-Za-z]+)`
	sep          = `[ \t]*:?[ \t]*`
)

type fieldPattern struct {
	name   string
	re     *regexp.Regexp
	assign func(*Reading, string)
}

// fieldPatterns is the tagged pattern table the parser walks, one entry per
// recognized field. First match wins; later occurrences are ignored.
var fieldPatterns = []fieldPattern{
	{"ph", regexp.MustCompile(`(?i)\bph` + sep + numericValue), func(r *Reading, v string) { r.Ph = &v }},
	{"moisture", regexp.MustCompile(`(?i)\bmoisture` + sep + numericValue), func(r *Reading, v string) { r.Moisture = &v }},
	{"nitrogen", regexp.MustCompile(`(?i)\b(?:nitrogen|n)\b` + sep + anyValue), func(r *Reading, v string) { r.Nitrogen = &v }},
	{"phosphorus", regexp.MustCompile(`(?i)\b(?:phosphorus|p)\b` + sep + anyValue), func(r *Reading, v string) { r.Phosphorus = &v }},
	{"potassium", regexp.MustCompile(`(?i)\b(?:potassium|k)\b` + sep + anyValue), func(r *Reading, v string) { r.Potassium = &v }},
	{"organic_matter", regexp.MustCompile(`(?i)\borganic[ \t]*matter` + sep + anyValue), func(r *Reading, v string) { r.OrganicMatter = &v }},
}

var datePattern = regexp.MustCompile(`(?i)\b(?:test|report|date)` + sep + `(\d{1,4}[-/]\d{1,2}[-/]\d{1,4})`)

// dateLayouts is the fixed priority order for labeled dates: day-first, then
// month-first, then ISO, then the two-digit-year forms. The first layout that
// parses wins, which resolves day/month ambiguity deterministically.
var dateLayouts = []string{
	"02-01-2006",
	"01-02-2006",
	"2006-01-02",
	"02-01-06",
	"01-02-06",
}

// ParseReport extracts a structured reading from raw report text. It is
// total: any input, including the empty string, yields a reading whose
// unmatched fields are absent. TestedAt defaults to now's date when the text
// carries no recoverable date.
func ParseReport(text string, now time.Time) Reading {
	reading := Reading{TestedAt: now}

	for _, fp := range fieldPatterns {
		m := fp.re.FindStringSubmatch(text)
		if m == nil || m[1] == "" {
			continue
		}
		// Captured verbatim, lowercased. Enum membership is deliberately not
		// enforced: a lab writing "moderate" is stored as "moderate".
		fp.assign(&reading, strings.ToLower(m[1]))
	}

	if m := datePattern.FindStringSubmatch(text); m != nil {
		if parsed, ok := parseReportDate(m[1]); ok {
			reading.TestedAt = parsed
		}
	}

	return reading
}

func parseReportDate(raw string) (time.Time, bool) {
	normalized := strings.ReplaceAll(raw, "/", "-")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
