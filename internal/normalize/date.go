package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/pintuSINGH2000/sraping/internal/event"
)

// Canonical dates are DD/MM/YYYY, optionally as a "start - end" range.
const canonicalLayout = "02/01/2006"

var (
	canonicalDate = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}( - \d{2}/\d{2}/\d{4})?$`)

	// "Mar 22 - Apr 5, 2025", tolerating a trailing note like "(Started Jan 18)"
	rangeWithYear = regexp.MustCompile(`([A-Za-z]+ \d{1,2})\s*[-–]\s*([A-Za-z]+ \d{1,2}),\s*(\d{4})`)

	// "Mar 22 - Apr 5" or "June 2 - 6" (year supplied by the caller)
	rangeNoYear = regexp.MustCompile(`^([A-Za-z]+)\s+(\d{1,2})\s*[-–]\s*(?:([A-Za-z]+)\s+)?(\d{1,2})$`)
)

// singleDateLayouts are tried in order for non-range input, mirroring how
// listing sites print standalone dates.
var singleDateLayouts = []string{
	"Mon, Jan 2, 2006",
	"Monday, January 2, 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"2006-01-02",
	"01/02/2006 - 03:04pm", // Drupal date-display-single with time suffix
}

// Date converts free-text date input into the canonical representation:
// DD/MM/YYYY for a single date, "DD/MM/YYYY - DD/MM/YYYY" for a range.
// Already-canonical input is returned unchanged, so the operation is
// idempotent. Unparsable input yields the "No Date" sentinel, never an
// error.
func (n Normalizer) Date(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return event.NoDate
	}
	if canonicalDate.MatchString(s) {
		return s
	}

	if m := rangeWithYear.FindStringSubmatch(s); m != nil {
		start, err1 := parseMonthDay(m[1], m[3])
		end, err2 := parseMonthDay(m[2], m[3])
		if err1 == nil && err2 == nil {
			return formatRange(start, end)
		}
	}

	if m := rangeNoYear.FindStringSubmatch(s); m != nil {
		year := fmt.Sprintf("%d", n.year())
		endMonth := m[3]
		if endMonth == "" {
			endMonth = m[1] // same-month range: "June 2 - 6"
		}
		start, err1 := parseMonthDay(m[1]+" "+m[2], year)
		end, err2 := parseMonthDay(endMonth+" "+m[4], year)
		if err1 == nil && err2 == nil {
			return formatRange(start, end)
		}
	}

	for _, layout := range singleDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(canonicalLayout)
		}
	}

	return event.NoDate
}

// parseMonthDay parses "Mar 22" or "March 22" against an explicit year.
func parseMonthDay(monthDay, year string) (time.Time, error) {
	for _, layout := range []string{"Jan 2 2006", "January 2 2006"} {
		if t, err := time.Parse(layout, monthDay+" "+year); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized month-day %q", monthDay)
}

func formatRange(start, end time.Time) string {
	return start.Format(canonicalLayout) + " - " + end.Format(canonicalLayout)
}
