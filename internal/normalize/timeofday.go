package normalize

import (
	"regexp"
	"strings"

	"github.com/pintuSINGH2000/sraping/internal/event"
)

var (
	clockRange  = regexp.MustCompile(`(\d{1,2}:\d{2}\s*(?:am|pm)?)\s*[-–]\s*(\d{1,2}:\d{2}\s*(?:am|pm)?)`)
	clockSingle = regexp.MustCompile(`\d{1,2}:\d{2}\s*(?:am|pm)?`)
)

// passThroughTimes are kept verbatim as both bounds; the site is telling
// visitors to check rather than publishing a schedule.
var passThroughTimes = map[string]bool{
	"varies":      true,
	"see website": true,
	"all day":     true,
}

// TimeRange splits free-text time input into start and end bounds.
// "9:00 am - 3:00 pm" yields both; a single clock time leaves the end at
// the "No End Time" sentinel; the pass-through keywords survive as-is.
// Empty input resolves to the "No Time" sentinel and anything else to
// "Unparsed Time" for both bounds.
func (n Normalizer) TimeRange(raw string) (start, end string) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return event.NoTime, event.NoTime
	}
	if passThroughTimes[s] {
		return s, s
	}
	if m := clockRange.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	if m := clockSingle.FindString(s); m != "" {
		return strings.TrimSpace(m), event.NoEndTime
	}
	return event.UnparsedTime, event.UnparsedTime
}
