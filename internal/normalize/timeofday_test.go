package normalize

import (
	"testing"

	"github.com/pintuSINGH2000/sraping/internal/event"
)

func TestNormalizer_TimeRange(t *testing.T) {
	var n Normalizer

	tests := []struct {
		name      string
		raw       string
		wantStart string
		wantEnd   string
	}{
		{
			name:      "full range",
			raw:       "9:00 am - 3:00 pm",
			wantStart: "9:00 am",
			wantEnd:   "3:00 pm",
		},
		{
			name:      "range with label prefix",
			raw:       "Time: 10:00am - 2:30pm",
			wantStart: "10:00am",
			wantEnd:   "2:30pm",
		},
		{
			name:      "single time leaves end unset",
			raw:       "6:30 pm",
			wantStart: "6:30 pm",
			wantEnd:   event.NoEndTime,
		},
		{
			name:      "varies passes through",
			raw:       "Varies",
			wantStart: "varies",
			wantEnd:   "varies",
		},
		{
			name:      "see website passes through",
			raw:       "See website",
			wantStart: "see website",
			wantEnd:   "see website",
		},
		{
			name:      "empty input",
			raw:       "",
			wantStart: event.NoTime,
			wantEnd:   event.NoTime,
		},
		{
			name:      "unparsable input",
			raw:       "after school",
			wantStart: event.UnparsedTime,
			wantEnd:   event.UnparsedTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := n.TimeRange(tt.raw)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("TimeRange(%q) = (%q, %q), want (%q, %q)",
					tt.raw, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
