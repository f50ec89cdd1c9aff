package source

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

const campityTestURL = "https://campity.test/data.js"

func testCampity(pages map[string]string) *Campity {
	return &Campity{fetcher: &fakeGetter{pages: pages}, dataURL: campityTestURL}
}

func TestCampity_Listing(t *testing.T) {
	s := testCampity(map[string]string{
		campityTestURL: fixture("campity_data.js"),
	})

	items, err := s.Listing(context.Background(), Window{})
	if err != nil {
		t.Fatalf("Listing() error = %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("Listing() returned %d items, want 2", len(items))
	}
	if items[0].URL != "https://www.campitycamp.com/book/forest-explorers" {
		t.Errorf("item URL = %q", items[0].URL)
	}
	// Records without a booking URL still list; the drop decision belongs
	// to normalization.
	if items[1].URL != "" {
		t.Errorf("second item URL = %q, want empty", items[1].URL)
	}
}

func TestCampity_Listing_FetchFailure(t *testing.T) {
	s := testCampity(map[string]string{})

	if _, err := s.Listing(context.Background(), Window{}); err == nil {
		t.Fatal("Listing() expected error on fetch failure")
	}
}

func TestCampity_Parse(t *testing.T) {
	s := testCampity(map[string]string{
		campityTestURL: fixture("campity_data.js"),
	})
	items, err := s.Listing(context.Background(), Window{})
	if err != nil {
		t.Fatalf("Listing() error = %v", err)
	}

	d, err := s.Parse(items[0])
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if d.Name != "Forest Explorers" {
		t.Errorf("Name = %q", d.Name)
	}
	if d.StartTime != "8:30 am" || d.EndTime != "5:30 pm" {
		t.Errorf("times = (%q, %q), want dropoff and pickup", d.StartTime, d.EndTime)
	}
	if !reflect.DeepEqual(d.RawDates, []string{"June 2 - 6", "June 9 - 13"}) {
		t.Errorf("RawDates = %v", d.RawDates)
	}
	if !d.PriceKnown || d.Price != 475 {
		t.Errorf("price = (%v, known %v), want numeric cost carried over", d.Price, d.PriceKnown)
	}
	if !strings.Contains(d.Location.MapLink, "mlat=37.4419") ||
		!strings.Contains(d.Location.MapLink, "mlon=-122.143") {
		t.Errorf("MapLink = %q, want coordinates", d.Location.MapLink)
	}
	if !reflect.DeepEqual(d.Ages, []string{"6 - 11 years"}) {
		t.Errorf("Ages = %v", d.Ages)
	}
	if d.ImageURL != "https://www.campitycamp.com/images/forest.jpg" {
		t.Errorf("ImageURL = %q, want absolutized", d.ImageURL)
	}
}

func TestCampity_Parse_ZeroCoordinates(t *testing.T) {
	s := testCampity(map[string]string{
		campityTestURL: fixture("campity_data.js"),
	})
	items, err := s.Listing(context.Background(), Window{})
	if err != nil {
		t.Fatalf("Listing() error = %v", err)
	}

	d, err := s.Parse(items[1])
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if d.Location.MapLink != "" {
		t.Errorf("MapLink = %q, want unset for zero coordinates", d.Location.MapLink)
	}
	if d.Ages != nil {
		t.Errorf("Ages = %v, want unset for zero age bounds", d.Ages)
	}
	if d.ImageURL != "https://cdn.campitycamp.com/maker.jpg" {
		t.Errorf("ImageURL = %q, absolute URL must pass through", d.ImageURL)
	}
}

func TestStripJSWrapper(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare array", `[{"a":1}]`, `[{"a":1}]`},
		{"js assignment", `var camps = [{"a":1}];`, `[{"a":1}]`},
		{"assignment with whitespace", "  window.camps = [1, 2]; ", `[1, 2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(stripJSWrapper([]byte(tt.in))); got != tt.want {
				t.Errorf("stripJSWrapper(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
