package source

import (
	"context"
	"strings"
	"testing"

	"github.com/pintuSINGH2000/sraping/internal/event"
)

const galileoTestBase = "https://galileo.test"

func TestGalileo_Listing(t *testing.T) {
	r := &fakeRenderer{pages: map[string]string{
		galileoTestBase:                     fixture("galileo_home.html"),
		galileoTestBase + "/camps/bay-area": fixture("galileo_region.html"),
		// The SoCal region page is unmapped: that region fails and must be
		// skipped without failing the source.
	}}
	s := newGalileo(r, galileoTestBase)

	items, err := s.Listing(context.Background(), Window{})
	if err != nil {
		t.Fatalf("Listing() error = %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("Listing() returned %d items, want 2 venues from the surviving region", len(items))
	}
	if items[0].URL != galileoTestBase+"/camps/bay-area/palo-alto" {
		t.Errorf("venue URL = %q", items[0].URL)
	}
	for _, item := range items {
		if item.Meta["region"] != "Bay Area" {
			t.Errorf("region label = %q, want %q", item.Meta["region"], "Bay Area")
		}
	}
}

func TestGalileo_Listing_IndexUnreachable(t *testing.T) {
	s := newGalileo(&fakeRenderer{pages: map[string]string{}}, galileoTestBase)

	if _, err := s.Listing(context.Background(), Window{}); err == nil {
		t.Fatal("Listing() expected error when the region index is unreachable")
	}
}

func TestGalileo_Parse(t *testing.T) {
	s := newGalileo(&fakeRenderer{}, galileoTestBase)

	d, err := s.Parse(RawItem{
		URL:  galileoTestBase + "/camps/bay-area/palo-alto",
		Meta: map[string]string{"region": "Bay Area"},
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if d.EventURL != galileoTestBase+"/camps/bay-area/palo-alto" {
		t.Errorf("EventURL = %q", d.EventURL)
	}
	if d.Location.Country != "Bay Area" {
		t.Errorf("region carried as %q", d.Location.Country)
	}
	if d.Category != "camps" {
		t.Errorf("Category = %q, want camps namespace", d.Category)
	}
}

func TestGalileo_Parse_NoURL(t *testing.T) {
	s := newGalileo(&fakeRenderer{}, galileoTestBase)

	if _, err := s.Parse(RawItem{}); err == nil {
		t.Fatal("Parse() expected error for item without venue URL")
	}
}

func TestGalileo_Enrich(t *testing.T) {
	venueURL := galileoTestBase + "/camps/bay-area/palo-alto"
	r := &fakeRenderer{pages: map[string]string{
		venueURL: fixture("galileo_camp.html"),
	}}
	s := newGalileo(r, galileoTestBase)

	d := &event.Draft{EventURL: venueURL}
	if err := s.Enrich(context.Background(), d); err != nil {
		t.Fatalf("Enrich() error = %v", err)
	}

	if len(r.selectors) != 1 || r.selectors[0] != galileoCampReady {
		t.Errorf("ready selectors = %v, want camp heading wait", r.selectors)
	}

	if d.Name != "Camp Galileo Palo Alto" {
		t.Errorf("Name = %q", d.Name)
	}
	if d.Organization != "Walter Hays Elementary" {
		t.Errorf("Organization = %q", d.Organization)
	}
	if d.Address != "1525 Middlefield Rd, Palo Alto, CA 94301" {
		t.Errorf("Address = %q", d.Address)
	}
	if d.Phone != "1-800-555-0199" {
		t.Errorf("Phone = %q", d.Phone)
	}
	if d.RawGrades != "K - 5" {
		t.Errorf("RawGrades = %q", d.RawGrades)
	}
	if len(d.RawDates) != 1 || d.RawDates[0] != "June 2 - 6" {
		t.Errorf("RawDates = %v", d.RawDates)
	}
	if !strings.Contains(d.Description, "Innovation camp") {
		t.Errorf("Description = %q", d.Description)
	}
	if d.ImageURL != "https://galileo-camps.com/images/palo-alto.jpg" {
		t.Errorf("ImageURL = %q", d.ImageURL)
	}
}
