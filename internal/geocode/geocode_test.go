package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const nominatimFixture = `[
  {
    "lat": "37.4443",
    "lon": "-122.1598",
    "address": {
      "road": "Main Street",
      "town": "Palo Alto",
      "state": "California",
      "postcode": "94301",
      "country": "United States"
    }
  }
]`

func TestNominatim_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %q, want /search", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "123 Main St, Palo Alto" {
			t.Errorf("q = %q", got)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("missing User-Agent header")
		}
		w.Write([]byte(nominatimFixture))
	}))
	defer srv.Close()

	c := NewNominatimWithBaseURL(srv.URL, "test-agent/1.0")
	loc, err := c.Lookup(context.Background(), "123 Main St, Palo Alto")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if loc == nil {
		t.Fatal("Lookup() returned nil location")
	}

	if loc.Street != "Main Street" {
		t.Errorf("Street = %q", loc.Street)
	}
	// The town field backs up a missing city.
	if loc.City != "Palo Alto" {
		t.Errorf("City = %q, want town fallback", loc.City)
	}
	if loc.PostalCode != "94301" {
		t.Errorf("PostalCode = %q", loc.PostalCode)
	}
	want := "https://www.openstreetmap.org/?mlat=37.4443&mlon=-122.1598"
	if loc.MapLink != want {
		t.Errorf("MapLink = %q, want %q", loc.MapLink, want)
	}
}

// An empty result set is a miss, not an error.
func TestNominatim_Lookup_NoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := NewNominatimWithBaseURL(srv.URL, "test-agent/1.0")
	loc, err := c.Lookup(context.Background(), "nowhere")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if loc != nil {
		t.Errorf("Lookup() = %+v, want nil for no match", loc)
	}
}

func TestNominatim_Lookup_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewNominatimWithBaseURL(srv.URL, "test-agent/1.0")
	if _, err := c.Lookup(context.Background(), "anywhere"); err == nil {
		t.Fatal("Lookup() expected error for 503")
	}
}

func TestMapLink(t *testing.T) {
	got := MapLink("37.4", "-122.1")
	want := "https://www.openstreetmap.org/?mlat=37.4&mlon=-122.1"
	if got != want {
		t.Errorf("MapLink() = %q, want %q", got, want)
	}
}
