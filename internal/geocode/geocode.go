// Package geocode resolves free-text addresses into structured locations
// through the OpenStreetMap Nominatim search API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pintuSINGH2000/sraping/internal/event"
)

// Geocoder is the reverse-geocoding collaborator. Lookup returns (nil, nil)
// when the address produced no match; errors are reserved for transport
// failures. Callers treat both the same way: keep the partial location.
type Geocoder interface {
	Lookup(ctx context.Context, address string) (*event.Location, error)
}

const (
	defaultBaseURL = "https://nominatim.openstreetmap.org"
	lookupTimeout  = 10 * time.Second
)

// Nominatim is the HTTP implementation of Geocoder.
type Nominatim struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewNominatim creates a Nominatim client. The identity string is required
// by the Nominatim usage policy.
func NewNominatim(userAgent string) *Nominatim {
	return &Nominatim{
		baseURL:   defaultBaseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: lookupTimeout},
	}
}

// NewNominatimWithBaseURL is used by tests to point the client at a stub.
func NewNominatimWithBaseURL(baseURL, userAgent string) *Nominatim {
	c := NewNominatim(userAgent)
	c.baseURL = baseURL
	return c
}

type nominatimResult struct {
	Lat     string `json:"lat"`
	Lon     string `json:"lon"`
	Address struct {
		Road     string `json:"road"`
		City     string `json:"city"`
		Town     string `json:"town"`
		State    string `json:"state"`
		Postcode string `json:"postcode"`
		Country  string `json:"country"`
	} `json:"address"`
}

// Lookup queries the search endpoint and maps the first result to a
// structured location with an OSM map link.
func (c *Nominatim) Lookup(ctx context.Context, address string) (*event.Location, error) {
	u := fmt.Sprintf("%s/search?q=%s&format=json&addressdetails=1", c.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying nominatim: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	r := results[0]
	city := r.Address.City
	if city == "" {
		city = r.Address.Town
	}
	return &event.Location{
		Street:     r.Address.Road,
		City:       city,
		State:      r.Address.State,
		PostalCode: r.Address.Postcode,
		Country:    r.Address.Country,
		MapLink:    MapLink(r.Lat, r.Lon),
	}, nil
}

// MapLink builds an OpenStreetMap link for a coordinate pair.
func MapLink(lat, lon string) string {
	return fmt.Sprintf("https://www.openstreetmap.org/?mlat=%s&mlon=%s", lat, lon)
}
