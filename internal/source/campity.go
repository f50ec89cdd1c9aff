package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pintuSINGH2000/sraping/internal/event"
	"github.com/pintuSINGH2000/sraping/internal/extract"
	"github.com/pintuSINGH2000/sraping/internal/fetch"
	"github.com/pintuSINGH2000/sraping/internal/geocode"
)

const (
	campityBaseURL = "https://www.campitycamp.com"
	campityDataURL = campityBaseURL + "/data.js"
)

// Campity consumes the site's embedded machine-readable camp blob: a JSON
// array, sometimes wrapped in a JavaScript assignment. No HTML traversal —
// only structural mapping onto the canonical schema.
type Campity struct {
	fetcher fetch.Getter
	dataURL string
}

// NewCampity creates the adapter against the production data blob.
func NewCampity(f fetch.Getter) *Campity {
	return &Campity{fetcher: f, dataURL: campityDataURL}
}

func (s *Campity) Name() string     { return "campity" }
func (s *Campity) Category() string { return "activities" }

type campityRecord struct {
	Name           string   `json:"name"`
	Lat            float64  `json:"lat"`
	Lon            float64  `json:"lon"`
	AvailableWeeks []string `json:"availableWeeks"`
	Dropoff        string   `json:"dropoff"`
	Pickup         string   `json:"pickup"`
	Img            string   `json:"img"`
	Description    string   `json:"description"`
	BookingURL     string   `json:"booking_url"`
	Cost           float64  `json:"cost"`
	AgeFrom        int      `json:"ageFrom"`
	AgeTo          int      `json:"ageTo"`
}

// Listing fetches and decodes the blob; each array element becomes one raw
// item. The window does not apply — the blob is the whole inventory.
func (s *Campity) Listing(ctx context.Context, w Window) ([]RawItem, error) {
	body, err := s.fetcher.Get(ctx, s.dataURL)
	if err != nil {
		return nil, fmt.Errorf("fetching data blob: %w", err)
	}

	payload := stripJSWrapper(body)
	var records []json.RawMessage
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("%w: decoding data blob: %v", extract.ErrBadInput, err)
	}

	items := make([]RawItem, 0, len(records))
	for _, rec := range records {
		var probe struct {
			BookingURL string `json:"booking_url"`
		}
		_ = json.Unmarshal(rec, &probe)
		items = append(items, RawItem{URL: probe.BookingURL, Blob: rec})
	}
	return items, nil
}

// Parse maps one blob record onto a draft. The coordinates become a map
// link directly; there is no address to geocode.
func (s *Campity) Parse(item RawItem) (*event.Draft, error) {
	if len(item.Blob) == 0 {
		return nil, fmt.Errorf("%w: campity item has no payload", extract.ErrBadInput)
	}
	var rec campityRecord
	if err := json.Unmarshal(item.Blob, &rec); err != nil {
		return nil, fmt.Errorf("%w: decoding camp record: %v", extract.ErrBadInput, err)
	}

	abs := extract.AbsoluteURL(campityBaseURL)
	d := &event.Draft{
		Source:       s.Name(),
		Category:     s.Category(),
		Name:         rec.Name,
		Organization: "Campitycamp",
		RawDates:     rec.AvailableWeeks,
		StartTime:    rec.Dropoff,
		EndTime:      rec.Pickup,
		ImageURL:     abs(rec.Img),
		Description:  rec.Description,
		EventURL:     rec.BookingURL,
		Price:        rec.Cost,
		PriceKnown:   true,
	}
	if rec.Lat != 0 || rec.Lon != 0 {
		d.Location.MapLink = geocode.MapLink(
			strconv.FormatFloat(rec.Lat, 'f', -1, 64),
			strconv.FormatFloat(rec.Lon, 'f', -1, 64),
		)
	}
	if rec.AgeFrom != 0 || rec.AgeTo != 0 {
		d.Ages = []string{fmt.Sprintf("%d - %d years", rec.AgeFrom, rec.AgeTo)}
	}
	return d, nil
}

// stripJSWrapper tolerates blobs published as "var camps = [...];" by
// slicing out the bracketed JSON array.
func stripJSWrapper(b []byte) []byte {
	s := strings.TrimSpace(string(b))
	if strings.HasPrefix(s, "[") {
		return []byte(s)
	}
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start >= 0 && end > start {
		return []byte(s[start : end+1])
	}
	return b
}
