// Package normalize converts the raw strings source adapters extract into
// the canonical field representations the rest of the pipeline relies on.
//
// Field-level failures never propagate: an unparsable value resolves to its
// documented sentinel. The one exception is the closed grade→age table,
// where an unknown label is a configuration error and fails fast.
package normalize

import (
	"context"
	"errors"
	"time"

	"github.com/pintuSINGH2000/sraping/internal/event"
	"github.com/pintuSINGH2000/sraping/internal/geocode"
)

// Normalizer holds the run-scoped knobs for normalization. The zero value
// is usable: Year defaults to the current year for inputs that omit one and
// PriceIndex to the first numeric token.
type Normalizer struct {
	Year       int
	PriceIndex int
}

func (n Normalizer) year() int {
	if n.Year > 0 {
		return n.Year
	}
	return time.Now().Year()
}

// ErrMissingEventURL marks a draft whose identity cannot be recovered. Such
// items are the only ones the pipeline drops entirely.
var ErrMissingEventURL = errors.New("draft has no event URL")

// Record normalizes a draft into a canonical Event. Every field comes out
// with a real value or its sentinel. The geocoder, when present, enriches
// drafts carrying a free-text address; lookup misses and failures leave the
// partial location in place and never fail the record.
//
// The returned error is either ErrMissingEventURL (drop the item) or an
// UnknownGradeError (configuration defect, fail the run).
func (n Normalizer) Record(ctx context.Context, geo geocode.Geocoder, d *event.Draft) (*event.Event, error) {
	if d.EventURL == "" {
		return nil, ErrMissingEventURL
	}

	ev := &event.Event{
		Name:         event.Or(d.Name, event.NoTitle),
		Organization: event.Or(d.Organization, event.NoOrganization),
		Phone:        event.Or(d.Phone, event.NoPhone),
		ImageURL:     event.Or(d.ImageURL, event.NoImage),
		Description:  event.Or(d.Description, event.NoDescription),
		EventURL:     d.EventURL,
		Email:        event.Or(d.Email, event.NoEmail),
		Tags:         event.OrList(d.Tags, event.NoTags),
	}

	ev.Dates = n.dates(d.RawDates)
	ev.StartTime, ev.EndTime = n.times(d)
	ev.Price = n.price(d)
	ev.Location = n.location(ctx, geo, d)

	ages, err := n.ages(d)
	if err != nil {
		return nil, err
	}
	ev.Ages = ages

	return ev, nil
}

func (n Normalizer) dates(raw []string) []string {
	if len(raw) == 0 {
		return []string{event.NoDate}
	}
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		out = append(out, n.Date(r))
	}
	return out
}

func (n Normalizer) times(d *event.Draft) (string, string) {
	// Pre-split bounds pass through untouched.
	if d.StartTime != "" || d.EndTime != "" {
		return event.Or(d.StartTime, event.NoTime), event.Or(d.EndTime, event.NoEndTime)
	}
	return n.TimeRange(d.RawTime)
}

func (n Normalizer) price(d *event.Draft) float64 {
	if d.PriceKnown {
		if d.Price < 0 {
			return 0
		}
		return d.Price
	}
	return n.Price(d.RawPrice)
}

func (n Normalizer) ages(d *event.Draft) ([]string, error) {
	if d.RawGrades != "" {
		ageRange, err := GradeRange(d.RawGrades)
		if err != nil {
			return nil, err
		}
		return []string{ageRange}, nil
	}
	return event.OrList(d.Ages, event.UnknownAgeGroup), nil
}

func (n Normalizer) location(ctx context.Context, geo geocode.Geocoder, d *event.Draft) event.Location {
	loc := d.Location

	if d.Address != "" && geo != nil {
		resolved, err := geo.Lookup(ctx, d.Address)
		if err == nil && resolved != nil {
			loc.Street = event.Or(resolved.Street, loc.Street)
			loc.City = event.Or(resolved.City, loc.City)
			loc.State = event.Or(resolved.State, loc.State)
			loc.PostalCode = event.Or(resolved.PostalCode, loc.PostalCode)
			loc.Country = event.Or(resolved.Country, loc.Country)
			loc.MapLink = event.Or(resolved.MapLink, loc.MapLink)
		} else if loc.Street == "" {
			// Keep the raw address rather than losing it to a lookup miss.
			loc.Street = d.Address
		}
	} else if d.Address != "" && loc.Street == "" {
		loc.Street = d.Address
	}

	loc.Street = event.Or(loc.Street, event.NoStreet)
	loc.City = event.Or(loc.City, event.NoCity)
	loc.State = event.Or(loc.State, event.NoState)
	loc.PostalCode = event.Or(loc.PostalCode, event.NoPostalCode)
	loc.Country = event.Or(loc.Country, event.NoCountry)
	loc.MapLink = event.Or(loc.MapLink, event.NoMapLink)
	return loc
}
