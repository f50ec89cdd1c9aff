// Package source defines the per-site adapter contract and the adapters
// themselves. Each adapter maps one site's structure — date-indexed listing
// pages, a capped search page, a region→venue hierarchy, or an embedded
// data blob — onto the same listing/parse/enrich capability set, so the
// orchestrator never branches on source shape.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pintuSINGH2000/sraping/internal/browser"
	"github.com/pintuSINGH2000/sraping/internal/event"
	"github.com/pintuSINGH2000/sraping/internal/fetch"
)

// Window bounds one discovery pass. Date-window sources enumerate the days
// in [Start, End); capped sources honor Limit; hierarchical and blob
// sources ignore both.
type Window struct {
	Start time.Time
	End   time.Time
	Limit int
}

// Days returns the days covered by the window, in order. Listing order is
// load-bearing: it drives resumability and end-of-window detection.
func (w Window) Days() []time.Time {
	var days []time.Time
	for d := w.Start; d.Before(w.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Year returns the window's starting year, used for date input that omits
// one.
func (w Window) Year() int {
	if w.Start.IsZero() {
		return time.Now().Year()
	}
	return w.Start.Year()
}

// RawItem is one listing-phase handle: enough to identify and parse one
// event without refetching the listing page. Exactly one of Fragment or
// Blob is set depending on the source shape; Meta carries listing-level
// context such as the region a venue was discovered under.
type RawItem struct {
	URL      string
	Fragment *goquery.Selection
	Blob     json.RawMessage
	Meta     map[string]string
}

// Adapter is the uniform per-source contract. Listing is cheap, batched
// per window, finite, and restartable; Parse works from the raw item alone
// and leaves unresolvable fields unset.
type Adapter interface {
	Name() string

	// Category is the sink namespace the source's records belong to.
	Category() string

	Listing(ctx context.Context, w Window) ([]RawItem, error)
	Parse(item RawItem) (*event.Draft, error)
}

// Enricher is implemented by adapters with a per-item detail phase. A
// failed Enrich must leave the draft usable: enrichable fields stay at
// their defaults and the item is never dropped.
type Enricher interface {
	Enrich(ctx context.Context, d *event.Draft) error
}

// Deps carries the external collaborators adapters are built from.
type Deps struct {
	Fetcher  fetch.Getter
	Renderer browser.Renderer
}

// New constructs the adapter registered under name. An unknown name is a
// configuration error.
func New(name string, deps Deps) (Adapter, error) {
	switch name {
	case "kidsout":
		return NewKidsOut(deps.Fetcher), nil
	case "activityhero":
		return NewActivityHero(deps.Renderer), nil
	case "galileo":
		return NewGalileo(deps.Renderer), nil
	case "campity":
		return NewCampity(deps.Fetcher), nil
	default:
		return nil, fmt.Errorf("unknown source %q", name)
	}
}

// Names lists every registered source, in default run order.
func Names() []string {
	return []string{"kidsout", "activityhero", "galileo", "campity"}
}
