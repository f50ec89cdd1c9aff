package source

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/pintuSINGH2000/sraping/internal/event"
	"github.com/pintuSINGH2000/sraping/internal/extract"
	"github.com/pintuSINGH2000/sraping/internal/fetch"
	"github.com/pintuSINGH2000/sraping/internal/logger"
)

const kidsOutBaseURL = "https://austin.kidsoutandabout.com"

// KidsOut scrapes the Kids Out and About directory: one listing page per
// day (/event-list/YYYY-MM-DD) enumerated over the window, plus a per-event
// detail page carrying email, price, ages, and tags.
type KidsOut struct {
	fetcher fetch.Getter
	baseURL string

	listing kidsOutListingChains
	detail  kidsOutDetailChains
}

// Listing-page chains. The backup title locator covers event nodes where
// the top-level heading anchor renders empty.
type kidsOutListingChains struct {
	eventURL    extract.Chain
	name        extract.Chain
	org         extract.Chain
	street      extract.Chain
	city        extract.Chain
	state       extract.Chain
	postalCode  extract.Chain
	country     extract.Chain
	mapLink     extract.Chain
	dates       extract.Chain
	timeOfDay   extract.Chain
	phone       extract.Chain
	imageURL    extract.Chain
	description extract.Chain
}

type kidsOutDetailChains struct {
	email extract.Chain
	price extract.Chain
	ages  extract.Chain
	tags  extract.Chain
}

// NewKidsOut creates the adapter against the production site.
func NewKidsOut(f fetch.Getter) *KidsOut {
	return newKidsOut(f, kidsOutBaseURL)
}

func newKidsOut(f fetch.Getter, baseURL string) *KidsOut {
	abs := extract.AbsoluteURL(baseURL)
	return &KidsOut{
		fetcher: f,
		baseURL: baseURL,
		listing: kidsOutListingChains{
			eventURL: extract.Chain{Field: "event_url", Strategies: []extract.Strategy{
				{Selector: "h2 a", Attr: "href", Clean: abs},
				{Selector: ".group-activity-details h2 a", Attr: "href", Clean: abs},
			}},
			name: extract.Chain{Field: "name", Strategies: []extract.Strategy{
				{Selector: "h2 a"},
				{Selector: ".group-activity-details h2 a"},
			}},
			org: extract.Chain{Field: "organization", Strategies: []extract.Strategy{
				{Selector: "div.address-org-name span.fn"},
			}},
			street: extract.Chain{Field: "street", Strategies: []extract.Strategy{
				{Selector: "div.adr div.street-address"},
			}},
			city: extract.Chain{Field: "city", Strategies: []extract.Strategy{
				{Selector: "div.adr span.locality"},
			}},
			state: extract.Chain{Field: "state", Strategies: []extract.Strategy{
				{Selector: "div.adr span.region"},
			}},
			postalCode: extract.Chain{Field: "postal_code", Strategies: []extract.Strategy{
				{Selector: "div.adr span.postal-code"},
			}},
			country: extract.Chain{Field: "country", Strategies: []extract.Strategy{
				{Selector: "div.adr div.country-name"},
			}},
			mapLink: extract.Chain{Field: "map_link", Strategies: []extract.Strategy{
				{Selector: "div.adr a", Attr: "href"},
			}},
			dates: extract.Chain{Field: "dates", Strategies: []extract.Strategy{
				{Selector: "div.field-type-datetime span.date-display-single"},
			}},
			timeOfDay: extract.Chain{Field: "time", Strategies: []extract.Strategy{
				{Selector: "div.field-name-field-time", Clean: extract.StripLabel("Time:")},
			}},
			phone: extract.Chain{Field: "phone", Strategies: []extract.Strategy{
				{Selector: ".tel .value"},
			}},
			imageURL: extract.Chain{Field: "image_url", Strategies: []extract.Strategy{
				{Selector: "div.field-name-field-enhanced-activity-image img", Attr: "src"},
			}},
			description: extract.Chain{Field: "description", Strategies: []extract.Strategy{
				{Selector: "div.field-name-field-short-description div.field-items"},
			}},
		},
		detail: kidsOutDetailChains{
			email: extract.Chain{Field: "email", Strategies: []extract.Strategy{
				{Selector: ".field-name-field-email-address a[href^='mailto']"},
			}},
			price: extract.Chain{Field: "price", Strategies: []extract.Strategy{
				{Selector: ".field-name-field-price .field-item"},
			}},
			ages: extract.Chain{Field: "ages", Strategies: []extract.Strategy{
				{Selector: ".field-name-field-ages.field-type-entityreference.field-label-above"},
			}},
			tags: extract.Chain{Field: "tags", Strategies: []extract.Strategy{
				{Selector: ".field-name-field-activity-type.field-type-entityreference.field-label-hidden a"},
			}},
		},
	}
}

func (s *KidsOut) Name() string     { return "kidsout" }
func (s *KidsOut) Category() string { return "activities" }

// Listing enumerates the window's daily listing pages in order. A single
// failed day is skipped; the source as a whole fails only when every day
// does.
func (s *KidsOut) Listing(ctx context.Context, w Window) ([]RawItem, error) {
	days := w.Days()
	if len(days) == 0 {
		return nil, fmt.Errorf("empty window")
	}

	var items []RawItem
	failed := 0
	for _, day := range days {
		url := fmt.Sprintf("%s/event-list/%s", s.baseURL, day.Format("2006-01-02"))
		body, err := s.fetcher.Get(ctx, url)
		if err != nil {
			failed++
			logger.Warn("listing day skipped", logger.Fields{
				"source": s.Name(),
				"url":    url,
			})
			continue
		}
		doc, err := extract.Document(bytes.NewReader(body))
		if err != nil {
			failed++
			continue
		}
		doc.Find("div.node-activity").Each(func(_ int, sel *goquery.Selection) {
			items = append(items, RawItem{
				URL:      s.listing.eventURL.Resolve(sel),
				Fragment: sel,
			})
		})
	}

	if failed == len(days) {
		return nil, fmt.Errorf("all %d listing days failed", failed)
	}
	return items, nil
}

// Parse extracts the listing-page fields into a draft. Fields only the
// detail page carries stay unset until Enrich runs.
func (s *KidsOut) Parse(item RawItem) (*event.Draft, error) {
	if item.Fragment == nil {
		return nil, fmt.Errorf("%w: kidsout item has no fragment", extract.ErrBadInput)
	}
	sel := item.Fragment

	d := &event.Draft{
		Source:       s.Name(),
		Category:     s.Category(),
		Name:         s.listing.name.Resolve(sel),
		Organization: s.listing.org.Resolve(sel),
		Location: event.Location{
			Street:     s.listing.street.Resolve(sel),
			City:       s.listing.city.Resolve(sel),
			State:      s.listing.state.Resolve(sel),
			PostalCode: s.listing.postalCode.Resolve(sel),
			Country:    s.listing.country.Resolve(sel),
			MapLink:    s.listing.mapLink.Resolve(sel),
		},
		RawTime:     s.listing.timeOfDay.Resolve(sel),
		Phone:       s.listing.phone.Resolve(sel),
		ImageURL:    s.listing.imageURL.Resolve(sel),
		Description: s.listing.description.Resolve(sel),
		EventURL:    item.URL,
	}

	if dates := s.listing.dates.ResolveAll(sel); dates[0] != "" {
		d.RawDates = dates
	}
	return d, nil
}

// Enrich fetches the event detail page for email, price, ages, and tags.
func (s *KidsOut) Enrich(ctx context.Context, d *event.Draft) error {
	if d.EventURL == "" {
		return nil
	}
	body, err := s.fetcher.Get(ctx, d.EventURL)
	if err != nil {
		return fmt.Errorf("detail fetch: %w", err)
	}
	doc, err := extract.Document(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("detail parse: %w", err)
	}
	root := doc.Selection

	d.Email = s.detail.email.Resolve(root)
	d.RawPrice = s.detail.price.Resolve(root)
	if ages := s.detail.ages.ResolveAll(root); ages[0] != "" {
		d.Ages = ages
	}
	if tags := s.detail.tags.ResolveAll(root); tags[0] != "" {
		d.Tags = tags
	}
	return nil
}
