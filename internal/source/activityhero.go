package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pintuSINGH2000/sraping/internal/browser"
	"github.com/pintuSINGH2000/sraping/internal/event"
	"github.com/pintuSINGH2000/sraping/internal/extract"
)

const (
	activityHeroBaseURL   = "https://www.activityhero.com"
	activityHeroSearchURL = activityHeroBaseURL +
		"/search?view=activity&q=&location=Palo+Alto%2C+CA&radius=50&activity_types=event"

	// The search page is unbounded; without a window limit only this many
	// items get the expensive per-item render.
	activityHeroDefaultCap = 5

	activityHeroTileSelector  = "div.tile-title.new-version > a"
	activityHeroReadySelector = ".schedule-location-container"
)

// ActivityHero scrapes the ActivityHero search results. Both the listing
// and the per-event detail page are JavaScript-rendered, so every fetch
// goes through the browser collaborator. The detail page's session modal
// carries the fields worth having: dates, times, ages, and tiered prices.
type ActivityHero struct {
	renderer  browser.Renderer
	baseURL   string
	searchURL string

	detail activityHeroDetailChains
}

type activityHeroDetailChains struct {
	name        extract.Chain
	address     extract.Chain
	phone       extract.Chain
	imageURL    extract.Chain
	description extract.Chain
	price       extract.Chain
	dates       extract.Chain
	timeOfDay   extract.Chain
	ages        extract.Chain
}

// NewActivityHero creates the adapter against the production site.
func NewActivityHero(r browser.Renderer) *ActivityHero {
	return newActivityHero(r, activityHeroBaseURL, activityHeroSearchURL)
}

func newActivityHero(r browser.Renderer, baseURL, searchURL string) *ActivityHero {
	return &ActivityHero{
		renderer:  r,
		baseURL:   baseURL,
		searchURL: searchURL,
		detail: activityHeroDetailChains{
			name: extract.Chain{Field: "name", Strategies: []extract.Strategy{
				{Selector: ".header-title"},
			}},
			address: extract.Chain{Field: "address", Strategies: []extract.Strategy{
				{Selector: ".schedule-location-container a"},
			}},
			phone: extract.Chain{Field: "phone", Strategies: []extract.Strategy{
				{Selector: "span.phone-number"},
			}},
			imageURL: extract.Chain{Field: "image_url", Strategies: []extract.Strategy{
				{Selector: "div.carousel-image-wrapper img", Attr: "src"},
			}},
			description: extract.Chain{Field: "description", Strategies: []extract.Strategy{
				{Selector: "div.overview p"},
			}},
			price: extract.Chain{Field: "price", Strategies: []extract.Strategy{
				{Selector: "div.alt-price-wrapper"},
				{Selector: ".section"},
			}},
			dates: extract.Chain{Field: "dates", Strategies: []extract.Strategy{
				{Selector: ".popover-container-class .section strong"},
				{Selector: "div.section strong"},
			}},
			timeOfDay: extract.Chain{Field: "time", Strategies: []extract.Strategy{
				{Selector: "div.time-str"},
			}},
			ages: extract.Chain{Field: "ages", Strategies: []extract.Strategy{
				{Selector: "div.age-str"},
				{Selector: ".age.container.clearfix"},
			}},
		},
	}
}

func (s *ActivityHero) Name() string     { return "activityhero" }
func (s *ActivityHero) Category() string { return "activities" }

// Listing renders the search page once and returns at most the window
// limit of result tiles, in page order.
func (s *ActivityHero) Listing(ctx context.Context, w Window) ([]RawItem, error) {
	html, err := s.renderer.Open(ctx, s.searchURL, activityHeroTileSelector)
	if err != nil {
		return nil, fmt.Errorf("rendering search page: %w", err)
	}
	doc, err := extract.Document(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	limit := w.Limit
	if limit <= 0 {
		limit = activityHeroDefaultCap
	}
	abs := extract.AbsoluteURL(s.baseURL)

	var items []RawItem
	doc.Find(activityHeroTileSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		items = append(items, RawItem{
			URL:      abs(href),
			Fragment: sel,
		})
		return len(items) < limit
	})
	if len(items) == 0 {
		return nil, fmt.Errorf("no result tiles on search page")
	}
	return items, nil
}

// Parse takes what the result tile offers: title, link, and neighboring
// image and date summary. Everything else waits for the detail render.
func (s *ActivityHero) Parse(item RawItem) (*event.Draft, error) {
	if item.Fragment == nil {
		return nil, fmt.Errorf("%w: activityhero item has no fragment", extract.ErrBadInput)
	}
	sel := item.Fragment

	d := &event.Draft{
		Source:       s.Name(),
		Category:     s.Category(),
		Name:         strings.TrimSpace(sel.Text()),
		Organization: "Activityhero",
		EventURL:     item.URL,
	}

	// The image and date chip live on the surrounding tile, not inside the
	// title anchor.
	if tile := sel.Closest("div.tile"); tile.Length() > 0 {
		if src, ok := tile.Find("img").First().Attr("src"); ok {
			d.ImageURL = src
		}
		if date := strings.TrimSpace(tile.Find("div.date-item").First().Text()); date != "" {
			d.RawDates = []string{date}
		}
	}
	return d, nil
}

// Enrich renders the detail page, waiting for the session container, and
// pulls the modal-backed fields.
func (s *ActivityHero) Enrich(ctx context.Context, d *event.Draft) error {
	if d.EventURL == "" {
		return nil
	}
	html, err := s.renderer.Open(ctx, d.EventURL, activityHeroReadySelector)
	if err != nil {
		return fmt.Errorf("rendering detail page: %w", err)
	}
	doc, err := extract.Document(strings.NewReader(html))
	if err != nil {
		return fmt.Errorf("detail parse: %w", err)
	}
	root := doc.Selection

	d.Name = event.Or(s.detail.name.Resolve(root), d.Name)
	d.Address = s.detail.address.Resolve(root)
	d.Phone = s.detail.phone.Resolve(root)
	d.ImageURL = event.Or(s.detail.imageURL.Resolve(root), d.ImageURL)
	d.Description = s.detail.description.Resolve(root)
	d.RawPrice = s.detail.price.Resolve(root)
	d.RawTime = s.detail.timeOfDay.Resolve(root)
	if dates := s.detail.dates.Resolve(root); dates != "" {
		d.RawDates = []string{dates}
	}
	if ages := s.detail.ages.Resolve(root); ages != "" {
		d.Ages = []string{ages}
	}
	return nil
}
