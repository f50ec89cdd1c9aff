package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pintuSINGH2000/sraping/internal/browser"
	"github.com/pintuSINGH2000/sraping/internal/event"
	"github.com/pintuSINGH2000/sraping/internal/extract"
	"github.com/pintuSINGH2000/sraping/internal/logger"
)

const (
	galileoBaseURL = "https://galileo-camps.com"

	galileoRegionSelector = ".footer-camps__location"
	galileoVenueSelector  = "a.location-card_link"
	galileoCampReady      = "h1.heading-1"
)

// Galileo walks the camp-finder hierarchy: the home page footer indexes
// regions, each region page lists venue cards, and each venue page carries
// the camp details. Grade ranges map to ages through the closed grade
// table, and the free-text venue address goes through geocode enrichment.
type Galileo struct {
	renderer browser.Renderer
	baseURL  string

	camp galileoCampChains
}

type galileoCampChains struct {
	name        extract.Chain
	venue       extract.Chain
	meta        extract.Chain
	grades      extract.Chain
	description extract.Chain
	imageURL    extract.Chain
}

// NewGalileo creates the adapter against the production site.
func NewGalileo(r browser.Renderer) *Galileo {
	return newGalileo(r, galileoBaseURL)
}

func newGalileo(r browser.Renderer, baseURL string) *Galileo {
	return &Galileo{
		renderer: r,
		baseURL:  baseURL,
		camp: galileoCampChains{
			name: extract.Chain{Field: "name", Strategies: []extract.Strategy{
				{Selector: "h1.heading-1"},
			}},
			venue: extract.Chain{Field: "venue", Strategies: []extract.Strategy{
				{Selector: "p.camp-main__school strong"},
				{Selector: "p.camp-main_school strong"},
			}},
			meta: extract.Chain{Field: "meta", Strategies: []extract.Strategy{
				{Selector: "ul.camp-main__meta"},
				{Selector: "ul.camp-main_meta"},
			}},
			grades: extract.Chain{Field: "grades", Strategies: []extract.Strategy{
				{Selector: "div.camp-main__content p"},
				{Selector: "div.camp-main_content p"},
			}},
			description: extract.Chain{Field: "description", Strategies: []extract.Strategy{
				{Selector: "div.camp-main__content"},
				{Selector: "div.camp-main_content"},
			}},
			imageURL: extract.Chain{Field: "image_url", Strategies: []extract.Strategy{
				{Selector: "div.camp-main img", Attr: "src"},
			}},
		},
	}
}

func (s *Galileo) Name() string     { return "galileo" }
func (s *Galileo) Category() string { return "camps" }

// Listing walks region index → venue lists. A region whose venue list
// cannot be fetched is skipped; the source fails only when the region
// index itself is unreachable or empty.
func (s *Galileo) Listing(ctx context.Context, w Window) ([]RawItem, error) {
	regions, err := s.regions(ctx)
	if err != nil {
		return nil, err
	}
	if len(regions) == 0 {
		return nil, fmt.Errorf("no regions on index page")
	}

	var items []RawItem
	for _, r := range regions {
		venues, err := s.venues(ctx, r.url)
		if err != nil {
			logger.Warn("region skipped", logger.Fields{
				"source": s.Name(),
				"region": r.label,
				"url":    r.url,
			})
			continue
		}
		for _, venueURL := range venues {
			items = append(items, RawItem{
				URL:  venueURL,
				Meta: map[string]string{"region": r.label},
			})
		}
	}
	return items, nil
}

type galileoRegion struct {
	label string
	url   string
}

// regions reads the footer location index. The first footer container is
// the site-wide block and carries no region links.
func (s *Galileo) regions(ctx context.Context) ([]galileoRegion, error) {
	html, err := s.renderer.Open(ctx, s.baseURL, galileoRegionSelector)
	if err != nil {
		return nil, fmt.Errorf("rendering region index: %w", err)
	}
	doc, err := extract.Document(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	abs := extract.AbsoluteURL(s.baseURL)
	var regions []galileoRegion
	doc.Find(galileoRegionSelector).Each(func(i int, container *goquery.Selection) {
		if i == 0 {
			return
		}
		label := strings.TrimSpace(container.Find("button.btn").First().Text())
		label = strings.TrimSpace(strings.ReplaceAll(label, "Summer Camps", ""))

		container.Find("a").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			href = strings.TrimSpace(href)
			if href == "" {
				return
			}
			regions = append(regions, galileoRegion{label: label, url: abs(href)})
		})
	})
	return regions, nil
}

func (s *Galileo) venues(ctx context.Context, regionURL string) ([]string, error) {
	html, err := s.renderer.Open(ctx, regionURL, galileoVenueSelector)
	if err != nil {
		return nil, fmt.Errorf("rendering region page: %w", err)
	}
	doc, err := extract.Document(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	abs := extract.AbsoluteURL(s.baseURL)
	var venues []string
	doc.Find(galileoVenueSelector).Each(func(_ int, a *goquery.Selection) {
		if href, ok := a.Attr("href"); ok {
			venues = append(venues, abs(href))
		}
	})
	return venues, nil
}

// Parse yields the skeleton draft; all camp fields live on the venue page
// and arrive in Enrich.
func (s *Galileo) Parse(item RawItem) (*event.Draft, error) {
	if item.URL == "" {
		return nil, fmt.Errorf("%w: galileo item has no venue URL", extract.ErrBadInput)
	}
	return &event.Draft{
		Source:   s.Name(),
		Category: s.Category(),
		Location: event.Location{Country: item.Meta["region"]},
		EventURL: item.URL,
	}, nil
}

// Enrich renders the venue page and extracts the camp details: meta list
// (address then phone), the "Grades: ... Running from: ..." paragraph,
// description, and image.
func (s *Galileo) Enrich(ctx context.Context, d *event.Draft) error {
	html, err := s.renderer.Open(ctx, d.EventURL, galileoCampReady)
	if err != nil {
		return fmt.Errorf("rendering venue page: %w", err)
	}
	doc, err := extract.Document(strings.NewReader(html))
	if err != nil {
		return fmt.Errorf("venue parse: %w", err)
	}
	root := doc.Selection

	d.Name = s.camp.name.Resolve(root)
	d.Organization = s.camp.venue.Resolve(root)
	d.Description = s.camp.description.Resolve(root)
	d.ImageURL = s.camp.imageURL.Resolve(root)

	s.parseMeta(root, d)
	s.parseSchedule(root, d)
	return nil
}

// parseMeta reads the camp meta list: address first, phone second. Pages
// that drop the address render the phone as the only item.
func (s *Galileo) parseMeta(root *goquery.Selection, d *event.Draft) {
	var items []string
	for _, sel := range []string{"ul.camp-main__meta li", "ul.camp-main_meta li"} {
		root.Find(sel).Each(func(_ int, li *goquery.Selection) {
			if v := strings.TrimSpace(li.Text()); v != "" {
				items = append(items, v)
			}
		})
		if len(items) > 0 {
			break
		}
	}
	switch len(items) {
	case 0:
	case 1:
		d.Phone = items[0]
	default:
		d.Address = items[0]
		d.Phone = items[1]
	}
}

// parseSchedule splits the lead content paragraph into the grade range and
// the running dates.
func (s *Galileo) parseSchedule(root *goquery.Selection, d *event.Draft) {
	paragraph := s.camp.grades.Resolve(root)
	if paragraph == "" || !strings.Contains(paragraph, "Running from:") {
		return
	}
	parts := strings.SplitN(paragraph, "Running from:", 2)
	d.RawGrades = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(parts[0]), "Grades:"))
	d.RawDates = []string{strings.TrimSpace(parts[1])}
}
