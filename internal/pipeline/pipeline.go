// Package pipeline drives one extraction run across the configured
// sources.
//
// Failure isolation follows a strict ladder: field misses become
// sentinels, item failures yield partial records (an item is dropped only
// when its identity URL is unrecoverable), a failed listing skips that
// source alone, and only misconfiguration — or every source failing — ends
// the run. Everything recovered locally is counted and surfaced in the run
// summary rather than silently absorbed.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pintuSINGH2000/sraping/internal/event"
	"github.com/pintuSINGH2000/sraping/internal/geocode"
	"github.com/pintuSINGH2000/sraping/internal/logger"
	"github.com/pintuSINGH2000/sraping/internal/normalize"
	"github.com/pintuSINGH2000/sraping/internal/sink"
	"github.com/pintuSINGH2000/sraping/internal/source"
)

const defaultEnrichWorkers = 4

// RunConfig is the per-invocation configuration. Nothing here is process
// global; two runs with different configs can share one Orchestrator.
type RunConfig struct {
	// Window bounds discovery for window-driven sources.
	Window source.Window

	// Sources restricts the run to a subset of the orchestrator's
	// adapters. Empty means all of them.
	Sources []string

	// EnrichWorkers caps concurrent detail fetches per source. Listing
	// stays strictly ordered regardless.
	EnrichWorkers int

	// PriceIndex selects which numeric token of a tiered price wins.
	PriceIndex int
}

func (c RunConfig) validate() error {
	if c.Window.Start.IsZero() || c.Window.End.IsZero() {
		return errors.New("run window is unset")
	}
	if !c.Window.Start.Before(c.Window.End) {
		return fmt.Errorf("run window start %s is not before end %s",
			c.Window.Start.Format("2006-01-02"), c.Window.End.Format("2006-01-02"))
	}
	if c.EnrichWorkers < 0 {
		return fmt.Errorf("enrich workers must be non-negative, got %d", c.EnrichWorkers)
	}
	return nil
}

// SourceSummary reports one source's outcome within a run.
type SourceSummary struct {
	Source         string `json:"source"`
	Listed         int    `json:"listed"`
	Stored         int    `json:"stored"`
	SkippedItems   int    `json:"skipped_items"`
	EnrichFailures int    `json:"enrich_failures"`
	Error          string `json:"error,omitempty"`
}

// Summary is the run report handed back to the trigger surface.
type Summary struct {
	RunID         string          `json:"run_id"`
	StartedAt     time.Time       `json:"started_at"`
	Duration      string          `json:"duration"`
	Sources       []SourceSummary `json:"sources"`
	FailedSources int             `json:"failed_sources"`
	Events        []*event.Event  `json:"events"`
}

// Orchestrator wires adapters, normalization, geocoding, and the sink into
// one runnable pipeline.
type Orchestrator struct {
	adapters []source.Adapter
	sink     sink.Sink
	geo      geocode.Geocoder
}

// New creates an Orchestrator. The geocoder may be nil to disable location
// enrichment.
func New(adapters []source.Adapter, sk sink.Sink, geo geocode.Geocoder) *Orchestrator {
	return &Orchestrator{adapters: adapters, sink: sk, geo: geo}
}

// Run executes one pass. It returns an error only for misconfiguration,
// a grade-table defect, or when every selected source failed; individual
// source and item failures are reported through the summary.
func (o *Orchestrator) Run(ctx context.Context, cfg RunConfig) (*Summary, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid run config: %w", err)
	}

	adapters, err := o.selected(cfg.Sources)
	if err != nil {
		return nil, err
	}

	started := time.Now().UTC()
	summary := &Summary{
		RunID:     uuid.NewString(),
		StartedAt: started,
		Events:    make([]*event.Event, 0),
	}

	norm := normalize.Normalizer{
		Year:       cfg.Window.Year(),
		PriceIndex: cfg.PriceIndex,
	}

	for _, ad := range adapters {
		ss, fatal := o.runSource(ctx, ad, cfg, norm, summary)
		summary.Sources = append(summary.Sources, ss)
		if ss.Error != "" {
			summary.FailedSources++
		}
		if fatal != nil {
			return nil, fatal
		}
	}

	summary.Duration = time.Since(started).String()

	if len(adapters) > 0 && summary.FailedSources == len(adapters) {
		return summary, fmt.Errorf("all %d sources failed", len(adapters))
	}
	return summary, nil
}

func (o *Orchestrator) selected(names []string) ([]source.Adapter, error) {
	if len(names) == 0 {
		return o.adapters, nil
	}
	byName := make(map[string]source.Adapter, len(o.adapters))
	for _, ad := range o.adapters {
		byName[ad.Name()] = ad
	}
	selected := make([]source.Adapter, 0, len(names))
	for _, name := range names {
		ad, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown source %q", name)
		}
		selected = append(selected, ad)
	}
	return selected, nil
}

// runSource processes one source end to end. The second return value is
// non-nil only for fail-fast configuration defects (unknown grade label).
func (o *Orchestrator) runSource(ctx context.Context, ad source.Adapter, cfg RunConfig, norm normalize.Normalizer, summary *Summary) (SourceSummary, error) {
	ss := SourceSummary{Source: ad.Name()}

	items, err := ad.Listing(ctx, cfg.Window)
	if err != nil {
		ss.Error = err.Error()
		logger.Error("listing failed, source skipped", logger.Fields{
			"source": ad.Name(),
		}, err)
		return ss, nil
	}
	ss.Listed = len(items)

	drafts := make([]*event.Draft, 0, len(items))
	for _, item := range items {
		d, err := ad.Parse(item)
		if err != nil {
			ss.SkippedItems++
			logger.Warn("item parse failed", logger.Fields{
				"source": ad.Name(),
				"url":    item.URL,
			})
			continue
		}
		drafts = append(drafts, d)
	}

	if enricher, ok := ad.(source.Enricher); ok {
		ss.EnrichFailures = o.enrichAll(ctx, ad.Name(), enricher, drafts, cfg.EnrichWorkers)
	}

	for _, d := range drafts {
		ev, err := norm.Record(ctx, o.geo, d)
		if err != nil {
			var gradeErr *normalize.UnknownGradeError
			if errors.As(err, &gradeErr) {
				// Closed-table defect: this is misconfiguration, not
				// missing data, and the run must not paper over it.
				ss.Error = err.Error()
				return ss, fmt.Errorf("source %s: %w", ad.Name(), err)
			}
			ss.SkippedItems++
			logger.Warn("item dropped", logger.Fields{
				"source": ad.Name(),
			})
			continue
		}
		if err := o.sink.Upsert(ctx, ad.Category(), ev); err != nil {
			ss.SkippedItems++
			logger.Error("upsert failed", logger.Fields{
				"source": ad.Name(),
				"url":    ev.EventURL,
			}, err)
			continue
		}
		ss.Stored++
		summary.Events = append(summary.Events, ev)
	}

	logger.Info("source finished", logger.Fields{
		"source":  ad.Name(),
		"listed":  ss.Listed,
		"stored":  ss.Stored,
		"skipped": ss.SkippedItems,
	})
	return ss, nil
}

// enrichAll runs the detail phase under a bounded worker cap. Detail
// fetches are independent and read-only, so their order does not matter;
// final output order is preserved because drafts are finalized afterwards
// in listing order. A failed enrich leaves the draft at its defaults.
func (o *Orchestrator) enrichAll(ctx context.Context, name string, enricher source.Enricher, drafts []*event.Draft, workers int) int {
	if workers <= 0 {
		workers = defaultEnrichWorkers
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures int
	)
	sem := make(chan struct{}, workers)

	for _, d := range drafts {
		wg.Add(1)
		sem <- struct{}{}
		go func(d *event.Draft) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := enricher.Enrich(ctx, d); err != nil {
				mu.Lock()
				failures++
				mu.Unlock()
				logger.Warn("enrich failed, keeping partial record", logger.Fields{
					"source": name,
					"url":    d.EventURL,
				})
			}
		}(d)
	}
	wg.Wait()
	return failures
}
