package cli

import (
	"context"
	"fmt"

	"github.com/pintuSINGH2000/sraping/internal/browser"
	"github.com/pintuSINGH2000/sraping/internal/config"
	"github.com/pintuSINGH2000/sraping/internal/fetch"
	"github.com/pintuSINGH2000/sraping/internal/geocode"
	"github.com/pintuSINGH2000/sraping/internal/logger"
	"github.com/pintuSINGH2000/sraping/internal/pipeline"
	"github.com/pintuSINGH2000/sraping/internal/sink"
	"github.com/pintuSINGH2000/sraping/internal/source"
)

// buildOrchestrator assembles the full pipeline from configuration. The
// returned closer releases the sink; callers defer it.
func buildOrchestrator(ctx context.Context, cfg *config.Config) (*pipeline.Orchestrator, func(), error) {
	deps := source.Deps{
		Fetcher: fetch.New(cfg.UserAgent),
		Renderer: &browser.Chrome{
			UserAgent:  cfg.UserAgent,
			UserAgents: cfg.UserAgents(),
			Headless:   cfg.Headless,
			Wait:       cfg.RenderWait,
		},
	}

	names := cfg.Sources
	if len(names) == 0 {
		names = source.Names()
	}
	adapters := make([]source.Adapter, 0, len(names))
	for _, name := range names {
		ad, err := source.New(name, deps)
		if err != nil {
			return nil, nil, fmt.Errorf("building source %s: %w", name, err)
		}
		adapters = append(adapters, ad)
	}

	var sk sink.Sink
	if cfg.DryRun {
		logger.Info("dry run, using in-memory sink", nil)
		sk = sink.NewMemory()
	} else {
		pg, err := sink.NewPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("building sink: %w", err)
		}
		sk = pg
	}
	closer := func() {
		if err := sk.Close(context.Background()); err != nil {
			logger.Warn("closing sink", logger.Fields{"error": err.Error()})
		}
	}

	var geo geocode.Geocoder
	if cfg.GeocodeEnabled {
		geo = geocode.NewNominatim(cfg.UserAgent)
	}

	return pipeline.New(adapters, sk, geo), closer, nil
}
