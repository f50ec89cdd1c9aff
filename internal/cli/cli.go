package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pintuSINGH2000/sraping/internal/config"
	"github.com/pintuSINGH2000/sraping/internal/logger"
	"github.com/pintuSINGH2000/sraping/internal/pipeline"
	"github.com/pintuSINGH2000/sraping/internal/server"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagSources string
	flagFormat  string
	flagDryRun  bool
	flagWorkers int
	flagVerbose bool

	// -1 means "not passed"; serve has no window flags and must not
	// override the environment.
	flagLimitDays = -1
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity-scraper",
		Short: "Collect children's activity and camp listings into one store",
		Long: `Collects listings of children's activities and camps from multiple
independent websites, normalizes them into one canonical record schema,
and upserts them into a shared store.`,
	}

	cmd.AddCommand(newRunCmd(), newServeCmd())
	return cmd
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one pipeline pass for the current window",
		RunE:  runOnce,
	}
	cmd.Flags().StringVar(&flagSources, "sources", "", "Comma-separated source names (default: all configured)")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Use the in-memory sink instead of Postgres")
	cmd.Flags().IntVar(&flagLimitDays, "limit-days", -1, "Trim the window to its first N days (overrides WINDOW_LIMIT_DAYS)")
	cmd.Flags().IntVar(&flagWorkers, "workers", 0, "Enrichment worker cap (overrides ENRICH_WORKERS)")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP trigger surface",
		RunE:  runServe,
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.Load()

	if flagDryRun {
		cfg.DryRun = true
	}
	if flagLimitDays >= 0 {
		cfg.WindowLimitDays = flagLimitDays
	}
	if flagWorkers > 0 {
		cfg.EnrichWorkers = flagWorkers
	}
	if flagSources != "" {
		cfg.Sources = nil
		for _, s := range strings.Split(flagSources, ",") {
			if s = strings.TrimSpace(s); s != "" {
				cfg.Sources = append(cfg.Sources, s)
			}
		}
	}
	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runOnce(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	orch, closeSink, err := buildOrchestrator(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSink()

	summary, err := orch.Run(ctx, pipeline.RunConfig{
		Window:        cfg.Window(time.Now().UTC()),
		Sources:       cfg.Sources,
		EnrichWorkers: cfg.EnrichWorkers,
		PriceIndex:    cfg.PriceIndex,
	})
	if err != nil {
		if summary != nil {
			_ = WriteSummary(os.Stdout, summary, OutputFormat(flagFormat))
		}
		return fmt.Errorf("running pipeline: %w", err)
	}

	return WriteSummary(os.Stdout, summary, OutputFormat(flagFormat))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	orch, closeSink, err := buildOrchestrator(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSink()

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      server.New(orch, cfg).Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 10 * time.Minute, // a full run answers the request
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", logger.Fields{"addr": cfg.HTTPAddr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
