package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pintuSINGH2000/sraping/internal/pipeline"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// WriteSummary writes the run summary in the specified format
func WriteSummary(w io.Writer, summary *pipeline.Summary, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, summary)
	case FormatText:
		return writeText(w, summary)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, summary *pipeline.Summary) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}

// writeText outputs a human-readable run report
func writeText(w io.Writer, summary *pipeline.Summary) error {
	fmt.Fprintf(w, "Run %s (%s)\n", summary.RunID, summary.Duration)

	for _, ss := range summary.Sources {
		if ss.Error != "" {
			fmt.Fprintf(w, "  %s: FAILED (%s)\n", ss.Source, ss.Error)
			continue
		}
		fmt.Fprintf(w, "  %s: listed %d, stored %d", ss.Source, ss.Listed, ss.Stored)
		if ss.SkippedItems > 0 {
			fmt.Fprintf(w, ", skipped %d", ss.SkippedItems)
		}
		if ss.EnrichFailures > 0 {
			fmt.Fprintf(w, ", enrich failures %d", ss.EnrichFailures)
		}
		fmt.Fprintln(w)
	}

	if len(summary.Events) == 0 {
		fmt.Fprintln(w, "No events stored.")
		return nil
	}
	fmt.Fprintf(w, "\nTotal: %d events across %d sources\n",
		len(summary.Events), len(summary.Sources)-summary.FailedSources)
	return nil
}
