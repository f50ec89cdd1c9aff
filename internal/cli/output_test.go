package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pintuSINGH2000/sraping/internal/event"
	"github.com/pintuSINGH2000/sraping/internal/pipeline"
)

func sampleSummary() *pipeline.Summary {
	return &pipeline.Summary{
		RunID:    "run-1",
		Duration: "4.2s",
		Sources: []pipeline.SourceSummary{
			{Source: "kidsout", Listed: 3, Stored: 2, SkippedItems: 1},
			{Source: "galileo", Error: "region index unreachable"},
		},
		FailedSources: 1,
		Events: []*event.Event{
			{Name: "Chess Camp", EventURL: "https://a.test/1"},
			{Name: "Pottery Workshop", EventURL: "https://a.test/2"},
		},
	}
}

func TestWriteSummary_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, sampleSummary(), FormatText); err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"run-1",
		"kidsout: listed 3, stored 2, skipped 1",
		"galileo: FAILED (region index unreachable)",
		"Total: 2 events",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSummary_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, sampleSummary(), FormatJSON); err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}

	var decoded pipeline.Summary
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded.RunID != "run-1" || len(decoded.Events) != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestWriteSummary_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, sampleSummary(), "yaml"); err == nil {
		t.Fatal("WriteSummary() expected error for unknown format")
	}
}

func TestWriteSummary_NoEvents(t *testing.T) {
	var buf bytes.Buffer
	s := &pipeline.Summary{RunID: "run-2", Duration: "1s"}
	if err := WriteSummary(&buf, s, FormatText); err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No events stored.") {
		t.Errorf("output = %q", buf.String())
	}
}
