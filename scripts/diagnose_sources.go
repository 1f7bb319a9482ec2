// Command diagnose_sources inspects the local conference data files and
// reports per-source parsing health: how many records load, how many
// deadline entries survive normalization, and the next upcoming deadline.
//
// Usage:
//
//	go run scripts/diagnose_sources.go [data_dir]
//
// Output is a JSON array so results can be piped into jq.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"deadline-digest/internal/infra/source"
	"deadline-digest/internal/usecase/digest"
	"deadline-digest/internal/usecase/ingest"
)

// SourceDiagnostic is the diagnostic result for a single data file.
type SourceDiagnostic struct {
	Source           string `json:"source"`
	Status           string `json:"status"` // "OK", "EMPTY", "MISSING"
	Records          int    `json:"records"`
	RecordsSkipped   int    `json:"records_skipped"`
	Deadlines        int    `json:"deadlines"`
	DeadlinesDropped int    `json:"deadlines_dropped"`
	NextConference   string `json:"next_conference,omitempty"`
	NextDeadline     string `json:"next_deadline,omitempty"`
}

func main() {
	dataDir := "data"
	if len(os.Args) > 1 {
		dataDir = os.Args[1]
	}

	// Parse warnings go to stderr so stdout stays valid JSON.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	loader := source.NewLoader(dataDir, logger)
	service := ingest.NewService(logger)

	collections := loader.LoadCollections()
	loaded := make(map[string]bool, len(collections))
	for _, col := range collections {
		loaded[col.Tag] = true
	}

	var diagnostics []SourceDiagnostic
	for _, col := range collections {
		confs, stats := service.LoadAll(context.Background(), []ingest.Collection{col})

		diag := SourceDiagnostic{
			Source:           col.Tag,
			Status:           "OK",
			Records:          stats.RecordsLoaded,
			RecordsSkipped:   stats.RecordsSkipped,
			Deadlines:        stats.DeadlinesKept,
			DeadlinesDropped: stats.DeadlinesDropped,
		}
		if stats.RecordsLoaded == 0 {
			diag.Status = "EMPTY"
		}

		// Next deadline within a year, if any
		if upcoming := digest.FilterUpcoming(confs, 365, time.Now()); len(upcoming) > 0 {
			diag.NextConference = upcoming[0].Conference.Name
			if len(upcoming[0].Deadlines) > 0 {
				diag.NextDeadline = upcoming[0].Deadlines[0].At.UTC().Format("2006-01-02 15:04 MST")
			}
		}

		diagnostics = append(diagnostics, diag)
	}

	// Files the loader skipped entirely (missing or unparseable)
	for _, tag := range []string{"ai", "security"} {
		if !loaded[tag] {
			diagnostics = append(diagnostics, SourceDiagnostic{Source: tag, Status: "MISSING"})
		}
	}

	out, err := json.MarshalIndent(diagnostics, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode diagnostics: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
