// Package ingest provides the use cases for loading heterogeneous conference
// records and normalizing their deadlines into absolute instants.
//
// The package implements three layers, leaves first:
//   - timezone.go: date + timezone designator resolution to an instant
//   - extract.go: per-record deadline extraction with shape dispatch
//   - service.go: aggregation of labeled source collections into a uniform
//     entity list
//
// All operations are pure computation over in-memory data: no I/O, no shared
// mutable state, safe to invoke concurrently.
package ingest

import (
	"context"
	"log/slog"

	"gopkg.in/yaml.v3"

	"deadline-digest/internal/domain/entity"
	"deadline-digest/internal/observability/metrics"
)

// Collection is one labeled batch of raw records: a source tag and the
// parsed YAML document root supplied by the source loader.
type Collection struct {
	Tag  string
	Root *yaml.Node
}

// Stats summarizes one aggregation run. DeadlinesDropped is the observable
// count behind the silent-drop policy: unparseable deadline entries vanish
// from the output but are counted here and in Prometheus.
type Stats struct {
	RecordsLoaded    int
	RecordsSkipped   int
	DeadlinesKept    int
	DeadlinesDropped int
}

// Service aggregates raw source collections into conference entities.
type Service struct {
	logger *slog.Logger
}

// NewService creates a new ingest Service.
func NewService(logger *slog.Logger) *Service {
	return &Service{logger: logger}
}

// LoadAll parses all collections into a uniform entity list.
//
// Error isolation rules:
//   - a collection whose document is neither a mapping nor a sequence
//     contributes zero entities, the rest are still processed
//   - a malformed record inside a sequence is logged and skipped, the batch
//     continues
//   - records without any recognized deadline field are retained with zero
//     deadlines
//
// The returned slice preserves source order: all records of the first
// collection, then the second, each in order of appearance. No
// deduplication is performed across sources.
func (s *Service) LoadAll(ctx context.Context, collections []Collection) ([]*entity.Conference, Stats) {
	var (
		confs []*entity.Conference
		stats Stats
	)

	for _, col := range collections {
		select {
		case <-ctx.Done():
			return confs, stats
		default:
		}

		loaded := 0
		for _, node := range recordNodes(col.Root) {
			raw, err := decodeRecord(node)
			if err != nil {
				stats.RecordsSkipped++
				metrics.RecordRecordSkipped(col.Tag)
				s.logger.Warn("skipping malformed conference record",
					slog.String("source", col.Tag),
					slog.Int("line", node.Line),
					slog.Any("error", err))
				continue
			}

			conf, dropped := buildConference(raw, col.Tag)
			if err := conf.Validate(); err != nil {
				stats.RecordsSkipped++
				metrics.RecordRecordSkipped(col.Tag)
				s.logger.Warn("skipping invalid conference record",
					slog.String("source", col.Tag),
					slog.Int("line", node.Line),
					slog.Any("error", err))
				continue
			}
			confs = append(confs, conf)
			loaded++
			stats.RecordsLoaded++
			stats.DeadlinesKept += len(conf.Deadlines)
			stats.DeadlinesDropped += dropped

			metrics.RecordDeadlinesExtracted(col.Tag, len(conf.Deadlines))
			metrics.RecordDeadlinesDropped(col.Tag, dropped)
			if dropped > 0 {
				s.logger.Debug("dropped unparseable deadline entries",
					slog.String("source", col.Tag),
					slog.String("conference", conf.Name),
					slog.Int("dropped", dropped))
			}
		}

		metrics.RecordConferencesLoaded(col.Tag, loaded)
		s.logger.Info("source aggregated",
			slog.String("source", col.Tag),
			slog.Int("records", loaded))
	}

	return confs, stats
}
