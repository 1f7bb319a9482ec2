package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ingestion metrics track conference loading and deadline extraction
var (
	// ConferencesLoadedTotal counts conference records successfully loaded per source
	ConferencesLoadedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conferences_loaded_total",
			Help: "Total number of conference records loaded",
		},
		[]string{"source"},
	)

	// ConferenceRecordsSkippedTotal counts malformed records skipped during loading
	ConferenceRecordsSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conference_records_skipped_total",
			Help: "Total number of malformed conference records skipped",
		},
		[]string{"source"},
	)

	// DeadlinesExtractedTotal counts deadline events that resolved to an instant
	DeadlinesExtractedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deadlines_extracted_total",
			Help: "Total number of deadline events extracted with a resolved instant",
		},
		[]string{"source"},
	)

	// DeadlinesDroppedTotal counts deadline entries dropped because their
	// date or timezone did not normalize. Dropped entries do not appear in
	// any output; this counter is the only visibility into them.
	DeadlinesDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deadlines_dropped_total",
			Help: "Total number of deadline entries dropped as unparseable",
		},
		[]string{"source"},
	)
)

// Digest metrics track filter runs and notification dispatch
var (
	// DigestRunsTotal counts digest batch runs by outcome
	DigestRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digest_runs_total",
			Help: "Total number of digest batch runs",
		},
		[]string{"status"}, // status: sent, empty, error
	)

	// DigestRunDuration measures the duration of one digest batch run
	DigestRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "digest_run_duration_seconds",
			Help:    "Time taken for one digest batch run",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
	)

	// UpcomingDeadlines tracks the number of deadlines inside the window
	// as of the last run
	UpcomingDeadlines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "upcoming_deadlines",
			Help: "Number of deadlines inside the lookahead window at the last run",
		},
	)

	// NotificationsSentTotal counts notification attempts per channel
	NotificationsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Total number of notification send attempts",
		},
		[]string{"channel", "status"},
	)
)

// Updater metrics track upstream fetches and data-file persistence
var (
	// UpstreamFetchTotal counts upstream fetch attempts by source and result
	UpstreamFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_fetch_total",
			Help: "Total number of upstream fetch attempts",
		},
		[]string{"source", "status"},
	)

	// UpstreamFetchDuration measures upstream fetch duration per source
	UpstreamFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_fetch_duration_seconds",
			Help:    "Time taken to fetch one upstream document",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"source"},
	)

	// DataFileUpdatesTotal counts data-file save operations by result
	DataFileUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "data_file_updates_total",
			Help: "Total number of conference data file updates",
		},
		[]string{"file", "status"},
	)
)
