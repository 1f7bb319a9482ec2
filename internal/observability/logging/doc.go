// Package logging builds the slog loggers shared by the notifier and
// updater binaries.
//
// Both binaries call NewLogger once at startup; the notifier additionally
// tags per-run entries with WithRunID so a single digest run can be traced
// from data load through channel delivery.
package logging
