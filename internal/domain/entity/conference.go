// Package entity defines the core domain entities for the application.
// It contains the fundamental business objects such as Conference and
// DeadlineEvent, along with their validation rules and domain-specific errors.
package entity

import "time"

// Source tags identify which upstream schema a conference record came from.
// The two upstreams use different field names for equivalent concepts, and
// the tag records which reconciliation rules were applied at load time.
const (
	SourceAI       = "ai"
	SourceSecurity = "security"
)

// DeadlineEvent represents a single resolved deadline of a conference.
//
// Only events whose date and timezone resolved to an absolute instant exist
// in the system; events that failed normalization are dropped during
// extraction and never propagate with a zero timestamp.
type DeadlineEvent struct {
	// Kind labels the deadline purpose, e.g. "submission", "abstract",
	// "camera_ready", or a positional "deadline_N" when the source schema
	// does not distinguish roles.
	Kind string

	// RawText is the original date string as it appeared upstream,
	// retained for diagnostics and display.
	RawText string

	// Timezone is the original timezone designator as given upstream
	// (may be empty when the record relied on the default).
	Timezone string

	// At is the absolute, timezone-resolved instant of the deadline.
	At time.Time
}

// Conference represents one conference record after schema normalization.
//
// A Conference is constructed once per raw record at load time and is
// immutable afterwards: the aggregator owns the result list and the filter
// consumes it read-only. Name+Year is not unique across sources; no
// deduplication is performed.
type Conference struct {
	Source   string // SourceAI or SourceSecurity
	Name     string
	Year     int
	FullName string
	Link     string

	// Location. Place is reconciled from City+Country when the record
	// carries no explicit place field.
	City    string
	Country string
	Place   string

	// DateRange is the human-readable conference date string, opaque to
	// the core.
	DateRange string

	Tags    []string
	HIndex  float64
	Comment string

	// Deadlines holds only events with a resolved instant, in order of
	// appearance in the source record. May be empty.
	Deadlines []DeadlineEvent
}

// DisplayName returns the full conference name when available, falling back
// to the short name.
func (c *Conference) DisplayName() string {
	if c.FullName != "" {
		return c.FullName
	}
	return c.Name
}

// Validate checks the invariants a constructed Conference must satisfy.
func (c *Conference) Validate() error {
	if c.Source != SourceAI && c.Source != SourceSecurity {
		return &ValidationError{Field: "Source", Message: "unknown source tag: " + c.Source}
	}
	if c.Name == "" {
		return &ValidationError{Field: "Name", Message: "display name is required"}
	}
	for _, d := range c.Deadlines {
		if d.At.IsZero() {
			return &ValidationError{Field: "Deadlines", Message: "deadline without resolved instant"}
		}
	}
	return nil
}
