// Package fixtures provides reusable test data generators for integration
// tests. This package eliminates test data duplication and ensures
// consistent conference records across different test suites.
package fixtures

import (
	"fmt"
	"strings"
	"time"
)

// ConferenceOptions configures a generated conference record.
type ConferenceOptions struct {
	// Name is the short conference identifier (e.g. "icml")
	Name string

	// Year is the conference year
	Year int

	// Deadline is the submission deadline instant; it is rendered in the
	// "2006-01-02 15:04:05" layout the upstream files use
	Deadline time.Time

	// Timezone is the record's timezone designator (e.g. "UTC-12", "AoE",
	// "America/New_York"); empty omits the field
	Timezone string

	// Place is the conference location; empty omits the field
	Place string

	// Link is the conference website; empty omits the field
	Link string
}

// AIConferenceYAML renders one conference record in the AI deadlines schema:
// a mapping with a typed deadlines list.
//
// Example:
//
//	doc := fixtures.AIConferenceYAML(fixtures.ConferenceOptions{
//	    Name:     "icml",
//	    Year:     2026,
//	    Deadline: time.Date(2026, 1, 28, 23, 59, 0, 0, time.UTC),
//	    Timezone: "AoE",
//	})
func AIConferenceYAML(opts ConferenceOptions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "title: %s\n", opts.Name)
	fmt.Fprintf(&b, "year: %d\n", opts.Year)
	if opts.Link != "" {
		fmt.Fprintf(&b, "link: %s\n", opts.Link)
	}
	if opts.Timezone != "" {
		fmt.Fprintf(&b, "timezone: %s\n", opts.Timezone)
	}
	if opts.Place != "" {
		fmt.Fprintf(&b, "place: %s\n", opts.Place)
	}
	b.WriteString("deadlines:\n")
	fmt.Fprintf(&b, "  - type: submission\n    date: '%s'\n", opts.Deadline.Format("2006-01-02 15:04:05"))
	return b.String()
}

// SecurityConferenceYAML renders one conference record in the security
// deadlines schema: a sequence element with positional deadline strings.
func SecurityConferenceYAML(opts ConferenceOptions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- name: %s\n", opts.Name)
	fmt.Fprintf(&b, "  year: %d\n", opts.Year)
	if opts.Link != "" {
		fmt.Fprintf(&b, "  link: %s\n", opts.Link)
	}
	if opts.Timezone != "" {
		fmt.Fprintf(&b, "  timezone: %s\n", opts.Timezone)
	}
	if opts.Place != "" {
		fmt.Fprintf(&b, "  place: %s\n", opts.Place)
	}
	b.WriteString("  deadline:\n")
	fmt.Fprintf(&b, "    - '%s'\n", opts.Deadline.Format("2006-01-02 15:04:05"))
	return b.String()
}

// SecurityListYAML concatenates security records into one list document.
func SecurityListYAML(records ...ConferenceOptions) string {
	var b strings.Builder
	for _, r := range records {
		b.WriteString(SecurityConferenceYAML(r))
	}
	return b.String()
}

// UpcomingDeadline returns an instant the given number of days from now,
// useful for records that must fall inside a lookahead window regardless of
// when the test runs.
func UpcomingDeadline(daysFromNow int) time.Time {
	return time.Now().UTC().Add(time.Duration(daysFromNow) * 24 * time.Hour)
}
