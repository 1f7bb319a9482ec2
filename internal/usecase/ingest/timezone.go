package ingest

import (
	"strconv"
	"strings"
	"time"
)

// Deadline date layouts accepted from upstream records. Anything else fails
// normalization and the event is dropped.
var deadlineLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

const secondsPerHour = 3600

// ResolveDeadline parses a raw deadline date string together with its
// timezone designator into an absolute instant.
//
// The timezone designator is resolved with the following precedence
// (surrounding whitespace trimmed, AoE/UTC matching case-insensitive):
//  1. empty: UTC
//  2. "AoE" (Anywhere on Earth): fixed offset UTC-12
//  3. "UTC<N>" with a signed integer offset: fixed offset UTC+N
//  4. anything else: IANA zone database name, falling back to UTC when the
//     name does not resolve
//
// The second return value is false when the date string does not match one
// of the accepted layouts; a false result means the event must be dropped.
// ResolveDeadline is a pure function and safe for concurrent use.
func ResolveDeadline(dateText, timezoneSpec string) (time.Time, bool) {
	if strings.TrimSpace(dateText) == "" {
		return time.Time{}, false
	}

	loc := resolveLocation(timezoneSpec)
	for _, layout := range deadlineLayouts {
		if t, err := time.ParseInLocation(layout, dateText, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// resolveLocation maps a timezone designator to a *time.Location.
// It never fails: unresolvable designators fall back to UTC.
//
// Fixed offsets are built with time.FixedZone, whose offset argument is
// seconds east of UTC: "UTC-12" becomes -12*3600 directly. Zone databases
// that express offsets as "Etc/GMT+12" invert the sign instead; the mirror
// tests in timezone_test.go pin the behavior either way.
func resolveLocation(spec string) *time.Location {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return time.UTC
	}

	upper := strings.ToUpper(spec)
	if upper == "AOE" {
		return time.FixedZone("UTC-12", -12*secondsPerHour)
	}

	if strings.HasPrefix(upper, "UTC") {
		offsetStr := upper[len("UTC"):]
		if offsetStr == "" {
			return time.UTC
		}
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			name := "UTC" + offsetStr
			if !strings.HasPrefix(offsetStr, "+") && !strings.HasPrefix(offsetStr, "-") {
				name = "UTC+" + offsetStr
			}
			return time.FixedZone(name, offset*secondsPerHour)
		}
		// "UTC<garbage>" falls through to the zone database lookup below.
	}

	if loc, err := time.LoadLocation(spec); err == nil {
		return loc
	}
	return time.UTC
}
