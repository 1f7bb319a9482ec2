package digest

import (
	"fmt"
	"strings"
	"time"
)

// displayTimeLayout is how deadline instants are shown to humans.
const displayTimeLayout = "2006-01-02 15:04 MST"

// FormatDaysUntil renders the days-remaining annotation: "TODAY" for a
// deadline due within the current day, "in N day(s)" otherwise.
func FormatDaysUntil(days int) string {
	if days <= 0 {
		return "TODAY"
	}
	if days == 1 {
		return "in 1 day"
	}
	return fmt.Sprintf("in %d days", days)
}

// HumanizeKind turns a deadline kind label into display form:
// "camera_ready" becomes "Camera Ready".
func HumanizeKind(kind string) string {
	words := strings.Split(strings.ReplaceAll(kind, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// FormatDeadlineInstant renders a deadline instant in the display timezone
// (UTC) for summaries and notifications.
func FormatDeadlineInstant(at time.Time) string {
	return at.UTC().Format(displayTimeLayout)
}

// Summary formats the filter output as a plain-text report, one block per
// conference in result order. It is used for console output and as the
// fallback body when no notification channel is configured.
func Summary(results []Upcoming) string {
	if len(results) == 0 {
		return "No upcoming deadlines."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d conferences with upcoming deadlines:\n", len(results))

	for _, r := range results {
		conf := r.Conference
		fmt.Fprintf(&b, "\n%s (%d)\n", conf.DisplayName(), conf.Year)
		if conf.Place != "" {
			fmt.Fprintf(&b, "  Location: %s\n", conf.Place)
		}
		if conf.DateRange != "" {
			fmt.Fprintf(&b, "  Conference: %s\n", conf.DateRange)
		}
		if conf.Link != "" {
			fmt.Fprintf(&b, "  Link: %s\n", conf.Link)
		}
		if len(conf.Tags) > 0 {
			fmt.Fprintf(&b, "  Tags: %s\n", strings.Join(conf.Tags, ", "))
		}

		b.WriteString("  Deadlines:\n")
		for _, dl := range r.Deadlines {
			fmt.Fprintf(&b, "    - %s: %s (%s)\n",
				HumanizeKind(dl.Kind),
				FormatDeadlineInstant(dl.At),
				FormatDaysUntil(dl.DaysUntil))
		}

		if conf.Comment != "" {
			fmt.Fprintf(&b, "  Note: %s\n", conf.Comment)
		}
	}

	return b.String()
}
