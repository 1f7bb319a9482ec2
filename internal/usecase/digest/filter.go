// Package digest provides the deadline window filter: given the aggregated
// conference list and a lookahead window, it selects the conferences with
// at least one upcoming deadline and orders them by urgency.
package digest

import (
	"sort"
	"time"

	"deadline-digest/internal/domain/entity"
)

const day = 24 * time.Hour

// UpcomingDeadline is one deadline inside the active window, annotated with
// the whole number of days remaining. DaysUntil is never negative and never
// exceeds the requested window.
type UpcomingDeadline struct {
	entity.DeadlineEvent
	DaysUntil int
}

// Upcoming pairs one conference with the subsequence of its deadlines that
// fall inside the active window. Produced fresh on every filter invocation
// and never mutated.
type Upcoming struct {
	Conference *entity.Conference
	Deadlines  []UpcomingDeadline
}

// MinDaysUntil returns the smallest days-remaining value among the included
// deadlines. It assumes Deadlines is non-empty, which FilterUpcoming
// guarantees for every result it returns.
func (u Upcoming) MinDaysUntil() int {
	min := u.Deadlines[0].DaysUntil
	for _, d := range u.Deadlines[1:] {
		if d.DaysUntil < min {
			min = d.DaysUntil
		}
	}
	return min
}

// FilterUpcoming selects the conferences having at least one deadline within
// the next windowDays days of now, annotates each included deadline with the
// days remaining, and sorts the result ascending by each conference's
// nearest deadline. The sort is stable: ties preserve aggregation order.
//
// A deadline is included iff it is not in the past (days remaining >= 0,
// where a deadline later today counts as 0) and not beyond the window
// boundary: an instant exactly windowDays*24h from now is included, one
// second later is not.
//
// now is an explicit parameter rather than an ambient clock so that callers
// and tests control the reference instant; it is converted to UTC, as are
// all deadline instants, before comparison.
func FilterUpcoming(confs []*entity.Conference, windowDays int, now time.Time) []Upcoming {
	now = now.UTC()
	window := time.Duration(windowDays) * day

	var results []Upcoming
	for _, conf := range confs {
		var included []UpcomingDeadline
		for _, dl := range conf.Deadlines {
			until := dl.At.UTC().Sub(now)
			days := daysIn(until)
			if days < 0 || until > window {
				continue
			}
			included = append(included, UpcomingDeadline{DeadlineEvent: dl, DaysUntil: days})
		}
		if len(included) > 0 {
			results = append(results, Upcoming{Conference: conf, Deadlines: included})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MinDaysUntil() < results[j].MinDaysUntil()
	})
	return results
}

// TotalDeadlines returns the number of included deadlines across all results.
func TotalDeadlines(results []Upcoming) int {
	total := 0
	for _, r := range results {
		total += len(r.Deadlines)
	}
	return total
}

// daysIn converts a duration to whole days using floor division, so a
// deadline 30.9 days out is 30 days until and one an hour in the past is -1.
// Plain integer division truncates toward zero, which would misclassify
// just-passed deadlines as due today.
func daysIn(d time.Duration) int {
	days := int(d / day)
	if d < 0 && d%day != 0 {
		days--
	}
	return days
}
