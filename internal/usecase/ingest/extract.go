package ingest

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"deadline-digest/internal/domain/entity"
)

const (
	// defaultTimezone applies when neither the deadline item nor the record
	// carries a timezone designator. Deadlines are conventionally Anywhere
	// on Earth, i.e. UTC-12.
	defaultTimezone = "UTC-12"

	// kindSubmission labels the sole deadline of single-deadline records.
	kindSubmission = "submission"
)

// extractDeadlines produces the ordered deadline events of one raw record,
// along with the number of entries dropped because their date or timezone
// did not normalize.
//
// The record shapes are tried in fixed priority order and the first match
// wins; a record is never interpreted under more than one shape:
//  1. "deadlines": a sequence of typed objects, each normalized on its own
//  2. "deadline": a sequence of plain date strings sharing the record
//     timezone
//  3. "deadline": a single date string
//  4. no recognized deadline field: empty result, record still retained
//
// A "deadlines" value that is not a sequence is not a match for shape 1;
// the "deadline" shapes are tried next.
//
// Malformed entries are dropped entry-wise and never abort the sibling
// entries or the record. Extraction is deterministic: the same record
// always yields the same ordered sequence.
func extractDeadlines(raw *RawConference) ([]entity.DeadlineEvent, int) {
	recordTZ := raw.Timezone

	if raw.Deadlines.Kind == yaml.SequenceNode {
		return extractTypedList(&raw.Deadlines, recordTZ)
	}

	switch raw.Deadline.Kind {
	case yaml.SequenceNode:
		return extractStringList(&raw.Deadline, recordTZ)
	case yaml.ScalarNode:
		if raw.Deadline.Tag == "!!null" || raw.Deadline.Value == "" {
			return nil, 0
		}
		return extractSingle(raw.Deadline.Value, recordTZ)
	default:
		return nil, 0
	}
}

// extractTypedList handles the multi-deadline form: each item carries its
// own type and may override the record timezone. Items that do not decode
// as deadline objects are dropped like unparseable dates.
func extractTypedList(list *yaml.Node, recordTZ string) ([]entity.DeadlineEvent, int) {
	events := make([]entity.DeadlineEvent, 0, len(list.Content))
	dropped := 0

	for _, itemNode := range list.Content {
		var item RawDeadline
		if err := itemNode.Decode(&item); err != nil {
			dropped++
			continue
		}

		kind := item.Type
		if kind == "" {
			kind = kindSubmission
		}
		tz := item.Timezone
		if tz == "" {
			tz = recordTZ
		}
		if tz == "" {
			tz = defaultTimezone
		}

		at, ok := ResolveDeadline(item.Date, tz)
		if !ok {
			dropped++
			continue
		}
		events = append(events, entity.DeadlineEvent{
			Kind:     kind,
			RawText:  item.Date,
			Timezone: tz,
			At:       at,
		})
	}
	return events, dropped
}

// extractStringList handles a sequence of plain date strings. A single
// entry is labeled "submission"; multiple entries are labeled positionally,
// since the source schema does not separate their roles.
func extractStringList(node *yaml.Node, recordTZ string) ([]entity.DeadlineEvent, int) {
	var dates []string
	if err := node.Decode(&dates); err != nil {
		// Not a plain string list: unrecognized shape, zero deadlines.
		return nil, 0
	}

	tz := recordTZ
	if tz == "" {
		tz = defaultTimezone
	}

	events := make([]entity.DeadlineEvent, 0, len(dates))
	dropped := 0
	for i, date := range dates {
		kind := kindSubmission
		if len(dates) > 1 {
			kind = fmt.Sprintf("deadline_%d", i+1)
		}

		at, ok := ResolveDeadline(date, tz)
		if !ok {
			dropped++
			continue
		}
		events = append(events, entity.DeadlineEvent{
			Kind:     kind,
			RawText:  date,
			Timezone: tz,
			At:       at,
		})
	}
	return events, dropped
}

// extractSingle handles the single deadline string form.
func extractSingle(date, recordTZ string) ([]entity.DeadlineEvent, int) {
	tz := recordTZ
	if tz == "" {
		tz = defaultTimezone
	}

	at, ok := ResolveDeadline(date, tz)
	if !ok {
		return nil, 1
	}
	return []entity.DeadlineEvent{{
		Kind:     kindSubmission,
		RawText:  date,
		Timezone: tz,
		At:       at,
	}}, 0
}
