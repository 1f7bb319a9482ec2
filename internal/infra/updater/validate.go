package updater

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// conferenceRecord is the minimal shape a validated record is checked
// against. Everything else passes through untouched.
type conferenceRecord map[string]interface{}

// ValidateConferenceList checks that data is a usable conference list:
// valid YAML, list-shaped, non-empty. The first few records are spot-checked
// for the expected identifying fields; a missing field is reported in the
// returned warnings but does not fail validation, since the upstream schema
// drifts over time.
func ValidateConferenceList(data []byte) ([]string, error) {
	var records []conferenceRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("expected a YAML list of conferences: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("conference list is empty")
	}

	var warnings []string
	spotCheck := len(records)
	if spotCheck > 3 {
		spotCheck = 3
	}
	for i := 0; i < spotCheck; i++ {
		if !hasNameField(records[i]) {
			warnings = append(warnings, fmt.Sprintf("record %d has neither name nor title", i))
		}
		if !hasDeadlineField(records[i]) {
			warnings = append(warnings, fmt.Sprintf("record %d has no deadline field", i))
		}
	}

	return warnings, nil
}

func hasNameField(rec conferenceRecord) bool {
	_, hasName := rec["name"]
	_, hasTitle := rec["title"]
	return hasName || hasTitle
}

func hasDeadlineField(rec conferenceRecord) bool {
	_, hasDeadline := rec["deadline"]
	_, hasDeadlines := rec["deadlines"]
	return hasDeadline || hasDeadlines
}

// ConsolidateAI merges per-conference YAML payloads into one list document.
// A payload holding a single mapping contributes one record; a payload
// holding a list contributes all of them. The returned count is the number
// of records in the consolidated document.
func ConsolidateAI(payloads [][]byte) ([]byte, int, error) {
	var consolidated []interface{}

	for _, payload := range payloads {
		var node interface{}
		if err := yaml.Unmarshal(payload, &node); err != nil {
			// Caller already dropped fetch failures; a parse failure here
			// drops just this conference.
			continue
		}

		switch v := node.(type) {
		case map[string]interface{}:
			consolidated = append(consolidated, v)
		case []interface{}:
			consolidated = append(consolidated, v...)
		}
	}

	if len(consolidated) == 0 {
		return nil, 0, fmt.Errorf("no usable conference records after consolidation")
	}

	out, err := yaml.Marshal(consolidated)
	if err != nil {
		return nil, 0, fmt.Errorf("marshal consolidated list: %w", err)
	}
	return out, len(consolidated), nil
}
