package ingest

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"deadline-digest/internal/domain/entity"
)

// RawConference is the duck-typed upstream record shape. It covers the union
// of the two source schemas: the AI upstream uses title/deadlines, the
// security upstream uses name/deadline, and both share the descriptive
// fields. Unknown keys are ignored.
type RawConference struct {
	Title    string `yaml:"title"`
	Name     string `yaml:"name"`
	Year     int    `yaml:"year"`
	FullName string `yaml:"full_name"`
	Link     string `yaml:"link"`

	City    string `yaml:"city"`
	Country string `yaml:"country"`
	Place   string `yaml:"place"`

	Date     string `yaml:"date"`
	Timezone string `yaml:"timezone"`

	Tags    []string `yaml:"tags"`
	HIndex  float64  `yaml:"hindex"`
	Comment string   `yaml:"comment"`

	// Deadline holds the legacy single-field form: either one date string
	// or a sequence of date strings. Kept as a raw node because the shape
	// is only known per record.
	Deadline yaml.Node `yaml:"deadline"`

	// Deadlines holds the typed multi-deadline form. Kept as a raw node so
	// a non-sequence value (upstream sometimes writes "TBA") degrades to
	// the next shape instead of failing the whole record decode.
	Deadlines yaml.Node `yaml:"deadlines"`
}

// RawDeadline is one entry of the typed multi-deadline form.
type RawDeadline struct {
	Type     string `yaml:"type"`
	Date     string `yaml:"date"`
	Timezone string `yaml:"timezone"`
}

// DisplayName reconciles the source-dependent name fields: the AI schema
// uses "title", the security schema uses "name".
func (r *RawConference) DisplayName() string {
	if r.Title != "" {
		return r.Title
	}
	if r.Name != "" {
		return r.Name
	}
	return "Unknown"
}

// PlaceOrDerived returns the explicit place field when present, otherwise a
// "City, Country" string derived from the location parts.
func (r *RawConference) PlaceOrDerived() string {
	if r.Place != "" {
		return r.Place
	}
	parts := make([]string, 0, 2)
	if r.City != "" {
		parts = append(parts, r.City)
	}
	if r.Country != "" {
		parts = append(parts, r.Country)
	}
	return strings.Join(parts, ", ")
}

// decodeRecord decodes one YAML mapping node into a RawConference.
func decodeRecord(node *yaml.Node) (*RawConference, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("record is not a mapping (line %d)", node.Line)
	}
	var raw RawConference
	if err := node.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &raw, nil
}

// recordNodes splits a parsed collection document into individual record
// nodes. A collection may be a single mapping or a sequence of mappings;
// both are accepted. Anything else yields no records.
func recordNodes(root *yaml.Node) []*yaml.Node {
	if root == nil {
		return nil
	}
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil
		}
		root = root.Content[0]
	}
	switch root.Kind {
	case yaml.SequenceNode:
		return root.Content
	case yaml.MappingNode:
		return []*yaml.Node{root}
	default:
		return nil
	}
}

// buildConference constructs the uniform entity from a raw record.
// Field-name reconciliation happens here, once, so downstream code never
// consults source-dependent synonyms.
func buildConference(raw *RawConference, sourceTag string) (*entity.Conference, int) {
	deadlines, dropped := extractDeadlines(raw)

	name := raw.DisplayName()
	fullName := raw.FullName
	if fullName == "" {
		fullName = name
	}

	return &entity.Conference{
		Source:    sourceTag,
		Name:      name,
		Year:      raw.Year,
		FullName:  fullName,
		Link:      raw.Link,
		City:      raw.City,
		Country:   raw.Country,
		Place:     raw.PlaceOrDerived(),
		DateRange: raw.Date,
		Tags:      raw.Tags,
		HIndex:    raw.HIndex,
		Comment:   raw.Comment,
		Deadlines: deadlines,
	}, dropped
}
