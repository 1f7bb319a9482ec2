package ingest

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"deadline-digest/internal/domain/entity"
)

func parseCollection(t *testing.T, tag, doc string) Collection {
	t.Helper()
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(doc), &node))
	return Collection{Tag: tag, Root: &node}
}

func newTestService() *Service {
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestService_LoadAll(t *testing.T) {
	t.Run("aggregates both sources preserving order", func(t *testing.T) {
		ai := parseCollection(t, entity.SourceAI, `
- title: ICML
  year: 2026
  deadlines:
    - type: submission
      date: "2026-01-28 23:59"
- title: NeurIPS
  year: 2026
`)
		sec := parseCollection(t, entity.SourceSecurity, `
- name: usenix-security
  year: 2026
  deadline: ["2026-02-05 23:59:59"]
  timezone: AoE
`)

		confs, stats := newTestService().LoadAll(context.Background(), []Collection{ai, sec})
		require.Len(t, confs, 3)
		assert.Equal(t, []string{"ICML", "NeurIPS", "usenix-security"},
			[]string{confs[0].Name, confs[1].Name, confs[2].Name})
		assert.Equal(t, entity.SourceAI, confs[0].Source)
		assert.Equal(t, entity.SourceSecurity, confs[2].Source)

		assert.Equal(t, 3, stats.RecordsLoaded)
		assert.Equal(t, 0, stats.RecordsSkipped)
		assert.Equal(t, 2, stats.DeadlinesKept)
		assert.Equal(t, 0, stats.DeadlinesDropped)
	})

	t.Run("single mapping document is one record", func(t *testing.T) {
		col := parseCollection(t, entity.SourceAI, `
title: COLM
year: 2026
deadline: "2026-03-20 23:59"
`)
		confs, stats := newTestService().LoadAll(context.Background(), []Collection{col})
		require.Len(t, confs, 1)
		assert.Equal(t, "COLM", confs[0].Name)
		assert.Equal(t, 1, stats.RecordsLoaded)
	})

	t.Run("record with a non-sequence deadlines value is retained", func(t *testing.T) {
		col := parseCollection(t, entity.SourceAI, `
title: ICLR
year: 2027
deadlines: TBA
`)
		confs, stats := newTestService().LoadAll(context.Background(), []Collection{col})
		require.Len(t, confs, 1)
		assert.Empty(t, confs[0].Deadlines)
		assert.Equal(t, 1, stats.RecordsLoaded)
		assert.Zero(t, stats.RecordsSkipped)
	})

	t.Run("malformed record is skipped and the batch continues", func(t *testing.T) {
		col := parseCollection(t, entity.SourceSecurity, `
- name: good-one
  year: 2026
  deadline: "2026-04-01 23:59"
- "just a string, not a record"
- name: also-good
  year: 2026
`)
		confs, stats := newTestService().LoadAll(context.Background(), []Collection{col})
		require.Len(t, confs, 2)
		assert.Equal(t, "good-one", confs[0].Name)
		assert.Equal(t, "also-good", confs[1].Name)
		assert.Equal(t, 1, stats.RecordsSkipped)
	})

	t.Run("record with wrongly typed field is skipped", func(t *testing.T) {
		col := parseCollection(t, entity.SourceAI, `
- title: ok
  year: 2026
- title: broken
  year: "twenty-six"
`)
		confs, stats := newTestService().LoadAll(context.Background(), []Collection{col})
		require.Len(t, confs, 1)
		assert.Equal(t, 1, stats.RecordsSkipped)
	})

	t.Run("scalar document contributes zero entities", func(t *testing.T) {
		col := parseCollection(t, entity.SourceAI, `"oops"`)
		confs, stats := newTestService().LoadAll(context.Background(), []Collection{col})
		assert.Empty(t, confs)
		assert.Zero(t, stats.RecordsLoaded)
	})

	t.Run("unparseable deadlines are counted, not fatal", func(t *testing.T) {
		col := parseCollection(t, entity.SourceAI, `
- title: ECAI
  deadlines:
    - type: abstract
      date: "garbage"
    - type: submission
      date: "2026-02-14 23:59"
`)
		confs, stats := newTestService().LoadAll(context.Background(), []Collection{col})
		require.Len(t, confs, 1)
		assert.Len(t, confs[0].Deadlines, 1)
		assert.Equal(t, 1, stats.DeadlinesDropped)
		assert.Equal(t, 1, stats.DeadlinesKept)
	})

	t.Run("no sources yields empty result", func(t *testing.T) {
		confs, stats := newTestService().LoadAll(context.Background(), nil)
		assert.Empty(t, confs)
		assert.Zero(t, stats.RecordsLoaded)
	})
}

func TestService_LoadAll_FieldReconciliation(t *testing.T) {
	t.Run("title and name map to the same display name", func(t *testing.T) {
		cols := []Collection{
			parseCollection(t, entity.SourceAI, "title: ACL\nyear: 2026\n"),
			parseCollection(t, entity.SourceSecurity, "name: ccs\nyear: 2026\n"),
		}
		confs, _ := newTestService().LoadAll(context.Background(), cols)
		require.Len(t, confs, 2)
		assert.Equal(t, "ACL", confs[0].Name)
		assert.Equal(t, "ccs", confs[1].Name)
	})

	t.Run("missing name falls back to Unknown", func(t *testing.T) {
		col := parseCollection(t, entity.SourceAI, "year: 2026\n")
		confs, _ := newTestService().LoadAll(context.Background(), []Collection{col})
		require.Len(t, confs, 1)
		assert.Equal(t, "Unknown", confs[0].Name)
	})

	t.Run("place derived from city and country when absent", func(t *testing.T) {
		tests := []struct {
			name string
			doc  string
			want string
		}{
			{"city and country", "title: A\ncity: Vienna\ncountry: Austria\n", "Vienna, Austria"},
			{"country only", "title: B\ncountry: Japan\n", "Japan"},
			{"explicit place wins", "title: C\nplace: Online\ncity: X\ncountry: Y\n", "Online"},
			{"nothing known", "title: D\n", ""},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				col := parseCollection(t, entity.SourceAI, tt.doc)
				confs, _ := newTestService().LoadAll(context.Background(), []Collection{col})
				require.Len(t, confs, 1)
				assert.Equal(t, tt.want, confs[0].Place)
			})
		}
	})

	t.Run("full name falls back to display name", func(t *testing.T) {
		col := parseCollection(t, entity.SourceSecurity, "name: sp\nyear: 2026\n")
		confs, _ := newTestService().LoadAll(context.Background(), []Collection{col})
		require.Len(t, confs, 1)
		assert.Equal(t, "sp", confs[0].FullName)
	})

	t.Run("descriptive fields pass through opaquely", func(t *testing.T) {
		col := parseCollection(t, entity.SourceAI, `
title: KDD
full_name: SIGKDD Conference on Knowledge Discovery and Data Mining
year: 2026
link: https://kdd.org/kdd2026
date: August 9-13, 2026
tags: [data-mining, machine-learning]
hindex: 174
comment: co-located workshops announced later
`)
		confs, _ := newTestService().LoadAll(context.Background(), []Collection{col})
		require.Len(t, confs, 1)
		c := confs[0]
		assert.Equal(t, "SIGKDD Conference on Knowledge Discovery and Data Mining", c.FullName)
		assert.Equal(t, "https://kdd.org/kdd2026", c.Link)
		assert.Equal(t, "August 9-13, 2026", c.DateRange)
		assert.Equal(t, []string{"data-mining", "machine-learning"}, c.Tags)
		assert.Equal(t, float64(174), c.HIndex)
		assert.Equal(t, "co-located workshops announced later", c.Comment)
		assert.NoError(t, c.Validate())
	})
}
