package notifier

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"deadline-digest/internal/usecase/digest"
)

// htmlDigestTemplate renders the email body. One card per conference,
// nearest deadline first, all instants in UTC.
const htmlDigestTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: -apple-system, 'Segoe UI', Helvetica, Arial, sans-serif; color: #1f2328; margin: 0; padding: 24px; background: #f6f8fa; }
  .container { max-width: 640px; margin: 0 auto; }
  h1 { font-size: 20px; margin-bottom: 4px; }
  .window { color: #59636e; font-size: 13px; margin-bottom: 20px; }
  .card { background: #ffffff; border: 1px solid #d1d9e0; border-radius: 8px; padding: 16px; margin-bottom: 12px; }
  .conf-name { font-size: 16px; font-weight: 600; margin: 0 0 4px 0; }
  .conf-name a { color: #0969da; text-decoration: none; }
  .place { color: #59636e; font-size: 13px; margin: 0 0 10px 0; }
  table { border-collapse: collapse; width: 100%; }
  td { padding: 3px 12px 3px 0; font-size: 14px; vertical-align: top; }
  .countdown { font-weight: 600; color: #9a6700; white-space: nowrap; }
  .footer { color: #8c959f; font-size: 12px; margin-top: 20px; }
</style>
</head>
<body>
<div class="container">
<h1>Upcoming Conference Deadlines</h1>
<p class="window">All deadlines within the next {{.WindowDays}} days, times in UTC.</p>
{{range .Entries}}<div class="card">
<p class="conf-name">{{if .Link}}<a href="{{.Link}}">{{.Name}}</a>{{else}}{{.Name}}{{end}}</p>
{{if .Place}}<p class="place">{{.Place}}</p>{{end}}
<table>
{{range .Deadlines}}<tr><td>{{.Label}}</td><td>{{.Instant}}</td><td class="countdown">{{.Countdown}}</td></tr>
{{end}}</table>
</div>
{{end}}<p class="footer">Deadline digest, generated automatically.</p>
</div>
</body>
</html>
`

var digestTemplate = template.Must(template.New("digest").Parse(htmlDigestTemplate))

// RenderDigest turns ordered filter results into a delivery-ready digest:
// structured entries, subject line, HTML body and plain-text body.
//
// Parameters:
//   - results: Filter output, sorted nearest deadline first (must be non-empty)
//   - windowDays: The lookahead window the results were filtered with
//
// Returns:
//   - *Digest: The rendered digest
//   - error: Non-nil only when template execution fails
func RenderDigest(results []digest.Upcoming, windowDays int) (*Digest, error) {
	d := &Digest{
		Subject:    fmt.Sprintf("📅 Conference Deadlines - %d upcoming", len(results)),
		Entries:    buildEntries(results),
		WindowDays: windowDays,
	}

	var html bytes.Buffer
	if err := digestTemplate.Execute(&html, d); err != nil {
		return nil, fmt.Errorf("render digest html: %w", err)
	}
	d.HTML = html.String()
	d.Text = renderText(d)

	return d, nil
}

// buildEntries maps filter results to display entries.
func buildEntries(results []digest.Upcoming) []DigestEntry {
	entries := make([]DigestEntry, 0, len(results))
	for _, r := range results {
		conf := r.Conference

		name := conf.DisplayName()
		if conf.Year > 0 && !strings.Contains(name, fmt.Sprintf("%d", conf.Year)) {
			name = fmt.Sprintf("%s %d", name, conf.Year)
		}

		entry := DigestEntry{
			Name:  name,
			Link:  conf.Link,
			Place: conf.Place,
		}
		for _, dl := range r.Deadlines {
			entry.Deadlines = append(entry.Deadlines, DigestDeadline{
				Label:     digest.HumanizeKind(dl.Kind),
				Instant:   digest.FormatDeadlineInstant(dl.At),
				Countdown: digest.FormatDaysUntil(dl.DaysUntil),
			})
		}
		entries = append(entries, entry)
	}
	return entries
}

// renderText builds the plain-text body from the structured entries.
func renderText(d *Digest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Upcoming conference deadlines (next %d days, times in UTC):\n", d.WindowDays)

	for _, e := range d.Entries {
		fmt.Fprintf(&b, "\n%s\n", e.Name)
		if e.Place != "" {
			fmt.Fprintf(&b, "  %s\n", e.Place)
		}
		for _, dl := range e.Deadlines {
			fmt.Fprintf(&b, "  %s: %s (%s)\n", dl.Label, dl.Instant, dl.Countdown)
		}
		if e.Link != "" {
			fmt.Fprintf(&b, "  %s\n", e.Link)
		}
	}

	return b.String()
}
