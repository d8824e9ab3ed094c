package report

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Tiliavir/diary/internal/i18n"
	"github.com/Tiliavir/diary/internal/timecalc"
)

// MaxSkills limits the skills listed in a rendered report.
const MaxSkills = 10

type row struct {
	Label string
	Value string
}

type entryRow struct {
	Date     string
	Title    string
	Hours    string
	Category string
	Tasks    []string
}

// view is the localized, formatted content both renderings print.
type view struct {
	Title    string
	Summary  []row
	Heading  struct{ Category, Skills, Entries string }
	Category []row
	Skills   []row
	Entries  []entryRow
	Empty    string
	Lang     string
}

func newView(r Report, p *i18n.Printer) view {
	if p == nil {
		p = i18n.New("")
	}
	v := view{
		Title: p.Sprintf(i18n.KeyReportTitle, p.MonthTitle(r.Year, r.Month)),
		Lang:  p.Tag().String(),
	}
	v.Summary = []row{
		{Label: p.Sprintf(i18n.KeyReportTotal), Value: p.Hours(timecalc.FormatHoursFixed(r.TotalHours))},
		{Label: p.Sprintf(i18n.KeyReportDays), Value: fmt.Sprint(r.WorkDays)},
		{Label: p.Sprintf(i18n.KeyReportEntries), Value: fmt.Sprint(len(r.Entries))},
	}
	v.Heading.Category = p.Sprintf(i18n.KeyReportCategory)
	v.Heading.Skills = p.Sprintf(i18n.KeyReportSkills)
	v.Heading.Entries = p.Sprintf(i18n.KeyReportEntries)
	for _, ch := range r.ByCategory {
		v.Category = append(v.Category, row{Label: p.Category(ch.Category), Value: p.Hours(timecalc.FormatHoursFixed(ch.Hours))})
	}
	for i, s := range r.TopSkills {
		if i == MaxSkills {
			break
		}
		v.Skills = append(v.Skills, row{Label: "#" + s.Name, Value: p.Hours(timecalc.FormatHoursFixed(s.Hours))})
	}
	for _, e := range r.Entries {
		v.Entries = append(v.Entries, entryRow{
			Date:     e.Date,
			Title:    e.Title,
			Hours:    p.Hours(timecalc.FormatHoursTrim(e.Hours.Float())),
			Category: p.Category(e.DisplayCategory()),
			Tasks:    splitLines(e.Tasks),
		})
	}
	if len(r.Entries) == 0 {
		v.Empty = p.Sprintf(i18n.KeyReportNone)
	}
	return v
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Poppins, sans-serif; color: #0f172a; margin: 2rem; }
h1 { font-size: 1.4rem; margin-bottom: 1rem; }
h2 { font-size: 1.1rem; margin-top: 1.5rem; border-bottom: 1px solid #e2e8f0; }
.summary { display: flex; gap: 1rem; }
.card { border: 1px solid #e2e8f0; border-radius: 12px; padding: .75rem 1rem; min-width: 8rem; }
.card .value { font-size: 1.3rem; font-weight: 600; }
table { border-collapse: collapse; width: 100%; }
td, th { text-align: left; padding: .25rem .5rem; border-bottom: 1px solid #f1f5f9; vertical-align: top; }
.tasks { color: #475569; font-size: .9rem; }
@media print { body { margin: 0; } .card { break-inside: avoid; } }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="summary">
{{- range .Summary}}
<div class="card"><div class="label">{{.Label}}</div><div class="value">{{.Value}}</div></div>
{{- end}}
</div>
<h2>{{.Heading.Category}}</h2>
<table>
{{- range .Category}}
<tr><td>{{.Label}}</td><td>{{.Value}}</td></tr>
{{- end}}
</table>
{{- if .Skills}}
<h2>{{.Heading.Skills}}</h2>
<table>
{{- range .Skills}}
<tr><td>{{.Label}}</td><td>{{.Value}}</td></tr>
{{- end}}
</table>
{{- end}}
<h2>{{.Heading.Entries}}</h2>
{{- if .Empty}}
<p>{{.Empty}}</p>
{{- else}}
<table>
{{- range .Entries}}
<tr><td>{{.Date}}</td><td>{{.Title}}<div class="tasks">{{range $i, $l := .Tasks}}{{if $i}}<br>{{end}}{{$l}}{{end}}</div></td><td>{{.Category}}</td><td>{{.Hours}}</td></tr>
{{- end}}
</table>
{{- end}}
</body>
</html>
`))

// WriteHTML renders r as a styled, print-ready HTML page.
func WriteHTML(w io.Writer, r Report, p *i18n.Printer) error {
	if err := htmlTemplate.Execute(w, newView(r, p)); err != nil {
		return fmt.Errorf("rendering HTML report: %w", err)
	}
	return nil
}

// WriteText renders r as monospaced plain text.
func WriteText(w io.Writer, r Report, p *i18n.Printer) error {
	v := newView(r, p)
	var b strings.Builder

	rule := strings.Repeat("-", 40)
	b.WriteString(v.Title + "\n")
	b.WriteString(rule + "\n")
	writeRows(&b, v.Summary)
	b.WriteString("\n" + v.Heading.Category + "\n")
	writeRows(&b, v.Category)
	if len(v.Skills) > 0 {
		b.WriteString("\n" + v.Heading.Skills + "\n")
		writeRows(&b, v.Skills)
	}
	b.WriteString("\n" + v.Heading.Entries + "\n")
	b.WriteString(rule + "\n")
	if v.Empty != "" {
		b.WriteString(v.Empty + "\n")
	}
	for _, e := range v.Entries {
		fmt.Fprintf(&b, "%s  %s (%s, %s)\n", e.Date, e.Title, e.Category, e.Hours)
		for _, l := range e.Tasks {
			b.WriteString("    " + l + "\n")
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing text report: %w", err)
	}
	return nil
}

func writeRows(b *strings.Builder, rows []row) {
	tw := tabwriter.NewWriter(b, 0, 0, 2, ' ', 0)
	for _, r := range rows {
		fmt.Fprintf(tw, "  %s\t%s\n", r.Label, r.Value)
	}
	_ = tw.Flush()
}

func splitLines(s string) []string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
