package calendar

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Tiliavir/diary/internal/i18n"
	"github.com/Tiliavir/diary/internal/model"
)

const cellWidth = 14

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	weekdayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")).Width(cellWidth)
	dayStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#e5e7eb"))
	todayStyle   = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#fbbf24"))
	moreStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Italic(true)
	cellStyle    = lipgloss.NewStyle().Width(cellWidth).Height(DefaultMaxPills + 2)

	pillStyles = map[model.Category]lipgloss.Style{
		model.Intern:  lipgloss.NewStyle().Foreground(lipgloss.Color("#7dd3fc")),
		model.Holiday: lipgloss.NewStyle().Foreground(lipgloss.Color("#fb7185")),
		model.Study:   lipgloss.NewStyle().Foreground(lipgloss.Color("#a78bfa")),
	}
)

// Render writes m as a terminal grid, one week per row.
func Render(w io.Writer, m Month, p *i18n.Printer) error {
	if p == nil {
		p = i18n.New("")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.Title))
	b.WriteString("\n")

	headers := make([]string, 0, 7)
	for _, wd := range m.Weekdays {
		headers = append(headers, weekdayStyle.Render(wd))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, headers...))
	b.WriteString("\n")

	for start := 0; start < len(m.Cells); start += 7 {
		end := min(start+7, len(m.Cells))
		row := make([]string, 0, 7)
		for _, c := range m.Cells[start:end] {
			row = append(row, cellStyle.Render(renderCell(c, p)))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

func renderCell(c Cell, p *i18n.Printer) string {
	if c.Blank {
		return ""
	}
	lines := make([]string, 0, len(c.Pills)+2)
	num := strconv.Itoa(c.Day)
	if c.Today {
		lines = append(lines, todayStyle.Render(num))
	} else {
		lines = append(lines, dayStyle.Render(num))
	}
	for _, pill := range c.Pills {
		lines = append(lines, pillStyles[pill.Category].Render("● "+truncate(pill.Title, cellWidth-3)))
	}
	if c.More > 0 {
		lines = append(lines, moreStyle.Render(p.Sprintf(i18n.KeyMore, c.More)))
	}
	return strings.Join(lines, "\n")
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
