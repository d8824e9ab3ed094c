// Package filter selects and orders diary entries for the list view.
package filter

import (
	"sort"
	"strings"
	"time"

	"github.com/Tiliavir/diary/internal/model"
)

// Criteria narrows the entry list. Empty fields match everything.
type Criteria struct {
	Query string `json:"q,omitempty"`
	Mood  string `json:"mood,omitempty"`
	From  string `json:"from,omitempty"`
	To    string `json:"to,omitempty"`
}

// IsZero reports whether c passes every entry through.
func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

// DateRange returns criteria restricted to a single day, as selected from
// the calendar.
func DateRange(day string) Criteria {
	return Criteria{From: day, To: day}
}

// Apply returns the entries matching c, newest first. Entries sharing a date
// keep their store order.
func Apply(entries []model.Entry, c Criteria) []model.Entry {
	q := strings.ToLower(strings.TrimSpace(c.Query))
	from, hasFrom := model.ParseDay(c.From)
	to, hasTo := model.ParseDay(c.To)

	out := make([]model.Entry, 0, len(entries))
	for _, e := range entries {
		if q != "" && !strings.Contains(haystack(e), q) {
			continue
		}
		if c.Mood != "" && e.Mood != c.Mood {
			continue
		}
		if hasFrom || hasTo {
			day, ok := e.Day()
			if !ok {
				continue
			}
			if hasFrom && day.Before(from) {
				continue
			}
			if hasTo && day.After(to) {
				continue
			}
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return sortKey(out[i]).After(sortKey(out[j]))
	})
	return out
}

// TotalHours sums the hours of entries.
func TotalHours(entries []model.Entry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Hours.Float()
	}
	return total
}

func haystack(e model.Entry) string {
	return strings.ToLower(strings.Join([]string{
		e.Title,
		e.Tasks,
		strings.Join(e.Skills, ","),
		strings.Join(e.Links, ","),
		string(e.Category),
	}, " "))
}

// sortKey places undated entries after every dated one.
func sortKey(e model.Entry) time.Time {
	day, ok := e.Day()
	if !ok {
		return time.Time{}
	}
	return day
}
