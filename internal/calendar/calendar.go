// Package calendar builds Sunday-first month grids of diary entries.
package calendar

import (
	"time"

	"github.com/Tiliavir/diary/internal/filter"
	"github.com/Tiliavir/diary/internal/i18n"
	"github.com/Tiliavir/diary/internal/model"
	"github.com/Tiliavir/diary/internal/timecalc"
)

// DefaultMaxPills is how many entries a day cell shows before collapsing the
// rest into a "+N more" indicator.
const DefaultMaxPills = 2

// Options configures Build.
type Options struct {
	// Now is the real-world current time used to flag today.
	Now time.Time
	// Primary marks the main calendar; embedded copies never flag today.
	Primary  bool
	MaxPills int
	Printer  *i18n.Printer
}

// Pill is the compact indicator of one entry inside a day cell.
type Pill struct {
	ID       string
	Title    string
	Category model.Category
}

// Cell is one slot of the grid. Blank cells pad the first week.
type Cell struct {
	Blank bool
	Day   int
	Date  string
	Today bool
	Pills []Pill
	More  int
}

// Filter returns the criteria selecting this cell's day in the list view.
func (c Cell) Filter() filter.Criteria {
	return filter.DateRange(c.Date)
}

// Month is a built calendar month.
type Month struct {
	Year     int
	Month    time.Month
	Title    string
	Weekdays [7]string
	Cells    []Cell
}

// Build lays out month of year with the entries dated inside it. Entries
// within a day keep their collection order.
func Build(year int, month time.Month, entries []model.Entry, opts Options) Month {
	if opts.MaxPills <= 0 {
		opts.MaxPills = DefaultMaxPills
	}
	if opts.Printer == nil {
		opts.Printer = i18n.New("")
	}

	byDay := map[string][]model.Entry{}
	for _, e := range entries {
		day, ok := e.Day()
		if !ok || day.Year() != year || day.Month() != month {
			continue
		}
		key := model.DayKey(day)
		byDay[key] = append(byDay[key], e)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := int(first.Weekday())
	days := timecalc.DaysIn(year, month)

	m := Month{
		Year:     year,
		Month:    month,
		Title:    opts.Printer.MonthTitle(year, month),
		Weekdays: opts.Printer.Weekdays(),
		Cells:    make([]Cell, 0, offset+days),
	}
	for i := 0; i < offset; i++ {
		m.Cells = append(m.Cells, Cell{Blank: true})
	}

	for d := 1; d <= days; d++ {
		date := first.AddDate(0, 0, d-1)
		key := model.DayKey(date)
		cell := Cell{
			Day:   d,
			Date:  key,
			Today: opts.Primary && !opts.Now.IsZero() && timecalc.SameDay(date, timecalc.CivilDay(opts.Now)),
		}
		for i, e := range byDay[key] {
			if i >= opts.MaxPills {
				cell.More++
				continue
			}
			cell.Pills = append(cell.Pills, Pill{ID: e.ID, Title: e.Title, Category: e.DisplayCategory()})
		}
		m.Cells = append(m.Cells, cell)
	}
	return m
}
