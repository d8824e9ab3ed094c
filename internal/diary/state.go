package diary

import (
	"time"

	"github.com/Tiliavir/diary/internal/aggregate"
	"github.com/Tiliavir/diary/internal/filter"
	"github.com/Tiliavir/diary/internal/model"
	"github.com/Tiliavir/diary/internal/timecalc"
)

// State is what the user is looking at: the list filter, the calendar
// month and the chart period. Methods return a new State.
type State struct {
	Filter filter.Criteria
	Year   int
	Month  time.Month
	Period aggregate.Period
	// Selected is the day last picked on the calendar; new entries default to it.
	Selected string
}

// NewState shows the month of now with no filter.
func NewState(now time.Time, period aggregate.Period) State {
	return State{Year: now.Year(), Month: now.Month(), Period: period}
}

func (s State) PrevMonth() State {
	s.Year, s.Month = timecalc.ShiftMonth(s.Year, s.Month, -1)
	return s
}

func (s State) NextMonth() State {
	s.Year, s.Month = timecalc.ShiftMonth(s.Year, s.Month, 1)
	return s
}

// Today jumps the calendar back to the month of now.
func (s State) Today(now time.Time) State {
	s.Year, s.Month = now.Year(), now.Month()
	return s
}

// SelectDay narrows the list to day and remembers it for new entries.
// An unparseable day leaves the state unchanged.
func (s State) SelectDay(day string) State {
	t, ok := model.ParseDay(day)
	if !ok {
		return s
	}
	key := model.DayKey(t)
	s.Filter = filter.DateRange(key)
	s.Selected = key
	s.Year, s.Month = t.Year(), t.Month()
	return s
}

// NewEntryDate is the date a new entry starts with: the selected day, or
// the day of now when nothing is selected.
func (s State) NewEntryDate(now time.Time) string {
	if s.Selected != "" {
		return s.Selected
	}
	return model.DayKey(now)
}

func (s State) WithFilter(c filter.Criteria) State {
	s.Filter = c
	return s
}

func (s State) WithPeriod(p aggregate.Period) State {
	s.Period = p
	return s
}
