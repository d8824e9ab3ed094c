package calendar_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Tiliavir/diary/internal/calendar"
	"github.com/Tiliavir/diary/internal/filter"
	"github.com/Tiliavir/diary/internal/i18n"
	"github.com/Tiliavir/diary/internal/model"
)

func TestBuildPadsToWeekday(t *testing.T) {
	tests := []struct {
		year   int
		month  time.Month
		blanks int
		days   int
	}{
		{2024, time.March, 5, 31},    // Friday
		{2024, time.September, 0, 30}, // Sunday
		{2024, time.February, 4, 29},  // Thursday, leap year
		{2026, time.November, 0, 30},  // Sunday
	}
	for _, tt := range tests {
		m := calendar.Build(tt.year, tt.month, nil, calendar.Options{})
		blanks := 0
		for _, c := range m.Cells {
			if c.Blank {
				blanks++
			}
		}
		if blanks != tt.blanks {
			t.Errorf("%d-%02d blanks = %d, want %d", tt.year, tt.month, blanks, tt.blanks)
		}
		days := days(m)
		if len(days) != tt.days {
			t.Errorf("%d-%02d days = %d, want %d", tt.year, tt.month, len(days), tt.days)
		}
		if days[0].Day != 1 || days[len(days)-1].Day != tt.days {
			t.Errorf("%d-%02d day range %d..%d", tt.year, tt.month, days[0].Day, days[len(days)-1].Day)
		}
	}
}

func TestBuildOverflow(t *testing.T) {
	var entries []model.Entry
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		entries = append(entries, model.Entry{ID: title, Date: "2024-03-12", Title: title, Category: model.Intern})
	}
	m := calendar.Build(2024, time.March, entries, calendar.Options{})
	cell := days(m)[11]
	if cell.Date != "2024-03-12" {
		t.Fatalf("cell date = %q", cell.Date)
	}
	if len(cell.Pills) != 2 || cell.Pills[0].Title != "a" || cell.Pills[1].Title != "b" {
		t.Errorf("pills = %+v, want a, b", cell.Pills)
	}
	if cell.More != 3 {
		t.Errorf("More = %d, want 3", cell.More)
	}

	var buf bytes.Buffer
	if err := calendar.Render(&buf, m, i18n.New("en")); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "+3 more") {
		t.Errorf("rendered calendar missing overflow indicator:\n%s", buf.String())
	}
}

func TestBuildPillCategoryFallback(t *testing.T) {
	entries := []model.Entry{
		{ID: "1", Date: "2024-03-01", Title: "Exam", Category: model.Study},
		{ID: "2", Date: "2024-03-01", Title: "Odd", Category: "weird"},
		{ID: "3", Date: "2024-04-01", Title: "Other month", Category: model.Intern},
		{ID: "4", Date: "", Title: "Undated", Category: model.Intern},
	}
	m := calendar.Build(2024, time.March, entries, calendar.Options{})
	want := []calendar.Pill{
		{ID: "1", Title: "Exam", Category: model.Study},
		{ID: "2", Title: "Odd", Category: model.Intern},
	}
	if got := days(m)[0].Pills; !reflect.DeepEqual(got, want) {
		t.Errorf("pills = %+v, want %+v", got, want)
	}
	total := 0
	for _, c := range m.Cells {
		total += len(c.Pills) + c.More
	}
	if total != 2 {
		t.Errorf("entries placed = %d, want 2", total)
	}
}

func TestBuildToday(t *testing.T) {
	now := time.Date(2024, 3, 15, 22, 0, 0, 0, time.UTC)

	primary := calendar.Build(2024, time.March, nil, calendar.Options{Now: now, Primary: true})
	for _, c := range days(primary) {
		if c.Today != (c.Day == 15) {
			t.Errorf("primary day %d Today = %v", c.Day, c.Today)
		}
	}

	embedded := calendar.Build(2024, time.March, nil, calendar.Options{Now: now})
	for _, c := range days(embedded) {
		if c.Today {
			t.Errorf("embedded calendar flagged day %d as today", c.Day)
		}
	}

	other := calendar.Build(2024, time.April, nil, calendar.Options{Now: now, Primary: true})
	for _, c := range days(other) {
		if c.Today {
			t.Errorf("April flagged day %d as today", c.Day)
		}
	}
}

func TestCellFilter(t *testing.T) {
	m := calendar.Build(2024, time.March, nil, calendar.Options{})
	got := days(m)[4].Filter()
	want := filter.Criteria{From: "2024-03-05", To: "2024-03-05"}
	if got != want {
		t.Errorf("Filter = %+v, want %+v", got, want)
	}
}

func TestBuildLocalized(t *testing.T) {
	m := calendar.Build(2024, time.March, nil, calendar.Options{Printer: i18n.New("th")})
	if m.Title != "มีนาคม 2567" {
		t.Errorf("Title = %q", m.Title)
	}
	if m.Weekdays[0] != "อา." {
		t.Errorf("Weekdays[0] = %q", m.Weekdays[0])
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	entries := []model.Entry{{ID: "1", Date: "2024-03-01", Title: "X", Category: model.Intern}}
	a := calendar.Build(2024, time.March, entries, calendar.Options{})
	b := calendar.Build(2024, time.March, entries, calendar.Options{})
	if !reflect.DeepEqual(a, b) {
		t.Error("Build is not deterministic")
	}
}

// days returns the cells of m after the leading blanks.
func days(m calendar.Month) []calendar.Cell {
	for i, c := range m.Cells {
		if !c.Blank {
			return m.Cells[i:]
		}
	}
	return nil
}
