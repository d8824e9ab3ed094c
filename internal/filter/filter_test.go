package filter_test

import (
	"testing"

	"github.com/Tiliavir/diary/internal/filter"
	"github.com/Tiliavir/diary/internal/model"
)

func fixture() []model.Entry {
	return []model.Entry{
		{ID: "a", Date: "2024-03-05", Title: "Kickoff", Mood: "happy", Category: model.Intern, Skills: []string{"Go"}},
		{ID: "b", Date: "2024-03-07", Title: "Lecture", Mood: "tired", Category: model.Study, Tasks: "Databases\nSQL joins"},
		{ID: "c", Date: "2024-03-05", Title: "Review", Mood: "happy", Category: model.Intern, Links: []string{"https://example.com/pr/1"}},
		{ID: "d", Date: "", Title: "Undated", Category: model.Holiday},
		{ID: "e", Date: "2024-02-28", Title: "Beach", Category: model.Holiday},
		{ID: "f", Date: "2024-03-05", Title: "Standup", Category: model.Intern},
	}
}

func ids(entries []model.Entry) string {
	s := ""
	for _, e := range entries {
		s += e.ID
	}
	return s
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		criteria filter.Criteria
		want     string
	}{
		{"pass-through sorted desc, stable, undated last", filter.Criteria{}, "bacfed"},
		{"query title case-insensitive", filter.Criteria{Query: "LECT"}, "b"},
		{"query tasks", filter.Criteria{Query: "sql"}, "b"},
		{"query skills", filter.Criteria{Query: "go"}, "a"},
		{"query links", filter.Criteria{Query: "example.com"}, "c"},
		{"query category", filter.Criteria{Query: "holiday"}, "ed"},
		{"mood", filter.Criteria{Mood: "happy"}, "ac"},
		{"range inclusive", filter.Criteria{From: "2024-03-05", To: "2024-03-07"}, "bacf"},
		{"single day", filter.DateRange("2024-03-05"), "acf"},
		{"from only drops undated", filter.Criteria{From: "2024-01-01"}, "bacfe"},
		{"to only", filter.Criteria{To: "2024-02-29"}, "e"},
		{"empty range", filter.Criteria{From: "2024-04-01", To: "2024-04-30"}, ""},
		{"unparseable bound ignored", filter.Criteria{From: "garbage"}, "bacfed"},
		{"combined", filter.Criteria{Query: "review", Mood: "happy", From: "2024-03-01"}, "c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(filter.Apply(fixture(), tt.criteria))
			if got != tt.want {
				t.Errorf("Apply = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyRangeIsOrderedSubsequence(t *testing.T) {
	in := fixture()
	out := filter.Apply(in, filter.Criteria{From: "2024-03-01", To: "2024-03-31"})
	for i, e := range out {
		day, ok := e.Day()
		if !ok {
			t.Fatalf("undated entry %q in ranged result", e.ID)
		}
		if day.Month() != 3 {
			t.Errorf("entry %q outside range", e.ID)
		}
		if i > 0 {
			prev, _ := out[i-1].Day()
			if prev.Before(day) {
				t.Errorf("result not descending at %d", i)
			}
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := fixture()
	_ = filter.Apply(in, filter.Criteria{})
	if ids(in) != "abcdef" {
		t.Errorf("input reordered to %q", ids(in))
	}
}

func TestTotalHours(t *testing.T) {
	entries := []model.Entry{{Hours: 2}, {Hours: 1.5}, {}}
	if got := filter.TotalHours(entries); got != 3.5 {
		t.Errorf("TotalHours = %v, want 3.5", got)
	}
}

func TestIsZero(t *testing.T) {
	if !(filter.Criteria{}).IsZero() {
		t.Error("empty criteria should be zero")
	}
	if filter.DateRange("2024-03-05").IsZero() {
		t.Error("date range should not be zero")
	}
}
