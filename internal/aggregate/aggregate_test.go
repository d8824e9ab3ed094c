package aggregate_test

import (
	"math"
	"testing"
	"time"

	"github.com/Tiliavir/diary/internal/aggregate"
	"github.com/Tiliavir/diary/internal/model"
)

func TestMonthlyScenario(t *testing.T) {
	entries := []model.Entry{
		{ID: "1", Date: "2024-03-05", Title: "X", Hours: 3, Category: model.Intern, Skills: []string{"go"}},
	}
	s := aggregate.Build(entries, aggregate.MonthlyPeriod(2024))
	if len(s.Buckets) != 12 {
		t.Fatalf("buckets = %d, want 12", len(s.Buckets))
	}
	mar := s.Buckets[2]
	if mar.Value(model.Intern) != 3 || mar.Value(model.Holiday) != 0 || mar.Value(model.Study) != 0 || mar.Total != 3 {
		t.Errorf("March bucket = %+v, want intern=3 total=3", mar)
	}
	if s.Max != 3 {
		t.Errorf("Max = %v, want 3", s.Max)
	}
}

func TestMonthlyExcludesOtherYearsAndUnknownCategories(t *testing.T) {
	entries := []model.Entry{
		{Date: "2023-12-31", Hours: 5, Category: model.Intern},
		{Date: "2025-01-01", Hours: 5, Category: model.Intern},
		{Date: "2024-01-15", Hours: 2, Category: "vacation"},
		{Date: "", Hours: 2, Category: model.Intern},
		{Date: "not-a-date", Hours: 2, Category: model.Intern},
		{Date: "2024-01-15", Hours: 1, Category: model.Study},
	}
	s := aggregate.Build(entries, aggregate.MonthlyPeriod(2024))
	var sum float64
	for _, b := range s.Buckets {
		sum += b.Total
	}
	if sum != 1 {
		t.Errorf("year total = %v, want 1", sum)
	}
}

func TestMonthlyTotalsMatchYearHours(t *testing.T) {
	entries := []model.Entry{
		{Date: "2024-01-01", Hours: 1.5, Category: model.Intern},
		{Date: "2024-06-30", Hours: 8, Category: model.Study},
		{Date: "2024-06-30", Hours: 0, Category: model.Holiday},
		{Date: "2024-12-31", Hours: 7.25, Category: model.Holiday},
		{Date: "2023-06-30", Hours: 100, Category: model.Study},
	}
	s := aggregate.Build(entries, aggregate.MonthlyPeriod(2024))
	var sum, perCat float64
	for _, b := range s.Buckets {
		sum += b.Total
		for _, c := range model.Categories {
			perCat += b.Value(c)
		}
	}
	if sum != 16.75 || perCat != 16.75 {
		t.Errorf("sum = %v, per-category = %v, want 16.75", sum, perCat)
	}
}

func TestDailyWindowHasExactlyNBuckets(t *testing.T) {
	end := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	for _, n := range aggregate.AllowedWindows {
		s := aggregate.Build(nil, aggregate.DailyPeriod(end, n))
		if len(s.Buckets) != n {
			t.Errorf("window %d: buckets = %d", n, len(s.Buckets))
		}
		if s.Max != 1 {
			t.Errorf("window %d: empty Max = %v, want 1", n, s.Max)
		}
		for _, b := range s.Buckets {
			if !b.Empty() {
				t.Errorf("window %d: bucket %v not empty", n, b.Start)
			}
		}
		last := s.Buckets[n-1].Start
		if last.Format(model.DateLayout) != "2024-03-10" {
			t.Errorf("window %d: last bucket = %v, want 2024-03-10", n, last)
		}
	}
}

func TestDailyNegativeDaysIsEmpty(t *testing.T) {
	end := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	entries := []model.Entry{{Date: "2024-03-10", Hours: 2, Category: model.Intern}}
	s := aggregate.Build(entries, aggregate.DailyPeriod(end, -1))
	if len(s.Buckets) != 0 {
		t.Errorf("buckets = %d, want 0", len(s.Buckets))
	}
	if s.Max != 1 {
		t.Errorf("Max = %v, want 1", s.Max)
	}
}

func TestDailySameDayCategories(t *testing.T) {
	end := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	entries := []model.Entry{
		{Date: "2024-03-09", Hours: 2, Category: model.Intern},
		{Date: "2024-03-09", Hours: 1, Category: model.Study},
		{Date: "2024-03-11", Hours: 4, Category: model.Study},
		{Date: "2024-01-01", Hours: 4, Category: model.Study},
	}
	s := aggregate.Build(entries, aggregate.DailyPeriod(end, 30))
	day := s.Buckets[28]
	if day.Total != 3 || day.Value(model.Intern) != 2 || day.Value(model.Study) != 1 || day.Value(model.Holiday) != 0 {
		t.Errorf("2024-03-09 bucket = %+v", day)
	}
	var sum float64
	for _, b := range s.Buckets {
		sum += b.Total
	}
	if math.Abs(sum-3) > 1e-9 {
		t.Errorf("window total = %v, want 3", sum)
	}
	if s.Max != 3 {
		t.Errorf("Max = %v, want 3", s.Max)
	}
}

func TestParsePeriod(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		input   string
		gran    aggregate.Granularity
		days    int
		wantErr bool
	}{
		{"", aggregate.Monthly, 0, false},
		{"year", aggregate.Monthly, 0, false},
		{"30", aggregate.Daily, 30, false},
		{"60d", aggregate.Daily, 60, false},
		{"90", aggregate.Daily, 90, false},
		{"45", 0, 0, true},
		{"week", 0, 0, true},
	}
	for _, tt := range tests {
		p, err := aggregate.ParsePeriod(tt.input, now)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePeriod(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			continue
		}
		if p.Granularity != tt.gran || p.Days != tt.days {
			t.Errorf("ParsePeriod(%q) = %+v", tt.input, p)
		}
		if p.Granularity == aggregate.Monthly && p.Year != 2024 {
			t.Errorf("ParsePeriod(%q) year = %d, want 2024", tt.input, p.Year)
		}
	}
}
