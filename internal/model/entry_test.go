package model_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Tiliavir/diary/internal/model"
)

func TestHoursUnmarshal(t *testing.T) {
	tests := []struct {
		input string
		want  model.Hours
	}{
		{`3`, 3},
		{`2.5`, 2.5},
		{`"4"`, 4},
		{`" 1.5 "`, 1.5},
		{`"abc"`, 0},
		{`""`, 0},
		{`null`, 0},
		{`true`, 0},
		{`{"a":1}`, 0},
		{`-2`, 0},
	}
	for _, tt := range tests {
		var e model.Entry
		if err := json.Unmarshal([]byte(`{"hours":`+tt.input+`}`), &e); err != nil {
			t.Fatalf("Unmarshal(%s): %v", tt.input, err)
		}
		if e.Hours != tt.want {
			t.Errorf("hours %s = %v, want %v", tt.input, e.Hours, tt.want)
		}
	}
}

func TestHoursMissingDefaultsToZero(t *testing.T) {
	var e model.Entry
	if err := json.Unmarshal([]byte(`{"id":"x","title":"t"}`), &e); err != nil {
		t.Fatal(err)
	}
	if e.Hours != 0 {
		t.Errorf("Hours = %v, want 0", e.Hours)
	}
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{" 2024-03-05 ", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"2024-03-05T10:00:00Z", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"05/03/2024", time.Time{}, false},
		{"2024-13-01", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := model.ParseDay(tt.input)
		if ok != tt.ok || !got.Equal(tt.want) {
			t.Errorf("ParseDay(%q) = %v, %v, want %v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDisplayCategory(t *testing.T) {
	tests := []struct {
		category model.Category
		want     model.Category
	}{
		{model.Intern, model.Intern},
		{model.Holiday, model.Holiday},
		{model.Study, model.Study},
		{"vacation", model.Intern},
		{"", model.Intern},
	}
	for _, tt := range tests {
		e := model.Entry{Category: tt.category}
		if got := e.DisplayCategory(); got != tt.want {
			t.Errorf("DisplayCategory(%q) = %q, want %q", tt.category, got, tt.want)
		}
		if e.Category != tt.category {
			t.Errorf("DisplayCategory mutated stored category to %q", e.Category)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := (model.Entry{Date: "2024-03-05", Title: "X"}).Validate(); err != nil {
		t.Errorf("Validate: unexpected error %v", err)
	}
	if err := (model.Entry{Title: "X"}).Validate(); !errors.Is(err, model.ErrMissingDate) {
		t.Errorf("Validate without date = %v, want ErrMissingDate", err)
	}
	if err := (model.Entry{Date: "2024-03-05", Title: "  "}).Validate(); !errors.Is(err, model.ErrMissingTitle) {
		t.Errorf("Validate without title = %v, want ErrMissingTitle", err)
	}
}

func TestNormalize(t *testing.T) {
	e := model.Entry{Date: " 2024-03-05 ", Title: " X "}
	e.Normalize()
	if e.Date != "2024-03-05" || e.Title != "X" {
		t.Errorf("Normalize trimmed to %q/%q", e.Date, e.Title)
	}
	if e.Skills == nil || e.Links == nil || e.Photos == nil {
		t.Error("Normalize left nil slices")
	}
}

func TestNewID(t *testing.T) {
	a, b := model.NewID(), model.NewID()
	if a == "" || a == b {
		t.Errorf("NewID returned %q and %q, want two distinct ids", a, b)
	}
	if len(a) != 36 {
		t.Errorf("NewID length = %d, want 36", len(a))
	}
}
