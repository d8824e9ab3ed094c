package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the layout of Entry.Date and of every day key in the diary.
const DateLayout = "2006-01-02"

// Category classifies what kind of day an entry records.
type Category string

const (
	Intern  Category = "intern"
	Holiday Category = "holiday"
	Study   Category = "study"
)

// Categories is the fixed order used for chart segments, legends and reports.
var Categories = []Category{Intern, Holiday, Study}

// Known reports whether c is one of the closed category set.
func (c Category) Known() bool {
	switch c {
	case Intern, Holiday, Study:
		return true
	}
	return false
}

var (
	ErrMissingDate  = errors.New("date is required")
	ErrMissingTitle = errors.New("title is required")
)

// Photo is a downscaled image attached to an entry.
type Photo struct {
	Name    string `json:"name"`
	DataURL string `json:"dataUrl"`
}

// Entry is one diary record for a specific date.
type Entry struct {
	ID       string   `json:"id"`
	Date     string   `json:"date"`
	Title    string   `json:"title"`
	Hours    Hours    `json:"hours"`
	Mood     string   `json:"mood"`
	Category Category `json:"category"`
	Tasks    string   `json:"tasks"`
	Skills   []string `json:"skills"`
	Links    []string `json:"links"`
	Photos   []Photo  `json:"photos"`
}

// NewID returns a fresh random entry identifier.
func NewID() string {
	return uuid.New().String()
}

// Day parses the entry date. The second result is false when the date is
// missing or unparseable.
func (e Entry) Day() (time.Time, bool) {
	return ParseDay(e.Date)
}

// DisplayCategory is the category used for list and calendar colouring.
// Unknown values are shown as intern; the stored value is left untouched.
func (e Entry) DisplayCategory() Category {
	if e.Category.Known() {
		return e.Category
	}
	return Intern
}

// Normalize trims the required text fields and replaces nil slices with empty
// ones so that exported JSON always carries arrays.
func (e *Entry) Normalize() {
	e.Date = strings.TrimSpace(e.Date)
	e.Title = strings.TrimSpace(e.Title)
	e.Tasks = strings.TrimSpace(e.Tasks)
	if e.Skills == nil {
		e.Skills = []string{}
	}
	if e.Links == nil {
		e.Links = []string{}
	}
	if e.Photos == nil {
		e.Photos = []Photo{}
	}
}

// Validate checks the fields a submission cannot do without.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.Date) == "" {
		return ErrMissingDate
	}
	if strings.TrimSpace(e.Title) == "" {
		return ErrMissingTitle
	}
	return nil
}

// ParseDay parses a "YYYY-MM-DD" date, also accepting the date prefix of an
// RFC 3339 timestamp. The result is midnight UTC.
func ParseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) && s[len(DateLayout)] == 'T' {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DayKey formats t as a "YYYY-MM-DD" key in t's own location.
func DayKey(t time.Time) string {
	return t.Format(DateLayout)
}

// Hours is a non-negative quantity of hours. It decodes from a JSON number or
// a numeric string; anything else decodes to 0.
type Hours float64

// Float returns h as a float64.
func (h Hours) Float() float64 {
	return float64(h)
}

// UnmarshalJSON implements json.Unmarshaler.
func (h *Hours) UnmarshalJSON(data []byte) error {
	*h = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
	} else {
		raw = string(data)
	}
	*h = ParseHours(raw)
	return nil
}

// ParseHours coerces free text to Hours. Empty, non-numeric, negative and
// non-finite input yields 0.
func ParseHours(s string) Hours {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 || v != v || v > 1e12 {
		return 0
	}
	return Hours(v)
}
