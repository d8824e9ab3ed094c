// Package aggregate buckets diary hours by month or by day for charting.
package aggregate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Tiliavir/diary/internal/model"
	"github.com/Tiliavir/diary/internal/timecalc"
)

// Granularity selects the bucket size.
type Granularity int

const (
	Monthly Granularity = iota
	Daily
)

func (g Granularity) String() string {
	if g == Daily {
		return "daily"
	}
	return "monthly"
}

// AllowedWindows are the trailing window lengths supported in daily mode.
var AllowedWindows = []int{30, 60, 90}

// Period describes which buckets to produce. Monthly periods use Year; daily
// periods use End and Days.
type Period struct {
	Granularity Granularity
	Year        int
	End         time.Time
	Days        int
}

// MonthlyPeriod returns the Jan–Dec period of year.
func MonthlyPeriod(year int) Period {
	return Period{Granularity: Monthly, Year: year}
}

// DailyPeriod returns the trailing window of days ending on end's date.
func DailyPeriod(end time.Time, days int) Period {
	return Period{Granularity: Daily, End: end, Days: days}
}

// ParsePeriod parses "year" (or "" / "monthly") as the current year, and
// "30", "60" or "90" as a trailing daily window ending at now.
func ParsePeriod(s string, now time.Time) (Period, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "", "year", "monthly":
		return MonthlyPeriod(now.Year()), nil
	}
	n, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
	if err != nil {
		return Period{}, fmt.Errorf("invalid chart period %q: want year, 30, 60 or 90", s)
	}
	p := DailyPeriod(now, n)
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// Validate rejects daily windows outside AllowedWindows.
func (p Period) Validate() error {
	if p.Granularity != Daily {
		return nil
	}
	for _, n := range AllowedWindows {
		if p.Days == n {
			return nil
		}
	}
	return fmt.Errorf("invalid daily window %d: must be one of %v", p.Days, AllowedWindows)
}

func (p Period) String() string {
	if p.Granularity == Daily {
		return strconv.Itoa(p.Days)
	}
	return "year"
}

// Bucket holds the summed hours per category of one month or one day.
type Bucket struct {
	Start  time.Time
	Values map[model.Category]float64
	Total  float64
}

// Value returns the hours of category c in the bucket.
func (b Bucket) Value(c model.Category) float64 {
	return b.Values[c]
}

// Empty reports whether nothing was logged in the bucket.
func (b Bucket) Empty() bool {
	return b.Total <= 0
}

// Series is the ordered output of Build. Max is the largest bucket total,
// never below 1, and is the denominator for proportional rendering.
type Series struct {
	Period  Period
	Buckets []Bucket
	Max     float64
}

// Build buckets entries according to p. Entries without a parseable date,
// outside the period or with an unrecognised category contribute nothing.
func Build(entries []model.Entry, p Period) Series {
	var starts []time.Time
	if p.Granularity == Daily {
		starts = timecalc.TrailingDays(p.End, p.Days)
	} else {
		starts = make([]time.Time, 12)
		for m := range starts {
			starts[m] = time.Date(p.Year, time.Month(m+1), 1, 0, 0, 0, 0, time.UTC)
		}
	}

	buckets := make([]Bucket, len(starts))
	index := make(map[string]int, len(starts))
	for i, s := range starts {
		buckets[i] = Bucket{Start: s, Values: zeroValues()}
		index[model.DayKey(s)] = i
	}

	for _, e := range entries {
		if !e.Category.Known() {
			continue
		}
		day, ok := e.Day()
		if !ok {
			continue
		}
		key := day
		if p.Granularity == Monthly {
			key = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		}
		i, ok := index[model.DayKey(key)]
		if !ok {
			continue
		}
		h := e.Hours.Float()
		buckets[i].Values[e.Category] += h
		buckets[i].Total += h
	}

	top := 1.0
	for _, b := range buckets {
		if b.Total > top {
			top = b.Total
		}
	}
	return Series{Period: p, Buckets: buckets, Max: top}
}

func zeroValues() map[model.Category]float64 {
	v := make(map[model.Category]float64, len(model.Categories))
	for _, c := range model.Categories {
		v[c] = 0
	}
	return v
}
