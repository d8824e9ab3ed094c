// Package report summarises one month of diary entries.
package report

import (
	"sort"
	"time"

	"github.com/Tiliavir/diary/internal/model"
)

// CategoryHours is the hour total of one category.
type CategoryHours struct {
	Category model.Category
	Hours    float64
}

// SkillHours is the hour total attributed to one skill tag.
type SkillHours struct {
	Name  string
	Hours float64
}

// Report is the computed content shared by every rendering.
type Report struct {
	Year       int
	Month      time.Month
	Entries    []model.Entry
	TotalHours float64
	WorkDays   int
	ByCategory []CategoryHours
	TopSkills  []SkillHours
}

// Generate selects the entries dated in year/month, oldest first, and
// computes the monthly totals. Each skill of an entry is credited with the
// entry's full hours. Categories outside the closed set are left out of
// ByCategory but still count towards TotalHours.
func Generate(year int, month time.Month, entries []model.Entry) Report {
	r := Report{Year: year, Month: month}

	for _, e := range entries {
		day, ok := e.Day()
		if !ok || day.Year() != year || day.Month() != month {
			continue
		}
		r.Entries = append(r.Entries, e)
	}
	sort.SliceStable(r.Entries, func(i, j int) bool {
		a, _ := r.Entries[i].Day()
		b, _ := r.Entries[j].Day()
		return a.Before(b)
	})

	days := map[string]struct{}{}
	byCat := map[model.Category]float64{}
	skills := map[string]float64{}
	var skillOrder []string
	for _, e := range r.Entries {
		h := e.Hours.Float()
		r.TotalHours += h
		day, _ := e.Day()
		days[model.DayKey(day)] = struct{}{}
		if e.Category.Known() {
			byCat[e.Category] += h
		}
		for _, s := range e.Skills {
			if _, seen := skills[s]; !seen {
				skillOrder = append(skillOrder, s)
			}
			skills[s] += h
		}
	}
	r.WorkDays = len(days)

	for _, c := range model.Categories {
		r.ByCategory = append(r.ByCategory, CategoryHours{Category: c, Hours: byCat[c]})
	}

	for _, s := range skillOrder {
		r.TopSkills = append(r.TopSkills, SkillHours{Name: s, Hours: skills[s]})
	}
	sort.SliceStable(r.TopSkills, func(i, j int) bool {
		return r.TopSkills[i].Hours > r.TopSkills[j].Hours
	})
	return r
}

// CategoryTotal returns the hours of c.
func (r Report) CategoryTotal(c model.Category) float64 {
	for _, ch := range r.ByCategory {
		if ch.Category == c {
			return ch.Hours
		}
	}
	return 0
}
