package msgraph

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/Tiliavir/diary/internal/model"
	"github.com/Tiliavir/diary/internal/timecalc"
)

// IDPrefix marks entries imported from Outlook. The rest of the id is the
// Graph event id, which keeps repeated imports idempotent.
const IDPrefix = "outlook-"

// EntryStore is the part of the diary store an import needs.
type EntryStore interface {
	Lookup(id string) (model.Entry, bool)
	Upsert(ctx context.Context, e model.Entry) (model.Entry, error)
}

// SyncResult holds counters for a sync operation.
type SyncResult struct {
	Imported int
	Skipped  int
	Updated  int
	Errors   int
}

// SyncOptions configures a sync run.
type SyncOptions struct {
	DryRun   bool
	Timezone string
	// Category is assigned to new entries. Empty means intern.
	Category model.Category
	// Out receives one progress line per event. Nil discards them.
	Out io.Writer
}

// parseGraphTime parses a Graph API dateTime string in the given timezone.
// Graph returns times like "2026-02-27T09:00:00.0000000" without a zone suffix
// when a Prefer: outlook.timezone header is set.
func parseGraphTime(dt, tz string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, dt); err == nil {
		return t, nil
	}

	loc := time.UTC
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}

	for _, layout := range []string{
		"2006-01-02T15:04:05.0000000",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.ParseInLocation(layout, dt, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse graph time %q", dt)
}

// eventTasks combines bodyPreview and location into the entry's tasks text.
func eventTasks(event CalendarEvent) string {
	var parts []string
	if event.BodyPreview != "" {
		parts = append(parts, strings.TrimSpace(event.BodyPreview))
	}
	if event.Location.DisplayName != "" {
		parts = append(parts, event.Location.DisplayName)
	}
	return strings.Join(parts, "\n")
}

// ShouldSkip reports whether event is left out of an import: cancelled,
// all-day, private or free events, and events without times.
func ShouldSkip(event CalendarEvent) bool {
	return event.IsCancelled ||
		event.IsAllDay ||
		event.Sensitivity == "private" ||
		event.ShowAs == "free" ||
		event.Start.DateTime == "" || event.End.DateTime == ""
}

// MapEvent converts a Graph event into a diary entry dated on the event's
// start day, with its duration in hours rounded to two decimals.
func MapEvent(event CalendarEvent, timezone string, category model.Category) (model.Entry, error) {
	start, err := parseGraphTime(event.Start.DateTime, timezone)
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing start time: %w", err)
	}
	end, err := parseGraphTime(event.End.DateTime, timezone)
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing end time: %w", err)
	}
	if category == "" {
		category = model.Intern
	}

	hours := math.Max(0, end.Sub(start).Hours())
	e := model.Entry{
		ID:       IDPrefix + event.ID,
		Date:     model.DayKey(start),
		Title:    strings.TrimSpace(event.Subject),
		Hours:    model.Hours(math.Round(hours*100) / 100),
		Category: category,
		Tasks:    eventTasks(event),
	}
	if e.Title == "" {
		e.Title = "(no subject)"
	}
	e.Normalize()
	return e, nil
}

// Sync stores the importable events. Entries imported earlier are updated
// only when the event's date, title, hours or tasks changed; fields the user
// added since (mood, skills, links, photos, category) are kept.
func Sync(ctx context.Context, events []CalendarEvent, store EntryStore, opts SyncOptions) (SyncResult, error) {
	var result SyncResult
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	for _, event := range events {
		if ShouldSkip(event) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		entry, err := MapEvent(event, opts.Timezone, opts.Category)
		if err != nil {
			fmt.Fprintf(out, "  ! Error mapping event %q: %v\n", event.Subject, err)
			result.Errors++
			continue
		}
		label := fmt.Sprintf("%s (%s h)", entry.Title, timecalc.FormatHoursTrim(entry.Hours.Float()))

		existing, found := store.Lookup(entry.ID)
		if found {
			if existing.Date == entry.Date && existing.Title == entry.Title &&
				existing.Hours == entry.Hours && existing.Tasks == entry.Tasks {
				fmt.Fprintf(out, "  – Skipped:  %s (already exists)\n", entry.Title)
				result.Skipped++
				continue
			}
			merged := existing
			merged.Date, merged.Title, merged.Hours, merged.Tasks = entry.Date, entry.Title, entry.Hours, entry.Tasks
			entry = merged
		}

		if !opts.DryRun {
			if _, err := store.Upsert(ctx, entry); err != nil {
				fmt.Fprintf(out, "  ! Error saving %q: %v\n", entry.Title, err)
				result.Errors++
				continue
			}
		}
		if found {
			fmt.Fprintf(out, "  ↑ Updated:  %s\n", label)
			result.Updated++
		} else {
			fmt.Fprintf(out, "  ✓ Imported: %s\n", label)
			result.Imported++
		}
	}
	return result, nil
}
