// Package i18n holds the diary's localized labels.
package i18n

import (
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Tiliavir/diary/internal/model"
)

// Message keys.
const (
	KeyHoursUnit      = "unit.hours"
	KeyMore           = "calendar.more"
	KeyListTotals     = "list.totals"
	KeyListEmpty      = "list.empty"
	KeyNoticeSaved    = "notice.saved"
	KeyNoticeDeleted  = "notice.deleted"
	KeyNoticeImported = "notice.imported"
	KeyNoticeReset    = "notice.reset"
	KeyNoticeInvalid  = "notice.invalid_file"
	KeyNoticeRequired = "notice.required"
	KeyNoticeBusy     = "notice.busy"
	KeyMailSubject    = "mail.subject"
	KeyMailGreeting   = "mail.greeting"
	KeyMailTotal      = "mail.total"
	KeyReportTitle    = "report.title"
	KeyReportTotal    = "report.total_hours"
	KeyReportDays     = "report.work_days"
	KeyReportEntries  = "report.entries"
	KeyReportCategory = "report.by_category"
	KeyReportSkills   = "report.top_skills"
	KeyReportNone     = "report.none"
)

// Supported lists the languages with a registered catalog.
var Supported = []language.Tag{language.English, language.Thai}

var matcher = language.NewMatcher(Supported)

// Printer formats localized diary labels.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// New returns a Printer for the best supported match of lang (e.g. "th",
// "en-US"). Unknown or empty values fall back to English.
func New(lang string) *Printer {
	tag := language.English
	if lang != "" {
		if parsed, err := language.Parse(lang); err == nil {
			_, idx, conf := matcher.Match(parsed)
			if conf != language.No {
				tag = Supported[idx]
			}
		}
	}
	return &Printer{tag: tag, p: message.NewPrinter(tag)}
}

// Tag returns the language the printer resolved to.
func (p *Printer) Tag() language.Tag {
	return p.tag
}

// Sprintf formats a catalog message.
func (p *Printer) Sprintf(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}

// Category returns the localized label for c. Unknown categories are passed
// through unchanged.
func (p *Printer) Category(c model.Category) string {
	if !c.Known() {
		return string(c)
	}
	return p.p.Sprintf("category." + string(c))
}

// MonthShort returns the abbreviated month name.
func (p *Printer) MonthShort(m time.Month) string {
	return p.p.Sprintf(monthShortKeys[m-1])
}

// buddhistEraOffset converts a Gregorian year to the Thai solar calendar.
const buddhistEraOffset = 543

// MonthTitle returns the full "Month Year" heading used by calendars and reports.
// Thai titles count years in the Buddhist era. The year is passed
// pre-formatted so the printer does not group its digits.
func (p *Printer) MonthTitle(year int, m time.Month) string {
	if p.tag == language.Thai {
		year += buddhistEraOffset
	}
	return p.p.Sprintf("month.title", p.p.Sprintf(monthLongKeys[m-1]), strconv.Itoa(year))
}

// Weekdays returns the Sunday-first weekday headers.
func (p *Printer) Weekdays() [7]string {
	var out [7]string
	for i, k := range weekdayKeys {
		out[i] = p.p.Sprintf(k)
	}
	return out
}

// Hours formats a quantity followed by the localized unit.
func (p *Printer) Hours(formatted string) string {
	return formatted + " " + p.p.Sprintf(KeyHoursUnit)
}

var monthShortKeys = [12]string{
	"month.short.1", "month.short.2", "month.short.3", "month.short.4",
	"month.short.5", "month.short.6", "month.short.7", "month.short.8",
	"month.short.9", "month.short.10", "month.short.11", "month.short.12",
}

var monthLongKeys = [12]string{
	"month.long.1", "month.long.2", "month.long.3", "month.long.4",
	"month.long.5", "month.long.6", "month.long.7", "month.long.8",
	"month.long.9", "month.long.10", "month.long.11", "month.long.12",
}

var weekdayKeys = [7]string{
	"weekday.0", "weekday.1", "weekday.2", "weekday.3",
	"weekday.4", "weekday.5", "weekday.6",
}
