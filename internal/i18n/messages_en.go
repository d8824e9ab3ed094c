package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, "category.intern", "Internship")
	message.SetString(lang, "category.holiday", "Holiday")
	message.SetString(lang, "category.study", "Study")

	for i, name := range []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"} {
		message.SetString(lang, monthShortKeys[i], name)
	}
	for i, name := range []string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"} {
		message.SetString(lang, monthLongKeys[i], name)
	}
	for i, name := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		message.SetString(lang, weekdayKeys[i], name)
	}
	message.SetString(lang, "month.title", "%s %s")

	message.SetString(lang, KeyHoursUnit, "h")
	message.SetString(lang, KeyMore, "+%d more")
	message.SetString(lang, KeyListTotals, "%d entries · %s h")
	message.SetString(lang, KeyListEmpty, "No entries found.")

	message.SetString(lang, KeyNoticeSaved, "Saved.")
	message.SetString(lang, KeyNoticeDeleted, "Deleted.")
	message.SetString(lang, KeyNoticeImported, "Imported %d entries.")
	message.SetString(lang, KeyNoticeReset, "All entries cleared.")
	message.SetString(lang, KeyNoticeInvalid, "Invalid file.")
	message.SetString(lang, KeyNoticeRequired, "Please fill in the date and title first.")
	message.SetString(lang, KeyNoticeBusy, "A submission is already in progress.")

	message.SetString(lang, KeyMailSubject, "Internship diary report")
	message.SetString(lang, KeyMailGreeting, "Hello,")
	message.SetString(lang, KeyMailTotal, "Total hours: %s h")

	message.SetString(lang, KeyReportTitle, "Monthly report: %s")
	message.SetString(lang, KeyReportTotal, "Total hours")
	message.SetString(lang, KeyReportDays, "Work days")
	message.SetString(lang, KeyReportEntries, "Entries")
	message.SetString(lang, KeyReportCategory, "Hours by category")
	message.SetString(lang, KeyReportSkills, "Top skills")
	message.SetString(lang, KeyReportNone, "No entries this month.")
}
