package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.Thai

	message.SetString(lang, "category.intern", "ฝึกงาน")
	message.SetString(lang, "category.holiday", "วันหยุด")
	message.SetString(lang, "category.study", "ไปเรียน")

	for i, name := range []string{"ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.", "ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค."} {
		message.SetString(lang, monthShortKeys[i], name)
	}
	for i, name := range []string{"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน", "กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม"} {
		message.SetString(lang, monthLongKeys[i], name)
	}
	for i, name := range []string{"อา.", "จ.", "อ.", "พ.", "พฤ.", "ศ.", "ส."} {
		message.SetString(lang, weekdayKeys[i], name)
	}
	message.SetString(lang, "month.title", "%s %s")

	message.SetString(lang, KeyHoursUnit, "ชม.")
	message.SetString(lang, KeyMore, "+%d รายการ")
	message.SetString(lang, KeyListTotals, "%d entries · %s ชม.")
	message.SetString(lang, KeyListEmpty, "ไม่พบบันทึก")

	message.SetString(lang, KeyNoticeSaved, "บันทึกแล้ว")
	message.SetString(lang, KeyNoticeDeleted, "ลบแล้ว")
	message.SetString(lang, KeyNoticeImported, "นำเข้าแล้ว %d รายการ")
	message.SetString(lang, KeyNoticeReset, "ล้างแล้ว")
	message.SetString(lang, KeyNoticeInvalid, "ไฟล์ไม่ถูกต้อง")
	message.SetString(lang, KeyNoticeRequired, "กรอกวันที่และหัวข้อก่อนนะ")
	message.SetString(lang, KeyNoticeBusy, "กำลังบันทึกอยู่")

	message.SetString(lang, KeyMailSubject, "รายงานบันทึกการฝึกงาน")
	message.SetString(lang, KeyMailGreeting, "สวัสดีค่ะ/ครับ,")
	message.SetString(lang, KeyMailTotal, "สรุปชั่วโมงรวม %s ชม.")

	message.SetString(lang, KeyReportTitle, "รายงานประจำเดือน %s")
	message.SetString(lang, KeyReportTotal, "ชั่วโมงรวม")
	message.SetString(lang, KeyReportDays, "จำนวนวันทำงาน")
	message.SetString(lang, KeyReportEntries, "บันทึก")
	message.SetString(lang, KeyReportCategory, "ชั่วโมงตามประเภท")
	message.SetString(lang, KeyReportSkills, "ทักษะเด่น")
	message.SetString(lang, KeyReportNone, "ไม่มีบันทึกในเดือนนี้")
}
