package timex

import (
	"strings"
	"time"
)

var arabicDigits = strings.NewReplacer(
	"0", "٠", "1", "١", "2", "٢", "3", "٣", "4", "٤",
	"5", "٥", "6", "٦", "7", "٧", "8", "٨", "9", "٩",
)

// FormatArabicDate renders a millisecond timestamp as a Gregorian
// day/month/year date in Arabic-Indic digits, e.g. "١/٣/٢٠٢٥".
// A zero timestamp renders as "-".
func FormatArabicDate(ms int64, loc *time.Location) string {
	if ms == 0 {
		return "-"
	}
	if loc == nil {
		loc = time.Local
	}
	return arabicDigits.Replace(time.UnixMilli(ms).In(loc).Format("2/1/2006"))
}
