package jalali

import (
	"strconv"
	"strings"
)

// Month names, Farvardin first.
var (
	MonthNames        = [12]string{"Farvardin", "Ordibehesht", "Khordaad", "Tir", "Mordaad", "Shahrivar", "Mehr", "Aabaan", "Aazar", "Dey", "Bahman", "Esfand"}
	MonthNamesShort   = [12]string{"Far", "Ord", "Kho", "Tir", "Mor", "Sha", "Meh", "Aba", "Aza", "Dey", "Bah", "Esf"}
	MonthNamesFa      = [12]string{"فروردین", "اردیبهشت", "خرداد", "تیر", "مرداد", "شهریور", "مهر", "آبان", "آذر", "دی", "بهمن", "اسفند"}
	MonthNamesFaShort = [12]string{"فرو", "ارد", "خرد", "تیر", "مرد", "شهر", "مهر", "آبا", "آذر", "دی ", "بهم", "اسف"}
)

// Weekday names, Shanbeh (Saturday) first.
var (
	DayNames        = [7]string{"Saturday", "Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	DayNamesShort   = [7]string{"Sat", "Sun", "Mon", "Tue", "Wed", "Thu", "Fri"}
	DayNamesMin     = [7]string{"Sa", "Su", "Mo", "Tu", "We", "Th", "Fr"}
	DayNamesFaLatin = [7]string{"Shanbeh", "Yek-Shanbeh", "Do-Shanbeh", "Seh-Shanbeh", "Chahaar-Shanbeh", "Panj-Shanbeh", "Jomeh"}
	// transliterated abbreviations, used by %c, %h and Asctime
	DayNamesFaLatinShort = [7]string{"Sha", "Yek", "Dos", "Ses", "Cha", "Pan", "Jom"}
	DayNamesFaLatinMin   = [7]string{"Sh", "Ye", "Do", "Se", "Ch", "Pa", "Jo"}
	DayNamesFa           = [7]string{"شنبه", "یکشنبه", "دوشنبه", "سه شنبه", "چهارشنبه", "پنجشنبه", "جمعه"}
	DayNamesFaShort      = [7]string{"شنب", "یکش", "دوش", "سهش", "چها", "پنج", "جمع"}
	DayNamesFaMin        = [7]string{"شن", "یک", "دو", "سه", "چه", "پن", "جم"}
)

const (
	// UTCZone is the zone name of values built by Gmtime.
	UTCZone   = "UTC"
	utcZoneFa = "گرینویچ"
	amFa      = "ق.ظ"
	pmFa      = "ب.ظ"
)

var (
	zoneNamesFa = [2]string{"زمان زمستانی", "زمان تابستانی"}
	farsiDigits = [10]string{"۰", "۱", "۲", "۳", "۴", "۵", "۶", "۷", "۸", "۹"}
)

// FarsiDigits renders n with Arabic-Indic digits, zero padded to width.
func FarsiDigits(n, width int) string {
	neg := n < 0
	s := strconv.Itoa(n)
	if neg {
		s = s[1:]
	}
	for len(s) < width {
		s = "0" + s
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for _, c := range s {
		b.WriteString(farsiDigits[c-'0'])
	}
	return b.String()
}

// ToFarsiDigits replaces every ASCII digit of s.
func ToFarsiDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, c := range s {
		if c >= '0' && c <= '9' {
			b.WriteString(farsiDigits[c-'0'])
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}
