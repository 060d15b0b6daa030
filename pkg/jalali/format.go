package jalali

import (
	"strconv"
	"strings"
)

// Format expands the %-directives of layout against t.
//
// English names: %a %A %b %B. Transliterated Farsi weekday names: %h %q.
// Farsi script names: %g %G %v %V. Composite forms: %c %D %E %F %r %R %T
// %W %x %X. Numeric fields: %C %d %e %H %I %j %k %l %m %M %s %S %u %U %w %y
// %Y %z. Literals: %n %t %%. %O, %p and %P print the meridiem. %Z prints the
// zone name. Unknown directives print nothing.
//
// Wday and Yday are read as they are; pass a value that went through Update.
func Format(layout string, t BrokenTime) string {
	var b strings.Builder
	b.Grow(len(layout) * 4)

	for i := 0; i < len(layout); i++ {
		c := layout[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+1 == len(layout) {
			break
		}
		i++
		appendDirective(&b, layout[i], t)
	}
	return b.String()
}

func appendDirective(b *strings.Builder, d byte, t BrokenTime) {
	switch d {
	case 'a':
		b.WriteString(nameAt(DayNamesShort[:], t.Wday))
	case 'A':
		b.WriteString(nameAt(DayNames[:], t.Wday))
	case 'b':
		b.WriteString(nameAt(MonthNamesShort[:], t.Mon))
	case 'B':
		b.WriteString(nameAt(MonthNames[:], t.Mon))
	case 'c':
		b.WriteString(nameAt(DayNamesFaLatinShort[:], t.Wday))
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(t.Mday))
		b.WriteByte(' ')
		b.WriteString(nameAt(MonthNamesShort[:], t.Mon))
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(t.Year))
		b.WriteByte(' ')
		appendClock(b, t.Hour, t.Min, t.Sec)
		b.WriteByte(' ')
		b.WriteString(t.Zone)
	case 'C':
		b.WriteString(strconv.Itoa(t.Year/100 + 1))
	case 'd':
		appendInt(b, t.Mday, 2, '0')
	case 'D':
		b.WriteString(strconv.Itoa(t.Year))
		b.WriteByte('/')
		appendInt(b, t.Mon+1, 2, '0')
		b.WriteByte('/')
		appendInt(b, t.Mday, 2, '0')
	case 'e':
		appendInt(b, t.Mday, 2, ' ')
	case 'E':
		b.WriteString(nameAt(DayNamesFa[:], t.Wday))
		b.WriteByte(' ')
		b.WriteString(FarsiDigits(t.Mday, 2))
		b.WriteByte(' ')
		b.WriteString(nameAt(MonthNamesFa[:], t.Mon))
		b.WriteByte(' ')
		b.WriteString(FarsiDigits(t.Year, 0))
		b.WriteString("، ساعت ")
		appendFarsiClock(b, t)
		b.WriteString(" - ")
		b.WriteString(zoneNameFa(t))
	case 'F':
		b.WriteString(strconv.Itoa(t.Year))
		b.WriteByte('-')
		appendInt(b, t.Mon+1, 2, '0')
		b.WriteByte('-')
		appendInt(b, t.Mday, 2, '0')
	case 'g':
		b.WriteString(nameAt(DayNamesFaShort[:], t.Wday))
	case 'G':
		b.WriteString(nameAt(DayNamesFa[:], t.Wday))
	case 'v':
		b.WriteString(nameAt(MonthNamesFaShort[:], t.Mon))
	case 'V':
		b.WriteString(nameAt(MonthNamesFa[:], t.Mon))
	case 'h':
		b.WriteString(nameAt(DayNamesFaLatinShort[:], t.Wday))
	case 'q':
		b.WriteString(nameAt(DayNamesFaLatin[:], t.Wday))
	case 'H':
		appendInt(b, t.Hour, 2, '0')
	case 'I':
		appendInt(b, hour12(t.Hour), 2, '0')
	case 'j':
		appendInt(b, t.Yday+1, 3, '0')
	case 'k':
		appendInt(b, t.Hour, 2, ' ')
	case 'l':
		appendInt(b, hour12(t.Hour), 2, ' ')
	case 'm':
		appendInt(b, t.Mon+1, 2, '0')
	case 'M':
		appendInt(b, t.Min, 2, '0')
	case 'n':
		b.WriteByte('\n')
	case 'O':
		b.WriteString(meridiem(t.Hour, amFa, pmFa))
	case 'p':
		b.WriteString(meridiem(t.Hour, "AM", "PM"))
	case 'P':
		b.WriteString(meridiem(t.Hour, "am", "pm"))
	case 'r':
		appendClock(b, hour12(t.Hour), t.Min, t.Sec)
		b.WriteByte(' ')
		b.WriteString(meridiem(t.Hour, "AM", "PM"))
	case 'R':
		appendInt(b, t.Hour, 2, '0')
		b.WriteByte(':')
		appendInt(b, t.Min, 2, '0')
	case 's':
		b.WriteString(strconv.FormatInt(Mktime(t), 10))
	case 'S':
		appendInt(b, t.Sec, 2, '0')
	case 't':
		b.WriteByte('\t')
	case 'T':
		appendClock(b, t.Hour, t.Min, t.Sec)
	case 'u':
		b.WriteString(strconv.Itoa(t.Wday + 1))
	case 'U':
		// weeks start on Shanbeh, days before the first one are week 00
		appendInt(b, (t.Yday+7-t.Wday)/7, 2, '0')
	case 'w':
		b.WriteString(strconv.Itoa(t.Wday))
	case 'W':
		b.WriteString(FarsiDigits(t.Year, 0))
		b.WriteByte('/')
		b.WriteString(FarsiDigits(t.Mon+1, 2))
		b.WriteByte('/')
		b.WriteString(FarsiDigits(t.Mday, 2))
	case 'x':
		appendInt(b, t.Mday, 2, '0')
		b.WriteByte('/')
		appendInt(b, t.Mon+1, 2, '0')
		b.WriteByte('/')
		b.WriteString(strconv.Itoa(t.Year))
	case 'X':
		appendFarsiClock(b, t)
	case 'y':
		appendInt(b, floorMod(t.Year, 100), 2, '0')
	case 'Y':
		b.WriteString(strconv.Itoa(t.Year))
	case 'z':
		off := t.GMTOff
		if off < 0 {
			b.WriteByte('-')
			off = -off
		} else {
			b.WriteByte('+')
		}
		appendInt(b, off/SecondsPerHour, 2, '0')
		appendInt(b, off%SecondsPerHour/SecondsPerMinute, 2, '0')
	case 'Z':
		b.WriteString(t.Zone)
	case '%':
		b.WriteByte('%')
	}
}

func appendInt(b *strings.Builder, n, width int, pad byte) {
	s := strconv.Itoa(n)
	if n < 0 && pad == '0' {
		b.WriteByte('-')
		s = s[1:]
		width--
	}
	for i := len(s); i < width; i++ {
		b.WriteByte(pad)
	}
	b.WriteString(s)
}

func appendClock(b *strings.Builder, h, m, s int) {
	appendInt(b, h, 2, '0')
	b.WriteByte(':')
	appendInt(b, m, 2, '0')
	b.WriteByte(':')
	appendInt(b, s, 2, '0')
}

func appendFarsiClock(b *strings.Builder, t BrokenTime) {
	b.WriteString(FarsiDigits(t.Hour, 2))
	b.WriteByte(':')
	b.WriteString(FarsiDigits(t.Min, 2))
	b.WriteByte(':')
	b.WriteString(FarsiDigits(t.Sec, 2))
}

func nameAt(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return ""
	}
	return names[i]
}

func hour12(h int) int {
	if h%12 == 0 {
		return 12
	}
	return h % 12
}

func meridiem(h int, am, pm string) string {
	if h >= 0 && h < 12 {
		return am
	}
	return pm
}

func zoneNameFa(t BrokenTime) string {
	if t.Zone == UTCZone {
		return utcZoneFa
	}
	if t.IsDST > 0 {
		return zoneNamesFa[1]
	}
	return zoneNamesFa[0]
}
