package jalali

import "fmt"

// Gmtime converts a POSIX timestamp to UTC broken-down time.
func Gmtime(ts int64) BrokenTime {
	ab := AbsTimeFromSeconds(ts)
	t := DateFromEpochDays(int(ab.Days))
	t.Hour, t.Min, t.Sec = ab.Hour, ab.Min, ab.Sec
	t.IsDST = 0
	t.GMTOff = 0
	t.Zone = UTCZone
	return t
}

// Localtime converts a POSIX timestamp to broken-down time in clk's zone.
func Localtime(ts int64, clk Clock) BrokenTime {
	off := LocalOffset(clk, ts)
	t := Gmtime(ts + int64(off.Seconds))
	t.GMTOff = off.Seconds
	t.Zone = off.Zone
	t.IsDST = 0
	if off.IsDST {
		t.IsDST = 1
	}
	return t
}

// Mktime returns the POSIX timestamp of t, taking t.GMTOff as its offset.
// The date fields are carried like Update does; the clock fields are used
// as they are.
func Mktime(t BrokenTime) int64 {
	t = Update(t)
	days := int64(epochDays(t.Year, t.Yday))
	return days*SecondsPerDay +
		int64(t.Hour)*SecondsPerHour +
		int64(t.Min)*SecondsPerMinute +
		int64(t.Sec) -
		int64(t.GMTOff)
}

// Asctime renders t like "Fri Aza 01 12:32:14 1392". It returns an empty
// string when Wday, Mon or Mday is out of range.
func Asctime(t BrokenTime) string {
	if t.Wday < 0 || t.Wday > 6 || t.Mon < 0 || t.Mon > 11 || t.Mday < 1 || t.Mday > 31 {
		return ""
	}
	return fmt.Sprintf("%s %s %02d %02d:%02d:%02d %d",
		DayNamesShort[t.Wday], MonthNamesShort[t.Mon],
		t.Mday, t.Hour, t.Min, t.Sec, t.Year)
}

// Ctime is Asctime of Localtime.
func Ctime(ts int64, clk Clock) string {
	return Asctime(Localtime(ts, clk))
}
