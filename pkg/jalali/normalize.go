package jalali

// MicrosecondsPerSecond is the number of microseconds in a second.
const MicrosecondsPerSecond = 1000000

// Civil is a date and time whose fields may be out of range. Month is zero
// based.
type Civil struct {
	Year        int
	Month       int
	Day         int
	Hour        int
	Minute      int
	Second      int
	Microsecond int
}

// Normalize carries overflow and underflow from Microsecond up to Year
// using floor division, so negative values borrow from the next unit. The
// month is folded into the year before the day is walked month by month
// into range. Normalize is idempotent.
func Normalize(c Civil) Civil {
	var carry int

	carry, c.Microsecond = floorDivMod(c.Microsecond, MicrosecondsPerSecond)
	c.Second += carry
	carry, c.Second = floorDivMod(c.Second, 60)
	c.Minute += carry
	carry, c.Minute = floorDivMod(c.Minute, 60)
	c.Hour += carry
	carry, c.Hour = floorDivMod(c.Hour, 24)
	c.Day += carry

	c.Year, c.Month, c.Day = normalizeDate(c.Year, c.Month, c.Day)
	return c
}

// NormalizeTime normalizes t together with a microsecond count and
// refreshes Yday and Wday. IsDST, GMTOff and Zone pass through.
func NormalizeTime(t BrokenTime, usec int) (BrokenTime, int) {
	c := Normalize(Civil{
		Year:        t.Year,
		Month:       t.Mon,
		Day:         t.Mday,
		Hour:        t.Hour,
		Minute:      t.Min,
		Second:      t.Sec,
		Microsecond: usec,
	})
	t.Year, t.Mon, t.Mday = c.Year, c.Month, c.Day
	t.Hour, t.Min, t.Sec = c.Hour, c.Minute, c.Second
	return Update(t), c.Microsecond
}
