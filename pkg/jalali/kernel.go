package jalali

import "fmt"

// Calendar and clock units.
const (
	SecondsPerMinute = 60
	SecondsPerHour   = 60 * SecondsPerMinute
	SecondsPerDay    = 24 * SecondsPerHour
	DaysPerWeek      = 7
	MonthsPerYear    = 12
)

// DaysFromDate returns the zero-based day of year of t's Mon and Mday.
func DaysFromDate(t BrokenTime) (int, error) {
	yday, ok := TryDaysFromDate(t)
	if !ok {
		return 0, fmt.Errorf("%w: %d-%02d-%02d", ErrInvalidCalendar, t.Year, t.Mon+1, t.Mday)
	}
	return yday, nil
}

// TryDaysFromDate is DaysFromDate reporting failure with a flag.
func TryDaysFromDate(t BrokenTime) (int, bool) {
	if t.Mon < 0 || t.Mon > 11 {
		return 0, false
	}
	if t.Mday < 1 || t.Mday > MonthDays(t.Year, t.Mon) {
		return 0, false
	}
	return daysBeforeMonth(t.Mon) + t.Mday - 1, true
}

// DateFromDays returns t with Mon and Mday filled from Year and Yday.
func DateFromDays(t BrokenTime) (BrokenTime, error) {
	out, ok := TryDateFromDays(t)
	if !ok {
		return t, fmt.Errorf("%w: day %d of year %d", ErrInvalidCalendar, t.Yday, t.Year)
	}
	return out, nil
}

// TryDateFromDays is DateFromDays reporting failure with a flag. On failure
// the returned value is t unchanged.
func TryDateFromDays(t BrokenTime) (BrokenTime, bool) {
	if t.Yday < 0 || t.Yday >= YearDays(t.Year) {
		return t, false
	}
	t.Mon, t.Mday = monthOfYday(t.Yday)
	return t, true
}

// Update carries Mday and Mon overflow into the larger fields and derives
// Yday and Wday. The clock fields are left as they are.
func Update(t BrokenTime) BrokenTime {
	t.Year, t.Mon, t.Mday = normalizeDate(t.Year, t.Mon, t.Mday)
	t.Yday = daysBeforeMonth(t.Mon) + t.Mday - 1
	t.Wday = Weekday(epochDays(t.Year, t.Yday))
	return t
}

// DiffDays returns the signed number of days between the epoch and t's date.
func DiffDays(t BrokenTime) (int, error) {
	yday, err := DaysFromDate(t)
	if err != nil {
		return 0, err
	}
	return epochDays(t.Year, yday), nil
}

// DateFromEpochDays builds the date that is days away from the epoch.
func DateFromEpochDays(days int) BrokenTime {
	a := days + epochOffset
	year := LeapBase + floorDiv(a*LeapPeriod, DaysInPeriod)
	for daysBeforeYear(year) > a {
		year--
	}
	for daysBeforeYear(year+1) <= a {
		year++
	}

	t := BrokenTime{Year: year, Yday: a - daysBeforeYear(year), IsDST: -1}
	t.Mon, t.Mday = monthOfYday(t.Yday)
	t.Wday = Weekday(days)
	return t
}

// Weekday returns the weekday, Shanbeh = 0, of an epoch day.
func Weekday(days int) int {
	return floorMod(days+EpochWday, DaysPerWeek)
}

func epochDays(year, yday int) int {
	return daysBeforeYear(year) + yday - epochOffset
}

func daysBeforeMonth(mon int) int {
	if mon <= 6 {
		return 31 * mon
	}
	return 186 + 30*(mon-6)
}

func monthOfYday(yday int) (mon, mday int) {
	if yday < 186 {
		return yday / 31, yday%31 + 1
	}
	yday -= 186
	return 6 + yday/30, yday%30 + 1
}

// normalizeDate resolves the month into the year, then walks mday into
// range. Whole years are stepped first (a twelve month span starting at any
// month holds exactly one Esfand), then single months.
func normalizeDate(year, mon, mday int) (int, int, int) {
	year += floorDiv(mon, 12)
	mon = floorMod(mon, 12)

	for mday > YearDays(year) {
		mday -= YearDays(year)
		year++
	}
	for mday <= -YearDays(year-1) {
		year--
		mday += YearDays(year)
	}

	for n := MonthDays(year, mon); mday > n; n = MonthDays(year, mon) {
		mday -= n
		mon++
		if mon == 12 {
			mon = 0
			year++
		}
	}
	for mday < 1 {
		mon--
		if mon < 0 {
			mon = 11
			year--
		}
		mday += MonthDays(year, mon)
	}
	return year, mon, mday
}

// AbsTime is a signed duration split into days and clock fields.
type AbsTime struct {
	Days int64
	Hour int
	Min  int
	Sec  int
}

// AbsTimeFromSeconds splits secs. Days is floored so the clock fields are
// never negative.
func AbsTimeFromSeconds(secs int64) AbsTime {
	days := secs / SecondsPerDay
	rem := secs % SecondsPerDay
	if rem < 0 {
		rem += SecondsPerDay
		days--
	}
	return AbsTime{
		Days: days,
		Hour: int(rem / SecondsPerHour),
		Min:  int(rem % SecondsPerHour / SecondsPerMinute),
		Sec:  int(rem % SecondsPerMinute),
	}
}

// Seconds returns the total number of seconds of a.
func (a AbsTime) Seconds() int64 {
	return a.Days*SecondsPerDay +
		int64(a.Hour)*SecondsPerHour +
		int64(a.Min)*SecondsPerMinute +
		int64(a.Sec)
}
