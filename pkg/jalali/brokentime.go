package jalali

import "fmt"

// BrokenTime is a Jalali date and time decomposed into fields.
//
// Mon and Yday are zero based, Mday is one based. Wday counts from
// Shanbeh (Saturday) = 0. Wday and Yday are derived by Update and are
// never meant to be set independently.
type BrokenTime struct {
	Year int
	Mon  int
	Mday int
	Hour int
	Min  int
	Sec  int
	Wday int
	Yday int
	// IsDST is -1 when unknown.
	IsDST int
	// GMTOff is the offset east of UTC in seconds.
	GMTOff int
	Zone   string
}

// Date returns a BrokenTime for the given date with the clock fields zeroed
// and Yday/Wday derived. Fields are carried like Update does.
func Date(year, mon, mday int) BrokenTime {
	return Update(BrokenTime{Year: year, Mon: mon, Mday: mday, IsDST: -1})
}

// Valid reports whether the date and clock fields are in canonical range.
func (t BrokenTime) Valid() bool {
	if t.Mon < 0 || t.Mon > 11 {
		return false
	}
	if t.Mday < 1 || t.Mday > MonthDays(t.Year, t.Mon) {
		return false
	}
	return t.Hour >= 0 && t.Hour <= 23 &&
		t.Min >= 0 && t.Min <= 59 &&
		t.Sec >= 0 && t.Sec <= 59
}

// String renders the value in a debugging friendly form.
func (t BrokenTime) String() string {
	return fmt.Sprintf("%d/%02d/%02d (%02d:%02d:%02d) [%d] yday: %d, dst: %d, off: %d, zone: %s",
		t.Year, t.Mon+1, t.Mday, t.Hour, t.Min, t.Sec, t.Wday,
		t.Yday, t.IsDST, t.GMTOff, t.Zone)
}
