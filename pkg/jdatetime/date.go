package jdatetime

import (
	"fmt"
	"time"

	"github.com/starford/jcal/pkg/jalali"
)

// Date is a Jalali calendar date. Month is 1 based.
type Date struct {
	year, month, day int

	derived *lazy[jalali.BrokenTime]
	hash    *lazy[uint64]
}

var (
	// MinDate is the earliest supported date, 0001-01-01.
	MinDate = MustDate(1, 1, 1)
	// MaxDate is the latest supported date, 9999-12-29.
	MaxDate = MustDate(9999, 12, 29)
	// DateResolution is the smallest difference between two dates.
	DateResolution = Days(1)
)

// NewDate returns the date year-month-day. It fails with
// jalali.ErrFieldRange when month is not in 1..12 or day does not exist in
// that month.
func NewDate(year, month, day int) (Date, error) {
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("%w: month %d not in 1..12", jalali.ErrFieldRange, month)
	}
	if n := jalali.MonthDays(year, month-1); day < 1 || day > n {
		return Date{}, fmt.Errorf("%w: day %d not in 1..%d for %d-%02d", jalali.ErrFieldRange, day, n, year, month)
	}
	return newDate(year, month, day), nil
}

// MustDate is like NewDate but panics on error.
func MustDate(year, month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

func newDate(year, month, day int) Date {
	return Date{
		year:    year,
		month:   month,
		day:     day,
		derived: new(lazy[jalali.BrokenTime]),
		hash:    new(lazy[uint64]),
	}
}

// dateOf builds a Date from a normalised BrokenTime.
func dateOf(t jalali.BrokenTime) Date {
	return newDate(t.Year, t.Mon+1, t.Mday)
}

// DateFromTimestamp returns the local date, in clk's zone, containing the
// POSIX timestamp ts.
func DateFromTimestamp(ts int64, clk jalali.Clock) Date {
	return dateOf(jalali.Localtime(ts, clk))
}

// Today returns the current local date.
func Today(clk jalali.Clock) Date {
	sec, _ := jalali.Timestamp(clk)
	return DateFromTimestamp(sec, clk)
}

func (d Date) Year() int  { return d.year }
func (d Date) Month() int { return d.month }
func (d Date) Day() int   { return d.day }

func (d Date) brokenTime() jalali.BrokenTime {
	return d.derived.get(func() jalali.BrokenTime {
		return jalali.Update(jalali.BrokenTime{Year: d.year, Mon: d.month - 1, Mday: d.day, IsDST: -1})
	})
}

// epochDays returns the number of days between 1348-10-11 and d.
func (d Date) epochDays() int {
	n, _ := jalali.DiffDays(jalali.BrokenTime{Year: d.year, Mon: d.month - 1, Mday: d.day})
	return n
}

// Add returns d shifted by delta.Days. Seconds and microseconds are ignored.
func (d Date) Add(delta Delta) Date {
	return dateOf(jalali.Update(jalali.BrokenTime{Year: d.year, Mon: d.month - 1, Mday: d.day + delta.Days}))
}

// Subtract returns d shifted back by delta.Days.
func (d Date) Subtract(delta Delta) Date {
	return dateOf(jalali.Update(jalali.BrokenTime{Year: d.year, Mon: d.month - 1, Mday: d.day - delta.Days}))
}

// Sub returns the number of days from o to d.
func (d Date) Sub(o Date) Delta {
	return Days(d.epochDays() - o.epochDays())
}

// Compare returns -1, 0 or +1 as d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.year != o.year:
		return sign(d.year - o.year)
	case d.month != o.month:
		return sign(d.month - o.month)
	default:
		return sign(d.day - o.day)
	}
}

func (d Date) Equal(o Date) bool  { return d.Compare(o) == 0 }
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

// Hash returns a hash of the date. Equal dates hash equally.
func (d Date) Hash() uint64 {
	return d.hash.get(func() uint64 {
		return hashInts(d.year, d.month, d.day, dateHashSalt)
	})
}

// Weekday returns the day of week, Shanbeh = 0.
func (d Date) Weekday() int { return d.brokenTime().Wday }

// ISOWeekday returns the day of week, Shanbeh = 1.
func (d Date) ISOWeekday() int { return d.Weekday() + 1 }

// YearDay returns the day of year, 1 based.
func (d Date) YearDay() int { return d.brokenTime().Yday + 1 }

// IsLeapYear reports whether d's year has 366 days.
func (d Date) IsLeapYear() bool { return jalali.IsLeap(d.year) }

// Strftime formats d with jalali.Format; clock directives see zero.
func (d Date) Strftime(layout string) string {
	return jalali.Format(layout, d.brokenTime())
}

// ISOFormat returns d as YYYY-MM-DD.
func (d Date) ISOFormat() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

func (d Date) String() string { return d.ISOFormat() }

// Ctime returns d like "Thu Aba 02 00:00:00 1392".
func (d Date) Ctime() string {
	return jalali.Asctime(d.brokenTime())
}

// TimeTuple returns d as a BrokenTime with the derived fields filled and
// IsDST -1.
func (d Date) TimeTuple() jalali.BrokenTime {
	return d.brokenTime()
}

// Replace returns d with the given fields changed. Time fields are
// rejected with jalali.ErrTypeMismatch.
func (d Date) Replace(opts ...Field) (Date, error) {
	f := fields{year: d.year, month: d.month, day: d.day}
	for _, opt := range opts {
		opt(&f)
	}
	if f.set&timeFields != 0 {
		return Date{}, fmt.Errorf("%w: Date has no time fields", jalali.ErrTypeMismatch)
	}
	return NewDate(f.year, f.month, f.day)
}

// Gregorian returns the Gregorian date of d at midnight UTC.
func (d Date) Gregorian() time.Time {
	return time.Date(1970, 1, 1+d.epochDays(), 0, 0, 0, 0, time.UTC)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
