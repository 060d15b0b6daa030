package jdatetime

import (
	"fmt"
	"math"
	"time"

	"github.com/starford/jcal/pkg/jalali"
)

// DateTime is a Jalali date with a time of day and an optional zone.
type DateTime struct {
	date                              Date
	hour, minute, second, microsecond int
	tz                                TZInfo

	cache *dateTimeCache
}

type dateTimeCache struct {
	hash      lazy[hashResult]
	formatted lazy[formatResult]
	gregorian lazy[gregorianResult]
}

type hashResult struct {
	sum uint64
	err error
}

type formatResult struct {
	tm  jalali.BrokenTime
	err error
}

type gregorianResult struct {
	t   time.Time
	err error
}

var (
	// MinDateTime is 0001-01-01 00:00:00.
	MinDateTime = MustDateTime(1, 1, 1, 0, 0, 0, 0, nil)
	// MaxDateTime is 9999-12-29 23:59:59.999999.
	MaxDateTime = MustDateTime(9999, 12, 29, 23, 59, 59, 999999, nil)
	// DateTimeResolution is one microsecond.
	DateTimeResolution = NewDelta(0, 0, 1)
)

// NewDateTime validates its fields and returns the DateTime. A nil tz
// makes the value naive.
func NewDateTime(year, month, day, hour, minute, second, microsecond int, tz TZInfo) (DateTime, error) {
	d, err := NewDate(year, month, day)
	if err != nil {
		return DateTime{}, err
	}
	if err := checkClock(hour, minute, second, microsecond); err != nil {
		return DateTime{}, err
	}
	return newDateTime(d, hour, minute, second, microsecond, tz), nil
}

// MustDateTime is like NewDateTime but panics on error.
func MustDateTime(year, month, day, hour, minute, second, microsecond int, tz TZInfo) DateTime {
	dt, err := NewDateTime(year, month, day, hour, minute, second, microsecond, tz)
	if err != nil {
		panic(err)
	}
	return dt
}

func newDateTime(d Date, hour, minute, second, microsecond int, tz TZInfo) DateTime {
	return DateTime{
		date:        d,
		hour:        hour,
		minute:      minute,
		second:      second,
		microsecond: microsecond,
		tz:          tz,
		cache:       new(dateTimeCache),
	}
}

func dateTimeOf(c jalali.Civil, tz TZInfo) DateTime {
	return newDateTime(newDate(c.Year, c.Month+1, c.Day), c.Hour, c.Minute, c.Second, c.Microsecond, tz)
}

func dateTimeFromBroken(t jalali.BrokenTime, usec int, tz TZInfo) DateTime {
	return newDateTime(dateOf(t), t.Hour, t.Min, t.Sec, usec, tz)
}

// Combine joins a date and a time of day, keeping the time's zone.
func Combine(d Date, t Time) DateTime {
	return newDateTime(d, t.hour, t.minute, t.second, t.microsecond, t.tz)
}

// FromUnix returns the DateTime of a POSIX time. With a nil tz the result
// is the naive local time in clk's zone; otherwise it is tz.FromUTC of the
// UTC time.
func FromUnix(sec int64, usec int, tz TZInfo, clk jalali.Clock) (DateTime, error) {
	if tz == nil {
		return dateTimeFromBroken(jalali.Localtime(sec, clk), usec, nil), nil
	}
	return tz.FromUTC(UTCFromUnix(sec, usec))
}

// FromTimestamp is FromUnix for a fractional POSIX timestamp.
func FromTimestamp(ts float64, tz TZInfo, clk jalali.Clock) (DateTime, error) {
	sec, usec := splitTimestamp(ts)
	return FromUnix(sec, usec, tz, clk)
}

// UTCFromUnix returns the naive UTC DateTime of a POSIX time.
func UTCFromUnix(sec int64, usec int) DateTime {
	return dateTimeFromBroken(jalali.Gmtime(sec), usec, nil)
}

// UTCFromTimestamp is UTCFromUnix for a fractional POSIX timestamp.
func UTCFromTimestamp(ts float64) DateTime {
	return UTCFromUnix(splitTimestamp(ts))
}

// Now returns the current time. See FromUnix for the meaning of tz.
func Now(clk jalali.Clock, tz TZInfo) (DateTime, error) {
	sec, usec := jalali.Timestamp(clk)
	return FromUnix(sec, usec, tz, clk)
}

// UTCNow returns the current naive UTC time.
func UTCNow(clk jalali.Clock) DateTime {
	return UTCFromUnix(jalali.Timestamp(clk))
}

// Strptime is StrptimeIn with the system clock.
func Strptime(layout, value string) (DateTime, error) {
	return StrptimeIn(layout, value, jalali.Real())
}

// StrptimeIn parses value with jalali.ParseIn and validates the result.
// A %s timestamp is read as wall time in clk's zone. The result is naive
// with a zero microsecond.
func StrptimeIn(layout, value string, clk jalali.Clock) (DateTime, error) {
	t, err := jalali.ParseIn(layout, value, clk)
	if err != nil {
		return DateTime{}, err
	}
	return NewDateTime(t.Year, t.Mon+1, t.Mday, t.Hour, t.Min, t.Sec, 0, nil)
}

func splitTimestamp(ts float64) (int64, int) {
	sec := math.Floor(ts)
	usec := int((ts - sec) * 1e6)
	if usec >= jalali.MicrosecondsPerSecond {
		sec++
		usec -= jalali.MicrosecondsPerSecond
	}
	return int64(sec), usec
}

func (dt DateTime) Year() int        { return dt.date.year }
func (dt DateTime) Month() int       { return dt.date.month }
func (dt DateTime) Day() int         { return dt.date.day }
func (dt DateTime) Hour() int        { return dt.hour }
func (dt DateTime) Minute() int      { return dt.minute }
func (dt DateTime) Second() int      { return dt.second }
func (dt DateTime) Microsecond() int { return dt.microsecond }
func (dt DateTime) TZ() TZInfo       { return dt.tz }

// IsAware reports whether dt carries a zone.
func (dt DateTime) IsAware() bool { return dt.tz != nil }

// Date returns the date part.
func (dt DateTime) Date() Date { return dt.date }

// Time returns the time of day without the zone.
func (dt DateTime) Time() Time {
	return Time{hour: dt.hour, minute: dt.minute, second: dt.second, microsecond: dt.microsecond}
}

// TimeTZ returns the time of day with the zone.
func (dt DateTime) TimeTZ() Time {
	t := dt.Time()
	t.tz = dt.tz
	return t
}

func (dt DateTime) memo() *dateTimeCache {
	if dt.cache == nil {
		return new(dateTimeCache)
	}
	return dt.cache
}

func (dt DateTime) civil() jalali.Civil {
	return jalali.Civil{
		Year:        dt.date.year,
		Month:       dt.date.month - 1,
		Day:         dt.date.day,
		Hour:        dt.hour,
		Minute:      dt.minute,
		Second:      dt.second,
		Microsecond: dt.microsecond,
	}
}

func (dt DateTime) withTZ(tz TZInfo) DateTime {
	return newDateTime(dt.date, dt.hour, dt.minute, dt.second, dt.microsecond, tz)
}

// wallTime places dt's wall clock on the Gregorian calendar in loc.
func (dt DateTime) wallTime(loc *time.Location) time.Time {
	return time.Date(1970, 1, 1+dt.date.epochDays(),
		dt.hour, dt.minute, dt.second, dt.microsecond*1000, loc)
}

func (dt DateTime) brokenTime() jalali.BrokenTime {
	t := dt.date.brokenTime()
	t.Hour, t.Min, t.Sec = dt.hour, dt.minute, dt.second
	return t
}

// Add returns dt shifted by delta on the wall clock. The zone is kept and
// not consulted.
func (dt DateTime) Add(delta Delta) DateTime {
	c := dt.civil()
	c.Day += delta.Days
	c.Second += delta.Seconds
	c.Microsecond += delta.Microseconds
	return dateTimeOf(jalali.Normalize(c), dt.tz)
}

// Subtract returns dt shifted back by delta on the wall clock.
func (dt DateTime) Subtract(delta Delta) DateTime {
	c := dt.civil()
	c.Day -= delta.Days
	c.Second -= delta.Seconds
	c.Microsecond -= delta.Microseconds
	return dateTimeOf(jalali.Normalize(c), dt.tz)
}

// UTCOffset returns tz.UTCOffset(dt). ok is false for naive values and
// zones that do not know the offset.
func (dt DateTime) UTCOffset() (offset time.Duration, ok bool, err error) {
	if dt.tz == nil {
		return 0, false, nil
	}
	off, ok := dt.tz.UTCOffset(dt)
	if !ok {
		return 0, false, nil
	}
	if err := checkOffset("utcoffset", off); err != nil {
		return 0, false, err
	}
	return off, true, nil
}

// DST returns tz.DST(dt), validated like UTCOffset.
func (dt DateTime) DST() (offset time.Duration, ok bool, err error) {
	if dt.tz == nil {
		return 0, false, nil
	}
	dst, ok := dt.tz.DST(dt)
	if !ok {
		return 0, false, nil
	}
	if err := checkOffset("dst", dst); err != nil {
		return 0, false, err
	}
	return dst, true, nil
}

// TZName returns tz.TZName(dt); ok is false for naive values.
func (dt DateTime) TZName() (string, bool) {
	if dt.tz == nil {
		return "", false
	}
	return dt.tz.TZName(dt)
}

// toUTC returns the naive UTC wall time of an aware dt, or dt itself when
// naive.
func (dt DateTime) toUTC() (DateTime, error) {
	if dt.tz == nil {
		return dt, nil
	}
	off, ok, err := dt.UTCOffset()
	if err != nil {
		return DateTime{}, err
	}
	if !ok {
		return DateTime{}, fmt.Errorf("%w: zone %v has no UTC offset for %s", jalali.ErrTypeMismatch, dt.tz, dt.isoBase("T"))
	}
	return dt.withTZ(nil).Subtract(DeltaOf(off)), nil
}

// aligned returns dt and o ready for field-wise comparison: unchanged
// when they share a zone (or are both naive), shifted to UTC otherwise.
func (dt DateTime) aligned(o DateTime) (DateTime, DateTime, error) {
	if (dt.tz == nil) != (o.tz == nil) {
		return DateTime{}, DateTime{}, jalali.ErrNaiveAware
	}
	if sameTZ(dt.tz, o.tz) {
		return dt, o, nil
	}
	a, err := dt.toUTC()
	if err != nil {
		return DateTime{}, DateTime{}, err
	}
	b, err := o.toUTC()
	if err != nil {
		return DateTime{}, DateTime{}, err
	}
	return a, b, nil
}

// Sub returns dt-o. Values in different zones are compared as UTC
// instants; mixing naive and aware values fails with jalali.ErrNaiveAware.
func (dt DateTime) Sub(o DateTime) (Delta, error) {
	a, b, err := dt.aligned(o)
	if err != nil {
		return Delta{}, err
	}
	seconds := (a.hour-b.hour)*3600 + (a.minute-b.minute)*60 + (a.second - b.second)
	return NewDelta(a.date.epochDays()-b.date.epochDays(), seconds, a.microsecond-b.microsecond), nil
}

// Compare returns -1, 0 or +1 as dt is before, equal to or after o.
func (dt DateTime) Compare(o DateTime) (int, error) {
	a, b, err := dt.aligned(o)
	if err != nil {
		return 0, err
	}
	if c := a.date.Compare(b.date); c != 0 {
		return c, nil
	}
	for _, pair := range [][2]int{
		{a.hour, b.hour},
		{a.minute, b.minute},
		{a.second, b.second},
		{a.microsecond, b.microsecond},
	} {
		if pair[0] != pair[1] {
			return sign(pair[0] - pair[1]), nil
		}
	}
	return 0, nil
}

// Equal reports whether dt and o are the same instant (aware) or wall time
// (naive).
func (dt DateTime) Equal(o DateTime) (bool, error) {
	c, err := dt.Compare(o)
	return c == 0, err
}

func (dt DateTime) Before(o DateTime) (bool, error) {
	c, err := dt.Compare(o)
	return c < 0, err
}

func (dt DateTime) After(o DateTime) (bool, error) {
	c, err := dt.Compare(o)
	return c > 0, err
}

// Hash returns a hash consistent with Equal. Aware values hash their UTC
// instant, so the same instant in two zones hashes equally.
func (dt DateTime) Hash() (uint64, error) {
	r := dt.memo().hash.get(func() hashResult {
		u, err := dt.toUTC()
		if err != nil {
			return hashResult{err: err}
		}
		naive := 0
		if dt.tz == nil {
			naive = 1
		}
		return hashResult{sum: hashInts(u.date.year, u.date.month, u.date.day,
			u.hour, u.minute, u.second, u.microsecond, naive)}
	})
	return r.sum, r.err
}

// AsTimezone converts an aware dt to the same instant in tz.
func (dt DateTime) AsTimezone(tz TZInfo) (DateTime, error) {
	if dt.tz == nil {
		return DateTime{}, fmt.Errorf("%w: AsTimezone needs an aware value", jalali.ErrNaiveAware)
	}
	if tz == nil {
		return DateTime{}, fmt.Errorf("%w: AsTimezone needs a zone", jalali.ErrTypeMismatch)
	}
	utc, err := dt.toUTC()
	if err != nil {
		return DateTime{}, err
	}
	return tz.FromUTC(utc)
}

// formatted returns the broken-down value handed to jalali.Format, with
// dt's own offset and zone name in place. Naive values format with a zero
// offset and no zone name, independent of the process zone.
func (dt DateTime) formatted() (jalali.BrokenTime, error) {
	r := dt.memo().formatted.get(func() formatResult {
		tm := dt.brokenTime()
		tm.IsDST = -1
		if dt.tz == nil {
			return formatResult{tm: tm}
		}
		off, ok, err := dt.UTCOffset()
		if err != nil {
			return formatResult{err: err}
		}
		if ok {
			tm.GMTOff = int(off / time.Second)
		}
		if name, ok := dt.TZName(); ok {
			tm.Zone = name
		}
		dst, ok, err := dt.DST()
		if err != nil {
			return formatResult{err: err}
		}
		if ok {
			tm.IsDST = 0
			if dst != 0 {
				tm.IsDST = 1
			}
		}
		return formatResult{tm: tm}
	})
	return r.tm, r.err
}

// Strftime formats dt with jalali.Format.
func (dt DateTime) Strftime(layout string) (string, error) {
	tm, err := dt.formatted()
	if err != nil {
		return "", err
	}
	return jalali.Format(layout, tm), nil
}

func (dt DateTime) isoBase(sep string) string {
	s := fmt.Sprintf("%s%s%02d:%02d:%02d", dt.date.ISOFormat(), sep, dt.hour, dt.minute, dt.second)
	if dt.microsecond != 0 {
		s += fmt.Sprintf(".%06d", dt.microsecond)
	}
	return s
}

// ISOFormat returns YYYY-MM-DD<sep>HH:MM:SS[.ffffff][±HH:MM].
func (dt DateTime) ISOFormat(sep string) (string, error) {
	s := dt.isoBase(sep)
	off, ok, err := dt.UTCOffset()
	if err != nil {
		return "", err
	}
	if ok {
		s += formatOffset(off)
	}
	return s, nil
}

// String is ISOFormat with a space separator. The offset is left out when
// the zone misbehaves.
func (dt DateTime) String() string {
	if s, err := dt.ISOFormat(" "); err == nil {
		return s
	}
	return dt.isoBase(" ")
}

func formatOffset(off time.Duration) string {
	sign := '+'
	if off < 0 {
		sign = '-'
		off = -off
	}
	secs := int(off / time.Second)
	s := fmt.Sprintf("%c%02d:%02d", sign, secs/3600, secs%3600/60)
	if secs%60 != 0 {
		s += fmt.Sprintf(":%02d", secs%60)
	}
	return s
}

// Ctime returns dt like "Fri Aza 01 12:32:14 1392".
func (dt DateTime) Ctime() string {
	return jalali.Asctime(dt.brokenTime())
}

// Replace returns dt with the given fields changed. WithTZ(nil) makes the
// result naive.
func (dt DateTime) Replace(opts ...Field) (DateTime, error) {
	f := fields{
		year:        dt.date.year,
		month:       dt.date.month,
		day:         dt.date.day,
		hour:        dt.hour,
		minute:      dt.minute,
		second:      dt.second,
		microsecond: dt.microsecond,
		tz:          dt.tz,
	}
	for _, opt := range opts {
		opt(&f)
	}
	return NewDateTime(f.year, f.month, f.day, f.hour, f.minute, f.second, f.microsecond, f.tz)
}

// TimeTuple returns dt broken down, with IsDST -1 when DST is unknown,
// otherwise 0 or 1.
func (dt DateTime) TimeTuple() (jalali.BrokenTime, error) {
	tm := dt.brokenTime()
	tm.IsDST = -1
	dst, ok, err := dt.DST()
	if err != nil {
		return jalali.BrokenTime{}, err
	}
	if ok {
		tm.IsDST = 0
		if dst != 0 {
			tm.IsDST = 1
		}
	}
	return tm, nil
}

// UTCTimeTuple returns the UTC wall time of dt broken down. Naive values
// are taken as UTC.
func (dt DateTime) UTCTimeTuple() (jalali.BrokenTime, error) {
	u, err := dt.toUTC()
	if err != nil {
		return jalali.BrokenTime{}, err
	}
	tm := u.brokenTime()
	tm.IsDST = 0
	tm.Zone = jalali.UTCZone
	return tm, nil
}

func (dt DateTime) Weekday() int    { return dt.date.Weekday() }
func (dt DateTime) ISOWeekday() int { return dt.date.ISOWeekday() }
func (dt DateTime) YearDay() int    { return dt.date.YearDay() }

// Gregorian returns dt on the Gregorian calendar, computed from epoch days
// and memoised. Naive values are placed in UTC, aware ones in a location
// presenting their zone.
func (dt DateTime) Gregorian() (time.Time, error) {
	r := dt.memo().gregorian.get(func() gregorianResult {
		loc, err := locationOf(dt)
		if err != nil {
			return gregorianResult{err: err}
		}
		if loc == nil {
			loc = time.UTC
		}
		return gregorianResult{t: dt.wallTime(loc)}
	})
	return r.t, r.err
}
