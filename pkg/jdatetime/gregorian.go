package jdatetime

import (
	"fmt"
	"time"

	"github.com/starford/jcal/pkg/jalali"
)

// EpochDate is the first date the timestamp bridge converts, 1348-10-11
// (1970-01-01).
var EpochDate = MustDate(jalali.EpochYear, 10, 11)

// noonTimestamp returns the POSIX time of local noon of d in clk's zone.
// Noon keeps daylight saving transitions, which happen around midnight,
// from moving the date.
func noonTimestamp(d Date, clk jalali.Clock) int64 {
	utcNoon := int64(d.epochDays())*jalali.SecondsPerDay + 12*jalali.SecondsPerHour
	off := jalali.LocalOffset(clk, utcNoon)
	return utcNoon - int64(off.Seconds)
}

// J2GDate returns the Gregorian date of d, at midnight in clk's zone.
func J2GDate(d Date, clk jalali.Clock) (time.Time, error) {
	if d.Before(EpochDate) {
		return time.Time{}, fmt.Errorf("jdatetime: convert %s: %w", d, jalali.ErrBeforeEpoch)
	}
	y, m, day := time.Unix(noonTimestamp(d, clk), 0).In(clk.Location()).Date()
	return time.Date(y, m, day, 0, 0, 0, 0, clk.Location()), nil
}

// J2G returns the Gregorian equivalent of dt with the same wall clock. Naive
// values land in clk's zone, aware ones in their own.
func J2G(dt DateTime, clk jalali.Clock) (time.Time, error) {
	g, err := J2GDate(dt.date, clk)
	if err != nil {
		return time.Time{}, err
	}
	loc, err := locationOf(dt)
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = clk.Location()
	}
	y, m, d := g.Date()
	return time.Date(y, m, d, dt.hour, dt.minute, dt.second, dt.microsecond*1000, loc), nil
}

// G2JDate returns the Jalali date of t's calendar date.
func G2JDate(t time.Time, clk jalali.Clock) (Date, error) {
	y, m, d := t.Date()
	if y < 1970 {
		return Date{}, fmt.Errorf("jdatetime: convert %s: %w", t.Format(time.DateOnly), jalali.ErrBeforeEpoch)
	}
	noon := time.Date(y, m, d, 12, 0, 0, 0, clk.Location())
	return DateFromTimestamp(noon.Unix(), clk), nil
}

// G2J returns the naive Jalali equivalent of t's wall clock.
func G2J(t time.Time, clk jalali.Clock) (DateTime, error) {
	d, err := G2JDate(t, clk)
	if err != nil {
		return DateTime{}, err
	}
	return newDateTime(d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/1000, nil), nil
}
