package jdatetime

import (
	"fmt"

	"github.com/starford/jcal/pkg/jalali"
)

// Time is a time of day with an optional zone.
type Time struct {
	hour, minute, second, microsecond int
	tz                                TZInfo
}

// NewTime validates and returns a time of day.
func NewTime(hour, minute, second, microsecond int, tz TZInfo) (Time, error) {
	if err := checkClock(hour, minute, second, microsecond); err != nil {
		return Time{}, err
	}
	return Time{hour: hour, minute: minute, second: second, microsecond: microsecond, tz: tz}, nil
}

func (t Time) Hour() int        { return t.hour }
func (t Time) Minute() int      { return t.minute }
func (t Time) Second() int      { return t.second }
func (t Time) Microsecond() int { return t.microsecond }
func (t Time) TZ() TZInfo       { return t.tz }

// String returns HH:MM:SS, with .ffffff when the microsecond is set.
func (t Time) String() string {
	s := fmt.Sprintf("%02d:%02d:%02d", t.hour, t.minute, t.second)
	if t.microsecond != 0 {
		s += fmt.Sprintf(".%06d", t.microsecond)
	}
	return s
}

func checkClock(hour, minute, second, microsecond int) error {
	switch {
	case hour < 0 || hour > 23:
		return fmt.Errorf("%w: hour %d not in 0..23", jalali.ErrFieldRange, hour)
	case minute < 0 || minute > 59:
		return fmt.Errorf("%w: minute %d not in 0..59", jalali.ErrFieldRange, minute)
	case second < 0 || second > 59:
		return fmt.Errorf("%w: second %d not in 0..59", jalali.ErrFieldRange, second)
	case microsecond < 0 || microsecond > 999999:
		return fmt.Errorf("%w: microsecond %d not in 0..999999", jalali.ErrFieldRange, microsecond)
	}
	return nil
}
