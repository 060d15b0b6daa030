package jdatetime

import (
	"fmt"
	"time"

	"github.com/starford/jcal/pkg/jalali"
)

const (
	microsecondsPerSecond = int64(jalali.MicrosecondsPerSecond)
	microsecondsPerDay    = int64(jalali.SecondsPerDay) * microsecondsPerSecond
)

// Delta is a signed span of days, seconds and microseconds. It is always
// normalised: Seconds is in 0..86399, Microseconds in 0..999999 and the
// sign lives in Days. Unlike time.Duration it covers the whole calendar.
type Delta struct {
	Days         int
	Seconds      int
	Microseconds int
}

// NewDelta returns the normalised Delta of the given parts.
func NewDelta(days, seconds, microseconds int) Delta {
	return deltaFromMicroseconds(int64(days)*microsecondsPerDay +
		int64(seconds)*microsecondsPerSecond +
		int64(microseconds))
}

// Days returns a Delta of n days.
func Days(n int) Delta { return Delta{Days: n} }

// DeltaOf returns the Delta of d.
func DeltaOf(d time.Duration) Delta {
	return deltaFromMicroseconds(d.Microseconds())
}

func deltaFromMicroseconds(us int64) Delta {
	days := us / microsecondsPerDay
	rem := us % microsecondsPerDay
	if rem < 0 {
		rem += microsecondsPerDay
		days--
	}
	return Delta{
		Days:         int(days),
		Seconds:      int(rem / microsecondsPerSecond),
		Microseconds: int(rem % microsecondsPerSecond),
	}
}

// TotalMicroseconds returns the length of d in microseconds.
func (d Delta) TotalMicroseconds() int64 {
	return int64(d.Days)*microsecondsPerDay + int64(d.Seconds)*microsecondsPerSecond + int64(d.Microseconds)
}

// Duration converts d to a time.Duration. Spans beyond about 292 years
// overflow.
func (d Delta) Duration() time.Duration {
	return time.Duration(d.TotalMicroseconds()) * time.Microsecond
}

// Add returns d+o.
func (d Delta) Add(o Delta) Delta {
	return deltaFromMicroseconds(d.TotalMicroseconds() + o.TotalMicroseconds())
}

// Neg returns -d.
func (d Delta) Neg() Delta {
	return deltaFromMicroseconds(-d.TotalMicroseconds())
}

// IsZero reports whether d is the empty span.
func (d Delta) IsZero() bool {
	return d == Delta{}
}

// String renders d like "-1 day, 23:59:59.500000".
func (d Delta) String() string {
	s := fmt.Sprintf("%d:%02d:%02d", d.Seconds/3600, d.Seconds%3600/60, d.Seconds%60)
	if d.Microseconds != 0 {
		s += fmt.Sprintf(".%06d", d.Microseconds)
	}
	switch d.Days {
	case 0:
		return s
	case 1, -1:
		return fmt.Sprintf("%d day, %s", d.Days, s)
	default:
		return fmt.Sprintf("%d days, %s", d.Days, s)
	}
}
