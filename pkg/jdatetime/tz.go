package jdatetime

import (
	"fmt"
	"reflect"
	"time"

	"github.com/starford/jcal/pkg/jalali"
)

// TZInfo is a time zone policy attached to an aware DateTime.
//
// The bool results report whether the zone knows the answer for dt;
// UTCOffset and DST results must be whole seconds strictly inside ±24h.
type TZInfo interface {
	UTCOffset(dt DateTime) (time.Duration, bool)
	DST(dt DateTime) (time.Duration, bool)
	TZName(dt DateTime) (string, bool)
	// FromUTC converts a naive dt holding UTC wall time to the same instant
	// as an aware value in this zone.
	FromUTC(dt DateTime) (DateTime, error)
}

// Fixed is a zone with a constant offset and no daylight saving.
type Fixed struct {
	Name   string
	Offset time.Duration
}

// UTC is the zero offset zone.
var UTC = Fixed{Name: jalali.UTCZone}

// FixedZone returns a Fixed zone.
func FixedZone(name string, offset time.Duration) Fixed {
	return Fixed{Name: name, Offset: offset}
}

func (z Fixed) UTCOffset(DateTime) (time.Duration, bool) { return z.Offset, true }

func (z Fixed) DST(DateTime) (time.Duration, bool) { return 0, true }

func (z Fixed) TZName(DateTime) (string, bool) { return z.Name, true }

func (z Fixed) FromUTC(dt DateTime) (DateTime, error) {
	if dt.tz != nil {
		return DateTime{}, fmt.Errorf("%w: FromUTC needs a naive value", jalali.ErrNaiveAware)
	}
	return dt.Add(DeltaOf(z.Offset)).withTZ(z), nil
}

func (z Fixed) String() string {
	return z.Name
}

// Zone adapts a *time.Location from the tz database. Offsets are looked up
// at the Gregorian wall time of the value; ambiguous and missing wall times
// resolve the way time.Date does.
type Zone struct {
	loc *time.Location
}

// Location returns a Zone for loc.
func Location(loc *time.Location) Zone {
	return Zone{loc: loc}
}

// Loc returns the underlying location.
func (z Zone) Loc() *time.Location { return z.loc }

func (z Zone) wall(dt DateTime) time.Time {
	return dt.wallTime(z.loc)
}

func (z Zone) UTCOffset(dt DateTime) (time.Duration, bool) {
	_, off := z.wall(dt).Zone()
	return time.Duration(off) * time.Second, true
}

func (z Zone) DST(dt DateTime) (time.Duration, bool) {
	t := z.wall(dt)
	if !t.IsDST() {
		return 0, true
	}
	_, off := t.Zone()
	for _, months := range []int{-6, 6, -3, 3} {
		probe := t.AddDate(0, months, 0)
		if !probe.IsDST() {
			_, std := probe.Zone()
			return time.Duration(off-std) * time.Second, true
		}
	}
	return 0, false
}

func (z Zone) TZName(dt DateTime) (string, bool) {
	name, _ := z.wall(dt).Zone()
	return name, true
}

func (z Zone) FromUTC(dt DateTime) (DateTime, error) {
	if dt.tz != nil {
		return DateTime{}, fmt.Errorf("%w: FromUTC needs a naive value", jalali.ErrNaiveAware)
	}
	_, off := dt.wallTime(time.UTC).In(z.loc).Zone()
	return dt.Add(DeltaOf(time.Duration(off) * time.Second)).withTZ(z), nil
}

func (z Zone) String() string {
	return z.loc.String()
}

func checkOffset(method string, d time.Duration) error {
	if d <= -24*time.Hour || d >= 24*time.Hour || d%time.Second != 0 {
		return fmt.Errorf("%w: tzinfo.%s() must return whole seconds strictly between -24h and 24h, not %s",
			jalali.ErrTypeMismatch, method, d)
	}
	return nil
}

// sameTZ reports whether a and b are the same zone policy.
func sameTZ(a, b TZInfo) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// locationOf returns a *time.Location presenting tz's offset at dt.
func locationOf(dt DateTime) (*time.Location, error) {
	switch z := dt.tz.(type) {
	case nil:
		return nil, nil
	case Zone:
		return z.loc, nil
	}
	off, ok, err := dt.UTCOffset()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	name, _ := dt.TZName()
	return time.FixedZone(name, int(off/time.Second)), nil
}
