package jalali

import (
	"sync"
	"time"
)

// Clock is the platform capability the package reads wall time and local
// UTC offsets from. Production code uses Real; tests use Fake.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// Location is the zone local offsets are looked up in.
	Location() *time.Location
}

// Real returns a Clock backed by time.Now and time.Local.
func Real() Clock { return realClock{loc: time.Local} }

// RealIn returns a Clock backed by time.Now whose local zone is loc.
func RealIn(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return realClock{loc: loc}
}

type realClock struct {
	loc *time.Location
}

func (c realClock) Now() time.Time { return time.Now().In(c.loc) }

func (c realClock) Location() *time.Location { return c.loc }

// FakeClock is a Clock whose time only moves when told to. It is safe for
// concurrent use.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
	loc *time.Location
}

// Fake returns a FakeClock stopped at now, with local zone loc (UTC when nil).
func Fake(now time.Time, loc *time.Location) *FakeClock {
	if loc == nil {
		loc = time.UTC
	}
	return &FakeClock{now: now, loc: loc}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now.In(c.loc)
}

// Location returns the fake local zone.
func (c *FakeClock) Location() *time.Location { return c.loc }

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Set moves the clock to t.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Offset is the local UTC offset in effect at some instant.
type Offset struct {
	Seconds int
	IsDST   bool
	Zone    string
}

// LocalOffset returns the offset clk's zone applies at the POSIX timestamp ts.
func LocalOffset(clk Clock, ts int64) Offset {
	t := time.Unix(ts, 0).In(clk.Location())
	name, off := t.Zone()
	return Offset{Seconds: off, IsDST: t.IsDST(), Zone: name}
}

// Timestamp returns clk's current POSIX time split into whole seconds and
// microseconds.
func Timestamp(clk Clock) (sec int64, usec int) {
	now := clk.Now()
	return now.Unix(), now.Nanosecond() / 1000
}
