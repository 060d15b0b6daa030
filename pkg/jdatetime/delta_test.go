package jdatetime

import (
	"testing"
	"time"
)

func TestNewDelta_Normalises(t *testing.T) {
	tests := []struct {
		days, secs, us int
		want           Delta
	}{
		{0, 0, 0, Delta{}},
		{0, -1, 0, Delta{Days: -1, Seconds: 86399}},
		{1, 90000, 1500000, Delta{Days: 2, Seconds: 3601, Microseconds: 500000}},
		{0, 0, -1, Delta{Days: -1, Seconds: 86399, Microseconds: 999999}},
		{-3, 86400, 0, Delta{Days: -2}},
	}
	for _, tt := range tests {
		if got := NewDelta(tt.days, tt.secs, tt.us); got != tt.want {
			t.Errorf("NewDelta(%d, %d, %d) = %+v, want %+v", tt.days, tt.secs, tt.us, got, tt.want)
		}
	}
}

func TestDelta_String(t *testing.T) {
	tests := []struct {
		d    Delta
		want string
	}{
		{Delta{}, "0:00:00"},
		{NewDelta(0, -1, 0), "-1 day, 23:59:59"},
		{NewDelta(1, 90000, 1500000), "2 days, 1:00:01.500000"},
		{Days(1), "1 day, 0:00:00"},
	}
	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestDelta_Arithmetic(t *testing.T) {
	one := NewDelta(0, 1, 0)
	if got := one.Neg(); got != (Delta{Days: -1, Seconds: 86399}) {
		t.Errorf("Neg = %+v", got)
	}
	if !one.Add(one.Neg()).IsZero() {
		t.Error("d + -d should be zero")
	}
	if got := DeltaOf(90 * time.Minute); got != (Delta{Seconds: 5400}) {
		t.Errorf("DeltaOf(90m) = %+v", got)
	}
	d := NewDelta(3, 7, 11)
	if got := DeltaOf(d.Duration()); got != d {
		t.Errorf("Duration round trip = %+v, want %+v", got, d)
	}
	if got := d.TotalMicroseconds(); got != 3*86400e6+7e6+11 {
		t.Errorf("TotalMicroseconds = %d", got)
	}
}
