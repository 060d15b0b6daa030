package jdatetime

import (
	"errors"
	"testing"
	"time"

	"github.com/starford/jcal/pkg/jalali"
)

func TestNewDate_Validates(t *testing.T) {
	tests := []struct {
		y, m, d int
		ok      bool
	}{
		{1392, 8, 2, true},
		{1391, 12, 30, true},
		{1392, 12, 30, false},
		{1392, 13, 1, false},
		{1392, 0, 1, false},
		{1392, 7, 31, false},
		{1392, 6, 31, true},
		{1392, 1, 0, false},
	}
	for _, tt := range tests {
		_, err := NewDate(tt.y, tt.m, tt.d)
		if tt.ok && err != nil {
			t.Errorf("NewDate(%d, %d, %d): %v", tt.y, tt.m, tt.d, err)
		}
		if !tt.ok && !errors.Is(err, jalali.ErrFieldRange) {
			t.Errorf("NewDate(%d, %d, %d) err = %v, want ErrFieldRange", tt.y, tt.m, tt.d, err)
		}
	}
}

func TestDate_Derived(t *testing.T) {
	d := MustDate(1392, 8, 2)
	if got := d.ISOFormat(); got != "1392-08-02" {
		t.Errorf("ISOFormat = %q", got)
	}
	if got := d.Weekday(); got != 5 {
		t.Errorf("Weekday = %d, want 5", got)
	}
	if got := d.ISOWeekday(); got != 6 {
		t.Errorf("ISOWeekday = %d, want 6", got)
	}
	if got := d.YearDay(); got != 218 {
		t.Errorf("YearDay = %d, want 218", got)
	}
	if d.IsLeapYear() {
		t.Error("1392 is not leap")
	}
	if got := d.Ctime(); got != "Thu Aba 02 00:00:00 1392" {
		t.Errorf("Ctime = %q", got)
	}
	tm := d.TimeTuple()
	if tm.Yday != 217 || tm.Wday != 5 || tm.IsDST != -1 {
		t.Errorf("TimeTuple = %+v", tm)
	}
}

func TestDate_Arithmetic(t *testing.T) {
	if got := MustDate(1392, 1, 1).Sub(MustDate(1391, 1, 1)); got != Days(366) {
		t.Errorf("1392-01-01 - 1391-01-01 = %v, want 366 days", got)
	}
	if got := MustDate(1392, 12, 1).Add(Days(30)); !got.Equal(MustDate(1393, 1, 2)) {
		t.Errorf("1392-12-01 + 30d = %v", got)
	}
	if got := MustDate(1393, 1, 1).Subtract(Days(1)); !got.Equal(MustDate(1392, 12, 29)) {
		t.Errorf("1393-01-01 - 1d = %v", got)
	}
	if got := MustDate(1392, 1, 1).Add(NewDelta(0, 86399, 0)); !got.Equal(MustDate(1392, 1, 1)) {
		t.Errorf("seconds should be ignored, got %v", got)
	}
}

func TestDate_Compare(t *testing.T) {
	a, b := MustDate(1392, 8, 2), MustDate(1392, 9, 1)
	if !a.Before(b) || !b.After(a) || a.Equal(b) {
		t.Error("ordering wrong")
	}
	if a.Compare(MustDate(1392, 8, 2)) != 0 {
		t.Error("equal dates should compare 0")
	}
	if a.Hash() != MustDate(1392, 8, 2).Hash() {
		t.Error("equal dates should hash equally")
	}
	if a.Hash() == b.Hash() {
		t.Error("different dates should not collide here")
	}
}

func TestDate_Replace(t *testing.T) {
	d, err := MustDate(1391, 12, 1).Replace(WithDay(30))
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if !d.Equal(MustDate(1391, 12, 30)) {
		t.Errorf("Replace = %v", d)
	}
	if _, err := d.Replace(WithYear(1392)); !errors.Is(err, jalali.ErrFieldRange) {
		t.Errorf("1392-12-30 should not exist, err = %v", err)
	}
	if _, err := d.Replace(WithHour(1)); !errors.Is(err, jalali.ErrTypeMismatch) {
		t.Errorf("time field on a date: err = %v, want ErrTypeMismatch", err)
	}
}

func TestDate_Gregorian(t *testing.T) {
	got := MustDate(1392, 6, 30).Gregorian()
	want := time.Date(2013, 9, 21, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Gregorian = %v, want %v", got, want)
	}
}

func TestToday(t *testing.T) {
	irst := time.FixedZone("IRST", 12600)
	clk := jalali.Fake(time.Date(2013, 11, 23, 20, 16, 0, 0, time.UTC), irst)
	if got := Today(clk); !got.Equal(MustDate(1392, 9, 2)) {
		t.Errorf("Today = %v, want 1392-09-02", got)
	}
}
