package jalali

import "testing"

func TestIsLeap_CanonicalCycle(t *testing.T) {
	want := map[int]bool{
		1375: true, 1379: true, 1383: true, 1387: true, 1391: true,
		1395: true, 1399: true, 1404: true, 1408: true,
	}
	for y := 1375; y <= 1408; y++ {
		if got := IsLeap(y); got != want[y] {
			t.Errorf("IsLeap(%d) = %v, want %v", y, got, want[y])
		}
	}
}

func TestIsLeap_BeforeBase(t *testing.T) {
	var got []int
	for y := 1; y < 40; y++ {
		if IsLeap(y) {
			got = append(got, y)
		}
	}
	want := []int{4, 8, 12, 16, 20, 25, 29, 33, 37}
	if len(got) != len(want) {
		t.Fatalf("leap years in 1..39 = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("leap years in 1..39 = %v, want %v", got, want)
			break
		}
	}
}

func TestMonthDays(t *testing.T) {
	for _, tc := range []struct {
		year int
		last int
	}{
		{1391, 30},
		{1390, 29},
	} {
		for m := 0; m < 6; m++ {
			if got := MonthDays(tc.year, m); got != 31 {
				t.Errorf("MonthDays(%d, %d) = %d, want 31", tc.year, m, got)
			}
		}
		for m := 6; m < 11; m++ {
			if got := MonthDays(tc.year, m); got != 30 {
				t.Errorf("MonthDays(%d, %d) = %d, want 30", tc.year, m, got)
			}
		}
		if got := MonthDays(tc.year, 11); got != tc.last {
			t.Errorf("MonthDays(%d, 11) = %d, want %d", tc.year, got, tc.last)
		}
	}
	if got := MonthDays(1391, 12); got != 0 {
		t.Errorf("MonthDays(1391, 12) = %d, want 0", got)
	}
}

func TestYearDays(t *testing.T) {
	if got := YearDays(1391); got != 366 {
		t.Errorf("YearDays(1391) = %d, want 366", got)
	}
	if got := YearDays(1392); got != 365 {
		t.Errorf("YearDays(1392) = %d, want 365", got)
	}
}

func TestGetYearInfo(t *testing.T) {
	tests := []YearInfo{
		{Year: 1391, Leap: true, Passed: 916, Remaining: 1903, PassedLeaps: 222, RemainingLeaps: 461, AbsoluteLeaps: 222},
		{Year: 1392, Leap: false, Passed: 917, Remaining: 1902, PassedLeaps: 222, RemainingLeaps: 461, AbsoluteLeaps: 222},
		{Year: 475, Leap: false, Passed: 0, Remaining: 2819, PassedLeaps: 0, RemainingLeaps: 683, AbsoluteLeaps: 0},
		{Year: 474, Leap: true, Passed: 2819, Remaining: 0, PassedLeaps: 682, RemainingLeaps: 1, AbsoluteLeaps: -1},
		{Year: 1, Leap: false, Passed: 2346, Remaining: 473, PassedLeaps: 568, RemainingLeaps: 115, AbsoluteLeaps: -115},
		{Year: 3294, Leap: true, Passed: 2819, Remaining: 0, PassedLeaps: 0, RemainingLeaps: 683, AbsoluteLeaps: 683},
	}
	for _, want := range tests {
		if got := GetYearInfo(want.Year); got != want {
			t.Errorf("GetYearInfo(%d) = %+v, want %+v", want.Year, got, want)
		}
	}
}

func TestLeapsBefore_MatchesCount(t *testing.T) {
	count := 0
	for y := LeapBase; y < LeapBase+2*LeapPeriod; y++ {
		if got := leapsBefore(y); got != count {
			t.Fatalf("leapsBefore(%d) = %d, want %d", y, got, count)
		}
		if IsLeap(y) {
			count++
		}
	}
	if count != 2*LeapsInPeriod {
		t.Errorf("leap years in two periods = %d, want %d", count, 2*LeapsInPeriod)
	}

	count = 0
	for y := LeapBase - 1; y > LeapBase-LeapPeriod-10; y-- {
		if IsLeap(y) {
			count++
		}
		if got := leapsBefore(y); got != -count {
			t.Fatalf("leapsBefore(%d) = %d, want %d", y, got, -count)
		}
	}
}
