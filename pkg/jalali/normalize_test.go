package jalali

import "testing"

func TestNormalize_CarriesClock(t *testing.T) {
	tests := []struct {
		in, want Civil
	}{
		{
			in:   Civil{Year: 1392, Month: 11, Day: 29, Hour: 23, Minute: 59, Second: 59, Microsecond: 1000000},
			want: Civil{Year: 1393, Month: 0, Day: 1},
		},
		{
			in:   Civil{Year: 1392, Month: 0, Day: 1, Microsecond: -1},
			want: Civil{Year: 1391, Month: 11, Day: 30, Hour: 23, Minute: 59, Second: 59, Microsecond: 999999},
		},
		{
			in:   Civil{Year: 1392, Month: 6, Day: 30, Hour: 22, Minute: 30, Second: -3600 * 24},
			want: Civil{Year: 1392, Month: 6, Day: 29, Hour: 22, Minute: 30},
		},
		{
			in:   Civil{Year: 1390, Month: 14, Day: 1, Hour: 49},
			want: Civil{Year: 1391, Month: 2, Day: 3, Hour: 1},
		},
		{
			in:   Civil{Year: 1390, Month: -1, Day: 1},
			want: Civil{Year: 1389, Month: 11, Day: 1},
		},
	}
	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%+v) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestNormalize_ManyMonthsOfDays(t *testing.T) {
	got := Normalize(Civil{Year: 1389, Month: 10, Day: 130})
	want := Civil{Year: 1390, Month: 2, Day: 9}
	if got != want {
		t.Errorf("Normalize(1389, 10, 130) = %+v, want %+v", got, want)
	}
	if got.Day < 1 || got.Day > MonthDays(got.Year, got.Month) {
		t.Errorf("day %d out of range for month %d", got.Day, got.Month)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, in := range []Civil{
		{Year: 1391, Month: 11, Day: 30},
		{Year: 1390, Month: 25, Day: -400, Hour: -5, Minute: 75, Second: 3600, Microsecond: -2500000},
		{Year: 1, Month: 0, Day: 1},
		{Year: 1404, Month: 11, Day: 31, Hour: 24},
		{Year: -5, Month: -30, Day: 1000, Second: -1},
	} {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %+v: %+v then %+v", in, once, twice)
		}
		if once.Month < 0 || once.Month > 11 || once.Day < 1 || once.Day > MonthDays(once.Year, once.Month) ||
			once.Hour < 0 || once.Hour > 23 || once.Minute < 0 || once.Minute > 59 ||
			once.Second < 0 || once.Second > 59 || once.Microsecond < 0 || once.Microsecond > 999999 {
			t.Errorf("Normalize(%+v) = %+v, not canonical", in, once)
		}
	}
}

func TestNormalizeTime(t *testing.T) {
	in := BrokenTime{Year: 1392, Mon: 7, Mday: 1, Hour: 24, Min: 0, Sec: 0, GMTOff: 12600, Zone: "IRST"}
	got, usec := NormalizeTime(in, 1500000)
	if got.Mday != 2 || got.Hour != 0 || got.Sec != 1 || usec != 500000 {
		t.Errorf("NormalizeTime = %v, %d", got, usec)
	}
	if got.Wday != 5 || got.Yday != 217 {
		t.Errorf("derived fields = wday %d yday %d, want 5 217", got.Wday, got.Yday)
	}
	if got.GMTOff != 12600 || got.Zone != "IRST" {
		t.Errorf("zone fields changed: %d %q", got.GMTOff, got.Zone)
	}
}
