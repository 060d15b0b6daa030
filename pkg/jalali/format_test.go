package jalali

import "testing"

// 1392-09-01 12:32:14 UTC, a Friday
func sampleTime() BrokenTime {
	return Update(BrokenTime{Year: 1392, Mon: 8, Mday: 1, Hour: 12, Min: 32, Sec: 14, Zone: UTCZone})
}

func TestFormat_Directives(t *testing.T) {
	tm := sampleTime()
	tests := []struct {
		layout string
		want   string
	}{
		{"%Y-%m-%d %H:%M:%S", "1392-09-01 12:32:14"},
		{"%a %A %b %B", "Fri Friday Aza Aazar"},
		{"%h %q", "Jom Jomeh"},
		{"%g %G %v %V", "جمع جمعه آذر آذر"},
		{"%c", "Jom 1 Aza 1392 12:32:14 UTC"},
		{"%D|%F|%x", "1392/09/01|1392-09-01|01/09/1392"},
		{"[%e] %j %u %w %U", "[ 1] 247 7 6 35"},
		{"%y %C", "92 14"},
		{"%I %l %k %p %P", "12 12 12 PM pm"},
		{"%r|%R|%T", "12:32:14 PM|12:32|12:32:14"},
		{"%s", "1385123534"},
		{"%z %Z", "+0000 UTC"},
		{"%W %X", "۱۳۹۲/۰۹/۰۱ ۱۲:۳۲:۱۴"},
		{"%E", "جمعه ۰۱ آذر ۱۳۹۲، ساعت ۱۲:۳۲:۱۴ - گرینویچ"},
		{"%O", "ب.ظ"},
		{"100%%%n%t", "100%\n\t"},
		{"a%Qb", "ab"},
		{"tail%", "tail"},
	}
	for _, tc := range tests {
		if got := Format(tc.layout, tm); got != tc.want {
			t.Errorf("Format(%q) = %q, want %q", tc.layout, got, tc.want)
		}
	}
}

func TestFormat_Midnight(t *testing.T) {
	tm := Update(BrokenTime{Year: 1392, Mon: 0, Mday: 1})
	if got := Format("%I %l %p %O", tm); got != "12 12 AM ق.ظ" {
		t.Errorf("Format = %q", got)
	}
}

func TestFormat_Offsets(t *testing.T) {
	tm := sampleTime()
	for _, tc := range []struct {
		off  int
		want string
	}{
		{12600, "+0330"},
		{16200, "+0430"},
		{-1800, "-0030"},
		{-18000, "-0500"},
	} {
		tm.GMTOff = tc.off
		if got := Format("%z", tm); got != tc.want {
			t.Errorf("Format(%%z) with %d = %q, want %q", tc.off, got, tc.want)
		}
	}

	tm.GMTOff = 12600
	if got := Format("%s", tm); got != "1385110934" {
		t.Errorf("Format(%%s) with +0330 = %q, want %q", got, "1385110934")
	}
}

func TestFormat_FarsiZoneNames(t *testing.T) {
	tm := sampleTime()
	tm.Zone = "+0330"
	tm.IsDST = 0
	if got := Format("%E", tm); got != "جمعه ۰۱ آذر ۱۳۹۲، ساعت ۱۲:۳۲:۱۴ - زمان زمستانی" {
		t.Errorf("Format(%%E) = %q", got)
	}
	tm.IsDST = 1
	if got := Format("%E", tm); got != "جمعه ۰۱ آذر ۱۳۹۲، ساعت ۱۲:۳۲:۱۴ - زمان تابستانی" {
		t.Errorf("Format(%%E) = %q", got)
	}
}

func TestFarsiDigits(t *testing.T) {
	for _, tc := range []struct {
		n, width int
		want     string
	}{
		{0, 0, "۰"},
		{7, 2, "۰۷"},
		{1392, 0, "۱۳۹۲"},
		{-5, 0, "-۵"},
	} {
		if got := FarsiDigits(tc.n, tc.width); got != tc.want {
			t.Errorf("FarsiDigits(%d, %d) = %q, want %q", tc.n, tc.width, got, tc.want)
		}
	}
	if got := ToFarsiDigits("1392/09"); got != "۱۳۹۲/۰۹" {
		t.Errorf("ToFarsiDigits = %q", got)
	}
}
