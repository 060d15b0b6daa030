package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"

	"github.com/starford/jcal/internal/models"
	"github.com/starford/jcal/internal/testutil"
	"github.com/starford/jcal/pkg/jdatetime"
)

func date(t *testing.T, opts dateOptions) string {
	t.Helper()
	var buf bytes.Buffer
	if err := runDate(&buf, testutil.FakeClock(), opts); err != nil {
		t.Fatalf("runDate(%+v): %v", opts, err)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func TestDate(t *testing.T) {
	tests := []struct {
		name string
		opts dateOptions
		want string
	}{
		{"format", dateOptions{Format: "%Y/%m/%d %H:%M:%S"}, "1392/09/01 16:02:14"},
		{"default", dateOptions{}, "Jom Aza 01 16:02:14 IRST 1392"},
		{"rfc 2822", dateOptions{RFC2822: true}, "Jom, 01 Aza 1392 16:02:14 +0330"},
		{"utc", dateOptions{UTC: true, Format: "%H:%M:%S %Z"}, "12:32:14 UTC"},
		{"jalali", dateOptions{Jalali: "2013/09/21"}, "1392/06/30"},
		{"jalali with format", dateOptions{Jalali: "2024/03/20", Format: "%A %d %B"}, "Wednesday 01 Farvardin"},
		{"gregorian", dateOptions{Gregorian: "1403/01/01"}, "2024/03/20"},
		{"date string", dateOptions{Date: "%Y/%m/%d %H:%M;1392/04/10 08:30", Format: "%Y-%m-%d %H:%M"}, "1392-04-10 08:30"},
		{"date string utc", dateOptions{Date: "%Y/%m/%d %H:%M;1392/09/01 16:02", UTC: true, Format: "%H:%M"}, "12:32"},
		{"date timestamp", dateOptions{Date: "%s;1382572800", UTC: true, Format: "%Y/%m/%d %H:%M"}, "1392/08/02 00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := date(t, tt.opts); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDateMalformed(t *testing.T) {
	var buf bytes.Buffer
	err := runDate(&buf, testutil.FakeClock(), dateOptions{Date: "1392/09/01"})
	if !errors.Is(err, errMalformedDate) {
		t.Fatalf("expected errMalformedDate, got %v", err)
	}
}

func TestDateReference(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	mtime := time.Date(2014, 1, 1, 9, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	if got := date(t, dateOptions{Reference: path, Format: "%Y/%m/%d"}); got != "1392/10/11" {
		t.Errorf("got %q, want 1392/10/11", got)
	}

	var buf bytes.Buffer
	if err := runDate(&buf, testutil.FakeClock(), dateOptions{Reference: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Fatal("expected error for missing reference file")
	}
}

func TestCalArgs(t *testing.T) {
	tests := []struct {
		args      []string
		wholeYear bool
		year      int
		month     int
		wantErr   bool
	}{
		{args: nil, year: 1392, month: 9},
		{args: []string{"3"}, year: 1392, month: 3},
		{args: []string{"1400", "12"}, year: 1400, month: 12},
		{args: []string{"1399"}, wholeYear: true, year: 1399, month: 9},
		{args: []string{"13"}, wantErr: true},
		{args: []string{"x"}, wantErr: true},
		{args: []string{"1", "2", "3"}, wantErr: true},
	}
	for _, tt := range tests {
		o := calOptions{Year: 1392, Month: 9, WholeYear: tt.wholeYear}
		err := o.setArgs(tt.args)
		if tt.wantErr {
			if err == nil {
				t.Errorf("setArgs(%v): expected error", tt.args)
			}
			continue
		}
		if err != nil {
			t.Errorf("setArgs(%v): %v", tt.args, err)
			continue
		}
		if o.Year != tt.year || o.Month != tt.month {
			t.Errorf("setArgs(%v) = %d/%d, want %d/%d", tt.args, o.Year, o.Month, tt.year, tt.month)
		}
	}
}

func TestCal(t *testing.T) {
	today := jdatetime.MustDate(1392, 9, 1)
	source := func(year, month int) ([]models.Occasion, error) {
		if month != 9 {
			return nil, nil
		}
		return []models.Occasion{{Month: 9, Day: 1, Title: "Test day", Holiday: true}}, nil
	}

	var buf bytes.Buffer
	opts := calOptions{Year: 1392, Month: 9, Profile: termenv.Ascii}
	if err := runCal(&buf, today, opts, source); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Aazar 1392", "Sa Su Mo Tu We Th Fr", " 2  3  4  5  6  7  8", " 1 Aazar: Test day"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCalThreeAndYear(t *testing.T) {
	today := jdatetime.MustDate(1392, 9, 1)

	var buf bytes.Buffer
	if err := runCal(&buf, today, calOptions{Year: 1392, Month: 12, Three: true, Profile: termenv.Ascii}, nil); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Bahman 1392", "Esfand 1392", "Farvardin 1393"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("three-month output missing %q", want)
		}
	}

	buf.Reset()
	if err := runCal(&buf, today, calOptions{Year: 1392, Month: 9, WholeYear: true, Profile: termenv.Ascii}, nil); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"1392", "Farvardin", "Esfand"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("year output missing %q", want)
		}
	}
	if strings.Contains(buf.String(), "Esfand 1392") {
		t.Error("year view should not repeat the year in month titles")
	}
}

func TestInfo(t *testing.T) {
	var buf bytes.Buffer
	if err := runInfo(&buf, 1391); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"year:            1391", "leap:            yes", "days:            366"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
