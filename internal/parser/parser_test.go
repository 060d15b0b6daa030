package parser

import (
	"strings"
	"testing"
)

const holidays = `title: Iranian public holidays
occasions:
  - date: "01-01"
    title: Nowruz
    holiday: true
  - date: "12-30"
    title: Leap day
  - date: "1392-09-01"
    title: One-off
`

func TestParse_File(t *testing.T) {
	r, err := Parse("holidays.yaml", []byte(holidays))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Title != "Iranian public holidays" {
		t.Errorf("title = %q", r.Title)
	}
	if len(r.Occasions) != 3 || len(r.Skipped) != 0 {
		t.Fatalf("occasions = %+v, skipped = %v", r.Occasions, r.Skipped)
	}
	nowruz := r.Occasions[0]
	if !nowruz.Recurring() || nowruz.Month != 1 || nowruz.Day != 1 || !nowruz.Holiday || nowruz.Source != "holidays.yaml" {
		t.Errorf("nowruz = %+v", nowruz)
	}
	once := r.Occasions[2]
	if once.Year != 1392 || once.Month != 9 || once.Day != 1 || once.Holiday {
		t.Errorf("one-off = %+v", once)
	}
	if !once.OccursIn(1392, 9) || once.OccursIn(1393, 9) || !nowruz.OccursIn(1500, 1) {
		t.Error("OccursIn wrong")
	}
}

func TestParse_SkipsInvalidEntries(t *testing.T) {
	input := `occasions:
  - date: "12-31"
    title: No such day
  - date: "1392-12-30"
    title: Not a leap year
  - date: "13-01"
    title: No such month
  - date: "01-02"
  - date: "tomorrow"
    title: Not a date
  - date: "07-13"
    title: Valid
`
	r, err := Parse("mixed.yml", []byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Occasions) != 1 || r.Occasions[0].Title != "Valid" {
		t.Errorf("occasions = %+v", r.Occasions)
	}
	if len(r.Skipped) != 5 {
		t.Errorf("skipped = %v", r.Skipped)
	}
	if !strings.HasPrefix(r.Skipped[0], "occasions[0]:") {
		t.Errorf("skipped[0] = %q", r.Skipped[0])
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := Parse("bad.yaml", []byte("occasions: [{{{")); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestParse_TitleFallsBackToFileName(t *testing.T) {
	r, err := Parse("family/birthdays.yaml", []byte("occasions: []\n"))
	if err != nil {
		t.Fatal(err)
	}
	if r.Title != "birthdays" {
		t.Errorf("title = %q, want birthdays", r.Title)
	}
}

func TestEncodeDecode(t *testing.T) {
	f, err := Decode([]byte(holidays))
	if err != nil {
		t.Fatal(err)
	}
	f.Occasions = append(f.Occasions, Entry{Date: "02-10", Title: "Added"})
	data, err := Encode(f)
	if err != nil {
		t.Fatal(err)
	}
	r, err := Parse("holidays.yaml", data)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Occasions) != 4 || r.Occasions[3].Title != "Added" {
		t.Errorf("occasions after encode = %+v", r.Occasions)
	}
}

func TestEntry_Validate(t *testing.T) {
	if err := (Entry{Date: "01-01", Title: "ok"}).Validate(); err != nil {
		t.Errorf("valid entry: %v", err)
	}
	if err := (Entry{Date: "", Title: "x"}).Validate(); err == nil {
		t.Error("missing date should fail")
	}
	if err := (Entry{Date: "1-1-1-1", Title: "x"}).Validate(); err == nil {
		t.Error("bad date shape should fail")
	}
}
