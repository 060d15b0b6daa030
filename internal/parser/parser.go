// Package parser reads and writes YAML occasion files.
//
// An occasion file looks like:
//
//	title: Iranian public holidays
//	occasions:
//	  - date: "01-01"
//	    title: Nowruz
//	    holiday: true
//	  - date: "1403-01-12"
//	    title: One-off event
//
// A date of MM-DD repeats every year; YYYY-MM-DD happens once.
package parser

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/starford/jcal/internal/models"
	"github.com/starford/jcal/pkg/jalali"
	"github.com/starford/jcal/pkg/jdatetime"
)

// leapYear is any leap year; recurring dates are checked against its month
// lengths so Esfand 30 is accepted.
const leapYear = 1399

var dateRe = regexp.MustCompile(`^(\d{1,4}-)?\d{1,2}-\d{1,2}$`)

// File is the on-disk layout of an occasion file.
type File struct {
	Title     string  `yaml:"title,omitempty" json:"title,omitempty"`
	Occasions []Entry `yaml:"occasions" json:"occasions"`
}

// Entry is one occasion as written in a file.
type Entry struct {
	Date    string `yaml:"date" json:"date"`
	Title   string `yaml:"title" json:"title"`
	Holiday bool   `yaml:"holiday,omitempty" json:"holiday,omitempty"`
}

// Validate checks the entry's shape. Calendar validity of the date is
// checked by Occasion.
func (e Entry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Date, validation.Required, validation.Match(dateRe).Error("must be MM-DD or YYYY-MM-DD")),
		validation.Field(&e.Title, validation.Required, validation.Length(1, 200)),
	)
}

// Occasion converts e into a models.Occasion read from source.
func (e Entry) Occasion(source string) (models.Occasion, error) {
	if err := e.Validate(); err != nil {
		return models.Occasion{}, err
	}
	year, month, day, err := parseDate(e.Date)
	if err != nil {
		return models.Occasion{}, fmt.Errorf("date %q: %w", e.Date, err)
	}
	return models.Occasion{
		Source:  source,
		Year:    year,
		Month:   month,
		Day:     day,
		Title:   strings.TrimSpace(e.Title),
		Holiday: e.Holiday,
	}, nil
}

// Result holds the output of parsing an occasion file.
type Result struct {
	Title     string
	Occasions []models.Occasion
	// Skipped describes entries that failed validation.
	Skipped []string
}

// Decode unmarshals an occasion file. Empty input is an empty file.
func Decode(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parser: decode: %w", err)
	}
	return &f, nil
}

// Encode marshals f in the canonical layout.
func Encode(f *File) ([]byte, error) {
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("parser: encode: %w", err)
	}
	return data, nil
}

// Parse decodes the occasion file at path. Invalid entries are skipped and
// reported in Result.Skipped; a YAML syntax error fails the whole file.
func Parse(path string, data []byte) (*Result, error) {
	f, err := Decode(data)
	if err != nil {
		return nil, err
	}
	res := &Result{Title: deriveTitle(f, path)}
	for i, e := range f.Occasions {
		o, err := e.Occasion(path)
		if err != nil {
			res.Skipped = append(res.Skipped, fmt.Sprintf("occasions[%d]: %v", i, err))
			continue
		}
		res.Occasions = append(res.Occasions, o)
	}
	return res, nil
}

// parseDate reads MM-DD (year 0) or YYYY-MM-DD.
func parseDate(s string) (year, month, day int, err error) {
	if strings.Count(s, "-") == 2 {
		t, err := jalali.Parse("%Y-%m-%d", s)
		if err != nil {
			return 0, 0, 0, err
		}
		if t.Year < 1 {
			return 0, 0, 0, fmt.Errorf("%w: year %d", jalali.ErrFieldRange, t.Year)
		}
		d, err := jdatetime.NewDate(t.Year, t.Mon+1, t.Mday)
		if err != nil {
			return 0, 0, 0, err
		}
		return d.Year(), d.Month(), d.Day(), nil
	}

	t, err := jalali.Parse("%m-%d", s)
	if err != nil {
		return 0, 0, 0, err
	}
	if t.Mon < 0 || t.Mon > 11 {
		return 0, 0, 0, fmt.Errorf("%w: month %d not in 1..12", jalali.ErrFieldRange, t.Mon+1)
	}
	if n := jalali.MonthDays(leapYear, t.Mon); t.Mday < 1 || t.Mday > n {
		return 0, 0, 0, fmt.Errorf("%w: day %d not in 1..%d", jalali.ErrFieldRange, t.Mday, n)
	}
	return 0, t.Mon + 1, t.Mday, nil
}

// deriveTitle returns the file's title, falling back to the file name
// without extension.
func deriveTitle(f *File, path string) string {
	if t := strings.TrimSpace(f.Title); t != "" {
		return t
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
