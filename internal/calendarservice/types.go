package calendarservice

import (
	"time"

	"github.com/starford/jcal/internal/models"
	"github.com/starford/jcal/pkg/jalali"
	"github.com/starford/jcal/pkg/jdatetime"
)

// Moment is a point in time in both calendars.
type Moment struct {
	Jalali    string    `json:"jalali"`
	Gregorian time.Time `json:"gregorian"`
	Timestamp int64     `json:"timestamp"`
	Weekday   string    `json:"weekday"`
	WeekdayFa string    `json:"weekday_fa"`
	Month     string    `json:"month"`
	MonthFa   string    `json:"month_fa"`
	YearDay   int       `json:"year_day"`
	Leap      bool      `json:"leap"`
	Formatted string    `json:"formatted,omitempty"`

	// Occasions lists what falls on the current day; only Now fills it.
	Occasions []models.Occasion `json:"occasions,omitempty"`
}

// YearSummary is the leap cycle information of a year plus its bounds.
type YearSummary struct {
	jalali.YearInfo
	Days     int    `json:"days"`
	Nowruz   string `json:"nowruz"`
	LastDay  string `json:"last_day"`
	Weekday  string `json:"nowruz_weekday"`
	Holidays int    `json:"holidays"`
}

// FileDetail is the full representation of an occasion file.
type FileDetail struct {
	Path      string            `json:"path"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	Checksum  string            `json:"checksum"`
	Occasions []models.Occasion `json:"occasions"`
	Skipped   []string          `json:"skipped,omitempty"`
}

// momentOf describes dt; layout, when set, fills Formatted.
func momentOf(dt jdatetime.DateTime, layout string) (*Moment, error) {
	iso, err := dt.ISOFormat(" ")
	if err != nil {
		return nil, err
	}
	g, err := dt.Gregorian()
	if err != nil {
		return nil, err
	}
	m := &Moment{
		Jalali:    iso,
		Gregorian: g,
		Timestamp: g.Unix(),
		Weekday:   jalali.DayNames[dt.Weekday()],
		WeekdayFa: jalali.DayNamesFa[dt.Weekday()],
		Month:     jalali.MonthNames[dt.Month()-1],
		MonthFa:   jalali.MonthNamesFa[dt.Month()-1],
		YearDay:   dt.YearDay(),
		Leap:      jalali.IsLeap(dt.Year()),
	}
	if layout != "" {
		if m.Formatted, err = dt.Strftime(layout); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
