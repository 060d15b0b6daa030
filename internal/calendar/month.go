// Package calendar builds month grids of the Jalali calendar and renders
// them for terminals.
package calendar

import (
	"fmt"

	"github.com/starford/jcal/internal/models"
	"github.com/starford/jcal/pkg/jalali"
	"github.com/starford/jcal/pkg/jdatetime"
)

// Friday is the weekday index of Jomeh, the weekly day off.
const Friday = 6

// Day is one cell of a month grid.
type Day struct {
	Day       int               `json:"day"`
	Weekday   int               `json:"weekday"`
	Gregorian string            `json:"gregorian"`
	Today     bool              `json:"today,omitempty"`
	Holiday   bool              `json:"holiday,omitempty"`
	Occasions []models.Occasion `json:"occasions,omitempty"`
}

// Off reports whether the day is a Friday or a holiday.
func (d Day) Off() bool {
	return d.Holiday || d.Weekday == Friday
}

// Month is a Jalali month laid out in Saturday-first weeks.
type Month struct {
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Name   string `json:"name"`
	NameFa string `json:"name_fa"`
	Days   []Day  `json:"days"`
	// Weeks holds day numbers per weekday column, 0 for blank cells.
	Weeks [][7]int `json:"weeks"`
}

// Build lays out year/month. Days equal to today are flagged and occasions
// falling in the month are attached to their day.
func Build(year, month int, today jdatetime.Date, occasions []models.Occasion) (Month, error) {
	first, err := jdatetime.NewDate(year, month, 1)
	if err != nil {
		return Month{}, fmt.Errorf("calendar: build: %w", err)
	}

	n := jalali.MonthDays(year, month-1)
	m := Month{
		Year:   year,
		Month:  month,
		Name:   jalali.MonthNames[month-1],
		NameFa: jalali.MonthNamesFa[month-1],
		Days:   make([]Day, n),
	}

	start := first.Weekday()
	base := first.Gregorian()
	for i := range m.Days {
		m.Days[i] = Day{
			Day:       i + 1,
			Weekday:   (start + i) % jalali.DaysPerWeek,
			Gregorian: base.AddDate(0, 0, i).Format("2006-01-02"),
			Today:     today.Year() == year && today.Month() == month && today.Day() == i+1,
		}
	}

	for _, o := range occasions {
		if !o.OccursIn(year, month) || o.Day < 1 || o.Day > n {
			continue
		}
		d := &m.Days[o.Day-1]
		d.Occasions = append(d.Occasions, o)
		d.Holiday = d.Holiday || o.Holiday
	}

	var week [7]int
	for _, d := range m.Days {
		week[d.Weekday] = d.Day
		if d.Weekday == jalali.DaysPerWeek-1 {
			m.Weeks = append(m.Weeks, week)
			week = [7]int{}
		}
	}
	if week != [7]int{} {
		m.Weeks = append(m.Weeks, week)
	}
	return m, nil
}

// Neighbours returns the months before and after year/month.
func Neighbours(year, month int) (prevYear, prevMonth, nextYear, nextMonth int) {
	prevYear, prevMonth = year, month-1
	if prevMonth < 1 {
		prevYear, prevMonth = year-1, 12
	}
	nextYear, nextMonth = year, month+1
	if nextMonth > 12 {
		nextYear, nextMonth = year+1, 1
	}
	return prevYear, prevMonth, nextYear, nextMonth
}
