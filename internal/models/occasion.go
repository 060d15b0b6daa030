// Package models defines the domain types for jcal.
package models

import "time"

// Occasion is a dated event from an occasion file.
type Occasion struct {
	ID      int64  `json:"id"`
	Source  string `json:"source"`
	Year    int    `json:"year,omitempty"` // 0 repeats every year
	Month   int    `json:"month"`
	Day     int    `json:"day"`
	Title   string `json:"title"`
	Holiday bool   `json:"holiday"`
}

// Recurring reports whether o repeats every year.
func (o Occasion) Recurring() bool {
	return o.Year == 0
}

// OccursIn reports whether o falls in the given Jalali year and month.
func (o Occasion) OccursIn(year, month int) bool {
	return o.Month == month && (o.Recurring() || o.Year == year)
}

// FileMetadata is a lightweight representation of an occasion file returned
// by list operations.
type FileMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}
