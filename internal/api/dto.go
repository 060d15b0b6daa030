package api

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/jcal/internal/calendar"
	"github.com/starford/jcal/internal/calendarservice"
	"github.com/starford/jcal/internal/index"
	"github.com/starford/jcal/internal/models"
)

// FormatRequest is the request body for formatting a Jalali date-time.
type FormatRequest struct {
	DateTime string `json:"datetime" example:"1392-09-01 12:32:14" validate:"required"`
	Layout   string `json:"layout" example:"%A %d %B %Y" validate:"required"`
}

// Validate validates the request.
func (r *FormatRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.DateTime, validation.Required),
		validation.Field(&r.Layout, validation.Required, validation.Length(1, 256)),
	)
}

// ParseRequest is the request body for parsing a Jalali date-time.
type ParseRequest struct {
	Value  string `json:"value" example:"01 Aazar 1392" validate:"required"`
	Layout string `json:"layout" example:"%d %B %Y" validate:"required"`
}

// Validate validates the request.
func (r *ParseRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value, validation.Required),
		validation.Field(&r.Layout, validation.Required, validation.Length(1, 256)),
	)
}

// FormatResponse wraps a formatted string.
type FormatResponse struct {
	Result string `json:"result" example:"Friday 01 Aazar 1392" validate:"required"`
}

// AddOccasionRequest is the request body for adding an occasion to a file.
type AddOccasionRequest struct {
	Path    string `json:"path" example:"personal.yaml" validate:"required"`
	Date    string `json:"date" example:"05-10" validate:"required"`
	Title   string `json:"title" example:"Birthday" validate:"required"`
	Holiday bool   `json:"holiday"`
}

// Validate validates the request. Date syntax is checked by the service.
func (r *AddOccasionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Path, validation.Required),
		validation.Field(&r.Date, validation.Required),
		validation.Field(&r.Title, validation.Required),
	)
}

// CreateFileRequest is the request body for creating an occasion file.
type CreateFileRequest struct {
	Path    string `json:"path" example:"family.yaml" validate:"required"`
	Content string `json:"content" example:"occasions: []" validate:"required"`
}

// Validate validates the request.
func (r *CreateFileRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Path, validation.Required),
		validation.Field(&r.Content, validation.Required),
	)
}

// UpdateFileRequest is the request body for replacing an occasion file.
type UpdateFileRequest struct {
	Content string `json:"content" example:"occasions: []" validate:"required"`
}

// Validate validates the request.
func (r *UpdateFileRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Content, validation.Required),
	)
}

// Moment is a point in time in both calendars (aliased from the domain layer).
type Moment = calendarservice.Moment

// YearSummary is the year information response (aliased from the domain layer).
type YearSummary = calendarservice.YearSummary

// FileDetail is the full occasion file response (aliased from the domain layer).
type FileDetail = calendarservice.FileDetail

// Month is a month grid (aliased from the calendar package).
type Month = calendar.Month

// OccasionsResponse wraps occasion listings.
type OccasionsResponse struct {
	Occasions []models.Occasion `json:"occasions" validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []index.SearchResult `json:"results" validate:"required"`
}

// FileListResponse wraps occasion file listings.
type FileListResponse struct {
	Files []index.FileRow `json:"files" validate:"required"`
}
