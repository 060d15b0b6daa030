// Package calendarservice coordinates calendar conversions with the
// occasion store and index.
package calendarservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/starford/jcal/internal/apperr"
	"github.com/starford/jcal/internal/calendar"
	"github.com/starford/jcal/internal/checksum"
	"github.com/starford/jcal/internal/index"
	"github.com/starford/jcal/internal/metrics"
	"github.com/starford/jcal/internal/models"
	"github.com/starford/jcal/internal/parser"
	"github.com/starford/jcal/internal/storage"
	"github.com/starford/jcal/pkg/jalali"
	"github.com/starford/jcal/pkg/jdatetime"
)

// DefaultLayout is used when no layout is configured.
const DefaultLayout = "%A %d %B %Y %H:%M:%S"

var (
	jalaliLayouts = []string{
		"%Y-%m-%d %H:%M:%S",
		"%Y-%m-%dT%H:%M:%S",
		"%Y-%m-%d %H:%M",
		"%Y-%m-%d",
		"%Y/%m/%d",
	}
	gregorianLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
	}
)

// Service coordinates conversions, storage and index operations.
type Service struct {
	store   storage.Provider
	db      index.OccasionIndex
	clk     jalali.Clock
	tz      jdatetime.TZInfo
	layout  string
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics records conversions and index sizes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger sets the logger used for indexing diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithLayout sets the strftime layout of Moment.Formatted.
func WithLayout(layout string) Option {
	return func(s *Service) { s.layout = layout }
}

// NewService creates a calendar service. Times are read from and rendered
// in the zone of clk.
func NewService(store storage.Provider, db index.OccasionIndex, clk jalali.Clock, opts ...Option) *Service {
	s := &Service{
		store:  store,
		db:     db,
		clk:    clk,
		tz:     jdatetime.Location(clk.Location()),
		layout: DefaultLayout,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
}

// Now returns the current time in the service zone with today's occasions.
func (s *Service) Now(_ context.Context) (*Moment, error) {
	dt, err := jdatetime.Now(s.clk, s.tz)
	if err != nil {
		return nil, err
	}
	m, err := momentOf(dt, s.layout)
	if err != nil {
		return nil, err
	}
	if m.Occasions, err = s.db.Day(dt.Year(), dt.Month(), dt.Day()); err != nil {
		return nil, err
	}
	return m, nil
}

// Today returns the current local Jalali date.
func (s *Service) Today() jdatetime.Date {
	return jdatetime.Today(s.clk)
}

// parseJalali reads value in one of the accepted Jalali layouts as a wall
// time in the service zone.
func (s *Service) parseJalali(value string) (jdatetime.DateTime, error) {
	value = strings.TrimSpace(value)
	var firstErr error
	for _, layout := range jalaliLayouts {
		dt, err := jdatetime.StrptimeIn(layout, value, s.clk)
		if err == nil {
			return dt.Replace(jdatetime.WithTZ(s.tz))
		}
		if firstErr == nil || !errors.Is(err, jalali.ErrFormatMismatch) {
			firstErr = err
		}
	}
	return jdatetime.DateTime{}, invalid(firstErr)
}

func (s *Service) parseGregorian(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range gregorianLayouts {
		if t, err := time.ParseInLocation(layout, value, s.clk.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, invalid(fmt.Errorf("unrecognised Gregorian time %q", value))
}

// ToGregorian converts a Jalali date or date-time to Gregorian.
func (s *Service) ToGregorian(_ context.Context, value string) (*Moment, error) {
	dt, err := s.parseJalali(value)
	if err != nil {
		return nil, err
	}
	m, err := momentOf(dt, s.layout)
	if err != nil {
		return nil, invalid(err)
	}
	s.metrics.IncConversion(metrics.JalaliToGregorian)
	return m, nil
}

// ToJalali converts a Gregorian date or date-time to Jalali.
func (s *Service) ToJalali(_ context.Context, value string) (*Moment, error) {
	t, err := s.parseGregorian(value)
	if err != nil {
		return nil, err
	}
	dt, err := jdatetime.FromUnix(t.Unix(), t.Nanosecond()/1000, jdatetime.Location(t.Location()), s.clk)
	if err != nil {
		return nil, invalid(err)
	}
	m, err := momentOf(dt, s.layout)
	if err != nil {
		return nil, invalid(err)
	}
	s.metrics.IncConversion(metrics.GregorianToJalali)
	return m, nil
}

// Format renders a Jalali date-time with a strftime layout.
func (s *Service) Format(_ context.Context, value, layout string) (string, error) {
	dt, err := s.parseJalali(value)
	if err != nil {
		return "", err
	}
	out, err := dt.Strftime(layout)
	if err != nil {
		return "", invalid(err)
	}
	return out, nil
}

// Parse reads value with a strptime layout.
func (s *Service) Parse(_ context.Context, value, layout string) (*Moment, error) {
	dt, err := jdatetime.StrptimeIn(layout, value, s.clk)
	if err != nil {
		return nil, invalid(err)
	}
	if dt, err = dt.Replace(jdatetime.WithTZ(s.tz)); err != nil {
		return nil, invalid(err)
	}
	return momentOf(dt, s.layout)
}

func checkYear(year int) error {
	if year < jdatetime.MinDate.Year() || year > jdatetime.MaxDate.Year() {
		return fmt.Errorf("%w: year %d not in %d..%d", apperr.ErrInvalid, year, jdatetime.MinDate.Year(), jdatetime.MaxDate.Year())
	}
	return nil
}

// YearInfo returns the leap cycle position and bounds of year.
func (s *Service) YearInfo(_ context.Context, year int) (*YearSummary, error) {
	if err := checkYear(year); err != nil {
		return nil, err
	}
	first := jdatetime.MustDate(year, 1, 1)
	last := jdatetime.MustDate(year, 12, jalali.MonthDays(year, 11))

	holidays := 0
	for month := 1; month <= 12; month++ {
		occ, err := s.db.Month(year, month)
		if err != nil {
			return nil, err
		}
		days := jalali.MonthDays(year, month-1)
		for _, o := range occ {
			if o.Holiday && o.Day <= days {
				holidays++
			}
		}
	}

	return &YearSummary{
		YearInfo: jalali.GetYearInfo(year),
		Days:     jalali.YearDays(year),
		Nowruz:   first.Gregorian().Format(time.DateOnly),
		LastDay:  last.Gregorian().Format(time.DateOnly),
		Weekday:  jalali.DayNames[first.Weekday()],
		Holidays: holidays,
	}, nil
}

// Month lays out a month with its occasions and today marked.
func (s *Service) Month(ctx context.Context, year, month int) (calendar.Month, error) {
	occ, err := s.Occasions(ctx, year, month)
	if err != nil {
		return calendar.Month{}, err
	}
	m, err := calendar.Build(year, month, s.Today(), occ)
	if err != nil {
		return calendar.Month{}, invalid(err)
	}
	return m, nil
}

// Occasions returns the occasions of year/month, or of the whole year when
// month is 0.
func (s *Service) Occasions(_ context.Context, year, month int) ([]models.Occasion, error) {
	if err := checkYear(year); err != nil {
		return nil, err
	}
	if month < 0 || month > 12 {
		return nil, fmt.Errorf("%w: month %d not in 1..12", apperr.ErrInvalid, month)
	}
	if month != 0 {
		occ, err := s.db.Month(year, month)
		return nonNilSlice(occ), err
	}
	all := []models.Occasion{}
	for m := 1; m <= 12; m++ {
		occ, err := s.db.Month(year, m)
		if err != nil {
			return nil, err
		}
		all = append(all, occ...)
	}
	return all, nil
}

// Search delegates full-text search to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", apperr.ErrInvalid)
	}
	res, err := s.db.Search(query, limit)
	return nonNilSlice(res), err
}

// ListFiles returns all indexed occasion files.
func (s *Service) ListFiles(_ context.Context) ([]index.FileRow, error) {
	rows, err := s.db.ListFiles()
	return nonNilSlice(rows), err
}

// GetFile reads and parses an occasion file.
func (s *Service) GetFile(_ context.Context, path string) (*FileDetail, error) {
	data, err := s.read(path)
	if err != nil {
		return nil, err
	}
	return buildFileDetail(path, data)
}

// CreateFile writes a new occasion file and indexes it.
func (s *Service) CreateFile(_ context.Context, path string, content []byte) (*FileDetail, error) {
	if !storage.IsOccasionFile(path) {
		return nil, fmt.Errorf("%w: %s is not a .yaml file", apperr.ErrInvalid, path)
	}
	if _, err := s.store.Read(path); err == nil {
		return nil, apperr.ErrAlreadyExists
	}
	return s.write(path, content)
}

// UpdateFile replaces an occasion file with optimistic concurrency.
func (s *Service) UpdateFile(_ context.Context, path string, content []byte, ifMatch string) (*FileDetail, error) {
	existing, err := s.read(path)
	if err != nil {
		return nil, err
	}
	if ifMatch != "" && !checksum.Match(existing, ifMatch) {
		return nil, apperr.ErrConflict
	}
	return s.write(path, content)
}

// DeleteFile removes an occasion file from storage and index.
func (s *Service) DeleteFile(_ context.Context, path string) error {
	if err := s.store.Delete(path); err != nil {
		return storeError(err)
	}
	if err := s.db.DeleteFile(path); err != nil {
		return err
	}
	s.RefreshStats()
	return nil
}

// AddOccasion appends entry to the occasion file at path, creating the
// file when it does not exist.
func (s *Service) AddOccasion(_ context.Context, path string, entry parser.Entry) (*FileDetail, error) {
	if !storage.IsOccasionFile(path) {
		return nil, fmt.Errorf("%w: %s is not a .yaml file", apperr.ErrInvalid, path)
	}
	if _, err := entry.Occasion(path); err != nil {
		return nil, invalid(err)
	}

	f := &parser.File{}
	data, err := s.read(path)
	switch {
	case err == nil:
		if f, err = parser.Decode(data); err != nil {
			return nil, invalid(err)
		}
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, err
	}

	f.Occasions = append(f.Occasions, entry)
	out, err := parser.Encode(f)
	if err != nil {
		return nil, err
	}
	return s.write(path, out)
}

// IndexFile parses data and upserts it into the index.
func (s *Service) IndexFile(path string, data []byte) error {
	if err := index.IndexFile(s.db, path, data, s.logger); err != nil {
		return err
	}
	s.RefreshStats()
	return nil
}

// RefreshStats publishes the number of indexed occasions to metrics.
func (s *Service) RefreshStats() {
	if s.metrics == nil {
		return
	}
	n, err := s.db.Count()
	if err != nil {
		s.logger.Warn("count occasions", slog.String("error", err.Error()))
		return
	}
	s.metrics.SetOccasions(n)
}

func (s *Service) read(path string) ([]byte, error) {
	data, err := s.store.Read(path)
	if err != nil {
		return nil, storeError(err)
	}
	return data, nil
}

// storeError maps storage failures onto the application error kinds.
func storeError(err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return apperr.ErrNotFound
	case errors.Is(err, storage.ErrNotOccasionFile):
		return invalid(err)
	}
	return err
}

func (s *Service) write(path string, content []byte) (*FileDetail, error) {
	detail, err := buildFileDetail(path, content)
	if err != nil {
		return nil, err
	}
	if err := s.store.Write(path, content); err != nil {
		return nil, storeError(err)
	}
	if err := s.IndexFile(path, content); err != nil {
		return nil, err
	}
	return detail, nil
}

// buildFileDetail constructs a FileDetail from raw data without re-reading the file.
func buildFileDetail(path string, data []byte) (*FileDetail, error) {
	res, err := parser.Parse(path, data)
	if err != nil {
		return nil, invalid(err)
	}
	return &FileDetail{
		Path:      path,
		Title:     res.Title,
		Content:   string(data),
		Checksum:  checksum.Sum(data),
		Occasions: nonNilSlice(res.Occasions),
		Skipped:   res.Skipped,
	}, nil
}
