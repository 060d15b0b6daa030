package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/jcal/pkg/jalali"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App       ApplicationConfig `yaml:"app"`
	Calendar  CalendarConfig    `yaml:"calendar"`
	Occasions OccasionsConfig   `yaml:"occasions"`
	SQLite    SQLiteConfig      `yaml:"sqlite"`
	Auth      AuthConfig        `yaml:"auth"`
	Events    EventsConfig      `yaml:"events"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	for _, v := range []validation.Validatable{&c.App, &c.Calendar, &c.Occasions, &c.SQLite, &c.Auth, &c.Events} {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// CalendarConfig controls how dates are read and shown.
type CalendarConfig struct {
	// Timezone is an IANA zone name, or "Local" for the host zone.
	Timezone    string `yaml:"timezone"`
	DateFormat  string `yaml:"date_format"`
	FarsiDigits bool   `yaml:"farsi_digits"`
}

var errUnknownZone = errors.New("unknown time zone")

// Validate validates the calendar configuration.
func (c *CalendarConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Timezone, validation.Required, validation.By(func(any) error {
			if _, err := c.Location(); err != nil {
				return errUnknownZone
			}
			return nil
		})),
		validation.Field(&c.DateFormat, validation.Required),
	)
}

// Location loads the configured zone.
func (c *CalendarConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("calendar: timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Clock returns the system clock in the configured zone.
func (c *CalendarConfig) Clock() (jalali.Clock, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	return jalali.RealIn(loc), nil
}

// OccasionsConfig holds the path to the occasion file directory.
type OccasionsConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the occasions configuration.
func (c *OccasionsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// EventsConfig tunes the server-sent event stream.
type EventsConfig struct {
	// Throttle is the minimum gap between calendar.updated events.
	Throttle time.Duration `yaml:"throttle"`

	// DayCheckInterval is how often the local date is checked for rollover.
	DayCheckInterval time.Duration `yaml:"day_check_interval"`
}

// Validate validates the events configuration.
func (c *EventsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Throttle, validation.Required, validation.Min(10*time.Millisecond)),
		validation.Field(&c.DayCheckInterval, validation.Required, validation.Min(time.Second)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Calendar: CalendarConfig{
			Timezone:   "Asia/Tehran",
			DateFormat: "%A %d %B %Y %H:%M:%S",
		},
		Occasions: OccasionsConfig{
			Path: "./occasions",
		},
		SQLite: SQLiteConfig{
			Path: "./jcal.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Events: EventsConfig{
			Throttle:         2 * time.Second,
			DayCheckInterval: time.Minute,
		},
	}
}
