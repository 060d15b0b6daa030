package internal

import (
	"io"

	"github.com/starford/jcal/pkg/jalali"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config    *Config
	clock     jalali.Clock
	logOutput io.Writer
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithClock replaces the system clock derived from the calendar timezone.
func WithClock(clk jalali.Clock) Option {
	return func(a *application) {
		a.clock = clk
	}
}

// WithLogOutput sets where structured logs are written.
func WithLogOutput(w io.Writer) Option {
	return func(a *application) {
		a.logOutput = w
	}
}
