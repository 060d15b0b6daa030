package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/starford/jcal/pkg/jalali"
	"github.com/starford/jcal/pkg/jdatetime"
)

const (
	defaultDateLayout = "%h %b %d %H:%M:%S %Z %Y"
	rfc2822Layout     = "%h, %d %b %Y %H:%M:%S %z"
	slashDateLayout   = "%Y/%m/%d"
	slashGoLayout     = "2006/01/02"
)

var errMalformedDate = errors.New("malformed date string, use ';' to separate format and date string")

type dateOptions struct {
	// Format is the +FORMAT argument without its plus sign.
	Format    string
	UTC       bool
	Date      string
	Reference string
	Jalali    string
	Gregorian string
	RFC2822   bool
}

func dateCommand() *cli.Command {
	return &cli.Command{
		Name:      "date",
		Usage:     "Display the current Jalali date and time in the given FORMAT",
		ArgsUsage: "[+FORMAT]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "display time described by FORMAT;STRING, not now"},
			&cli.StringFlag{Name: "reference", Aliases: []string{"r"}, Usage: "display the last modification time of `FILE`"},
			&cli.StringFlag{Name: "jalali", Aliases: []string{"j"}, Usage: "convert a Gregorian YYYY/MM/DD date to Jalali"},
			&cli.StringFlag{Name: "gregorian", Aliases: []string{"g"}, Usage: "convert a Jalali YYYY/MM/DD date to Gregorian"},
			&cli.BoolFlag{Name: "rfc-2822", Aliases: []string{"R"}, Usage: "output date and time in RFC 2822 format"},
			&cli.BoolFlag{Name: "utc", Aliases: []string{"u", "universal"}, Usage: "print Coordinated Universal Time"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			clk, err := cfg.Calendar.Clock()
			if err != nil {
				return err
			}

			opts := dateOptions{
				UTC:       cmd.Bool("utc"),
				Date:      cmd.String("date"),
				Reference: cmd.String("reference"),
				Jalali:    cmd.String("jalali"),
				Gregorian: cmd.String("gregorian"),
				RFC2822:   cmd.Bool("rfc-2822"),
			}
			for _, arg := range cmd.Args().Slice() {
				if f, ok := strings.CutPrefix(arg, "+"); ok {
					opts.Format = f
				}
			}
			return runDate(cmd.Root().Writer, clk, opts)
		},
	}
}

func runDate(w io.Writer, clk jalali.Clock, opts dateOptions) error {
	switch {
	case opts.Jalali != "":
		t, err := time.ParseInLocation(slashGoLayout, opts.Jalali, clk.Location())
		if err != nil {
			return fmt.Errorf("jdate: %w", err)
		}
		d, err := jdatetime.G2JDate(t, clk)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, d.Strftime(orDefault(opts.Format, slashDateLayout)))
		return err

	case opts.Gregorian != "":
		bt, err := jalali.Parse(slashDateLayout, opts.Gregorian)
		if err != nil {
			return err
		}
		d, err := jdatetime.NewDate(bt.Year, bt.Mon+1, bt.Mday)
		if err != nil {
			return err
		}
		g, err := jdatetime.J2GDate(d, clk)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, g.Format(slashGoLayout))
		return err
	}

	ts, err := dateTimestamp(clk, opts)
	if err != nil {
		return err
	}

	bt := jalali.Localtime(ts, clk)
	if opts.UTC {
		bt = jalali.Gmtime(ts)
	}

	layout := orDefault(opts.Format, defaultDateLayout)
	if opts.RFC2822 {
		layout = rfc2822Layout
	}
	_, err = fmt.Fprintln(w, jalali.Format(layout, bt))
	return err
}

// dateTimestamp returns the instant the date command reports on.
func dateTimestamp(clk jalali.Clock, opts dateOptions) (int64, error) {
	ts := clk.Now().Unix()

	if opts.Date != "" {
		layout, value, ok := strings.Cut(opts.Date, ";")
		if !ok {
			return 0, errMalformedDate
		}
		dt, err := jdatetime.StrptimeIn(layout, value, clk)
		if err != nil {
			return 0, err
		}
		g, err := jdatetime.J2G(dt, clk)
		if err != nil {
			return 0, err
		}
		ts = g.Unix()
	}

	if opts.Reference != "" {
		info, err := os.Stat(opts.Reference)
		if err != nil {
			return 0, fmt.Errorf("jdate: %w", err)
		}
		ts = info.ModTime().Unix()
	}
	return ts, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
