package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/muesli/termenv"
	"github.com/urfave/cli/v3"

	"github.com/starford/jcal/internal/calendar"
	"github.com/starford/jcal/internal/index"
	"github.com/starford/jcal/internal/models"
	"github.com/starford/jcal/pkg/jalali"
	"github.com/starford/jcal/pkg/jdatetime"
)

var errCalArgs = errors.New("usage: jcal cal [-3|-y] [-e] [-N] [[YEAR] MONTH]")

type calOptions struct {
	Year, Month int
	WholeYear   bool
	Three       bool
	Farsi       bool
	Profile     termenv.Profile
}

// occasionSource returns the occasions of a month. A nil source shows no
// occasions.
type occasionSource func(year, month int) ([]models.Occasion, error)

func calCommand() *cli.Command {
	return &cli.Command{
		Name:      "cal",
		Usage:     "Display a Jalali calendar",
		ArgsUsage: "[[YEAR] MONTH]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "year", Aliases: []string{"y"}, Usage: "display a calendar for the whole year"},
			&cli.BoolFlag{Name: "three", Aliases: []string{"3"}, Usage: "display the previous, current and next month"},
			&cli.BoolFlag{Name: "farsi", Aliases: []string{"e"}, Usage: "use Farsi names and digits"},
			&cli.BoolFlag{Name: "no-color", Aliases: []string{"N"}, Usage: "disable colours"},
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

			today := jdatetime.Today(clk)
			opts := calOptions{
				Year:      today.Year(),
				Month:     today.Month(),
				WholeYear: cmd.Bool("year"),
				Three:     cmd.Bool("three"),
				Farsi:     cmd.Bool("farsi") || cfg.Calendar.FarsiDigits,
				Profile:   termenv.EnvColorProfile(),
			}
			if cmd.Bool("no-color") {
				opts.Profile = termenv.Ascii
			}
			if err := opts.setArgs(cmd.Args().Slice()); err != nil {
				return err
			}

			var occasions occasionSource
			if _, statErr := os.Stat(cfg.SQLite.Path); statErr == nil {
				db, err := index.Open(cfg.SQLite.Path)
				if err != nil {
					return err
				}
				defer db.Close()
				occasions = db.Month
			}
			return runCal(cmd.Root().Writer, today, opts, occasions)
		},
	}
}

// setArgs applies the positional MONTH or YEAR MONTH arguments. A single
// argument with -y is the year.
func (o *calOptions) setArgs(args []string) error {
	nums := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return errCalArgs
		}
		nums[i] = n
	}

	switch {
	case len(nums) == 0:
	case len(nums) == 1 && o.WholeYear:
		o.Year = nums[0]
	case len(nums) == 1:
		o.Month = nums[0]
	case len(nums) == 2:
		o.Year, o.Month = nums[0], nums[1]
	default:
		return errCalArgs
	}
	if o.Month < 1 || o.Month > jalali.MonthsPerYear {
		return fmt.Errorf("jcal: month %d out of range", o.Month)
	}
	return nil
}

func runCal(w io.Writer, today jdatetime.Date, opts calOptions, occasions occasionSource) error {
	build := func(year, month int) (calendar.Month, error) {
		var occ []models.Occasion
		if occasions != nil {
			var err error
			if occ, err = occasions(year, month); err != nil {
				return calendar.Month{}, err
			}
		}
		return calendar.Build(year, month, today, occ)
	}

	r := calendar.NewRenderer(w, opts.Profile, opts.Farsi)

	switch {
	case opts.WholeYear:
		months := make([]calendar.Month, 0, jalali.MonthsPerYear)
		for m := 1; m <= jalali.MonthsPerYear; m++ {
			cm, err := build(opts.Year, m)
			if err != nil {
				return err
			}
			months = append(months, cm)
		}
		_, err := fmt.Fprintln(w, r.Year(opts.Year, months))
		return err

	case opts.Three:
		py, pm, ny, nm := calendar.Neighbours(opts.Year, opts.Month)
		months := make([]calendar.Month, 0, 3)
		for _, ym := range [][2]int{{py, pm}, {opts.Year, opts.Month}, {ny, nm}} {
			cm, err := build(ym[0], ym[1])
			if err != nil {
				return err
			}
			months = append(months, cm)
		}
		_, err := fmt.Fprintln(w, r.Months(months, true))
		return err
	}

	m, err := build(opts.Year, opts.Month)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, r.Month(m)); err != nil {
		return err
	}
	if list := r.Occasions(m); list != "" {
		_, err = fmt.Fprint(w, "\n"+list)
	}
	return err
}

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "Show leap cycle information for a Jalali year",
		ArgsUsage: "YEAR",
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("usage: jcal info YEAR")
			}
			year, err := strconv.Atoi(cmd.Args().First())
			if err != nil {
				return fmt.Errorf("jcal: year: %w", err)
			}
			return runInfo(cmd.Root().Writer, year)
		},
	}
}

func runInfo(w io.Writer, year int) error {
	info := jalali.GetYearInfo(year)
	leap := "no"
	if info.Leap {
		leap = "yes"
	}
	_, err := fmt.Fprintf(w,
		"year:            %d\nleap:            %s\ndays:            %d\n"+
			"passed years:    %d\nremaining years: %d\n"+
			"passed leaps:    %d\nremaining leaps: %d\nabsolute leaps:  %d\n",
		info.Year, leap, jalali.YearDays(year),
		info.Passed, info.Remaining,
		info.PassedLeaps, info.RemainingLeaps, info.AbsoluteLeaps)
	return err
}
