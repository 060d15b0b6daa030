package jalali

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse reads value according to layout. See ParseIn.
func Parse(layout, value string) (BrokenTime, error) {
	return ParseIn(layout, value, Real())
}

// ParseIn reads value according to layout, resolving %s timestamps in
// clk's zone.
//
// Literal layout text must match the input exactly. A directive's field
// runs up to the layout text between it and the next directive (or the
// single next layout byte when no directive follows), and to the end of
// the input when the directive ends the layout. Two adjacent directives
// split by field width or name.
//
// Supported directives: %a %A %h %q %g %G (weekday), %b %B %v %V %m
// (month), %d %e %j %y %Y %H %M %S %s and %%. Other directives consume
// their field without storing it. Fields absent from layout stay zero and
// IsDST is -1. When %j is given without a month or day, Mon and Mday are
// derived from it.
//
// Errors are *ParseError values matching ErrFormatMismatch.
func ParseIn(layout, value string, clk Clock) (BrokenTime, error) {
	p := &parser{
		layout: layout,
		value:  value,
		clk:    clk,
		t:      BrokenTime{IsDST: -1},
	}
	if err := p.run(); err != nil {
		return BrokenTime{}, err
	}
	return p.t, nil
}

type parser struct {
	layout string
	value  string
	clk    Clock

	t        BrokenTime
	haveDate bool
	haveYday bool
}

func (p *parser) fail(offset int, format string, args ...any) error {
	return &ParseError{
		Layout: p.layout,
		Value:  p.value,
		Offset: offset,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func (p *parser) run() error {
	i, j := 0, 0
	for i < len(p.value) && j < len(p.layout) {
		if p.layout[j] != '%' || j+1 == len(p.layout) {
			if p.value[i] != p.layout[j] {
				return p.fail(i, "expected %q", p.layout[j])
			}
			i++
			j++
			continue
		}

		d := p.layout[j+1]
		if d == '%' {
			if p.value[i] != '%' {
				return p.fail(i, "expected %q", '%')
			}
			i++
			j += 2
			continue
		}

		rest := p.layout[j+2:]
		var field, delim string
		switch {
		case rest == "":
			field = p.value[i:]
		default:
			if next := strings.IndexByte(rest, '%'); next >= 0 {
				delim = rest[:next]
			} else {
				delim = rest[:1]
			}
			if delim == "" {
				field = p.leadingField(d, p.value[i:])
				break
			}
			k := strings.Index(p.value[i:], delim)
			if k < 0 {
				return p.fail(i, "missing %q after %%%c", delim, d)
			}
			field = p.value[i : i+k]
		}

		if err := p.set(d, field); err != nil {
			return p.fail(i, "%%%c: %v", d, err)
		}
		i += len(field) + len(delim)
		j += 2 + len(delim)
	}

	if i < len(p.value) {
		return p.fail(i, "extra text")
	}
	if j < len(p.layout) {
		return p.fail(i, "input ends before %q", p.layout[j:])
	}

	if p.haveYday && !p.haveDate {
		if t, ok := TryDateFromDays(p.t); ok {
			p.t = t
		}
	}
	return nil
}

// leadingField splits off a field that is not followed by a delimiter.
func (p *parser) leadingField(d byte, s string) string {
	if names := namesFor(d); names != nil {
		best := ""
		for _, n := range names {
			if len(n) > len(best) && len(n) <= len(s) && strings.EqualFold(s[:len(n)], n) {
				best = s[:len(n)]
			}
		}
		return best
	}

	width := 2
	switch d {
	case 'Y':
		width = 4
	case 'j':
		width = 3
	case 's':
		width = len(s)
	}
	n := 0
	for n < len(s) && n < width && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return s[:n]
}

func namesFor(d byte) []string {
	switch d {
	case 'a':
		return DayNamesShort[:]
	case 'A':
		return DayNames[:]
	case 'h':
		return DayNamesFaLatinShort[:]
	case 'q':
		return DayNamesFaLatin[:]
	case 'g':
		return DayNamesFaShort[:]
	case 'G':
		return DayNamesFa[:]
	case 'b':
		return MonthNamesShort[:]
	case 'B':
		return MonthNames[:]
	case 'v':
		return MonthNamesFaShort[:]
	case 'V':
		return MonthNamesFa[:]
	}
	return nil
}

func (p *parser) set(d byte, field string) error {
	if names := namesFor(d); names != nil {
		idx := -1
		for k, n := range names {
			if strings.EqualFold(field, n) {
				idx = k
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("unknown name %q", field)
		}
		switch d {
		case 'b', 'B', 'v', 'V':
			p.t.Mon = idx
			p.haveDate = true
		default:
			p.t.Wday = idx
		}
		return nil
	}

	switch d {
	case 'd', 'e', 'H', 'j', 'm', 'M', 'S', 'y', 'Y':
	case 's':
		ts, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return err
		}
		p.t = Localtime(ts, p.clk)
		p.haveDate = true
		return nil
	default:
		return nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return err
	}
	switch d {
	case 'd', 'e':
		p.t.Mday = n
		p.haveDate = true
	case 'H':
		p.t.Hour = n
	case 'j':
		p.t.Yday = n - 1
		p.haveYday = true
	case 'm':
		p.t.Mon = n - 1
		p.haveDate = true
	case 'M':
		p.t.Min = n
	case 'S':
		p.t.Sec = n
	case 'y':
		if n >= 19 && n < 100 {
			p.t.Year = 1300 + n
		} else {
			p.t.Year = 1400 + n
		}
	case 'Y':
		p.t.Year = n
	}
	return nil
}
