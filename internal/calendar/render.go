package calendar

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/starford/jcal/pkg/jalali"
)

const (
	cellWidth    = 2
	monthWidth   = 7*cellWidth + 6
	monthLines   = 8
	monthsPerRow = 3
	gap          = "   "
)

// Renderer draws month grids as text. Fridays and holidays are coloured,
// today is shown in reverse video.
type Renderer struct {
	farsi bool

	header  lipgloss.Style
	today   lipgloss.Style
	off     lipgloss.Style
	offline lipgloss.Style
}

// NewRenderer returns a renderer writing escape sequences for profile.
// Use termenv.Ascii for plain output.
func NewRenderer(w io.Writer, profile termenv.Profile, farsi bool) *Renderer {
	lr := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	lr.SetColorProfile(profile)

	return &Renderer{
		farsi:   farsi,
		header:  lr.NewStyle().Bold(true),
		today:   lr.NewStyle().Reverse(true),
		off:     lr.NewStyle().Foreground(lipgloss.Color("1")),
		offline: lr.NewStyle().Foreground(lipgloss.Color("1")).Reverse(true),
	}
}

func (r *Renderer) number(n int) string {
	if r.farsi {
		return jalali.FarsiDigits(n, 0)
	}
	return strconv.Itoa(n)
}

// padLeft pads s with spaces to width display columns.
func padLeft(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

func center(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

func (r *Renderer) title(m Month, withYear bool) string {
	name := m.Name
	if r.farsi {
		name = m.NameFa
	}
	if withYear {
		name += " " + r.number(m.Year)
	}
	return center(name, monthWidth)
}

func (r *Renderer) weekdays() string {
	names := jalali.DayNamesMin
	if r.farsi {
		names = jalali.DayNamesFaMin
	}
	cells := make([]string, len(names))
	for i, n := range names {
		cells[i] = padLeft(n, cellWidth)
	}
	return strings.Join(cells, " ")
}

func (r *Renderer) cell(d Day) string {
	s := padLeft(r.number(d.Day), cellWidth)
	switch {
	case d.Today && d.Off():
		return r.offline.Render(s)
	case d.Today:
		return r.today.Render(s)
	case d.Off():
		return r.off.Render(s)
	}
	return s
}

// lines renders m into exactly monthLines lines.
func (r *Renderer) lines(m Month, withYear bool) []string {
	out := make([]string, 0, monthLines)
	out = append(out, r.header.Render(r.title(m, withYear)), r.weekdays())

	for _, week := range m.Weeks {
		cells := make([]string, len(week))
		for i, day := range week {
			if day == 0 {
				cells[i] = strings.Repeat(" ", cellWidth)
				continue
			}
			cells[i] = r.cell(m.Days[day-1])
		}
		out = append(out, strings.Join(cells, " "))
	}
	for len(out) < monthLines {
		out = append(out, strings.Repeat(" ", monthWidth))
	}
	return out
}

// Month renders a single month with its year in the title.
func (r *Renderer) Month(m Month) string {
	return trimLines(strings.Join(r.lines(m, true), "\n"))
}

// Months renders months side by side, three per row.
func (r *Renderer) Months(months []Month, withYear bool) string {
	var rows []string
	for i := 0; i < len(months); i += monthsPerRow {
		end := min(i+monthsPerRow, len(months))
		blocks := make([]string, 0, 2*(end-i)-1)
		for j := i; j < end; j++ {
			if j > i {
				blocks = append(blocks, gap)
			}
			blocks = append(blocks, strings.Join(r.lines(months[j], withYear), "\n"))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, blocks...))
	}
	return trimLines(strings.Join(rows, "\n\n"))
}

// Year renders all twelve months of a year under a centred year heading.
func (r *Renderer) Year(year int, months []Month) string {
	width := monthsPerRow*monthWidth + (monthsPerRow-1)*len(gap)
	heading := r.header.Render(center(r.number(year), width))
	return trimLines(heading) + "\n\n" + r.Months(months, false)
}

// Occasions lists the occasions of m, one per line.
func (r *Renderer) Occasions(m Month) string {
	var b strings.Builder
	for _, d := range m.Days {
		for _, o := range d.Occasions {
			label := fmt.Sprintf("%s %s: %s", padLeft(r.number(d.Day), cellWidth), m.Name, o.Title)
			if r.farsi {
				label = fmt.Sprintf("%s %s: %s", padLeft(r.number(d.Day), cellWidth), m.NameFa, o.Title)
			}
			if o.Holiday {
				label = r.off.Render(label)
			}
			b.WriteString(label)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
