// Package report prints a dashboard as a plain-terminal summary.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"salarydash/internal/engine"
	"salarydash/internal/models"
)

const barWidth = 30

var (
	heading = color.New(color.FgCyan, color.OpBold)
	muted   = color.New(color.FgGray)
	bar     = color.New(color.FgBlue)
	above   = color.New(color.FgGreen)
	below   = color.New(color.FgRed)
)

// Options toggles report sections.
type Options struct {
	NoColor   bool
	Countries bool
}

// Write renders data to w.
func Write(w io.Writer, data *models.DashboardData, opts Options) {
	if opts.NoColor {
		color.Enable = false
		defer func() { color.Enable = true }()
	}

	fmt.Fprintln(w, heading.Sprint("Salary overview (annual, USD)"))
	m := data.Metrics
	rows := [][2]string{
		{"Mean salary", m.MeanSalaryText},
		{"Max salary", m.MaxSalaryText},
		{"Records", m.RecordCountText},
		{"Most common role", m.MostCommonRole},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %s %s\n", pad(r[0], 18), r[1])
	}

	if data.Empty {
		fmt.Fprintln(w)
		fmt.Fprintln(w, muted.Sprint("No records match the current filters."))
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, heading.Sprintf("Top %d roles by mean salary", len(data.TopRoles)))
	writeRoles(w, data.TopRoles)

	fmt.Fprintln(w)
	fmt.Fprintln(w, heading.Sprint("Work arrangement"))
	for _, s := range data.Remote {
		fmt.Fprintf(w, "  %s %5.1f%%  %s\n", pad(s.Mode, 14), s.Percent, muted.Sprintf("(%d)", s.Count))
	}

	if opts.Countries && data.Countries != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, heading.Sprintf("%s mean salary by country", data.Countries.Role))
		for _, f := range data.Countries.Frames {
			fmt.Fprintf(w, "  %d\n", f.Year)
			for _, r := range f.Rows {
				style := above
				if r.Deviation < 0 {
					style = below
				}
				fmt.Fprintf(w, "    %s %12s  %s\n", pad(r.Country, 28), engine.FormatUSD(r.MeanUSD),
					style.Sprintf("%+.0f", r.Deviation))
			}
		}
	}
}

// writeRoles prints highest first with a proportional bar.
func writeRoles(w io.Writer, roles []models.RoleMean) {
	hi := 0.0
	width := 0
	for _, r := range roles {
		if r.MeanUSD > hi {
			hi = r.MeanUSD
		}
		if rw := runewidth.StringWidth(r.Role); rw > width {
			width = rw
		}
	}
	for i := len(roles) - 1; i >= 0; i-- {
		r := roles[i]
		n := 0
		if hi > 0 {
			n = int(r.MeanUSD / hi * barWidth)
		}
		fmt.Fprintf(w, "  %s %s %s\n", pad(r.Role, width), bar.Sprint(strings.Repeat("█", n)+strings.Repeat(" ", barWidth-n)),
			engine.FormatUSD(r.MeanUSD))
	}
}

// pad right-fills s to display width n, truncating wide strings.
func pad(s string, n int) string {
	s = runewidth.Truncate(s, n, "…")
	return runewidth.FillRight(s, n)
}
