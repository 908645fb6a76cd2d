package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/five82/ticktock/internal/life"
	"github.com/five82/ticktock/internal/state"
)

// printSummary writes a plain-text overview of st.
func printSummary(w io.Writer, st state.AppState, persistent bool) error {
	u := st.UserData
	stats := life.Compute(u)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row := func(label, value string) {
		fmt.Fprintf(tw, "%s:\t%s\n", label, value)
	}

	row("Name", u.Name)
	row("Mode", string(st.Mode))
	row("View", st.CurrentView.Label())
	if stats.KnownAge {
		row("Age", fmt.Sprintf("%d", stats.Age))
	} else {
		row("Age", "not set")
	}
	row("Country", u.Country)
	if stats.KnownAge {
		row("Life", fmt.Sprintf("%.1f years expected, %.1f left (%.1f%% lived)",
			stats.LifeExpectancy, stats.YearsRemaining, stats.PercentLived))
		row("Weeks", fmt.Sprintf("%d lived of %d", stats.WeeksLived, stats.WeeksTotal))
	} else {
		row("Life", fmt.Sprintf("%.1f years expected", stats.LifeExpectancy))
	}
	row("Week", weekLine(stats.Week, u.Exclusions))
	row("Deadline", deadlineLine(u.Deadline, time.Now()))
	if n := len(u.SavedDeadlines); n > 0 {
		row("Earlier", fmt.Sprintf("%d saved deadline(s)", n))
	}
	if persistent {
		row("Storage", "persistent")
	} else {
		row("Storage", "memory only")
	}
	return tw.Flush()
}

func weekLine(w life.WeeklyHours, ex state.Exclusions) string {
	part := func(label string, hours float64, excluded bool) string {
		if excluded {
			return label + " excluded"
		}
		return fmt.Sprintf("%s %.0fh", label, hours)
	}
	return strings.Join([]string{
		part("sleep", w.Sleep, ex.Sleep),
		part("work", w.Work, ex.Work),
		part("commute", w.Commute, ex.Commute),
		part("screens", w.Screen, false),
		part("free", w.Free, false),
	}, ", ")
}

func deadlineLine(d *state.Deadline, now time.Time) string {
	if d == nil || !d.Complete() {
		return "none"
	}
	c, err := life.CountdownFor(*d, now)
	if err != nil {
		return fmt.Sprintf("%s (%v)", d.Name, err)
	}
	when := c.Target.Format("2006-01-02 15:04")
	if c.Passed {
		return fmt.Sprintf("%s %s (passed)", c.Name, when)
	}
	days := int(c.Remaining.Hours() / 24)
	return fmt.Sprintf("%s %s (%dd left)", c.Name, when, days)
}
