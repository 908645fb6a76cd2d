package life

import (
	"strconv"
	"time"

	"github.com/five82/ticktock/internal/state"
)

// Period describes progress through the current calendar unit.
type Period struct {
	Label     string
	Start     time.Time
	End       time.Time
	Elapsed   float64 // 0..1
	DaysLeft  int
	DaysTotal int
}

// PeriodFor returns progress through the year, month or week containing now.
// ok is false for views that are not calendar periods.
func PeriodFor(view state.View, now time.Time) (Period, bool) {
	y, m, d := now.Date()
	loc := now.Location()
	var p Period
	switch view {
	case state.ViewYearly:
		p.Start = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		p.End = p.Start.AddDate(1, 0, 0)
		p.Label = now.Format("2006")
	case state.ViewMonthly:
		p.Start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		p.End = p.Start.AddDate(0, 1, 0)
		p.Label = now.Format("January 2006")
	case state.ViewWeekly:
		offset := (int(now.Weekday()) + 6) % 7 // weeks start on Monday
		p.Start = time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
		p.End = p.Start.AddDate(0, 0, 7)
		_, week := now.ISOWeek()
		p.Label = "Week " + strconv.Itoa(week)
	default:
		return Period{}, false
	}
	p.DaysTotal = daysBetween(p.Start, p.End)
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)
	p.DaysLeft = daysBetween(today, p.End)
	p.Elapsed = fraction(now.Sub(p.Start), p.End.Sub(p.Start))
	return p, true
}

func daysBetween(a, b time.Time) int {
	// Round to absorb DST shifts.
	return int((b.Sub(a) + 12*time.Hour) / (24 * time.Hour))
}

func fraction(done, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	f := float64(done) / float64(total)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
