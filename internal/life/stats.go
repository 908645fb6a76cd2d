package life

import (
	"math"

	"github.com/five82/ticktock/internal/state"
)

const (
	weeksPerYear = 52
	daysPerYear  = 365.25
	hoursPerWeek = 7 * 24

	// MaxYears bounds the ages and expectancies Compute works with.
	MaxYears = 1000
)

// Stats are the lifetime figures derived from UserData.
type Stats struct {
	KnownAge       bool
	Age            int
	LifeExpectancy float64

	WeeksLived     int
	WeeksTotal     int
	WeeksRemaining int
	PercentLived   float64
	YearsRemaining float64
	DaysRemaining  int

	Week               WeeklyHours
	FreeHoursRemaining float64
}

// WeeklyHours splits a 168 hour week. Excluded categories count as zero and
// so leave their hours in Free.
type WeeklyHours struct {
	Sleep   float64
	Work    float64
	Commute float64
	Screen  float64
	Free    float64
}

// Compute derives Stats from u. With no age only the weekly split is filled.
// Age and expectancy are clamped to [0, MaxYears]; a NaN expectancy counts
// as zero.
func Compute(u state.UserData) Stats {
	expectancy := clampYears(u.LifeExpectancy)
	st := Stats{
		LifeExpectancy: expectancy,
		Week:           Weekly(u),
	}
	if u.Age == nil {
		return st
	}
	st.KnownAge = true
	st.Age = min(max(*u.Age, 0), MaxYears)

	st.WeeksTotal = int(math.Round(expectancy * weeksPerYear))
	st.WeeksLived = st.Age * weeksPerYear
	if st.WeeksLived > st.WeeksTotal {
		st.WeeksLived = st.WeeksTotal
	}
	st.WeeksRemaining = st.WeeksTotal - st.WeeksLived
	if st.WeeksTotal > 0 {
		st.PercentLived = float64(st.WeeksLived) / float64(st.WeeksTotal) * 100
	}
	st.YearsRemaining = math.Max(0, expectancy-float64(st.Age))
	st.DaysRemaining = int(st.YearsRemaining * daysPerYear)
	st.FreeHoursRemaining = st.Week.Free * float64(st.WeeksRemaining)
	return st
}

// Weekly returns the weekly hour split for u.
func Weekly(u state.UserData) WeeklyHours {
	var w WeeklyHours
	if !u.Exclusions.Sleep {
		w.Sleep = nonNegative(u.SleepHours) * 7
	}
	if !u.Exclusions.Work {
		w.Work = nonNegative(u.WorkHours) * nonNegative(u.WorkDays)
	}
	if !u.Exclusions.Commute {
		w.Commute = nonNegative(u.CommuteTime) * nonNegative(u.WorkDays)
	}
	w.Screen = nonNegative(u.ScreenTime) * 7
	w.Free = math.Max(0, hoursPerWeek-w.Sleep-w.Work-w.Commute-w.Screen)
	return w
}

func clampYears(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(v, MaxYears)
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
