package life

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/ticktock/internal/state"
)

func TestExpectancy(t *testing.T) {
	assert.Equal(t, 80.9, Expectancy(0, "Germany"))
	assert.Equal(t, 84.5, Expectancy(0, " japan "), "country match ignores case and space")
	assert.Equal(t, WorldAverage, Expectancy(0, "Atlantis"))
	assert.Equal(t, Expectancy(0, "Germany"), Expectancy(-5, "Germany"), "negative ages clamp to zero")

	prev := 0.0
	for age := 0; age <= 110; age += 5 {
		got := Expectancy(age, "Germany")
		assert.GreaterOrEqual(t, got, prev, "expectancy should not fall with age (age %d)", age)
		assert.GreaterOrEqual(t, got, float64(age+1), "expectancy should exceed age (age %d)", age)
		prev = got
	}
}

func TestCountriesSortedAndCanonical(t *testing.T) {
	names := Countries()
	require.NotEmpty(t, names)
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "Germany")
	assert.Equal(t, "United States", CanonicalCountry("united states"))
	assert.Equal(t, "Narnia", CanonicalCountry("  Narnia "))

	v, ok := AtBirth("Japan")
	assert.True(t, ok)
	assert.Equal(t, 84.5, v)
}

func TestComputeStats(t *testing.T) {
	u := state.DefaultUserData()
	st := Compute(u)
	assert.False(t, st.KnownAge)
	assert.Zero(t, st.WeeksTotal)

	u.Age = state.Ptr(40)
	u.LifeExpectancy = 80
	st = Compute(u)
	assert.True(t, st.KnownAge)
	assert.Equal(t, 4160, st.WeeksTotal)
	assert.Equal(t, 2080, st.WeeksLived)
	assert.Equal(t, 2080, st.WeeksRemaining)
	assert.InDelta(t, 50.0, st.PercentLived, 1e-9)
	assert.InDelta(t, 40.0, st.YearsRemaining, 1e-9)
	assert.Equal(t, 14610, st.DaysRemaining)
	assert.InDelta(t, st.Week.Free*2080, st.FreeHoursRemaining, 1e-6)

	u.Age = state.Ptr(95)
	st = Compute(u)
	assert.Equal(t, st.WeeksTotal, st.WeeksLived, "lived weeks cap at total")
	assert.Zero(t, st.WeeksRemaining)
	assert.Zero(t, st.YearsRemaining)
}

func TestComputeClampsExtremeInputs(t *testing.T) {
	u := state.DefaultUserData()
	u.Age = state.Ptr(30)
	u.LifeExpectancy = 3e6
	st := Compute(u)
	assert.Equal(t, float64(MaxYears), st.LifeExpectancy)
	assert.Equal(t, MaxYears*weeksPerYear, st.WeeksTotal)
	assert.Equal(t, 30*weeksPerYear, st.WeeksLived)
	assert.InDelta(t, float64(MaxYears-30), st.YearsRemaining, 1e-9)

	u.LifeExpectancy = math.NaN()
	st = Compute(u)
	assert.Zero(t, st.LifeExpectancy)
	assert.Zero(t, st.WeeksTotal)
	assert.Zero(t, st.WeeksRemaining)

	u.Age = state.Ptr(1 << 40)
	u.LifeExpectancy = 80
	st = Compute(u)
	assert.Equal(t, MaxYears, st.Age)
	assert.Equal(t, st.WeeksTotal, st.WeeksLived)
	assert.Zero(t, st.YearsRemaining)
}

func TestWeeklyHonoursExclusions(t *testing.T) {
	u := state.DefaultUserData()
	w := Weekly(u)
	assert.Equal(t, 56.0, w.Sleep)
	assert.Equal(t, 40.0, w.Work)
	assert.Equal(t, 5.0, w.Commute)
	assert.Equal(t, 21.0, w.Screen)
	assert.Equal(t, 46.0, w.Free)

	u.Exclusions = state.Exclusions{Sleep: true, Work: true, Commute: true}
	w = Weekly(u)
	assert.Zero(t, w.Sleep)
	assert.Zero(t, w.Work)
	assert.Zero(t, w.Commute)
	assert.Equal(t, 147.0, w.Free)

	u.Exclusions = state.Exclusions{}
	u.SleepHours = 20
	u.WorkHours = 12
	u.WorkDays = 7
	assert.Zero(t, Weekly(u).Free, "free time never goes negative")
}

func TestPeriodFor(t *testing.T) {
	now := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC) // Saturday

	year, ok := PeriodFor(state.ViewYearly, now)
	require.True(t, ok)
	assert.Equal(t, "2026", year.Label)
	assert.Equal(t, 365, year.DaysTotal)
	assert.Equal(t, 76, year.DaysLeft)
	assert.InDelta(t, 289.5/365, year.Elapsed, 1e-9)

	month, ok := PeriodFor(state.ViewMonthly, now)
	require.True(t, ok)
	assert.Equal(t, "October 2026", month.Label)
	assert.Equal(t, 31, month.DaysTotal)
	assert.Equal(t, 15, month.DaysLeft)

	week, ok := PeriodFor(state.ViewWeekly, now)
	require.True(t, ok)
	assert.Equal(t, time.Monday, week.Start.Weekday())
	assert.Equal(t, 12, week.Start.Day())
	assert.Equal(t, 2, week.DaysLeft)
	assert.Equal(t, "Week 42", week.Label)

	_, ok = PeriodFor(state.ViewBigPicture, now)
	assert.False(t, ok)
}

func TestCountdownFor(t *testing.T) {
	now := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)

	_, err := CountdownFor(state.Deadline{Name: "none"}, now)
	assert.ErrorIs(t, err, ErrIncompleteDeadline)

	d := state.Deadline{
		Name:      "launch",
		Date:      state.Ptr("2026-10-19"),
		Time:      state.Ptr("12:00"),
		StartDate: "2026-10-15T12:00:00Z",
	}
	c, err := CountdownFor(d, now)
	require.NoError(t, err)
	assert.Equal(t, 48*time.Hour, c.Remaining)
	assert.True(t, c.HasStart)
	assert.InDelta(t, 0.5, c.Elapsed, 1e-9)
	assert.False(t, c.Passed)

	d.Date = state.Ptr("2026-10-01")
	c, err = CountdownFor(d, now)
	require.NoError(t, err)
	assert.True(t, c.Passed)
	assert.Zero(t, c.Remaining)
	assert.Equal(t, 1.0, c.Elapsed)

	d.Date = state.Ptr("not-a-date")
	_, err = CountdownFor(d, now)
	assert.Error(t, err)
}

func TestNewDeadlineAndReplace(t *testing.T) {
	now := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)

	_, err := NewDeadline("x", "2026-13-01", "10:00", now)
	assert.Error(t, err)

	first, err := NewDeadline(" trip ", "2026-12-24", "18:00", now)
	require.NoError(t, err)
	assert.Equal(t, "trip", first.Name)
	assert.Equal(t, "2026-10-17T12:00:00Z", first.StartDate)

	u := state.DefaultUserData()
	p := ReplaceDeadline(u, first)
	assert.Nil(t, p.SavedDeadlines, "incomplete default deadline is not archived")
	u = p.Apply(u, nil)

	second, err := NewDeadline("exam", "2027-02-01", "09:00", now)
	require.NoError(t, err)
	u = ReplaceDeadline(u, second).Apply(u, nil)
	require.Len(t, u.SavedDeadlines, 1)
	assert.Equal(t, state.SavedDeadline{Name: "trip", Date: "2026-12-24", Time: "18:00", StartDate: "2026-10-17T12:00:00Z"}, u.SavedDeadlines[0])
	assert.Equal(t, "exam", u.Deadline.Name)
}
