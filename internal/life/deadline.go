package life

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/five82/ticktock/internal/state"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ErrIncompleteDeadline reports a deadline without both a date and a time.
var ErrIncompleteDeadline = errors.New("deadline needs a date and a time")

// Countdown is the state of a deadline relative to now.
type Countdown struct {
	Name      string
	Target    time.Time
	Start     time.Time
	HasStart  bool
	Remaining time.Duration
	Elapsed   float64 // 0..1; zero without a start
	Passed    bool
}

// DeadlineTarget parses the date and time parts of d in loc.
func DeadlineTarget(d state.Deadline, loc *time.Location) (time.Time, error) {
	if !d.Complete() {
		return time.Time{}, ErrIncompleteDeadline
	}
	target, err := time.ParseInLocation(DateLayout+" "+TimeLayout, strings.TrimSpace(*d.Date)+" "+strings.TrimSpace(*d.Time), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse deadline: %w", err)
	}
	return target, nil
}

// CountdownFor computes the countdown for d at now.
func CountdownFor(d state.Deadline, now time.Time) (Countdown, error) {
	target, err := DeadlineTarget(d, now.Location())
	if err != nil {
		return Countdown{}, err
	}
	c := Countdown{Name: d.Name, Target: target}
	c.Remaining = target.Sub(now)
	if c.Remaining <= 0 {
		c.Remaining = 0
		c.Passed = true
	}
	if start, ok := parseStart(d.StartDate, now.Location()); ok {
		c.Start = start
		c.HasStart = true
		c.Elapsed = fraction(now.Sub(start), target.Sub(start))
	}
	if c.Passed {
		c.Elapsed = 1
	}
	return c, nil
}

func parseStart(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// NewDeadline validates name, date and time and returns a deadline that
// starts counting at now.
func NewDeadline(name, date, clock string, now time.Time) (state.Deadline, error) {
	d := state.Deadline{
		Name:      strings.TrimSpace(name),
		Date:      state.Ptr(strings.TrimSpace(date)),
		Time:      state.Ptr(strings.TrimSpace(clock)),
		StartDate: now.Format(time.RFC3339),
	}
	if _, err := DeadlineTarget(d, now.Location()); err != nil {
		return state.Deadline{}, err
	}
	return d, nil
}

// ReplaceDeadline returns a patch that makes next the active deadline. A
// complete active deadline is moved to the front of savedDeadlines first.
func ReplaceDeadline(u state.UserData, next state.Deadline) state.UserDataPatch {
	p := state.UserDataPatch{Deadline: &next}
	if u.Deadline == nil || !u.Deadline.Complete() {
		return p
	}
	cur := u.Deadline
	saved := make([]state.SavedDeadline, 0, len(u.SavedDeadlines)+1)
	saved = append(saved, state.SavedDeadline{
		Name:      cur.Name,
		Date:      *cur.Date,
		Time:      *cur.Time,
		StartDate: cur.StartDate,
	})
	saved = append(saved, u.SavedDeadlines...)
	p.SavedDeadlines = &saved
	return p
}
