package state

import (
	"fmt"
	"strings"
)

// StorageKey is the key the store reads and writes in durable storage.
const StorageKey = "tick-tock-state"

// Mode is the active top-level screen.
type Mode string

const (
	ModeIntro     Mode = "intro"
	ModeAgeInput  Mode = "age-input"
	ModeDashboard Mode = "dashboard"
)

var modes = []Mode{ModeIntro, ModeAgeInput, ModeDashboard}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	for _, known := range modes {
		if m == known {
			return true
		}
	}
	return false
}

// ParseMode converts text to a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}

// View is the active visualization granularity.
type View string

const (
	ViewBigPicture View = "big-picture"
	ViewYearly     View = "yearly"
	ViewMonthly    View = "monthly"
	ViewWeekly     View = "weekly"
	ViewCalendar   View = "calendar"
)

var views = []View{ViewBigPicture, ViewYearly, ViewMonthly, ViewWeekly, ViewCalendar}

// Views returns every view in display order.
func Views() []View {
	out := make([]View, len(views))
	copy(out, views)
	return out
}

// Valid reports whether v is a known view.
func (v View) Valid() bool {
	return v.index() >= 0
}

// Label returns the human-readable name of v.
func (v View) Label() string {
	switch v {
	case ViewBigPicture:
		return "Big Picture"
	case ViewYearly:
		return "Yearly"
	case ViewMonthly:
		return "Monthly"
	case ViewWeekly:
		return "Weekly"
	case ViewCalendar:
		return "Calendar"
	default:
		return string(v)
	}
}

func (v View) index() int {
	for i, known := range views {
		if v == known {
			return i
		}
	}
	return -1
}

// ParseView converts text to a View.
func ParseView(s string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(s)))
	if !v.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
	}
	return v, nil
}

// NextView returns the view after v, wrapping around.
func NextView(v View) View {
	i := v.index()
	return views[(i+1)%len(views)]
}

// PrevView returns the view before v, wrapping around.
func PrevView(v View) View {
	i := v.index()
	if i <= 0 {
		return views[len(views)-1]
	}
	return views[i-1]
}

// AppState is the single root value held by the Store.
type AppState struct {
	Mode        Mode     `json:"mode"`
	CurrentView View     `json:"currentView"`
	UserData    UserData `json:"userData"`
}

// UserData holds the user's profile and daily time allocations.
type UserData struct {
	Name           string          `json:"name"`
	Age            *int            `json:"age"`
	Country        string          `json:"country"`
	LifeExpectancy float64         `json:"lifeExpectancy"`
	SleepHours     float64         `json:"sleepHours"`
	WorkHours      float64         `json:"workHours"`
	WorkDays       float64         `json:"workDays"`
	ScreenTime     float64         `json:"screenTime"`
	CommuteTime    float64         `json:"commuteTime"`
	Deadline       *Deadline       `json:"deadline"`
	SavedDeadlines []SavedDeadline `json:"savedDeadlines"`
	Exclusions     Exclusions      `json:"exclusions"`
}

// Deadline is the countdown target currently being edited or shown.
// Date and Time stay nil until the user supplies them.
type Deadline struct {
	Name      string  `json:"name"`
	Date      *string `json:"date"`
	Time      *string `json:"time"`
	StartDate string  `json:"startDate,omitempty"`
}

// SavedDeadline is a fully populated deadline kept in history.
type SavedDeadline struct {
	Name      string `json:"name"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	StartDate string `json:"startDate"`
}

// Exclusions mark categories left out of the free-time computation.
type Exclusions struct {
	Sleep   bool `json:"sleep"`
	Work    bool `json:"work"`
	Commute bool `json:"commute"`
}

// LifeExpectancyFunc estimates total life expectancy in years for someone of
// the given age living in country.
type LifeExpectancyFunc func(age int, country string) float64

// DefaultUserData returns the hardcoded user data defaults.
func DefaultUserData() UserData {
	return UserData{
		Name:           "TRAVELLER",
		Age:            nil,
		Country:        "Germany",
		LifeExpectancy: 80,
		SleepHours:     8,
		WorkHours:      8,
		WorkDays:       5,
		ScreenTime:     3,
		CommuteTime:    1,
		Deadline:       &Deadline{},
		SavedDeadlines: []SavedDeadline{},
		Exclusions:     Exclusions{},
	}
}

// Defaults returns the hardcoded initial state.
func Defaults() AppState {
	return AppState{
		Mode:        ModeIntro,
		CurrentView: ViewBigPicture,
		UserData:    DefaultUserData(),
	}
}

// WithMode returns a copy of s with Mode replaced.
func (s AppState) WithMode(m Mode) AppState {
	out := s.Clone()
	out.Mode = m
	return out
}

// WithView returns a copy of s with CurrentView replaced.
func (s AppState) WithView(v View) AppState {
	out := s.Clone()
	out.CurrentView = v
	return out
}

// Clone returns a deep copy of s.
func (s AppState) Clone() AppState {
	out := s
	out.UserData = s.UserData.Clone()
	return out
}

// Clone returns a deep copy of u. A nil SavedDeadlines stays nil.
func (u UserData) Clone() UserData {
	out := u
	out.Age = clonePtr(u.Age)
	if u.Deadline != nil {
		d := u.Deadline.Clone()
		out.Deadline = &d
	}
	if u.SavedDeadlines != nil {
		out.SavedDeadlines = make([]SavedDeadline, len(u.SavedDeadlines))
		copy(out.SavedDeadlines, u.SavedDeadlines)
	}
	return out
}

// Clone returns a deep copy of d.
func (d Deadline) Clone() Deadline {
	out := d
	out.Date = clonePtr(d.Date)
	out.Time = clonePtr(d.Time)
	return out
}

// Complete reports whether the deadline has both a date and a time.
func (d Deadline) Complete() bool {
	return d.Date != nil && *d.Date != "" && d.Time != nil && *d.Time != ""
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T {
	return &v
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
