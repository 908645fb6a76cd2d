package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/ticktock/internal/life"
	"github.com/five82/ticktock/internal/state"
)

const maxAge = 120

// form is a vertical stack of labelled text inputs with one focused field.
type form struct {
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
	err    string
}

func newForm(title string, labels, placeholders, values []string, limits []int) form {
	f := form{title: title, labels: labels}
	for i := range labels {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		ti.Width = 24
		ti.SetValue(values[i])
		f.inputs = append(f.inputs, ti)
	}
	f.inputs[0].Focus()
	return f
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f *form) move(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f form) view(theme Theme, hint string) string {
	styles := theme.Styles()
	var b strings.Builder

	b.WriteString(styles.AccentText.Bold(true).Render(f.title))
	b.WriteString("\n\n")
	for i, ti := range f.inputs {
		label := styles.MutedText.Width(10)
		if i == f.focus {
			label = styles.WarningText.Width(10)
		}
		b.WriteString(label.Render(f.labels[i]))
		b.WriteString(ti.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if f.err != "" {
		b.WriteString(styles.DangerText.Render(f.err))
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render(hint))

	return styles.Panel.
		BorderForeground(lipgloss.Color(theme.BorderFocus)).
		Render(b.String())
}

// Profile form fields.
const (
	fieldName = iota
	fieldAge
	fieldCountry
)

func newProfileForm(u state.UserData) form {
	age := ""
	if u.Age != nil {
		age = strconv.Itoa(*u.Age)
	}
	return newForm(
		"About you",
		[]string{"Name", "Age", "Country"},
		[]string{state.DefaultUserData().Name, "e.g. 34", "e.g. Germany"},
		[]string{u.Name, age, u.Country},
		[]int{40, 3, 40},
	)
}

// profilePatch validates the profile form. A blank name keeps the current one.
func profilePatch(f form) (state.UserDataPatch, error) {
	age, err := strconv.Atoi(f.value(fieldAge))
	if err != nil || age < 1 || age > maxAge {
		return state.UserDataPatch{}, fmt.Errorf("age must be a whole number from 1 to %d", maxAge)
	}
	country := life.CanonicalCountry(f.value(fieldCountry))
	if country == "" {
		return state.UserDataPatch{}, errors.New("country is required")
	}
	p := state.UserDataPatch{Age: &age, Country: &country}
	if name := f.value(fieldName); name != "" {
		p.Name = &name
	}
	return p, nil
}

// Deadline form fields.
const (
	fieldDeadlineName = iota
	fieldDeadlineDate
	fieldDeadlineTime
)

func newDeadlineForm(now time.Time) form {
	return newForm(
		"New deadline",
		[]string{"Name", "Date", "Time"},
		[]string{"e.g. Launch", now.AddDate(0, 1, 0).Format(life.DateLayout), "18:00"},
		[]string{"", "", ""},
		[]int{40, 10, 5},
	)
}

func deadlineFromForm(f form, now time.Time) (state.Deadline, error) {
	name := f.value(fieldDeadlineName)
	if name == "" {
		return state.Deadline{}, errors.New("deadline needs a name")
	}
	d, err := life.NewDeadline(name, f.value(fieldDeadlineDate), f.value(fieldDeadlineTime), now)
	if err != nil {
		return state.Deadline{}, fmt.Errorf("use YYYY-MM-DD and HH:MM (%v)", err)
	}
	return d, nil
}
