package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding

	// Intro and forms
	Confirm   key.Binding
	NextField key.Binding
	PrevField key.Binding
	Cancel    key.Binding

	// View switching
	NextView  key.Binding
	PrevView  key.Binding
	JumpView  key.Binding
	EditAge   key.Binding
	ResetData key.Binding

	// Exclusions
	ToggleSleep   key.Binding
	ToggleWork    key.Binding
	ToggleCommute key.Binding

	// Calendar
	NewDeadline   key.Binding
	ClearDeadline key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "theme"),
		),

		// Intro and forms
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),

		// View switching
		NextView: key.NewBinding(
			key.WithKeys("tab", "l", "right"),
			key.WithHelp("tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab", "h", "left"),
			key.WithHelp("shift+tab", "previous view"),
		),
		JumpView: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "jump to view"),
		),
		EditAge: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "edit profile"),
		),
		ResetData: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset"),
		),

		// Exclusions
		ToggleSleep: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "exclude sleep"),
		),
		ToggleWork: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "exclude work"),
		),
		ToggleCommute: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "exclude commute"),
		),

		// Calendar
		NewDeadline: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new deadline"),
		),
		ClearDeadline: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear deadline"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextView, k.JumpView, k.EditAge, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextView, k.PrevView, k.JumpView},
		{k.ToggleSleep, k.ToggleWork, k.ToggleCommute},
		{k.NewDeadline, k.ClearDeadline},
		{k.EditAge, k.ResetData, k.CycleTheme, k.Help, k.Quit},
	}
}
