package ui

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/ticktock/internal/life"
	"github.com/five82/ticktock/internal/prefs"
	"github.com/five82/ticktock/internal/state"
	"github.com/five82/ticktock/internal/storage"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Prefs     storage.KV // theme preference; nil keeps it for this session
	Logger    logrus.FieldLogger
	Tick      time.Duration
	ThemeName string
	Now       func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	store   *state.Store
	prefsKV storage.KV
	log     logrus.FieldLogger
	tick    time.Duration
	now     func() time.Time
	updates *stateUpdates

	// UI state
	theme  Theme
	keys   keyMap
	help   help.Model
	width  int
	height int
	ready  bool

	// Data state
	snap  state.AppState
	clock time.Time

	// Overlays and forms
	showHelp        bool
	confirmReset    bool
	profile         form
	deadline        form
	editingDeadline bool

	// Footer message
	status    string
	statusErr bool
}

// New creates a new Bubble Tea model and subscribes it to the store.
func New(opts Options) Model {
	tick := opts.Tick
	if tick <= 0 {
		tick = time.Second
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	log := opts.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Default().Theme
	}

	m := Model{
		store:   opts.Store,
		prefsKV: opts.Prefs,
		log:     log.WithField("component", "ui"),
		tick:    tick,
		now:     now,
		theme:   GetTheme(themeName),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		snap:    opts.Store.Snapshot(),
		clock:   now(),
	}
	m.profile = newProfileForm(m.snap.UserData)
	m.updates = subscribe(opts.Store)
	return m
}

// Close releases the store subscription.
func (m Model) Close() {
	m.updates.close()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.tick),
		m.updates.next(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tickMsg:
		m.clock = time.Time(msg)
		return m, tickCmd(m.tick)

	case stateMsg:
		// Later mutations may already be applied; read the latest.
		m.adopt(m.store.Snapshot())
		return m, m.updates.next()
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// adopt takes a state published by the store.
func (m *Model) adopt(st state.AppState) {
	enteringForm := st.Mode == state.ModeAgeInput && m.snap.Mode != state.ModeAgeInput
	m.snap = st
	if enteringForm {
		m.profile = newProfileForm(st.UserData)
	}
	if st.Mode != state.ModeDashboard {
		m.editingDeadline = false
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch m.snap.Mode {
	case state.ModeAgeInput:
		return m.handleProfileKey(msg)
	case state.ModeDashboard:
		if m.editingDeadline {
			return m.handleDeadlineKey(msg)
		}
		return m.handleDashboardKey(msg)
	default:
		return m.handleIntroKey(msg)
	}
}

// handleGlobalKey covers bindings shared by the intro and dashboard screens.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return nil, true
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return nil, true
	}
	return nil, false
}

func (m Model) handleIntroKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := m.handleGlobalKey(msg); ok {
		return m, cmd
	}
	if key.Matches(msg, m.keys.Confirm) {
		if m.snap.UserData.Age != nil {
			m.commit(m.store.SetMode(state.ModeDashboard), "")
			return m, nil
		}
		m.openProfile()
	}
	return m, nil
}

func (m Model) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		next := state.ModeIntro
		if m.snap.UserData.Age != nil {
			next = state.ModeDashboard
		}
		m.commit(m.store.SetMode(next), "")
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		patch, err := profilePatch(m.profile)
		if err != nil {
			m.profile.err = err.Error()
			return m, nil
		}
		m.profile.err = ""
		err = m.store.UpdateUserData(patch)
		if modeErr := m.store.SetMode(state.ModeDashboard); err == nil {
			err = modeErr
		}
		m.commit(err, "Profile saved")
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.profile.move(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.profile.move(-1)
		return m, nil
	}

	return m, m.profile.update(msg)
}

func (m Model) handleDeadlineKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.editingDeadline = false
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		d, err := deadlineFromForm(m.deadline, m.now())
		if err != nil {
			m.deadline.err = err.Error()
			return m, nil
		}
		m.editingDeadline = false
		m.commit(m.store.UpdateUserData(life.ReplaceDeadline(m.snap.UserData, d)), "Deadline set")
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.deadline.move(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.deadline.move(-1)
		return m, nil
	}

	return m, m.deadline.update(msg)
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.ResetData) {
		m.confirmReset = false
	}
	if cmd, ok := m.handleGlobalKey(msg); ok {
		return m, cmd
	}

	view := m.snap.CurrentView
	switch {
	case key.Matches(msg, m.keys.NextView):
		m.commit(m.store.SetView(state.NextView(view)), "")

	case key.Matches(msg, m.keys.PrevView):
		m.commit(m.store.SetView(state.PrevView(view)), "")

	case key.Matches(msg, m.keys.JumpView):
		views := state.Views()
		if idx := int(msg.String()[0] - '1'); idx >= 0 && idx < len(views) {
			m.commit(m.store.SetView(views[idx]), "")
		}

	case key.Matches(msg, m.keys.ToggleSleep):
		m.toggleExclusion(func(e *state.Exclusions) bool { e.Sleep = !e.Sleep; return e.Sleep }, "Sleep")

	case key.Matches(msg, m.keys.ToggleWork):
		m.toggleExclusion(func(e *state.Exclusions) bool { e.Work = !e.Work; return e.Work }, "Work")

	case key.Matches(msg, m.keys.ToggleCommute):
		m.toggleExclusion(func(e *state.Exclusions) bool { e.Commute = !e.Commute; return e.Commute }, "Commute")

	case key.Matches(msg, m.keys.EditAge):
		m.openProfile()

	case key.Matches(msg, m.keys.ResetData):
		if !m.confirmReset {
			m.confirmReset = true
			m.setStatus("Press R again to erase everything", true)
			return m, nil
		}
		m.confirmReset = false
		m.commit(m.store.Reset(), "Reset to defaults")
		m.profile = newProfileForm(m.snap.UserData)

	case key.Matches(msg, m.keys.NewDeadline) && view == state.ViewCalendar:
		m.deadline = newDeadlineForm(m.now())
		m.editingDeadline = true

	case key.Matches(msg, m.keys.ClearDeadline) && view == state.ViewCalendar:
		if d := m.snap.UserData.Deadline; d != nil && (d.Complete() || d.Name != "") {
			m.commit(m.store.UpdateUserData(life.ReplaceDeadline(m.snap.UserData, state.Deadline{})), "Deadline archived")
		}
	}

	return m, nil
}

func (m *Model) openProfile() {
	m.profile = newProfileForm(m.snap.UserData)
	m.commit(m.store.SetMode(state.ModeAgeInput), "")
}

func (m *Model) toggleExclusion(flip func(*state.Exclusions) bool, label string) {
	ex := m.snap.UserData.Exclusions
	excluded := flip(&ex)
	msg := label + " counted"
	if excluded {
		msg = label + " excluded"
	}
	m.commit(m.store.UpdateUserData(state.UserDataPatch{Exclusions: &ex}), msg)
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	if err := prefs.Save(m.prefsKV, prefs.Prefs{Theme: m.theme.Name}); err != nil {
		m.log.WithError(err).Warn("Failed to save theme preference")
		m.setStatus("Theme not saved: "+err.Error(), true)
		return
	}
	m.setStatus("Theme: "+m.theme.Name, false)
}

// commit refreshes the local snapshot after a store call and reports err.
// A persist failure still changed the in-memory state.
func (m *Model) commit(err error, okMsg string) {
	m.adopt(m.store.Snapshot())
	var perr *state.PersistError
	switch {
	case errors.As(err, &perr):
		m.setStatus("Not saved, kept for this session: "+perr.Err.Error(), true)
	case err != nil:
		m.setStatus(err.Error(), true)
	default:
		m.setStatus(okMsg, false)
	}
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

// Messages

type tickMsg time.Time

type stateMsg state.AppState

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	m := New(opts)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
