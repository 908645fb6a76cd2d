package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/ticktock/internal/life"
	"github.com/five82/ticktock/internal/state"
)

// renderMain renders header, content and footer.
func (m Model) renderMain() string {
	header := m.renderHeader()
	footer := m.renderFooter()

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body := lipgloss.NewStyle().
		Width(m.width).
		Height(bodyHeight).
		Padding(1, 2).
		Render(m.renderContent())

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// renderContent renders the screen for the current mode.
func (m Model) renderContent() string {
	switch m.snap.Mode {
	case state.ModeAgeInput:
		return m.profile.view(m.theme, "enter to save · tab to move · esc to cancel")
	case state.ModeDashboard:
		return m.renderDashboard()
	default:
		return m.renderIntro()
	}
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	parts := []string{
		styles.Logo.Render("tick tock"),
		styles.Text.Render(m.snap.UserData.Name),
	}
	if m.snap.Mode == state.ModeDashboard {
		parts = append(parts, m.renderTabs())
	}
	if !m.store.Persistent() {
		parts = append(parts, styles.WarningText.Render("memory only"))
	}
	parts = append(parts, styles.FaintText.Render(m.clock.Format("Mon 02 Jan 15:04:05")))

	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderTabs() string {
	styles := m.theme.Styles()
	tabs := make([]string, 0, len(state.Views()))
	for i, v := range state.Views() {
		label := fmt.Sprintf("%d %s", i+1, v.Label())
		if v == m.snap.CurrentView {
			tabs = append(tabs, styles.ActiveTab.Render(label))
			continue
		}
		tabs = append(tabs, styles.Tab.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	content := m.help.View(m.keys)
	if m.status != "" {
		if m.statusErr {
			content = styles.DangerText.Render(m.status)
		} else {
			content = styles.SuccessText.Render(m.status)
		}
	}
	return styles.Footer.Width(m.width).Render(content)
}

func (m Model) renderIntro() string {
	styles := m.theme.Styles()
	lines := []string{
		styles.Logo.Render("T I C K   T O C K"),
		"",
		styles.Text.Render("Hello, " + m.snap.UserData.Name + "."),
		styles.MutedText.Render("Your life, measured in weeks."),
		"",
		styles.FaintText.Render("press enter to begin"),
	}
	return lipgloss.Place(
		max(m.width-4, 0),
		max(m.height-6, 0),
		lipgloss.Center,
		lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...),
	)
}

// renderDashboard renders the active view.
func (m Model) renderDashboard() string {
	switch m.snap.CurrentView {
	case state.ViewYearly, state.ViewMonthly, state.ViewWeekly:
		return m.renderPeriod()
	case state.ViewCalendar:
		return m.renderCalendar()
	default:
		return m.renderBigPicture()
	}
}

func (m Model) renderBigPicture() string {
	styles := m.theme.Styles()
	u := m.snap.UserData
	stats := life.Compute(u)

	var b strings.Builder
	if !stats.KnownAge {
		b.WriteString(styles.MutedText.Render("Tell us your age (a) to see your life in weeks."))
		b.WriteString("\n\n")
	} else {
		b.WriteString(styles.Text.Bold(true).Render(fmt.Sprintf(
			"Age %d of %.1f  ·  %.1f%% lived  ·  %.1f years left",
			stats.Age, stats.LifeExpectancy, stats.PercentLived, stats.YearsRemaining,
		)))
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(fmt.Sprintf(
			"%s weeks lived, %s to go, %s days remaining",
			formatThousands(float64(stats.WeeksLived)),
			formatThousands(float64(stats.WeeksRemaining)),
			formatThousands(float64(stats.DaysRemaining)),
		)))
		b.WriteString("\n\n")
		b.WriteString(m.renderLifeGrid(stats))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderWeek(stats.Week, u.Exclusions))
	if stats.KnownAge {
		b.WriteString("\n\n")
		b.WriteString(styles.AccentText.Render(fmt.Sprintf(
			"≈ %s free hours left in your life",
			formatThousands(stats.FreeHoursRemaining),
		)))
	}
	return b.String()
}

// renderLifeGrid draws one cell per year of expected life.
func (m Model) renderLifeGrid(stats life.Stats) string {
	styles := m.theme.Styles()
	years, hidden := lifeYears(stats.LifeExpectancy)
	cols := gridColumns(m.width)

	lived := styles.CategoryStyle(categoryLived)
	current := styles.AccentText.Bold(true)
	empty := styles.EmptyStyle()

	var b strings.Builder
	for year := 0; year < years; year++ {
		switch {
		case year < stats.Age:
			b.WriteString(lived.Render("■"))
		case year == stats.Age:
			b.WriteString(current.Render("▣"))
		default:
			b.WriteString(empty.Render("□"))
		}
		if (year+1)%cols == 0 || year == years-1 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	if hidden > 0 {
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("+%d more years", hidden)))
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render("one square per year"))
	return b.String()
}

// renderWeek draws the 168 hour split as a stacked bar with a legend.
func (m Model) renderWeek(w life.WeeklyHours, ex state.Exclusions) string {
	styles := m.theme.Styles()
	width := barWidth(m.width)

	segments := []struct {
		category string
		label    string
		hours    float64
		excluded bool
	}{
		{categorySleep, "sleep", w.Sleep, ex.Sleep},
		{categoryWork, "work", w.Work, ex.Work},
		{categoryCommute, "commute", w.Commute, ex.Commute},
		{categoryScreen, "screens", w.Screen, false},
		{categoryFree, "free", w.Free, false},
	}

	var bar, legend strings.Builder
	used := 0
	for i, seg := range segments {
		cells := int(seg.hours / hoursPerWeek * float64(width))
		if i == len(segments)-1 {
			cells = width - used
		}
		cells = min(max(cells, 0), width-used)
		used += cells
		style := styles.CategoryStyle(seg.category)
		bar.WriteString(style.Render(strings.Repeat("█", cells)))

		text := fmt.Sprintf("%s %.0fh", seg.label, seg.hours)
		if seg.excluded {
			text = seg.label + " excluded"
		}
		legend.WriteString(style.Render("■ "))
		legend.WriteString(styles.MutedText.Render(text))
		if i < len(segments)-1 {
			legend.WriteString("   ")
		}
	}

	return styles.Text.Bold(true).Render("Your week") + "\n" + bar.String() + "\n" + legend.String()
}

func (m Model) renderPeriod() string {
	styles := m.theme.Styles()
	p, ok := life.PeriodFor(m.snap.CurrentView, m.clock)
	if !ok {
		return ""
	}
	week := life.Weekly(m.snap.UserData)

	var b strings.Builder
	b.WriteString(styles.Logo.Render(p.Label))
	b.WriteString("\n\n")
	b.WriteString(m.renderProgressBar(p.Elapsed*100, barWidth(m.width)))
	b.WriteString("\n")
	b.WriteString(styles.Text.Render(fmt.Sprintf("%.1f%% gone", p.Elapsed*100)))
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("  ·  %d of %d days left", p.DaysLeft, p.DaysTotal)))
	b.WriteString("\n\n")
	b.WriteString(m.renderPeriodCells(p))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Render(fmt.Sprintf(
		"≈ %s free hours left this %s",
		formatThousands(week.Free/7*float64(p.DaysLeft)),
		periodNoun(m.snap.CurrentView),
	)))
	return b.String()
}

// renderPeriodCells draws months for the yearly view and days otherwise.
func (m Model) renderPeriodCells(p life.Period) string {
	styles := m.theme.Styles()
	total, done := p.DaysTotal, p.DaysTotal-p.DaysLeft
	if m.snap.CurrentView == state.ViewYearly {
		total, done = 12, int(m.clock.Month())-1
	}
	cols := gridColumns(m.width)
	if m.snap.CurrentView == state.ViewWeekly {
		cols = 7
	}

	var b strings.Builder
	for i := 0; i < total; i++ {
		switch {
		case i < done:
			b.WriteString(styles.CategoryStyle(categoryLived).Render("■"))
		case i == done:
			b.WriteString(styles.AccentText.Bold(true).Render("▣"))
		default:
			b.WriteString(styles.EmptyStyle().Render("□"))
		}
		if (i+1)%cols == 0 || i == total-1 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) renderCalendar() string {
	styles := m.theme.Styles()
	if m.editingDeadline {
		return m.deadline.view(m.theme, "enter to save · tab to move · esc to cancel")
	}

	u := m.snap.UserData
	var b strings.Builder
	b.WriteString(styles.Logo.Render("Deadline"))
	b.WriteString("\n\n")

	switch {
	case u.Deadline == nil || !u.Deadline.Complete():
		b.WriteString(styles.MutedText.Render("No deadline set. Press n to add one."))
	default:
		c, err := life.CountdownFor(*u.Deadline, m.clock)
		if err != nil {
			b.WriteString(styles.DangerText.Render(err.Error()))
			break
		}
		b.WriteString(styles.Text.Bold(true).Render(c.Name))
		b.WriteString(styles.MutedText.Render("  " + c.Target.Format("Mon 02 Jan 2006 15:04")))
		b.WriteString("\n")
		if c.Passed {
			b.WriteString(styles.DangerText.Render("passed"))
		} else {
			b.WriteString(styles.WarningText.Bold(true).Render(formatCountdown(c.Remaining)))
		}
		if c.HasStart {
			b.WriteString("\n\n")
			b.WriteString(m.renderProgressBar(c.Elapsed*100, barWidth(m.width)))
			b.WriteString("\n")
			b.WriteString(styles.MutedText.Render(fmt.Sprintf("%.1f%% of the way since %s", c.Elapsed*100, c.Start.Format("02 Jan 2006"))))
		}
	}

	if len(u.SavedDeadlines) > 0 {
		b.WriteString("\n\n")
		b.WriteString(styles.AccentText.Bold(true).Render("Earlier deadlines"))
		for i, d := range u.SavedDeadlines {
			if i == maxSavedShown {
				b.WriteString("\n")
				b.WriteString(styles.FaintText.Render(fmt.Sprintf("… %d more", len(u.SavedDeadlines)-i)))
				break
			}
			b.WriteString("\n")
			b.WriteString(styles.Text.Render(d.Name))
			b.WriteString(styles.FaintText.Render("  " + d.Date + " " + d.Time))
		}
	}
	return b.String()
}

// renderProgressBar renders a text-based progress bar without percentage text.
func (m Model) renderProgressBar(percent float64, width int) string {
	styles := m.theme.Styles()
	percent = clampPercent(percent)
	filled := min(int(float64(width)*percent/100), width)
	return styles.AccentText.Render(strings.Repeat("█", filled)) +
		styles.EmptyStyle().Render(strings.Repeat("░", width-filled))
}

func periodNoun(v state.View) string {
	switch v {
	case state.ViewYearly:
		return "year"
	case state.ViewMonthly:
		return "month"
	default:
		return "week"
	}
}
