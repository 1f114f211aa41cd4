// Package dashboard renders the "today" view: day, phase, streak and the
// habit cards.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/onefocus/internal/constants"
	"github.com/julianstephens/onefocus/internal/journey"
	"github.com/julianstephens/onefocus/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 2).
			Width(44)

	doneCardStyle = cardStyle.BorderForeground(lipgloss.Color("42"))
)

// Card is one habit slot on the dashboard.
type Card struct {
	Habit     models.Habit
	Completed bool
	Count     int // today's count for repeating habits
}

type Data struct {
	Stats      journey.Stats
	Status     models.JourneyStatus
	Cards      []Card
	CanAddNext bool
	Reflection int // week whose reflection is due, 0 for none
	Failed     bool
}

type Model struct {
	data     Data
	progress progress.Model
	width    int
}

func New() Model {
	return Model{progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())}
}

func (m *Model) SetData(d Data) {
	m.data = d
}

func (m Model) Data() Data {
	return m.data
}

func (m *Model) SetSize(width int) {
	m.width = width
	m.progress.Width = min(max(width-10, 20), 60)
}

func (m Model) View() string {
	st := m.data.Stats
	var sections []string

	sections = append(sections,
		titleStyle.Render(fmt.Sprintf("Day %d of %d", st.CurrentDay, constants.JourneyLength)),
		subtleStyle.Render(string(st.Phase)),
		m.progress.ViewAs(st.Progress),
		fmt.Sprintf("🔥 %d day streak   best %d   flex days %d   focus %s",
			st.CurrentStreak, st.BestStreak, st.FlexDaysRemaining, st.FocusTime()),
	)

	if m.data.Status != models.JourneyStatusActive {
		sections = append(sections, "", titleStyle.Render(fmt.Sprintf("This journey is %s.", m.data.Status)),
			subtleStyle.Render("Run 'onefocus fresh' to begin a new one."))
		return strings.Join(sections, "\n")
	}
	if m.data.Failed {
		sections = append(sections, "", titleStyle.Render("Three days were missed in a row."),
			subtleStyle.Render("[a] look back on what happened"))
	}

	if len(m.data.Cards) == 0 {
		sections = append(sections, "", subtleStyle.Render("No habit yet. Run 'onefocus onboard' to choose one."))
	}
	for _, c := range m.data.Cards {
		sections = append(sections, renderCard(c))
	}

	if m.data.CanAddNext {
		sections = append(sections, subtleStyle.Render("A second habit is now unlocked: onefocus habit add --secondary"))
	}
	if m.data.Reflection > 0 {
		sections = append(sections, titleStyle.Render(fmt.Sprintf("Week %d reflection is ready. [r] reflect", m.data.Reflection)))
	}
	return strings.Join(sections, "\n")
}

func renderCard(c Card) string {
	h := c.Habit
	status := "○ not yet"
	style := cardStyle
	if c.Completed {
		status = "✓ done today"
		style = doneCardStyle
	}

	lines := []string{
		titleStyle.Render(h.Name),
		subtleStyle.Render(h.TriggerDisplayText()),
	}
	if h.Type == models.HabitTypeRepeating && h.DailyTarget != nil {
		lines = append(lines, fmt.Sprintf("%d / %d today", c.Count, *h.DailyTarget))
	}
	if h.Type == models.HabitTypeTimed && h.TimedMinutes != nil {
		lines = append(lines, fmt.Sprintf("%d minutes", *h.TimedMinutes))
	}

	keys := "[space] done  [f] focus first"
	if h.IsSecondary {
		keys = "[2] done"
	}
	if h.Type == models.HabitTypeRepeating {
		keys += "  [+] count"
	}
	lines = append(lines, status, subtleStyle.Render(keys))
	return style.Render(strings.Join(lines, "\n"))
}
