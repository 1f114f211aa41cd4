// Package breathing runs the 4-7-8 breathing exercise that opens a focus
// session.
package breathing

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/onefocus/internal/constants"
)

type Phase int

const (
	PhaseInhale Phase = iota
	PhaseHold
	PhaseExhale
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseInhale:
		return "Breathe In"
	case PhaseHold:
		return "Hold"
	case PhaseExhale:
		return "Breathe Out"
	default:
		return "Breathing Complete"
	}
}

// Seconds is the length of the phase.
func (p Phase) Seconds() int {
	switch p {
	case PhaseInhale:
		return constants.BreathingInhaleSeconds
	case PhaseHold:
		return constants.BreathingHoldSeconds
	case PhaseExhale:
		return constants.BreathingExhaleSeconds
	default:
		return 0
	}
}

// TickMsg advances a running session by one second. Ticks from an older
// session are ignored.
type TickMsg struct {
	session int
}

// FinishedMsg is emitted once when the exercise ends or is skipped.
type FinishedMsg struct {
	Elapsed time.Duration
	Skipped bool
}

var (
	phaseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 4)

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type Model struct {
	phase     Phase
	remaining int
	cycle     int
	elapsed   time.Duration
	session   int
	running   bool
}

func New() Model {
	return Model{phase: PhaseInhale, remaining: PhaseInhale.Seconds()}
}

func (m Model) Phase() Phase { return m.phase }
func (m Model) Remaining() int { return m.remaining }
func (m Model) Cycle() int { return m.cycle }
func (m Model) Elapsed() time.Duration { return m.elapsed }
func (m Model) Running() bool { return m.running }
func (m Model) Done() bool { return m.phase == PhaseDone }

func (m Model) tick() tea.Cmd {
	session := m.session
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return TickMsg{session: session}
	})
}

// Start resets the exercise and begins ticking.
func (m Model) Start() (Model, tea.Cmd) {
	m = Model{
		phase:     PhaseInhale,
		remaining: PhaseInhale.Seconds(),
		session:   m.session + 1,
		running:   true,
	}
	return m, m.tick()
}

// Stop abandons the exercise without a FinishedMsg. Ticks already in flight
// are ignored.
func (m Model) Stop() Model {
	return Model{
		phase:     PhaseInhale,
		remaining: PhaseInhale.Seconds(),
		session:   m.session + 1,
	}
}

// Skip ends the exercise early.
func (m Model) Skip() (Model, tea.Cmd) {
	if !m.running {
		return m, nil
	}
	return m.finish(true)
}

func (m Model) finish(skipped bool) (Model, tea.Cmd) {
	m.phase = PhaseDone
	m.remaining = 0
	m.running = false
	elapsed := m.elapsed
	return m, func() tea.Msg {
		return FinishedMsg{Elapsed: elapsed, Skipped: skipped}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok || !m.running || tick.session != m.session {
		return m, nil
	}

	m.elapsed += time.Second
	m.remaining--
	if m.remaining > 0 {
		return m, m.tick()
	}

	switch m.phase {
	case PhaseInhale:
		m.phase = PhaseHold
	case PhaseHold:
		m.phase = PhaseExhale
	case PhaseExhale:
		m.cycle++
		if m.cycle >= constants.BreathingCycles {
			return m.finish(false)
		}
		m.phase = PhaseInhale
	}
	m.remaining = m.phase.Seconds()
	return m, m.tick()
}

func (m Model) View() string {
	if m.Done() {
		return lipgloss.JoinVertical(lipgloss.Center,
			phaseStyle.Render(m.phase.String()),
			"",
			mutedStyle.Render("Now do your habit."),
		)
	}

	dots := strings.Repeat("● ", m.cycle) + strings.Repeat("○ ", constants.BreathingCycles-m.cycle)
	return lipgloss.JoinVertical(lipgloss.Center,
		phaseStyle.Render(m.phase.String()),
		"",
		countStyle.Render(fmt.Sprintf("%d", m.remaining)),
		"",
		mutedStyle.Render(strings.TrimSpace(dots)),
		mutedStyle.Render("[s] skip"),
	)
}
