// Package tui is the interactive OneFocus dashboard.
package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/onefocus/internal/journey"
	"github.com/julianstephens/onefocus/internal/logger"
	"github.com/julianstephens/onefocus/internal/models"
	"github.com/julianstephens/onefocus/internal/storage"
	"github.com/julianstephens/onefocus/internal/tui/components/breathing"
	"github.com/julianstephens/onefocus/internal/tui/components/dashboard"
	"github.com/julianstephens/onefocus/internal/tui/forms"
)

type SessionState int

// Tabs come first so the tab bar can index them.
const (
	StateToday SessionState = iota
	StateProgress
	StateReflections
	StateFocus
	StateMoodForm
	StateReflectionForm
	StateFailureForm
)

var tabTitles = []string{"Today", "Progress", "Reflections"}

const tabCount = 3

type Model struct {
	svc        *journey.Service
	state      SessionState
	keys       KeyMap
	help       help.Model
	dashboard  dashboard.Model
	breathing  breathing.Model
	form       *huh.Form
	mood       int
	reflection *forms.ReflectionInput
	failure    *forms.FailureInput
	focusSlot  int

	journey     models.Journey
	weeks       []models.WeekCompletion
	heatmap     []models.HeatmapDay
	reflections []models.Reflection
	primary     *models.Habit

	status   string
	err      error
	quitting bool
	width    int
	height   int
}

func NewModel(svc *journey.Service) Model {
	m := Model{
		svc:       svc,
		state:     StateToday,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		dashboard: dashboard.New(),
		breathing: breathing.New(),
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateToday:
		keys = append(keys, m.keys.Complete, m.keys.Focus, m.keys.Mood)
		if m.dashboard.Data().Reflection > 0 {
			keys = append(keys, m.keys.Reflect)
		}
		if m.dashboard.Data().Failed {
			keys = append(keys, m.keys.Analyze)
		}
	case StateFocus:
		keys = []key.Binding{m.keys.Skip, m.keys.Back}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh reloads everything the views show from the service.
func (m *Model) refresh() {
	j, err := m.svc.GetOrCreateJourney()
	if err != nil {
		m.setError(err)
		return
	}
	today := m.svc.Today()
	m.journey = j
	m.weeks = journey.WeeklyCompletion(j)
	m.heatmap = journey.Heatmap(j, today)

	data := dashboard.Data{
		Stats:  journey.StatsFor(j, today),
		Status: j.Status,
		Failed: j.IsActive() && journey.HasFailed(j, today),
	}

	store := m.svc.Store()
	m.primary = nil
	for _, get := range []func() (models.Habit, error){store.GetPrimaryHabit, store.GetSecondaryHabit} {
		h, err := get()
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			m.setError(err)
			continue
		}
		if !h.IsSecondary {
			m.primary = &h
		}
		card := dashboard.Card{Habit: h, Completed: journey.IsCompleted(j, today, h.SlotIndex())}
		if h.Type == models.HabitTypeRepeating {
			card.Count, _ = m.svc.RepeatingCount(h.SlotIndex())
		}
		data.Cards = append(data.Cards, card)
	}

	if j.IsActive() {
		data.CanAddNext, _ = m.svc.CanAddSecondHabit()
		if due, week, err := m.svc.IsReflectionDue(); err == nil && due {
			data.Reflection = week
		}
	}
	m.dashboard.SetData(data)

	if reflections, err := m.svc.Reflections(); err == nil {
		m.reflections = reflections
	}
}

func (m *Model) setError(err error) {
	logger.Error("TUI operation failed", "error", err)
	m.err = err
	m.status = ""
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.err = nil
}
