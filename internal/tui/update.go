package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/onefocus/internal/journey"
	"github.com/julianstephens/onefocus/internal/models"
	"github.com/julianstephens/onefocus/internal/tui/components/breathing"
	"github.com/julianstephens/onefocus/internal/tui/forms"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		m.help.Width = size.Width
		m.dashboard.SetSize(size.Width)
	}

	switch m.state {
	case StateMoodForm, StateReflectionForm, StateFailureForm:
		return m.updateForm(msg)
	case StateFocus:
		return m.updateFocus(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(keyMsg, m.keys.Tab):
		m.state = (m.state + 1) % tabCount
		return m, nil
	case key.Matches(keyMsg, m.keys.ShiftTab):
		m.state = (m.state + tabCount - 1) % tabCount
		return m, nil
	}

	if m.state == StateToday {
		return m.updateToday(keyMsg)
	}
	return m, nil
}

func (m Model) updateToday(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Complete):
		m.markComplete(models.PrimarySlot)
	case key.Matches(msg, m.keys.CompleteNext):
		m.markComplete(models.SecondarySlot)
	case key.Matches(msg, m.keys.Increment):
		m.increment()
	case key.Matches(msg, m.keys.Focus):
		if !m.journey.IsActive() {
			m.setError(journey.ErrJourneyNotActive)
			return m, nil
		}
		m.focusSlot = models.PrimarySlot
		m.state = StateFocus
		var cmd tea.Cmd
		m.breathing, cmd = m.breathing.Start()
		return m, cmd
	case key.Matches(msg, m.keys.Mood):
		m.mood = 0
		m.form = forms.Mood(&m.mood, !journey.IsCompleted(m.journey, m.svc.Today(), models.PrimarySlot))
		m.state = StateMoodForm
		return m, m.form.Init()
	case key.Matches(msg, m.keys.Reflect):
		week := m.dashboard.Data().Reflection
		if week == 0 {
			return m, nil
		}
		m.reflection = &forms.ReflectionInput{}
		m.form = forms.Reflection(m.reflection, week)
		m.state = StateReflectionForm
		return m, m.form.Init()
	case key.Matches(msg, m.keys.Analyze):
		if !m.dashboard.Data().Failed {
			return m, nil
		}
		m.failure = &forms.FailureInput{}
		m.form = forms.FailureAnalysis(m.failure)
		m.state = StateFailureForm
		return m, m.form.Init()
	}
	return m, nil
}

func (m *Model) markComplete(slot int) {
	if slot == models.SecondarySlot {
		if _, err := m.svc.Store().GetSecondaryHabit(); err != nil {
			return
		}
	}
	if _, err := m.svc.MarkComplete(slot); err != nil {
		m.setError(err)
	} else {
		m.setStatus("Nice work. Day marked complete.")
	}
	m.refresh()
}

func (m *Model) increment() {
	for _, c := range m.dashboard.Data().Cards {
		if c.Habit.Type != models.HabitTypeRepeating {
			continue
		}
		slot := c.Habit.SlotIndex()
		count, err := m.svc.IncrementRepeating(slot)
		if err != nil {
			m.setError(err)
			break
		}
		m.setStatus(fmt.Sprintf("%s: %d today", c.Habit.Name, count))
		if c.Habit.DailyTarget != nil && count >= *c.Habit.DailyTarget && !c.Completed {
			if _, err := m.svc.MarkComplete(slot); err != nil {
				m.setError(err)
			}
		}
		break
	}
	m.refresh()
}

func (m Model) updateFocus(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Skip):
			var cmd tea.Cmd
			m.breathing, cmd = m.breathing.Skip()
			return m, cmd
		case key.Matches(msg, m.keys.Back), msg.String() == "ctrl+c":
			m.breathing = m.breathing.Stop()
			m.state = StateToday
			return m, nil
		}
	case breathing.FinishedMsg:
		m.err = nil
		if _, err := m.svc.MarkComplete(m.focusSlot); err != nil {
			m.setError(err)
		}
		if _, err := m.svc.AddFocusTime(msg.Elapsed); err != nil {
			m.setError(err)
		}
		if m.err == nil {
			m.setStatus(fmt.Sprintf("Focus session done (%s). Day marked complete.", journey.FormatFocusTime(int(msg.Elapsed.Seconds()))))
		}
		m.state = StateToday
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.breathing, cmd = m.breathing.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = StateToday
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.submitForm()
		m.state = StateToday
		m.refresh()
	case huh.StateAborted:
		m.state = StateToday
	}
	return m, cmd
}

func (m *Model) submitForm() {
	switch m.state {
	case StateMoodForm:
		habitID := ""
		if m.primary != nil {
			habitID = m.primary.ID
		}
		before := !journey.IsCompleted(m.journey, m.svc.Today(), models.PrimarySlot)
		if _, err := m.svc.LogMood(m.mood, habitID, before); err != nil {
			m.setError(err)
			return
		}
		m.setStatus(fmt.Sprintf("Mood logged: %s", models.MoodLabel(m.mood)))

	case StateReflectionForm:
		week := m.dashboard.Data().Reflection
		in := m.reflection
		_, err := m.svc.SubmitReflection(week, in.WhatHelped, in.WhatHindered, in.PatternsNoticed)
		if errors.Is(err, journey.ErrEmptyReflection) {
			_, err = m.svc.SkipReflection(week)
		}
		if err != nil {
			m.setError(err)
			return
		}
		m.setStatus(fmt.Sprintf("Week %d reflection saved.", week))

	case StateFailureForm:
		in := m.failure
		if _, err := m.svc.SaveFailureAnalysis(in.WhatWorked, in.WhatDidnt, in.NextTimeChanges); err != nil {
			m.setError(err)
			return
		}
		m.setStatus("Journey archived. Run 'onefocus fresh' when you're ready to start again.")
	}
}
