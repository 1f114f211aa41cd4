package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/onefocus/internal/journey"
	"github.com/julianstephens/onefocus/internal/models"
	"github.com/julianstephens/onefocus/internal/storage"
	"github.com/julianstephens/onefocus/internal/tui/components/breathing"
)

func newTestModel(t *testing.T) (Model, *journey.Service) {
	t.Helper()
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	svc := journey.NewService(storage.NewMemoryStore(),
		journey.WithClock(func() time.Time { return now }),
		journey.WithLocation(time.UTC))
	_, err := svc.CreateHabit(models.Habit{
		Name:        "Stretch",
		Type:        models.HabitTypeBinary,
		TriggerType: models.TriggerAnchor,
		Trigger:     "wake up",
	})
	if err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}
	return NewModel(svc), svc
}

func press(m Model, k string) Model {
	var msg tea.KeyMsg
	switch k {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestMarkCompleteFromDashboard(t *testing.T) {
	m, svc := newTestModel(t)

	m = press(m, "c")
	done, err := svc.IsCompletedToday(models.PrimarySlot)
	if err != nil || !done {
		t.Fatalf("IsCompletedToday = %v, %v", done, err)
	}
	if !m.dashboard.Data().Cards[0].Completed {
		t.Error("dashboard not refreshed after completion")
	}
	if !strings.Contains(m.View(), "done today") {
		t.Error("view does not show the completed habit")
	}
}

func TestTabsCycle(t *testing.T) {
	m, _ := newTestModel(t)
	for _, want := range []SessionState{StateProgress, StateReflections, StateToday} {
		m = press(m, "tab")
		if m.state != want {
			t.Fatalf("state = %d, want %d", m.state, want)
		}
	}
	m = press(m, "h")
	if m.state != StateReflections {
		t.Errorf("shift back landed on %d", m.state)
	}
	if !strings.Contains(m.View(), "No reflections yet") {
		t.Error("reflections tab not rendered")
	}
}

func TestFocusSessionCompletesDay(t *testing.T) {
	m, svc := newTestModel(t)

	m = press(m, "f")
	if m.state != StateFocus || !m.breathing.Running() {
		t.Fatalf("focus session not started: state %d", m.state)
	}

	next, _ := m.Update(breathing.FinishedMsg{Elapsed: 57 * time.Second})
	m = next.(Model)
	if m.state != StateToday {
		t.Errorf("state after focus = %d, want today", m.state)
	}

	j, _ := svc.GetOrCreateJourney()
	if j.TotalFocusTimeSeconds != 57 || !journey.IsCompleted(j, svc.Today(), models.PrimarySlot) {
		t.Errorf("focus session not recorded: %+v", j)
	}
}

func TestFocusSessionEscape(t *testing.T) {
	m, svc := newTestModel(t)

	m = press(m, "f")
	m = press(m, "esc")
	if m.state != StateToday {
		t.Fatalf("esc did not leave the focus session")
	}
	if done, _ := svc.IsCompletedToday(models.PrimarySlot); done {
		t.Error("abandoned focus session marked the day complete")
	}
}

func TestFocusSessionClearsStaleError(t *testing.T) {
	m, _ := newTestModel(t)

	m.setError(errors.New("earlier failure"))
	m = press(m, "f")
	next, _ := m.Update(breathing.FinishedMsg{Elapsed: 30 * time.Second})
	m = next.(Model)
	if m.err != nil {
		t.Errorf("stale error left after a successful session: %v", m.err)
	}
	if !strings.Contains(m.status, "Focus session done") {
		t.Errorf("status = %q", m.status)
	}
}

func TestMoodFormEscape(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(m, "m")
	if m.state != StateMoodForm || m.form == nil {
		t.Fatalf("mood form not opened: state %d", m.state)
	}
	m = press(m, "esc")
	if m.state != StateToday {
		t.Errorf("esc did not close the form")
	}
}

func TestReflectAndAnalyzeNeedPrompt(t *testing.T) {
	m, _ := newTestModel(t)

	if m = press(m, "r"); m.state != StateToday {
		t.Error("reflection form opened without a due reflection")
	}
	if m = press(m, "a"); m.state != StateToday {
		t.Error("failure form opened for a healthy journey")
	}
}
