package notifier

import (
	"strings"
	"testing"

	"github.com/julianstephens/onefocus/internal/constants"
	"github.com/julianstephens/onefocus/internal/models"
)

func TestMilestones(t *testing.T) {
	for _, day := range constants.MilestoneDays {
		m, ok := Milestone(day)
		if !ok || m.Title == "" || m.Body == "" {
			t.Errorf("Milestone(%d) = %+v, %v", day, m, ok)
		}
	}
	if _, ok := Milestone(8); ok {
		t.Error("day 8 is not a milestone")
	}
}

func TestHabitReminder(t *testing.T) {
	tests := []struct {
		trigger models.TriggerType
		want    string
	}{
		{models.TriggerAnchor, "Time to brew coffee?"},
		{models.TriggerContext, "When you're brew coffee"},
		{models.TriggerThroughout, "Keep the momentum going"},
	}
	for _, tt := range tests {
		h := models.Habit{Name: "Stretch", Trigger: "brew coffee", TriggerType: tt.trigger}
		m := HabitReminder(h)
		if m.Title != "Ready for Stretch?" || !strings.Contains(m.Body, tt.want) {
			t.Errorf("%s: got %+v", tt.trigger, m)
		}
	}
}

func TestForDay(t *testing.T) {
	habit := &models.Habit{Name: "Stretch", TriggerType: models.TriggerThroughout}

	if m, ok := ForDay(21, true, habit); !ok || !strings.Contains(m.Title, "Foundation") {
		t.Errorf("milestone day = %+v, %v", m, ok)
	}
	if _, ok := ForDay(3, true, habit); ok {
		t.Error("completed day should send nothing")
	}
	if m, ok := ForDay(3, false, habit); !ok || m.Title != "Ready for Stretch?" {
		t.Errorf("open day = %+v, %v", m, ok)
	}
	if m, ok := ForDay(3, false, nil); !ok || m != DailyReminder() {
		t.Errorf("no habit = %+v, %v", m, ok)
	}
}
