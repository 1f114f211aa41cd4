package notifier

import (
	"fmt"

	"github.com/julianstephens/onefocus/internal/models"
)

// Message is a single notification.
type Message struct {
	Title string
	Body  string
}

// Options mirror the user's notification settings.
type Options struct {
	Sound bool
	Badge bool
}

func OptionsFromSettings(s models.Settings) Options {
	return Options{Sound: s.NotificationSound, Badge: s.BadgeEnabled}
}

var milestones = map[int]Message{
	7:  {"Week 1 Complete! 🎉", "You've completed your first week. You're building momentum!"},
	14: {"2 Weeks Strong! 💪", "You're doing great! Keep the streak going."},
	21: {"21 Days - Foundation Built! 🏗️", "You've completed the foundation phase. The habit is forming!"},
	30: {"30 Days - One Month! 🌟", "Amazing progress! You're halfway through strengthening phase."},
	42: {"6 Weeks Complete! 🚀", "You're in the cementing phase now. Almost automatic!"},
	66: {"Journey Complete! 🎊", "You did it! Your habit is now ingrained. Incredible achievement!"},
}

// Milestone returns the celebration message for a journey day, if any.
func Milestone(day int) (Message, bool) {
	m, ok := milestones[day]
	return m, ok
}

func DailyReminder() Message {
	return Message{
		Title: "Time for Your Habit",
		Body:  "Your daily habit is waiting for you. Take a moment to complete it.",
	}
}

// HabitReminder phrases the reminder around the habit's trigger.
func HabitReminder(h models.Habit) Message {
	msg := Message{Title: fmt.Sprintf("Ready for %s?", h.Name)}
	switch h.TriggerType {
	case models.TriggerAnchor:
		msg.Body = fmt.Sprintf("Time to %s? Don't forget your habit!", h.Trigger)
	case models.TriggerContext:
		msg.Body = fmt.Sprintf("When you're %s, remember your habit!", h.Trigger)
	default:
		msg.Body = "Time for your habit! Keep the momentum going."
	}
	return msg
}

// ForDay picks what to send on a journey day: the milestone message when
// the day is a milestone, otherwise a reminder while the habit is still
// open. primary may be nil before onboarding.
func ForDay(day int, completedToday bool, primary *models.Habit) (Message, bool) {
	if m, ok := Milestone(day); ok {
		return m, true
	}
	if completedToday {
		return Message{}, false
	}
	if primary != nil {
		return HabitReminder(*primary), true
	}
	return DailyReminder(), true
}
