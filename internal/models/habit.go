package models

import "time"

type HabitType string

const (
	HabitTypeBinary    HabitType = "binary"
	HabitTypeTimed     HabitType = "timed"
	HabitTypeIncrement HabitType = "increment"
	HabitTypeReduction HabitType = "reduction"
	HabitTypeRepeating HabitType = "repeating"
)

// HabitTypes lists every habit type in display order
var HabitTypes = []HabitType{
	HabitTypeBinary,
	HabitTypeTimed,
	HabitTypeIncrement,
	HabitTypeReduction,
	HabitTypeRepeating,
}

func (t HabitType) Label() string {
	switch t {
	case HabitTypeBinary:
		return "Daily"
	case HabitTypeTimed:
		return "Timed"
	case HabitTypeIncrement:
		return "Build Up"
	case HabitTypeReduction:
		return "Cut Down"
	case HabitTypeRepeating:
		return "Repeating"
	default:
		return "Unknown"
	}
}

func (t HabitType) Description() string {
	switch t {
	case HabitTypeBinary:
		return "Yes or no each day"
	case HabitTypeTimed:
		return "Duration-based habit"
	case HabitTypeIncrement:
		return "Increase over time"
	case HabitTypeReduction:
		return "Reduce a behavior"
	case HabitTypeRepeating:
		return "Multiple times daily"
	default:
		return ""
	}
}

func (t HabitType) RequiresTrigger() bool {
	return t != HabitTypeRepeating
}

func (t HabitType) IsValid() bool {
	for _, ht := range HabitTypes {
		if ht == t {
			return true
		}
	}
	return false
}

type TriggerType string

const (
	TriggerAnchor     TriggerType = "anchor"     // "After I ___"
	TriggerThroughout TriggerType = "throughout" // no specific trigger
	TriggerContext    TriggerType = "context"    // context cues
)

func (t TriggerType) Label() string {
	switch t {
	case TriggerAnchor:
		return "After a specific action"
	case TriggerThroughout:
		return "Throughout the day"
	case TriggerContext:
		return "At specific moments"
	default:
		return "Unknown"
	}
}

func (t TriggerType) IsValid() bool {
	return t == TriggerAnchor || t == TriggerThroughout || t == TriggerContext
}

// Habit is the behavior a journey tracks. A journey has one primary habit
// and, from day 21, an optional secondary one.
type Habit struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Type         HabitType   `json:"type"`
	Trigger      string      `json:"trigger"`
	TriggerType  TriggerType `json:"trigger_type"`
	StartValue   *int        `json:"start_value,omitempty"`
	TargetValue  *int        `json:"target_value,omitempty"`
	CurrentValue *int        `json:"current_value,omitempty"`
	DailyTarget  *int        `json:"daily_target,omitempty"`
	TimedMinutes *int        `json:"timed_minutes,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	IsSecondary  bool        `json:"is_secondary"`
}

// SlotIndex returns the completion ledger slot this habit writes to.
func (h Habit) SlotIndex() int {
	if h.IsSecondary {
		return SecondarySlot
	}
	return PrimarySlot
}

// TriggerDisplayText renders the trigger the way it is shown to the user.
func (h Habit) TriggerDisplayText() string {
	switch h.TriggerType {
	case TriggerThroughout:
		return "Throughout the day"
	case TriggerContext:
		return h.Trigger
	default:
		return "After I " + h.Trigger
	}
}
