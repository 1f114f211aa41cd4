package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/onefocus/internal/constants"
	"github.com/julianstephens/onefocus/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictMissingName          ConflictType = "missing_name"
	ConflictInvalidHabitType     ConflictType = "invalid_habit_type"
	ConflictInvalidTriggerType   ConflictType = "invalid_trigger_type"
	ConflictMissingTrigger       ConflictType = "missing_trigger"
	ConflictInvalidTimedMinutes  ConflictType = "invalid_timed_minutes"
	ConflictInvalidRange         ConflictType = "invalid_range"
	ConflictInvalidDailyTarget   ConflictType = "invalid_daily_target"
	ConflictDuplicateHabitSlot   ConflictType = "duplicate_habit_slot"
	ConflictSecondaryWithoutMain ConflictType = "secondary_without_primary"
	ConflictInvalidDateTime      ConflictType = "invalid_datetime"
	ConflictInvalidTimezone      ConflictType = "invalid_timezone"
	ConflictInvalidDateKey       ConflictType = "invalid_date_key"
	ConflictFlexDaysOutOfRange   ConflictType = "flex_days_out_of_range"
	ConflictMultipleActive       ConflictType = "multiple_active_journeys"
)

// Conflict represents a detected problem in stored or submitted data
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // names or keys involved
	IDs         []string // record IDs involved (for auto-fixing)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

func (vr *ValidationResult) add(c Conflict) {
	vr.Conflicts = append(vr.Conflicts, c)
}

// Err returns the conflicts as a single error, or nil.
func (vr *ValidationResult) Err() error {
	if !vr.HasConflicts() {
		return nil
	}
	msgs := make([]string, 0, len(vr.Conflicts))
	for _, c := range vr.Conflicts {
		msgs = append(msgs, c.Description)
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator validates habits, settings and journeys
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateHabit checks a single habit against the rules for its type.
func (v *Validator) ValidateHabit(h models.Habit) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	label := h.Name
	if strings.TrimSpace(h.Name) == "" {
		label = h.ID
		result.add(Conflict{
			Type:        ConflictMissingName,
			Description: "Habit name cannot be empty",
			IDs:         []string{h.ID},
		})
	}

	if !h.Type.IsValid() {
		result.add(Conflict{
			Type:        ConflictInvalidHabitType,
			Description: fmt.Sprintf("Habit \"%s\" has unknown type: %s", label, h.Type),
			Items:       []string{label},
			IDs:         []string{h.ID},
		})
		return result
	}

	if !h.TriggerType.IsValid() {
		result.add(Conflict{
			Type:        ConflictInvalidTriggerType,
			Description: fmt.Sprintf("Habit \"%s\" has unknown trigger type: %s", label, h.TriggerType),
			Items:       []string{label},
			IDs:         []string{h.ID},
		})
	} else if h.Type.RequiresTrigger() && h.TriggerType != models.TriggerThroughout && strings.TrimSpace(h.Trigger) == "" {
		result.add(Conflict{
			Type:        ConflictMissingTrigger,
			Description: fmt.Sprintf("Habit \"%s\" needs a trigger", label),
			Items:       []string{label},
			IDs:         []string{h.ID},
		})
	}

	switch h.Type {
	case models.HabitTypeTimed:
		if h.TimedMinutes == nil || *h.TimedMinutes <= 0 {
			result.add(Conflict{
				Type:        ConflictInvalidTimedMinutes,
				Description: fmt.Sprintf("Timed habit \"%s\" needs a duration greater than 0 minutes", label),
				Items:       []string{label},
				IDs:         []string{h.ID},
			})
		}
	case models.HabitTypeIncrement, models.HabitTypeReduction:
		if h.StartValue == nil || h.TargetValue == nil {
			break
		}
		increasing := h.Type == models.HabitTypeIncrement
		if (increasing && *h.StartValue >= *h.TargetValue) || (!increasing && *h.StartValue <= *h.TargetValue) {
			direction := "below"
			if !increasing {
				direction = "above"
			}
			result.add(Conflict{
				Type:        ConflictInvalidRange,
				Description: fmt.Sprintf("Habit \"%s\" must start %s its target (start %d, target %d)", label, direction, *h.StartValue, *h.TargetValue),
				Items:       []string{label},
				IDs:         []string{h.ID},
			})
		}
	case models.HabitTypeRepeating:
		if h.DailyTarget == nil || *h.DailyTarget <= 0 {
			result.add(Conflict{
				Type:        ConflictInvalidDailyTarget,
				Description: fmt.Sprintf("Repeating habit \"%s\" needs a daily target greater than 0", label),
				Items:       []string{label},
				IDs:         []string{h.ID},
			})
		}
	}

	return result
}

// ValidateHabits checks every habit plus the one-primary/one-secondary rule.
func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	slots := map[bool][]string{}
	for _, h := range habits {
		r := v.ValidateHabit(h)
		result.Conflicts = append(result.Conflicts, r.Conflicts...)
		slots[h.IsSecondary] = append(slots[h.IsSecondary], h.ID)
	}

	for secondary, ids := range slots {
		if len(ids) > 1 {
			slot := "primary"
			if secondary {
				slot = "secondary"
			}
			result.add(Conflict{
				Type:        ConflictDuplicateHabitSlot,
				Description: fmt.Sprintf("Found %d %s habits (IDs: %v); only the oldest is used", len(ids), slot, ids),
				Items:       []string{slot},
				IDs:         ids,
			})
		}
	}
	if len(slots[true]) > 0 && len(slots[false]) == 0 {
		result.add(Conflict{
			Type:        ConflictSecondaryWithoutMain,
			Description: "A secondary habit exists without a primary habit",
			IDs:         slots[true],
		})
	}

	return result
}

// ValidateSettings checks the stored preference values.
func (v *Validator) ValidateSettings(s models.Settings) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if s.NotificationTime != "" && !isValidTimeFormat(s.NotificationTime) {
		result.add(Conflict{
			Type:        ConflictInvalidDateTime,
			Description: fmt.Sprintf("Invalid notification time: %s (expected HH:MM)", s.NotificationTime),
			Items:       []string{constants.SettingNotificationTime},
		})
	}
	if s.Timezone != "" && s.Timezone != constants.DefaultTimezone {
		if _, err := time.LoadLocation(s.Timezone); err != nil {
			result.add(Conflict{
				Type:        ConflictInvalidTimezone,
				Description: fmt.Sprintf("Invalid timezone: %s", s.Timezone),
				Items:       []string{constants.SettingTimezone},
			})
		}
	}

	return result
}

// ValidateJourneys checks stored journeys for ledger keys that do not parse,
// flex counters out of range and more than one active journey.
func (v *Validator) ValidateJourneys(journeys []models.Journey) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	var active []string
	for _, j := range journeys {
		if j.IsActive() {
			active = append(active, j.ID)
		}
		var bad []string
		for _, key := range j.CompletedDays {
			if _, _, err := models.ParseDateKey(key); err != nil {
				bad = append(bad, key)
			}
		}
		if len(bad) > 0 {
			result.add(Conflict{
				Type:        ConflictInvalidDateKey,
				Description: fmt.Sprintf("Journey %s has %d unreadable completion key(s): %v", j.ID, len(bad), bad),
				Items:       bad,
				IDs:         []string{j.ID},
			})
		}
		if j.FlexDaysUsed < 0 || j.FlexDaysUsed > constants.MaxFlexDays {
			result.add(Conflict{
				Type:        ConflictFlexDaysOutOfRange,
				Description: fmt.Sprintf("Journey %s has %d flex days used (allowed 0-%d)", j.ID, j.FlexDaysUsed, constants.MaxFlexDays),
				IDs:         []string{j.ID},
			})
		}
	}

	if len(active) > 1 {
		result.add(Conflict{
			Type:        ConflictMultipleActive,
			Description: fmt.Sprintf("Found %d active journeys (IDs: %v); only the newest is used", len(active), active),
			IDs:         active,
		})
	}

	return result
}

// ValidateMood checks a mood value is on the 1-5 scale.
func ValidateMood(mood int) error {
	if mood < constants.MinMood || mood > constants.MaxMood {
		return fmt.Errorf("mood must be between %d and %d, got %d", constants.MinMood, constants.MaxMood, mood)
	}
	return nil
}

func isValidTimeFormat(timeStr string) bool {
	_, err := time.Parse(constants.TimeFormat, timeStr)
	return err == nil
}

// AutoFixInvalidDateKeys drops unreadable completion keys from the journeys
// named by ConflictInvalidDateKey conflicts and saves them with updateFunc.
func AutoFixInvalidDateKeys(conflicts []Conflict, journeys []models.Journey, updateFunc func(models.Journey) error) []FixAction {
	actions := []FixAction{}

	byID := make(map[string]models.Journey, len(journeys))
	for _, j := range journeys {
		byID[j.ID] = j
	}

	for _, conflict := range conflicts {
		if conflict.Type != ConflictInvalidDateKey || len(conflict.IDs) != 1 {
			continue
		}
		j, ok := byID[conflict.IDs[0]]
		if !ok {
			continue
		}

		bad := make(map[string]bool, len(conflict.Items))
		for _, key := range conflict.Items {
			bad[key] = true
		}
		kept := make([]string, 0, len(j.CompletedDays))
		for _, key := range j.CompletedDays {
			if !bad[key] {
				kept = append(kept, key)
			}
		}
		j.CompletedDays = kept

		if err := updateFunc(j); err != nil {
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Failed to clean journey %s: %v", j.ID, err),
				SourceConflict: conflict,
			})
			continue
		}
		actions = append(actions, FixAction{
			Action:         fmt.Sprintf("Removed %d unreadable completion key(s) from journey %s", len(bad), j.ID),
			SourceConflict: conflict,
		})
	}

	return actions
}
