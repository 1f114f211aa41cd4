package journey

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/onefocus/internal/constants"
	"github.com/julianstephens/onefocus/internal/models"
	"github.com/julianstephens/onefocus/internal/storage"
	"github.com/julianstephens/onefocus/internal/validation"
)

var (
	ErrHabitExists       = errors.New("habit already exists")
	ErrSecondHabitLocked = fmt.Errorf("a second habit unlocks on day %d", constants.SecondHabitUnlockDay)
)

// CanAddSecondHabit reports whether the secondary slot is open: the journey
// reached day 21 and no secondary habit exists.
func (s *Service) CanAddSecondHabit() (bool, error) {
	j, err := s.GetOrCreateJourney()
	if err != nil {
		return false, err
	}
	if CurrentDay(j, s.Today()) < constants.SecondHabitUnlockDay {
		return false, nil
	}
	_, err = s.store.GetSecondaryHabit()
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, storage.ErrNotFound):
		return true, nil
	default:
		return false, fmt.Errorf("failed to load secondary habit: %w", err)
	}
}

// CreateHabit validates and stores a habit in its slot. The primary habit
// also starts the journey and completes onboarding.
func (s *Service) CreateHabit(h models.Habit) (models.Habit, error) {
	h.Name = strings.TrimSpace(h.Name)
	h.Trigger = strings.TrimSpace(h.Trigger)
	if h.Type != models.HabitTypeRepeating {
		h.DailyTarget = nil
	}
	if h.Type != models.HabitTypeTimed {
		h.TimedMinutes = nil
	}
	if res := validation.New().ValidateHabit(h); res.HasConflicts() {
		return models.Habit{}, res.Err()
	}

	if h.IsSecondary {
		ok, err := s.CanAddSecondHabit()
		if err != nil {
			return models.Habit{}, err
		}
		if !ok {
			if _, err := s.store.GetSecondaryHabit(); err == nil {
				return models.Habit{}, fmt.Errorf("secondary %w", ErrHabitExists)
			}
			return models.Habit{}, ErrSecondHabitLocked
		}
	} else if _, err := s.store.GetPrimaryHabit(); err == nil {
		return models.Habit{}, fmt.Errorf("primary %w", ErrHabitExists)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.Habit{}, fmt.Errorf("failed to load primary habit: %w", err)
	}

	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	h.CreatedAt = s.now()
	if err := s.store.AddHabit(h); err != nil {
		return models.Habit{}, fmt.Errorf("failed to save habit: %w", err)
	}

	if !h.IsSecondary {
		if _, err := s.GetOrCreateJourney(); err != nil {
			return h, err
		}
		settings, err := s.store.GetSettings()
		if err != nil {
			return h, fmt.Errorf("failed to load settings: %w", err)
		}
		settings.HasCompletedOnboarding = true
		if err := s.store.SaveSettings(settings); err != nil {
			return h, fmt.Errorf("failed to save settings: %w", err)
		}
	}
	return h, nil
}

// RepeatingCount returns today's counter for a repeating habit slot.
func (s *Service) RepeatingCount(slot int) (int, error) {
	if err := validateSlot(slot); err != nil {
		return 0, err
	}
	log, err := s.store.GetRepeatingLog(models.RepeatingKey(s.Today(), slot))
	if errors.Is(err, storage.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load repeating log: %w", err)
	}
	return log.Count, nil
}

// IncrementRepeating adds one to today's counter and returns the new count.
func (s *Service) IncrementRepeating(slot int) (int, error) {
	if err := validateSlot(slot); err != nil {
		return 0, err
	}
	key := models.RepeatingKey(s.Today(), slot)
	log, err := s.store.GetRepeatingLog(key)
	if errors.Is(err, storage.ErrNotFound) {
		log = models.RepeatingLog{ID: uuid.New().String(), DateKey: key}
	} else if err != nil {
		return 0, fmt.Errorf("failed to load repeating log: %w", err)
	}

	log.Count++
	if err := s.store.SaveRepeatingLog(log); err != nil {
		return log.Count, fmt.Errorf("failed to save repeating log: %w", err)
	}
	return log.Count, nil
}

// LogMood records a mood check-in before or after doing the habit.
func (s *Service) LogMood(mood int, habitID string, before bool) (models.MoodEntry, error) {
	if err := validation.ValidateMood(mood); err != nil {
		return models.MoodEntry{}, err
	}
	entry := models.MoodEntry{
		ID:        uuid.New().String(),
		Timestamp: s.now(),
		Mood:      mood,
		IsBefore:  before,
	}
	if habitID != "" {
		entry.HabitID = &habitID
	}
	if err := s.store.AddMoodEntry(entry); err != nil {
		return entry, fmt.Errorf("failed to save mood entry: %w", err)
	}
	return entry, nil
}
