package storage

import (
	"errors"

	"github.com/julianstephens/onefocus/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Provider is the persistence gateway for every OneFocus record type.
//
// Implementations assume a single writer: one process and one logical session
// per database. Every mutating call is persisted before it returns.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Journeys
	AddJourney(models.Journey) error
	GetJourney(id string) (models.Journey, error)
	// GetCurrentJourney returns the most recently created journey regardless
	// of status. It returns ErrNotFound when no journey exists.
	GetCurrentJourney() (models.Journey, error)
	// GetArchivedJourneys returns every journey that is no longer active,
	// most recently ended first.
	GetArchivedJourneys() ([]models.Journey, error)
	GetAllJourneys() ([]models.Journey, error)
	UpdateJourney(models.Journey) error
	DeleteJourney(id string) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetPrimaryHabit() (models.Habit, error)
	GetSecondaryHabit() (models.Habit, error)
	GetAllHabits() ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	DeleteHabit(id string) error

	// Mood entries
	AddMoodEntry(models.MoodEntry) error
	GetMoodEntries() ([]models.MoodEntry, error)

	// Repeating logs
	GetRepeatingLog(dateKey string) (models.RepeatingLog, error)
	SaveRepeatingLog(models.RepeatingLog) error

	// Reflections
	AddReflection(models.Reflection) error
	// GetReflectionForWeek returns the journey's newest reflection for the week.
	GetReflectionForWeek(journeyID string, weekNumber int) (models.Reflection, error)
	// GetJourneyReflections returns one journey's reflections ordered by
	// week, newest week first.
	GetJourneyReflections(journeyID string) ([]models.Reflection, error)
	// GetAllReflections returns every journey's reflections in the same order.
	GetAllReflections() ([]models.Reflection, error)

	// DeleteAllData removes habits, journeys, mood entries, repeating logs and
	// reflections. Settings are kept.
	DeleteAllData() error

	// Utils
	GetConfigPath() string
}
