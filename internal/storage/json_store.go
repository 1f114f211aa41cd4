package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/julianstephens/onefocus/internal/models"
)

type Store struct {
	Version       int                            `json:"version"`
	Settings      models.Settings                `json:"settings"`
	Journeys      map[string]models.Journey      `json:"journeys"`
	Habits        map[string]models.Habit        `json:"habits"`
	MoodEntries   map[string]models.MoodEntry    `json:"mood_entries"`
	RepeatingLogs map[string]models.RepeatingLog `json:"repeating_logs"` // keyed by date key
	Reflections   map[string]models.Reflection   `json:"reflections"`
}

// JSONStore keeps every record in memory and flushes the whole document to a
// JSON file after each mutation. A JSONStore with an empty path never touches
// the filesystem.
type JSONStore struct {
	mu    sync.Mutex
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

// NewMemoryStore returns an initialized, memory-only store.
func NewMemoryStore() *JSONStore {
	s := &JSONStore{}
	s.store = newStore()
	return s
}

func newStore() *Store {
	return &Store{
		Version:       1,
		Settings:      models.DefaultSettings(),
		Journeys:      make(map[string]models.Journey),
		Habits:        make(map[string]models.Habit),
		MoodEntries:   make(map[string]models.MoodEntry),
		RepeatingLogs: make(map[string]models.RepeatingLog),
		Reflections:   make(map[string]models.Reflection),
	}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		if s.store == nil {
			s.store = newStore()
		}
		return nil
	}

	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = newStore()
	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store != nil {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'onefocus init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	store := &Store{}
	if err := json.Unmarshal(data, store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if store.Journeys == nil {
		store.Journeys = make(map[string]models.Journey)
	}
	if store.Habits == nil {
		store.Habits = make(map[string]models.Habit)
	}
	if store.MoodEntries == nil {
		store.MoodEntries = make(map[string]models.MoodEntry)
	}
	if store.RepeatingLogs == nil {
		store.RepeatingLogs = make(map[string]models.RepeatingLog)
	}
	if store.Reflections == nil {
		store.Reflections = make(map[string]models.Reflection)
	}
	models.ApplyDefaultSettings(&store.Settings)

	s.store = store
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) loaded() error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return models.Settings{}, err
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Settings = settings
	return s.save()
}

// Journeys

func copyJourney(j models.Journey) models.Journey {
	j.CompletedDays = append([]string{}, j.CompletedDays...)
	return j
}

func (s *JSONStore) AddJourney(journey models.Journey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.store.Journeys[journey.ID]; ok {
		return fmt.Errorf("journey already exists: %s", journey.ID)
	}
	s.store.Journeys[journey.ID] = copyJourney(journey)
	return s.save()
}

func (s *JSONStore) GetJourney(id string) (models.Journey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return models.Journey{}, err
	}
	j, ok := s.store.Journeys[id]
	if !ok {
		return models.Journey{}, fmt.Errorf("journey %s: %w", id, ErrNotFound)
	}
	return copyJourney(j), nil
}

// sortedJourneys returns all journeys, most recently created first.
func (s *JSONStore) sortedJourneys() []models.Journey {
	journeys := make([]models.Journey, 0, len(s.store.Journeys))
	for _, j := range s.store.Journeys {
		journeys = append(journeys, copyJourney(j))
	}
	sort.SliceStable(journeys, func(i, k int) bool {
		if journeys[i].CreatedAt.Equal(journeys[k].CreatedAt) {
			return journeys[i].ID > journeys[k].ID
		}
		return journeys[i].CreatedAt.After(journeys[k].CreatedAt)
	})
	return journeys
}

func (s *JSONStore) GetCurrentJourney() (models.Journey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return models.Journey{}, err
	}
	journeys := s.sortedJourneys()
	if len(journeys) == 0 {
		return models.Journey{}, fmt.Errorf("current journey: %w", ErrNotFound)
	}
	return journeys[0], nil
}

func (s *JSONStore) GetAllJourneys() ([]models.Journey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return s.sortedJourneys(), nil
}

func (s *JSONStore) GetArchivedJourneys() ([]models.Journey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return nil, err
	}

	var archived []models.Journey
	for _, j := range s.sortedJourneys() {
		if j.Status != models.JourneyStatusActive {
			archived = append(archived, j)
		}
	}
	sort.SliceStable(archived, func(i, k int) bool {
		a, b := archived[i].EndDate, archived[k].EndDate
		if a == nil || b == nil {
			return a != nil
		}
		return a.After(*b)
	})
	return archived, nil
}

func (s *JSONStore) UpdateJourney(journey models.Journey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.store.Journeys[journey.ID]; !ok {
		return fmt.Errorf("journey %s: %w", journey.ID, ErrNotFound)
	}
	s.store.Journeys[journey.ID] = copyJourney(journey)
	return s.save()
}

func (s *JSONStore) DeleteJourney(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.store.Journeys[id]; !ok {
		return fmt.Errorf("journey %s: %w", id, ErrNotFound)
	}
	delete(s.store.Journeys, id)
	return s.save()
}

// Habits

func (s *JSONStore) AddHabit(habit models.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) GetHabit(id string) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return models.Habit{}, err
	}
	h, ok := s.store.Habits[id]
	if !ok {
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}
	return h, nil
}

// sortedHabits returns all habits, oldest first.
func (s *JSONStore) sortedHabits() []models.Habit {
	habits := make([]models.Habit, 0, len(s.store.Habits))
	for _, h := range s.store.Habits {
		habits = append(habits, h)
	}
	sort.SliceStable(habits, func(i, k int) bool {
		return habits[i].CreatedAt.Before(habits[k].CreatedAt)
	})
	return habits
}

func (s *JSONStore) firstHabit(secondary bool) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return models.Habit{}, err
	}
	for _, h := range s.sortedHabits() {
		if h.IsSecondary == secondary {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit: %w", ErrNotFound)
}

func (s *JSONStore) GetPrimaryHabit() (models.Habit, error) {
	return s.firstHabit(false)
}

func (s *JSONStore) GetSecondaryHabit() (models.Habit, error) {
	return s.firstHabit(true)
}

func (s *JSONStore) GetAllHabits() ([]models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return s.sortedHabits(), nil
}

func (s *JSONStore) UpdateHabit(habit models.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.store.Habits[habit.ID]; !ok {
		return fmt.Errorf("habit %s: %w", habit.ID, ErrNotFound)
	}
	s.store.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) DeleteHabit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.store.Habits[id]; !ok {
		return fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}
	delete(s.store.Habits, id)
	return s.save()
}

// Mood entries

func (s *JSONStore) AddMoodEntry(entry models.MoodEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.MoodEntries[entry.ID] = entry
	return s.save()
}

func (s *JSONStore) GetMoodEntries() ([]models.MoodEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return nil, err
	}
	entries := make([]models.MoodEntry, 0, len(s.store.MoodEntries))
	for _, e := range s.store.MoodEntries {
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, k int) bool {
		return entries[i].Timestamp.Before(entries[k].Timestamp)
	})
	return entries, nil
}

// Repeating logs

func (s *JSONStore) GetRepeatingLog(dateKey string) (models.RepeatingLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return models.RepeatingLog{}, err
	}
	log, ok := s.store.RepeatingLogs[dateKey]
	if !ok {
		return models.RepeatingLog{}, fmt.Errorf("repeating log %s: %w", dateKey, ErrNotFound)
	}
	return log, nil
}

func (s *JSONStore) SaveRepeatingLog(log models.RepeatingLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.RepeatingLogs[log.DateKey] = log
	return s.save()
}

// Reflections

func (s *JSONStore) AddReflection(reflection models.Reflection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Reflections[reflection.ID] = reflection
	return s.save()
}

func (s *JSONStore) GetReflectionForWeek(journeyID string, weekNumber int) (models.Reflection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return models.Reflection{}, err
	}

	var latest *models.Reflection
	for _, r := range s.store.Reflections {
		if r.JourneyID != journeyID || r.WeekNumber != weekNumber {
			continue
		}
		if latest == nil || r.CreatedAt.After(latest.CreatedAt) {
			r := r
			latest = &r
		}
	}
	if latest == nil {
		return models.Reflection{}, fmt.Errorf("reflection for week %d: %w", weekNumber, ErrNotFound)
	}
	return *latest, nil
}

func (s *JSONStore) GetAllReflections() ([]models.Reflection, error) {
	return s.reflections(func(models.Reflection) bool { return true })
}

func (s *JSONStore) GetJourneyReflections(journeyID string) ([]models.Reflection, error) {
	return s.reflections(func(r models.Reflection) bool { return r.JourneyID == journeyID })
}

func (s *JSONStore) reflections(keep func(models.Reflection) bool) ([]models.Reflection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return nil, err
	}
	reflections := make([]models.Reflection, 0, len(s.store.Reflections))
	for _, r := range s.store.Reflections {
		if keep(r) {
			reflections = append(reflections, r)
		}
	}
	sort.SliceStable(reflections, func(i, k int) bool {
		if reflections[i].WeekNumber == reflections[k].WeekNumber {
			return reflections[i].CreatedAt.After(reflections[k].CreatedAt)
		}
		return reflections[i].WeekNumber > reflections[k].WeekNumber
	})
	return reflections, nil
}

func (s *JSONStore) DeleteAllData() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}
	settings := s.store.Settings
	s.store = newStore()
	s.store.Settings = settings
	return s.save()
}

// GetConfigPath returns the path to the underlying storage file.
//
// Concurrency note:
//   - Running multiple onefocus processes that share the same storage path at the
//     same time is not supported and may lead to data loss.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
