// Package storagetest holds behavior checks shared by every storage.Provider
// implementation.
package storagetest

import (
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/onefocus/internal/models"
	"github.com/julianstephens/onefocus/internal/storage"
)

var base = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

// RunProviderTests exercises the full Provider contract against an
// initialized, empty store returned by newStore.
func RunProviderTests(t *testing.T, newStore func(t *testing.T) storage.Provider) {
	t.Run("Settings", func(t *testing.T) {
		store := newStore(t)

		settings, err := store.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings failed: %v", err)
		}
		if diff := cmp.Diff(models.DefaultSettings(), settings); diff != "" {
			t.Errorf("default settings mismatch (-want +got):\n%s", diff)
		}

		settings.Timezone = "America/New_York"
		settings.NotificationsEnabled = true
		settings.HasCompletedOnboarding = true
		if err := store.SaveSettings(settings); err != nil {
			t.Fatalf("SaveSettings failed: %v", err)
		}
		got, err := store.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings failed: %v", err)
		}
		if diff := cmp.Diff(settings, got); diff != "" {
			t.Errorf("settings mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Journeys", func(t *testing.T) {
		store := newStore(t)

		if _, err := store.GetCurrentJourney(); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on empty store, got %v", err)
		}

		first := models.NewJourney(civil.Date{Year: 2024, Month: 1, Day: 1}, base)
		first.AddCompletion("2024-01-01")
		first.AddCompletion("2024-01-02_2")
		first.TotalFocusTimeSeconds = 120
		if err := store.AddJourney(first); err != nil {
			t.Fatalf("AddJourney failed: %v", err)
		}

		got, err := store.GetJourney(first.ID)
		if err != nil {
			t.Fatalf("GetJourney failed: %v", err)
		}
		if diff := cmp.Diff(first, got, timeEqual()); diff != "" {
			t.Errorf("journey mismatch (-want +got):\n%s", diff)
		}

		notes := `{"whatWorked":"mornings"}`
		end := base.Add(48 * time.Hour)
		first.Status = models.JourneyStatusFailed
		first.FailureAnalysisNotes = &notes
		first.FailureAnalysisCompleted = true
		first.EndDate = &end
		first.AddCompletion("2024-01-03")
		if err := store.UpdateJourney(first); err != nil {
			t.Fatalf("UpdateJourney failed: %v", err)
		}

		second := models.NewJourney(civil.Date{Year: 2024, Month: 2, Day: 1}, base.Add(time.Hour))
		if err := store.AddJourney(second); err != nil {
			t.Fatalf("AddJourney failed: %v", err)
		}

		current, err := store.GetCurrentJourney()
		if err != nil {
			t.Fatalf("GetCurrentJourney failed: %v", err)
		}
		if current.ID != second.ID {
			t.Errorf("expected newest journey %s, got %s", second.ID, current.ID)
		}

		archived, err := store.GetArchivedJourneys()
		if err != nil {
			t.Fatalf("GetArchivedJourneys failed: %v", err)
		}
		if len(archived) != 1 || archived[0].ID != first.ID {
			t.Fatalf("expected only the failed journey archived, got %+v", archived)
		}
		if diff := cmp.Diff(first, archived[0], timeEqual()); diff != "" {
			t.Errorf("archived journey mismatch (-want +got):\n%s", diff)
		}

		all, err := store.GetAllJourneys()
		if err != nil {
			t.Fatalf("GetAllJourneys failed: %v", err)
		}
		if len(all) != 2 || all[0].ID != second.ID {
			t.Errorf("expected 2 journeys newest first, got %d", len(all))
		}

		if err := store.DeleteJourney(first.ID); err != nil {
			t.Fatalf("DeleteJourney failed: %v", err)
		}
		if _, err := store.GetJourney(first.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
		if err := store.UpdateJourney(first); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound updating a deleted journey, got %v", err)
		}
	})

	t.Run("Habits", func(t *testing.T) {
		store := newStore(t)

		primary := models.Habit{
			ID:          "habit-1",
			Name:        "Read 10 pages",
			Type:        models.HabitTypeIncrement,
			Trigger:     "pour my coffee",
			TriggerType: models.TriggerAnchor,
			StartValue:  intPtr(10),
			TargetValue: intPtr(30),
			CreatedAt:   base,
		}
		secondary := models.Habit{
			ID:          "habit-2",
			Name:        "Drink water",
			Type:        models.HabitTypeRepeating,
			TriggerType: models.TriggerThroughout,
			DailyTarget: intPtr(8),
			CreatedAt:   base.Add(time.Hour),
			IsSecondary: true,
		}
		for _, h := range []models.Habit{secondary, primary} {
			if err := store.AddHabit(h); err != nil {
				t.Fatalf("AddHabit failed: %v", err)
			}
		}

		got, err := store.GetPrimaryHabit()
		if err != nil {
			t.Fatalf("GetPrimaryHabit failed: %v", err)
		}
		if diff := cmp.Diff(primary, got, timeEqual()); diff != "" {
			t.Errorf("primary habit mismatch (-want +got):\n%s", diff)
		}

		got, err = store.GetSecondaryHabit()
		if err != nil {
			t.Fatalf("GetSecondaryHabit failed: %v", err)
		}
		if got.ID != secondary.ID || got.SlotIndex() != models.SecondarySlot {
			t.Errorf("unexpected secondary habit %+v", got)
		}

		primary.CurrentValue = intPtr(15)
		if err := store.UpdateHabit(primary); err != nil {
			t.Fatalf("UpdateHabit failed: %v", err)
		}
		got, err = store.GetHabit(primary.ID)
		if err != nil {
			t.Fatalf("GetHabit failed: %v", err)
		}
		if got.CurrentValue == nil || *got.CurrentValue != 15 {
			t.Errorf("expected current value 15, got %v", got.CurrentValue)
		}

		all, err := store.GetAllHabits()
		if err != nil {
			t.Fatalf("GetAllHabits failed: %v", err)
		}
		if len(all) != 2 || all[0].ID != primary.ID {
			t.Errorf("expected habits oldest first, got %+v", all)
		}

		if err := store.DeleteHabit(secondary.ID); err != nil {
			t.Fatalf("DeleteHabit failed: %v", err)
		}
		if _, err := store.GetSecondaryHabit(); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("MoodsAndRepeatingLogs", func(t *testing.T) {
		store := newStore(t)

		habitID := "habit-1"
		entries := []models.MoodEntry{
			{ID: "m2", Timestamp: base.Add(time.Hour), Mood: 4, HabitID: &habitID, IsBefore: false},
			{ID: "m1", Timestamp: base, Mood: 2, IsBefore: true},
		}
		for _, e := range entries {
			if err := store.AddMoodEntry(e); err != nil {
				t.Fatalf("AddMoodEntry failed: %v", err)
			}
		}
		got, err := store.GetMoodEntries()
		if err != nil {
			t.Fatalf("GetMoodEntries failed: %v", err)
		}
		want := []models.MoodEntry{entries[1], entries[0]}
		if diff := cmp.Diff(want, got, timeEqual()); diff != "" {
			t.Errorf("mood entries mismatch (-want +got):\n%s", diff)
		}

		key := models.RepeatingKey(civil.Date{Year: 2024, Month: 3, Day: 1}, models.PrimarySlot)
		if _, err := store.GetRepeatingLog(key); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound for missing log, got %v", err)
		}
		log := models.RepeatingLog{ID: "r1", DateKey: key, Count: 1}
		if err := store.SaveRepeatingLog(log); err != nil {
			t.Fatalf("SaveRepeatingLog failed: %v", err)
		}
		log.Count = 2
		if err := store.SaveRepeatingLog(log); err != nil {
			t.Fatalf("SaveRepeatingLog upsert failed: %v", err)
		}
		gotLog, err := store.GetRepeatingLog(key)
		if err != nil {
			t.Fatalf("GetRepeatingLog failed: %v", err)
		}
		if gotLog.Count != 2 {
			t.Errorf("expected count 2, got %d", gotLog.Count)
		}
	})

	t.Run("Reflections", func(t *testing.T) {
		store := newStore(t)

		reflections := []models.Reflection{
			{ID: "r1", JourneyID: "j1", CreatedAt: base, WeekNumber: 1, WhatHelped: "alarm"},
			{ID: "r2", JourneyID: "j2", CreatedAt: base.Add(7 * 24 * time.Hour), WeekNumber: 2, Skipped: true},
			{ID: "r3", JourneyID: "j1", CreatedAt: base.Add(time.Hour), WeekNumber: 1, PatternsNoticed: "weekends"},
			{ID: "r4", JourneyID: "j2", CreatedAt: base.Add(2 * time.Hour), WeekNumber: 1, WhatHindered: "travel"},
		}
		for _, r := range reflections {
			if err := store.AddReflection(r); err != nil {
				t.Fatalf("AddReflection failed: %v", err)
			}
		}

		got, err := store.GetReflectionForWeek("j1", 1)
		if err != nil {
			t.Fatalf("GetReflectionForWeek failed: %v", err)
		}
		if got.ID != "r3" || got.JourneyID != "j1" {
			t.Errorf("expected newest j1 week 1 reflection r3, got %s (%s)", got.ID, got.JourneyID)
		}
		if got, err := store.GetReflectionForWeek("j2", 1); err != nil || got.ID != "r4" {
			t.Errorf("expected j2 week 1 reflection r4, got %s, %v", got.ID, err)
		}
		if _, err := store.GetReflectionForWeek("j1", 2); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound for another journey's week 2, got %v", err)
		}
		if _, err := store.GetReflectionForWeek("j1", 5); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound for week 5, got %v", err)
		}

		mine, err := store.GetJourneyReflections("j1")
		if err != nil {
			t.Fatalf("GetJourneyReflections failed: %v", err)
		}
		var mineIDs []string
		for _, r := range mine {
			mineIDs = append(mineIDs, r.ID)
		}
		if diff := cmp.Diff([]string{"r3", "r1"}, mineIDs); diff != "" {
			t.Errorf("journey reflections mismatch (-want +got):\n%s", diff)
		}

		all, err := store.GetAllReflections()
		if err != nil {
			t.Fatalf("GetAllReflections failed: %v", err)
		}
		var ids []string
		for _, r := range all {
			ids = append(ids, r.ID)
		}
		if diff := cmp.Diff([]string{"r2", "r4", "r3", "r1"}, ids); diff != "" {
			t.Errorf("reflection order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("DeleteAllData", func(t *testing.T) {
		store := newStore(t)

		settings, err := store.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings failed: %v", err)
		}
		settings.HasCompletedOnboarding = true
		if err := store.SaveSettings(settings); err != nil {
			t.Fatalf("SaveSettings failed: %v", err)
		}

		j := models.NewJourney(civil.Date{Year: 2024, Month: 1, Day: 1}, base)
		j.AddCompletion("2024-01-01")
		if err := store.AddJourney(j); err != nil {
			t.Fatalf("AddJourney failed: %v", err)
		}
		if err := store.AddHabit(models.Habit{ID: "h", Name: "Walk", Type: models.HabitTypeBinary, TriggerType: models.TriggerThroughout, CreatedAt: base}); err != nil {
			t.Fatalf("AddHabit failed: %v", err)
		}

		if err := store.DeleteAllData(); err != nil {
			t.Fatalf("DeleteAllData failed: %v", err)
		}

		if _, err := store.GetCurrentJourney(); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected no journeys after DeleteAllData, got %v", err)
		}
		if habits, _ := store.GetAllHabits(); len(habits) != 0 {
			t.Errorf("expected no habits after DeleteAllData, got %d", len(habits))
		}
		kept, err := store.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings failed: %v", err)
		}
		if !kept.HasCompletedOnboarding {
			t.Error("DeleteAllData must keep settings")
		}
	})
}

// timeEqual compares timestamps by instant so that location and monotonic
// clock readings lost in storage do not count as differences.
func timeEqual() cmp.Option {
	return cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) })
}
