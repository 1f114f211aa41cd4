package journeys

import (
	"errors"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/go-cmp/cmp"
	"github.com/tidwall/gjson"

	"github.com/julianstephens/onefocus/internal/cli"
	"github.com/julianstephens/onefocus/internal/journey"
	"github.com/julianstephens/onefocus/internal/models"
	"github.com/julianstephens/onefocus/internal/storage"
	"github.com/julianstephens/onefocus/internal/tui/components/breathing"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func setupTest(t *testing.T) (*cli.Context, *testClock, *storage.JSONStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	clock := &testClock{now: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)}
	ctx := cli.NewContext(store, journey.WithClock(clock.Now), journey.WithLocation(time.UTC))
	return ctx, clock, store
}

// startedDaysAgo backdates the current journey so today is day n+1.
func startedDaysAgo(t *testing.T, ctx *cli.Context, n int, completeAll bool) models.Journey {
	t.Helper()
	j, err := ctx.Journey.GetOrCreateJourney()
	if err != nil {
		t.Fatal(err)
	}
	today := ctx.Journey.Today()
	j.StartDate = today.AddDays(-n)
	if completeAll {
		for d := j.StartDate; !d.After(today); d = d.AddDays(1) {
			j.AddCompletion(models.DateKey(d, models.PrimarySlot))
		}
	}
	if err := ctx.Store.UpdateJourney(j); err != nil {
		t.Fatal(err)
	}
	return j
}

func TestDoneCmd(t *testing.T) {
	ctx, _, store := setupTest(t)

	for i := 0; i < 2; i++ {
		if err := (&DoneCmd{}).Run(ctx); err != nil {
			t.Fatalf("done run %d: %v", i, err)
		}
	}
	if err := (&DoneCmd{Secondary: true}).Run(ctx); err != nil {
		t.Fatalf("done --secondary: %v", err)
	}

	j, err := store.GetCurrentJourney()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"2025-03-10", "2025-03-10_2"}, j.CompletedDays); diff != "" {
		t.Errorf("CompletedDays mismatch (-want +got):\n%s", diff)
	}
}

func TestDoneCmd_InactiveJourney(t *testing.T) {
	ctx, _, _ := setupTest(t)
	if _, err := ctx.Journey.SaveFailureAnalysis("a", "b", "c"); err != nil {
		t.Fatal(err)
	}
	if err := (&DoneCmd{}).Run(ctx); err == nil {
		t.Error("expected error marking a failed journey")
	}
}

func TestFinishFocus(t *testing.T) {
	ctx, _, store := setupTest(t)

	result := breathing.FinishedMsg{Elapsed: 12 * time.Second, Skipped: true}
	if err := finishFocus(ctx, false, result); err != nil {
		t.Fatalf("finishFocus: %v", err)
	}

	j, err := store.GetCurrentJourney()
	if err != nil {
		t.Fatal(err)
	}
	if !j.HasCompletion("2025-03-10") {
		t.Error("skipped session should still complete the day")
	}
	if j.TotalFocusTimeSeconds != 12 {
		t.Errorf("TotalFocusTimeSeconds = %d, want 12", j.TotalFocusTimeSeconds)
	}
}

func TestFocusModelQuitWithoutResult(t *testing.T) {
	m := newFocusModel()
	next, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if next.(focusModel).result != nil {
		t.Error("quitting must not produce a result")
	}
}

func TestFocusModelFinished(t *testing.T) {
	m := newFocusModel()
	next, _ := m.Update(breathing.FinishedMsg{Elapsed: time.Minute})
	got := next.(focusModel).result
	if got == nil || got.Elapsed != time.Minute {
		t.Errorf("result = %+v, want 1m elapsed", got)
	}
}

func TestReflectCmd(t *testing.T) {
	ctx, _, store := setupTest(t)

	// Day 1 has no reflection due.
	if err := (&ReflectCmd{}).Run(ctx); err != nil {
		t.Fatalf("reflect when not due: %v", err)
	}
	if all, _ := store.GetAllReflections(); len(all) != 0 {
		t.Fatalf("got %d reflections, want 0", len(all))
	}

	j := startedDaysAgo(t, ctx, 6, false)
	if err := (&ReflectCmd{Helped: "  morning walks  "}).Run(ctx); err != nil {
		t.Fatalf("reflect: %v", err)
	}
	r, err := store.GetReflectionForWeek(j.ID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if r.WhatHelped != "morning walks" || r.Skipped {
		t.Errorf("unexpected reflection: %+v", r)
	}

	if err := (&ReflectCmd{Week: 2, Skip: true}).Run(ctx); err != nil {
		t.Fatalf("reflect --skip: %v", err)
	}
	r, err = store.GetReflectionForWeek(j.ID, 2)
	if err != nil || !r.Skipped {
		t.Errorf("week 2 = %+v, %v; want skipped", r, err)
	}

	if err := (&ReflectCmd{List: true}).Run(ctx); err != nil {
		t.Errorf("reflect --list: %v", err)
	}
}

func TestAnalyzeCmd_RefusesHealthyJourney(t *testing.T) {
	ctx, _, store := setupTest(t)
	j := startedDaysAgo(t, ctx, 2, true)

	err := (&AnalyzeCmd{WhatWorked: "x"}).Run(ctx)
	if !errors.Is(err, ErrJourneyOnTrack) {
		t.Fatalf("expected ErrJourneyOnTrack, got %v", err)
	}
	got, err := store.GetJourney(j.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.JourneyStatusActive || got.FailureAnalysisNotes != nil {
		t.Errorf("healthy journey was changed: %+v", got)
	}
	if _, err := ctx.Journey.MarkComplete(models.PrimarySlot); err != nil {
		t.Errorf("journey no longer accepts completions: %v", err)
	}
}

func TestAnalyzeCmd_GiveUp(t *testing.T) {
	ctx, _, store := setupTest(t)
	startedDaysAgo(t, ctx, 2, true)

	if err := (&AnalyzeCmd{WhatWorked: "x", GiveUp: true}).Run(ctx); err != nil {
		t.Fatalf("analyze --give-up: %v", err)
	}
	got, err := store.GetCurrentJourney()
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.JourneyStatusFailed {
		t.Errorf("status = %s, want failed", got.Status)
	}
}

func TestFailureFlow(t *testing.T) {
	ctx, clock, store := setupTest(t)
	startedDaysAgo(t, ctx, 10, false)

	if err := (&CheckCmd{}).Run(ctx); err != nil {
		t.Fatalf("check: %v", err)
	}
	if err := (&FreshCmd{}).Run(ctx); err == nil {
		t.Fatal("fresh should refuse while the journey is active")
	}

	cmd := &AnalyzeCmd{WhatWorked: "mornings", WhatDidnt: "travel", NextTime: "pack shoes"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	failed, err := store.GetCurrentJourney()
	if err != nil {
		t.Fatal(err)
	}
	if failed.Status != models.JourneyStatusFailed || !failed.FailureAnalysisCompleted {
		t.Errorf("journey not failed: %+v", failed)
	}
	if err := cmd.Run(ctx); err == nil {
		t.Error("second analyze should fail")
	}

	clock.now = clock.now.Add(time.Hour)
	if err := (&FreshCmd{}).Run(ctx); err != nil {
		t.Fatalf("fresh: %v", err)
	}
	current, err := store.GetCurrentJourney()
	if err != nil {
		t.Fatal(err)
	}
	if current.ID == failed.ID || !current.IsActive() {
		t.Errorf("fresh did not start a new active journey: %+v", current)
	}

	if err := (&HistoryCmd{Notes: true}).Run(ctx); err != nil {
		t.Errorf("history: %v", err)
	}
}

func TestCompleteCmd(t *testing.T) {
	ctx, _, store := setupTest(t)

	startedDaysAgo(t, ctx, 30, true)
	if err := (&CompleteCmd{}).Run(ctx); err == nil {
		t.Fatal("complete should refuse before day 66")
	}

	startedDaysAgo(t, ctx, 65, true)
	if err := (&CompleteCmd{}).Run(ctx); err != nil {
		t.Fatalf("complete: %v", err)
	}
	j, err := store.GetCurrentJourney()
	if err != nil {
		t.Fatal(err)
	}
	if j.Status != models.JourneyStatusCompleted || j.EndDate == nil {
		t.Errorf("journey not completed: %+v", j)
	}
}

func TestBuildHistoryEntry(t *testing.T) {
	start := civil.Date{Year: 2025, Month: time.January, Day: 1}
	end := time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)
	notes := `{"whatWorked":"a","whatDidnt":"b","nextTimeChanges":"c","bestWeek":2,"worstWeek":3}`
	j := models.Journey{
		ID:                   "j1",
		StartDate:            start,
		Status:               models.JourneyStatusFailed,
		EndDate:              &end,
		FailureAnalysisNotes: &notes,
		CompletedDays:        []string{"2025-01-08", "2025-01-09"},
	}

	e := buildHistoryEntry(j)
	if e.BestWeek != 2 || e.WorstWeek != 3 {
		t.Errorf("best/worst = %d/%d, want 2/3", e.BestWeek, e.WorstWeek)
	}
	if e.Stats.CurrentDay != 20 || e.Stats.CompletedDays != 2 {
		t.Errorf("stats = %+v", e.Stats)
	}
	if got := e.Notes.Get("nextTimeChanges").String(); got != "c" {
		t.Errorf("nextTimeChanges = %q", got)
	}

	// Without notes the weeks are recomputed from the ledger.
	j.FailureAnalysisNotes = nil
	e = buildHistoryEntry(j)
	if e.BestWeek != 2 || e.WorstWeek != 1 {
		t.Errorf("recomputed best/worst = %d/%d, want 2/1", e.BestWeek, e.WorstWeek)
	}
}

func testExportData() exportData {
	notes := `{"bestWeek":1,"worstWeek":2}`
	return exportData{
		Journey: models.Journey{
			ID:                    "j1",
			StartDate:             civil.Date{Year: 2025, Month: time.March, Day: 1},
			CompletedDays:         []string{"2025-03-01", "2025-03-02"},
			TotalFocusTimeSeconds: 150,
			Status:                models.JourneyStatusActive,
			FailureAnalysisNotes:  &notes,
		},
		Stats: journey.Stats{CurrentDay: 10, CompletedDays: 2, CurrentStreak: 0, BestStreak: 2, CompletionRate: 0.2},
		Habits: []models.Habit{
			{Name: "Read", Type: models.HabitTypeBinary, TriggerType: models.TriggerAnchor, Trigger: "coffee"},
			{Name: "Stretch", Type: models.HabitTypeTimed, TriggerType: models.TriggerThroughout, IsSecondary: true},
		},
		Weeks:     journey.WeeklyCompletion(models.Journey{StartDate: civil.Date{Year: 2025, Month: time.March, Day: 1}}),
		Generated: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestExportText(t *testing.T) {
	out := exportText(testExportData())
	for _, want := range []string{
		"OneFocus Journey Export",
		"Current Day: 10",
		"Completed Days: 2",
		"Total Focus Time: 2 minutes",
		"=== PRIMARY HABIT ===\nName: Read\nType: Daily\nTrigger: After I coffee",
		"=== SECONDARY HABIT ===\nName: Stretch",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("export missing %q:\n%s", want, out)
		}
	}
}

func TestExportJSON(t *testing.T) {
	out, err := exportJSON(testExportData())
	if err != nil {
		t.Fatalf("exportJSON: %v", err)
	}
	if !gjson.Valid(out) {
		t.Fatalf("invalid JSON: %s", out)
	}

	checks := map[string]string{
		"journey.id":                        "j1",
		"journey.startDate":                 "2025-03-01",
		"journey.currentDay":                "10",
		"journey.completedDays.#":           "2",
		"journey.failureAnalysis.worstWeek": "2",
		"weeks.#":                           "10",
		"weeks.9.total":                     "3",
		"habits.primary.name":               "Read",
		"habits.secondary.trigger":          "Throughout the day",
	}
	for path, want := range checks {
		if got := gjson.Get(out, path).String(); got != want {
			t.Errorf("%s = %q, want %q", path, got, want)
		}
	}
}

func TestExportJSON_SkipsUnreadableNotes(t *testing.T) {
	for _, notes := range []string{"", "{not json", `{"bestWeek":`} {
		d := testExportData()
		d.Journey.FailureAnalysisNotes = &notes

		out, err := exportJSON(d)
		if err != nil {
			t.Fatalf("exportJSON(%q): %v", notes, err)
		}
		if !gjson.Valid(out) {
			t.Fatalf("notes %q produced invalid JSON: %s", notes, out)
		}
		if gjson.Get(out, "journey.failureAnalysis").Exists() {
			t.Errorf("notes %q were embedded", notes)
		}
		if got := gjson.Get(out, "journey.id").String(); got != "j1" {
			t.Errorf("journey.id = %q", got)
		}
	}
}

func TestResetCmd(t *testing.T) {
	ctx, _, store := setupTest(t)
	j := startedDaysAgo(t, ctx, 5, true)

	ctx.In = strings.NewReader("n\n")
	if err := (&ResetCmd{}).Run(ctx); err != nil {
		t.Fatalf("reset (declined): %v", err)
	}
	if got, _ := store.GetJourney(j.ID); got.StartDate != j.StartDate {
		t.Error("declined reset changed the journey")
	}

	ctx.In = strings.NewReader("yes\n")
	if err := (&ResetCmd{}).Run(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	got, err := store.GetJourney(j.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.StartDate != ctx.Journey.Today() || len(got.CompletedDays) != 0 {
		t.Errorf("journey not reset: %+v", got)
	}
}

func TestWipeCmd(t *testing.T) {
	ctx, _, store := setupTest(t)
	if _, err := ctx.Journey.CreateHabit(models.Habit{Name: "Read", Type: models.HabitTypeBinary, TriggerType: models.TriggerThroughout}); err != nil {
		t.Fatal(err)
	}

	if err := (&WipeCmd{Yes: true}).Run(ctx); err != nil {
		t.Fatalf("wipe: %v", err)
	}
	if _, err := store.GetCurrentJourney(); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("journey survived wipe: %v", err)
	}
	settings, err := store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	if settings.HasCompletedOnboarding {
		t.Error("wipe should reset onboarding")
	}
}

func TestStatusAndInsights(t *testing.T) {
	ctx, _, _ := setupTest(t)
	if _, err := ctx.Journey.CreateHabit(models.Habit{
		Name: "Water", Type: models.HabitTypeRepeating, TriggerType: models.TriggerThroughout, DailyTarget: intPtr(8),
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.Journey.LogMood(2, "", true); err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.Journey.LogMood(4, "", false); err != nil {
		t.Fatal(err)
	}

	if err := (&StatusCmd{}).Run(ctx); err != nil {
		t.Errorf("status: %v", err)
	}
	if err := (&InsightsCmd{}).Run(ctx); err != nil {
		t.Errorf("insights: %v", err)
	}
}

func TestAverageMoods(t *testing.T) {
	if _, _, ok := averageMoods(nil); ok {
		t.Error("expected ok=false without entries")
	}
	entries := []models.MoodEntry{
		{Mood: 2, IsBefore: true},
		{Mood: 3, IsBefore: true},
		{Mood: 5},
	}
	before, after, ok := averageMoods(entries)
	if !ok || before != 2.5 || after != 5 {
		t.Errorf("averageMoods = %v, %v, %v", before, after, ok)
	}
}

func intPtr(v int) *int { return &v }
