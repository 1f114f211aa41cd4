package journeys

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/julianstephens/onefocus/internal/cli"
	"github.com/julianstephens/onefocus/internal/constants"
	"github.com/julianstephens/onefocus/internal/journey"
	"github.com/julianstephens/onefocus/internal/models"
)

type ExportCmd struct {
	Format string `help:"Output format." enum:"text,json" default:"text"`
	Output string `help:"Write to this file instead of stdout." short:"o" type:"path"`
}

// exportData is everything an export contains.
type exportData struct {
	Journey   models.Journey
	Stats     journey.Stats
	Habits    []models.Habit
	Weeks     []models.WeekCompletion
	Generated time.Time
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	j, err := ctx.Journey.GetOrCreateJourney()
	if err != nil {
		return err
	}
	habits, err := slotHabits(ctx.Store)
	if err != nil {
		return err
	}
	data := exportData{
		Journey:   j,
		Stats:     journey.StatsFor(j, ctx.Journey.Today()),
		Habits:    habits,
		Weeks:     journey.WeeklyCompletion(j),
		Generated: ctx.Journey.Now(),
	}

	var out string
	if c.Format == "json" {
		if out, err = exportJSON(data); err != nil {
			return err
		}
	} else {
		out = exportText(data)
	}

	if c.Output == "" {
		fmt.Println(out)
		return nil
	}
	if err := os.WriteFile(c.Output, []byte(out+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("✓ Exported to %s\n", c.Output)
	return nil
}

func exportText(d exportData) string {
	var b strings.Builder
	b.WriteString("OneFocus Journey Export\n")
	fmt.Fprintf(&b, "Date: %s\n\n", d.Generated.Format("2006-01-02 15:04"))

	b.WriteString("=== JOURNEY ===\n")
	fmt.Fprintf(&b, "Start Date: %s\n", d.Journey.StartDate)
	fmt.Fprintf(&b, "Status: %s\n", d.Journey.Status)
	fmt.Fprintf(&b, "Current Day: %d\n", d.Stats.CurrentDay)
	fmt.Fprintf(&b, "Completed Days: %d\n", d.Stats.CompletedDays)
	fmt.Fprintf(&b, "Flex Days Used: %d\n", d.Journey.FlexDaysUsed)
	fmt.Fprintf(&b, "Total Focus Time: %d minutes\n", d.Journey.TotalFocusTimeSeconds/60)
	fmt.Fprintf(&b, "Current Streak: %d\n", d.Stats.CurrentStreak)

	for _, h := range d.Habits {
		title := "PRIMARY HABIT"
		if h.IsSecondary {
			title = "SECONDARY HABIT"
		}
		fmt.Fprintf(&b, "\n=== %s ===\n", title)
		fmt.Fprintf(&b, "Name: %s\n", h.Name)
		fmt.Fprintf(&b, "Type: %s\n", h.Type.Label())
		fmt.Fprintf(&b, "Trigger: %s\n", h.TriggerDisplayText())
	}
	return strings.TrimRight(b.String(), "\n")
}

// exportJSON builds the export document one path at a time. Failure notes
// are embedded as raw JSON.
func exportJSON(d exportData) (string, error) {
	doc := `{}`
	set := func(path string, value any) error {
		var err error
		doc, err = sjson.Set(doc, path, value)
		if err != nil {
			return fmt.Errorf("failed to build export at %s: %w", path, err)
		}
		return nil
	}

	fields := []struct {
		path  string
		value any
	}{
		{"exportedAt", d.Generated.Format(time.RFC3339)},
		{"version", constants.Version},
		{"journey.id", d.Journey.ID},
		{"journey.startDate", d.Journey.StartDate.String()},
		{"journey.status", string(d.Journey.Status)},
		{"journey.currentDay", d.Stats.CurrentDay},
		{"journey.phase", string(d.Stats.Phase)},
		{"journey.completedDays", d.Journey.CompletedDays},
		{"journey.flexDaysUsed", d.Journey.FlexDaysUsed},
		{"journey.totalFocusTimeSeconds", d.Journey.TotalFocusTimeSeconds},
		{"stats.completionRate", d.Stats.CompletionRate},
		{"stats.currentStreak", d.Stats.CurrentStreak},
		{"stats.bestStreak", d.Stats.BestStreak},
	}
	for _, f := range fields {
		if err := set(f.path, f.value); err != nil {
			return "", err
		}
	}

	var err error
	if notes := d.Journey.FailureAnalysisNotes; notes != nil && gjson.Valid(*notes) {
		if doc, err = sjson.SetRaw(doc, "journey.failureAnalysis", *notes); err != nil {
			return "", fmt.Errorf("failed to embed failure analysis: %w", err)
		}
	}

	if doc, err = sjson.SetRaw(doc, "weeks", "[]"); err != nil {
		return "", fmt.Errorf("failed to build export weeks: %w", err)
	}
	for _, w := range d.Weeks {
		week := map[string]int{"week": w.WeekNumber, "completed": w.CompletedDays, "total": w.TotalDays}
		if doc, err = sjson.Set(doc, "weeks.-1", week); err != nil {
			return "", fmt.Errorf("failed to add week %d: %w", w.WeekNumber, err)
		}
	}

	for _, h := range d.Habits {
		key := "habits.primary"
		if h.IsSecondary {
			key = "habits.secondary"
		}
		for _, f := range []struct {
			path  string
			value any
		}{
			{".name", h.Name},
			{".type", string(h.Type)},
			{".trigger", h.TriggerDisplayText()},
		} {
			if err := set(key+f.path, f.value); err != nil {
				return "", err
			}
		}
	}
	return doc, nil
}
