package journeys

import (
	"fmt"

	"github.com/julianstephens/onefocus/internal/cli"
	"github.com/julianstephens/onefocus/internal/journey"
	"github.com/julianstephens/onefocus/internal/models"
	"github.com/julianstephens/onefocus/internal/tui/components/heatmap"
)

type InsightsCmd struct {
	NoHeatmap bool `help:"Hide the 66-day grid."`
}

func (c *InsightsCmd) Run(ctx *cli.Context) error {
	stats, err := ctx.Journey.Stats()
	if err != nil {
		return err
	}
	weeks, err := ctx.Journey.WeeklyCompletion()
	if err != nil {
		return err
	}

	fmt.Println("Insights")
	fmt.Printf("  Completion rate:  %s\n", cli.FormatPercent(stats.CompletionRate))
	fmt.Printf("  Days completed:   %d\n", stats.CompletedDays)
	fmt.Printf("  Current streak:   %d\n", stats.CurrentStreak)
	fmt.Printf("  Best streak:      %d\n", stats.BestStreak)
	fmt.Printf("  Focus time:       %s\n", stats.FocusTime())

	best, worst := journey.BestAndWorstWeek(weeks)
	fmt.Printf("  Best week:        %d\n", best)
	fmt.Printf("  Toughest week:    %d\n", worst)

	moods, err := ctx.Store.GetMoodEntries()
	if err != nil {
		return fmt.Errorf("failed to load mood entries: %w", err)
	}
	if before, after, ok := averageMoods(moods); ok {
		fmt.Printf("  Mood before:      %.1f\n", before)
		fmt.Printf("  Mood after:       %.1f\n", after)
	}

	fmt.Println()
	fmt.Println(heatmap.RenderWeeks(weeks))

	if !c.NoHeatmap {
		days, err := ctx.Journey.Heatmap()
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(heatmap.Render(days))
	}
	return nil
}

// averageMoods returns the mean before and after moods. ok is false when
// either side has no entries.
func averageMoods(entries []models.MoodEntry) (before, after float64, ok bool) {
	var sumBefore, sumAfter, nBefore, nAfter int
	for _, e := range entries {
		if e.IsBefore {
			sumBefore += e.Mood
			nBefore++
		} else {
			sumAfter += e.Mood
			nAfter++
		}
	}
	if nBefore == 0 || nAfter == 0 {
		return 0, 0, false
	}
	return float64(sumBefore) / float64(nBefore), float64(sumAfter) / float64(nAfter), true
}
