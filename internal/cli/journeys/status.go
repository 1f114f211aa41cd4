package journeys

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/julianstephens/onefocus/internal/cli"
	"github.com/julianstephens/onefocus/internal/constants"
	"github.com/julianstephens/onefocus/internal/models"
	"github.com/julianstephens/onefocus/internal/storage"
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	j, err := ctx.Journey.GetOrCreateJourney()
	if err != nil {
		return err
	}
	stats, err := ctx.Journey.Stats()
	if err != nil {
		return err
	}

	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))
	fmt.Printf("Day %d of %d · %s\n", stats.CurrentDay, constants.JourneyLength, stats.Phase)
	fmt.Printf("%s\n\n", bar.ViewAs(stats.Progress))

	if !j.IsActive() {
		fmt.Printf("Journey %s.\n", j.Status)
		fmt.Println("Run 'onefocus fresh' to begin a new journey.")
		return nil
	}

	habits, err := slotHabits(ctx.Store)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habit yet. Run 'onefocus onboard' to choose one.")
	}
	for _, h := range habits {
		done, err := ctx.Journey.IsCompletedToday(h.SlotIndex())
		if err != nil {
			return err
		}
		mark := "○"
		if done {
			mark = "●"
		}
		line := fmt.Sprintf("%s %s (%s)", mark, h.Name, h.TriggerDisplayText())
		if h.Type == models.HabitTypeRepeating && h.DailyTarget != nil {
			count, err := ctx.Journey.RepeatingCount(h.SlotIndex())
			if err != nil {
				return err
			}
			line += fmt.Sprintf(" %d/%d", count, *h.DailyTarget)
		}
		fmt.Println(line)
	}

	fmt.Println()
	fmt.Printf("Streak:          %d day(s)\n", stats.CurrentStreak)
	fmt.Printf("Flex days left:  %d\n", stats.FlexDaysRemaining)
	fmt.Printf("Focus time:      %s\n", stats.FocusTime())

	if due, week, err := ctx.Journey.IsReflectionDue(); err != nil {
		return err
	} else if due {
		fmt.Printf("\nWeek %d reflection is due. Run 'onefocus reflect'.\n", week)
	}
	if ok, err := ctx.Journey.CanAddSecondHabit(); err != nil {
		return err
	} else if ok {
		fmt.Println("\nYou can add a second habit now: 'onefocus habit add --secondary'.")
	}
	if failed, err := ctx.Journey.CheckJourneyFailure(); err != nil {
		return err
	} else if failed {
		fmt.Println("\nThis journey can no longer reach 66 days. Run 'onefocus analyze' to reflect on it.")
	}
	return nil
}

// slotHabits returns the primary and, when present, the secondary habit.
func slotHabits(store storage.Provider) ([]models.Habit, error) {
	var habits []models.Habit
	for _, get := range []func() (models.Habit, error){store.GetPrimaryHabit, store.GetSecondaryHabit} {
		h, err := get()
		switch {
		case err == nil:
			habits = append(habits, h)
		case errors.Is(err, storage.ErrNotFound):
		default:
			return nil, fmt.Errorf("failed to load habit: %w", err)
		}
	}
	return habits, nil
}
