package journeys

import (
	"errors"
	"fmt"

	"github.com/julianstephens/onefocus/internal/cli"
	"github.com/julianstephens/onefocus/internal/constants"
	"github.com/julianstephens/onefocus/internal/journey"
	"github.com/julianstephens/onefocus/internal/models"
	"github.com/julianstephens/onefocus/internal/notifier"
)

type DoneCmd struct {
	Secondary bool `help:"Mark the secondary habit instead of the primary one."`
}

func slotFor(secondary bool) int {
	if secondary {
		return models.SecondarySlot
	}
	return models.PrimarySlot
}

func (c *DoneCmd) Run(ctx *cli.Context) error {
	slot := slotFor(c.Secondary)
	already, err := ctx.Journey.IsCompletedToday(slot)
	if err != nil {
		return err
	}

	j, err := ctx.Journey.MarkComplete(slot)
	if errors.Is(err, journey.ErrJourneyNotActive) {
		return fmt.Errorf("journey is %s; run 'onefocus fresh' to start a new one", j.Status)
	}
	if err != nil {
		return err
	}

	if already {
		fmt.Println("Already marked complete today.")
		return nil
	}
	return printCompletion(ctx)
}

func printCompletion(ctx *cli.Context) error {
	stats, err := ctx.Journey.Stats()
	if err != nil {
		return err
	}
	fmt.Printf("✓ Day %d complete. Streak: %d day(s).\n", stats.CurrentDay, stats.CurrentStreak)

	if m, ok := notifier.Milestone(stats.CurrentDay); ok {
		fmt.Printf("\n%s\n%s\n", m.Title, m.Body)
	}
	if stats.CurrentDay == constants.JourneyLength {
		fmt.Println("\nRun 'onefocus complete' to close out your journey.")
	}
	return nil
}
