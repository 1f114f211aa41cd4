package journeys

import (
	"fmt"

	"github.com/julianstephens/onefocus/internal/cli"
)

type ResetCmd struct {
	Yes bool `help:"Skip the confirmation prompt." short:"y"`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ok, err := ctx.Confirm("Restart your journey from day 1? Completions and focus time will be cleared.")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	j, err := ctx.Journey.ResetJourney()
	if err != nil {
		return err
	}
	fmt.Printf("✓ Journey restarted on %s.\n", j.StartDate)
	return nil
}

type WipeCmd struct {
	Yes bool `help:"Skip the confirmation prompt." short:"y"`
}

func (c *WipeCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ok, err := ctx.Confirm("Delete all habits, journeys, moods and reflections? Settings are kept.")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Wipe cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.DeleteAllData(); err != nil {
		return fmt.Errorf("failed to delete data: %w", err)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	settings.HasCompletedOnboarding = false
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	fmt.Println("✓ All data deleted. Run 'onefocus onboard' to begin again.")
	return nil
}
