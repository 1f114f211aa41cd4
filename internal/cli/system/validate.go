package system

import (
	"fmt"

	"github.com/julianstephens/onefocus/internal/cli"
	"github.com/julianstephens/onefocus/internal/validation"
)

type ValidateCmd struct {
	Fix bool `help:"Remove unreadable completion keys from journeys."`
}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}
	journeys, err := ctx.Store.GetAllJourneys()
	if err != nil {
		return fmt.Errorf("failed to load journeys: %w", err)
	}

	validator := validation.New()

	fmt.Println("Validating settings...")
	settingsResult := validator.ValidateSettings(settings)
	fmt.Println("Validating habits...")
	habitResult := validator.ValidateHabits(habits)
	fmt.Println("Validating journeys...")
	journeyResult := validator.ValidateJourneys(journeys)

	var allConflicts []validation.Conflict
	allConflicts = append(allConflicts, settingsResult.Conflicts...)
	allConflicts = append(allConflicts, habitResult.Conflicts...)
	allConflicts = append(allConflicts, journeyResult.Conflicts...)
	combined := validation.ValidationResult{Conflicts: allConflicts}

	fmt.Println()
	fmt.Println(combined.FormatReport())

	if cmd.Fix && combined.HasConflicts() {
		// Back up before rewriting journeys
		ctx.PerformAutomaticBackup()

		actions := validation.AutoFixInvalidDateKeys(journeyResult.Conflicts, journeys, ctx.Store.UpdateJourney)
		if len(actions) == 0 {
			fmt.Println("Nothing to fix automatically.")
		}
		for _, a := range actions {
			fmt.Printf("  %s\n", a.Action)
		}
	}

	return nil
}
