package habits

import (
	"errors"
	"fmt"

	"github.com/julianstephens/onefocus/internal/cli"
	"github.com/julianstephens/onefocus/internal/constants"
	"github.com/julianstephens/onefocus/internal/storage"
)

type OnboardCmd struct {
	HabitFlags `embed:""`
}

func (c *OnboardCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.HasCompletedOnboarding {
		if _, err := ctx.Store.GetPrimaryHabit(); err == nil {
			fmt.Println("You're already on your journey. See 'onefocus status'.")
			return nil
		} else if !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("failed to load primary habit: %w", err)
		}
	}

	if !c.set() {
		fmt.Println("Welcome to OneFocus.")
		fmt.Printf("One habit, %d days. Miss %d days in a row and the journey starts over.\n\n",
			constants.JourneyLength, constants.ConsecutiveMissLimit)
	}

	h, err := readHabit(c.HabitFlags, false)
	if err != nil {
		return err
	}
	created, err := ctx.Journey.CreateHabit(h)
	if err != nil {
		return err
	}

	day, err := ctx.Journey.CurrentDay()
	if err != nil {
		return err
	}
	fmt.Printf("✓ %s is your focus. Day %d of %d starts now.\n", created.Name, day, constants.JourneyLength)
	return nil
}
