package habits

import (
	"errors"
	"fmt"

	"github.com/julianstephens/onefocus/internal/cli"
	"github.com/julianstephens/onefocus/internal/journey"
	"github.com/julianstephens/onefocus/internal/models"
	"github.com/julianstephens/onefocus/internal/storage"
	"github.com/julianstephens/onefocus/internal/tui/forms"
)

type HabitCmd struct {
	Add  HabitAddCmd  `cmd:"" help:"Add the primary habit, or the secondary one from day 21."`
	Show HabitShowCmd `cmd:"" help:"Show your habits." default:"1"`
	Tap  HabitTapCmd  `cmd:"" help:"Count one repetition of a repeating habit."`
}

// HabitFlags describe a habit without the interactive form. Name and type
// are required when any flag is set.
type HabitFlags struct {
	Name        string `help:"Habit name."`
	Type        string `help:"Habit type: binary, timed, increment, reduction or repeating."`
	TriggerType string `help:"When the habit happens." enum:"anchor,throughout,context" default:"anchor"`
	Trigger     string `help:"Trigger text, e.g. 'pour my morning coffee'."`
	Start       string `help:"Starting value for build-up and cut-down habits."`
	Target      string `help:"Target value for build-up and cut-down habits."`
	DailyTarget string `help:"Times per day for repeating habits."`
	Minutes     string `help:"Minutes per day for timed habits."`
}

func (f HabitFlags) set() bool {
	return f.Name != "" || f.Type != ""
}

func (f HabitFlags) input(secondary bool) forms.HabitInput {
	return forms.HabitInput{
		Name:         f.Name,
		Type:         models.HabitType(f.Type),
		TriggerType:  models.TriggerType(f.TriggerType),
		Trigger:      f.Trigger,
		StartValue:   f.Start,
		TargetValue:  f.Target,
		DailyTarget:  f.DailyTarget,
		TimedMinutes: f.Minutes,
		Secondary:    secondary,
	}
}

// readHabit builds a habit from flags, or from the huh form when no flags
// were given.
func readHabit(flags HabitFlags, secondary bool) (models.Habit, error) {
	in := flags.input(secondary)
	if !flags.set() {
		in.Type = models.HabitTypeBinary
		if err := forms.Habit(&in).Run(); err != nil {
			return models.Habit{}, err
		}
	}
	return in.ToHabit()
}

type HabitAddCmd struct {
	HabitFlags `embed:""`
	Secondary  bool `help:"Add the secondary habit."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if c.Secondary {
		ok, err := ctx.Journey.CanAddSecondHabit()
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no secondary slot available: %w", journey.ErrSecondHabitLocked)
		}
	}

	h, err := readHabit(c.HabitFlags, c.Secondary)
	if err != nil {
		return err
	}
	created, err := ctx.Journey.CreateHabit(h)
	if errors.Is(err, journey.ErrHabitExists) {
		return fmt.Errorf("a habit already exists in that slot; see 'onefocus habit show'")
	}
	if err != nil {
		return err
	}

	fmt.Printf("✓ Added habit: %s (%s)\n", created.Name, created.Type.Label())
	return nil
}

type HabitShowCmd struct{}

func (c *HabitShowCmd) Run(ctx *cli.Context) error {
	found := false
	for _, get := range []func() (models.Habit, error){ctx.Store.GetPrimaryHabit, ctx.Store.GetSecondaryHabit} {
		h, err := get()
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to load habit: %w", err)
		}
		found = true
		printHabit(h)
	}
	if !found {
		fmt.Println("No habits yet. Run 'onefocus onboard' to choose one.")
	}
	return nil
}

func printHabit(h models.Habit) {
	slot := "Primary"
	if h.IsSecondary {
		slot = "Secondary"
	}
	fmt.Printf("%s: %s\n", slot, h.Name)
	fmt.Printf("  Type:    %s (%s)\n", h.Type.Label(), h.Type.Description())
	fmt.Printf("  Trigger: %s\n", h.TriggerDisplayText())
	switch h.Type {
	case models.HabitTypeTimed:
		if h.TimedMinutes != nil {
			fmt.Printf("  Minutes: %d\n", *h.TimedMinutes)
		}
	case models.HabitTypeIncrement, models.HabitTypeReduction:
		if h.StartValue != nil && h.TargetValue != nil {
			fmt.Printf("  Range:   %d → %d\n", *h.StartValue, *h.TargetValue)
		}
	case models.HabitTypeRepeating:
		if h.DailyTarget != nil {
			fmt.Printf("  Per day: %d\n", *h.DailyTarget)
		}
	}
	fmt.Printf("  Since:   %s\n", h.CreatedAt.Format("2006-01-02"))
}

type HabitTapCmd struct {
	Secondary bool `help:"Count for the secondary habit."`
}

func (c *HabitTapCmd) Run(ctx *cli.Context) error {
	get := ctx.Store.GetPrimaryHabit
	if c.Secondary {
		get = ctx.Store.GetSecondaryHabit
	}
	h, err := get()
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no habit in that slot")
	}
	if err != nil {
		return fmt.Errorf("failed to load habit: %w", err)
	}
	if h.Type != models.HabitTypeRepeating {
		return fmt.Errorf("%s is not a repeating habit; use 'onefocus done'", h.Name)
	}

	count, err := ctx.Journey.IncrementRepeating(h.SlotIndex())
	if err != nil {
		return err
	}
	target := 0
	if h.DailyTarget != nil {
		target = *h.DailyTarget
	}
	fmt.Printf("%s: %d/%d today\n", h.Name, count, target)

	// Reaching the daily target completes the day.
	if count == target {
		if _, err := ctx.Journey.MarkComplete(h.SlotIndex()); err != nil {
			return err
		}
		fmt.Println("✓ Daily target reached. Day marked complete.")
	}
	return nil
}
