package habits

import (
	"errors"
	"fmt"

	"github.com/julianstephens/onefocus/internal/cli"
	"github.com/julianstephens/onefocus/internal/models"
	"github.com/julianstephens/onefocus/internal/storage"
	"github.com/julianstephens/onefocus/internal/tui/forms"
)

type MoodCmd struct {
	Mood   int  `arg:"" optional:"" help:"Mood from 1 (terrible) to 5 (great). Prompts when omitted."`
	Before bool `help:"Record how you feel before doing the habit."`
}

func (c *MoodCmd) Run(ctx *cli.Context) error {
	mood := c.Mood
	if mood == 0 {
		if err := forms.Mood(&mood, c.Before).Run(); err != nil {
			return err
		}
	}

	habitID := ""
	h, err := ctx.Store.GetPrimaryHabit()
	switch {
	case err == nil:
		habitID = h.ID
	case errors.Is(err, storage.ErrNotFound):
	default:
		return fmt.Errorf("failed to load primary habit: %w", err)
	}

	entry, err := ctx.Journey.LogMood(mood, habitID, c.Before)
	if err != nil {
		return err
	}
	fmt.Printf("Logged mood: %s\n", models.MoodLabel(entry.Mood))
	return nil
}
