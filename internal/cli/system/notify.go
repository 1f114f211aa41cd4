package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/onefocus/internal/cli"
	"github.com/julianstephens/onefocus/internal/constants"
	"github.com/julianstephens/onefocus/internal/models"
	"github.com/julianstephens/onefocus/internal/notifier"
	"github.com/julianstephens/onefocus/internal/storage"
)

type NotifyCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
	Force  bool `help:"Send regardless of the configured notification time."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if !settings.NotificationsEnabled {
		if c.DryRun {
			fmt.Println("Notifications are disabled in settings.")
		}
		return nil
	}

	// The tray calls this every minute; only the configured minute sends.
	now := ctx.Journey.Now()
	if !c.Force && settings.NotificationTime != "" && now.Format(constants.TimeFormat) != settings.NotificationTime {
		if c.DryRun {
			fmt.Printf("Not notification time yet (%s).\n", settings.NotificationTime)
		}
		return nil
	}

	j, err := ctx.Journey.GetOrCreateJourney()
	if err != nil {
		return err
	}
	if !j.IsActive() {
		if c.DryRun {
			fmt.Printf("Journey is %s; nothing to remind.\n", j.Status)
		}
		return nil
	}

	day, err := ctx.Journey.CurrentDay()
	if err != nil {
		return err
	}
	done, err := ctx.Journey.IsCompletedToday(models.PrimarySlot)
	if err != nil {
		return err
	}

	var primary *models.Habit
	h, err := ctx.Store.GetPrimaryHabit()
	switch {
	case err == nil:
		primary = &h
	case errors.Is(err, storage.ErrNotFound):
	default:
		return fmt.Errorf("failed to load primary habit: %w", err)
	}

	msg, ok := notifier.ForDay(day, done, primary)
	if !ok {
		if c.DryRun {
			fmt.Println("Habit already completed today.")
		}
		return nil
	}

	if c.DryRun {
		fmt.Printf("[DRY RUN] %s: %s\n", msg.Title, msg.Body)
		return nil
	}

	if err := notifier.New().Send(msg, notifier.OptionsFromSettings(settings)); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}
