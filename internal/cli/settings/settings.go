package settings

import (
	"fmt"

	"github.com/julianstephens/onefocus/internal/cli"
	"github.com/julianstephens/onefocus/internal/validation"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone             *string `help:"IANA timezone used to decide what 'today' is, or 'Local'."`
	NotificationsEnabled *bool   `help:"Enable or disable reminders."`
	NotificationTime     *string `help:"Daily reminder time (HH:MM)."`
	NotificationSound    *bool   `help:"Play a sound with reminders."`
	BadgeEnabled         *bool   `help:"Show a badge in the tray while the habit is open."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:              %s\n", settings.Timezone)
		fmt.Printf("  Onboarding Complete:   %v\n", settings.HasCompletedOnboarding)
		fmt.Println("\nNotification Settings:")
		fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		fmt.Printf("  Notification Time:     %s\n", settings.NotificationTime)
		fmt.Printf("  Sound:                 %v\n", settings.NotificationSound)
		fmt.Printf("  Badge:                 %v\n", settings.BadgeEnabled)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.NotificationTime != nil {
		settings.NotificationTime = *c.NotificationTime
		updated = true
	}
	if c.NotificationSound != nil {
		settings.NotificationSound = *c.NotificationSound
		updated = true
	}
	if c.BadgeEnabled != nil {
		settings.BadgeEnabled = *c.BadgeEnabled
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if res := validation.New().ValidateSettings(settings); res.HasConflicts() {
		return res.Err()
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}
