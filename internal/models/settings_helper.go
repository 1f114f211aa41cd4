package models

import (
	"fmt"

	"github.com/julianstephens/onefocus/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingNotificationTime:
			settings.NotificationTime = value
		case constants.SettingNotificationSound:
			settings.NotificationSound = value == "true"
		case constants.SettingBadgeEnabled:
			settings.BadgeEnabled = value == "true"
		case constants.SettingHasCompletedOnboarding:
			settings.HasCompletedOnboarding = value == "true"
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:               settings.Timezone,
		constants.SettingNotificationsEnabled:   fmt.Sprintf("%v", settings.NotificationsEnabled),
		constants.SettingNotificationTime:       settings.NotificationTime,
		constants.SettingNotificationSound:      fmt.Sprintf("%v", settings.NotificationSound),
		constants.SettingBadgeEnabled:           fmt.Sprintf("%v", settings.BadgeEnabled),
		constants.SettingHasCompletedOnboarding: fmt.Sprintf("%v", settings.HasCompletedOnboarding),
	}
}

// DefaultSettings returns the settings written on first initialization.
func DefaultSettings() Settings {
	return Settings{
		Timezone:             constants.DefaultTimezone,
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		NotificationTime:     constants.DefaultNotificationTime,
		NotificationSound:    constants.DefaultNotificationSound,
		BadgeEnabled:         constants.DefaultBadgeEnabled,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.NotificationTime == "" {
		settings.NotificationTime = constants.DefaultNotificationTime
	}
}
