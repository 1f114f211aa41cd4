package constants

const (
	SettingTimezone               = "timezone"
	SettingNotificationsEnabled   = "notifications_enabled"
	SettingNotificationTime       = "notification_time"
	SettingNotificationSound      = "notification_sound"
	SettingBadgeEnabled           = "badge_enabled"
	SettingHasCompletedOnboarding = "has_completed_onboarding"

	// Default Settings Values
	DefaultTimezone             = "Local" // Use system local timezone by default
	DefaultNotificationsEnabled = false
	DefaultNotificationTime     = "09:00"
	DefaultNotificationSound    = false
	DefaultBadgeEnabled         = false
)
