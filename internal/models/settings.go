package models

// Settings represents user preferences
type Settings struct {
	Timezone               string `json:"timezone"`                 // IANA timezone name or "Local"
	NotificationsEnabled   bool   `json:"notifications_enabled"`    // whether reminders are sent
	NotificationTime       string `json:"notification_time"`        // daily reminder time, e.g. "09:00"
	NotificationSound      bool   `json:"notification_sound"`       // whether reminders play a sound
	BadgeEnabled           bool   `json:"badge_enabled"`            // whether the tray shows a badge
	HasCompletedOnboarding bool   `json:"has_completed_onboarding"` // whether the primary habit exists
}
