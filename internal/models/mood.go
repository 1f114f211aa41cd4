package models

import "time"

// MoodEntry records how the user felt before or after doing the habit
type MoodEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Mood      int       `json:"mood"` // 1-5
	HabitID   *string   `json:"habit_id,omitempty"`
	IsBefore  bool      `json:"is_before"`
}

// MoodLabel returns the display label for a mood value.
func MoodLabel(mood int) string {
	switch mood {
	case 1:
		return "Terrible"
	case 2:
		return "Bad"
	case 3:
		return "Okay"
	case 4:
		return "Good"
	case 5:
		return "Great"
	default:
		return "Unknown"
	}
}

// RepeatingLog counts completions of a repeating habit for one day and slot
type RepeatingLog struct {
	ID      string `json:"id"`
	DateKey string `json:"date_key"` // see RepeatingKey
	Count   int    `json:"count"`
}
