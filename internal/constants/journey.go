package constants

const (
	// JourneyLength is the number of days in a habit-formation journey.
	JourneyLength = 66
	// MaxFlexDays is the number of missed days tolerated before a journey fails.
	MaxFlexDays = 3
	// MinCompletedDays is the completed-day count required to finish a journey.
	MinCompletedDays = JourneyLength - MaxFlexDays
	// ConsecutiveMissLimit is the number of consecutive missed days that fails a journey.
	ConsecutiveMissLimit = 3

	// Phase boundaries (inclusive last day of each phase)
	FoundationLastDay    = 21
	StrengtheningLastDay = 42

	// DaysPerWeek is the bucket size used for weekly aggregation and reflections.
	DaysPerWeek = 7
	// WeeksInJourney is the number of weekly buckets; the last one is partial.
	WeeksInJourney = (JourneyLength + DaysPerWeek - 1) / DaysPerWeek

	// SecondHabitUnlockDay is the first journey day on which a secondary habit may be added.
	SecondHabitUnlockDay = 21

	// Mood scale
	MinMood = 1
	MaxMood = 5

	// Breathing exercise (4-7-8 pattern)
	BreathingInhaleSeconds = 4
	BreathingHoldSeconds   = 7
	BreathingExhaleSeconds = 8
	BreathingCycles        = 3
)

// MilestoneDays are the journey days that trigger a milestone notification.
var MilestoneDays = []int{7, 14, 21, 30, 42, 66}
