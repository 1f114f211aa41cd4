// Package journey derives progress for a 66-day habit journey and applies
// the lifecycle operations (completion, reset, failure, archival) against a
// storage.Provider.
//
// Every calculation works on calendar dates; callers decide which day is
// "today" in the user's location.
package journey

import (
	"fmt"
	"sort"

	"cloud.google.com/go/civil"

	"github.com/julianstephens/onefocus/internal/constants"
	"github.com/julianstephens/onefocus/internal/models"
)

// CurrentDay returns the 1-based journey day for today, clamped to [1, 66].
// A start date in the future yields day 1.
func CurrentDay(j models.Journey, today civil.Date) int {
	return clampDay(today.DaysSince(j.StartDate) + 1)
}

func clampDay(day int) int {
	if day < 1 {
		return 1
	}
	if day > constants.JourneyLength {
		return constants.JourneyLength
	}
	return day
}

// PhaseForDay maps a journey day to its phase.
func PhaseForDay(day int) models.JourneyPhase {
	switch {
	case day <= constants.FoundationLastDay:
		return models.PhaseFoundation
	case day <= constants.StrengtheningLastDay:
		return models.PhaseStrengthening
	default:
		return models.PhaseCementing
	}
}

func CurrentPhase(j models.Journey, today civil.Date) models.JourneyPhase {
	return PhaseForDay(CurrentDay(j, today))
}

// Progress is CurrentDay/66.
func Progress(j models.Journey, today civil.Date) float64 {
	return float64(CurrentDay(j, today)) / float64(constants.JourneyLength)
}

// FlexDaysRemaining is 3 - FlexDaysUsed clamped to [0, 3].
func FlexDaysRemaining(j models.Journey) int {
	remaining := constants.MaxFlexDays - j.FlexDaysUsed
	if remaining < 0 {
		return 0
	}
	if remaining > constants.MaxFlexDays {
		return constants.MaxFlexDays
	}
	return remaining
}

// IsCompleted reports whether the ledger holds a completion for the day and slot.
func IsCompleted(j models.Journey, d civil.Date, slot int) bool {
	return j.HasCompletion(models.DateKey(d, slot))
}

// primaryDates returns the set of parseable primary-slot completion dates.
// Keys that do not parse are skipped.
func primaryDates(j models.Journey) map[civil.Date]bool {
	dates := make(map[civil.Date]bool, len(j.CompletedDays))
	for _, key := range j.CompletedDays {
		d, slot, err := models.ParseDateKey(key)
		if err != nil || slot != models.PrimarySlot {
			continue
		}
		dates[d] = true
	}
	return dates
}

// CompletedDayCount is the number of distinct primary-slot days completed.
func CompletedDayCount(j models.Journey) int {
	return len(primaryDates(j))
}

// CurrentStreak counts consecutive completed primary days ending today. It
// is 0 when today is not completed and never exceeds CurrentDay.
func CurrentStreak(j models.Journey, today civil.Date) int {
	dates := primaryDates(j)
	limit := CurrentDay(j, today)

	streak := 0
	for d := today; streak < limit && dates[d]; d = d.AddDays(-1) {
		streak++
	}
	return streak
}

// BestStreak is the longest run of consecutive calendar days in the
// primary-slot ledger.
func BestStreak(j models.Journey) int {
	dates := primaryDates(j)
	if len(dates) == 0 {
		return 0
	}

	sorted := make([]civil.Date, 0, len(dates))
	for d := range dates {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].Before(sorted[b]) })

	best, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i].DaysSince(sorted[i-1]) == 1 {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 1
		}
	}
	return best
}

// CompletionRate is completed primary days divided by CurrentDay, capped at 1.
func CompletionRate(j models.Journey, today civil.Date) float64 {
	rate := float64(CompletedDayCount(j)) / float64(CurrentDay(j, today))
	if rate > 1 {
		return 1
	}
	return rate
}

// HasFailed reports whether the journey can no longer succeed:
//   - on day 66 fewer than 63 primary days are completed, or
//   - the last three days up to today, bounded by CurrentDay, were all missed.
//
// It is a point-in-time check and never changes the journey.
func HasFailed(j models.Journey, today civil.Date) bool {
	dates := primaryDates(j)
	day := CurrentDay(j, today)

	if day >= constants.JourneyLength && len(dates) < constants.MinCompletedDays {
		return true
	}

	window := min(day, constants.ConsecutiveMissLimit)
	misses := 0
	for i := 0; i < window; i++ {
		if dates[today.AddDays(-i)] {
			misses = 0
			continue
		}
		misses++
		if misses >= constants.ConsecutiveMissLimit {
			return true
		}
	}
	return false
}

// WeekBounds returns the first and last journey day of a 1-based week.
func WeekBounds(week int) (first, last int) {
	first = (week-1)*constants.DaysPerWeek + 1
	last = min(first+constants.DaysPerWeek-1, constants.JourneyLength)
	return first, last
}

// WeeklyCompletion buckets days 1..66 into ten weeks; the tenth covers
// days 64-66.
func WeeklyCompletion(j models.Journey) []models.WeekCompletion {
	dates := primaryDates(j)
	weeks := make([]models.WeekCompletion, 0, constants.WeeksInJourney)

	for week := 1; week <= constants.WeeksInJourney; week++ {
		first, last := WeekBounds(week)
		wc := models.WeekCompletion{
			WeekNumber: week,
			TotalDays:  last - first + 1,
		}
		for day := first; day <= last; day++ {
			if dates[j.StartDate.AddDays(day-1)] {
				wc.CompletedDays++
			}
		}
		if wc.TotalDays > 0 {
			wc.CompletionRate = float64(wc.CompletedDays) / float64(wc.TotalDays)
		}
		weeks = append(weeks, wc)
	}
	return weeks
}

// BestAndWorstWeek returns the week numbers with the highest and lowest
// completion rate. Ties go to the earliest week; an empty input yields 1, 1.
func BestAndWorstWeek(weeks []models.WeekCompletion) (best, worst int) {
	if len(weeks) == 0 {
		return 1, 1
	}
	bestIdx, worstIdx := 0, 0
	for i, w := range weeks {
		if w.CompletionRate > weeks[bestIdx].CompletionRate {
			bestIdx = i
		}
		if w.CompletionRate < weeks[worstIdx].CompletionRate {
			worstIdx = i
		}
	}
	return weeks[bestIdx].WeekNumber, weeks[worstIdx].WeekNumber
}

// Heatmap returns one cell per journey day.
func Heatmap(j models.Journey, today civil.Date) []models.HeatmapDay {
	dates := primaryDates(j)
	cells := make([]models.HeatmapDay, 0, constants.JourneyLength)
	for day := 1; day <= constants.JourneyLength; day++ {
		d := j.StartDate.AddDays(day - 1)
		cells = append(cells, models.HeatmapDay{
			DayNumber: day,
			Date:      d,
			Completed: dates[d],
			Future:    d.After(today),
			Today:     d == today,
		})
	}
	return cells
}

// IsReflectionDay reports whether day closes a week that gets a reflection
// prompt, and which week that is.
func IsReflectionDay(day int) (bool, int) {
	if day%constants.DaysPerWeek != 0 || day > constants.JourneyLength {
		return false, 0
	}
	return true, day / constants.DaysPerWeek
}

// FormatFocusTime renders seconds as "Xm", "Xh" or "Xh Ym".
func FormatFocusTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", minutes)
	case minutes == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
}
