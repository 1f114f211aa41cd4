package storage

import (
	"database/sql"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/julianstephens/onefocus/internal/constants"
	"github.com/julianstephens/onefocus/internal/models"
)

// RowScanner is satisfied by *sql.Row and *sql.Rows.
type RowScanner interface {
	Scan(dest ...any) error
}

// FormatTimestamp renders t in UTC using constants.TimestampFormat.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(constants.TimestampFormat)
}

// ParseTimestamp accepts constants.TimestampFormat and plain RFC3339 values.
func ParseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(constants.TimestampFormat, value)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, value)
}

// NullTimestamp converts an optional timestamp to a nullable column value.
func NullTimestamp(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: FormatTimestamp(*t), Valid: true}
}

// NullInt converts an optional int to a nullable column value.
func NullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

// NullString converts an optional string to a nullable column value.
func NullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

// JourneyColumns lists the journeys columns in the order ScanJourney expects.
const JourneyColumns = "id, start_date, flex_days_used, total_focus_time_seconds, status, failure_analysis_notes, failure_analysis_completed, end_date, created_at"

// ScanJourney decodes a journeys row. CompletedDays is left empty; the
// completions live in their own table.
func ScanJourney(row RowScanner) (models.Journey, error) {
	var j models.Journey
	var startDate, createdAt, status string
	var notes, endDate sql.NullString

	err := row.Scan(&j.ID, &startDate, &j.FlexDaysUsed, &j.TotalFocusTimeSeconds, &status,
		&notes, &j.FailureAnalysisCompleted, &endDate, &createdAt)
	if err != nil {
		return models.Journey{}, err
	}

	j.Status = models.JourneyStatus(status)
	j.FailureAnalysisNotes = stringPtr(notes)
	j.CompletedDays = []string{}

	j.StartDate, err = civil.ParseDate(startDate)
	if err != nil {
		return models.Journey{}, fmt.Errorf("failed to parse start_date for journey %s: %w", j.ID, err)
	}
	j.CreatedAt, err = ParseTimestamp(createdAt)
	if err != nil {
		return models.Journey{}, fmt.Errorf("failed to parse created_at for journey %s: %w", j.ID, err)
	}
	if endDate.Valid {
		t, err := ParseTimestamp(endDate.String)
		if err != nil {
			return models.Journey{}, fmt.Errorf("failed to parse end_date for journey %s: %w", j.ID, err)
		}
		j.EndDate = &t
	}

	return j, nil
}

// HabitColumns lists the habits columns in the order ScanHabit expects.
const HabitColumns = "id, name, type, trigger_text, trigger_type, start_value, target_value, current_value, daily_target, timed_minutes, created_at, is_secondary"

func ScanHabit(row RowScanner) (models.Habit, error) {
	var h models.Habit
	var habitType, triggerType, createdAt string
	var startValue, targetValue, currentValue, dailyTarget, timedMinutes sql.NullInt64

	err := row.Scan(&h.ID, &h.Name, &habitType, &h.Trigger, &triggerType,
		&startValue, &targetValue, &currentValue, &dailyTarget, &timedMinutes,
		&createdAt, &h.IsSecondary)
	if err != nil {
		return models.Habit{}, err
	}

	h.Type = models.HabitType(habitType)
	h.TriggerType = models.TriggerType(triggerType)
	h.StartValue = intPtr(startValue)
	h.TargetValue = intPtr(targetValue)
	h.CurrentValue = intPtr(currentValue)
	h.DailyTarget = intPtr(dailyTarget)
	h.TimedMinutes = intPtr(timedMinutes)

	h.CreatedAt, err = ParseTimestamp(createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
	}
	return h, nil
}

// MoodColumns lists the mood_entries columns in the order ScanMoodEntry expects.
const MoodColumns = "id, logged_at, mood, habit_id, is_before"

func ScanMoodEntry(row RowScanner) (models.MoodEntry, error) {
	var e models.MoodEntry
	var timestamp string
	var habitID sql.NullString

	if err := row.Scan(&e.ID, &timestamp, &e.Mood, &habitID, &e.IsBefore); err != nil {
		return models.MoodEntry{}, err
	}
	e.HabitID = stringPtr(habitID)

	var err error
	e.Timestamp, err = ParseTimestamp(timestamp)
	if err != nil {
		return models.MoodEntry{}, fmt.Errorf("failed to parse timestamp for mood entry %s: %w", e.ID, err)
	}
	return e, nil
}

// ReflectionColumns lists the reflections columns in the order ScanReflection expects.
const ReflectionColumns = "id, journey_id, created_at, week_number, what_helped, what_hindered, patterns_noticed, skipped"

func ScanReflection(row RowScanner) (models.Reflection, error) {
	var r models.Reflection
	var createdAt string

	err := row.Scan(&r.ID, &r.JourneyID, &createdAt, &r.WeekNumber, &r.WhatHelped, &r.WhatHindered, &r.PatternsNoticed, &r.Skipped)
	if err != nil {
		return models.Reflection{}, err
	}

	r.CreatedAt, err = ParseTimestamp(createdAt)
	if err != nil {
		return models.Reflection{}, fmt.Errorf("failed to parse created_at for reflection %s: %w", r.ID, err)
	}
	return r, nil
}
