package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

type JourneyStatus string

const (
	JourneyStatusActive    JourneyStatus = "active"
	JourneyStatusCompleted JourneyStatus = "completed"
	JourneyStatusFailed    JourneyStatus = "failed"
)

type JourneyPhase string

const (
	PhaseFoundation    JourneyPhase = "Building Foundation"
	PhaseStrengthening JourneyPhase = "Strengthening"
	PhaseCementing     JourneyPhase = "Cementing Habit"
)

// Journey represents a single 66-day habit-formation attempt
type Journey struct {
	ID                       string        `json:"id"`
	StartDate                civil.Date    `json:"start_date"`
	CompletedDays            []string      `json:"completed_days"` // date-keys, see DateKey
	FlexDaysUsed             int           `json:"flex_days_used"`
	TotalFocusTimeSeconds    int           `json:"total_focus_time_seconds"`
	Status                   JourneyStatus `json:"status"`
	FailureAnalysisNotes     *string       `json:"failure_analysis_notes,omitempty"` // JSON encoded FailureAnalysis
	FailureAnalysisCompleted bool          `json:"failure_analysis_completed"`
	EndDate                  *time.Time    `json:"end_date,omitempty"`
	CreatedAt                time.Time     `json:"created_at"`
}

// NewJourney returns an active journey starting on the given day.
func NewJourney(start civil.Date, now time.Time) Journey {
	return Journey{
		ID:            uuid.New().String(),
		StartDate:     start,
		CompletedDays: []string{},
		Status:        JourneyStatusActive,
		CreatedAt:     now,
	}
}

func (j Journey) IsActive() bool {
	return j.Status == JourneyStatusActive
}

// HasCompletion reports whether the date-key is present in the completion ledger.
func (j Journey) HasCompletion(key string) bool {
	for _, k := range j.CompletedDays {
		if k == key {
			return true
		}
	}
	return false
}

// AddCompletion inserts key into the completion ledger. It returns false
// when the key was already present.
func (j *Journey) AddCompletion(key string) bool {
	if j.HasCompletion(key) {
		return false
	}
	j.CompletedDays = append(j.CompletedDays, key)
	sort.Strings(j.CompletedDays)
	return true
}

// FailureAnalysis decodes FailureAnalysisNotes. It returns nil when no
// analysis has been recorded.
func (j Journey) FailureAnalysis() (*FailureAnalysis, error) {
	if j.FailureAnalysisNotes == nil || *j.FailureAnalysisNotes == "" {
		return nil, nil
	}
	var fa FailureAnalysis
	if err := json.Unmarshal([]byte(*j.FailureAnalysisNotes), &fa); err != nil {
		return nil, fmt.Errorf("failed to parse failure analysis: %w", err)
	}
	return &fa, nil
}

// FailureAnalysis is the post-mortem recorded when a journey fails
type FailureAnalysis struct {
	WhatWorked      string    `json:"whatWorked"`
	WhatDidnt       string    `json:"whatDidnt"`
	NextTimeChanges string    `json:"nextTimeChanges"`
	BestWeek        int       `json:"bestWeek"`
	WorstWeek       int       `json:"worstWeek"`
	AnalyzedAt      time.Time `json:"analyzedAt"`
}

// WeekCompletion summarizes one 7-day bucket of a journey
type WeekCompletion struct {
	WeekNumber     int     `json:"week_number"`
	CompletedDays  int     `json:"completed_days"`
	TotalDays      int     `json:"total_days"`
	CompletionRate float64 `json:"completion_rate"`
}

// HeatmapDay is one cell of the 66-day completion grid
type HeatmapDay struct {
	DayNumber int        `json:"day_number"`
	Date      civil.Date `json:"date"`
	Completed bool       `json:"completed"`
	Future    bool       `json:"future"`
	Today     bool       `json:"today"`
}
