package journey

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/julianstephens/onefocus/internal/constants"
	"github.com/julianstephens/onefocus/internal/logger"
	"github.com/julianstephens/onefocus/internal/models"
	"github.com/julianstephens/onefocus/internal/storage"
)

var (
	ErrJourneyNotFailed   = errors.New("journey has not failed")
	ErrJourneyNotActive   = errors.New("journey is not active")
	ErrJourneyStillActive = errors.New("journey is still active")
	ErrJourneyNotFinished = errors.New("journey has not reached its final day")
	ErrJourneyFailed      = errors.New("journey has failed")
	ErrInvalidSlot        = errors.New("habit slot must be 0 (primary) or 1 (secondary)")
)

// Service applies journey operations to the journey held in a
// storage.Provider. "Today" is the calendar date of the clock in the
// service location.
//
// Mutating operations return the updated journey together with any
// persistence error, so callers can still show progress when a save fails.
type Service struct {
	store storage.Provider
	now   func() time.Time
	loc   *time.Location
}

type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the location whose calendar defines "today".
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func NewService(store storage.Provider, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
		loc:   time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadLocation resolves a timezone setting; "Local" and "" mean the system zone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == constants.DefaultTimezone {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

// Today is the current calendar date in the service location.
func (s *Service) Today() civil.Date {
	return civil.DateOf(s.now().In(s.loc))
}

// Now is the clock time in the service location.
func (s *Service) Now() time.Time {
	return s.now().In(s.loc)
}

func (s *Service) Store() storage.Provider {
	return s.store
}

// GetOrCreateJourney returns the most recent journey, creating and saving a
// new active one starting today when none exists.
func (s *Service) GetOrCreateJourney() (models.Journey, error) {
	j, err := s.store.GetCurrentJourney()
	if err == nil {
		return j, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.Journey{}, fmt.Errorf("failed to load journey: %w", err)
	}

	j = models.NewJourney(s.Today(), s.now())
	if err := s.store.AddJourney(j); err != nil {
		return j, fmt.Errorf("failed to save new journey: %w", err)
	}
	logger.Info("Started new journey", "id", j.ID, "start", j.StartDate)
	return j, nil
}

func (s *Service) CurrentDay() (int, error) {
	j, err := s.GetOrCreateJourney()
	return CurrentDay(j, s.Today()), err
}

func (s *Service) CurrentPhase() (models.JourneyPhase, error) {
	j, err := s.GetOrCreateJourney()
	return CurrentPhase(j, s.Today()), err
}

func (s *Service) IsCompletedToday(slot int) (bool, error) {
	if err := validateSlot(slot); err != nil {
		return false, err
	}
	j, err := s.GetOrCreateJourney()
	return IsCompleted(j, s.Today(), slot), err
}

func (s *Service) CurrentStreak() (int, error) {
	j, err := s.GetOrCreateJourney()
	return CurrentStreak(j, s.Today()), err
}

func (s *Service) FlexDaysRemaining() (int, error) {
	j, err := s.GetOrCreateJourney()
	return FlexDaysRemaining(j), err
}

func (s *Service) HasFailed() (bool, error) {
	j, err := s.GetOrCreateJourney()
	return HasFailed(j, s.Today()), err
}

// CheckJourneyFailure reports whether the active journey has failed and is
// waiting for a failure analysis.
func (s *Service) CheckJourneyFailure() (bool, error) {
	j, err := s.GetOrCreateJourney()
	if err != nil {
		return false, err
	}
	return j.IsActive() && HasFailed(j, s.Today()), nil
}

func (s *Service) WeeklyCompletion() ([]models.WeekCompletion, error) {
	j, err := s.GetOrCreateJourney()
	return WeeklyCompletion(j), err
}

func (s *Service) Heatmap() ([]models.HeatmapDay, error) {
	j, err := s.GetOrCreateJourney()
	return Heatmap(j, s.Today()), err
}

func validateSlot(slot int) error {
	if slot != models.PrimarySlot && slot != models.SecondarySlot {
		return ErrInvalidSlot
	}
	return nil
}

// MarkComplete records today's completion for the habit slot. Marking the
// same day twice is a no-op. Flex days are never consumed here.
func (s *Service) MarkComplete(slot int) (models.Journey, error) {
	if err := validateSlot(slot); err != nil {
		return models.Journey{}, err
	}
	j, err := s.GetOrCreateJourney()
	if err != nil {
		return j, err
	}
	if !j.IsActive() {
		return j, ErrJourneyNotActive
	}

	key := models.DateKey(s.Today(), slot)
	if !j.AddCompletion(key) {
		return j, nil
	}
	if err := s.store.UpdateJourney(j); err != nil {
		return j, fmt.Errorf("failed to save completion: %w", err)
	}
	logger.Debug("Marked complete", "journey", j.ID, "key", key)
	return j, nil
}

// AddFocusTime adds a finished focus session to the journey total.
func (s *Service) AddFocusTime(d time.Duration) (models.Journey, error) {
	j, err := s.GetOrCreateJourney()
	if err != nil {
		return j, err
	}
	seconds := int(d / time.Second)
	if seconds <= 0 {
		return j, nil
	}
	j.TotalFocusTimeSeconds += seconds
	if err := s.store.UpdateJourney(j); err != nil {
		return j, fmt.Errorf("failed to save focus time: %w", err)
	}
	return j, nil
}

// ResetJourney restarts the journey today, keeping its id and status.
func (s *Service) ResetJourney() (models.Journey, error) {
	j, err := s.GetOrCreateJourney()
	if err != nil {
		return j, err
	}
	j.StartDate = s.Today()
	j.CompletedDays = []string{}
	j.FlexDaysUsed = 0
	j.TotalFocusTimeSeconds = 0
	if err := s.store.UpdateJourney(j); err != nil {
		return j, fmt.Errorf("failed to save reset journey: %w", err)
	}
	logger.Info("Journey reset", "id", j.ID)
	return j, nil
}

// SaveFailureAnalysis records the post-mortem and moves the active journey
// to failed. It is the only transition into the failed state.
func (s *Service) SaveFailureAnalysis(whatWorked, whatDidnt, nextTimeChanges string) (models.Journey, error) {
	j, err := s.GetOrCreateJourney()
	if err != nil {
		return j, err
	}
	if !j.IsActive() {
		return j, ErrJourneyNotActive
	}

	now := s.now()
	best, worst := BestAndWorstWeek(WeeklyCompletion(j))
	data, err := json.Marshal(models.FailureAnalysis{
		WhatWorked:      whatWorked,
		WhatDidnt:       whatDidnt,
		NextTimeChanges: nextTimeChanges,
		BestWeek:        best,
		WorstWeek:       worst,
		AnalyzedAt:      now,
	})
	if err != nil {
		return j, fmt.Errorf("failed to encode failure analysis: %w", err)
	}

	notes := string(data)
	j.FailureAnalysisNotes = &notes
	j.FailureAnalysisCompleted = true
	j.Status = models.JourneyStatusFailed
	j.EndDate = &now

	if err := s.store.UpdateJourney(j); err != nil {
		return j, fmt.Errorf("failed to save failure analysis: %w", err)
	}
	logger.Info("Journey failed", "id", j.ID, "bestWeek", best, "worstWeek", worst)
	return j, nil
}

// CompleteJourney finishes an active journey that reached day 66 without
// failing.
func (s *Service) CompleteJourney() (models.Journey, error) {
	j, err := s.GetOrCreateJourney()
	if err != nil {
		return j, err
	}
	if !j.IsActive() {
		return j, ErrJourneyNotActive
	}
	today := s.Today()
	if CurrentDay(j, today) < constants.JourneyLength {
		return j, ErrJourneyNotFinished
	}
	if HasFailed(j, today) {
		return j, ErrJourneyFailed
	}

	now := s.now()
	j.Status = models.JourneyStatusCompleted
	j.EndDate = &now
	if err := s.store.UpdateJourney(j); err != nil {
		return j, fmt.Errorf("failed to save completed journey: %w", err)
	}
	logger.Info("Journey completed", "id", j.ID)
	return j, nil
}

// ArchiveFailedJourney returns the current journey when it has failed. It
// never creates the replacement journey; see StartFreshJourney.
func (s *Service) ArchiveFailedJourney() (models.Journey, error) {
	j, err := s.store.GetCurrentJourney()
	if err != nil {
		return models.Journey{}, fmt.Errorf("failed to load journey: %w", err)
	}
	if j.Status != models.JourneyStatusFailed {
		return models.Journey{}, ErrJourneyNotFailed
	}
	return j, nil
}

// StartFreshJourney keeps the finished journey as history and inserts a new
// active one starting today. It returns the archived and the new journey.
func (s *Service) StartFreshJourney() (archived, fresh models.Journey, err error) {
	current, err := s.store.GetCurrentJourney()
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return models.Journey{}, models.Journey{}, fmt.Errorf("failed to load journey: %w", err)
	}
	if err == nil {
		switch current.Status {
		case models.JourneyStatusActive:
			return current, models.Journey{}, ErrJourneyStillActive
		case models.JourneyStatusFailed:
			if archived, err = s.ArchiveFailedJourney(); err != nil {
				return models.Journey{}, models.Journey{}, err
			}
		default:
			archived = current
		}
	}

	fresh = models.NewJourney(s.Today(), s.now())
	if err := s.store.AddJourney(fresh); err != nil {
		return archived, fresh, fmt.Errorf("failed to save new journey: %w", err)
	}
	logger.Info("Started fresh journey", "id", fresh.ID, "previous", archived.ID)
	return archived, fresh, nil
}

// ArchivedJourneys lists every journey that is no longer active, most
// recently ended first.
func (s *Service) ArchivedJourneys() ([]models.Journey, error) {
	return s.store.GetArchivedJourneys()
}

// Stats summarizes the current journey for the insights view.
type Stats struct {
	CurrentDay        int
	Phase             models.JourneyPhase
	Progress          float64
	CompletionRate    float64
	CompletedDays     int
	CurrentStreak     int
	BestStreak        int
	FlexDaysRemaining int
	TotalFocusSeconds int
}

// FocusTime renders TotalFocusSeconds for display.
func (st Stats) FocusTime() string {
	return FormatFocusTime(st.TotalFocusSeconds)
}

func (s *Service) Stats() (Stats, error) {
	j, err := s.GetOrCreateJourney()
	return StatsFor(j, s.Today()), err
}

// StatsFor computes Stats for any journey, e.g. an archived one.
func StatsFor(j models.Journey, today civil.Date) Stats {
	return Stats{
		CurrentDay:        CurrentDay(j, today),
		Phase:             CurrentPhase(j, today),
		Progress:          Progress(j, today),
		CompletionRate:    CompletionRate(j, today),
		CompletedDays:     CompletedDayCount(j),
		CurrentStreak:     CurrentStreak(j, today),
		BestStreak:        BestStreak(j),
		FlexDaysRemaining: FlexDaysRemaining(j),
		TotalFocusSeconds: j.TotalFocusTimeSeconds,
	}
}
