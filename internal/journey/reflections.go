package journey

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/onefocus/internal/constants"
	"github.com/julianstephens/onefocus/internal/models"
	"github.com/julianstephens/onefocus/internal/storage"
)

var (
	ErrEmptyReflection   = errors.New("reflection needs at least one answer")
	ErrInvalidReflection = errors.New("reflection week out of range")
)

// IsReflectionDue reports whether today closes a journey week (days 7, 14,
// ..., 63) whose reflection has not been written or skipped yet in the
// current journey.
func (s *Service) IsReflectionDue() (bool, int, error) {
	j, err := s.GetOrCreateJourney()
	if err != nil {
		return false, 0, err
	}
	due, week := IsReflectionDay(CurrentDay(j, s.Today()))
	if !due {
		return false, 0, nil
	}

	_, err = s.store.GetReflectionForWeek(j.ID, week)
	switch {
	case err == nil:
		return false, 0, nil
	case errors.Is(err, storage.ErrNotFound):
		return true, week, nil
	default:
		return false, 0, fmt.Errorf("failed to load reflection: %w", err)
	}
}

func validateWeek(week int) error {
	if week < 1 || week > constants.WeeksInJourney {
		return fmt.Errorf("%w: %d", ErrInvalidReflection, week)
	}
	return nil
}

// SubmitReflection stores the trimmed answers for a week of the current
// journey.
func (s *Service) SubmitReflection(week int, whatHelped, whatHindered, patternsNoticed string) (models.Reflection, error) {
	if err := validateWeek(week); err != nil {
		return models.Reflection{}, err
	}
	j, err := s.GetOrCreateJourney()
	if err != nil {
		return models.Reflection{}, err
	}
	r := models.Reflection{
		ID:              uuid.New().String(),
		JourneyID:       j.ID,
		CreatedAt:       s.now(),
		WeekNumber:      week,
		WhatHelped:      strings.TrimSpace(whatHelped),
		WhatHindered:    strings.TrimSpace(whatHindered),
		PatternsNoticed: strings.TrimSpace(patternsNoticed),
	}
	if r.IsEmpty() {
		return models.Reflection{}, ErrEmptyReflection
	}
	if err := s.store.AddReflection(r); err != nil {
		return r, fmt.Errorf("failed to save reflection: %w", err)
	}
	return r, nil
}

// SkipReflection records that the week's prompt was dismissed so it is not
// offered again.
func (s *Service) SkipReflection(week int) (models.Reflection, error) {
	if err := validateWeek(week); err != nil {
		return models.Reflection{}, err
	}
	j, err := s.GetOrCreateJourney()
	if err != nil {
		return models.Reflection{}, err
	}
	r := models.Reflection{
		ID:         uuid.New().String(),
		JourneyID:  j.ID,
		CreatedAt:  s.now(),
		WeekNumber: week,
		Skipped:    true,
	}
	if err := s.store.AddReflection(r); err != nil {
		return r, fmt.Errorf("failed to save reflection: %w", err)
	}
	return r, nil
}

// Reflections lists the current journey's reflections, newest week first.
func (s *Service) Reflections() ([]models.Reflection, error) {
	j, err := s.GetOrCreateJourney()
	if err != nil {
		return nil, err
	}
	return s.store.GetJourneyReflections(j.ID)
}
