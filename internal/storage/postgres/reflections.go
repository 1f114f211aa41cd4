package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/onefocus/internal/models"
	"github.com/julianstephens/onefocus/internal/storage"
)

func (s *Store) AddReflection(reflection models.Reflection) error {
	_, err := s.db.Exec(`
		INSERT INTO reflections (`+storage.ReflectionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		reflection.ID, reflection.JourneyID, storage.FormatTimestamp(reflection.CreatedAt), reflection.WeekNumber,
		reflection.WhatHelped, reflection.WhatHindered, reflection.PatternsNoticed, reflection.Skipped)
	return err
}

func (s *Store) GetReflectionForWeek(journeyID string, weekNumber int) (models.Reflection, error) {
	row := s.db.QueryRow("SELECT "+storage.ReflectionColumns+" FROM reflections WHERE journey_id = $1 AND week_number = $2 ORDER BY created_at DESC LIMIT 1", journeyID, weekNumber)
	r, err := storage.ScanReflection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Reflection{}, fmt.Errorf("reflection for week %d: %w", weekNumber, storage.ErrNotFound)
	}
	return r, err
}

func (s *Store) GetAllReflections() ([]models.Reflection, error) {
	return s.queryReflections("SELECT " + storage.ReflectionColumns + " FROM reflections ORDER BY week_number DESC, created_at DESC")
}

func (s *Store) GetJourneyReflections(journeyID string) ([]models.Reflection, error) {
	return s.queryReflections("SELECT "+storage.ReflectionColumns+" FROM reflections WHERE journey_id = $1 ORDER BY week_number DESC, created_at DESC", journeyID)
}

func (s *Store) queryReflections(query string, args ...any) ([]models.Reflection, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reflections []models.Reflection
	for rows.Next() {
		r, err := storage.ScanReflection(rows)
		if err != nil {
			return nil, err
		}
		reflections = append(reflections, r)
	}
	return reflections, rows.Err()
}
