package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/onefocus/internal/models"
	"github.com/julianstephens/onefocus/internal/storage"
)

func (s *Store) AddJourney(journey models.Journey) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO journeys (`+storage.JourneyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		journey.ID, journey.StartDate.String(), journey.FlexDaysUsed, journey.TotalFocusTimeSeconds,
		string(journey.Status), storage.NullString(journey.FailureAnalysisNotes), journey.FailureAnalysisCompleted,
		storage.NullTimestamp(journey.EndDate), storage.FormatTimestamp(journey.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert journey: %w", err)
	}

	if err := writeCompletions(tx, journey); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) UpdateJourney(journey models.Journey) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
		UPDATE journeys SET start_date = ?, flex_days_used = ?, total_focus_time_seconds = ?, status = ?,
			failure_analysis_notes = ?, failure_analysis_completed = ?, end_date = ?
		WHERE id = ?`,
		journey.StartDate.String(), journey.FlexDaysUsed, journey.TotalFocusTimeSeconds, string(journey.Status),
		storage.NullString(journey.FailureAnalysisNotes), journey.FailureAnalysisCompleted,
		storage.NullTimestamp(journey.EndDate), journey.ID)
	if err != nil {
		return fmt.Errorf("failed to update journey: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("journey %s: %w", journey.ID, storage.ErrNotFound)
	}

	if _, err := tx.Exec("DELETE FROM journey_completions WHERE journey_id = ?", journey.ID); err != nil {
		return fmt.Errorf("failed to clear completions: %w", err)
	}
	if err := writeCompletions(tx, journey); err != nil {
		return err
	}
	return tx.Commit()
}

func writeCompletions(tx *sql.Tx, journey models.Journey) error {
	if len(journey.CompletedDays) == 0 {
		return nil
	}
	stmt, err := tx.Prepare("INSERT OR IGNORE INTO journey_completions (journey_id, date_key) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, key := range journey.CompletedDays {
		if _, err := stmt.Exec(journey.ID, key); err != nil {
			return fmt.Errorf("failed to save completion %s: %w", key, err)
		}
	}
	return nil
}

func (s *Store) loadCompletions(journey *models.Journey) error {
	rows, err := s.db.Query("SELECT date_key FROM journey_completions WHERE journey_id = ? ORDER BY date_key", journey.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return err
		}
		journey.CompletedDays = append(journey.CompletedDays, key)
	}
	return rows.Err()
}

func (s *Store) GetJourney(id string) (models.Journey, error) {
	row := s.db.QueryRow("SELECT "+storage.JourneyColumns+" FROM journeys WHERE id = ?", id)
	j, err := storage.ScanJourney(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Journey{}, fmt.Errorf("journey %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return models.Journey{}, err
	}
	if err := s.loadCompletions(&j); err != nil {
		return models.Journey{}, err
	}
	return j, nil
}

func (s *Store) GetCurrentJourney() (models.Journey, error) {
	row := s.db.QueryRow("SELECT " + storage.JourneyColumns + " FROM journeys ORDER BY created_at DESC, id DESC LIMIT 1")
	j, err := storage.ScanJourney(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Journey{}, fmt.Errorf("current journey: %w", storage.ErrNotFound)
	}
	if err != nil {
		return models.Journey{}, err
	}
	if err := s.loadCompletions(&j); err != nil {
		return models.Journey{}, err
	}
	return j, nil
}

func (s *Store) queryJourneys(query string, args ...any) ([]models.Journey, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}

	var journeys []models.Journey
	for rows.Next() {
		j, err := storage.ScanJourney(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		journeys = append(journeys, j)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range journeys {
		if err := s.loadCompletions(&journeys[i]); err != nil {
			return nil, err
		}
	}
	return journeys, nil
}

func (s *Store) GetAllJourneys() ([]models.Journey, error) {
	return s.queryJourneys("SELECT " + storage.JourneyColumns + " FROM journeys ORDER BY created_at DESC, id DESC")
}

func (s *Store) GetArchivedJourneys() ([]models.Journey, error) {
	return s.queryJourneys(`
		SELECT `+storage.JourneyColumns+` FROM journeys
		WHERE status != ?
		ORDER BY end_date IS NULL, end_date DESC, created_at DESC`, string(models.JourneyStatusActive))
}

func (s *Store) DeleteJourney(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM journey_completions WHERE journey_id = ?", id); err != nil {
		return err
	}
	res, err := tx.Exec("DELETE FROM journeys WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("journey %s: %w", id, storage.ErrNotFound)
	}
	return tx.Commit()
}
