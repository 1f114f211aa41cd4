package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	pq "github.com/lib/pq"

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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
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
		UPDATE journeys SET start_date = $1, flex_days_used = $2, total_focus_time_seconds = $3, status = $4,
			failure_analysis_notes = $5, failure_analysis_completed = $6, end_date = $7
		WHERE id = $8`,
		journey.StartDate.String(), journey.FlexDaysUsed, journey.TotalFocusTimeSeconds, string(journey.Status),
		storage.NullString(journey.FailureAnalysisNotes), journey.FailureAnalysisCompleted,
		storage.NullTimestamp(journey.EndDate), journey.ID)
	if err != nil {
		return fmt.Errorf("failed to update journey: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("journey %s: %w", journey.ID, storage.ErrNotFound)
	}

	if _, err := tx.Exec("DELETE FROM journey_completions WHERE journey_id = $1", journey.ID); err != nil {
		return fmt.Errorf("failed to clear completions: %w", err)
	}
	if err := writeCompletions(tx, journey); err != nil {
		return err
	}
	return tx.Commit()
}

// writeCompletions inserts the whole ledger in one statement using an array
// parameter.
func writeCompletions(tx *sql.Tx, journey models.Journey) error {
	if len(journey.CompletedDays) == 0 {
		return nil
	}
	_, err := tx.Exec(`
		INSERT INTO journey_completions (journey_id, date_key)
		SELECT $1::text, unnest($2::text[])
		ON CONFLICT DO NOTHING`,
		journey.ID, pq.Array(journey.CompletedDays))
	if err != nil {
		return fmt.Errorf("failed to save completions: %w", err)
	}
	return nil
}

func (s *Store) loadCompletions(journey *models.Journey) error {
	var keys []string
	err := s.db.QueryRow(`
		SELECT COALESCE(array_agg(date_key ORDER BY date_key), '{}')
		FROM journey_completions WHERE journey_id = $1`, journey.ID).Scan(pq.Array(&keys))
	if err != nil {
		return err
	}
	journey.CompletedDays = append(journey.CompletedDays, keys...)
	return nil
}

func (s *Store) getOne(query string, args ...any) (models.Journey, error) {
	j, err := storage.ScanJourney(s.db.QueryRow(query, args...))
	if err != nil {
		return models.Journey{}, err
	}
	if err := s.loadCompletions(&j); err != nil {
		return models.Journey{}, err
	}
	return j, nil
}

func (s *Store) GetJourney(id string) (models.Journey, error) {
	j, err := s.getOne("SELECT "+storage.JourneyColumns+" FROM journeys WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Journey{}, fmt.Errorf("journey %s: %w", id, storage.ErrNotFound)
	}
	return j, err
}

func (s *Store) GetCurrentJourney() (models.Journey, error) {
	j, err := s.getOne("SELECT " + storage.JourneyColumns + " FROM journeys ORDER BY created_at DESC, id DESC LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return models.Journey{}, fmt.Errorf("current journey: %w", storage.ErrNotFound)
	}
	return j, err
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
		WHERE status != $1
		ORDER BY end_date DESC NULLS LAST, created_at DESC`, string(models.JourneyStatusActive))
}

func (s *Store) DeleteJourney(id string) error {
	res, err := s.db.Exec("DELETE FROM journeys WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("journey %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
