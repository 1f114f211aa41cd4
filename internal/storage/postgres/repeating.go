package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/onefocus/internal/models"
	"github.com/julianstephens/onefocus/internal/storage"
)

func (s *Store) GetRepeatingLog(dateKey string) (models.RepeatingLog, error) {
	var log models.RepeatingLog
	err := s.db.QueryRow("SELECT id, date_key, count FROM repeating_logs WHERE date_key = $1", dateKey).
		Scan(&log.ID, &log.DateKey, &log.Count)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RepeatingLog{}, fmt.Errorf("repeating log %s: %w", dateKey, storage.ErrNotFound)
	}
	return log, err
}

// SaveRepeatingLog upserts by date key.
func (s *Store) SaveRepeatingLog(log models.RepeatingLog) error {
	_, err := s.db.Exec(`
		INSERT INTO repeating_logs (id, date_key, count) VALUES ($1, $2, $3)
		ON CONFLICT (date_key) DO UPDATE SET count = EXCLUDED.count`,
		log.ID, log.DateKey, log.Count)
	return err
}
