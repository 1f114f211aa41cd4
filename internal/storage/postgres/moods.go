package postgres

import (
	"github.com/julianstephens/onefocus/internal/models"
	"github.com/julianstephens/onefocus/internal/storage"
)

func (s *Store) AddMoodEntry(entry models.MoodEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO mood_entries (`+storage.MoodColumns+`)
		VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, storage.FormatTimestamp(entry.Timestamp), entry.Mood, storage.NullString(entry.HabitID), entry.IsBefore)
	return err
}

func (s *Store) GetMoodEntries() ([]models.MoodEntry, error) {
	rows, err := s.db.Query("SELECT " + storage.MoodColumns + " FROM mood_entries ORDER BY logged_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.MoodEntry
	for rows.Next() {
		e, err := storage.ScanMoodEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
