package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/onefocus/internal/models"
	"github.com/julianstephens/onefocus/internal/storage"
)

func (s *Store) AddHabit(habit models.Habit) error {
	_, err := s.db.Exec(`
		INSERT INTO habits (`+storage.HabitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		habit.ID, habit.Name, string(habit.Type), habit.Trigger, string(habit.TriggerType),
		storage.NullInt(habit.StartValue), storage.NullInt(habit.TargetValue), storage.NullInt(habit.CurrentValue),
		storage.NullInt(habit.DailyTarget), storage.NullInt(habit.TimedMinutes),
		storage.FormatTimestamp(habit.CreatedAt), habit.IsSecondary)
	if err != nil {
		return fmt.Errorf("failed to insert habit: %w", err)
	}
	return nil
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow("SELECT "+storage.HabitColumns+" FROM habits WHERE id = ?", id)
	h, err := storage.ScanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, storage.ErrNotFound)
	}
	return h, err
}

func (s *Store) firstHabit(secondary bool) (models.Habit, error) {
	row := s.db.QueryRow("SELECT "+storage.HabitColumns+" FROM habits WHERE is_secondary = ? ORDER BY created_at LIMIT 1", secondary)
	h, err := storage.ScanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, fmt.Errorf("habit: %w", storage.ErrNotFound)
	}
	return h, err
}

func (s *Store) GetPrimaryHabit() (models.Habit, error) {
	return s.firstHabit(false)
}

func (s *Store) GetSecondaryHabit() (models.Habit, error) {
	return s.firstHabit(true)
}

func (s *Store) GetAllHabits() ([]models.Habit, error) {
	rows, err := s.db.Query("SELECT " + storage.HabitColumns + " FROM habits ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := storage.ScanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	res, err := s.db.Exec(`
		UPDATE habits SET name = ?, type = ?, trigger_text = ?, trigger_type = ?, start_value = ?,
			target_value = ?, current_value = ?, daily_target = ?, timed_minutes = ?, is_secondary = ?
		WHERE id = ?`,
		habit.Name, string(habit.Type), habit.Trigger, string(habit.TriggerType),
		storage.NullInt(habit.StartValue), storage.NullInt(habit.TargetValue), storage.NullInt(habit.CurrentValue),
		storage.NullInt(habit.DailyTarget), storage.NullInt(habit.TimedMinutes), habit.IsSecondary, habit.ID)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("habit %s: %w", habit.ID, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteHabit(id string) error {
	res, err := s.db.Exec("DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("habit %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
