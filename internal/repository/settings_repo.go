package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"magnumdrive/internal/db"
)

type SettingsRepository struct {
	DB *sql.DB
}

func NewSettingsRepository(database *sql.DB) *SettingsRepository {
	return &SettingsRepository{DB: database}
}

func (r *SettingsRepository) List() ([]db.Setting, error) {
	rows, err := r.DB.Query(`
		SELECT key, value, COALESCE(description, ''), COALESCE(category, 'general')
		FROM settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []db.Setting
	for rows.Next() {
		var s db.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.Description, &s.Category); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

func (r *SettingsRepository) Get(key string) (*db.Setting, error) {
	var s db.Setting
	err := r.DB.QueryRow(`
		SELECT key, value, COALESCE(description, ''), COALESCE(category, 'general')
		FROM settings WHERE key = $1`, key).
		Scan(&s.Key, &s.Value, &s.Description, &s.Category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("setting %q: %w", key, ErrNoRows)
		}
		return nil, err
	}
	return &s, nil
}

// Upsert writes a setting by key, overwriting any previous value.
func (r *SettingsRepository) Upsert(s *db.Setting) error {
	_, err := r.DB.Exec(`
		INSERT INTO settings (key, value, description, category)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
		    description = COALESCE(EXCLUDED.description, settings.description),
		    category = COALESCE(EXCLUDED.category, settings.category)`,
		s.Key, s.Value, s.Description, s.Category)
	return err
}
