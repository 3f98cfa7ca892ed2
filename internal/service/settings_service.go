package service

import (
	"log"

	"magnumdrive/internal/db"
	"magnumdrive/internal/entities"
	apperrors "magnumdrive/internal/errors"
)

// SettingsStore is the keyed configuration store surface.
type SettingsStore interface {
	List() ([]db.Setting, error)
	Get(key string) (*db.Setting, error)
	Upsert(s *db.Setting) error
}

type SettingsService struct {
	Repo SettingsStore
}

func NewSettingsService(repo SettingsStore) *SettingsService {
	return &SettingsService{Repo: repo}
}

func (s *SettingsService) ListSettings() ([]entities.Setting, error) {
	rows, err := s.Repo.List()
	if err != nil {
		return nil, apperrors.ErrInternal("could not list settings")
	}
	settings := make([]entities.Setting, 0, len(rows))
	for _, row := range rows {
		settings = append(settings, entities.SettingFromRow(row))
	}
	return settings, nil
}

// Value reads one setting, returning the empty string when it is absent.
// Callers that need a fallback supply their own.
func (s *SettingsService) Value(key string) string {
	row, err := s.Repo.Get(key)
	if err != nil {
		return ""
	}
	return row.Value
}

func (s *SettingsService) UpdateSetting(key string, req *entities.UpdateSettingRequest) (*entities.Setting, error) {
	if key == "" {
		return nil, apperrors.ErrValidation("setting key is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.ErrValidation(err.Error())
	}
	row := &db.Setting{
		Key:         key,
		Value:       req.Value,
		Description: req.Description,
		Category:    req.Category,
	}
	if err := s.Repo.Upsert(row); err != nil {
		log.Printf("Error upserting setting %q: %v", key, err)
		return nil, apperrors.ErrInternal("could not save setting")
	}
	setting := entities.SettingFromRow(*row)
	return &setting, nil
}
