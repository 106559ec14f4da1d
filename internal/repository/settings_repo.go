package repository

import (
	"context"
	"errors"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/model"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	// Get returns the singleton settings row, or (nil, nil) when settings
	// were never configured.
	Get(ctx context.Context) (*model.FirmSettings, error)
	Upsert(ctx context.Context, s *model.FirmSettings) error
}

type settingsRepo struct{ db *gorm.DB }

func NewSettingsRepository(db *gorm.DB) SettingsRepository { return &settingsRepo{db: db} }

func (r *settingsRepo) Get(ctx context.Context) (*model.FirmSettings, error) {
	var s model.FirmSettings
	err := r.db.WithContext(ctx).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepo) Upsert(ctx context.Context, s *model.FirmSettings) error {
	existing, err := r.Get(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		s.ID = existing.ID
	}
	return r.db.WithContext(ctx).Save(s).Error
}
