package mysql

import (
	"context"
	"errors"

	fundDomain "staff-welfare-fund/internal/domain/fund"

	"gorm.io/gorm"
)

type SettingsRepository struct{ db *gorm.DB }

func NewSettingsRepository(db *gorm.DB) *SettingsRepository { return &SettingsRepository{db: db} }

// Get loads the singleton settings row.
func (r *SettingsRepository) Get(ctx context.Context) (*fundDomain.Settings, error) {
	var out fundDomain.Settings
	res := r.db.WithContext(ctx).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, fundDomain.ErrSettingsMissing
	}
	return &out, res.Error
}

func (r *SettingsRepository) Save(ctx context.Context, s *fundDomain.Settings) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// Seed creates the settings row iff none exists yet.
func (r *SettingsRepository) Seed(ctx context.Context, s *fundDomain.Settings) error {
	_, err := r.Get(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fundDomain.ErrSettingsMissing):
		return r.db.WithContext(ctx).Create(s).Error
	default:
		return err
	}
}
