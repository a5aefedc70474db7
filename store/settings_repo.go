package store

import (
	"context"

	"gorm.io/gorm"

	"payflow/models"
)

type SettingsRepo struct {
	db *gorm.DB
}

func (r *SettingsRepo) Get(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	if err := r.db.WithContext(ctx).First(&settings, models.SettingsID).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *SettingsRepo) Save(ctx context.Context, settings *models.Settings) error {
	settings.ID = models.SettingsID
	return r.db.WithContext(ctx).Save(settings).Error
}
