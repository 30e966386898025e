package repository

import (
	"go-shop-admin/internal/model"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	Get() (*model.SiteSettings, error)
	Save(settings *model.SiteSettings) error
}

type settingsRepo struct {
	db *gorm.DB
}

func NewSettingsRepo(db *gorm.DB) SettingsRepository {
	return &settingsRepo{db: db}
}

// Get returns the singleton settings row, creating it with defaults on first
// access. The unique index on singleton_key makes a second row impossible.
func (r *settingsRepo) Get() (*model.SiteSettings, error) {
	var settings model.SiteSettings
	err := r.db.
		Where(model.SiteSettings{SingletonKey: model.SettingsSingletonKey}).
		FirstOrCreate(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepo) Save(settings *model.SiteSettings) error {
	return r.db.Save(settings).Error
}
