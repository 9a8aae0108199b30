package store

import (
	"context"

	"gorm.io/gorm"

	bnccdoc "github.com/alnah/go-bnccdoc"
)

// SettingsRepository reads and replaces the settings singleton.
type SettingsRepository interface {
	Get(ctx context.Context) (*bnccdoc.Settings, error)
	Put(ctx context.Context, s *bnccdoc.Settings) error
}

type settingsRepo struct {
	db *gorm.DB
}

// NewSettingsRepo creates a SettingsRepository backed by GORM.
func NewSettingsRepo(db *gorm.DB) SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) Get(ctx context.Context) (*bnccdoc.Settings, error) {
	var m settingsModel
	if err := r.db.WithContext(ctx).Where("id = ?", settingsRowID).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return m.toDomain(), nil
}

// Put replaces every field of the singleton, empty values included.
func (r *settingsRepo) Put(ctx context.Context, s *bnccdoc.Settings) error {
	m := settingsFromDomain(s)
	return r.db.WithContext(ctx).Select("*").Save(&m).Error
}
