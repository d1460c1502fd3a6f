package options

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storeboost/internal/model"
	"storeboost/internal/settings"
)

// GormStore persists options in the storeboost_options table. Default
// backend.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(ctx context.Context, name string) (settings.Map, error) {
	var row model.Option
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return settings.Map{}, nil
		}
		return nil, err
	}
	return settings.Decode(row.Value), nil
}

func (s *GormStore) Set(ctx context.Context, name string, value settings.Map) error {
	encoded, err := settings.Encode(value)
	if err != nil {
		return err
	}
	row := model.Option{Name: name, Value: encoded}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
}

func (s *GormStore) Delete(ctx context.Context, name string) error {
	return s.db.WithContext(ctx).Where("name = ?", name).Delete(&model.Option{}).Error
}
