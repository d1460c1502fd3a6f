// GORM model for the multiplexed storeboost_entities table. Every
// pluggable feature stores its sub-collections (bumps, bundles, rules)
// here, partitioned by (feature_id, entity_type).
package model

import (
	"time"

	"gorm.io/datatypes"
)

type Entity struct {
	Id         int64          `gorm:"primaryKey;autoIncrement"`
	FeatureId  string         `gorm:"type:varchar(50);not null;index:idx_entities_scope_status,priority:1"`
	EntityType string         `gorm:"type:varchar(50);not null;index:idx_entities_scope_status,priority:2"`
	Name       string         `gorm:"type:varchar(255);not null;default:''"`
	Settings   datatypes.JSON `gorm:"type:jsonb"`
	Status     string         `gorm:"type:varchar(20);not null;default:'active';index:idx_entities_status;index:idx_entities_scope_status,priority:3"`
	Priority   int            `gorm:"not null;default:10;index:idx_entities_priority"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
}

func (Entity) TableName() string {
	return "storeboost_entities"
}
