// GORM model for the storeboost_options key-value table backing feature
// settings persistence.
package model

import (
	"time"

	"gorm.io/datatypes"
)

type Option struct {
	Id        int64          `gorm:"primaryKey;autoIncrement"`
	Name      string         `gorm:"type:varchar(191);uniqueIndex;not null"`
	Value     datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (Option) TableName() string {
	return "storeboost_options"
}
