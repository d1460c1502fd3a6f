// Package schema owns the physical table definitions: creation, existence
// checks and teardown. No business logic lives here.
package schema

import (
	"gorm.io/gorm"

	"storeboost/internal/model"
)

type Manager struct {
	db *gorm.DB
}

func NewManager(db *gorm.DB) *Manager {
	return &Manager{db: db}
}

// EnsureTables creates or updates the entity and option tables from the
// model definitions. Idempotent.
func (m *Manager) EnsureTables() error {
	return m.db.AutoMigrate(&model.Entity{}, &model.Option{})
}

func (m *Manager) HasEntityTable() bool {
	return m.db.Migrator().HasTable(&model.Entity{})
}

func (m *Manager) HasOptionTable() bool {
	return m.db.Migrator().HasTable(&model.Option{})
}

func (m *Manager) DropTables() error {
	return m.db.Migrator().DropTable(&model.Entity{}, &model.Option{})
}
