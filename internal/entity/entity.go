// Domain entity decoupled from the GORM model.
package entity

import (
	"time"

	"storeboost/internal/settings"
)

// Entity is one configurable item owned by a feature: a single bump,
// bundle or rule. Settings arrive decoded, never as a raw blob.
type Entity struct {
	Id         int64
	FeatureId  string
	EntityType string
	Name       string
	Settings   settings.Map
	Status     Status
	Priority   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Status is the entity lifecycle state.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDraft    Status = "draft"
)

// CoerceStatus folds any unrecognized input to active.
func CoerceStatus(raw string) Status {
	switch Status(raw) {
	case StatusActive, StatusInactive, StatusDraft:
		return Status(raw)
	default:
		return StatusActive
	}
}
