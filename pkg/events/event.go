// Package events defines the lifecycle event contract shared by the
// in-process bus and the NATS fan-out.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Topic every lifecycle event is published on in-process.
const TopicLifecycle = "storeboost.lifecycle"

// Event types emitted by this system.
const (
	TypeFeatureEnabled         = "FEATURE_ENABLED"
	TypeFeatureDisabled        = "FEATURE_DISABLED"
	TypeFeatureSettingsUpdated = "FEATURE_SETTINGS_UPDATED"
	TypeEntityCreated          = "ENTITY_CREATED"
	TypeEntityUpdated          = "ENTITY_UPDATED"
	TypeEntityDeleted          = "ENTITY_DELETED"
	TypeEntityDuplicated       = "ENTITY_DUPLICATED"
)

// Event is the contract for all system events.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

// BaseEvent is the standard Event implementation.
type BaseEvent struct {
	Id         string
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	if data == nil {
		data = make(map[string]interface{})
	}
	return BaseEvent{
		Id:         uuid.New().String(),
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
