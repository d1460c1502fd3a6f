// Package feature defines the contract every pluggable storefront feature
// implements, plus the registry they are collected in.
package feature

import (
	"context"

	"storeboost/internal/options"
	"storeboost/internal/settings"
)

// Feature is an independently toggleable unit of behavior. Identity and
// metadata are static; enabled state and settings live in the option
// store and survive restarts.
type Feature interface {
	Id() string
	Name() string
	Description() string
	Category() string
	Icon() string
	Priority() int
	EntityTypes() []string

	IsEnabled(ctx context.Context) bool
	Enable(ctx context.Context) error
	Disable(ctx context.Context) error
	Settings(ctx context.Context) settings.Map
	UpdateSettings(ctx context.Context, partial settings.Map) error

	// Init performs the feature's runtime wiring. Called once per boot,
	// only for enabled features.
	Init(ctx context.Context) error
}

// Definition is the static metadata a concrete feature declares.
type Definition struct {
	Id          string
	Name        string
	Description string
	Category    string
	Icon        string
	Priority    int
	EntityTypes []string
}

// Base supplies the settings plumbing shared by every concrete feature.
// Embed it and implement Init.
type Base struct {
	def      Definition
	defaults settings.Map
	store    options.Store
}

func NewBase(def Definition, defaults settings.Map, store options.Store) Base {
	if defaults == nil {
		defaults = settings.Map{}
	}
	return Base{def: def, defaults: defaults, store: store}
}

func (b *Base) Id() string            { return b.def.Id }
func (b *Base) Name() string          { return b.def.Name }
func (b *Base) Description() string   { return b.def.Description }
func (b *Base) Category() string      { return b.def.Category }
func (b *Base) Icon() string          { return b.def.Icon }
func (b *Base) Priority() int         { return b.def.Priority }
func (b *Base) EntityTypes() []string { return b.def.EntityTypes }

// OptionKey is the option store key the feature persists under, derived
// deterministically from its id.
func (b *Base) OptionKey() string {
	return "feature_" + b.def.Id
}

// Settings merges declared defaults with the persisted overrides;
// override values win key-by-key at the top level. A store read failure
// degrades to the defaults.
func (b *Base) Settings(ctx context.Context) settings.Map {
	stored, err := b.store.Get(ctx, b.OptionKey())
	if err != nil {
		return settings.Clone(b.defaults)
	}
	return settings.Merge(b.defaults, stored)
}

// IsEnabled checks the enabled flag in merged settings. Default false.
func (b *Base) IsEnabled(ctx context.Context) bool {
	enabled, ok := b.Settings(ctx)["enabled"].(bool)
	return ok && enabled
}

// Enable persists enabled=true. This is a read-merge-write, not a
// compare-and-swap: two concurrent toggles race and the later write wins.
// Acceptable for human-driven admin toggles.
func (b *Base) Enable(ctx context.Context) error {
	return b.UpdateSettings(ctx, settings.Map{"enabled": true})
}

// Disable persists enabled=false. Same last-writer-wins caveat as Enable.
func (b *Base) Disable(ctx context.Context) error {
	return b.UpdateSettings(ctx, settings.Map{"enabled": false})
}

// UpdateSettings merges partial on top of current settings and persists
// the result immediately.
func (b *Base) UpdateSettings(ctx context.Context, partial settings.Map) error {
	merged := settings.Merge(b.Settings(ctx), settings.Sanitize(partial))
	return b.store.Set(ctx, b.OptionKey(), merged)
}
