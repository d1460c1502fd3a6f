// Package options is the key-value settings store features persist
// through. The core only ever calls Get/Set/Delete on it; serialization
// stays inside the backend.
package options

import (
	"context"

	"storeboost/internal/settings"
)

// Store holds named settings mappings. Get returns an empty mapping for
// unknown names, never an error for plain absence.
type Store interface {
	Get(ctx context.Context, name string) (settings.Map, error)
	Set(ctx context.Context, name string, value settings.Map) error
	Delete(ctx context.Context, name string) error
}
