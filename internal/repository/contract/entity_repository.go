// Repository interface for scoped entity collections.
package contract

import (
	"context"

	"storeboost/internal/entity"
	"storeboost/internal/repository/scope"
	"storeboost/internal/settings"
)

// ListOptions controls GetAll. OrderBy outside the allow-list silently
// falls back to priority; Order other than DESC is coerced to ASC.
type ListOptions struct {
	Status  string
	OrderBy string
	Order   string
	Limit   int
	Offset  int
}

// CreateData carries the writable fields for a new entity. Absent fields
// take their defaults: empty name, empty settings, active, priority 10.
type CreateData struct {
	Name     string
	Settings settings.Map
	Status   string
	Priority *int
}

// UpdateData is a partial update; only non-nil fields are written.
// UpdatedAt is refreshed even when every field is nil.
type UpdateData struct {
	Name     *string
	Settings settings.Map
	Status   *string
	Priority *int
}

// EntityRepository is the only way collaborators touch the shared entity
// table. Every operation filters by the bound scope first; an id that
// belongs to a different scope behaves as not-found.
//
// Reads return (nil, nil) on absence. Update and Delete report whether a
// scoped row was affected separately from storage failure.
type EntityRepository interface {
	Scope() scope.Scope

	Find(ctx context.Context, id int64) (*entity.Entity, error)
	GetAll(ctx context.Context, opts ListOptions) ([]*entity.Entity, error)
	GetActive(ctx context.Context) ([]*entity.Entity, error)
	Create(ctx context.Context, data CreateData) (int64, error)
	Update(ctx context.Context, id int64, data UpdateData) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context, status string) (int64, error)
	FindBySetting(ctx context.Context, key string, value any) ([]*entity.Entity, error)
	BulkUpdateStatus(ctx context.Context, ids []int64, status string) (int64, error)
	BulkDelete(ctx context.Context, ids []int64) (int64, error)
	Reorder(ctx context.Context, priorities map[int64]int) error
	Duplicate(ctx context.Context, id int64) (int64, error)
}
